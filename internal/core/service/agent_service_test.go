package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/arclab/arclab-api/internal/core/domain"
	"github.com/arclab/arclab-api/internal/core/ports"
)

type stubAgentRepo struct {
	agents map[string]*domain.Agent
	byName map[string]string
	nextID int
}

func newStubAgentRepo() *stubAgentRepo {
	return &stubAgentRepo{agents: make(map[string]*domain.Agent), byName: make(map[string]string)}
}

func (r *stubAgentRepo) Create(_ context.Context, agent *domain.Agent) (*domain.Agent, error) {
	if _, exists := r.byName[agent.Name]; exists {
		return nil, domain.ErrAgentExists
	}
	r.nextID++
	clone := *agent
	clone.ID = "agent_" + strconv.Itoa(r.nextID)
	r.agents[clone.ID] = &clone
	r.byName[clone.Name] = clone.ID
	out := clone
	return &out, nil
}

func (r *stubAgentRepo) FindByID(_ context.Context, id string) (*domain.Agent, error) {
	if a, ok := r.agents[id]; ok {
		clone := *a
		return &clone, nil
	}
	return nil, domain.ErrAgentNotFound
}

func (r *stubAgentRepo) ListByLab(_ context.Context, labID string) ([]domain.Agent, error) {
	out := []domain.Agent{}
	for _, a := range r.agents {
		if a.LabID == labID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *stubAgentRepo) Delete(_ context.Context, id string) error {
	a, ok := r.agents[id]
	if !ok {
		return domain.ErrAgentNotFound
	}
	delete(r.byName, a.Name)
	delete(r.agents, id)
	return nil
}

func (r *stubAgentRepo) TouchLastUsed(_ context.Context, id string, at time.Time) error {
	a, ok := r.agents[id]
	if !ok {
		return domain.ErrAgentNotFound
	}
	a.LastUsedAt = at
	return nil
}

func agentFixture(t *testing.T) (*AgentService, *stubAgentRepo, *domain.Lab) {
	t.Helper()
	labRepo := newStubLabRepo()
	lab, err := labRepo.Create(context.Background(), &domain.Lab{Name: "Alpha", OwnerUserID: "user_1"})
	if err != nil {
		t.Fatalf("lab setup failed: %v", err)
	}
	agentRepo := newStubAgentRepo()
	return NewAgentService(agentRepo, labRepo, zerolog.Nop()), agentRepo, lab
}

func TestAgentService_Create_Success(t *testing.T) {
	svc, _, lab := agentFixture(t)

	agent, err := svc.Create(context.Background(), ports.CreateAgentInput{
		OwnerUserID: "user_1",
		LabID:       lab.ID,
		Name:        "Nova",
		Personality: "witty",
		Tone:        "casual",
		Voice:       "nova",
		Skills:      []string{"storytelling"},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if agent.ID == "" {
		t.Fatalf("expected agent id to be assigned")
	}
	if agent.LabID != lab.ID {
		t.Fatalf("expected agent scoped to lab %s, got %s", lab.ID, agent.LabID)
	}
}

func TestAgentService_Create_LabNotFound(t *testing.T) {
	svc, _, _ := agentFixture(t)

	_, err := svc.Create(context.Background(), ports.CreateAgentInput{
		OwnerUserID: "user_1",
		LabID:       "missing",
		Name:        "Nova",
	})
	if err != domain.ErrLabNotFound {
		t.Fatalf("expected ErrLabNotFound, got %v", err)
	}
}

func TestAgentService_Create_ForeignLab(t *testing.T) {
	svc, _, lab := agentFixture(t)

	_, err := svc.Create(context.Background(), ports.CreateAgentInput{
		OwnerUserID: "user_2",
		LabID:       lab.ID,
		Name:        "Nova",
	})
	if err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAgentService_Create_DuplicateName(t *testing.T) {
	svc, _, lab := agentFixture(t)

	input := ports.CreateAgentInput{OwnerUserID: "user_1", LabID: lab.ID, Name: "Nova"}
	if _, err := svc.Create(context.Background(), input); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), input); err != domain.ErrAgentExists {
		t.Fatalf("expected ErrAgentExists, got %v", err)
	}
}

func TestAgentService_Get_PublicRead(t *testing.T) {
	svc, _, lab := agentFixture(t)
	created, _ := svc.Create(context.Background(), ports.CreateAgentInput{
		OwnerUserID: "user_1", LabID: lab.ID, Name: "Nova",
	})

	// No caller identity: agent profiles are publicly readable.
	agent, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if agent.Name != "Nova" {
		t.Fatalf("unexpected agent: %+v", agent)
	}
}

func TestAgentService_ListByLab_OwnershipEnforced(t *testing.T) {
	svc, _, lab := agentFixture(t)
	_, _ = svc.Create(context.Background(), ports.CreateAgentInput{
		OwnerUserID: "user_1", LabID: lab.ID, Name: "Nova",
	})

	if _, err := svc.ListByLab(context.Background(), "user_2", lab.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	agents, err := svc.ListByLab(context.Background(), "user_1", lab.ID)
	if err != nil {
		t.Fatalf("ListByLab returned error: %v", err)
	}
	if len(agents) != 1 {
		t.Fatalf("expected 1 agent, got %d", len(agents))
	}
}

func TestAgentService_Delete_OwnershipEnforced(t *testing.T) {
	svc, _, lab := agentFixture(t)
	created, _ := svc.Create(context.Background(), ports.CreateAgentInput{
		OwnerUserID: "user_1", LabID: lab.ID, Name: "Nova",
	})

	if err := svc.Delete(context.Background(), "user_2", created.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), "user_1", created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); err != domain.ErrAgentNotFound {
		t.Fatalf("expected ErrAgentNotFound after delete, got %v", err)
	}
}
