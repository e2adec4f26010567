package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arclab/arclab-api/internal/core/domain"
	"github.com/arclab/arclab-api/internal/core/ports"
)

type AgentService struct {
	agents ports.AgentRepository
	labs   ports.LabRepository
	logger zerolog.Logger
	now    nowFunc
}

func NewAgentService(agents ports.AgentRepository, labs ports.LabRepository, logger zerolog.Logger) *AgentService {
	return &AgentService{agents: agents, labs: labs, logger: logger, now: utcNow}
}

// Create creates an agent inside a lab the caller owns. The lab must exist;
// agent name uniqueness is resolved by the store.
func (s *AgentService) Create(ctx context.Context, input ports.CreateAgentInput) (*domain.Agent, error) {
	lab, err := s.labs.FindByID(ctx, input.LabID)
	if err != nil {
		return nil, err
	}
	if lab.OwnerUserID != input.OwnerUserID {
		return nil, domain.ErrForbidden
	}

	agent := &domain.Agent{
		Name:        strings.TrimSpace(input.Name),
		Personality: input.Personality,
		Tone:        input.Tone,
		Voice:       input.Voice,
		Gender:      input.Gender,
		Description: input.Description,
		Behaviors:   input.Behaviors,
		Skills:      input.Skills,
		OwnerUserID: input.OwnerUserID,
		LabID:       lab.ID,
		CreatedAt:   s.now(),
	}
	created, err := s.agents.Create(ctx, agent)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("agent_id", created.ID).Str("lab_id", lab.ID).Msg("agent created")
	return created, nil
}

// Get returns an agent by id. This is a public read: no ownership check.
func (s *AgentService) Get(ctx context.Context, id string) (*domain.Agent, error) {
	return s.agents.FindByID(ctx, id)
}

func (s *AgentService) ListByLab(ctx context.Context, ownerUserID, labID string) ([]domain.Agent, error) {
	lab, err := s.labs.FindByID(ctx, labID)
	if err != nil {
		return nil, err
	}
	if lab.OwnerUserID != ownerUserID {
		return nil, domain.ErrForbidden
	}
	return s.agents.ListByLab(ctx, labID)
}

func (s *AgentService) Delete(ctx context.Context, ownerUserID, id string) error {
	agent, err := s.agents.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if agent.OwnerUserID != ownerUserID {
		return domain.ErrForbidden
	}
	return s.agents.Delete(ctx, id)
}
