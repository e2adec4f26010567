package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/arclab/arclab-api/internal/core/domain"
)

type stubLabRepo struct {
	labs   map[string]*domain.Lab // keyed by id
	byName map[string]string
	nextID int
}

func newStubLabRepo() *stubLabRepo {
	return &stubLabRepo{labs: make(map[string]*domain.Lab), byName: make(map[string]string)}
}

func (r *stubLabRepo) Create(_ context.Context, lab *domain.Lab) (*domain.Lab, error) {
	if _, exists := r.byName[lab.Name]; exists {
		return nil, domain.ErrLabExists
	}
	r.nextID++
	clone := *lab
	clone.ID = "lab_" + strconv.Itoa(r.nextID)
	r.labs[clone.ID] = &clone
	r.byName[clone.Name] = clone.ID
	out := clone
	return &out, nil
}

func (r *stubLabRepo) FindByID(_ context.Context, id string) (*domain.Lab, error) {
	if lab, ok := r.labs[id]; ok {
		clone := *lab
		return &clone, nil
	}
	return nil, domain.ErrLabNotFound
}

func (r *stubLabRepo) ListByOwner(_ context.Context, ownerUserID string) ([]domain.Lab, error) {
	out := []domain.Lab{}
	for _, lab := range r.labs {
		if lab.OwnerUserID == ownerUserID {
			out = append(out, *lab)
		}
	}
	return out, nil
}

func (r *stubLabRepo) Delete(_ context.Context, id string) error {
	lab, ok := r.labs[id]
	if !ok {
		return domain.ErrLabNotFound
	}
	delete(r.byName, lab.Name)
	delete(r.labs, id)
	return nil
}

func TestLabService_Create_Success(t *testing.T) {
	repo := newStubLabRepo()
	svc := NewLabService(repo, zerolog.Nop())

	lab, err := svc.Create(context.Background(), "user_1", "  Research  ")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if lab.ID == "" {
		t.Fatalf("expected lab id to be assigned")
	}
	if lab.Name != "Research" {
		t.Fatalf("expected trimmed name, got %q", lab.Name)
	}
	if lab.OwnerUserID != "user_1" {
		t.Fatalf("unexpected owner: %s", lab.OwnerUserID)
	}
	if lab.CreatedAt.IsZero() {
		t.Fatalf("expected created_at to be set")
	}
}

func TestLabService_Create_DuplicateName(t *testing.T) {
	repo := newStubLabRepo()
	svc := NewLabService(repo, zerolog.Nop())

	_, _ = svc.Create(context.Background(), "user_1", "Research")
	if _, err := svc.Create(context.Background(), "user_2", "Research"); err != domain.ErrLabExists {
		t.Fatalf("expected ErrLabExists, got %v", err)
	}
}

func TestLabService_List_ScopedToOwner(t *testing.T) {
	repo := newStubLabRepo()
	svc := NewLabService(repo, zerolog.Nop())

	_, _ = svc.Create(context.Background(), "user_1", "Alpha")
	_, _ = svc.Create(context.Background(), "user_1", "Beta")
	_, _ = svc.Create(context.Background(), "user_2", "Gamma")

	labs, err := svc.List(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(labs) != 2 {
		t.Fatalf("expected 2 labs, got %d", len(labs))
	}
}

func TestLabService_Delete_OwnershipEnforced(t *testing.T) {
	repo := newStubLabRepo()
	svc := NewLabService(repo, zerolog.Nop())

	lab, _ := svc.Create(context.Background(), "user_1", "Alpha")

	if err := svc.Delete(context.Background(), "user_2", lab.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), "user_1", lab.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(context.Background(), "user_1", lab.ID); err != domain.ErrLabNotFound {
		t.Fatalf("expected ErrLabNotFound after delete, got %v", err)
	}
}

func TestLabService_ClockIsUTC(t *testing.T) {
	repo := newStubLabRepo()
	svc := NewLabService(repo, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	lab, _ := svc.Create(context.Background(), "user_1", "Alpha")
	if !lab.CreatedAt.Equal(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected created_at: %v", lab.CreatedAt)
	}
}
