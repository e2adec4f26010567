package ports

import (
	"context"
	"time"

	"github.com/arclab/arclab-api/internal/core/domain"
)

// AgentRepository defines the interface for agent persistence. Agent names
// carry a unique index; Create surfaces duplicates as domain.ErrAgentExists.
type AgentRepository interface {
	Create(ctx context.Context, agent *domain.Agent) (*domain.Agent, error)
	FindByID(ctx context.Context, id string) (*domain.Agent, error)
	ListByLab(ctx context.Context, labID string) ([]domain.Agent, error)
	Delete(ctx context.Context, id string) error
	TouchLastUsed(ctx context.Context, id string, at time.Time) error
}
