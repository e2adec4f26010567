package ports

import (
	"context"

	"github.com/arclab/arclab-api/internal/core/domain"
)

// LabRepository defines the interface for lab persistence. Lab names carry a
// unique index; Create surfaces duplicates as domain.ErrLabExists.
type LabRepository interface {
	Create(ctx context.Context, lab *domain.Lab) (*domain.Lab, error)
	FindByID(ctx context.Context, id string) (*domain.Lab, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]domain.Lab, error)
	Delete(ctx context.Context, id string) error
}
