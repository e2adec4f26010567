package ports

import (
	"context"

	"github.com/arclab/arclab-api/internal/core/domain"
)

type LabService interface {
	Create(ctx context.Context, ownerUserID, name string) (*domain.Lab, error)
	List(ctx context.Context, ownerUserID string) ([]domain.Lab, error)
	Delete(ctx context.Context, ownerUserID, labID string) error
}
