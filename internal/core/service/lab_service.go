package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arclab/arclab-api/internal/core/domain"
	"github.com/arclab/arclab-api/internal/core/ports"
)

type LabService struct {
	repo   ports.LabRepository
	logger zerolog.Logger
	now    nowFunc
}

func NewLabService(repo ports.LabRepository, logger zerolog.Logger) *LabService {
	return &LabService{repo: repo, logger: logger, now: utcNow}
}

// Create creates a lab owned by the caller. Name uniqueness is resolved by
// the store; a duplicate write surfaces as domain.ErrLabExists.
func (s *LabService) Create(ctx context.Context, ownerUserID, name string) (*domain.Lab, error) {
	lab := &domain.Lab{
		Name:        strings.TrimSpace(name),
		OwnerUserID: ownerUserID,
		CreatedAt:   s.now(),
	}
	created, err := s.repo.Create(ctx, lab)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("lab_id", created.ID).Str("owner", ownerUserID).Msg("lab created")
	return created, nil
}

func (s *LabService) List(ctx context.Context, ownerUserID string) ([]domain.Lab, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// Delete removes a lab after an ownership check.
func (s *LabService) Delete(ctx context.Context, ownerUserID, labID string) error {
	lab, err := s.repo.FindByID(ctx, labID)
	if err != nil {
		return err
	}
	if lab.OwnerUserID != ownerUserID {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, labID)
}
