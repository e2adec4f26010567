package ports

import (
	"context"

	"github.com/arclab/arclab-api/internal/core/domain"
)

// UserRepository defines the interface for verified-account persistence.
// Email uniqueness is enforced by the store; Create must surface a duplicate
// write as domain.ErrAlreadyRegistered.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// PendingRegistrationRepository persists in-progress registrations. Upsert
// overwrites an existing record for the same email, which is how a resend
// invalidates the previous code.
type PendingRegistrationRepository interface {
	Upsert(ctx context.Context, pending *domain.PendingRegistration) error
	FindByEmail(ctx context.Context, email string) (*domain.PendingRegistration, error)
	Delete(ctx context.Context, email string) error
}

// PasswordResetRepository persists in-progress password resets.
type PasswordResetRepository interface {
	Upsert(ctx context.Context, reset *domain.PasswordReset) error
	FindByEmail(ctx context.Context, email string) (*domain.PasswordReset, error)
	Delete(ctx context.Context, email string) error
}
