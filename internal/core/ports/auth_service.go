package ports

import (
	"context"

	"github.com/arclab/arclab-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) error
	Verify(ctx context.Context, email, code string) (*domain.User, error)
	Resend(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Forgot(ctx context.Context, email string) error
	Reset(ctx context.Context, email, code, newPassword string) error
	Profile(ctx context.Context, userID string) (*domain.User, error)
}
