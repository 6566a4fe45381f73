package ports

import (
	"context"

	"github.com/mgluxury/boutique/internal/core/domain"
)

// IdentityProvider matches credentials against a user source.
// It returns domain.ErrInvalidCredentials when nothing matches.
type IdentityProvider interface {
	Authenticate(ctx context.Context, email, password string) (*domain.Identity, error)
}

// UserRepository is the remote user table consulted by the remote provider.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Identity, error)
	Create(ctx context.Context, user *domain.Identity) error
}
