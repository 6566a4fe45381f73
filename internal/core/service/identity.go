package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mgluxury/boutique/internal/core/domain"
	"github.com/mgluxury/boutique/internal/core/ports"
)

// StaticListProvider matches credentials by plain equality against a fixed
// list. It exists for demos and tests and offers no protection at all.
type StaticListProvider struct {
	users []domain.Identity
}

func NewStaticListProvider(users []domain.Identity) *StaticListProvider {
	return &StaticListProvider{users: users}
}

// DefaultUsers is the demo account list shipped with the storefront.
func DefaultUsers() []domain.Identity {
	return []domain.Identity{
		{ID: "1", Name: "Admin MG Luxury", Email: "admin@mgluxury.com", Password: "admin123", Role: domain.RoleAdmin},
		{ID: "2", Name: "Client Test", Email: "client@test.com", Password: "client123", Role: domain.RoleCustomer},
		{ID: "3", Name: "Fatou Diallo", Email: "fatou@example.com", Password: "fatou123", Role: domain.RoleCustomer},
	}
}

func (p *StaticListProvider) Authenticate(_ context.Context, email, password string) (*domain.Identity, error) {
	for _, u := range p.users {
		if u.Email == email && u.Password == password {
			found := u
			return &found, nil
		}
	}
	return nil, domain.ErrInvalidCredentials
}

// RemoteProvider looks users up in the catalog store and checks bcrypt hashes.
type RemoteProvider struct {
	users ports.UserRepository
}

func NewRemoteProvider(users ports.UserRepository) *RemoteProvider {
	return &RemoteProvider{users: users}
}

func (p *RemoteProvider) Authenticate(ctx context.Context, email, password string) (*domain.Identity, error) {
	user, err := p.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// HashPassword prepares a plaintext password for the remote user table.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
