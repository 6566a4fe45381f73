package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/mgluxury/boutique/internal/core/domain"
)

const testSecret = "test-secret"

type stubUserRepo struct {
	users map[string]*domain.Identity
	err   error
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.Identity, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.Identity) error {
	r.users[u.Email] = u
	return nil
}

func newAuthSvc(slot *stubSlot) *AuthService {
	return NewAuthService(NewStaticListProvider(DefaultUsers()), slot, testSecret, time.Hour, zerolog.Nop())
}

func TestAuthService_Login_Success(t *testing.T) {
	slot := newStubSlot()
	svc := newAuthSvc(slot)

	token, user, err := svc.Login(context.Background(), "admin@mgluxury.com", "admin123")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if user.Role != domain.RoleAdmin || user.Password != "" {
		t.Errorf("unexpected identity %+v", user)
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) { return []byte(testSecret), nil })
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"] != "1" || claims["role"] != domain.RoleAdmin {
		t.Errorf("unexpected claims %v", claims)
	}
	sid, _ := claims["sid"].(string)
	if _, ok := slot.data[SessionKeyPrefix+sid]; !ok {
		t.Error("expected session written to slot")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := newAuthSvc(newStubSlot())

	_, _, err := svc.Login(context.Background(), "client@test.com", "nope")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got: %v", err)
	}
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	svc := newAuthSvc(newStubSlot())

	_, _, err := svc.Login(context.Background(), " ", "")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got: %v", err)
	}
}

func TestAuthService_CurrentAndLogout(t *testing.T) {
	slot := newStubSlot()
	svc := newAuthSvc(slot)
	ctx := context.Background()

	token, _, err := svc.Login(ctx, "fatou@example.com", "fatou123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	parsed, _ := jwt.Parse(token, func(*jwt.Token) (any, error) { return []byte(testSecret), nil })
	sid := parsed.Claims.(jwt.MapClaims)["sid"].(string)

	user, err := svc.Current(ctx, sid)
	if err != nil || user.Email != "fatou@example.com" {
		t.Fatalf("expected rehydrated identity, got %+v, %v", user, err)
	}

	if err := svc.Logout(ctx, sid); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.Current(ctx, sid); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("expected signed out after logout, got: %v", err)
	}
}

func TestAuthService_Current_CorruptSessionSignsOut(t *testing.T) {
	slot := newStubSlot()
	slot.data[SessionKeyPrefix+"bad"] = []byte("{not json")
	svc := newAuthSvc(slot)

	if _, err := svc.Current(context.Background(), "bad"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got: %v", err)
	}
}

func TestAuthService_Login_SlotFailure(t *testing.T) {
	slot := newStubSlot()
	slot.setErr = errBackend
	svc := newAuthSvc(slot)

	if _, _, err := svc.Login(context.Background(), "client@test.com", "client123"); !errors.Is(err, errBackend) {
		t.Errorf("expected slot error, got: %v", err)
	}
}

func TestRemoteProvider_Authenticate(t *testing.T) {
	hash, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo := &stubUserRepo{users: map[string]*domain.Identity{
		"awa@example.com": {ID: "u1", Email: "awa@example.com", PasswordHash: hash, Role: domain.RoleCustomer},
	}}
	p := NewRemoteProvider(repo)
	ctx := context.Background()

	if u, err := p.Authenticate(ctx, "awa@example.com", "secret"); err != nil || u.ID != "u1" {
		t.Errorf("expected match, got %+v, %v", u, err)
	}
	if _, err := p.Authenticate(ctx, "awa@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got: %v", err)
	}
	if _, err := p.Authenticate(ctx, "nobody@example.com", "secret"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown user, got: %v", err)
	}

	repo.err = errBackend
	if _, err := p.Authenticate(ctx, "awa@example.com", "secret"); !errors.Is(err, errBackend) {
		t.Errorf("expected backend error to propagate, got: %v", err)
	}
}
