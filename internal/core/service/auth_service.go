package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mgluxury/boutique/internal/core/domain"
	"github.com/mgluxury/boutique/internal/core/ports"
)

// SessionKeyPrefix is the slot namespace for signed-in identities.
const SessionKeyPrefix = "mg-user:"

// AuthService signs identities in and out. The signed-in identity is written
// through to the slot, so a logout revokes every token of the session.
type AuthService struct {
	provider  ports.IdentityProvider
	slot      ports.Slot
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(provider ports.IdentityProvider, slot ports.Slot, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{provider: provider, slot: slot, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

// Login authenticates the credentials and opens a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Identity, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.provider.Authenticate(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	public := user.Public()

	sid := uuid.NewString()
	raw, err := json.Marshal(public)
	if err != nil {
		return "", nil, fmt.Errorf("encode session: %w", err)
	}
	if err := s.slot.Set(ctx, SessionKeyPrefix+sid, raw); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}

	token, err := s.generateToken(sid, &public)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("user_id", public.ID).Str("role", public.Role).Msg("signed in")
	return token, &public, nil
}

// Logout clears the session slot.
func (s *AuthService) Logout(ctx context.Context, sid string) error {
	if err := s.slot.Clear(ctx, SessionKeyPrefix+sid); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Current rehydrates the identity of a session. A missing or corrupt
// session reads as signed out.
func (s *AuthService) Current(ctx context.Context, sid string) (*domain.Identity, error) {
	raw, ok, err := s.slot.Get(ctx, SessionKeyPrefix+sid)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	var id domain.Identity
	if err := json.Unmarshal(raw, &id); err != nil || id.ID == "" {
		s.log.Warn().Err(err).Str("sid", sid).Msg("corrupt session, treating as signed out")
		return nil, domain.ErrUnauthenticated
	}
	return &id, nil
}

func (s *AuthService) generateToken(sid string, user *domain.Identity) (string, error) {
	claims := jwt.MapClaims{
		"sid":  sid,
		"sub":  user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
