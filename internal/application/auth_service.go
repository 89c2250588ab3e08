// internal/application/auth_service.go
package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mahabubulhasibshawon/rider-tracker/internal/domain"
	"github.com/mahabubulhasibshawon/rider-tracker/internal/ports"
	"github.com/mahabubulhasibshawon/rider-tracker/pkg/auth"
)

// AuthService issues and revokes bearer tokens on top of the user store.
type AuthService struct {
	store       *UserStore
	tokens      *auth.Manager
	revocations ports.RevocationPort
}

func NewAuthService(store *UserStore, tokens *auth.Manager, revocations ports.RevocationPort) *AuthService {
	return &AuthService{store: store, tokens: tokens, revocations: revocations}
}

func (s *AuthService) Signup(ctx context.Context, req *SignupRequest) (*domain.User, error) {
	if req == nil {
		return nil, domain.NewValidationError("request", "is required")
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	return s.store.AddUser(ctx, req.User(), req.Password)
}

// UpdateProfile edits the account's own profile fields.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*domain.User, error) {
	if req == nil {
		return nil, domain.NewValidationError("request", "is required")
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	req.Apply(user)
	return s.store.UpdateUser(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}
	user, err := s.store.Authenticate(ctx, username, password)
	if err != nil {
		return "", nil, err
	}
	token, _, err := s.tokens.GenerateToken(user.Username, user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, user, nil
}

// Logout revokes the token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return domain.ErrNotAuthenticated
	}
	until := time.Now().Add(s.tokens.TTL())
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}
	return s.revocations.Revoke(ctx, claims.ID, until)
}

// Authorize validates a bearer token and rejects revoked ones.
func (s *AuthService) Authorize(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, errors.Join(domain.ErrNotAuthenticated, err)
	}
	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check revocation: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("token revoked: %w", domain.ErrNotAuthenticated)
	}
	return claims, nil
}

func (s *AuthService) TokenTTL() time.Duration {
	return s.tokens.TTL()
}
