package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/staynest/booking-api/internal/core/domain"
	"github.com/staynest/booking-api/internal/core/ports"
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// AuthService implements registration and the credential verifier.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenCodec
	log    zerolog.Logger

	// unifyLoginErrors collapses "unknown email" into ErrInvalidCredentials.
	unifyLoginErrors bool
}

// AuthOption customises an AuthService.
type AuthOption func(*AuthService)

// WithUnifiedLoginErrors hides whether an email is registered from login callers.
func WithUnifiedLoginErrors(on bool) AuthOption {
	return func(s *AuthService) { s.unifyLoginErrors = on }
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenCodec, log zerolog.Logger, opts ...AuthOption) *AuthService {
	s := &AuthService{repo: repo, hasher: hasher, tokens: tokens, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	switch {
	case username == "":
		return nil, fmt.Errorf("%w: username is required", domain.ErrValidation)
	case email == "":
		return nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	case in.Password == "":
		return nil, fmt.Errorf("%w: password is required", domain.ErrValidation)
	case len(in.Password) > maxPasswordBytes:
		return nil, fmt.Errorf("%w: password must be at most %d bytes", domain.ErrValidation, maxPasswordBytes)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: email must be a valid email", domain.ErrValidation)
	}

	role := domain.RoleGuest
	if in.Role != "" {
		role = domain.Role(in.Role)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: role must be one of: guest host admin", domain.ErrValidation)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")
	return user, nil
}

// Login verifies email and password and issues a session token for the user.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) && s.unifyLoginErrors {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		s.log.Debug().Int64("user_id", user.ID).Msg("password mismatch")
		return "", nil, domain.ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(domain.Identity{UserID: user.ID, Role: user.Role})
	if err != nil {
		return "", nil, err
	}

	return signed, user, nil
}
