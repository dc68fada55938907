package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/de-tools/dashboard/pkg/models/domain"
)

// Token is an issued bearer token.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Service authenticates admins and validates the tokens handed to them.
type Service interface {
	Login(ctx context.Context, username, password string) (Token, error)
	Authenticate(ctx context.Context, token string) (string, error)
}

type defaultService struct {
	registry Registry
	issuer   *Issuer
}

func NewService(registry Registry, issuer *Issuer) Service {
	return &defaultService{
		registry: registry,
		issuer:   issuer,
	}
}

func (s *defaultService) Login(ctx context.Context, username, password string) (Token, error) {
	logger := zerolog.Ctx(ctx)

	if err := s.registry.Verify(ctx, username, password); err != nil {
		logger.Warn().Str("username", username).Msg("rejected login")
		return Token{}, err
	}

	value, expiresAt, err := s.issuer.Issue(username)
	if err != nil {
		return Token{}, err
	}

	logger.Info().Str("username", username).Time("expires_at", expiresAt).Msg("issued token")
	return Token{Value: value, ExpiresAt: expiresAt}, nil
}

// Authenticate returns the username a valid token was issued to.
func (s *defaultService) Authenticate(_ context.Context, token string) (string, error) {
	claims, err := s.issuer.Parse(token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	return claims.Subject, nil
}
