package mocks

import (
	"context"
	"time"

	"github.com/phrazzld/lingodeck/internal/service/auth"
)

// MockTokenService is a mock implementation of auth.TokenService
type MockTokenService struct {
	GenerateTokenFn func(ctx context.Context, subject string) (string, error)
	ValidateTokenFn func(ctx context.Context, token string) (*auth.Claims, error)

	// Default values used when the Fn fields are nil
	Token string
	Err   error
}

var _ auth.TokenService = (*MockTokenService)(nil)

// GenerateToken implements auth.TokenService
func (m *MockTokenService) GenerateToken(ctx context.Context, subject string) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, subject)
	}
	return m.Token, m.Err
}

// ValidateToken implements auth.TokenService
func (m *MockTokenService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, token)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	now := time.Now()
	return &auth.Claims{
		Subject:   token,
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}, nil
}

// NewMockTokenServiceForSubject returns a mock that accepts only token and
// resolves it to subject.
func NewMockTokenServiceForSubject(token, subject string) *MockTokenService {
	return &MockTokenService{
		ValidateTokenFn: func(_ context.Context, got string) (*auth.Claims, error) {
			if got != token {
				return nil, auth.ErrInvalidToken
			}
			now := time.Now()
			return &auth.Claims{Subject: subject, IssuedAt: now, ExpiresAt: now.Add(time.Hour)}, nil
		},
	}
}
