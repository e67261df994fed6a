package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MockJWTService is a configurable JWTService for handler and middleware tests.
type MockJWTService struct {
	GenerateTokenFunc        func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateTokenFunc        func(ctx context.Context, tokenString string) (*Claims, error)
	GenerateRefreshTokenFunc func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateRefreshTokenFunc func(ctx context.Context, tokenString string) (*Claims, error)

	Token           string
	RefreshToken    string
	TokenError      error
	ValidationError error
	Claims          *Claims
	TokenLifetime   time.Duration
}

var _ JWTService = (*MockJWTService)(nil)

// NewMockJWTService creates a mock that issues fixed tokens and accepts
// any token as belonging to userID.
func NewMockJWTService(userID uuid.UUID) *MockJWTService {
	now := time.Now()
	return &MockJWTService{
		Token:         "mock-jwt-token",
		RefreshToken:  "mock-refresh-token",
		TokenLifetime: time.Hour,
		Claims: &Claims{
			UserID:    userID,
			TokenType: TokenTypeAccess,
			Subject:   userID.String(),
			IssuedAt:  now,
			ExpiresAt: now.Add(time.Hour),
			ID:        uuid.New().String(),
		},
	}
}

func (m *MockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(ctx, userID)
	}
	return m.Token, m.TokenError
}

func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, tokenString)
	}
	if m.ValidationError != nil {
		return nil, m.ValidationError
	}
	return m.Claims, nil
}

func (m *MockJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(ctx, userID)
	}
	return m.RefreshToken, m.TokenError
}

func (m *MockJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error) {
	if m.ValidateRefreshTokenFunc != nil {
		return m.ValidateRefreshTokenFunc(ctx, tokenString)
	}
	if m.ValidationError != nil {
		return nil, m.ValidationError
	}
	if m.Claims == nil {
		return nil, ErrInvalidRefreshToken
	}
	c := *m.Claims
	c.TokenType = TokenTypeRefresh
	return &c, nil
}

func (m *MockJWTService) AccessTokenLifetime() time.Duration {
	return m.TokenLifetime
}

// WithValidationError makes every validation fail with err.
func (m *MockJWTService) WithValidationError(err error) *MockJWTService {
	m.ValidationError = err
	return m
}

// WithTokenError makes every generation fail with err.
func (m *MockJWTService) WithTokenError(err error) *MockJWTService {
	m.TokenError = err
	return m
}
