package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/zen-api/internal/config"
	"github.com/phrazzld/zen-api/internal/platform/logger"
)

const (
	minSecretLength = 32
	tokenIssuer     = "zen-api"
	clockSkew       = 2 * time.Minute
)

// tokenKind describes one of the two token flavours and the errors its
// validation reports.
type tokenKind struct {
	name     string
	lifetime time.Duration
	invalid  error
	expired  error
	early    error
}

type hmacJWTService struct {
	key     []byte
	access  tokenKind
	refresh tokenKind
	now     func() time.Time
}

type tokenClaims struct {
	UserID    uuid.UUID `json:"uid"`
	TokenType string    `json:"type"`
	jwt.RegisteredClaims
}

var _ JWTService = (*hmacJWTService)(nil)

// NewJWTService returns an HS256 JWTService configured from cfg.
func NewJWTService(cfg config.AuthConfig) (JWTService, error) {
	return NewJWTServiceWithClock(cfg, time.Now)
}

// NewJWTServiceWithClock is NewJWTService reading time from now.
func NewJWTServiceWithClock(cfg config.AuthConfig, now func() time.Time) (JWTService, error) {
	if len(cfg.JWTSecret) < minSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d characters", minSecretLength)
	}
	if cfg.TokenLifetimeMinutes <= 0 || cfg.RefreshTokenLifetimeMinutes <= 0 {
		return nil, errors.New("token lifetimes must be positive")
	}
	if now == nil {
		now = time.Now
	}

	return &hmacJWTService{
		key: []byte(cfg.JWTSecret),
		access: tokenKind{
			name:     TokenTypeAccess,
			lifetime: time.Duration(cfg.TokenLifetimeMinutes) * time.Minute,
			invalid:  ErrInvalidToken,
			expired:  ErrExpiredToken,
			early:    ErrTokenNotYetValid,
		},
		refresh: tokenKind{
			name:     TokenTypeRefresh,
			lifetime: time.Duration(cfg.RefreshTokenLifetimeMinutes) * time.Minute,
			invalid:  ErrInvalidRefreshToken,
			expired:  ErrExpiredRefreshToken,
			early:    ErrInvalidRefreshToken,
		},
		now: now,
	}, nil
}

func (s *hmacJWTService) AccessTokenLifetime() time.Duration {
	return s.access.lifetime
}

func (s *hmacJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return s.issue(ctx, userID, s.access)
}

func (s *hmacJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return s.issue(ctx, userID, s.refresh)
}

func (s *hmacJWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	return s.verify(ctx, tokenString, s.access)
}

func (s *hmacJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error) {
	return s.verify(ctx, tokenString, s.refresh)
}

func (s *hmacJWTService) issue(ctx context.Context, userID uuid.UUID, kind tokenKind) (string, error) {
	issuedAt := s.now()
	claims := tokenClaims{
		UserID:    userID,
		TokenType: kind.name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(kind.lifetime)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		logger.FromContext(ctx).Error("failed to sign token",
			slog.String("error", err.Error()),
			slog.String("token_type", kind.name))
		return "", fmt.Errorf("signing %s token: %w", kind.name, err)
	}
	return signed, nil
}

func (s *hmacJWTService) verify(ctx context.Context, tokenString string, kind tokenKind) (*Claims, error) {
	log := logger.FromContext(ctx).With(slog.String("token_type", kind.name))

	var claims tokenClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(*jwt.Token) (any, error) { return s.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithLeeway(clockSkew),
		jwt.WithTimeFunc(s.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		log.Debug("token expired")
		return nil, kind.expired
	case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		log.Debug("token used before its time")
		return nil, kind.early
	case err != nil:
		log.Debug("token rejected", slog.String("error", err.Error()))
		return nil, kind.invalid
	}

	if claims.TokenType != kind.name {
		log.Debug("token of the wrong type", slog.String("actual", claims.TokenType))
		return nil, ErrWrongTokenType
	}

	out := &Claims{
		UserID:    claims.UserID,
		TokenType: claims.TokenType,
		Subject:   claims.Subject,
		ID:        claims.ID,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
