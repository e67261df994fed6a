package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/zen-api/internal/api/shared"
	"github.com/phrazzld/zen-api/internal/platform/logger"
	"github.com/phrazzld/zen-api/internal/service"
	"github.com/phrazzld/zen-api/internal/service/auth"
)

// AuthHandler handles registration, login and token refresh.
type AuthHandler struct {
	users      service.UserService
	jwtService auth.JWTService
	logger     *slog.Logger
	timeFunc   func() time.Time
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users service.UserService, jwtService auth.JWTService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		users:      users,
		jwtService: jwtService,
		logger:     logger.With("component", "auth_handler"),
		timeFunc:   time.Now,
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.Register(r.Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FullName:  req.FullName,
		BirthDate: req.BirthDate,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create user")
		return
	}

	resp, err := h.issueTokens(r.Context(), user.ID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate authentication token")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, resp)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to authenticate user")
		return
	}

	resp, err := h.issueTokens(r.Context(), user.ID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate authentication token")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// RefreshToken handles POST /api/auth/refresh. A valid refresh token is
// exchanged for a new access and refresh token pair.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RefreshTokenRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrExpiredRefreshToken):
			log.Debug("refresh token expired")
		case errors.Is(err, auth.ErrWrongTokenType):
			log.Warn("access token presented as refresh token")
		default:
			log.Debug("refresh token rejected", slog.String("error", err.Error()))
		}
		HandleAPIError(w, r, err, "")
		return
	}

	resp, err := h.issueTokens(r.Context(), claims.UserID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate authentication token")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

func (h *AuthHandler) issueTokens(ctx context.Context, userID uuid.UUID) (*AuthResponse, error) {
	accessToken, err := h.jwtService.GenerateToken(ctx, userID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := h.jwtService.GenerateRefreshToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	expiresAt := h.timeFunc().Add(h.jwtService.AccessTokenLifetime())
	return &AuthResponse{
		UserID:       userID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt.UTC().Format(time.RFC3339),
	}, nil
}
