package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/zen-api/internal/api/shared"
	"github.com/phrazzld/zen-api/internal/domain"
	"github.com/phrazzld/zen-api/internal/service/auth"
)

// UserLookup loads a member for the admin check.
type UserLookup interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
	users      UserLookup
	adminEmail string
}

// NewAuthMiddleware creates a new AuthMiddleware. The admin is the member
// whose email equals adminEmail, compared case-insensitively.
func NewAuthMiddleware(jwtService auth.JWTService, users UserLookup, adminEmail string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		users:      users,
		adminEmail: strings.TrimSpace(adminEmail),
	}
}

// Authenticate rejects requests without a valid access token and puts the
// member's ID into the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		claims, ok := m.validate(w, r, header)
		if !ok {
			return
		}
		next.ServeHTTP(w, r.WithContext(shared.WithUserID(r.Context(), claims.UserID)))
	})
}

// OptionalAuthenticate lets requests without an Authorization header through
// as anonymous. A header that is present must still carry a valid token.
func (m *AuthMiddleware) OptionalAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, ok := m.validate(w, r, header)
		if !ok {
			return
		}
		next.ServeHTTP(w, r.WithContext(shared.WithUserID(r.Context(), claims.UserID)))
	})
}

// RequireAdmin must run after Authenticate. It lets through only the
// configured admin.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := shared.UserIDFromContext(r.Context())
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
			return
		}

		user, err := m.users.GetUser(r.Context(), userID)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusForbidden, "Admin access required", err,
				shared.WithElevatedLogLevel())
			return
		}
		if m.adminEmail == "" || !strings.EqualFold(user.Email, m.adminEmail) {
			shared.RespondWithErrorAndLog(w, r, http.StatusForbidden, "Admin access required",
				errors.New("non-admin member on admin route"), shared.WithElevatedLogLevel())
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *AuthMiddleware) validate(w http.ResponseWriter, r *http.Request, header string) (*auth.Claims, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
		return nil, false
	}

	claims, err := m.jwtService.ValidateToken(r.Context(), strings.TrimSpace(token))
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrExpiredToken):
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
		case errors.Is(err, auth.ErrInvalidToken),
			errors.Is(err, auth.ErrTokenNotYetValid),
			errors.Is(err, auth.ErrWrongTokenType):
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
		default:
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Authentication error", err)
		}
		return nil, false
	}
	return claims, true
}

// GetUserID extracts the user ID from the request context.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	return shared.UserIDFromContext(r.Context())
}
