package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/zen-api/internal/api/shared"
	"github.com/phrazzld/zen-api/internal/platform/logger"
	"github.com/phrazzld/zen-api/internal/service"
)

// AdminHandler serves the admin endpoints. Routes must be guarded by
// AuthMiddleware.RequireAdmin.
type AdminHandler struct {
	users  service.UserService
	logger *slog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(users service.UserService, logger *slog.Logger) *AdminHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminHandler{users: users, logger: logger.With("component", "admin_handler")}
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list users")
		return
	}

	resp := UsersResponse{Users: make([]UserResponse, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, newUserResponse(u))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// UpdatePlan handles PUT /api/admin/users/{id}/plan.
func (h *AdminHandler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	userID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdatePlanRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.UpdatePlan(r.Context(), userID, req.Plan)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update plan")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("admin changed member plan",
		slog.String("user_id", user.ID.String()),
		slog.String("plan", string(user.Plan)))
	shared.RespondWithJSON(w, r, http.StatusOK, newUserResponse(user))
}

// DeleteUser handles DELETE /api/admin/users/{id}.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.users.DeleteUser(r.Context(), userID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete user")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
