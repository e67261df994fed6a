package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/zen-api/internal/api/shared"
	"github.com/phrazzld/zen-api/internal/service"
)

// CheckoutMessage is returned by the payment stub.
const CheckoutMessage = "Redirecionando para o gateway de pagamento..."

// MemberHandler serves the authenticated member area.
type MemberHandler struct {
	users    service.UserService
	readings service.ReadingService
	logger   *slog.Logger
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(users service.UserService, readings service.ReadingService, logger *slog.Logger) *MemberHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemberHandler{
		users:    users,
		readings: readings,
		logger:   logger.With("component", "member_handler"),
	}
}

// Me handles GET /api/me.
func (h *MemberHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load profile")
		return
	}
	quota, err := h.readings.QuotaStatus(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load quota")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MeResponse{
		User:  newUserResponse(user),
		Quota: newQuotaResponse(quota),
	})
}

// Checkout handles POST /api/checkout/{plan}. Payment is not integrated:
// the answer only carries a redirect message.
func (h *MemberHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	plan, err := h.users.Checkout(r.Context(), userID, chi.URLParam(r, "plan"))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to start checkout")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, CheckoutResponse{Plan: plan, Message: CheckoutMessage})
}
