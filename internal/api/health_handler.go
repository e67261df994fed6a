package api

import (
	"net/http"

	"github.com/phrazzld/zen-api/internal/api/shared"
)

// Health handles GET /health.
func Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
