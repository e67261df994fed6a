package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/zen-api/internal/api/shared"
	"github.com/phrazzld/zen-api/internal/service"
)

// ReadingHandler serves draws and the reading history.
type ReadingHandler struct {
	readings service.ReadingService
	logger   *slog.Logger
}

// NewReadingHandler creates a new ReadingHandler.
func NewReadingHandler(readings service.ReadingService, logger *slog.Logger) *ReadingHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReadingHandler{
		readings: readings,
		logger:   logger.With("component", "reading_handler"),
	}
}

// Draw handles POST /api/readings. Authentication is optional: members are
// subject to the weekly quota and get their reading saved, visitors do not.
// A draw refused by the quota answers 200 with blocked set.
func (h *ReadingHandler) Draw(w http.ResponseWriter, r *http.Request) {
	var req DrawReadingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	in := service.DrawRequest{
		Question:  req.Question,
		FullName:  req.FullName,
		BirthDate: req.BirthDate,
	}
	if userID, ok := shared.UserIDFromContext(r.Context()); ok {
		in.UserID = &userID
	}

	result, err := h.readings.Draw(r.Context(), in)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to draw a card")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, newReadingResponse(result))
}

// History handles GET /api/readings.
func (h *ReadingHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	readings, err := h.readings.History(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load reading history")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, newHistoryResponse(readings))
}
