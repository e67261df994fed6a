package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/zen-api/internal/platform/logger"
	"github.com/phrazzld/zen-api/internal/redact"
)

// ErrorResponse is the body of every error answer.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// ResponseOption adjusts how an error answer is logged.
type ResponseOption func(level slog.Level, status int) slog.Level

// WithElevatedLogLevel raises a 4xx answer from DEBUG to WARN, for refusals
// operators should see.
func WithElevatedLogLevel() ResponseOption {
	return func(level slog.Level, status int) slog.Level {
		if status >= http.StatusBadRequest && level < slog.LevelWarn {
			return slog.LevelWarn
		}
		return level
	}
}

func levelForStatus(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status == http.StatusTooManyRequests:
		return slog.LevelWarn
	default:
		return slog.LevelDebug
	}
}

// RespondWithJSON encodes data with the given status.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response",
			slog.String("error", err.Error()))
	}
}

// RespondWithError writes an ErrorResponse carrying the request's trace ID.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	RespondWithErrorAndLog(w, r, status, message, nil)
}

// RespondWithErrorAndLog answers with userMessage only. The cause is logged
// after redaction: 5xx at ERROR, 429 at WARN, other 4xx at DEBUG.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
	opts ...ResponseOption,
) {
	ctx := r.Context()
	traceID := GetTraceID(ctx)

	level := levelForStatus(status)
	for _, opt := range opts {
		level = opt(level, status)
	}

	log := logger.FromContext(ctx)
	if log.Enabled(ctx, level) {
		attrs := []slog.Attr{
			slog.String("trace_id", traceID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status_code", status),
			slog.String("user_message", userMessage),
		}
		if err != nil {
			attrs = append(attrs,
				slog.String("error", redact.Error(err)),
				slog.String("error_type", fmt.Sprintf("%T", err)))
		}
		log.LogAttrs(ctx, level, "request failed", attrs...)
	}

	RespondWithJSON(w, r, status, ErrorResponse{Error: userMessage, TraceID: traceID})
}
