package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/zen-api/internal/api/shared"
	"github.com/phrazzld/zen-api/internal/domain"
	"github.com/stretchr/testify/require"
)

// newJSONRequest builds a request with body encoded as JSON. A string body
// is sent verbatim.
func newJSONRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func asMember(req *http.Request, userID uuid.UUID) *http.Request {
	return req.WithContext(shared.WithUserID(req.Context(), userID))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp shared.ErrorResponse
	decodeBody(t, rec, &resp)
	return resp.Error
}

func testMember(plan domain.Plan) *domain.User {
	birth := time.Date(1995, 3, 25, 0, 0, 0, 0, time.UTC)
	since := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	return &domain.User{
		ID:        uuid.New(),
		Email:     "ana@example.com",
		FullName:  "Ana Souza",
		BirthDate: &birth,
		Plan:      plan,
		PlanSince: since,
		CreatedAt: since,
		UpdatedAt: since,
	}
}
