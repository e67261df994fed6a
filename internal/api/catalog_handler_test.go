package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/zen-api/internal/domain"
	"github.com/phrazzld/zen-api/internal/domain/oracle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogHandler_Cards(t *testing.T) {
	h := NewCatalogHandler(nil, oracle.DefaultQuotaPolicy())

	t.Run("full catalog", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Cards(rec, httptest.NewRequest(http.MethodGet, "/api/cards", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp CardsResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, oracle.MajorArcana(), resp.Cards)
	})

	t.Run("fuzzy search", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Cards(rec, httptest.NewRequest(http.MethodGet, "/api/cards?q=eremita", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp CardsResponse
		decodeBody(t, rec, &resp)
		require.NotEmpty(t, resp.Cards)
		assert.Equal(t, "09-eremita", resp.Cards[0].Key)
	})

	t.Run("no match", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Cards(rec, httptest.NewRequest(http.MethodGet, "/api/cards?q=zzzz", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"cards":[]}`, rec.Body.String())
	})
}

func TestCatalogHandler_Plans(t *testing.T) {
	h := NewCatalogHandler(nil, oracle.DefaultQuotaPolicy())

	rec := httptest.NewRecorder()
	h.Plans(rec, httptest.NewRequest(http.MethodGet, "/api/plans", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"plans":[
		{"plan":"free","weekly_limit":1,"unlimited":false},
		{"plan":"standard","weekly_limit":3,"unlimited":false},
		{"plan":"premium_custom","weekly_limit":null,"unlimited":true}
	]}`, rec.Body.String())

	var resp PlansResponse
	decodeBody(t, rec, &resp)
	require.Len(t, resp.Plans, 3)

	assert.Equal(t, domain.PlanFree, resp.Plans[0].Plan)
	require.NotNil(t, resp.Plans[0].WeeklyLimit)
	assert.Equal(t, 1, *resp.Plans[0].WeeklyLimit)

	assert.Equal(t, domain.PlanStandard, resp.Plans[1].Plan)
	require.NotNil(t, resp.Plans[1].WeeklyLimit)
	assert.Equal(t, 3, *resp.Plans[1].WeeklyLimit)

	assert.Equal(t, domain.PlanPremiumCustom, resp.Plans[2].Plan)
	assert.True(t, resp.Plans[2].Unlimited)
	assert.Nil(t, resp.Plans[2].WeeklyLimit)
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
