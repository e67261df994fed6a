package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/zen-api/internal/domain"
	"github.com/phrazzld/zen-api/internal/domain/oracle"
	"github.com/phrazzld/zen-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testWindow = oracle.Window{
	Start: time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
	End:   time.Date(2025, 1, 19, 0, 0, 0, 0, time.UTC).Add(-time.Microsecond),
}

// withURLParam attaches a chi route parameter to req.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestMemberHandler_Me(t *testing.T) {
	t.Run("capped plan", func(t *testing.T) {
		user := testMember(domain.PlanStandard)
		users := new(MockUserService)
		readings := new(MockReadingService)
		users.On("GetUser", mock.Anything, user.ID).Return(user, nil)
		readings.On("QuotaStatus", mock.Anything, user.ID).Return(&service.QuotaStatus{
			Plan: domain.PlanStandard, Limit: 3, Used: 1, Remaining: 2, Window: testWindow,
		}, nil)
		h := NewMemberHandler(users, readings, nil)

		rec := httptest.NewRecorder()
		h.Me(rec, asMember(httptest.NewRequest(http.MethodGet, "/api/me", nil), user.ID))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp MeResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, user.ID, resp.User.ID)
		assert.Equal(t, "1995-03-25", resp.User.BirthDate)
		assert.Equal(t, domain.PlanStandard, resp.User.Plan)
		require.NotNil(t, resp.Quota.Limit)
		require.NotNil(t, resp.Quota.Remaining)
		assert.Equal(t, 3, *resp.Quota.Limit)
		assert.Equal(t, 2, *resp.Quota.Remaining)
		assert.Equal(t, 1, resp.Quota.Used)
		assert.False(t, resp.Quota.Unlimited)
		assert.True(t, testWindow.Start.Equal(resp.Quota.WindowStart))
	})

	t.Run("unlimited plan", func(t *testing.T) {
		user := testMember(domain.PlanPremiumCustom)
		users := new(MockUserService)
		readings := new(MockReadingService)
		users.On("GetUser", mock.Anything, user.ID).Return(user, nil)
		readings.On("QuotaStatus", mock.Anything, user.ID).Return(&service.QuotaStatus{
			Plan: domain.PlanPremiumCustom, Limit: oracle.Unlimited, Used: 40, Remaining: oracle.Unlimited, Window: testWindow,
		}, nil)
		h := NewMemberHandler(users, readings, nil)

		rec := httptest.NewRecorder()
		h.Me(rec, asMember(httptest.NewRequest(http.MethodGet, "/api/me", nil), user.ID))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp MeResponse
		decodeBody(t, rec, &resp)
		assert.True(t, resp.Quota.Unlimited)
		assert.Nil(t, resp.Quota.Limit)
		assert.Nil(t, resp.Quota.Remaining)
		assert.Equal(t, 40, resp.Quota.Used)
	})

	t.Run("deleted member", func(t *testing.T) {
		user := testMember(domain.PlanFree)
		users := new(MockUserService)
		users.On("GetUser", mock.Anything, user.ID).Return(nil, service.ErrUserNotFound)
		h := NewMemberHandler(users, new(MockReadingService), nil)

		rec := httptest.NewRecorder()
		h.Me(rec, asMember(httptest.NewRequest(http.MethodGet, "/api/me", nil), user.ID))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "User not found", errorMessage(t, rec))
	})
}

func TestMemberHandler_Checkout(t *testing.T) {
	user := testMember(domain.PlanFree)

	t.Run("standard", func(t *testing.T) {
		users := new(MockUserService)
		users.On("Checkout", mock.Anything, user.ID, "standard").Return(domain.PlanStandard, nil)
		h := NewMemberHandler(users, new(MockReadingService), nil)

		req := asMember(httptest.NewRequest(http.MethodPost, "/api/checkout/standard", nil), user.ID)
		rec := httptest.NewRecorder()
		h.Checkout(rec, withURLParam(req, "plan", "standard"))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp CheckoutResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, domain.PlanStandard, resp.Plan)
		assert.Equal(t, CheckoutMessage, resp.Message)
		users.AssertNotCalled(t, "UpdatePlan", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not purchasable", func(t *testing.T) {
		users := new(MockUserService)
		users.On("Checkout", mock.Anything, user.ID, "premium_custom").
			Return(domain.Plan(""), service.ErrCheckoutUnavailable)
		h := NewMemberHandler(users, new(MockReadingService), nil)

		req := asMember(httptest.NewRequest(http.MethodPost, "/api/checkout/premium_custom", nil), user.ID)
		rec := httptest.NewRecorder()
		h.Checkout(rec, withURLParam(req, "plan", "premium_custom"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Plan not available for checkout", errorMessage(t, rec))
	})

	t.Run("unknown plan", func(t *testing.T) {
		users := new(MockUserService)
		users.On("Checkout", mock.Anything, user.ID, "gold").Return(domain.Plan(""), domain.ErrInvalidPlan)
		h := NewMemberHandler(users, new(MockReadingService), nil)

		req := asMember(httptest.NewRequest(http.MethodPost, "/api/checkout/gold", nil), user.ID)
		rec := httptest.NewRecorder()
		h.Checkout(rec, withURLParam(req, "plan", "gold"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid plan", errorMessage(t, rec))
	})
}
