package oracle

import (
	"testing"
	"time"

	"github.com/phrazzld/zen-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotaPolicyAllows(t *testing.T) {
	t.Parallel()

	policy := DefaultQuotaPolicy()

	testCases := []struct {
		name     string
		plan     domain.Plan
		count    int
		expected bool
	}{
		{"free first draw", domain.PlanFree, 0, true},
		{"free second draw", domain.PlanFree, 1, false},
		{"standard third draw", domain.PlanStandard, 2, true},
		{"standard fourth draw", domain.PlanStandard, 3, false},
		{"premium unlimited", domain.PlanPremiumCustom, 100, true},
		{"unknown plan fails closed", domain.Plan("gold"), 1, false},
		{"unknown plan first draw", domain.Plan("gold"), 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, policy.Allows(tc.plan, tc.count))
		})
	}
}

func TestQuotaPolicyRemaining(t *testing.T) {
	t.Parallel()

	policy := DefaultQuotaPolicy()
	assert.Equal(t, 1, policy.Remaining(domain.PlanFree, 0))
	assert.Equal(t, 0, policy.Remaining(domain.PlanFree, 4))
	assert.Equal(t, 2, policy.Remaining(domain.PlanStandard, 1))
	assert.Equal(t, Unlimited, policy.Remaining(domain.PlanPremiumCustom, 9))
	assert.Equal(t, 3, policy.WeeklyLimit(domain.PlanStandard))
}

func TestWeekCalendarWindowAt(t *testing.T) {
	t.Parallel()

	// Wednesday 2025-06-11 15:04 UTC.
	now := time.Date(2025, time.June, 11, 15, 4, 0, 0, time.UTC)

	sunday := WeekCalendar{Location: time.UTC, WeekStart: time.Sunday}
	w := sunday.WindowAt(now)
	assert.Equal(t, time.Date(2025, time.June, 8, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2025, time.June, 14, 23, 59, 59, 999999000, time.UTC), w.End)
	assert.True(t, w.Contains(now))
	assert.True(t, w.Contains(w.Start))
	assert.True(t, w.Contains(w.End))
	assert.False(t, w.Contains(w.End.Add(time.Microsecond)))

	monday := WeekCalendar{Location: time.UTC, WeekStart: time.Monday}
	w = monday.WindowAt(now)
	assert.Equal(t, time.Date(2025, time.June, 9, 0, 0, 0, 0, time.UTC), w.Start)

	// A Sunday with a Monday start belongs to the week that began six days earlier.
	w = monday.WindowAt(time.Date(2025, time.June, 15, 8, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, time.June, 9, 0, 0, 0, 0, time.UTC), w.Start)

	// The window is computed in the calendar's zone, not the input's.
	brt := time.FixedZone("BRT", -3*60*60)
	local := WeekCalendar{Location: brt, WeekStart: time.Sunday}
	w = local.WindowAt(time.Date(2025, time.June, 8, 1, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, brt), w.Start)
}

func TestNewWeekCalendar(t *testing.T) {
	t.Parallel()

	cal, err := NewWeekCalendar("", "")
	require.NoError(t, err)
	assert.Equal(t, time.Local, cal.Location)
	assert.Equal(t, time.Sunday, cal.WeekStart)

	cal, err = NewWeekCalendar("UTC", "Monday")
	require.NoError(t, err)
	assert.Equal(t, "UTC", cal.Location.String())
	assert.Equal(t, time.Monday, cal.WeekStart)

	_, err = NewWeekCalendar("Mars/Olympus", "sunday")
	assert.Error(t, err)

	_, err = NewWeekCalendar("UTC", "friday")
	assert.Error(t, err)
}
