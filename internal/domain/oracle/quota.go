package oracle

import (
	"fmt"
	"strings"
	"time"

	"github.com/phrazzld/zen-api/internal/domain"
)

// Unlimited marks a plan without a weekly cap.
const Unlimited = -1

// QuotaPolicy holds the weekly draw limit per plan.
type QuotaPolicy struct {
	limits map[domain.Plan]int
}

// DefaultQuotaPolicy returns the standard limits: free 1, standard 3,
// premium_custom unlimited.
func DefaultQuotaPolicy() QuotaPolicy {
	return QuotaPolicy{limits: map[domain.Plan]int{
		domain.PlanFree:          1,
		domain.PlanStandard:      3,
		domain.PlanPremiumCustom: Unlimited,
	}}
}

// WeeklyLimit returns the weekly limit for a plan, or Unlimited.
// Unknown plans get the free limit.
func (p QuotaPolicy) WeeklyLimit(plan domain.Plan) int {
	if limit, ok := p.limits[plan]; ok {
		return limit
	}
	return p.limits[domain.PlanFree]
}

// Allows reports whether a member on plan who already drew count times in
// the current window may draw again.
func (p QuotaPolicy) Allows(plan domain.Plan, count int) bool {
	limit := p.WeeklyLimit(plan)
	return limit == Unlimited || count < limit
}

// Remaining returns how many draws are left in the window, or Unlimited.
func (p QuotaPolicy) Remaining(plan domain.Plan, count int) int {
	limit := p.WeeklyLimit(plan)
	if limit == Unlimited {
		return Unlimited
	}
	if count >= limit {
		return 0
	}
	return limit - count
}

// Window is a closed time interval [Start, End].
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t lies within the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// WeekCalendar defines calendar weeks for quota accounting.
type WeekCalendar struct {
	Location  *time.Location
	WeekStart time.Weekday
}

// NewWeekCalendar builds a calendar from a time zone name ("" or "Local"
// for the server zone) and a week start ("sunday" or "monday").
func NewWeekCalendar(timezone, weekStart string) (WeekCalendar, error) {
	loc := time.Local
	if tz := strings.TrimSpace(timezone); tz != "" && tz != "Local" {
		var err error
		loc, err = time.LoadLocation(tz)
		if err != nil {
			return WeekCalendar{}, fmt.Errorf("invalid quota timezone %q: %w", tz, err)
		}
	}

	var start time.Weekday
	switch strings.ToLower(strings.TrimSpace(weekStart)) {
	case "", "sunday":
		start = time.Sunday
	case "monday":
		start = time.Monday
	default:
		return WeekCalendar{}, fmt.Errorf("invalid quota week start %q: must be sunday or monday", weekStart)
	}

	return WeekCalendar{Location: loc, WeekStart: start}, nil
}

// WindowAt returns the calendar week containing now. Start is midnight of
// the first weekday in the calendar's zone; End is one microsecond before
// the next week starts, the finest resolution the database keeps.
func (c WeekCalendar) WindowAt(now time.Time) Window {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)
	offset := (int(local.Weekday()) - int(c.WeekStart) + 7) % 7
	start := time.Date(local.Year(), local.Month(), local.Day()-offset, 0, 0, 0, 0, loc)
	next := time.Date(start.Year(), start.Month(), start.Day()+7, 0, 0, 0, 0, loc)
	return Window{Start: start, End: next.Add(-time.Microsecond)}
}
