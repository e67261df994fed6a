package domain

import "strings"

// Plan is the subscription tier attached to a user.
type Plan string

// Known plans. Any other value is rejected on write and treated as
// PlanFree by the quota policy.
const (
	PlanFree          Plan = "free"
	PlanStandard      Plan = "standard"
	PlanPremiumCustom Plan = "premium_custom"
)

// Plans lists the known plans in display order.
var Plans = []Plan{PlanFree, PlanStandard, PlanPremiumCustom}

// ParsePlan converts a raw string to a Plan.
// Returns ErrInvalidPlan for unknown values.
func ParsePlan(raw string) (Plan, error) {
	p := Plan(strings.TrimSpace(strings.ToLower(raw)))
	if !p.IsValid() {
		return "", NewValidationError("plan", "must be one of free, standard, premium_custom", ErrInvalidPlan)
	}
	return p, nil
}

// IsValid reports whether p is one of the known plans.
func (p Plan) IsValid() bool {
	switch p {
	case PlanFree, PlanStandard, PlanPremiumCustom:
		return true
	}
	return false
}

func (p Plan) String() string {
	return string(p)
}
