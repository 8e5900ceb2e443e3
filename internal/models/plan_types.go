package models

import (
	"strings"
	"time"
)

// Plan is the account tier stored in users.user_plan.
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// ParsePlan accepts "free" or "pro" in any case.
func ParsePlan(s string) (Plan, bool) {
	switch Plan(strings.ToLower(strings.TrimSpace(s))) {
	case PlanFree:
		return PlanFree, true
	case PlanPro:
		return PlanPro, true
	}
	return "", false
}

func (p Plan) IsPro() bool {
	return p == PlanPro
}

// DateLayout is the calendar-date format of users.last_used.
const DateLayout = "2006-01-02"

// DateKey returns the calendar date of t in its own location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}
