package reminder

import (
	"fmt"
	"time"
)

const (
	trialPeriodDays   = 7
	monthlyPeriodDays = 30

	// reminderHourUTC pins every reminder to noon UTC regardless of the
	// time-of-day of the subscription start.
	reminderHourUTC = 12

	windowDuration = time.Hour
)

// PeriodEnd returns when the subscription period started at startDate ends:
// 7 days for a trial, 30 days for a monthly plan.
func PeriodEnd(startDate time.Time, planType PlanType) (time.Time, error) {
	if startDate.IsZero() {
		return time.Time{}, ErrInvalidStartDate
	}
	switch planType {
	case PlanTrial:
		return startDate.AddDate(0, 0, trialPeriodDays), nil
	case PlanMonthly:
		return startDate.AddDate(0, 0, monthlyPeriodDays), nil
	default:
		return time.Time{}, fmt.Errorf("unknown plan type %q", planType)
	}
}

// ComputeWindow derives the reminder window for a subscription: one day before
// the period end, at noon UTC, lasting one hour. The result is deterministic
// for the same inputs.
func ComputeWindow(startDate time.Time, planType PlanType) (Window, error) {
	periodEnd, err := PeriodEnd(startDate, planType)
	if err != nil {
		return Window{}, err
	}

	dayBefore := periodEnd.UTC().AddDate(0, 0, -1)
	start := time.Date(dayBefore.Year(), dayBefore.Month(), dayBefore.Day(), reminderHourUTC, 0, 0, 0, time.UTC)

	return Window{
		Start: start,
		End:   start.Add(windowDuration),
	}, nil
}
