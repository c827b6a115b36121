package stats

import (
	"time"

	"github.com/subtrackr/subtrackr/pkg/subscription"
)

// CategoryTotal aggregates monthly spend for one category.
type CategoryTotal struct {
	Category    string
	MonthlyCost float64
	Count       int
}

// RenewalAlert names a subscription whose period ends soon.
type RenewalAlert struct {
	SubscriptionID string
	ServiceName    string
	EndDate        time.Time
	Status         subscription.DateStatus
}

// Summary is the per-user spending overview shown on the dashboard.
type Summary struct {
	TotalMonthlyCost float64
	TrialCount       int
	MonthlyCount     int
	ExpiredCount     int
	Categories       []CategoryTotal
	MostExpensive    *subscription.Subscription
	UpcomingRenewals []RenewalAlert
}
