package subscription

import (
	"errors"
	"time"
)

type Type string

const (
	TypeTrial   Type = "trial"
	TypeMonthly Type = "monthly"
)

func (t Type) IsValid() bool {
	return t == TypeTrial || t == TypeMonthly
}

// DateStatus classifies where a subscription is in its lifecycle relative to
// a point in time.
type DateStatus string

const (
	StatusActive        DateStatus = "active"
	StatusEndingSoon    DateStatus = "ending-soon"
	StatusExpired       DateStatus = "expired"
	StatusNotApplicable DateStatus = "not-applicable"
)

// endingSoonThreshold is how close to the period end a subscription is
// flagged as ending soon.
const endingSoonThreshold = 3 * 24 * time.Hour

var ErrNotFound = errors.New("subscription not found")

type Subscription struct {
	ID          string
	ServiceName string
	StartDate   time.Time
	// EndDate is derived from StartDate and Type, never set directly.
	EndDate  time.Time
	Category string
	Cost     float64
	Type     Type
	// CalendarEventID is the provider id of the synced reminder event. Empty
	// until the first successful sync; reused on every sync after that so the
	// same event is updated rather than duplicated.
	CalendarEventID string
}

func (s Subscription) StatusOn(now time.Time) DateStatus {
	if s.EndDate.IsZero() {
		return StatusNotApplicable
	}
	if now.After(s.EndDate) {
		return StatusExpired
	}
	if s.EndDate.Sub(now) <= endingSoonThreshold {
		return StatusEndingSoon
	}
	return StatusActive
}
