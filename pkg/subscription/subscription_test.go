package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubscription_StatusOn(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		endDate time.Time
		want    DateStatus
	}{
		{
			name:    "well before the end date",
			endDate: now.AddDate(0, 0, 10),
			want:    StatusActive,
		},
		{
			name:    "exactly three days before the end date",
			endDate: now.Add(3 * 24 * time.Hour),
			want:    StatusEndingSoon,
		},
		{
			name:    "one hour before the end date",
			endDate: now.Add(time.Hour),
			want:    StatusEndingSoon,
		},
		{
			name:    "after the end date",
			endDate: now.Add(-time.Hour),
			want:    StatusExpired,
		},
		{
			name:    "no end date",
			endDate: time.Time{},
			want:    StatusNotApplicable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := Subscription{EndDate: tt.endDate}
			assert.Equal(t, tt.want, sub.StatusOn(now))
		})
	}
}

func TestType_IsValid(t *testing.T) {
	assert.True(t, TypeTrial.IsValid())
	assert.True(t, TypeMonthly.IsValid())
	assert.False(t, Type("yearly").IsValid())
	assert.False(t, Type("").IsValid())
}
