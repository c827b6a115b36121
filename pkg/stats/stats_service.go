package stats

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/subtrackr/subtrackr/internal/cache"
	"github.com/subtrackr/subtrackr/internal/utils"
	"github.com/subtrackr/subtrackr/pkg/subscription"
	"github.com/subtrackr/subtrackr/pkg/user"
)

// upcomingRenewalHorizon is how far ahead renewals show up on the dashboard.
const upcomingRenewalHorizon = 7 * 24 * time.Hour

type StatsService interface {
	GetSummary(ctx context.Context) (Summary, error)
}

type StatsServiceImpl struct {
	subscriptions subscription.Service
	cache         subscription.ResponseCache
	clock         utils.Clock
}

func NewStatsServiceImpl(subscriptions subscription.Service, responseCache subscription.ResponseCache, clock utils.Clock) *StatsServiceImpl {
	return &StatsServiceImpl{
		subscriptions: subscriptions,
		cache:         responseCache,
		clock:         clock,
	}
}

func (s *StatsServiceImpl) GetSummary(ctx context.Context) (Summary, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to get current user: %w", err)
	}

	key := cache.UserStatsKey(userId)
	var cached Summary
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	subs, err := s.subscriptions.List(ctx)
	if err != nil {
		return Summary{}, err
	}

	summary := buildSummary(subs, s.clock.Now())
	s.cache.Set(ctx, key, summary)
	return summary, nil
}

func buildSummary(subs []subscription.Subscription, now time.Time) Summary {
	summary := Summary{}
	byCategory := map[string]*CategoryTotal{}

	for i, sub := range subs {
		status := sub.StatusOn(now)

		switch {
		case status == subscription.StatusExpired:
			summary.ExpiredCount++
		case sub.Type == subscription.TypeTrial:
			summary.TrialCount++
		default:
			summary.MonthlyCount++
		}

		if status == subscription.StatusExpired {
			continue
		}

		summary.TotalMonthlyCost += sub.Cost

		total, ok := byCategory[sub.Category]
		if !ok {
			total = &CategoryTotal{Category: sub.Category}
			byCategory[sub.Category] = total
		}
		total.MonthlyCost += sub.Cost
		total.Count++

		if summary.MostExpensive == nil || sub.Cost > summary.MostExpensive.Cost {
			summary.MostExpensive = &subs[i]
		}

		if sub.EndDate.Sub(now) <= upcomingRenewalHorizon {
			summary.UpcomingRenewals = append(summary.UpcomingRenewals, RenewalAlert{
				SubscriptionID: sub.ID,
				ServiceName:    sub.ServiceName,
				EndDate:        sub.EndDate,
				Status:         status,
			})
		}
	}

	summary.Categories = make([]CategoryTotal, 0, len(byCategory))
	for _, total := range byCategory {
		summary.Categories = append(summary.Categories, *total)
	}
	sort.Slice(summary.Categories, func(i, j int) bool {
		return summary.Categories[i].Category < summary.Categories[j].Category
	})
	sort.Slice(summary.UpcomingRenewals, func(i, j int) bool {
		return summary.UpcomingRenewals[i].EndDate.Before(summary.UpcomingRenewals[j].EndDate)
	})

	return summary
}
