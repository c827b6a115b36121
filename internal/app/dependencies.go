package app

import (
	"database/sql"

	"github.com/go-redis/redis/v8"
	"github.com/subtrackr/subtrackr/internal/cache"
	"github.com/subtrackr/subtrackr/internal/config"
	"github.com/subtrackr/subtrackr/internal/event_bus"
	"github.com/subtrackr/subtrackr/internal/utils"
	"github.com/subtrackr/subtrackr/pkg/google"
	"github.com/subtrackr/subtrackr/pkg/reminder"
	"github.com/subtrackr/subtrackr/pkg/stats"
	"github.com/subtrackr/subtrackr/pkg/subscription"
	"github.com/subtrackr/subtrackr/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	UserService user.Service
	UserHandler *user.Handler

	GoogleAuth    *google.GoogleAuth
	GoogleService google.Service

	ReminderService reminder.Service

	SubscriptionRepo    subscription.Repository
	SubscriptionService subscription.Service
	SubscriptionHandler *subscription.Handler

	StatsService     stats.StatsService
	CsvStatsRenderer *stats.CsvStatsRendererImpl
	StatsHandler     *stats.StatsHandler

	EventBus      *event_bus.EventBus
	ResponseCache *cache.Cache

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, rdb *redis.Client, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}
	deps.EventBus = event_bus.NewEventBus()
	deps.ResponseCache = cache.New(rdb)
	cache.RegisterInvalidation(deps.EventBus, deps.ResponseCache)

	deps.UserService = user.NewUserService(user.NewUserRepo(db), deps.Clock)
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.GoogleAuth = google.NewGoogleAuth(db, deps.UserService, cfg)
	deps.GoogleService = google.NewService(deps.GoogleAuth)

	deps.ReminderService = reminder.NewService(deps.GoogleService)

	deps.SubscriptionRepo = subscription.NewRepository(db)
	deps.SubscriptionService = subscription.NewService(deps.SubscriptionRepo, deps.ReminderService, deps.ResponseCache, deps.EventBus)
	deps.SubscriptionHandler = subscription.NewHandler(deps.SubscriptionService)

	deps.StatsService = stats.NewStatsServiceImpl(deps.SubscriptionService, deps.ResponseCache, deps.Clock)
	deps.CsvStatsRenderer = stats.NewCsvStatsRenderer()
	deps.StatsHandler = stats.NewStatsHandler(deps.StatsService, deps.CsvStatsRenderer)

	return deps
}
