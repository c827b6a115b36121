package subscription

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/subtrackr/subtrackr/internal/event_bus"
	"github.com/subtrackr/subtrackr/pkg/reminder"
	"github.com/subtrackr/subtrackr/pkg/user"
)

// noopCache always misses, so service tests exercise the repository path.
type noopCache struct{}

func (noopCache) Get(ctx context.Context, key string, value any) bool { return false }
func (noopCache) Set(ctx context.Context, key string, value any)      {}

// mapCache is an in-memory ResponseCache for tests that need real hits.
type mapCache struct {
	data map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}}
}

func (c *mapCache) Get(ctx context.Context, key string, value any) bool {
	raw, ok := c.data[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, value) == nil
}

func (c *mapCache) Set(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.data[key] = raw
}

func testContext() context.Context {
	return contextForUser("00000000-0000-0000-0000-000000000001", "test_user")
}

func contextForUser(id, username string) context.Context {
	return user.WithUser(context.Background(), user.User{
		ID:          id,
		Username:    username,
		DisplayName: "Test User",
	})
}

func setupService() (Service, *StubRepository, *reminder.StubCalendarClient) {
	repo := NewStubRepository()
	client := reminder.NewStubCalendarClient()
	reminders := reminder.NewService(&reminder.StubClientProvider{Client: client})
	service := NewService(repo, reminders, noopCache{}, event_bus.NewEventBus())
	return service, repo, client
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("derives the end date and syncs a calendar reminder", func(t *testing.T) {
		ctx := testContext()
		service, _, client := setupService()

		created, err := service.Create(ctx, Subscription{
			ServiceName: "Netflix",
			StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Category:    "Entertainment",
			Cost:        199,
			Type:        TypeTrial,
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), created.EndDate)
		assert.Equal(t, "evt-1", created.CalendarEventID)
		assert.Equal(t, 1, client.CreateCalls)

		event := client.Events[created.CalendarEventID]
		assert.Equal(t, time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC), event.Start)
	})

	t.Run("stores the subscription even when the calendar sync fails", func(t *testing.T) {
		ctx := testContext()
		repo := NewStubRepository()
		reminders := reminder.NewService(&reminder.StubClientProvider{Err: reminder.ErrUnauthenticated})
		service := NewService(repo, reminders, noopCache{}, event_bus.NewEventBus())

		created, err := service.Create(ctx, Subscription{
			ServiceName: "Spotify",
			StartDate:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			Type:        TypeMonthly,
		})

		assert.NoError(t, err)
		assert.Empty(t, created.CalendarEventID)

		stored, err := service.Get(ctx, created.ID)
		assert.NoError(t, err)
		assert.Equal(t, "Spotify", stored.ServiceName)
	})

	t.Run("rejects a zero start date", func(t *testing.T) {
		ctx := testContext()
		service, _, _ := setupService()

		_, err := service.Create(ctx, Subscription{ServiceName: "Netflix", Type: TypeTrial})

		assert.ErrorIs(t, err, reminder.ErrInvalidStartDate)
	})

	t.Run("requires a user in context", func(t *testing.T) {
		service, _, _ := setupService()

		_, err := service.Create(context.Background(), Subscription{
			ServiceName: "Netflix",
			StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Type:        TypeTrial,
		})

		assert.ErrorIs(t, err, user.ErrNoUser)
	})
}

func TestServiceImpl_Get(t *testing.T) {
	t.Run("serves repeated reads from the cache", func(t *testing.T) {
		ctx := testContext()
		repo := NewStubRepository()
		reminders := reminder.NewService(&reminder.StubClientProvider{Client: reminder.NewStubCalendarClient()})
		service := NewService(repo, reminders, newMapCache(), event_bus.NewEventBus())

		created, err := service.Create(ctx, Subscription{
			ServiceName: "Netflix",
			StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Type:        TypeTrial,
		})
		require.NoError(t, err)

		first, err := service.Get(ctx, created.ID)
		require.NoError(t, err)

		// Remove the row behind the cache's back; the cached copy still serves.
		_, err = repo.Delete(ctx, "00000000-0000-0000-0000-000000000001", created.ID)
		require.NoError(t, err)

		second, err := service.Get(ctx, created.ID)
		assert.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("a cached record is never served to another user", func(t *testing.T) {
		owner := contextForUser("00000000-0000-0000-0000-000000000001", "owner")
		other := contextForUser("00000000-0000-0000-0000-000000000002", "other")

		repo := NewStubRepository()
		reminders := reminder.NewService(&reminder.StubClientProvider{Client: reminder.NewStubCalendarClient()})
		service := NewService(repo, reminders, newMapCache(), event_bus.NewEventBus())

		created, err := service.Create(owner, Subscription{
			ServiceName: "Netflix",
			StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Type:        TypeTrial,
		})
		require.NoError(t, err)

		// Warm the cache as the owner.
		_, err = service.Get(owner, created.ID)
		require.NoError(t, err)

		_, err = service.Get(other, created.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestServiceImpl_Update(t *testing.T) {
	t.Run("re-derives the end date and updates the same calendar event", func(t *testing.T) {
		ctx := testContext()
		service, _, client := setupService()

		created, err := service.Create(ctx, Subscription{
			ServiceName: "Netflix",
			StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Type:        TypeTrial,
		})
		require.NoError(t, err)

		created.Type = TypeMonthly
		created.Cost = 649

		updated, err := service.Update(ctx, created)

		assert.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), updated.EndDate)
		assert.Equal(t, created.CalendarEventID, updated.CalendarEventID)
		assert.Equal(t, 1, client.CreateCalls)
		assert.Equal(t, 1, client.UpdateCalls)

		event := client.Events[updated.CalendarEventID]
		assert.Equal(t, time.Date(2024, 1, 30, 12, 0, 0, 0, time.UTC), event.Start)
	})

	t.Run("returns not found for an unknown id", func(t *testing.T) {
		ctx := testContext()
		service, _, _ := setupService()

		_, err := service.Update(ctx, Subscription{
			ID:          "missing",
			ServiceName: "Netflix",
			StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Type:        TypeTrial,
		})

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("removes the calendar event and the record", func(t *testing.T) {
		ctx := testContext()
		service, _, client := setupService()

		created, err := service.Create(ctx, Subscription{
			ServiceName: "Netflix",
			StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Type:        TypeTrial,
		})
		require.NoError(t, err)

		err = service.Delete(ctx, created.ID)

		assert.NoError(t, err)
		assert.Equal(t, 1, client.DeleteCalls)
		assert.Empty(t, client.Events)

		_, err = service.Get(ctx, created.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("deletes the record even when the calendar delete fails", func(t *testing.T) {
		ctx := testContext()
		repo := NewStubRepository()
		client := reminder.NewStubCalendarClient()
		reminders := reminder.NewService(&reminder.StubClientProvider{Client: client})
		service := NewService(repo, reminders, noopCache{}, event_bus.NewEventBus())

		created, err := service.Create(ctx, Subscription{
			ServiceName: "Netflix",
			StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Type:        TypeTrial,
		})
		require.NoError(t, err)

		// Simulate the provider becoming unreachable after creation.
		failing := NewService(repo, reminder.NewService(&reminder.StubClientProvider{Err: reminder.ErrUnauthenticated}), noopCache{}, event_bus.NewEventBus())

		err = failing.Delete(ctx, created.ID)

		assert.NoError(t, err)
		_, err = service.Get(ctx, created.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("returns not found for an unknown id", func(t *testing.T) {
		ctx := testContext()
		service, _, _ := setupService()

		err := service.Delete(ctx, "missing")

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestServiceImpl_SyncCalendar(t *testing.T) {
	t.Run("recreates an externally deleted event and stores the new id", func(t *testing.T) {
		ctx := testContext()
		service, _, client := setupService()

		created, err := service.Create(ctx, Subscription{
			ServiceName: "Netflix",
			StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Type:        TypeTrial,
		})
		require.NoError(t, err)

		// The user deletes the event straight on the provider.
		delete(client.Events, created.CalendarEventID)

		synced, err := service.SyncCalendar(ctx, created.ID)

		assert.NoError(t, err)
		assert.NotEqual(t, created.CalendarEventID, synced.CalendarEventID)
		assert.Contains(t, client.Events, synced.CalendarEventID)

		stored, err := service.Get(ctx, created.ID)
		assert.NoError(t, err)
		assert.Equal(t, synced.CalendarEventID, stored.CalendarEventID)
	})

	t.Run("reports sync failures instead of swallowing them", func(t *testing.T) {
		ctx := testContext()
		repo := NewStubRepository()
		okService := NewService(repo, reminder.NewService(&reminder.StubClientProvider{Client: reminder.NewStubCalendarClient()}), noopCache{}, event_bus.NewEventBus())

		created, err := okService.Create(ctx, Subscription{
			ServiceName: "Netflix",
			StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Type:        TypeTrial,
		})
		require.NoError(t, err)

		failing := NewService(repo, reminder.NewService(&reminder.StubClientProvider{Err: reminder.ErrUnauthenticated}), noopCache{}, event_bus.NewEventBus())

		_, err = failing.SyncCalendar(ctx, created.ID)

		assert.ErrorIs(t, err, reminder.ErrUnauthenticated)
	})
}
