package app

import (
	"github.com/gorilla/mux"
	"github.com/subtrackr/subtrackr/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Subscriptions
	r.HandleFunc("/api/subscription", deps.SubscriptionHandler.ListSubscriptions).Methods("GET")
	r.HandleFunc("/api/subscription", deps.SubscriptionHandler.CreateSubscription).Methods("POST")
	r.HandleFunc("/api/subscription/{id}", deps.SubscriptionHandler.GetSubscription).Methods("GET")
	r.HandleFunc("/api/subscription/{id}", deps.SubscriptionHandler.UpdateSubscription).Methods("PUT")
	r.HandleFunc("/api/subscription/{id}", deps.SubscriptionHandler.DeleteSubscription).Methods("DELETE")
	r.HandleFunc("/api/subscription/{id}/calendar-sync", deps.SubscriptionHandler.SyncCalendar).Methods("POST")

	// Stats
	r.HandleFunc("/api/stats/summary", deps.StatsHandler.GetSummary).Methods("GET")
	r.HandleFunc("/api/stats/summary/export", deps.StatsHandler.ExportSummary).Methods("GET")

	// User management
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user/name-availability", deps.UserHandler.IsUsernameAvailable).Methods("GET").Queries("username", "{username}")
	r.HandleFunc("/api/user", deps.UserHandler.GetAvailableUsers).Methods("GET")
	r.HandleFunc("/api/user/{userId}", deps.UserHandler.DeleteUser).Methods("DELETE")

	// Google integration
	r.HandleFunc("/api/integrations/google/auth/login", deps.GoogleAuth.OAuthLogin).Methods("GET")
	r.HandleFunc("/api/integrations/google/auth/logout", deps.GoogleAuth.OAuthLogout).Methods("DELETE")
	r.HandleFunc("/api/integrations/google/auth/callback", deps.GoogleAuth.OAuthCallback).Methods("GET")
	r.HandleFunc("/api/integrations/google/auth", deps.GoogleAuth.IsAuthenticated).Methods("GET")
}
