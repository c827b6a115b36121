package subscription

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/subtrackr/subtrackr/pkg/reminder"
	"github.com/subtrackr/subtrackr/pkg/user"
)

type SubscriptionDTO struct {
	ID               string  `json:"id,omitempty"`
	ServiceName      string  `json:"serviceName"`
	StartDate        string  `json:"startDate"`
	EndDate          string  `json:"endDate,omitempty"`
	Category         string  `json:"category"`
	Cost             float64 `json:"cost"`
	SubscriptionType string  `json:"subscriptionType"`
	CalendarEventID  string  `json:"calendarEventId,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	subs, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	dtos := make([]SubscriptionDTO, 0, len(subs))
	for _, sub := range subs {
		dtos = append(dtos, toDTO(sub))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetSubscription(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	sub, err := h.service.Get(r.Context(), vars["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(toDTO(sub)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) CreateSubscription(w http.ResponseWriter, r *http.Request) {
	log.Debug("Registering new subscription")
	w.Header().Set("Content-Type", "application/json")

	sub, ok := decodeAndValidate(w, r)
	if !ok {
		return
	}

	created, err := h.service.Create(r.Context(), sub)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) UpdateSubscription(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	sub, ok := decodeAndValidate(w, r)
	if !ok {
		return
	}
	sub.ID = vars["id"]

	updated, err := h.service.Update(r.Context(), sub)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(toDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) DeleteSubscription(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	if err := h.service.Delete(r.Context(), vars["id"]); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SyncCalendar retries the calendar sync for one subscription. Unlike the
// create/update paths, a sync failure here is reported to the client.
func (h *Handler) SyncCalendar(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	sub, err := h.service.SyncCalendar(r.Context(), vars["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(toDTO(sub)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request) (Subscription, bool) {
	var dto SubscriptionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return Subscription{}, false
	}

	if dto.ServiceName == "" {
		http.Error(w, "serviceName is required", http.StatusBadRequest)
		return Subscription{}, false
	}
	if dto.Cost < 0 {
		http.Error(w, "cost must not be negative", http.StatusBadRequest)
		return Subscription{}, false
	}
	subType := Type(dto.SubscriptionType)
	if !subType.IsValid() {
		http.Error(w, "subscriptionType must be 'trial' or 'monthly'", http.StatusBadRequest)
		return Subscription{}, false
	}
	startDate, err := time.Parse(time.RFC3339, dto.StartDate)
	if err != nil {
		http.Error(w, "startDate is not a valid RFC 3339 date", http.StatusBadRequest)
		return Subscription{}, false
	}

	return Subscription{
		ServiceName: dto.ServiceName,
		StartDate:   startDate,
		Category:    dto.Category,
		Cost:        dto.Cost,
		Type:        subType,
	}, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNoUser):
		http.Error(w, "authentication required", http.StatusUnauthorized)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "subscription not found", http.StatusNotFound)
	case errors.Is(err, reminder.ErrInvalidStartDate):
		http.Error(w, "startDate is not a valid date", http.StatusBadRequest)
	case errors.Is(err, reminder.ErrUnauthenticated):
		http.Error(w, "Google Calendar is not connected", http.StatusForbidden)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toDTO(sub Subscription) SubscriptionDTO {
	return SubscriptionDTO{
		ID:               sub.ID,
		ServiceName:      sub.ServiceName,
		StartDate:        sub.StartDate.UTC().Format(time.RFC3339),
		EndDate:          sub.EndDate.UTC().Format(time.RFC3339),
		Category:         sub.Category,
		Cost:             sub.Cost,
		SubscriptionType: string(sub.Type),
		CalendarEventID:  sub.CalendarEventID,
	}
}
