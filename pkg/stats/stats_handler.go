package stats

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/subtrackr/subtrackr/pkg/user"
)

type CategoryTotalDTO struct {
	Category    string  `json:"category"`
	MonthlyCost float64 `json:"monthlyCost"`
	Count       int     `json:"count"`
}

type RenewalAlertDTO struct {
	SubscriptionID string `json:"subscriptionId"`
	ServiceName    string `json:"serviceName"`
	EndDate        string `json:"endDate"`
	Status         string `json:"status"`
}

type SummaryDTO struct {
	TotalMonthlyCost float64            `json:"totalMonthlyCost"`
	TrialCount       int                `json:"trialCount"`
	MonthlyCount     int                `json:"monthlyCount"`
	ExpiredCount     int                `json:"expiredCount"`
	Categories       []CategoryTotalDTO `json:"categories"`
	MostExpensive    *string            `json:"mostExpensiveService,omitempty"`
	UpcomingRenewals []RenewalAlertDTO  `json:"upcomingRenewals"`
}

type StatsHandler struct {
	service  StatsService
	renderer *CsvStatsRendererImpl
}

func NewStatsHandler(service StatsService, renderer *CsvStatsRendererImpl) *StatsHandler {
	return &StatsHandler{service: service, renderer: renderer}
}

func (h *StatsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	summary, err := h.service.GetSummary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(toSummaryDTO(summary)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *StatsHandler) ExportSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetSummary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	csvData, err := h.renderer.RenderSummary(summary)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="subscriptions.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(csvData))
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, user.ErrNoUser) {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func toSummaryDTO(summary Summary) SummaryDTO {
	categories := make([]CategoryTotalDTO, 0, len(summary.Categories))
	for _, c := range summary.Categories {
		categories = append(categories, CategoryTotalDTO{
			Category:    c.Category,
			MonthlyCost: c.MonthlyCost,
			Count:       c.Count,
		})
	}

	renewals := make([]RenewalAlertDTO, 0, len(summary.UpcomingRenewals))
	for _, renewal := range summary.UpcomingRenewals {
		renewals = append(renewals, RenewalAlertDTO{
			SubscriptionID: renewal.SubscriptionID,
			ServiceName:    renewal.ServiceName,
			EndDate:        renewal.EndDate.UTC().Format(time.RFC3339),
			Status:         string(renewal.Status),
		})
	}

	var mostExpensive *string
	if summary.MostExpensive != nil {
		mostExpensive = &summary.MostExpensive.ServiceName
	}

	return SummaryDTO{
		TotalMonthlyCost: summary.TotalMonthlyCost,
		TrialCount:       summary.TrialCount,
		MonthlyCount:     summary.MonthlyCount,
		ExpiredCount:     summary.ExpiredCount,
		Categories:       categories,
		MostExpensive:    mostExpensive,
		UpcomingRenewals: renewals,
	}
}
