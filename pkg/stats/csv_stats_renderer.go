package stats

import (
	"bytes"
	"encoding/csv"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type CsvStatsRendererImpl struct {
}

func NewCsvStatsRenderer() *CsvStatsRendererImpl {
	return &CsvStatsRendererImpl{}
}

// RenderSummary renders the per-category spending breakdown as CSV.
func (t *CsvStatsRendererImpl) RenderSummary(summary Summary) (string, error) {
	data := make([][]string, 0, len(summary.Categories)+2)
	data = append(data, []string{"Category", "Subscriptions", "Monthly Cost"})

	for _, category := range summary.Categories {
		data = append(data, []string{
			category.Category,
			strconv.Itoa(category.Count),
			formatCost(category.MonthlyCost),
		})
	}

	data = append(data, []string{
		"TOTAL",
		strconv.Itoa(summary.TrialCount + summary.MonthlyCount),
		formatCost(summary.TotalMonthlyCost),
	})

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		err := writer.Write(row)
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}

func formatCost(cost float64) string {
	return strconv.FormatFloat(cost, 'f', 2, 64)
}
