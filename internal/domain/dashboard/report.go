package dashboard

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/yanqian/dietdash/internal/domain/nutrition"
)

const reportMimeType = "text/csv"

// renderReport writes the dashboard as a sectioned CSV document.
func renderReport(resp Response, generatedAt time.Time) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{
		{"report", "dietdash dashboard"},
		{"username", resp.Username},
		{"userId", strconv.FormatInt(resp.UserID, 10)},
		{"date", resp.Date},
		{"generatedAt", generatedAt.UTC().Format(time.RFC3339)},
		{},
		{"meal", "calories", "protein", "fat", "carbohydrates"},
	}
	for _, slot := range nutrition.MealSlots() {
		rows = append(rows, totalsRow(string(slot), resp.Slots[slot]))
	}
	rows = append(rows, totalsRow("total", resp.Day), []string{})

	rows = append(rows, []string{"exerciseType", "totalCaloriesBurned", "totalDuration", "count"})
	for _, label := range resp.Exercise.Types {
		rows = append(rows, exerciseRow(label, resp.Exercise.ByType[label]))
	}
	rows = append(rows, exerciseRow("total", resp.Exercise.Total), []string{})

	rows = append(rows, []string{"kind", "nutrient", "amount", "message"})
	for _, s := range resp.Suggestions {
		amount := ""
		if s.Kind != nutrition.KindBalanced {
			amount = formatNumber(s.Amount)
		}
		rows = append(rows, []string{string(s.Kind), string(s.Nutrient), amount, s.Message})
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func totalsRow(label string, t nutrition.NutrientTotals) []string {
	return []string{
		label,
		formatNumber(t.Calories),
		formatNumber(t.Protein),
		formatNumber(t.Fat),
		formatNumber(t.Carbohydrates),
	}
}

func exerciseRow(label string, t nutrition.ExerciseTotals) []string {
	return []string{
		label,
		formatNumber(t.TotalCaloriesBurned),
		formatNumber(t.TotalDuration),
		strconv.Itoa(t.Count),
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
