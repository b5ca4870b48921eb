package nutrition

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScaleFood(t *testing.T) {
	oats := NutrientTotals{Calories: 389, Fat: 6.9, Protein: 16.9, Carbohydrates: 66.3}

	tests := []struct {
		name     string
		quantity float64
		want     NutrientTotals
	}{
		{name: "reference portion", quantity: 100, want: oats},
		{name: "rounds to cents", quantity: 33, want: NutrientTotals{Calories: 128.37, Fat: 2.28, Protein: 5.58, Carbohydrates: 21.88}},
		{name: "double portion", quantity: 200, want: NutrientTotals{Calories: 778, Fat: 13.8, Protein: 33.8, Carbohydrates: 132.6}},
		{name: "zero", quantity: 0, want: NutrientTotals{}},
		{name: "negative", quantity: -50, want: NutrientTotals{}},
		{name: "nan", quantity: math.NaN(), want: NutrientTotals{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ScaleFood(oats, tc.quantity)
			require.InDelta(t, tc.want.Calories, got.Calories, 1e-9)
			require.InDelta(t, tc.want.Fat, got.Fat, 1e-9)
			require.InDelta(t, tc.want.Protein, got.Protein, 1e-9)
			require.InDelta(t, tc.want.Carbohydrates, got.Carbohydrates, 1e-9)
		})
	}
}

func TestScaleFoodFeedsMealAggregator(t *testing.T) {
	scaled := ScaleFood(NutrientTotals{Calories: 250, Protein: 10}, 150)
	record := MealRecord{
		MealType: string(Lunch),
		Calories: Amount(scaled.Calories),
		Protein:  Amount(scaled.Protein),
	}

	summary := AggregateMeals([]MealRecord{record})
	require.InDelta(t, 375.0, summary.Slots[Lunch].Calories, 1e-9)
	require.InDelta(t, 15.0, summary.Day.Protein, 1e-9)
}
