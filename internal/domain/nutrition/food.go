package nutrition

import "math"

// ScaleFood converts per-100 g macros into the macros of quantity grams, rounded
// to two decimals. A non-positive or non-finite quantity scales to zero.
func ScaleFood(per100g NutrientTotals, quantity float64) NutrientTotals {
	q := Amount(quantity).Value()
	scale := func(v float64) float64 {
		return round2(Amount(v).Value() * q / 100)
	}
	return NutrientTotals{
		Calories:      scale(per100g.Calories),
		Fat:           scale(per100g.Fat),
		Protein:       scale(per100g.Protein),
		Carbohydrates: scale(per100g.Carbohydrates),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
