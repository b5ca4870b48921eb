package nutrition

import (
	"fmt"
	"strconv"
)

// BalancedMessage is emitted when every nutrient sits inside its range.
const BalancedMessage = "Your diet is balanced today. Keep it up!"

// Advise compares daily totals against limits in table order. The max check
// runs before the min check, so a row with Max < Min only ever yields a reduce
// message; callers are expected to validate Min <= Max up front.
func Advise(totals NutrientTotals, limits Limits) []Suggestion {
	suggestions := make([]Suggestion, 0, len(limits))
	for _, limit := range limits {
		total := totals.Get(limit.Nutrient)
		if total > limit.Max {
			suggestions = append(suggestions, reduce(limit.Nutrient, total-limit.Max))
		} else if total < limit.Min {
			suggestions = append(suggestions, increase(limit.Nutrient, limit.Min-total))
		}
	}
	if len(suggestions) == 0 {
		suggestions = append(suggestions, Suggestion{Kind: KindBalanced, Message: BalancedMessage})
	}
	return suggestions
}

func reduce(n Nutrient, amount float64) Suggestion {
	return Suggestion{
		Kind:     KindReduce,
		Nutrient: n,
		Amount:   amount,
		Message:  fmt.Sprintf("Reduce %s intake. Exceeded by %s units.", n, formatAmount(amount)),
	}
}

func increase(n Nutrient, amount float64) Suggestion {
	return Suggestion{
		Kind:     KindIncrease,
		Nutrient: n,
		Amount:   amount,
		Message:  fmt.Sprintf("Increase %s intake. Short by %s units.", n, formatAmount(amount)),
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Analyze runs both aggregators and the advisory generator. It is pure and
// deterministic for a given input.
func Analyze(meals []MealRecord, exercises []ExerciseRecord, limits Limits) Analysis {
	mealSummary := AggregateMeals(meals)
	return Analysis{
		Meals:       mealSummary,
		Exercise:    AggregateExercises(exercises),
		Suggestions: Advise(mealSummary.Day, limits),
	}
}
