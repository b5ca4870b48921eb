package nutrition

// AggregateMeals sums macros per meal slot and over the whole day.
// Records whose MealType is not one of the four slot labels count as unmatched
// and contribute to nothing.
func AggregateMeals(records []MealRecord) MealSummary {
	slots := make(map[MealSlot]NutrientTotals, 4)
	for _, slot := range MealSlots() {
		slots[slot] = NutrientTotals{}
	}

	unmatched := 0
	for _, rec := range records {
		slot := MealSlot(rec.MealType)
		current, ok := slots[slot]
		if !ok {
			unmatched++
			continue
		}
		slots[slot] = current.Add(mealTotals(rec))
	}

	var day NutrientTotals
	for _, slot := range MealSlots() {
		day = day.Add(slots[slot])
	}

	return MealSummary{Slots: slots, Day: day, Unmatched: unmatched}
}

func mealTotals(rec MealRecord) NutrientTotals {
	return NutrientTotals{
		Calories:      rec.Calories.Value(),
		Fat:           rec.Fat.Value(),
		Protein:       rec.Protein.Value(),
		Carbohydrates: rec.Carbohydrates.Value(),
	}
}

// AggregateExercises groups sessions by their exercise type. Records with an
// empty type are skipped and counted rather than merged into a blank bucket;
// any other label, whitespace included, gets its own bucket.
func AggregateExercises(records []ExerciseRecord) ExerciseSummary {
	summary := ExerciseSummary{
		ByType: make(map[string]ExerciseTotals),
		Types:  make([]string, 0),
	}
	for _, rec := range records {
		if rec.ExerciseType == "" {
			summary.Skipped++
			continue
		}
		bucket, seen := summary.ByType[rec.ExerciseType]
		if !seen {
			summary.Types = append(summary.Types, rec.ExerciseType)
		}
		summary.ByType[rec.ExerciseType] = bucket.add(rec)
		summary.Total = summary.Total.add(rec)
	}
	return summary
}
