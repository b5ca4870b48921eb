package nutrition

// MealSlot labels one of the four fixed daily meal categories.
type MealSlot string

// Slot labels as delivered by the diet API. Matching is exact and case-sensitive.
const (
	Breakfast MealSlot = "Breakfast"
	Lunch     MealSlot = "Lunch"
	Dinner    MealSlot = "Dinner"
	Snacks    MealSlot = "snacks"
)

// MealSlots returns the slots in display order.
func MealSlots() []MealSlot {
	return []MealSlot{Breakfast, Lunch, Dinner, Snacks}
}

// Nutrient names one tracked macro.
type Nutrient string

const (
	Calories      Nutrient = "calories"
	Protein       Nutrient = "protein"
	Fat           Nutrient = "fat"
	Carbohydrates Nutrient = "carbohydrates"
)

// Nutrients returns the advisory iteration order.
func Nutrients() []Nutrient {
	return []Nutrient{Calories, Protein, Fat, Carbohydrates}
}

// Unit reports the measurement unit of the nutrient.
func (n Nutrient) Unit() string {
	if n == Calories {
		return "kcal"
	}
	return "g"
}

// Valid reports whether n is one of the tracked macros.
func (n Nutrient) Valid() bool {
	switch n {
	case Calories, Protein, Fat, Carbohydrates:
		return true
	default:
		return false
	}
}

// MealRecord is one logged meal as returned by the diet API.
type MealRecord struct {
	MealType      string `json:"mealType"`
	Calories      Amount `json:"calories"`
	Fat           Amount `json:"fat"`
	Protein       Amount `json:"protein"`
	Carbohydrates Amount `json:"carbohydrates"`
}

// ExerciseRecord is one logged exercise session.
type ExerciseRecord struct {
	ExerciseType string `json:"exerciseType"`
	CalorieBurn  Amount `json:"calorieBurn"`
	NumberOfMin  Amount `json:"numberofmin"`
}

// NutrientTotals holds summed macros.
type NutrientTotals struct {
	Calories      float64 `json:"calories"`
	Fat           float64 `json:"fat"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
}

// Add returns the element-wise sum of t and other.
func (t NutrientTotals) Add(other NutrientTotals) NutrientTotals {
	return NutrientTotals{
		Calories:      t.Calories + other.Calories,
		Fat:           t.Fat + other.Fat,
		Protein:       t.Protein + other.Protein,
		Carbohydrates: t.Carbohydrates + other.Carbohydrates,
	}
}

// Get returns the total for a single nutrient.
func (t NutrientTotals) Get(n Nutrient) float64 {
	switch n {
	case Calories:
		return t.Calories
	case Protein:
		return t.Protein
	case Fat:
		return t.Fat
	case Carbohydrates:
		return t.Carbohydrates
	default:
		return 0
	}
}

// MealSummary is the Meal Aggregator output.
type MealSummary struct {
	Slots     map[MealSlot]NutrientTotals `json:"slots"`
	Day       NutrientTotals              `json:"day"`
	Unmatched int                         `json:"unmatched"`
}

// ExerciseTotals accumulates one exercise bucket.
type ExerciseTotals struct {
	TotalCaloriesBurned float64 `json:"totalCaloriesBurned"`
	TotalDuration       float64 `json:"totalDuration"`
	Count               int     `json:"count"`
}

func (t ExerciseTotals) add(rec ExerciseRecord) ExerciseTotals {
	t.TotalCaloriesBurned += rec.CalorieBurn.Value()
	t.TotalDuration += rec.NumberOfMin.Value()
	t.Count++
	return t
}

// ExerciseSummary is the Exercise Aggregator output.
type ExerciseSummary struct {
	ByType  map[string]ExerciseTotals `json:"byType"`
	Types   []string                  `json:"types"`
	Total   ExerciseTotals            `json:"total"`
	Skipped int                       `json:"skipped"`
}

// Range is an inclusive target band for a nutrient.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Limit binds a nutrient to its target band.
type Limit struct {
	Nutrient Nutrient `json:"nutrient" yaml:"nutrient"`
	Range    `yaml:",inline"`
}

// Limits is an ordered rule table. Order drives advisory output order.
type Limits []Limit

// DefaultLimits returns the daily targets used when none are configured.
func DefaultLimits() Limits {
	return Limits{
		{Nutrient: Calories, Range: Range{Min: 1800, Max: 2200}},
		{Nutrient: Protein, Range: Range{Min: 50, Max: 70}},
		{Nutrient: Fat, Range: Range{Min: 50, Max: 70}},
		{Nutrient: Carbohydrates, Range: Range{Min: 225, Max: 325}},
	}
}

// Lookup returns the range configured for n.
func (l Limits) Lookup(n Nutrient) (Range, bool) {
	for _, limit := range l {
		if limit.Nutrient == n {
			return limit.Range, true
		}
	}
	return Range{}, false
}

// SuggestionKind classifies an advisory.
type SuggestionKind string

const (
	KindReduce   SuggestionKind = "reduce"
	KindIncrease SuggestionKind = "increase"
	KindBalanced SuggestionKind = "balanced"
)

// Suggestion is one advisory line.
type Suggestion struct {
	Kind     SuggestionKind `json:"kind"`
	Nutrient Nutrient       `json:"nutrient,omitempty"`
	Amount   float64        `json:"amount,omitempty"`
	Message  string         `json:"message"`
}

// Analysis bundles everything a dashboard renderer consumes.
type Analysis struct {
	Meals       MealSummary     `json:"meals"`
	Exercise    ExerciseSummary `json:"exercise"`
	Suggestions []Suggestion    `json:"suggestions"`
}
