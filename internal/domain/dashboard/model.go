package dashboard

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/yanqian/dietdash/internal/domain/nutrition"
)

var (
	// ErrUserNotFound is returned by DietClient when the username does not resolve to a uid.
	ErrUserNotFound = errors.New("user not found")
	// ErrReportNotFound is returned by ObjectStorage when no object exists under the key.
	ErrReportNotFound = errors.New("report not found")
)

// Config drives dashboard behavior.
type Config struct {
	Limits   nutrition.Limits
	CacheTTL time.Duration
	Timezone string
}

// User is the subset of the diet API user record the dashboard needs.
type User struct {
	UID      int64  `json:"uid"`
	Username string `json:"username"`
	Fullname string `json:"fullname,omitempty"`
}

// DietClient reads records from the external diet API.
type DietClient interface {
	LookupUser(ctx context.Context, username string) (User, error)
	FetchMeals(ctx context.Context, userID int64, date string) ([]nutrition.MealRecord, error)
	FetchExercises(ctx context.Context, userID int64) ([]nutrition.ExerciseRecord, error)
	LogMeal(ctx context.Context, entry MealEntry) error
}

// Store memoizes analyses by record fingerprint.
type Store interface {
	Get(ctx context.Context, fingerprint string) (nutrition.Analysis, bool, error)
	Save(ctx context.Context, fingerprint string, analysis nutrition.Analysis, ttl time.Duration) error
}

// ObjectStorage persists exported reports.
type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte, mimeType string) (StoredObject, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// StoredObject describes an uploaded blob.
type StoredObject struct {
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
	ETag     string `json:"etag,omitempty"`
}

// Request identifies whose dashboard to build. UserID wins over Username when set.
type Request struct {
	Username string `json:"username"`
	UserID   int64  `json:"userId"`
	Date     string `json:"date"`
}

// ComputeRequest carries records supplied directly by the caller.
type ComputeRequest struct {
	Meals     []nutrition.MealRecord     `json:"meals"`
	Exercises []nutrition.ExerciseRecord `json:"exercises"`
}

// LogMealRequest records a portion of a catalogue food. Macros are given per
// 100 g and scaled by Quantity grams.
type LogMealRequest struct {
	Username string                   `json:"-"`
	UserID   int64                    `json:"-"`
	FoodID   int64                    `json:"fid"`
	Name     string                   `json:"name"`
	Per100g  nutrition.NutrientTotals `json:"per100g"`
	Quantity float64                  `json:"quantity"`
	MealType string                   `json:"mealType"`
	Time     string                   `json:"time"`
	Date     string                   `json:"date"`
}

// MealEntry is the meal record posted to the diet API.
type MealEntry struct {
	UID           int64   `json:"uid"`
	FoodID        int64   `json:"fid,omitempty"`
	Name          string  `json:"name"`
	MealType      string  `json:"mealType"`
	Calories      float64 `json:"calories"`
	Fat           float64 `json:"fat"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Quantity      float64 `json:"quantity"`
	Time          string  `json:"time"`
	Date          string  `json:"date"`
}

// Response is the renderer-facing dashboard payload.
type Response struct {
	UserID         int64                                           `json:"userId,omitempty"`
	Username       string                                          `json:"username,omitempty"`
	Fullname       string                                          `json:"fullname,omitempty"`
	Date           string                                          `json:"date,omitempty"`
	Slots          map[nutrition.MealSlot]nutrition.NutrientTotals `json:"slots"`
	Day            nutrition.NutrientTotals                        `json:"day"`
	Exercise       nutrition.ExerciseSummary                       `json:"exercise"`
	Suggestions    []nutrition.Suggestion                          `json:"suggestions"`
	Limits         nutrition.Limits                                `json:"limits"`
	UnmatchedMeals int                                             `json:"unmatchedMeals"`
	Cached         bool                                            `json:"cached"`
	Fingerprint    string                                          `json:"fingerprint"`
}

// ExportResponse describes an uploaded CSV report.
type ExportResponse struct {
	Report      StoredObject `json:"report"`
	GeneratedAt time.Time    `json:"generatedAt"`
	Dashboard   Response     `json:"dashboard"`
}
