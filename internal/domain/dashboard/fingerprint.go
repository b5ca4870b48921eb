package dashboard

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/yanqian/dietdash/internal/domain/nutrition"
)

type fingerprintInput struct {
	Meals     []nutrition.MealRecord     `json:"m"`
	Exercises []nutrition.ExerciseRecord `json:"e"`
	Limits    nutrition.Limits           `json:"l"`
}

// Fingerprint hashes the engine inputs. Equal record sequences and limits yield
// the same digest; record order matters because it drives first-seen type order.
func Fingerprint(meals []nutrition.MealRecord, exercises []nutrition.ExerciseRecord, limits nutrition.Limits) string {
	if meals == nil {
		meals = []nutrition.MealRecord{}
	}
	if exercises == nil {
		exercises = []nutrition.ExerciseRecord{}
	}
	payload, err := json.Marshal(fingerprintInput{Meals: meals, Exercises: exercises, Limits: limits})
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
