package dashboardstore

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/dietdash/internal/domain/nutrition"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	analysis := nutrition.Analyze([]nutrition.MealRecord{{MealType: "Lunch", Calories: 900}}, nil, nutrition.DefaultLimits())

	_, ok, err := store.Get(context.Background(), "abc")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Save(context.Background(), "abc", analysis, time.Minute))
	got, ok, err := store.Get(context.Background(), "abc")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, analysis, got)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	current := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	require.NoError(t, store.Save(context.Background(), "short", nutrition.Analysis{}, time.Minute))
	require.NoError(t, store.Save(context.Background(), "forever", nutrition.Analysis{}, 0))

	current = current.Add(2 * time.Minute)

	_, ok, err := store.Get(context.Background(), "short")
	require.NoError(t, err)
	require.False(t, ok)
	_, ok, err = store.Get(context.Background(), "forever")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestMemoryStoreIgnoresEmptyFingerprint(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), "", nutrition.Analysis{}, time.Minute))
	require.Empty(t, store.entries)
}

func TestAnalysisSurvivesJSONEncoding(t *testing.T) {
	analysis := nutrition.Analyze(
		[]nutrition.MealRecord{{MealType: "Breakfast", Calories: 2300, Fat: 60, Protein: 60, Carbohydrates: 275}},
		[]nutrition.ExerciseRecord{{ExerciseType: "Run", CalorieBurn: 200, NumberOfMin: 20}},
		nutrition.DefaultLimits(),
	)
	payload, err := json.Marshal(analysis)
	require.NoError(t, err)

	var decoded nutrition.Analysis
	require.NoError(t, json.Unmarshal(payload, &decoded))
	require.Equal(t, analysis, decoded)
}

func TestValkeyStoreKey(t *testing.T) {
	require.Equal(t, "dietdash:analysis:f00", NewValkeyStore(nil, "").analysisKey("f00"))
	require.Equal(t, "staging:analysis:f00", NewValkeyStore(nil, "staging").analysisKey("f00"))
}
