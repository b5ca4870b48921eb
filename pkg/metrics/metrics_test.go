package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveUpstreamCountsErrors(t *testing.T) {
	before := testutil.ToFloat64(upstreamErrors.WithLabelValues("diet"))

	ObserveUpstream("diet", 20*time.Millisecond, nil)
	ObserveUpstream("diet", 30*time.Millisecond, errors.New("boom"))

	require.Equal(t, before+1, testutil.ToFloat64(upstreamErrors.WithLabelValues("diet")))
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(analysisCache.WithLabelValues("hit"))
	misses := testutil.ToFloat64(analysisCache.WithLabelValues("miss"))

	RecordCacheLookup(true)
	RecordCacheLookup(false)
	RecordCacheLookup(false)

	require.Equal(t, hits+1, testutil.ToFloat64(analysisCache.WithLabelValues("hit")))
	require.Equal(t, misses+2, testutil.ToFloat64(analysisCache.WithLabelValues("miss")))
}

func TestRecordSkippedIgnoresZero(t *testing.T) {
	before := testutil.ToFloat64(skippedRecords.WithLabelValues("exercise"))

	RecordSkipped("exercise", 0)
	RecordSkipped("exercise", 3)

	require.Equal(t, before+3, testutil.ToFloat64(skippedRecords.WithLabelValues("exercise")))
}

func TestRecordMealLogged(t *testing.T) {
	before := testutil.ToFloat64(mealsLogged.WithLabelValues("Lunch"))

	RecordMealLogged("Lunch")

	require.Equal(t, before+1, testutil.ToFloat64(mealsLogged.WithLabelValues("Lunch")))
}
