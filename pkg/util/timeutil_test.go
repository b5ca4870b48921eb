package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-03-09")
	require.NoError(t, err)
	require.Equal(t, "2024-03-09", got)

	_, err = ParseDate("09/03/2024")
	require.Error(t, err)
	_, err = ParseDate("2024-02-30")
	require.Error(t, err)
}

func TestLoadLocationFallsBack(t *testing.T) {
	require.Equal(t, time.UTC, LoadLocation(""))
	require.Equal(t, time.UTC, LoadLocation("Not/AZone"))
}
