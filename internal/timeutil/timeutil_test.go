package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLocation(t *testing.T) {
	loc, fallback := ResolveLocation("Asia/Seoul")
	assert.Equal(t, "Asia/Seoul", loc.String())
	assert.False(t, fallback)

	loc, fallback = ResolveLocation("")
	assert.Equal(t, "Asia/Seoul", loc.String())
	assert.True(t, fallback)

	loc, fallback = ResolveLocation("Not/AZone")
	assert.Equal(t, "Asia/Seoul", loc.String())
	assert.True(t, fallback)
}

func TestParseDateTime(t *testing.T) {
	t.Run("rfc3339 keeps offset", func(t *testing.T) {
		got, fallback, err := ParseDateTime("2025-10-20T09:00:00+09:00", "")
		require.NoError(t, err)
		assert.False(t, fallback)
		_, offset := got.Zone()
		assert.Equal(t, 9*60*60, offset)
	})

	t.Run("local layout in timezone", func(t *testing.T) {
		got, fallback, err := ParseDateTime("2025-10-20T09:00", "Asia/Seoul")
		require.NoError(t, err)
		assert.False(t, fallback)
		assert.Equal(t, "Asia/Seoul", got.Location().String())
		assert.Equal(t, 9, got.Hour())
	})

	t.Run("empty value rejected", func(t *testing.T) {
		_, _, err := ParseDateTime("", "Asia/Seoul")
		assert.Error(t, err)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, _, err := ParseDateTime("next tuesday", "Asia/Seoul")
		assert.Error(t, err)
	})
}

func TestParseDate(t *testing.T) {
	got, fallback, err := ParseDate("2025-10-20", "Asia/Seoul")
	require.NoError(t, err)
	assert.False(t, fallback)
	assert.Equal(t, time.Date(2025, 10, 20, 0, 0, 0, 0, got.Location()), got)

	_, _, err = ParseDate("10/20/2025", "Asia/Seoul")
	assert.Error(t, err)
}
