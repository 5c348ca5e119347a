package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver() DateResolver {
	r := NewDateResolver(time.UTC)
	r.Now = func() time.Time { return testNow }
	return r
}

func TestFormatKoreanDate(t *testing.T) {
	// 2025-10-20 is a Monday.
	assert.Equal(t, "10월 20일 (월)", FormatKoreanDate(time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "1월 5일 (일)", FormatKoreanDate(time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)))
}

func TestParseKoreanDate(t *testing.T) {
	r := newTestResolver()

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "with weekday suffix",
			input: "10월 20일 (월)",
			want:  time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "without space",
			input: "3월5일",
			want:  time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "embedded in sentence",
			input: "시작일: 12월 1일부터",
			want:  time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "unparseable falls back to today",
			input: "다음 주쯤",
			want:  time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.ParseKoreanDate(tt.input))
		})
	}
}

func TestResolveOffsetsFromAnchor(t *testing.T) {
	r := newTestResolver()
	s := Strategy{
		ID:        1,
		StartDate: "10월 20일 (월)",
		ActionPlans: []ActionPlan{
			{Title: "a", DaysFromStart: 0},
			{Title: "b", DaysFromStart: 2},
			{Title: "c", DaysFromStart: 7},
		},
	}

	dates := r.Resolve(s, nil)
	require.Len(t, dates, 3)
	assert.Equal(t, time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC), dates[0])
	assert.Equal(t, time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC), dates[1])
	assert.Equal(t, time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC), dates[2])
}

func TestResolveIsIdempotent(t *testing.T) {
	r := newTestResolver()
	s := Strategy{
		ID:        1,
		StartDate: "10월 20일 (월)",
		ActionPlans: []ActionPlan{
			{Title: "a", DaysFromStart: 0},
			{Title: "b", DaysFromStart: 3},
		},
	}

	first := r.Resolve(s, nil)
	second := r.Resolve(s, nil)
	assert.Equal(t, first, second)
	assert.Equal(t, "10월 20일 (월)", s.StartDate)
}

func TestResolveWithOverlay(t *testing.T) {
	r := newTestResolver()
	s := Strategy{
		ID:        1,
		StartDate: "10월 20일 (월)",
		ActionPlans: []ActionPlan{
			{Title: "a", DaysFromStart: 0},
			{Title: "b", DaysFromStart: 4},
		},
	}

	overlay := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)
	dates := r.Resolve(s, &overlay)
	assert.Equal(t, overlay, dates[0])
	assert.Equal(t, overlay.AddDate(0, 0, 4), dates[1])

	// Strategy default is untouched; dropping the overlay restores it.
	assert.Equal(t, time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC), r.Resolve(s, nil)[0])
}

func TestResolveCrossesMonthBoundary(t *testing.T) {
	r := newTestResolver()
	s := Strategy{
		ID:          1,
		StartDate:   "10월 30일 (목)",
		ActionPlans: []ActionPlan{{Title: "a", DaysFromStart: 5}},
	}

	assert.Equal(t, time.Date(2025, 11, 4, 0, 0, 0, 0, time.UTC), r.Resolve(s, nil)[0])
}
