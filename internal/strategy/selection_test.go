package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStrategies() []Strategy {
	return []Strategy{
		{
			ID:        1,
			Code:      "PHOTO",
			Title:     "포토 리뷰 이벤트",
			StartDate: "10월 20일 (월)",
			ActionPlans: []ActionPlan{
				{Title: "기획", Description: "1일 - 직접 실행", Icon: "🎯", Section: SectionPreparation, DaysFromStart: 0},
				{Title: "제작", Description: "2일 - 직접 실행", Icon: "✨", Section: SectionContent, DaysFromStart: 2},
				{Title: "실행", Description: "7일 - 직접 실행", Icon: "🚀", Section: SectionEvent, DaysFromStart: 4},
			},
		},
		{
			ID:        2,
			Code:      "VIP",
			Title:     "VIP 혜택 프로그램",
			StartDate: "10월 22일 (수)",
			ActionPlans: []ActionPlan{
				{Title: "설계", Section: SectionPreparation, DaysFromStart: 0},
				{Title: "운영", Section: SectionEvent, DaysFromStart: 3},
			},
		},
	}
}

func TestNewSelectionDefaults(t *testing.T) {
	sel := NewSelection(testStrategies(), newTestResolver())

	assert.Equal(t, 5, sel.TotalSelected())
	assert.Equal(t, 3, sel.SelectedCount(1))
	assert.True(t, sel.IsSelected(1, 0))
	assert.Equal(t, ModeDirect, sel.ActionMode(1, 0))
	assert.Equal(t, ModeDirect, sel.StrategyMode(2))
}

func TestToggleAction(t *testing.T) {
	sel := NewSelection(testStrategies(), newTestResolver())

	sel.ToggleAction(1, 1)
	assert.False(t, sel.IsSelected(1, 1))
	assert.Equal(t, 2, sel.SelectedCount(1))

	sel.ToggleAction(1, 1)
	assert.True(t, sel.IsSelected(1, 1))
	assert.Equal(t, 3, sel.SelectedCount(1))
}

func TestToggleActionModeIsPerAction(t *testing.T) {
	sel := NewSelection(testStrategies(), newTestResolver())

	sel.ToggleActionMode(1, 1)
	assert.Equal(t, ModeExpert, sel.ActionMode(1, 1))
	assert.Equal(t, ModeDirect, sel.ActionMode(1, 0))
	assert.Equal(t, ModeDirect, sel.ActionMode(1, 2))
	assert.Equal(t, ModeDirect, sel.StrategyMode(1))

	sel.ToggleActionMode(1, 1)
	assert.Equal(t, ModeDirect, sel.ActionMode(1, 1))
}

func TestBulkSetStrategyModeGuard(t *testing.T) {
	sel := NewSelection(testStrategies(), newTestResolver())

	// Partial selection rejects the bulk switch and changes nothing.
	sel.ToggleAction(1, 2)
	ok := sel.BulkSetStrategyMode(1, ModeExpert)
	assert.False(t, ok)
	assert.Equal(t, ModeDirect, sel.ActionMode(1, 0))
	assert.Equal(t, ModeDirect, sel.ActionMode(1, 1))
	assert.Equal(t, ModeDirect, sel.StrategyMode(1))

	// Full selection accepts it.
	sel.SelectAll(1)
	ok = sel.BulkSetStrategyMode(1, ModeExpert)
	assert.True(t, ok)
	assert.Equal(t, ModeExpert, sel.ActionMode(1, 0))
	assert.Equal(t, ModeExpert, sel.ActionMode(1, 1))
	assert.Equal(t, ModeExpert, sel.ActionMode(1, 2))
	assert.Equal(t, ModeExpert, sel.StrategyMode(1))

	// Other strategies are untouched.
	assert.Equal(t, ModeDirect, sel.ActionMode(2, 0))
}

func TestBulkSetStrategyModeUnknownStrategy(t *testing.T) {
	sel := NewSelection(testStrategies(), newTestResolver())
	assert.False(t, sel.BulkSetStrategyMode(99, ModeExpert))
}

func TestSelectAllDeselectAll(t *testing.T) {
	sel := NewSelection(testStrategies(), newTestResolver())

	sel.DeselectAll(1)
	assert.Equal(t, 0, sel.SelectedCount(1))
	assert.Equal(t, 2, sel.TotalSelected())

	sel.SelectAll(1)
	assert.Equal(t, 3, sel.SelectedCount(1))
}

func TestMaterializeMatchesSelectionExactly(t *testing.T) {
	sel := NewSelection(testStrategies(), newTestResolver())

	// Keep indices {0,2} of strategy 1, nothing of strategy 2.
	sel.ToggleAction(1, 1)
	sel.DeselectAll(2)

	actions := sel.Materialize()
	require.Len(t, actions, 2)
	assert.Equal(t, 0, actions[0].ActionIndex)
	assert.Equal(t, 2, actions[1].ActionIndex)
	for _, a := range actions {
		assert.Equal(t, 1, a.StrategyID)
		assert.Equal(t, "PHOTO", a.StrategyCode)
	}
}

func TestMaterializeOrderAndDates(t *testing.T) {
	sel := NewSelection(testStrategies(), newTestResolver())

	actions := sel.Materialize()
	require.Len(t, actions, 5)

	// Strategy order, then ascending index.
	assert.Equal(t, []int{1, 1, 1, 2, 2}, []int{
		actions[0].StrategyID, actions[1].StrategyID, actions[2].StrategyID,
		actions[3].StrategyID, actions[4].StrategyID,
	})
	assert.Equal(t, []int{0, 1, 2, 0, 1}, []int{
		actions[0].ActionIndex, actions[1].ActionIndex, actions[2].ActionIndex,
		actions[3].ActionIndex, actions[4].ActionIndex,
	})

	assert.Equal(t, time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC), actions[0].Date)
	assert.Equal(t, time.Date(2025, 10, 24, 0, 0, 0, 0, time.UTC), actions[2].Date)
	assert.Equal(t, time.Date(2025, 10, 25, 0, 0, 0, 0, time.UTC), actions[4].Date)
}

func TestMaterializeCarriesModes(t *testing.T) {
	sel := NewSelection(testStrategies(), newTestResolver())
	sel.ToggleActionMode(1, 2)

	actions := sel.Materialize()
	require.Len(t, actions, 5)
	assert.Equal(t, ModeDirect, actions[0].Mode)
	assert.Equal(t, ModeExpert, actions[2].Mode)
}

func TestStartDateOverlayAndReset(t *testing.T) {
	sel := NewSelection(testStrategies(), newTestResolver())

	overlay := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)
	sel.SetStartDate(1, overlay)
	actions := sel.Materialize()
	assert.Equal(t, overlay, actions[0].Date)

	sel.ResetStartDate(1)
	actions = sel.Materialize()
	assert.Equal(t, time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC), actions[0].Date)
	assert.Nil(t, sel.StartOverlay(1))
}

func TestSetSelectedIgnoresOutOfRange(t *testing.T) {
	sel := NewSelection(testStrategies(), newTestResolver())

	sel.SetSelected(1, []int{0, 2, 7, -1})
	assert.Equal(t, 2, sel.SelectedCount(1))

	actions := sel.Materialize()
	// 2 from strategy 1 plus the untouched 2 of strategy 2.
	require.Len(t, actions, 4)
}
