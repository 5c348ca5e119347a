package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAction(code string, index int) *ScheduledActionRecord {
	return &ScheduledActionRecord{
		StrategyCode:      code,
		StrategyTitle:     "릴스 챌린지",
		ActionIndex:       index,
		ActionTitle:       "콘셉트 기획",
		ActionIcon:        "🎯",
		ActionDescription: "1일 - 직접 실행",
		Section:           "preparation",
		Mode:              "direct",
		ScheduledDate:     time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateAndGetScheduledAction(t *testing.T) {
	db := NewTestDB(t)

	created, err := db.CreateScheduledAction(newTestAction("AI_GEN_1", 0))
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, ActionStatusPending, created.Status)
	assert.Equal(t, "AI_GEN_1", created.StrategyCode)
	assert.Nil(t, created.GoogleEventID)

	fetched, err := db.GetScheduledAction(created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, 0, fetched.ActionIndex)
}

func TestGetScheduledActionMissing(t *testing.T) {
	db := NewTestDB(t)

	rec, err := db.GetScheduledAction(12345)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestMarkActionSynced(t *testing.T) {
	db := NewTestDB(t)

	created, err := db.CreateScheduledAction(newTestAction("AI_GEN_1", 0))
	require.NoError(t, err)

	require.NoError(t, db.MarkActionSynced(created.ID, "evt_1", "https://calendar.google.com/e/1"))

	rec, err := db.GetScheduledAction(created.ID)
	require.NoError(t, err)
	assert.Equal(t, ActionStatusSynced, rec.Status)
	require.NotNil(t, rec.GoogleEventID)
	assert.Equal(t, "evt_1", *rec.GoogleEventID)
	require.NotNil(t, rec.EventLink)
	assert.Nil(t, rec.FailureReason)
}

func TestMarkActionFailed(t *testing.T) {
	db := NewTestDB(t)

	created, err := db.CreateScheduledAction(newTestAction("AI_GEN_1", 1))
	require.NoError(t, err)

	require.NoError(t, db.MarkActionFailed(created.ID, "rate limited"))

	rec, err := db.GetScheduledAction(created.ID)
	require.NoError(t, err)
	assert.Equal(t, ActionStatusFailed, rec.Status)
	require.NotNil(t, rec.FailureReason)
	assert.Equal(t, "rate limited", *rec.FailureReason)
}

func TestListScheduledActionsByStatus(t *testing.T) {
	db := NewTestDB(t)

	a, err := db.CreateScheduledAction(newTestAction("AI_GEN_1", 0))
	require.NoError(t, err)
	_, err = db.CreateScheduledAction(newTestAction("AI_GEN_1", 1))
	require.NoError(t, err)
	_, err = db.CreateScheduledAction(newTestAction("AI_GEN_2", 0))
	require.NoError(t, err)

	require.NoError(t, db.MarkActionSynced(a.ID, "evt_a", ""))

	all, err := db.ListScheduledActions("")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	pending, err := db.ListScheduledActions(ActionStatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	synced, err := db.ListScheduledActions(ActionStatusSynced)
	require.NoError(t, err)
	require.Len(t, synced, 1)
	assert.Equal(t, a.ID, synced[0].ID)
}

func TestDeleteActionByGoogleEventID(t *testing.T) {
	db := NewTestDB(t)

	a, err := db.CreateScheduledAction(newTestAction("AI_GEN_1", 0))
	require.NoError(t, err)
	require.NoError(t, db.MarkActionSynced(a.ID, "evt_a", ""))

	require.NoError(t, db.DeleteActionByGoogleEventID("evt_a"))

	rec, err := db.GetScheduledAction(a.ID)
	require.NoError(t, err)
	assert.Nil(t, rec)

	// Deleting an unknown event id is a no-op.
	require.NoError(t, db.DeleteActionByGoogleEventID("evt_unknown"))
}

func TestInvalidSectionRejected(t *testing.T) {
	db := NewTestDB(t)

	bad := newTestAction("AI_GEN_1", 0)
	bad.Section = "someday"
	_, err := db.CreateScheduledAction(bad)
	assert.Error(t, err)
}

func TestRecordAndListGenerations(t *testing.T) {
	db := NewTestDB(t)

	id, err := db.RecordGeneration("전략 1: 테스트", 1, false, 1500*time.Millisecond)
	require.NoError(t, err)
	assert.NotZero(t, id)

	_, err = db.RecordGeneration("no markers here", 2, true, 900*time.Millisecond)
	require.NoError(t, err)

	records, err := db.ListRecentGenerations(10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "no markers here", records[0].RawContent)
	assert.True(t, records[0].UsedFallback)
	assert.Equal(t, int64(1500), records[1].ProcessingMs)
	assert.Equal(t, 1, records[1].StrategyCount)
}
