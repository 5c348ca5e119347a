package gcal

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventAPI struct {
	mu        sync.Mutex
	created   []EventInput
	updated   []string
	failOn    map[string]bool
	callTimes []time.Time
}

func (f *fakeEventAPI) CreateEvent(calendarID string, input EventInput) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callTimes = append(f.callTimes, time.Now())
	if f.failOn[input.Summary] {
		return "", "", fmt.Errorf("boom")
	}
	f.created = append(f.created, input)
	id := fmt.Sprintf("evt_%d", len(f.created))
	return id, "https://calendar.google.com/event?eid=" + id, nil
}

func (f *fakeEventAPI) UpdateEvent(calendarID, eventID string, patch EventPatch) (*EventDetails, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callTimes = append(f.callTimes, time.Now())
	f.updated = append(f.updated, eventID)
	return &EventDetails{ID: eventID}, nil
}

type fakeSubmitDB struct {
	mu     sync.Mutex
	synced map[int64]string
	failed map[int64]string
}

func newFakeSubmitDB() *fakeSubmitDB {
	return &fakeSubmitDB{synced: make(map[int64]string), failed: make(map[int64]string)}
}

func (f *fakeSubmitDB) MarkActionSynced(id int64, googleEventID, eventLink string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.synced[id] = googleEventID
	return nil
}

func (f *fakeSubmitDB) MarkActionFailed(id int64, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failed[id] = reason
	return nil
}

func newTestWorker(api *fakeEventAPI, db *fakeSubmitDB, delayMilli int) *Worker {
	return NewWorker(api, db, WorkerConfig{SubmitDelayMilli: delayMilli})
}

func waitForBatch(t *testing.T, results <-chan BatchResult) BatchResult {
	t.Helper()
	select {
	case r := <-results:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for batch result")
		return BatchResult{}
	}
}

func TestWorkerSubmitsBatchInOrder(t *testing.T) {
	api := &fakeEventAPI{}
	db := newFakeSubmitDB()
	w := newTestWorker(api, db, 1)

	results := make(chan BatchResult, 1)
	w.OnBatchDone(func(r BatchResult) { results <- r })

	require.NoError(t, w.Start())
	defer w.Stop()

	err := w.Enqueue([]PendingAction{
		{RecordID: 1, Input: EventInput{Summary: "[전략] 기획"}},
		{RecordID: 2, Input: EventInput{Summary: "[전략] 제작"}},
		{RecordID: 3, Input: EventInput{Summary: "[전략] 실행"}},
	})
	require.NoError(t, err)

	result := waitForBatch(t, results)
	assert.Equal(t, 3, result.Created)
	assert.Equal(t, 0, result.Failed)

	require.Len(t, api.created, 3)
	assert.Equal(t, "[전략] 기획", api.created[0].Summary)
	assert.Equal(t, "[전략] 제작", api.created[1].Summary)
	assert.Equal(t, "[전략] 실행", api.created[2].Summary)

	assert.Equal(t, "evt_1", db.synced[1])
	assert.Equal(t, "evt_3", db.synced[3])
}

func TestWorkerKeepsGoingAfterFailure(t *testing.T) {
	api := &fakeEventAPI{failOn: map[string]bool{"[전략] 제작": true}}
	db := newFakeSubmitDB()
	w := newTestWorker(api, db, 1)

	results := make(chan BatchResult, 1)
	w.OnBatchDone(func(r BatchResult) { results <- r })

	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, w.Enqueue([]PendingAction{
		{RecordID: 1, Input: EventInput{Summary: "[전략] 기획"}},
		{RecordID: 2, Input: EventInput{Summary: "[전략] 제작"}},
		{RecordID: 3, Input: EventInput{Summary: "[전략] 실행"}},
	}))

	result := waitForBatch(t, results)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, []string{"[전략] 제작"}, result.Failures)

	// The failure is recorded; earlier and later events stay created.
	assert.Contains(t, db.failed[2], "boom")
	assert.Len(t, db.synced, 2)
	require.Len(t, api.created, 2)
	assert.Equal(t, "[전략] 실행", api.created[1].Summary)
}

func TestWorkerDelaysBetweenRequests(t *testing.T) {
	api := &fakeEventAPI{}
	db := newFakeSubmitDB()
	w := newTestWorker(api, db, 50)

	results := make(chan BatchResult, 1)
	w.OnBatchDone(func(r BatchResult) { results <- r })

	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, w.Enqueue([]PendingAction{
		{RecordID: 1, Input: EventInput{Summary: "a"}},
		{RecordID: 2, Input: EventInput{Summary: "b"}},
	}))

	waitForBatch(t, results)
	require.Len(t, api.callTimes, 2)
	assert.GreaterOrEqual(t, api.callTimes[1].Sub(api.callTimes[0]), 50*time.Millisecond)
}

func TestWorkerEmptyEnqueueIsNoop(t *testing.T) {
	w := newTestWorker(&fakeEventAPI{}, newFakeSubmitDB(), 1)
	assert.NoError(t, w.Enqueue(nil))
}

func TestWorkerQueueFull(t *testing.T) {
	// Not started, so nothing drains the queue.
	w := newTestWorker(&fakeEventAPI{}, newFakeSubmitDB(), 1)

	for i := 0; i < queueCapacity; i++ {
		require.NoError(t, w.Enqueue([]PendingAction{{RecordID: int64(i)}}))
	}
	assert.Error(t, w.Enqueue([]PendingAction{{RecordID: 99}}))
}

func TestWorkerRetagsLegacyEvents(t *testing.T) {
	api := &fakeEventAPI{}
	db := newFakeSubmitDB()
	w := newTestWorker(api, db, 1)

	require.NoError(t, w.Start())
	defer w.Stop()

	w.EnqueueRetag([]RetagItem{
		{EventID: "evt_a", Title: "릴스 챌린지", Description: "본문"},
		{EventID: "evt_b", Title: "테마 데이", Description: "본문"},
	})

	require.Eventually(t, func() bool {
		api.mu.Lock()
		defer api.mu.Unlock()
		return len(api.updated) == 2
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, []string{"evt_a", "evt_b"}, api.updated)
}
