package gcal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jalnangage/marketing-agent/internal/strategy"
)

const (
	defaultSubmitDelay = 500 * time.Millisecond
	stopWaitTimeout    = 5 * time.Second
	queueCapacity      = 16
)

// eventAPI is the slice of Client the worker writes through.
type eventAPI interface {
	CreateEvent(calendarID string, input EventInput) (string, string, error)
	UpdateEvent(calendarID, eventID string, patch EventPatch) (*EventDetails, error)
}

// SubmitDB records the durable outcome of each submitted action.
type SubmitDB interface {
	MarkActionSynced(id int64, googleEventID, eventLink string) error
	MarkActionFailed(id int64, reason string) error
}

// PendingAction is one scheduled action queued for calendar creation,
// already persisted with RecordID.
type PendingAction struct {
	RecordID int64
	Input    EventInput
}

// RetagItem is a legacy strategy event queued for re-tagging.
type RetagItem struct {
	EventID     string
	Title       string
	Description string
}

// BatchResult summarizes one processed submit batch.
type BatchResult struct {
	Created  int
	Failed   int
	Failures []string
}

type job struct {
	actions []PendingAction
	retags  []RetagItem
}

// Worker pushes scheduled actions to Google Calendar one request at a
// time with a fixed delay between requests. The sequential pacing is a
// rate-limit courtesy toward the provider, so batches must never be
// fanned out concurrently. A failed item is recorded and skipped;
// already-created events stay in place.
type Worker struct {
	client     eventAPI
	db         SubmitDB
	calendarID string
	delay      time.Duration
	queue      chan job

	onBatchDone func(BatchResult)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// WorkerConfig contains configuration for the calendar submit worker.
type WorkerConfig struct {
	CalendarID       string
	SubmitDelayMilli int
}

// NewWorker creates a new calendar submit worker.
func NewWorker(client eventAPI, db SubmitDB, config WorkerConfig) *Worker {
	ctx, cancel := context.WithCancel(context.Background())

	delay := time.Duration(config.SubmitDelayMilli) * time.Millisecond
	if delay <= 0 {
		delay = defaultSubmitDelay
	}

	calendarID := config.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}

	return &Worker{
		client:     client,
		db:         db,
		calendarID: calendarID,
		delay:      delay,
		queue:      make(chan job, queueCapacity),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// OnBatchDone registers a callback invoked after each submit batch
// finishes. Set before Start.
func (w *Worker) OnBatchDone(fn func(BatchResult)) {
	w.onBatchDone = fn
}

// Start begins draining the submit queue.
func (w *Worker) Start() error {
	fmt.Printf("Calendar submit worker: starting with %v inter-request delay\n", w.delay)

	w.wg.Add(1)
	go w.drainLoop()

	return nil
}

// Stop gracefully shuts down the worker.
func (w *Worker) Stop() {
	fmt.Println("Calendar submit worker: stopping...")
	w.cancel()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		fmt.Println("Calendar submit worker: stopped")
	case <-time.After(stopWaitTimeout):
		fmt.Printf("Calendar submit worker: stop timed out after %v; continuing shutdown\n", stopWaitTimeout)
	}
}

// Enqueue queues a batch of scheduled actions for creation. Returns an
// error when the queue is full rather than blocking the caller.
func (w *Worker) Enqueue(actions []PendingAction) error {
	if len(actions) == 0 {
		return nil
	}
	select {
	case w.queue <- job{actions: actions}:
		return nil
	default:
		return fmt.Errorf("submit queue is full")
	}
}

// EnqueueRetag queues legacy events for background re-tagging. Dropped
// silently when the queue is full: re-tagging is opportunistic and the
// next listing will offer the same events again.
func (w *Worker) EnqueueRetag(items []RetagItem) {
	if len(items) == 0 {
		return
	}
	select {
	case w.queue <- job{retags: items}:
	default:
	}
}

func (w *Worker) drainLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case j := <-w.queue:
			if len(j.actions) > 0 {
				result := w.submitBatch(j.actions)
				if w.onBatchDone != nil {
					w.onBatchDone(result)
				}
			}
			if len(j.retags) > 0 {
				w.retagBatch(j.retags)
			}
		}
	}
}

// submitBatch creates events strictly in order. Each item is marked
// synced or failed independently; nothing is rolled back.
func (w *Worker) submitBatch(actions []PendingAction) BatchResult {
	var result BatchResult

	for i, action := range actions {
		eventID, eventLink, err := w.client.CreateEvent(w.calendarID, action.Input)
		if err != nil {
			result.Failed++
			result.Failures = append(result.Failures, action.Input.Summary)
			fmt.Printf("Calendar submit worker: failed to create event %q: %v\n", action.Input.Summary, err)
			if dbErr := w.db.MarkActionFailed(action.RecordID, err.Error()); dbErr != nil {
				fmt.Printf("Calendar submit worker: failed to record failure for action %d: %v\n", action.RecordID, dbErr)
			}
		} else {
			result.Created++
			if dbErr := w.db.MarkActionSynced(action.RecordID, eventID, eventLink); dbErr != nil {
				fmt.Printf("Calendar submit worker: failed to record sync for action %d: %v\n", action.RecordID, dbErr)
			}
		}

		if i < len(actions)-1 && !w.pause() {
			return result
		}
	}
	return result
}

// retagBatch rewrites legacy events with the explicit tags, at the same
// pace as creation. Failures are logged and skipped.
func (w *Worker) retagBatch(items []RetagItem) {
	for i, item := range items {
		summary := TitleTag + " " + item.Title
		description := DescriptionTag + "\n" + item.Description
		_, err := w.client.UpdateEvent(w.calendarID, item.EventID, EventPatch{
			Summary:     &summary,
			Description: &description,
		})
		if err != nil {
			fmt.Printf("Calendar submit worker: failed to retag event %s: %v\n", item.EventID, err)
		}

		if i < len(items)-1 && !w.pause() {
			return
		}
	}
}

// pause sleeps the inter-request delay; false means the worker is stopping.
func (w *Worker) pause() bool {
	select {
	case <-w.ctx.Done():
		return false
	case <-time.After(w.delay):
		return true
	}
}

// BuildActionEvent formats one scheduled action as calendar event input.
// The event runs one hour from the resolved anchor time and carries the
// tags plus the strategy join metadata in its description.
func BuildActionEvent(a strategy.ScheduledAction, timezone string) EventInput {
	modeLabel := "직접 실행"
	if a.Mode == strategy.ModeExpert {
		modeLabel = "전문가 요청"
	}

	description := fmt.Sprintf("%s\n%s %s\n\n전략: %s\n전략 코드: %s\n실행 모드: %s",
		DescriptionTag, a.ActionIcon, a.ActionDescription, a.StrategyTitle, a.StrategyCode, modeLabel)

	return EventInput{
		Summary:     TitleTag + " " + a.ActionTitle,
		Description: description,
		StartTime:   a.Date,
		EndTime:     a.Date.Add(time.Hour),
		Timezone:    timezone,
	}
}
