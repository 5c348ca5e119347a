package notify

import (
	"context"
	"time"
)

// BatchSummary describes the outcome of one calendar submit batch.
type BatchSummary struct {
	Created    int
	Failed     int
	Failures   []string // summaries of the actions that failed
	FinishedAt time.Time
}

// Notifier delivers a batch summary to a specific recipient
type Notifier interface {
	// Send delivers the summary to the specified recipient
	Send(ctx context.Context, summary BatchSummary, recipient string) error
	// Name returns the notifier type name (for logging)
	Name() string
	// IsConfigured returns true if the notifier has server-side config
	IsConfigured() bool
}
