package ports

import (
	"context"
	"time"

	"clutchdemo/domain/clutch"
)

// RecordBatch buffers puts inside a batching session
type RecordBatch interface {
	// Put queues a record; the batch may flush to the store on any call
	Put(ctx context.Context, record clutch.Record) error
}

// RecordStore opens batched write sessions against the clutch table
// This is a port in hexagonal architecture - the application doesn't know about the implementation
type RecordStore interface {
	// WithBatch runs fn inside a batching session. Everything queued is
	// flushed before WithBatch returns, including when fn fails.
	WithBatch(ctx context.Context, fn func(batch RecordBatch) error) error
}

// ClutchRepository reads clutches back and records consolidated findings
type ClutchRepository interface {
	// List returns clutch metadata newest upload first
	List(ctx context.Context, limit int) ([]*clutch.Clutch, error)

	// Get returns a clutch with all eggs in its partition
	Get(ctx context.Context, clutchID string) (*clutch.Details, error)

	// SaveFindings writes the consolidated counts onto the metadata row
	SaveFindings(ctx context.Context, findings clutch.Findings, consolidatedAt time.Time) error
}

// EventPublisher emits integration events for downstream processing
type EventPublisher interface {
	// PublishConsolidateRequests asks the consolidation function to process
	// each clutch
	PublishConsolidateRequests(ctx context.Context, clutchIDs []string) error
}

// MetricsRecorder records run metrics. Implementations must not fail the
// caller.
type MetricsRecorder interface {
	RecordSeedRun(ctx context.Context, clutches, eggs int, duration time.Duration, err error)
	RecordConsolidation(ctx context.Context, total, viable int)
}
