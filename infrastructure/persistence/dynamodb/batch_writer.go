package dynamodb

import (
	"context"
	"fmt"
	"time"

	"clutchdemo/application/ports"
	"clutchdemo/domain/clutch"
	pkgerrors "clutchdemo/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

const (
	// maxBatchWriteItems is DynamoDB's per-call limit for BatchWriteItem
	maxBatchWriteItems = 25

	defaultMaxAttempts = 8
	defaultBaseDelay   = 50 * time.Millisecond
)

// BatchWriter buffers put requests and submits them with BatchWriteItem,
// 25 at a time. Items DynamoDB hands back as unprocessed, and whole batches
// rejected by throttling, are resubmitted with exponential backoff.
//
// A BatchWriter is not safe for concurrent use.
type BatchWriter struct {
	client      BatchWriteAPI
	tableName   string
	logger      *zap.Logger
	pending     []types.WriteRequest
	written     int
	err         error
	maxAttempts int
	baseDelay   time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
}

// BatchWriterOption configures a BatchWriter
type BatchWriterOption func(*BatchWriter)

// WithRetryPolicy sets how often unprocessed items are resubmitted and the
// first backoff delay
func WithRetryPolicy(maxAttempts int, baseDelay time.Duration) BatchWriterOption {
	return func(w *BatchWriter) {
		if maxAttempts > 0 {
			w.maxAttempts = maxAttempts
		}
		w.baseDelay = baseDelay
	}
}

// withSleeper replaces the backoff sleep; used by tests
func withSleeper(sleep func(ctx context.Context, d time.Duration) error) BatchWriterOption {
	return func(w *BatchWriter) {
		w.sleep = sleep
	}
}

// NewBatchWriter creates a new BatchWriter
func NewBatchWriter(client BatchWriteAPI, tableName string, logger *zap.Logger, opts ...BatchWriterOption) *BatchWriter {
	w := &BatchWriter{
		client:      client,
		tableName:   tableName,
		logger:      logger,
		pending:     make([]types.WriteRequest, 0, maxBatchWriteItems),
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
		sleep:       sleepContext,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WithBatchWriter runs fn with a fresh BatchWriter and flushes whatever is
// still buffered when fn returns, whether or not fn failed. fn's error takes
// precedence over a flush error.
func WithBatchWriter(ctx context.Context, client BatchWriteAPI, tableName string, logger *zap.Logger, fn func(w *BatchWriter) error, opts ...BatchWriterOption) (err error) {
	w := NewBatchWriter(client, tableName, logger, opts...)
	defer func() {
		if flushErr := w.Flush(ctx); err == nil {
			err = flushErr
		}
	}()
	return fn(w)
}

// Put queues a domain record, flushing when a full batch has accumulated
func (w *BatchWriter) Put(ctx context.Context, record clutch.Record) error {
	item, err := marshalRecord(record)
	if err != nil {
		return pkgerrors.NewInternalError("failed to marshal record").WithCause(err)
	}
	return w.PutItem(ctx, item)
}

// PutItem queues a raw item, flushing when a full batch has accumulated
func (w *BatchWriter) PutItem(ctx context.Context, item map[string]types.AttributeValue) error {
	if w.err != nil {
		return w.err
	}
	w.pending = append(w.pending, types.WriteRequest{
		PutRequest: &types.PutRequest{Item: item},
	})
	if len(w.pending) >= maxBatchWriteItems {
		return w.Flush(ctx)
	}
	return nil
}

// Flush submits all buffered requests. After a failed submission the writer
// is poisoned: later calls return the same error without writing.
func (w *BatchWriter) Flush(ctx context.Context) error {
	if w.err != nil {
		return w.err
	}
	for len(w.pending) > 0 {
		n := len(w.pending)
		if n > maxBatchWriteItems {
			n = maxBatchWriteItems
		}
		batch := w.pending[:n]
		w.pending = w.pending[n:]

		if err := w.submit(ctx, batch); err != nil {
			w.err = err
			return err
		}
	}
	return nil
}

// Written returns how many items DynamoDB has acknowledged
func (w *BatchWriter) Written() int {
	return w.written
}

// Pending returns how many items are buffered and not yet submitted
func (w *BatchWriter) Pending() int {
	return len(w.pending)
}

// submit writes one batch, resubmitting unprocessed items until none remain
// or the attempt budget is spent
func (w *BatchWriter) submit(ctx context.Context, requests []types.WriteRequest) error {
	for attempt := 1; ; attempt++ {
		input := &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				w.tableName: requests,
			},
		}

		result, err := w.client.BatchWriteItem(ctx, input)
		var unprocessed []types.WriteRequest
		switch {
		case err != nil && pkgerrors.IsThrottling(err) && attempt < w.maxAttempts:
			// The whole batch was rejected; resubmit it like unprocessed items
			w.logger.Warn("Batch write throttled",
				zap.Error(err),
				zap.String("table", w.tableName),
				zap.Int("items", len(requests)),
				zap.Int("attempt", attempt),
			)
			unprocessed = requests
		case err != nil:
			w.logger.Error("Batch write failed",
				zap.Error(err),
				zap.String("table", w.tableName),
				zap.Int("items", len(requests)),
				zap.Int("attempt", attempt),
			)
			return pkgerrors.NewDatabaseError("BatchWriteItem", err)
		default:
			unprocessed = result.UnprocessedItems[w.tableName]
			w.written += len(requests) - len(unprocessed)
		}

		if len(unprocessed) == 0 {
			w.logger.Debug("Batch written",
				zap.String("table", w.tableName),
				zap.Int("items", len(requests)),
				zap.Int("attempt", attempt),
			)
			return nil
		}

		if attempt >= w.maxAttempts {
			return pkgerrors.NewDatabaseError("BatchWriteItem",
				fmt.Errorf("%d items still unprocessed after %d attempts", len(unprocessed), attempt))
		}

		delay := w.baseDelay << (attempt - 1)
		w.logger.Warn("Resubmitting unprocessed items",
			zap.String("table", w.tableName),
			zap.Int("unprocessed", len(unprocessed)),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", delay),
		)
		if err := w.sleep(ctx, delay); err != nil {
			return pkgerrors.NewDatabaseError("BatchWriteItem", err)
		}
		requests = unprocessed
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// TableWriter opens BatchWriter sessions against one table
type TableWriter struct {
	client    BatchWriteAPI
	tableName string
	logger    *zap.Logger
	opts      []BatchWriterOption
}

// NewTableWriter creates a new TableWriter
func NewTableWriter(client BatchWriteAPI, tableName string, logger *zap.Logger, opts ...BatchWriterOption) *TableWriter {
	return &TableWriter{
		client:    client,
		tableName: tableName,
		logger:    logger,
		opts:      opts,
	}
}

// WithBatch implements ports.RecordStore
func (t *TableWriter) WithBatch(ctx context.Context, fn func(batch ports.RecordBatch) error) error {
	return WithBatchWriter(ctx, t.client, t.tableName, t.logger, func(w *BatchWriter) error {
		return fn(w)
	}, t.opts...)
}

var _ ports.RecordStore = (*TableWriter)(nil)
