package services

import (
	"context"
	"io"
	"strconv"
	"time"

	"clutchdemo/application/ports"
	"clutchdemo/domain/clutch"
	pkgerrors "clutchdemo/pkg/errors"
	"clutchdemo/pkg/observability"

	"go.uber.org/zap"
)

// RecordGenerator produces the records a populate run writes
type RecordGenerator interface {
	Generate() ([]clutch.Record, error)
}

// Tracer is the tracing surface the populate run uses.
// *observability.Tracer implements it.
type Tracer interface {
	TraceRoot(ctx context.Context, name string, fn func(context.Context) error) error
	TraceFunction(ctx context.Context, name string, fn func(context.Context) error) error
	AddAnnotation(ctx context.Context, key string, value string)
}

// PopulateService seeds the clutch table with generated demo data.
// Progress and the summary go to out; diagnostics go to the logger.
type PopulateService struct {
	generator RecordGenerator
	store     ports.RecordStore
	publisher ports.EventPublisher
	metrics   ports.MetricsRecorder
	tracer    Tracer
	tableName string
	out       io.Writer
	logger    *zap.Logger
}

// PopulateOption configures a PopulateService
type PopulateOption func(*PopulateService)

// WithPublisher publishes a consolidation request per clutch after seeding
func WithPublisher(p ports.EventPublisher) PopulateOption {
	return func(s *PopulateService) {
		s.publisher = p
	}
}

// WithMetrics records run metrics
func WithMetrics(m ports.MetricsRecorder) PopulateOption {
	return func(s *PopulateService) {
		s.metrics = m
	}
}

// WithTracer traces the run
func WithTracer(t Tracer) PopulateOption {
	return func(s *PopulateService) {
		s.tracer = t
	}
}

// WithTableName names the target table in traces and logs
func WithTableName(name string) PopulateOption {
	return func(s *PopulateService) {
		s.tableName = name
	}
}

// NewPopulateService creates a new populate service
func NewPopulateService(
	generator RecordGenerator,
	store ports.RecordStore,
	out io.Writer,
	logger *zap.Logger,
	opts ...PopulateOption,
) *PopulateService {
	s := &PopulateService{
		generator: generator,
		store:     store,
		tracer:    observability.NewTracer("populate", false),
		out:       out,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Populate generates the demo data, writes it in one batching session and
// prints the summary. A failed write aborts the run before the summary.
func (s *PopulateService) Populate(ctx context.Context) (*Summary, error) {
	start := time.Now()

	var summary *Summary
	err := s.tracer.TraceRoot(ctx, "populate", func(ctx context.Context) error {
		var err error
		summary, err = s.populate(ctx)
		return err
	})

	if s.metrics != nil {
		var clutches, eggs int
		if summary != nil {
			clutches, eggs = summary.Clutches, summary.Eggs
		}
		s.metrics.RecordSeedRun(ctx, clutches, eggs, time.Since(start), err)
	}

	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *PopulateService) populate(ctx context.Context) (*Summary, error) {
	pw := &progressWriter{w: s.out}

	pw.printf("Generating sample clutch data...\n")
	records, err := s.generator.Generate()
	if err != nil {
		return nil, pkgerrors.NewInternalError("failed to generate clutch data").WithCause(err)
	}

	counts := clutch.CountByKind(records)
	if s.tableName != "" {
		s.tracer.AddAnnotation(ctx, "table", s.tableName)
	}
	s.tracer.AddAnnotation(ctx, "clutches", strconv.Itoa(counts[clutch.KindMetadata]))
	s.tracer.AddAnnotation(ctx, "eggs", strconv.Itoa(counts[clutch.KindEgg]))

	pw.printf("Inserting %d records into DynamoDB...\n", len(records))

	err = s.tracer.TraceFunction(ctx, "batch-write", func(ctx context.Context) error {
		return s.store.WithBatch(ctx, func(batch ports.RecordBatch) error {
			for _, r := range records {
				if err := batch.Put(ctx, r); err != nil {
					return err
				}
				pw.printf("Inserted: %s - %s\n", r.PartitionKey(), r.SortKey())
			}
			return nil
		})
	})
	if err != nil {
		s.logger.Error("Populate failed",
			zap.Error(err),
			zap.String("table", s.tableName),
			zap.Int("records", len(records)),
		)
		return nil, err
	}

	pw.printf("✅ Sample clutch data populated successfully!\n")

	summary := Summarize(records)
	if _, err := summary.WriteTo(s.out); err != nil {
		return nil, pkgerrors.NewInternalError("failed to write summary").WithCause(err)
	}
	if pw.err != nil {
		return nil, pkgerrors.NewInternalError("failed to write progress").WithCause(pw.err)
	}

	s.logger.Info("Clutch data populated",
		zap.Int("clutches", summary.Clutches),
		zap.Int("eggs", summary.Eggs),
	)

	if s.publisher != nil {
		err := s.tracer.TraceFunction(ctx, "publish-consolidate", func(ctx context.Context) error {
			return s.publisher.PublishConsolidateRequests(ctx, summary.ClutchIDs)
		})
		if err != nil {
			s.logger.Error("Failed to request consolidation", zap.Error(err))
			return &summary, err
		}
		s.logger.Info("Consolidation requested", zap.Int("clutches", len(summary.ClutchIDs)))
	}

	return &summary, nil
}
