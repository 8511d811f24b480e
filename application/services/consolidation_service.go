package services

import (
	"context"
	"time"

	"clutchdemo/application/ports"
	"clutchdemo/domain/clutch"
	pkgerrors "clutchdemo/pkg/errors"

	"go.uber.org/zap"
)

// ConsolidationService rolls a clutch's egg analyses up into counts stored
// on its metadata row
type ConsolidationService struct {
	repo    ports.ClutchRepository
	metrics ports.MetricsRecorder
	logger  *zap.Logger
	now     func() time.Time
}

// NewConsolidationService creates a new consolidation service. metrics may
// be nil.
func NewConsolidationService(repo ports.ClutchRepository, metrics ports.MetricsRecorder, logger *zap.Logger) *ConsolidationService {
	return &ConsolidationService{
		repo:    repo,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// Consolidate counts total and viable eggs of one clutch and saves them
func (s *ConsolidationService) Consolidate(ctx context.Context, clutchID string) (*clutch.Findings, error) {
	if clutchID == "" {
		return nil, pkgerrors.NewValidationError("clutchId is required")
	}

	details, err := s.repo.Get(ctx, clutchID)
	if err != nil {
		return nil, err
	}

	findings := clutch.Consolidate(clutchID, details.Eggs)
	if err := s.repo.SaveFindings(ctx, findings, s.now().UTC()); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordConsolidation(ctx, findings.TotalEggCount, findings.ViableEggCount)
	}

	s.logger.Info("Clutch consolidated",
		zap.String("clutchID", clutchID),
		zap.Int("totalEggCount", findings.TotalEggCount),
		zap.Int("viableEggCount", findings.ViableEggCount),
	)
	return &findings, nil
}

// ConsolidateAll consolidates every listed clutch, stopping at the first
// failure
func (s *ConsolidationService) ConsolidateAll(ctx context.Context) ([]clutch.Findings, error) {
	clutches, err := s.repo.List(ctx, 0)
	if err != nil {
		return nil, err
	}

	results := make([]clutch.Findings, 0, len(clutches))
	for _, c := range clutches {
		f, err := s.Consolidate(ctx, c.ID)
		if err != nil {
			return results, pkgerrors.Wrapf(err, "consolidating %s", c.ID)
		}
		results = append(results, *f)
	}
	return results, nil
}
