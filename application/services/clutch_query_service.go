package services

import (
	"context"
	"strings"

	"clutchdemo/application/ports"
	"clutchdemo/domain/clutch"
	pkgerrors "clutchdemo/pkg/errors"
)

// Listing page sizes
const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// ClutchQueryService serves the read side of the demo API
type ClutchQueryService struct {
	repo ports.ClutchRepository
}

// NewClutchQueryService creates a new query service
func NewClutchQueryService(repo ports.ClutchRepository) *ClutchQueryService {
	return &ClutchQueryService{repo: repo}
}

// ListClutches returns the newest clutches. A zero limit means the default;
// larger limits are capped.
func (s *ClutchQueryService) ListClutches(ctx context.Context, limit int) ([]*clutch.Clutch, error) {
	switch {
	case limit < 0:
		return nil, pkgerrors.NewValidationError("limit must not be negative")
	case limit == 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}

	clutches, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	if clutches == nil {
		clutches = []*clutch.Clutch{}
	}
	return clutches, nil
}

// GetClutch returns one clutch with its eggs
func (s *ClutchQueryService) GetClutch(ctx context.Context, clutchID string) (*clutch.Details, error) {
	clutchID = strings.TrimSpace(clutchID)
	if clutchID == "" {
		return nil, pkgerrors.NewValidationError("clutch id is required")
	}
	return s.repo.Get(ctx, clutchID)
}
