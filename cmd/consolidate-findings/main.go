// Package main implements the Lambda handler that consolidates a clutch's
// egg findings when a Consolidate Findings event arrives.
package main

import (
	"context"
	"encoding/json"
	"log"

	"clutchdemo/domain/clutch"
	"clutchdemo/infrastructure/config"
	"clutchdemo/infrastructure/di"
	"clutchdemo/infrastructure/messaging/eventbridge"
	pkgerrors "clutchdemo/pkg/errors"

	awsevents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"
)

// Consolidator is the service the handler drives
type Consolidator interface {
	Consolidate(ctx context.Context, clutchID string) (*clutch.Findings, error)
}

// Handler consumes EventBridge events carrying a clutch ID
type Handler struct {
	consolidator Consolidator
	logger       *zap.Logger
}

// NewHandler creates a new event handler
func NewHandler(consolidator Consolidator, logger *zap.Logger) *Handler {
	return &Handler{consolidator: consolidator, logger: logger}
}

// Handle consolidates the clutch named in the event detail
func (h *Handler) Handle(ctx context.Context, event awsevents.CloudWatchEvent) (*clutch.Findings, error) {
	var req eventbridge.ConsolidateRequest
	if len(event.Detail) > 0 {
		if err := json.Unmarshal(event.Detail, &req); err != nil {
			return nil, pkgerrors.NewValidationError("event detail is not valid JSON").WithCause(err)
		}
	}
	if req.ClutchID == "" {
		h.logger.Warn("Event without clutchId",
			zap.String("eventID", event.ID),
			zap.String("detailType", event.DetailType),
		)
		return nil, pkgerrors.NewValidationError("clutchId is required")
	}

	h.logger.Info("Consolidating findings",
		zap.String("clutchID", req.ClutchID),
		zap.String("eventID", event.ID),
	)

	findings, err := h.consolidator.Consolidate(ctx, req.ClutchID)
	if err != nil {
		h.logger.Error("Consolidation failed", zap.String("clutchID", req.ClutchID), zap.Error(err))
		return nil, err
	}
	return findings, nil
}

func main() {
	// Dependencies are built once per execution environment
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	container, err := di.InitializeContainer(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize dependency container: %v", err)
	}
	defer container.Close()

	lambda.Start(NewHandler(container.ConsolidationService, container.Logger).Handle)
}
