// Package eventbridge publishes clutch integration events to AWS EventBridge.
package eventbridge

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"clutchdemo/application/ports"
	pkgerrors "clutchdemo/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"
)

// Event identity the consolidation function's rule matches on
const (
	Source                        = "chicken-counter"
	DetailTypeConsolidateFindings = "Consolidate Findings"
)

// EventBridge limits to 10 entries per PutEvents call
const maxEntriesPerCall = 10

// PutEventsAPI is the slice of the EventBridge client the publisher needs
type PutEventsAPI interface {
	PutEvents(ctx context.Context, params *eventbridge.PutEventsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error)
}

// ConsolidateRequest is the detail of a Consolidate Findings event
type ConsolidateRequest struct {
	ClutchID string `json:"clutchId"`
}

// Publisher implements ports.EventPublisher using AWS EventBridge
type Publisher struct {
	client       PutEventsAPI
	eventBusName string
	logger       *zap.Logger
	now          func() time.Time
}

// NewPublisher creates a new EventBridge publisher
func NewPublisher(client PutEventsAPI, eventBusName string, logger *zap.Logger) *Publisher {
	return &Publisher{
		client:       client,
		eventBusName: eventBusName,
		logger:       logger,
		now:          time.Now,
	}
}

// PublishConsolidateRequests emits one Consolidate Findings event per clutch
func (p *Publisher) PublishConsolidateRequests(ctx context.Context, clutchIDs []string) error {
	if len(clutchIDs) == 0 {
		return nil
	}

	for i := 0; i < len(clutchIDs); i += maxEntriesPerCall {
		end := i + maxEntriesPerCall
		if end > len(clutchIDs) {
			end = len(clutchIDs)
		}
		if err := p.publishBatch(ctx, clutchIDs[i:end]); err != nil {
			return err
		}
	}
	return nil
}

// publishBatch publishes up to 10 requests in one call
func (p *Publisher) publishBatch(ctx context.Context, clutchIDs []string) error {
	entries := make([]types.PutEventsRequestEntry, 0, len(clutchIDs))
	at := p.now()

	for _, id := range clutchIDs {
		detail, err := json.Marshal(ConsolidateRequest{ClutchID: id})
		if err != nil {
			return pkgerrors.NewInternalError("failed to marshal event detail").WithCause(err)
		}

		entries = append(entries, types.PutEventsRequestEntry{
			EventBusName: aws.String(p.eventBusName),
			Source:       aws.String(Source),
			DetailType:   aws.String(DetailTypeConsolidateFindings),
			Detail:       aws.String(string(detail)),
			Time:         aws.Time(at),
		})
	}

	result, err := p.client.PutEvents(ctx, &eventbridge.PutEventsInput{Entries: entries})
	if err != nil {
		return pkgerrors.NewExternalError("eventbridge", err)
	}

	// Check for failures
	if result.FailedEntryCount > 0 {
		for i, entry := range result.Entries {
			if entry.ErrorCode != nil && i < len(clutchIDs) {
				p.logger.Error("Failed to publish event",
					zap.String("clutchID", clutchIDs[i]),
					zap.String("errorCode", aws.ToString(entry.ErrorCode)),
					zap.String("errorMessage", aws.ToString(entry.ErrorMessage)),
				)
			}
		}
		return pkgerrors.NewExternalError("eventbridge",
			fmt.Errorf("%d events failed to publish", result.FailedEntryCount))
	}

	p.logger.Debug("Events published to EventBridge",
		zap.Int("count", len(entries)),
		zap.String("eventBus", p.eventBusName),
	)
	return nil
}

var _ ports.EventPublisher = (*Publisher)(nil)
