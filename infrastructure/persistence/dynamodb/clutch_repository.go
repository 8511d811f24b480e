package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clutchdemo/application/ports"
	"clutchdemo/domain/clutch"
	pkgerrors "clutchdemo/pkg/errors"
	"clutchdemo/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// ClutchRepository implements the ClutchRepository interface using DynamoDB
type ClutchRepository struct {
	client        API
	tableName     string
	gsi1IndexName string
	logger        *zap.Logger
}

// NewClutchRepository creates a new ClutchRepository
func NewClutchRepository(client API, tableName, gsi1IndexName string, logger *zap.Logger) *ClutchRepository {
	return &ClutchRepository{
		client:        client,
		tableName:     tableName,
		gsi1IndexName: gsi1IndexName,
		logger:        logger,
	}
}

// List returns up to limit clutches, newest upload first
func (r *ClutchRepository) List(ctx context.Context, limit int) ([]*clutch.Clutch, error) {
	keyCond := expression.Key(attrGSI1PK).Equal(expression.Value(clutch.ListingPartition))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, pkgerrors.NewInternalError("failed to build listing query").WithCause(err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.gsi1IndexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(false), // Most recent upload first
	}
	if limit > 0 {
		input.Limit = aws.Int32(int32(limit))
	}

	var clutches []*clutch.Clutch

	// Handle pagination
	for {
		result, err := r.client.Query(ctx, input)
		if err != nil {
			r.logger.Error("Failed to list clutches", zap.Error(err), zap.String("table", r.tableName))
			return nil, pkgerrors.NewDatabaseError("Query", err)
		}

		for _, av := range result.Items {
			var item clutchItem
			if err := attributevalue.UnmarshalMap(av, &item); err != nil {
				return nil, pkgerrors.NewInternalError("failed to unmarshal clutch").WithCause(err)
			}
			c, err := fromClutchItem(item)
			if err != nil {
				return nil, pkgerrors.NewInternalError("malformed clutch item").WithCause(err)
			}
			clutches = append(clutches, c)
		}

		if result.LastEvaluatedKey == nil || (limit > 0 && len(clutches) >= limit) {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}

	if limit > 0 && len(clutches) > limit {
		clutches = clutches[:limit]
	}
	return clutches, nil
}

// Get returns a clutch's metadata and every egg in its partition
func (r *ClutchRepository) Get(ctx context.Context, clutchID string) (*clutch.Details, error) {
	keyCond := expression.Key(attrPK).Equal(expression.Value(clutch.PartitionKey(clutchID)))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, pkgerrors.NewInternalError("failed to build clutch query").WithCause(err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	details := &clutch.Details{Eggs: []*clutch.Egg{}}

	for {
		result, err := r.client.Query(ctx, input)
		if err != nil {
			r.logger.Error("Failed to query clutch",
				zap.Error(err),
				zap.String("clutchID", clutchID),
			)
			return nil, pkgerrors.NewDatabaseError("Query", err)
		}

		for _, av := range result.Items {
			if err := r.collect(details, av); err != nil {
				return nil, err
			}
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}

	if details.Clutch == nil {
		return nil, pkgerrors.NewNotFoundError(fmt.Sprintf("clutch %s", clutchID))
	}
	return details, nil
}

// collect sorts one partition item into details by its sort key
func (r *ClutchRepository) collect(details *clutch.Details, av map[string]types.AttributeValue) error {
	sk, _ := av[attrSK].(*types.AttributeValueMemberS)
	if sk == nil {
		return nil
	}

	switch {
	case sk.Value == clutch.MetadataSortKey:
		var item clutchItem
		if err := attributevalue.UnmarshalMap(av, &item); err != nil {
			return pkgerrors.NewInternalError("failed to unmarshal clutch").WithCause(err)
		}
		c, err := fromClutchItem(item)
		if err != nil {
			return pkgerrors.NewInternalError("malformed clutch item").WithCause(err)
		}
		details.Clutch = c
	case clutch.IsEggSortKey(sk.Value):
		var item eggItem
		if err := attributevalue.UnmarshalMap(av, &item); err != nil {
			return pkgerrors.NewInternalError("failed to unmarshal egg").WithCause(err)
		}
		egg, err := fromEggItem(item)
		if err != nil {
			return pkgerrors.NewInternalError("malformed egg item").WithCause(err)
		}
		details.Eggs = append(details.Eggs, egg)
	default:
		r.logger.Debug("Skipping unrecognized item in clutch partition", zap.String("sk", sk.Value))
	}
	return nil
}

// SaveFindings writes the consolidated counts onto an existing metadata row
func (r *ClutchRepository) SaveFindings(ctx context.Context, findings clutch.Findings, consolidatedAt time.Time) error {
	update := expression.
		Set(expression.Name("totalEggCount"), expression.Value(findings.TotalEggCount)).
		Set(expression.Name("viableEggCount"), expression.Value(findings.ViableEggCount)).
		Set(expression.Name("consolidatedAt"), expression.Value(utils.FormatTimestamp(consolidatedAt)))
	cond := expression.AttributeExists(expression.Name(attrPK))

	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return pkgerrors.NewInternalError("failed to build findings update").WithCause(err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			attrPK: &types.AttributeValueMemberS{Value: clutch.PartitionKey(findings.ClutchID)},
			attrSK: &types.AttributeValueMemberS{Value: clutch.MetadataSortKey},
		},
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	if _, err := r.client.UpdateItem(ctx, input); err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return pkgerrors.NewNotFoundError(fmt.Sprintf("clutch %s", findings.ClutchID))
		}
		r.logger.Error("Failed to save findings",
			zap.Error(err),
			zap.String("clutchID", findings.ClutchID),
		)
		return pkgerrors.NewDatabaseError("UpdateItem", err)
	}

	r.logger.Info("Saved clutch findings",
		zap.String("clutchID", findings.ClutchID),
		zap.Int("totalEggCount", findings.TotalEggCount),
		zap.Int("viableEggCount", findings.ViableEggCount),
	)
	return nil
}

var _ ports.ClutchRepository = (*ClutchRepository)(nil)
