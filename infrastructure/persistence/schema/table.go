// Package schema provisions the clutch data table, mainly for DynamoDB Local.
package schema

import (
	"context"
	"errors"
	"time"

	pkgerrors "clutchdemo/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// DefaultWaitTimeout bounds how long EnsureTable waits for a new table
const DefaultWaitTimeout = 2 * time.Minute

// TableAPI is the slice of the DynamoDB client table provisioning needs
type TableAPI interface {
	dynamodb.DescribeTableAPIClient
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// ClutchTableInput describes the single-table layout: pk/sk string keys and
// GSI1 keyed by GSI1PK/GSI1SK for the newest-first clutch listing
func ClutchTableInput(tableName, gsi1IndexName string) *dynamodb.CreateTableInput {
	stringAttr := func(name string) types.AttributeDefinition {
		return types.AttributeDefinition{
			AttributeName: aws.String(name),
			AttributeType: types.ScalarAttributeTypeS,
		}
	}

	return &dynamodb.CreateTableInput{
		TableName:   aws.String(tableName),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			stringAttr("pk"),
			stringAttr("sk"),
			stringAttr("GSI1PK"),
			stringAttr("GSI1SK"),
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("pk"), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String("sk"), KeyType: types.KeyTypeRange},
		},
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			{
				IndexName: aws.String(gsi1IndexName),
				KeySchema: []types.KeySchemaElement{
					{AttributeName: aws.String("GSI1PK"), KeyType: types.KeyTypeHash},
					{AttributeName: aws.String("GSI1SK"), KeyType: types.KeyTypeRange},
				},
				Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
			},
		},
	}
}

// Provisioner creates the clutch table when it is missing
type Provisioner struct {
	client      TableAPI
	logger      *zap.Logger
	waitTimeout time.Duration
}

// NewProvisioner creates a new table provisioner
func NewProvisioner(client TableAPI, logger *zap.Logger) *Provisioner {
	return &Provisioner{
		client:      client,
		logger:      logger,
		waitTimeout: DefaultWaitTimeout,
	}
}

// EnsureTable creates the table unless it already exists and waits until it
// is active. It reports whether a table was created.
func (p *Provisioner) EnsureTable(ctx context.Context, tableName, gsi1IndexName string) (bool, error) {
	_, err := p.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(tableName)})
	if err == nil {
		p.logger.Info("Table already exists", zap.String("table", tableName))
		return false, nil
	}
	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return false, pkgerrors.NewDatabaseError("DescribeTable", err)
	}

	if _, err := p.client.CreateTable(ctx, ClutchTableInput(tableName, gsi1IndexName)); err != nil {
		var inUse *types.ResourceInUseException
		if !errors.As(err, &inUse) {
			return false, pkgerrors.NewDatabaseError("CreateTable", err)
		}
		// Someone else is creating it; wait like we would for our own
	}

	waiter := dynamodb.NewTableExistsWaiter(p.client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(tableName)}, p.waitTimeout); err != nil {
		return false, pkgerrors.NewDatabaseError("DescribeTable", err)
	}

	p.logger.Info("Table created",
		zap.String("table", tableName),
		zap.String("gsi1", gsi1IndexName),
	)
	return true, nil
}
