package schema

import (
	"context"
	"errors"
	"testing"

	pkgerrors "clutchdemo/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeTables answers DescribeTable from a set of existing tables
type fakeTables struct {
	existing    map[string]bool
	created     []*dynamodb.CreateTableInput
	describeErr error
	createErr   error
}

func (f *fakeTables) DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	if f.describeErr != nil {
		return nil, f.describeErr
	}
	name := aws.ToString(params.TableName)
	if !f.existing[name] {
		return nil, &types.ResourceNotFoundException{Message: aws.String("table not found")}
	}
	return &dynamodb.DescribeTableOutput{
		Table: &types.TableDescription{TableName: params.TableName, TableStatus: types.TableStatusActive},
	}, nil
}

func (f *fakeTables) CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	f.created = append(f.created, params)
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.existing[aws.ToString(params.TableName)] = true
	return &dynamodb.CreateTableOutput{}, nil
}

func TestClutchTableInput(t *testing.T) {
	in := ClutchTableInput("clutch-table", "GSI1")

	assert.Equal(t, "clutch-table", aws.ToString(in.TableName))
	assert.Equal(t, types.BillingModePayPerRequest, in.BillingMode)
	require.Len(t, in.KeySchema, 2)
	assert.Equal(t, "pk", aws.ToString(in.KeySchema[0].AttributeName))
	assert.Equal(t, types.KeyTypeHash, in.KeySchema[0].KeyType)
	assert.Equal(t, "sk", aws.ToString(in.KeySchema[1].AttributeName))

	require.Len(t, in.GlobalSecondaryIndexes, 1)
	gsi := in.GlobalSecondaryIndexes[0]
	assert.Equal(t, "GSI1", aws.ToString(gsi.IndexName))
	assert.Equal(t, "GSI1PK", aws.ToString(gsi.KeySchema[0].AttributeName))
	assert.Equal(t, "GSI1SK", aws.ToString(gsi.KeySchema[1].AttributeName))
	assert.Len(t, in.AttributeDefinitions, 4)
}

func TestEnsureTable_CreatesMissingTable(t *testing.T) {
	client := &fakeTables{existing: map[string]bool{}}
	p := NewProvisioner(client, zap.NewNop())

	created, err := p.EnsureTable(context.Background(), "clutch-table", "GSI1")
	require.NoError(t, err)

	assert.True(t, created)
	assert.Len(t, client.created, 1)
}

func TestEnsureTable_ExistingTableUntouched(t *testing.T) {
	client := &fakeTables{existing: map[string]bool{"clutch-table": true}}
	p := NewProvisioner(client, zap.NewNop())

	created, err := p.EnsureTable(context.Background(), "clutch-table", "GSI1")
	require.NoError(t, err)

	assert.False(t, created)
	assert.Empty(t, client.created)
}

func TestEnsureTable_DescribeFailure(t *testing.T) {
	client := &fakeTables{existing: map[string]bool{}, describeErr: errors.New("no route to host")}
	p := NewProvisioner(client, zap.NewNop())

	_, err := p.EnsureTable(context.Background(), "clutch-table", "GSI1")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsDatabase(err))
	assert.Empty(t, client.created)
}

func TestEnsureTable_CreateFailure(t *testing.T) {
	client := &fakeTables{existing: map[string]bool{}, createErr: errors.New("limit exceeded")}
	p := NewProvisioner(client, zap.NewNop())

	_, err := p.EnsureTable(context.Background(), "clutch-table", "GSI1")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsDatabase(err))
}
