package dynamodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"clutchdemo/domain/clutch"
	"clutchdemo/domain/core/valueobjects"
	pkgerrors "clutchdemo/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeTableClient serves Query pages from a script and records updates
type fakeTableClient struct {
	fakeBatchClient

	pages     []*dynamodb.QueryOutput
	queries   []*dynamodb.QueryInput
	queryErr  error
	updates   []*dynamodb.UpdateItemInput
	updateErr error
}

func (f *fakeTableClient) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	// Copy the input; the repository reuses it between pages
	in := *params
	f.queries = append(f.queries, &in)
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	if len(f.pages) == 0 {
		return &dynamodb.QueryOutput{}, nil
	}
	page := f.pages[0]
	f.pages = f.pages[1:]
	return page, nil
}

func (f *fakeTableClient) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.updates = append(f.updates, params)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &dynamodb.UpdateItemOutput{}, nil
}

func mustMarshal(t *testing.T, r clutch.Record) map[string]types.AttributeValue {
	t.Helper()
	av, err := marshalRecord(r)
	require.NoError(t, err)
	return av
}

func sampleEgg(clutchID, eggID string, hatch float64) *clutch.Egg {
	return &clutch.Egg{
		ID:                eggID,
		ClutchID:          clutchID,
		HatchLikelihood:   valueobjects.NewDecimal(hatch, 1),
		PossibleHenBreeds: []string{"Rhode Island Red", "Sussex"},
		EggAnalysis:       clutch.EggAnalysis{ShellIntegrity: "intact", VisibleDefects: []string{}},
		AnalysisTimestamp: time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC),
		Confidence:        valueobjects.NewDecimal(0.9, 2),
	}
}

func TestClutchRepository_ListQueriesIndexNewestFirst(t *testing.T) {
	newer := clutch.NewDemoClutch("clutch-00000002", time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC))
	older := clutch.NewDemoClutch("clutch-00000001", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))

	client := &fakeTableClient{
		pages: []*dynamodb.QueryOutput{
			{
				Items:            []map[string]types.AttributeValue{mustMarshal(t, newer)},
				LastEvaluatedKey: map[string]types.AttributeValue{attrPK: &types.AttributeValueMemberS{Value: newer.PartitionKey()}},
			},
			{Items: []map[string]types.AttributeValue{mustMarshal(t, older)}},
		},
	}
	repo := NewClutchRepository(client, testTable, "GSI1", zap.NewNop())

	clutches, err := repo.List(context.Background(), 10)
	require.NoError(t, err)

	require.Len(t, clutches, 2)
	assert.Equal(t, newer.ID, clutches[0].ID)
	assert.Equal(t, older.ID, clutches[1].ID)
	assert.True(t, newer.UploadTimestamp.Equal(clutches[0].UploadTimestamp))

	require.Len(t, client.queries, 2)
	first := client.queries[0]
	assert.Equal(t, "GSI1", *first.IndexName)
	assert.False(t, *first.ScanIndexForward)
	assert.EqualValues(t, 10, *first.Limit)
	assert.Nil(t, first.ExclusiveStartKey)
	assert.NotNil(t, client.queries[1].ExclusiveStartKey)
}

func TestClutchRepository_ListStopsAtLimit(t *testing.T) {
	a := clutch.NewDemoClutch("clutch-0000000a", time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC))
	b := clutch.NewDemoClutch("clutch-0000000b", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))

	client := &fakeTableClient{
		pages: []*dynamodb.QueryOutput{
			{
				Items:            []map[string]types.AttributeValue{mustMarshal(t, a), mustMarshal(t, b)},
				LastEvaluatedKey: map[string]types.AttributeValue{attrPK: &types.AttributeValueMemberS{Value: b.PartitionKey()}},
			},
		},
	}
	repo := NewClutchRepository(client, testTable, "GSI1", zap.NewNop())

	clutches, err := repo.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, clutches, 1)
	assert.Len(t, client.queries, 1)
}

func TestClutchRepository_GetSplitsMetadataAndEggs(t *testing.T) {
	c := clutch.NewDemoClutch("clutch-1234abcd", time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC))
	e1 := sampleEgg(c.ID, "egg-aaaaaa", 71.2)
	e2 := sampleEgg(c.ID, "egg-bbbbbb", 93.9)

	client := &fakeTableClient{
		pages: []*dynamodb.QueryOutput{
			{Items: []map[string]types.AttributeValue{mustMarshal(t, e1), mustMarshal(t, e2), mustMarshal(t, c)}},
		},
	}
	repo := NewClutchRepository(client, testTable, "GSI1", zap.NewNop())

	details, err := repo.Get(context.Background(), c.ID)
	require.NoError(t, err)

	require.NotNil(t, details.Clutch)
	assert.Equal(t, c.ID, details.Clutch.ID)
	assert.Equal(t, c.ImageKey, details.Clutch.ImageKey)

	require.Len(t, details.Eggs, 2)
	assert.Equal(t, "egg-aaaaaa", details.Eggs[0].ID)
	assert.Equal(t, c.ID, details.Eggs[0].ClutchID)
	assert.Equal(t, "71.2", details.Eggs[0].HatchLikelihood.String())
	assert.Equal(t, "0.90", details.Eggs[1].Confidence.String())
	assert.Equal(t, []string{"Rhode Island Red", "Sussex"}, details.Eggs[1].PossibleHenBreeds)
	assert.NotNil(t, details.Eggs[1].EggAnalysis.VisibleDefects)

	require.Len(t, client.queries, 1)
	assert.Nil(t, client.queries[0].IndexName)
}

func TestClutchRepository_GetWithoutMetadataIsNotFound(t *testing.T) {
	orphan := sampleEgg("clutch-deadbeef", "egg-cccccc", 80)
	client := &fakeTableClient{
		pages: []*dynamodb.QueryOutput{
			{Items: []map[string]types.AttributeValue{mustMarshal(t, orphan)}},
		},
	}
	repo := NewClutchRepository(client, testTable, "GSI1", zap.NewNop())

	_, err := repo.Get(context.Background(), "clutch-deadbeef")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestClutchRepository_GetQueryFailure(t *testing.T) {
	client := &fakeTableClient{queryErr: errors.New("connection reset")}
	repo := NewClutchRepository(client, testTable, "GSI1", zap.NewNop())

	_, err := repo.Get(context.Background(), "clutch-deadbeef")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsDatabase(err))
}

func TestClutchRepository_SaveFindings(t *testing.T) {
	client := &fakeTableClient{}
	repo := NewClutchRepository(client, testTable, "GSI1", zap.NewNop())
	at := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

	err := repo.SaveFindings(context.Background(), clutch.Findings{
		ClutchID:       "clutch-1234abcd",
		TotalEggCount:  6,
		ViableEggCount: 5,
	}, at)
	require.NoError(t, err)

	require.Len(t, client.updates, 1)
	in := client.updates[0]
	assert.Equal(t, "CLUTCH#clutch-1234abcd", in.Key[attrPK].(*types.AttributeValueMemberS).Value)
	assert.Equal(t, "METADATA", in.Key[attrSK].(*types.AttributeValueMemberS).Value)
	require.NotNil(t, in.ConditionExpression)
	assert.Contains(t, *in.ConditionExpression, "attribute_exists")

	values := map[string]string{}
	for _, v := range in.ExpressionAttributeValues {
		switch av := v.(type) {
		case *types.AttributeValueMemberN:
			values[av.Value] = "N"
		case *types.AttributeValueMemberS:
			values[av.Value] = "S"
		}
	}
	assert.Equal(t, "N", values["6"])
	assert.Equal(t, "N", values["5"])
	assert.Equal(t, "S", values["2025-04-01T12:00:00.000000Z"])
}

func TestClutchRepository_SaveFindingsMissingClutch(t *testing.T) {
	client := &fakeTableClient{
		updateErr: &types.ConditionalCheckFailedException{Message: new(string)},
	}
	repo := NewClutchRepository(client, testTable, "GSI1", zap.NewNop())

	err := repo.SaveFindings(context.Background(), clutch.Findings{ClutchID: "clutch-nope0000"}, time.Now())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}
