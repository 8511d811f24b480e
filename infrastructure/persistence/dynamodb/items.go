package dynamodb

import (
	"fmt"

	"clutchdemo/domain/clutch"
	"clutchdemo/domain/core/valueobjects"
	"clutchdemo/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Attribute names of the primary and GSI1 keys
const (
	attrPK     = "pk"
	attrSK     = "sk"
	attrGSI1PK = "GSI1PK"
	attrGSI1SK = "GSI1SK"
)

// clutchItem represents the DynamoDB item structure for clutch metadata
type clutchItem struct {
	PK              string `dynamodbav:"pk"`
	SK              string `dynamodbav:"sk"`         // Always METADATA
	GSI1PK          string `dynamodbav:"GSI1PK"`     // Always CLUTCHES
	GSI1SK          string `dynamodbav:"GSI1SK"`     // Upload timestamp, for newest-first listing
	ID              string `dynamodbav:"id"`
	UploadTimestamp string `dynamodbav:"uploadTimestamp"`
	ImageKey        string `dynamodbav:"imageKey"`
	Status          string `dynamodbav:"status"`
	Source          string `dynamodbav:"source,omitempty"`

	// Written by consolidation
	TotalEggCount  *int   `dynamodbav:"totalEggCount,omitempty"`
	ViableEggCount *int   `dynamodbav:"viableEggCount,omitempty"`
	ConsolidatedAt string `dynamodbav:"consolidatedAt,omitempty"`
}

type chickenAppearanceItem struct {
	PlumageColor   string `dynamodbav:"plumageColor"`
	CombType       string `dynamodbav:"combType"`
	BodyType       string `dynamodbav:"bodyType"`
	FeatherPattern string `dynamodbav:"featherPattern"`
	LegColor       string `dynamodbav:"legColor"`
}

type eggAnalysisItem struct {
	Color          string   `dynamodbav:"color"`
	Shape          string   `dynamodbav:"shape"`
	Size           string   `dynamodbav:"size"`
	ShellTexture   string   `dynamodbav:"shellTexture"`
	ShellIntegrity string   `dynamodbav:"shellIntegrity"`
	Cleanliness    string   `dynamodbav:"cleanliness"`
	OverallGrade   string   `dynamodbav:"overallGrade"`
	VisibleDefects []string `dynamodbav:"visibleDefects"`
}

// eggItem represents the DynamoDB item structure for an analyzed egg
type eggItem struct {
	PK                  string                `dynamodbav:"pk"` // CLUTCH#<clutch_id>
	SK                  string                `dynamodbav:"sk"` // EGG#<egg_id>
	ID                  string                `dynamodbav:"id"`
	HatchLikelihood     decimalAttr           `dynamodbav:"hatchLikelihood"`
	PossibleHenBreeds   []string              `dynamodbav:"possibleHenBreeds"`
	PredictedChickBreed string                `dynamodbav:"predictedChickBreed"`
	BreedConfidence     string                `dynamodbav:"breedConfidence"`
	ChickenAppearance   chickenAppearanceItem `dynamodbav:"chickenAppearance"`
	EggAnalysis         eggAnalysisItem       `dynamodbav:"eggAnalysis"`
	Notes               string                `dynamodbav:"notes"`
	AnalysisTimestamp   string                `dynamodbav:"analysisTimestamp"`
	Confidence          decimalAttr           `dynamodbav:"confidence"`
}

// decimalAttr stores a Decimal as a DynamoDB number using its exact text
type decimalAttr struct {
	valueobjects.Decimal
}

// MarshalDynamoDBAttributeValue implements attributevalue.Marshaler
func (d decimalAttr) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	if d.IsZero() {
		return &types.AttributeValueMemberNULL{Value: true}, nil
	}
	return &types.AttributeValueMemberN{Value: d.String()}, nil
}

// UnmarshalDynamoDBAttributeValue implements attributevalue.Unmarshaler
func (d *decimalAttr) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	switch v := av.(type) {
	case *types.AttributeValueMemberN:
		parsed, err := valueobjects.ParseDecimal(v.Value)
		if err != nil {
			return err
		}
		d.Decimal = parsed
		return nil
	case *types.AttributeValueMemberNULL:
		d.Decimal = valueobjects.Decimal{}
		return nil
	default:
		return fmt.Errorf("expected number attribute, got %T", av)
	}
}

func toClutchItem(c *clutch.Clutch) clutchItem {
	uploaded := utils.FormatTimestamp(c.UploadTimestamp)
	item := clutchItem{
		PK:              c.PartitionKey(),
		SK:              c.SortKey(),
		GSI1PK:          clutch.ListingPartition,
		GSI1SK:          uploaded,
		ID:              c.ID,
		UploadTimestamp: uploaded,
		ImageKey:        c.ImageKey,
		Status:          c.Status,
		Source:          c.Source,
		TotalEggCount:   c.TotalEggCount,
		ViableEggCount:  c.ViableEggCount,
	}
	if c.ConsolidatedAt != nil {
		item.ConsolidatedAt = utils.FormatTimestamp(*c.ConsolidatedAt)
	}
	return item
}

func fromClutchItem(item clutchItem) (*clutch.Clutch, error) {
	uploaded, err := utils.ParseTimestamp(item.UploadTimestamp)
	if err != nil {
		return nil, fmt.Errorf("clutch %s: bad uploadTimestamp: %w", item.ID, err)
	}

	c := &clutch.Clutch{
		ID:              item.ID,
		UploadTimestamp: uploaded,
		ImageKey:        item.ImageKey,
		Status:          item.Status,
		Source:          item.Source,
		TotalEggCount:   item.TotalEggCount,
		ViableEggCount:  item.ViableEggCount,
	}
	if item.ConsolidatedAt != "" {
		at, err := utils.ParseTimestamp(item.ConsolidatedAt)
		if err != nil {
			return nil, fmt.Errorf("clutch %s: bad consolidatedAt: %w", item.ID, err)
		}
		c.ConsolidatedAt = &at
	}
	return c, nil
}

func toEggItem(e *clutch.Egg) eggItem {
	return eggItem{
		PK:                  e.PartitionKey(),
		SK:                  e.SortKey(),
		ID:                  e.ID,
		HatchLikelihood:     decimalAttr{e.HatchLikelihood},
		PossibleHenBreeds:   e.PossibleHenBreeds,
		PredictedChickBreed: e.PredictedChickBreed,
		BreedConfidence:     e.BreedConfidence,
		ChickenAppearance: chickenAppearanceItem{
			PlumageColor:   e.ChickenAppearance.PlumageColor,
			CombType:       e.ChickenAppearance.CombType,
			BodyType:       e.ChickenAppearance.BodyType,
			FeatherPattern: e.ChickenAppearance.FeatherPattern,
			LegColor:       e.ChickenAppearance.LegColor,
		},
		EggAnalysis: eggAnalysisItem{
			Color:          e.EggAnalysis.Color,
			Shape:          e.EggAnalysis.Shape,
			Size:           e.EggAnalysis.Size,
			ShellTexture:   e.EggAnalysis.ShellTexture,
			ShellIntegrity: e.EggAnalysis.ShellIntegrity,
			Cleanliness:    e.EggAnalysis.Cleanliness,
			OverallGrade:   e.EggAnalysis.OverallGrade,
			VisibleDefects: nonNil(e.EggAnalysis.VisibleDefects),
		},
		Notes:             e.Notes,
		AnalysisTimestamp: utils.FormatTimestamp(e.AnalysisTimestamp),
		Confidence:        decimalAttr{e.Confidence},
	}
}

func fromEggItem(item eggItem) (*clutch.Egg, error) {
	clutchID, err := clutch.ClutchIDFromPartitionKey(item.PK)
	if err != nil {
		return nil, err
	}

	egg := &clutch.Egg{
		ID:                  item.ID,
		ClutchID:            clutchID,
		HatchLikelihood:     item.HatchLikelihood.Decimal,
		PossibleHenBreeds:   item.PossibleHenBreeds,
		PredictedChickBreed: item.PredictedChickBreed,
		BreedConfidence:     item.BreedConfidence,
		ChickenAppearance: clutch.ChickenAppearance{
			PlumageColor:   item.ChickenAppearance.PlumageColor,
			CombType:       item.ChickenAppearance.CombType,
			BodyType:       item.ChickenAppearance.BodyType,
			FeatherPattern: item.ChickenAppearance.FeatherPattern,
			LegColor:       item.ChickenAppearance.LegColor,
		},
		EggAnalysis: clutch.EggAnalysis{
			Color:          item.EggAnalysis.Color,
			Shape:          item.EggAnalysis.Shape,
			Size:           item.EggAnalysis.Size,
			ShellTexture:   item.EggAnalysis.ShellTexture,
			ShellIntegrity: item.EggAnalysis.ShellIntegrity,
			Cleanliness:    item.EggAnalysis.Cleanliness,
			OverallGrade:   item.EggAnalysis.OverallGrade,
			VisibleDefects: nonNil(item.EggAnalysis.VisibleDefects),
		},
		Notes:      item.Notes,
		Confidence: item.Confidence.Decimal,
	}

	// Eggs still awaiting analysis carry no timestamp yet
	if item.AnalysisTimestamp != "" {
		at, err := utils.ParseTimestamp(item.AnalysisTimestamp)
		if err != nil {
			return nil, fmt.Errorf("egg %s: bad analysisTimestamp: %w", item.ID, err)
		}
		egg.AnalysisTimestamp = at
	}
	return egg, nil
}

// marshalRecord converts a domain record into a DynamoDB item
func marshalRecord(record clutch.Record) (map[string]types.AttributeValue, error) {
	var in interface{}
	switch r := record.(type) {
	case *clutch.Clutch:
		in = toClutchItem(r)
	case *clutch.Egg:
		in = toEggItem(r)
	default:
		return nil, fmt.Errorf("unsupported record type %T", record)
	}

	av, err := attributevalue.MarshalMap(in)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s %s: %w", record.PartitionKey(), record.SortKey(), err)
	}
	return av, nil
}

// nonNil keeps empty lists as lists instead of NULL
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
