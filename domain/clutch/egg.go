package clutch

import (
	"time"

	"clutchdemo/domain/core/valueobjects"
)

// ChickenAppearance is the predicted look of the chick
type ChickenAppearance struct {
	PlumageColor   string `json:"plumageColor"`
	CombType       string `json:"combType"`
	BodyType       string `json:"bodyType"`
	FeatherPattern string `json:"featherPattern"`
	LegColor       string `json:"legColor"`
}

// EggAnalysis describes the egg itself
type EggAnalysis struct {
	Color          string   `json:"color"`
	Shape          string   `json:"shape"`
	Size           string   `json:"size"`
	ShellTexture   string   `json:"shellTexture"`
	ShellIntegrity string   `json:"shellIntegrity"`
	Cleanliness    string   `json:"cleanliness"`
	OverallGrade   string   `json:"overallGrade"`
	VisibleDefects []string `json:"visibleDefects"`
}

// Egg is one analyzed egg row, owned by exactly one clutch
type Egg struct {
	ID                  string               `json:"id"`
	ClutchID            string               `json:"-"`
	HatchLikelihood     valueobjects.Decimal `json:"hatchLikelihood"`
	PossibleHenBreeds   []string             `json:"possibleHenBreeds"`
	PredictedChickBreed string               `json:"predictedChickBreed"`
	BreedConfidence     string               `json:"breedConfidence"`
	ChickenAppearance   ChickenAppearance    `json:"chickenAppearance"`
	EggAnalysis         EggAnalysis          `json:"eggAnalysis"`
	Notes               string               `json:"notes"`
	AnalysisTimestamp   time.Time            `json:"analysisTimestamp"`
	Confidence          valueobjects.Decimal `json:"confidence"`
}

// PartitionKey implements Record
func (e *Egg) PartitionKey() string { return PartitionKey(e.ClutchID) }

// SortKey implements Record
func (e *Egg) SortKey() string { return EggSortKey(e.ID) }

// Kind implements Record
func (e *Egg) Kind() RecordKind { return KindEgg }
