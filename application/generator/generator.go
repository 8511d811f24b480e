// Package generator builds synthetic clutch demo data.
package generator

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"clutchdemo/domain/clutch"
	"clutchdemo/domain/core/valueobjects"

	"github.com/google/uuid"
)

// Value ranges for the randomized numeric fields
const (
	MinHatchLikelihood = 65.0
	MaxHatchLikelihood = 95.0
	MinConfidence      = 0.85
	MaxConfidence      = 0.98

	hatchLikelihoodPlaces = 1
	confidencePlaces      = 2

	minUploadAgeDays = 1
	maxUploadAgeDays = 30
)

// Options controls the shape of a generated data set
type Options struct {
	Clutches int
	MinEggs  int
	MaxEggs  int
	// Seed makes the output reproducible when non-zero
	Seed uint64
}

// DefaultOptions returns the stock demo shape: 5 clutches of 3-8 eggs
func DefaultOptions() Options {
	return Options{Clutches: 5, MinEggs: 3, MaxEggs: 8}
}

// Generator produces clutch metadata and egg records
type Generator struct {
	opts Options
	rng  *rand.Rand
	// ids feeds UUID generation; nil means crypto/rand via uuid.NewRandom
	ids io.Reader
	now func() time.Time
}

// Option configures a Generator
type Option func(*Generator)

// WithClock overrides the time source used for upload timestamps
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// New creates a generator. A zero Seed draws from a randomly seeded source,
// so two runs never share identifiers.
func New(opts Options, options ...Option) *Generator {
	g := &Generator{opts: opts, now: time.Now}

	if opts.Seed != 0 {
		var key [32]byte
		binary.LittleEndian.PutUint64(key[:], opts.Seed)
		src := rand.NewChaCha8(key)
		g.rng = rand.New(src)
		g.ids = src
	} else {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	for _, opt := range options {
		opt(g)
	}
	return g
}

// Generate returns, for every clutch, its metadata record followed by its
// egg records.
func (g *Generator) Generate() ([]clutch.Record, error) {
	records := make([]clutch.Record, 0, g.opts.Clutches*(g.opts.MaxEggs+1))

	for i := 0; i < g.opts.Clutches; i++ {
		u, err := g.newUUID()
		if err != nil {
			return nil, fmt.Errorf("failed to generate clutch id: %w", err)
		}
		clutchID := valueobjects.ClutchIDFromUUID(u).String()

		ageDays := g.intBetween(minUploadAgeDays, maxUploadAgeDays)
		uploadedAt := g.now().Add(-time.Duration(ageDays) * 24 * time.Hour).UTC()

		records = append(records, clutch.NewDemoClutch(clutchID, uploadedAt))

		eggCount := g.intBetween(g.opts.MinEggs, g.opts.MaxEggs)
		for j := 0; j < eggCount; j++ {
			egg, err := g.newEgg(clutchID, uploadedAt)
			if err != nil {
				return nil, err
			}
			records = append(records, egg)
		}
	}

	return records, nil
}

func (g *Generator) newEgg(clutchID string, analyzedAt time.Time) (*clutch.Egg, error) {
	u, err := g.newUUID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate egg id: %w", err)
	}

	return &clutch.Egg{
		ID:                  valueobjects.EggIDFromUUID(u).String(),
		ClutchID:            clutchID,
		HatchLikelihood:     valueobjects.NewDecimal(g.floatBetween(MinHatchLikelihood, MaxHatchLikelihood), hatchLikelihoodPlaces),
		PossibleHenBreeds:   append([]string(nil), pick(g.rng, henBreedPairs)...),
		PredictedChickBreed: pick(g.rng, chickBreeds),
		BreedConfidence:     pick(g.rng, breedConfidences),
		ChickenAppearance: clutch.ChickenAppearance{
			PlumageColor:   pick(g.rng, plumageColors),
			CombType:       pick(g.rng, combTypes),
			BodyType:       pick(g.rng, bodyTypes),
			FeatherPattern: pick(g.rng, featherPatterns),
			LegColor:       pick(g.rng, legColors),
		},
		EggAnalysis: clutch.EggAnalysis{
			Color:          pick(g.rng, eggColors),
			Shape:          pick(g.rng, eggShapes),
			Size:           pick(g.rng, eggSizes),
			ShellTexture:   pick(g.rng, shellTextures),
			ShellIntegrity: "intact",
			Cleanliness:    pick(g.rng, cleanliness),
			OverallGrade:   pick(g.rng, overallGrades),
			VisibleDefects: []string{},
		},
		Notes:             fmt.Sprintf("High-quality egg from clutch %s. Good development indicators.", clutchID),
		AnalysisTimestamp: analyzedAt,
		Confidence:        valueobjects.NewDecimal(g.floatBetween(MinConfidence, MaxConfidence), confidencePlaces),
	}, nil
}

func (g *Generator) newUUID() (uuid.UUID, error) {
	if g.ids == nil {
		return uuid.NewRandom()
	}
	return uuid.NewRandomFromReader(g.ids)
}

// intBetween returns a uniform int in [lo, hi]
func (g *Generator) intBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.IntN(hi-lo+1)
}

// floatBetween returns a uniform float in [lo, hi)
func (g *Generator) floatBetween(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

func pick[T any](rng *rand.Rand, choices []T) T {
	return choices[rng.IntN(len(choices))]
}
