package clutch

// ViableHatchThreshold is the hatch likelihood (percent) at or above which an
// egg counts as viable.
const ViableHatchThreshold = 50.0

// IsViable reports whether the egg is likely enough to hatch
func (e *Egg) IsViable() bool {
	return e.HatchLikelihood.Float64() >= ViableHatchThreshold
}

// Findings is the consolidated view of a clutch's eggs
type Findings struct {
	ClutchID       string `json:"clutchId"`
	TotalEggCount  int    `json:"totalEggCount"`
	ViableEggCount int    `json:"viableEggCount"`
}

// Consolidate counts total and viable eggs
func Consolidate(clutchID string, eggs []*Egg) Findings {
	f := Findings{ClutchID: clutchID, TotalEggCount: len(eggs)}
	for _, e := range eggs {
		if e.IsViable() {
			f.ViableEggCount++
		}
	}
	return f
}

// Details is a clutch together with the eggs stored in its partition
type Details struct {
	Clutch *Clutch `json:"clutch"`
	Eggs   []*Egg  `json:"eggs"`
}
