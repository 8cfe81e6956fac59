package matching

import (
	"fmt"
	"math"
)

// Weights calibrates the match score.
type Weights struct {
	Required  float64 `json:"required"`
	Preferred float64 `json:"preferred"`
	Level     float64 `json:"level"`

	// Level fit by bucket distance. LevelUnknown applies when the posting
	// has no recognizable experience level.
	LevelSame     float64 `json:"level_same"`
	LevelAdjacent float64 `json:"level_adjacent"`
	LevelOther    float64 `json:"level_other"`
	LevelUnknown  float64 `json:"level_unknown"`
}

// DefaultWeights returns the default match calibration.
func DefaultWeights() Weights {
	return Weights{
		Required:      0.6,
		Preferred:     0.25,
		Level:         0.15,
		LevelSame:     1.0,
		LevelAdjacent: 0.6,
		LevelOther:    0.3,
		LevelUnknown:  0.6,
	}
}

// Validate checks that the component weights sum to 1 and fits lie in [0,1].
func (w Weights) Validate() error {
	if sum := w.Required + w.Preferred + w.Level; math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("match weights must sum to 1, got %.3f", sum)
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"required", w.Required},
		{"preferred", w.Preferred},
		{"level", w.Level},
		{"level_same", w.LevelSame},
		{"level_adjacent", w.LevelAdjacent},
		{"level_other", w.LevelOther},
		{"level_unknown", w.LevelUnknown},
	} {
		if f.value < 0 || f.value > 1 {
			return fmt.Errorf("%s must be in [0,1], got %.3f", f.name, f.value)
		}
	}
	return nil
}
