// Package reward maps scoring output to point awards and chakra activations.
// Pure functions only; persistence and idempotency live in the services layer.
package reward

import (
	"math"

	"github.com/pranaflow/prana-server/internal/insight"
)

// Points floor and cap. Any non-trivial reflection earns at least MinPoints;
// MaxPoints bounds the award so text padding cannot be farmed for points.
const (
	MinPoints = 5
	MaxPoints = 25
)

// Reward is the point award and chakra activation set for one analysis.
// Chakras keeps first-activation order with duplicates collapsed.
type Reward struct {
	Points  int   `json:"points"`
	Chakras []int `json:"chakras"`
}

// themeChakras is the fixed theme -> chakra index table (0 root .. 6 crown).
var themeChakras = map[string][]int{
	"calm":      {0},
	"energy":    {1, 2},
	"connect":   {3},
	"gratitude": {3},
	"express":   {4},
	"aware":     {5},
	"growth":    {5},
	"spirit":    {6},
}

// Map converts an analysis into a reward. Points are monotonic in both
// emotional depth and self-awareness.
func Map(a insight.Analysis) Reward {
	points := MinPoints +
		int(math.Round(a.EmotionalDepth*10)) +
		int(math.Round(a.SelfAwareness*10))
	if points > MaxPoints {
		points = MaxPoints
	}

	seen := make(map[int]bool, len(a.Themes))
	var chakras []int
	for _, th := range a.Themes {
		for _, c := range themeChakras[th] {
			if !seen[c] {
				seen[c] = true
				chakras = append(chakras, c)
			}
		}
	}

	return Reward{Points: points, Chakras: chakras}
}

// ActivationPoints is the fixed award for a chakra activation that carries no
// reflection (direct tap in the UI).
func ActivationPoints(chakraIndex int) int {
	return 10 + chakraIndex*5
}
