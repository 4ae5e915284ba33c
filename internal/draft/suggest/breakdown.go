package suggest

import (
	"dota-draft-advisor/internal/heuristics"
)

// NeutralScore is the midpoint of the 0..1 factor scale.
const NeutralScore = 0.5

// ScoreBreakdown holds the eight factors, each on a 0..1 scale.
type ScoreBreakdown struct {
	Meta             float64
	Counter          float64
	Synergy          float64
	ItemSynergy      float64
	LaneOptimization float64
	Timing           float64
	ProPattern       float64
	MLSynergy        float64
}

func NeutralBreakdown() ScoreBreakdown {
	return ScoreBreakdown{
		Meta:             NeutralScore,
		Counter:          NeutralScore,
		Synergy:          NeutralScore,
		ItemSynergy:      NeutralScore,
		LaneOptimization: NeutralScore,
		Timing:           NeutralScore,
		ProPattern:       NeutralScore,
		MLSynergy:        NeutralScore,
	}
}

// Total is the dot product of weights and factors.
func (b ScoreBreakdown) Total(w heuristics.Weights) float64 {
	return b.Counter*w.Counter +
		b.Synergy*w.Synergy +
		b.Meta*w.Meta +
		b.ItemSynergy*w.ItemSynergy +
		b.LaneOptimization*w.LaneOptimization +
		b.Timing*w.Timing +
		b.ProPattern*w.ProPattern +
		b.MLSynergy*w.MLSynergy
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
