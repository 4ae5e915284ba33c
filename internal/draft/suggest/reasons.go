package suggest

import (
	"fmt"

	"dota-draft-advisor/internal/draft/lane"
)

const (
	reasonDegraded = "Limited analysis available for this hero"
	reasonFallback = "Balanced pick for the current draft"
)

// Thresholds on the 0..1 factor scale.
const (
	strongCounter   = 0.7
	weakCounter     = 0.4
	strongMeta      = 0.7
	strongSynergy   = 0.7
	strongItems     = 0.7
	strongLane      = 0.8
	strongTiming    = 0.7
	strongPro       = 0.5
	strongMLSynergy = 0.6
)

var positionNames = map[int]string{
	lane.PositionCarry:       "carry",
	lane.PositionMid:         "mid",
	lane.PositionOfflane:     "offlane",
	lane.PositionSoftSupport: "soft support",
	lane.PositionHardSupport: "hard support",
}

func reasons(b ScoreBreakdown, assignments []lane.Assignment, heroID int) []string {
	var out []string
	if b.Counter > strongCounter {
		out = append(out, "Strong counter to enemy heroes")
	}
	if b.Meta > strongMeta {
		out = append(out, "Strong in the current meta")
	}
	if b.Synergy > strongSynergy {
		out = append(out, "Great synergy with your team")
	}
	if b.ItemSynergy > strongItems {
		out = append(out, "Item build complements your team")
	}
	if b.LaneOptimization >= strongLane {
		if a, ok := lane.For(assignments, heroID); ok {
			out = append(out, fmt.Sprintf("Natural fit for position %d (%s)", a.Position, positionNames[a.Position]))
		}
	}
	if b.Timing > strongTiming {
		out = append(out, "Power spikes match the expected game length")
	}
	if b.ProPattern > strongPro {
		out = append(out, "Popular in professional drafts")
	}
	if b.MLSynergy > strongMLSynergy {
		out = append(out, "High predicted team synergy")
	}
	if b.Counter < weakCounter {
		out = append(out, "Unfavourable matchups against the enemy lineup")
	}
	if len(out) == 0 {
		out = append(out, reasonFallback)
	}
	return out
}
