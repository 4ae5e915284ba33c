// Package heuristics holds the tunable tables behind the suggestion score:
// factor weights and per-hero boost categories.
package heuristics

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/pelletier/go-toml/v2"
)

const (
	CategoryMarquee = "marquee"
	CategoryComplex = "complex"
)

//go:embed default.toml
var defaultTable []byte

var ErrInvalidWeights = errors.New("invalid weights")

type Weights struct {
	Counter          float64 `toml:"counter"`
	Synergy          float64 `toml:"synergy"`
	Meta             float64 `toml:"meta"`
	ItemSynergy      float64 `toml:"item_synergy"`
	LaneOptimization float64 `toml:"lane_optimization"`
	Timing           float64 `toml:"timing"`
	ProPattern       float64 `toml:"pro_pattern"`
	MLSynergy        float64 `toml:"ml_synergy"`
}

func (w Weights) values() []float64 {
	return []float64{w.Counter, w.Synergy, w.Meta, w.ItemSynergy, w.LaneOptimization, w.Timing, w.ProPattern, w.MLSynergy}
}

func (w Weights) Sum() float64 {
	var s float64
	for _, v := range w.values() {
		s += v
	}
	return s
}

func (w Weights) Validate() error {
	for _, v := range w.values() {
		if v < 0 {
			return fmt.Errorf("%w: negative weight %v", ErrInvalidWeights, v)
		}
	}
	if sum := w.Sum(); math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("%w: weights sum to %v", ErrInvalidWeights, sum)
	}
	return nil
}

// Table is treated as immutable once loaded.
type Table struct {
	Weights Weights            `toml:"weights"`
	Boosts  map[string]float64 `toml:"boosts"`
	Heroes  map[string]string  `toml:"heroes"`
}

// Category returns the boost category for a hero's internal name, "" if none.
func (t *Table) Category(heroName string) string {
	if t == nil {
		return ""
	}
	return t.Heroes[heroName]
}

// Boost returns the boost for heroName when it belongs to category.
func (t *Table) Boost(heroName, category string) float64 {
	if t.Category(heroName) != category {
		return 0
	}
	return t.Boosts[category]
}

func (t *Table) IsComplex(heroName string) bool {
	return t.Category(heroName) == CategoryComplex
}

// Default returns the compiled-in table.
func Default() *Table {
	t, err := Parse(defaultTable)
	if err != nil {
		panic(fmt.Sprintf("heuristics: default table: %v", err))
	}
	return t
}

// Parse decodes and validates a TOML table. The weights section is required.
func Parse(data []byte) (*Table, error) {
	t := &Table{}
	if err := toml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("failed to parse heuristics table: %w", err)
	}
	if err := t.Weights.Validate(); err != nil {
		return nil, err
	}
	if t.Boosts == nil {
		t.Boosts = map[string]float64{}
	}
	if t.Heroes == nil {
		t.Heroes = map[string]string{}
	}
	return t, nil
}

// Load reads a table from path.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read heuristics table: %w", err)
	}
	return Parse(data)
}
