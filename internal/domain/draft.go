package domain

import (
	"errors"
	"fmt"
)

const TeamSize = 5

type DraftPhase string

const (
	PhasePicking   DraftPhase = "picking"
	PhaseCompleted DraftPhase = "completed"
)

type Team string

const (
	TeamYours Team = "yours"
	TeamEnemy Team = "enemy"
)

var (
	ErrInvalidTeam       = errors.New("invalid team")
	ErrInvalidSlot       = errors.New("invalid slot")
	ErrSlotOccupied      = errors.New("slot already occupied")
	ErrHeroAlreadyPicked = errors.New("hero already picked")
	ErrDraftComplete     = errors.New("draft already completed")
	ErrTeamFull          = errors.New("team is full")
	ErrInvalidHero       = errors.New("invalid hero id")
)

// DraftState holds hero ids per slot; 0 marks an empty slot.
type DraftState struct {
	YourTeam  [TeamSize]int
	EnemyTeam [TeamSize]int
	Phase     DraftPhase
	PickCount int
}

func NewDraftState() *DraftState {
	return &DraftState{Phase: PhasePicking}
}

func (d *DraftState) team(t Team) (*[TeamSize]int, error) {
	switch t {
	case TeamYours:
		return &d.YourTeam, nil
	case TeamEnemy:
		return &d.EnemyTeam, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidTeam, t)
}

// Contains reports whether heroID sits in any slot of either team.
func (d *DraftState) Contains(heroID int) bool {
	if heroID == 0 {
		return false
	}
	for i := 0; i < TeamSize; i++ {
		if d.YourTeam[i] == heroID || d.EnemyTeam[i] == heroID {
			return true
		}
	}
	return false
}

// Picked returns the set of hero ids present in either team.
func (d *DraftState) Picked() map[int]struct{} {
	picked := make(map[int]struct{}, 2*TeamSize)
	for i := 0; i < TeamSize; i++ {
		if id := d.YourTeam[i]; id != 0 {
			picked[id] = struct{}{}
		}
		if id := d.EnemyTeam[i]; id != 0 {
			picked[id] = struct{}{}
		}
	}
	return picked
}

func (d *DraftState) YourHeroIDs() []int {
	return filled(d.YourTeam)
}

func (d *DraftState) EnemyHeroIDs() []int {
	return filled(d.EnemyTeam)
}

func filled(slots [TeamSize]int) []int {
	ids := make([]int, 0, TeamSize)
	for _, id := range slots {
		if id != 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

// DraftFromTeams builds a state with each id at its index in the team. Zero ids
// are empty slots.
func DraftFromTeams(yours, enemy []int) (*DraftState, error) {
	d := NewDraftState()
	for _, side := range []struct {
		team Team
		ids  []int
	}{{TeamYours, yours}, {TeamEnemy, enemy}} {
		if len(side.ids) > TeamSize {
			return nil, fmt.Errorf("%w: %s has %d heroes", ErrTeamFull, side.team, len(side.ids))
		}
		for slot, id := range side.ids {
			if id == 0 {
				continue
			}
			if err := d.PickAt(side.team, slot, id); err != nil {
				return nil, err
			}
		}
	}
	return d, nil
}

func (d *DraftState) checkPick(heroID int) error {
	if d.Phase == PhaseCompleted {
		return ErrDraftComplete
	}
	if heroID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidHero, heroID)
	}
	if d.Contains(heroID) {
		return fmt.Errorf("%w: %d", ErrHeroAlreadyPicked, heroID)
	}
	return nil
}

func (d *DraftState) place(slots *[TeamSize]int, slot, heroID int) {
	slots[slot] = heroID
	d.PickCount++
	if d.PickCount >= 2*TeamSize {
		d.Phase = PhaseCompleted
	}
}

// Pick places heroID into the first empty slot of the given team.
func (d *DraftState) Pick(t Team, heroID int) (int, error) {
	if err := d.checkPick(heroID); err != nil {
		return -1, err
	}
	slots, err := d.team(t)
	if err != nil {
		return -1, err
	}
	for i := range slots {
		if slots[i] == 0 {
			d.place(slots, i, heroID)
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrTeamFull, t)
}

// PickAt places heroID into a specific slot, which must be empty.
func (d *DraftState) PickAt(t Team, slot, heroID int) error {
	if err := d.checkPick(heroID); err != nil {
		return err
	}
	if slot < 0 || slot >= TeamSize {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	slots, err := d.team(t)
	if err != nil {
		return err
	}
	if slots[slot] != 0 {
		return fmt.Errorf("%w: %s slot %d holds hero %d", ErrSlotOccupied, t, slot, slots[slot])
	}
	d.place(slots, slot, heroID)
	return nil
}

// Unpick clears a slot and reopens the draft if it was completed.
func (d *DraftState) Unpick(t Team, slot int) error {
	if slot < 0 || slot >= TeamSize {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	slots, err := d.team(t)
	if err != nil {
		return err
	}
	if slots[slot] == 0 {
		return nil
	}
	slots[slot] = 0
	d.PickCount--
	d.Phase = PhasePicking
	return nil
}

const (
	PlaystyleAggressive = "aggressive"
	PlaystyleDefensive  = "defensive"
	PlaystyleBalanced   = "balanced"
)

const (
	ItemStrategyEarly   = "early"
	ItemStrategyScaling = "scaling"
	ItemStrategyUtility = "utility"
)

// GameContext carries optional per-query preferences. Zero values mean no preference.
type GameContext struct {
	ExpectedDuration *int // minutes
	PreferredLanes   []int
	Playstyle        string
	ItemStrategy     string
}

func (c GameContext) Duration() (int, bool) {
	if c.ExpectedDuration == nil {
		return 0, false
	}
	return *c.ExpectedDuration, true
}

func (c GameContext) DurationOr(fallback int) int {
	if d, ok := c.Duration(); ok {
		return d
	}
	return fallback
}

func Minutes(m int) *int {
	return &m
}
