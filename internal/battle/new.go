package battle

import (
	"github.com/MoJuiceX/clawcombat-sub000/internal/catalog"
	"github.com/MoJuiceX/clawcombat-sub000/internal/clawerr"
)

// SideInit is the agent-derived data needed to initialise one side of a new
// battle: base stats, level, nature, type, ability, and moveset.
type SideInit struct {
	AgentID   string
	BaseStats Stats
	Level     int
	Nature    catalog.NatureID
	Type      catalog.TypeName
	AbilityID catalog.AbilityID
	Moves     []catalog.MoveID
}

// NewSideState builds a fresh SideState at full HP and full PP (§3's
// "Battle Start" initialisation). Effective stats come straight from base
// stats, level, and nature; no ability effect is applied here.
func NewSideState(init SideInit) (*SideState, error) {
	nature, ok := catalog.NatureByID(init.Nature)
	if !ok {
		return nil, clawerr.InvalidArgumentf("unknown nature %q", init.Nature)
	}

	moves := make([]MoveSlot, 0, len(init.Moves))
	for _, id := range init.Moves {
		mv, ok := catalog.MoveByID(id)
		if !ok {
			return nil, clawerr.InvalidArgumentf("unknown move %q", id)
		}
		moves = append(moves, MoveSlot{
			ID: mv.ID, Name: mv.Name, Type: mv.Type, Category: mv.Category,
			Power: mv.Power, Accuracy: mv.Accuracy, Priority: mv.Priority,
			MaxPP: mv.PP, CurrentPP: mv.PP,
			Effects: mv.Effects,
		})
	}

	effective := EffectiveStats(init.BaseStats, init.Level, nature)

	s := &SideState{
		AgentID:        init.AgentID,
		BaseStats:      init.BaseStats,
		Level:          init.Level,
		Nature:         init.Nature,
		Type:           init.Type,
		AbilityID:      init.AbilityID,
		EffectiveStats: effective,
		MaxHP:          effective.HP,
		CurrentHP:      effective.HP,
		Status:         catalog.StatusNone,
		Stages:         make(map[catalog.StatName]int, len(catalog.StageableStats)),
		Moves:          moves,
	}

	return s, nil
}

// NewBattleState builds the initial two-sided state for a battle just
// transitioning to active (§4.6 accept/challenge and §4.5 match pairing).
func NewBattleState(a, b SideInit) (*State, error) {
	sideA, err := NewSideState(a)
	if err != nil {
		return nil, err
	}
	sideB, err := NewSideState(b)
	if err != nil {
		return nil, err
	}
	return &State{A: *sideA, B: *sideB}, nil
}
