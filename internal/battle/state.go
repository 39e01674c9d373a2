package battle

import "github.com/MoJuiceX/clawcombat-sub000/internal/catalog"

// Side names one of the two participants in a battle.
type Side string

const (
	SideA Side = "A"
	SideB Side = "B"
)

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

// MoveSlot is one of an agent's four moves, tracked with its remaining PP
// for the duration of one battle.
type MoveSlot struct {
	ID        catalog.MoveID
	Name      string
	Type      catalog.TypeName
	Category  catalog.Category
	Power     int
	Accuracy  int
	Priority  int
	MaxPP     int
	CurrentPP int
	Effects   []catalog.Effect
}

// SideState is the full mutable per-side battle record from §3's "Battle
// State blob" — everything needed to resolve the next turn without
// consulting the agent row again.
type SideState struct {
	AgentID string

	BaseStats Stats
	Level     int
	Nature    catalog.NatureID
	Type      catalog.TypeName
	AbilityID catalog.AbilityID

	// EffectiveStats is the battle-start snapshot (§3), mutated only by
	// battle_start abilities, never by stat stages.
	EffectiveStats Stats

	MaxHP     int
	CurrentHP int

	Status         catalog.Status
	FreezeTurns    int
	SleepTurns     int
	ConfusionTurns int
	WokeFromDamage bool

	Stages map[catalog.StatName]int

	Moves []MoveSlot

	SturdyUsed  bool
	WishPending bool
	WishTurn    int
	WishAmount  int
	LeechSeeded bool
	Cursed      bool

	Flinched           bool
	TookDamageThisTurn bool

	ConsecutiveTimeouts int
}

// Stage returns the current stage for stat, defaulting to 0.
func (s *SideState) Stage(stat catalog.StatName) int {
	if s.Stages == nil {
		return 0
	}
	return s.Stages[stat]
}

// AddStage adjusts stat's stage by delta, clamped to [-6, 6].
func (s *SideState) AddStage(stat catalog.StatName, delta int) {
	if s.Stages == nil {
		s.Stages = make(map[catalog.StatName]int, len(catalog.StageableStats))
	}
	s.Stages[stat] = catalog.ClampStage(s.Stages[stat] + delta)
}

// ResetStages zeroes every stat stage (the reset_stats effect).
func (s *SideState) ResetStages() {
	s.Stages = make(map[catalog.StatName]int, len(catalog.StageableStats))
}

// StagedSpeed returns effective speed with its stage and the paralysis
// penalty applied (§4.2: paralysis "×0.5 speed on top of ×0.75 stage
// logic").
func (s *SideState) StagedSpeed() int {
	speed := StagedStat(s.EffectiveStats.Speed, s.Stage(catalog.StatSpeed))
	if s.Status == catalog.StatusParalysis {
		speed = int(float64(speed) * 0.5)
	}
	return speed
}

// MoveByID finds a move slot by id.
func (s *SideState) MoveByID(id catalog.MoveID) (*MoveSlot, bool) {
	for i := range s.Moves {
		if s.Moves[i].ID == id {
			return &s.Moves[i], true
		}
	}
	return nil, false
}

// Fainted reports whether this side's HP has reached zero.
func (s *SideState) Fainted() bool {
	return s.CurrentHP <= 0
}

// Heal raises CurrentHP by amount, clamped to [0, MaxHP].
func (s *SideState) Heal(amount int) int {
	before := s.CurrentHP
	s.CurrentHP += amount
	if s.CurrentHP > s.MaxHP {
		s.CurrentHP = s.MaxHP
	}
	if s.CurrentHP < 0 {
		s.CurrentHP = 0
	}
	return s.CurrentHP - before
}

// Damage lowers CurrentHP by amount, clamped to [0, MaxHP], and marks the
// side as having taken damage this turn (used to wake sleeping sides).
func (s *SideState) Damage(amount int) int {
	before := s.CurrentHP
	s.CurrentHP -= amount
	if s.CurrentHP < 0 {
		s.CurrentHP = 0
	}
	s.TookDamageThisTurn = true
	if s.Status == catalog.StatusSleep {
		s.WokeFromDamage = true
	}
	return before - s.CurrentHP
}

// State is the full two-sided battle record resolveTurn mutates in place.
type State struct {
	TurnNumber int
	FirstSide  Side
	A          SideState
	B          SideState
}

// Get returns the named side's mutable state.
func (st *State) Get(side Side) *SideState {
	if side == SideA {
		return &st.A
	}
	return &st.B
}
