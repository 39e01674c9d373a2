package battle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Whitebox test of the §8 property 3 mutual-faint tiebreak: when both sides
// hit 0 HP on the same turn, the battle's FirstSide wins rather than the
// result being ambiguous or a draw.
func TestCheckBattleEnd_MutualFaintPicksFirstSide(t *testing.T) {
	state := &State{FirstSide: SideB}
	state.A.CurrentHP = 0
	state.B.CurrentHP = 0

	tc := &turnCtx{state: state}
	ended := tc.checkBattleEnd()

	assert.True(t, ended)
	assert.Len(t, tc.events, 1)
	assert.Equal(t, EventBattleEnd, tc.events[0].Kind)
	assert.Equal(t, SideB, tc.events[0].Winner)
}

func TestCheckBattleEnd_SingleFaintPicksSurvivor(t *testing.T) {
	state := &State{FirstSide: SideA}
	state.A.CurrentHP = 0
	state.B.CurrentHP = 5

	tc := &turnCtx{state: state}
	ended := tc.checkBattleEnd()

	assert.True(t, ended)
	assert.Equal(t, SideB, tc.events[0].Winner)
}

func TestCheckBattleEnd_NoFaintContinues(t *testing.T) {
	state := &State{}
	state.A.CurrentHP = 10
	state.B.CurrentHP = 10

	tc := &turnCtx{state: state}
	assert.False(t, tc.checkBattleEnd())
	assert.Empty(t, tc.events)
}
