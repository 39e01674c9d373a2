package coordinator

import (
	"context"
	"database/sql"
	"math"

	"github.com/google/uuid"

	"github.com/MoJuiceX/clawcombat-sub000/internal/battle"
	"github.com/MoJuiceX/clawcombat-sub000/internal/store"
)

// battleResult carries the rating deltas applied for one terminal
// transition, indexed by side, so the webhook payload can report them
// without a second read of the (already-updated) agent rows.
type battleResult struct {
	eloDeltaA, eloDeltaB int
	xpA, xpB             int
	socialTokenA         string
	socialTokenB         string
}

// applyBattleResults implements §4.6 step 6's applyBattleResults: a
// standard K-factor ELO update and a level-difference-scaled XP award,
// applied exactly once per terminal transition, plus a one-shot social
// token per side.
func (c *Coordinator) applyBattleResults(ctx context.Context, tx *sql.Tx, b *store.Battle, agentA, agentB *store.Agent, winner battle.Side) (*battleResult, error) {
	winnerAgent, loserAgent := agentA, agentB
	if winner == battle.SideB {
		winnerAgent, loserAgent = agentB, agentA
	}

	winnerEloDelta := eloDelta(winnerAgent.ELO, loserAgent.ELO)
	loserEloDelta := -winnerEloDelta

	winnerXP := xpAward(baseXPWinner, winnerAgent.Level, loserAgent.Level)
	loserXP := xpAward(baseXPLoser, loserAgent.Level, winnerAgent.Level)

	if err := store.ApplyBattleResult(ctx, tx, winnerAgent.ID, winnerEloDelta, winnerXP, true); err != nil {
		return nil, err
	}
	if err := store.ApplyBattleResult(ctx, tx, loserAgent.ID, loserEloDelta, loserXP, false); err != nil {
		return nil, err
	}

	now := c.now()
	tokenA := uuid.NewString()
	tokenB := uuid.NewString()
	if err := store.IssueSocialToken(ctx, tx, &store.SocialToken{
		Token: tokenA, AgentID: agentA.ID, BattleID: b.ID, ExpiresAt: now + socialTokenTTLSeconds,
	}); err != nil {
		return nil, err
	}
	if err := store.IssueSocialToken(ctx, tx, &store.SocialToken{
		Token: tokenB, AgentID: agentB.ID, BattleID: b.ID, ExpiresAt: now + socialTokenTTLSeconds,
	}); err != nil {
		return nil, err
	}

	result := &battleResult{socialTokenA: tokenA, socialTokenB: tokenB}
	if winner == battle.SideA {
		result.eloDeltaA, result.eloDeltaB = winnerEloDelta, loserEloDelta
		result.xpA, result.xpB = winnerXP, loserXP
	} else {
		result.eloDeltaA, result.eloDeltaB = loserEloDelta, winnerEloDelta
		result.xpA, result.xpB = loserXP, winnerXP
	}
	return result, nil
}

// eloDelta computes the winner's rating change with a standard K=32
// logistic expected-score update; the loser's delta is its exact negation.
func eloDelta(winnerELO, loserELO int) int {
	expected := 1.0 / (1.0 + math.Pow(10, float64(loserELO-winnerELO)/400.0))
	return int(math.Round(eloKFactor * (1.0 - expected)))
}

// xpAward scales base by how much stronger the opponent was: facing a
// higher-level opponent is worth more XP, a much weaker one less, clamped
// to [xpMultiplierFloor, xpMultiplierCeil] so no fight is worth zero.
func xpAward(base, selfLevel, opponentLevel int) int {
	diff := float64(opponentLevel - selfLevel)
	multiplier := 1.0 + xpPerLevelDiff*diff
	if multiplier < xpMultiplierFloor {
		multiplier = xpMultiplierFloor
	}
	if multiplier > xpMultiplierCeil {
		multiplier = xpMultiplierCeil
	}
	return int(math.Round(float64(base) * multiplier))
}
