package coordinator

import (
	"context"
	"database/sql"

	"github.com/MoJuiceX/clawcombat-sub000/internal/battle"
	"github.com/MoJuiceX/clawcombat-sub000/internal/clawerr"
	"github.com/MoJuiceX/clawcombat-sub000/internal/store"
	"github.com/MoJuiceX/clawcombat-sub000/internal/webhook"
)

// Surrender implements §4.6's surrender: the caller forfeits immediately,
// results are applied as though the opponent won, and only the opponent is
// notified (reason opponent_surrendered).
func (c *Coordinator) Surrender(ctx context.Context, battleID, callerAgentID string) (*store.Battle, error) {
	var result *store.Battle
	var deliveries []webhook.Delivery

	err := c.db.WithTx(ctx, func(tx *sql.Tx) error {
		b, err := store.GetBattle(ctx, tx, battleID)
		if err != nil {
			return err
		}
		if b.IsTerminal() {
			return clawerr.New(clawerr.CodeInvalidState, "battle is already over")
		}

		side, err := sideFor(b, callerAgentID)
		if err != nil {
			return err
		}
		winnerSide := side.Other()

		agentA, err := store.GetAgentByID(ctx, tx, b.AgentAID)
		if err != nil {
			return err
		}
		agentB, err := store.GetAgentByID(ctx, tx, b.AgentBID)
		if err != nil {
			return err
		}

		winnerID := agentA.ID
		if winnerSide == battle.SideB {
			winnerID = agentB.ID
		}

		now := c.now()
		b.Status = store.BattleForfeited
		b.Phase = store.PhaseFinished
		b.WinnerID = &winnerID
		b.EndedAt = &now
		b.PendingMoveA = nil
		b.PendingMoveB = nil
		if err := store.UpdateBattle(ctx, tx, b); err != nil {
			return err
		}

		bresult, err := c.applyBattleResults(ctx, tx, b, agentA, agentB, winnerSide)
		if err != nil {
			return err
		}

		state, err := battle.Unmarshal(b.StateBlob)
		if err != nil {
			return err
		}
		all := c.battleEndDeliveries(ctx, tx, b, state, nil, agentA, agentB, winnerSide, bresult, "opponent_surrendered")
		deliveries = deliveriesForSide(all, winnerSide)

		result = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := webhook.Publish(c.bus, deliveries); err != nil {
		return result, err
	}
	return result, nil
}

// deliveriesForSide filters a two-side delivery slice built in A,B order
// down to the single delivery for keep (surrender notifies only the
// non-surrendering side, §4.6).
func deliveriesForSide(all []webhook.Delivery, keep battle.Side) []webhook.Delivery {
	if keep == battle.SideA {
		if len(all) > 0 {
			return all[:1]
		}
		return nil
	}
	if len(all) > 1 {
		return all[1:2]
	}
	return nil
}
