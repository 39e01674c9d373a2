package coordinator

import (
	"context"
	"database/sql"

	"github.com/MoJuiceX/clawcombat-sub000/internal/battle"
	"github.com/MoJuiceX/clawcombat-sub000/internal/catalog"
	"github.com/MoJuiceX/clawcombat-sub000/internal/clawerr"
	"github.com/MoJuiceX/clawcombat-sub000/internal/store"
	"github.com/MoJuiceX/clawcombat-sub000/internal/webhook"
)

// SubmitMove implements §4.6's submitMove: validates the caller and move,
// persists the pending move, and — once both sides have moved — resolves
// the turn and (on a terminal transition) applies battle results, all in
// one transaction. Returns the battle row as it stands after the call.
func (c *Coordinator) SubmitMove(ctx context.Context, battleID, callerAgentID string, moveID catalog.MoveID) (*store.Battle, error) {
	var result *store.Battle
	var deliveries []webhook.Delivery

	err := c.db.WithTx(ctx, func(tx *sql.Tx) error {
		b, err := store.GetBattle(ctx, tx, battleID)
		if err != nil {
			return err
		}
		if b.Status != store.BattleActive {
			return clawerr.New(clawerr.CodeInvalidState, "battle is not active")
		}

		side, err := sideFor(b, callerAgentID)
		if err != nil {
			return err
		}

		state, err := battle.Unmarshal(b.StateBlob)
		if err != nil {
			return err
		}
		sideState := state.Get(side)

		slot, ok := sideState.MoveByID(moveID)
		if !ok {
			return clawerr.InvalidArgumentf("move %q is not on your roster", moveID)
		}
		if slot.CurrentPP <= 0 {
			return clawerr.New(clawerr.CodeResourceExhausted, "move has no PP remaining")
		}

		pending := pendingMove(b, side)
		if pending != nil {
			return clawerr.Conflict("a move has already been submitted for this turn")
		}

		moveStr := string(moveID)
		setPendingMove(b, side, &moveStr)

		otherPending := pendingMove(b, side.Other())
		if otherPending == nil {
			// Waiting on the opponent: persist only the pending move.
			if err := store.UpdateBattle(ctx, tx, b); err != nil {
				return err
			}
			result = b
			return nil
		}

		var moveA, moveB catalog.MoveID
		if side == battle.SideA {
			moveA, moveB = catalog.MoveID(moveStr), catalog.MoveID(*otherPending)
		} else {
			moveA, moveB = catalog.MoveID(*otherPending), catalog.MoveID(moveStr)
		}

		turnLog, err := battle.ResolveTurn(ctx, c.roll, state, moveA, moveB)
		if err != nil {
			return err
		}

		agentA, err := store.GetAgentByID(ctx, tx, b.AgentAID)
		if err != nil {
			return err
		}
		agentB, err := store.GetAgentByID(ctx, tx, b.AgentBID)
		if err != nil {
			return err
		}

		deliveries, err = c.CommitResolvedTurn(ctx, tx, b, state, turnLog, agentA, agentB)
		if err != nil {
			return err
		}
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

// sideFor identifies which side of battle callerAgentID is playing, or
// fails with forbidden if it is neither (§4.6 step 2).
func sideFor(b *store.Battle, agentID string) (battle.Side, error) {
	switch agentID {
	case b.AgentAID:
		return battle.SideA, nil
	case b.AgentBID:
		return battle.SideB, nil
	default:
		return "", clawerr.Forbidden("caller is not a participant in this battle")
	}
}

func pendingMove(b *store.Battle, side battle.Side) *string {
	if side == battle.SideA {
		return b.PendingMoveA
	}
	return b.PendingMoveB
}

func setPendingMove(b *store.Battle, side battle.Side, move *string) {
	if side == battle.SideA {
		b.PendingMoveA = move
	} else {
		b.PendingMoveB = move
	}
}
