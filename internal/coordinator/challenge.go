package coordinator

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/MoJuiceX/clawcombat-sub000/internal/battle"
	"github.com/MoJuiceX/clawcombat-sub000/internal/clawerr"
	"github.com/MoJuiceX/clawcombat-sub000/internal/store"
	"github.com/MoJuiceX/clawcombat-sub000/internal/webhook"
)

// Challenge implements §4.6's challenge: creates a pending battle row (no
// state blob yet) and dispatches battle_challenge to the target only.
func (c *Coordinator) Challenge(ctx context.Context, challengerID, targetID string) (*store.Battle, error) {
	if challengerID == targetID {
		return nil, clawerr.InvalidArgumentf("cannot challenge yourself")
	}

	var result *store.Battle
	var deliveries []webhook.Delivery

	err := c.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := store.GetAgentByID(ctx, tx, challengerID); err != nil {
			return err
		}
		target, err := store.GetAgentByID(ctx, tx, targetID)
		if err != nil {
			return err
		}

		busy, err := store.IsAgentInNonTerminalBattle(ctx, tx, challengerID)
		if err != nil {
			return err
		}
		if busy {
			return clawerr.Conflict("challenger is already in a battle")
		}
		busy, err = store.IsAgentInNonTerminalBattle(ctx, tx, targetID)
		if err != nil {
			return err
		}
		if busy {
			return clawerr.Conflict("target is already in a battle")
		}

		display, err := store.NextDisplayNumber(ctx, tx)
		if err != nil {
			return err
		}

		now := c.now()
		b := &store.Battle{
			ID:            uuid.NewString(),
			DisplayNumber: display,
			AgentAID:      challengerID,
			AgentBID:      targetID,
			Status:        store.BattlePending,
			Phase:         store.PhaseChallenge,
			CreatedAt:     now,
		}
		if err := store.InsertBattle(ctx, tx, b); err != nil {
			return err
		}

		deliveries = []webhook.Delivery{{
			AgentID:       target.ID,
			WebhookURL:    target.WebhookURL,
			WebhookSecret: target.WebhookSecret,
			EventName:     "battle_challenge",
			Payload: map[string]any{
				"event":        "battle_challenge",
				"battleId":     b.ID,
				"challengerId": challengerID,
			},
		}}
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

// Accept implements §4.6's accept: only the challenge's target may accept;
// it transitions the battle to active/waiting and initialises the state
// blob.
func (c *Coordinator) Accept(ctx context.Context, battleID, callerAgentID string) (*store.Battle, error) {
	var result *store.Battle
	var deliveries []webhook.Delivery

	err := c.db.WithTx(ctx, func(tx *sql.Tx) error {
		b, err := store.GetBattle(ctx, tx, battleID)
		if err != nil {
			return err
		}
		if b.Status != store.BattlePending || b.Phase != store.PhaseChallenge {
			return clawerr.New(clawerr.CodeInvalidState, "battle is not a pending challenge")
		}
		if callerAgentID != b.AgentBID {
			return clawerr.Forbidden("only the challenge target may accept")
		}

		agentA, err := store.GetAgentByID(ctx, tx, b.AgentAID)
		if err != nil {
			return err
		}
		agentB, err := store.GetAgentByID(ctx, tx, b.AgentBID)
		if err != nil {
			return err
		}

		state, err := battle.NewBattleState(sideInitFromAgent(agentA), sideInitFromAgent(agentB))
		if err != nil {
			return err
		}
		blob, err := battle.Marshal(state)
		if err != nil {
			return err
		}

		now := c.now()
		b.Status = store.BattleActive
		b.Phase = store.PhaseWaiting
		b.StateBlob = blob
		b.StartedAt = &now
		b.LastTurnAt = &now
		if err := store.UpdateBattle(ctx, tx, b); err != nil {
			return err
		}

		deliveries = c.battleStartDeliveries(b, state, agentA, agentB)
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

// NotifyBattleStart dispatches battle_start to both sides of a battle the
// matchmaker just paired. Unlike Accept, the matchmaker builds the battle
// row itself (to keep internal/matchmaker free of a webhook dependency),
// so the HTTP layer calls this right after a successful Match.
func (c *Coordinator) NotifyBattleStart(ctx context.Context, b *store.Battle, agentA, agentB *store.Agent) error {
	state, err := battle.Unmarshal(b.StateBlob)
	if err != nil {
		return err
	}
	return webhook.Publish(c.bus, c.battleStartDeliveries(b, state, agentA, agentB))
}

// sideInitFromAgent adapts a persisted agent into the battle engine's
// side-initialisation shape, the same mapping the matchmaker uses when it
// starts a battle from a queue pairing.
func sideInitFromAgent(a *store.Agent) battle.SideInit {
	return battle.SideInit{
		AgentID: a.ID,
		BaseStats: battle.Stats{
			HP:      a.BaseStats[0],
			Attack:  a.BaseStats[1],
			Defense: a.BaseStats[2],
			SpAtk:   a.BaseStats[3],
			SpDef:   a.BaseStats[4],
			Speed:   a.BaseStats[5],
		},
		Level:     a.Level,
		Nature:    a.Nature,
		Type:      a.Type,
		AbilityID: a.AbilityID,
		Moves:     a.Moves[:],
	}
}
