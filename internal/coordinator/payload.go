package coordinator

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MoJuiceX/clawcombat-sub000/internal/battle"
	"github.com/MoJuiceX/clawcombat-sub000/internal/catalog"
	"github.com/MoJuiceX/clawcombat-sub000/internal/store"
	"github.com/MoJuiceX/clawcombat-sub000/internal/webhook"
)

// closeMatchHPFraction is the winner's remaining-HP fraction below which a
// battle_end payload flags closeMatch (§4.6's "enriched context block").
const closeMatchHPFraction = 0.2

// winStreakMilestones and levelMilestones are the thresholds §4.6 names
// verbatim for the battle_end milestone markers.
var winStreakMilestones = []int{3, 5, 10}
var levelMilestones = []int{5, 10, 20}

const topRankThreshold = 10

// sideView renders one side's own state for a webhook payload: full detail
// including PP, matching §4.6's "own HP/PP/status/stats".
func sideView(s *battle.SideState) map[string]any {
	moves := make([]map[string]any, len(s.Moves))
	for i, m := range s.Moves {
		moves[i] = map[string]any{
			"moveId":    string(m.ID),
			"name":      m.Name,
			"currentPP": m.CurrentPP,
			"maxPP":     m.MaxPP,
		}
	}
	return map[string]any{
		"agentId":   s.AgentID,
		"type":      string(s.Type),
		"level":     s.Level,
		"hp":        s.CurrentHP,
		"maxHp":     s.MaxHP,
		"status":    string(s.Status),
		"stats":     s.EffectiveStats,
		"stages":    s.Stages,
		"moves":     moves,
		"abilityId": string(s.AbilityID),
	}
}

// opponentView renders the public subset of a side's state (§4.6's
// "opponent's public state") — no PP detail, since that isn't observable
// by an opponent in the source game either.
func opponentView(s *battle.SideState) map[string]any {
	return map[string]any{
		"agentId": s.AgentID,
		"type":    string(s.Type),
		"level":   s.Level,
		"hp":      s.CurrentHP,
		"maxHp":   s.MaxHP,
		"status":  string(s.Status),
		"stages":  s.Stages,
	}
}

// typeMatchup pre-computes each side's type-effectiveness multiplier
// attacking the other, per §4.6's "pre-computed type matchup".
func typeMatchup(mine, theirs *battle.SideState) map[string]any {
	return map[string]any{
		"yourAdvantage":      catalog.Effectiveness(mine.Type, theirs.Type),
		"opponentAdvantage":  catalog.Effectiveness(theirs.Type, mine.Type),
	}
}

func eventsPayload(events []battle.Event) []map[string]any {
	out := make([]map[string]any, len(events))
	for i, e := range events {
		out[i] = map[string]any{
			"kind":          string(e.Kind),
			"side":          string(e.Side),
			"moveId":        e.MoveID,
			"amount":        e.Amount,
			"effectiveness": e.Effectiveness,
			"crit":          e.Crit,
			"status":        string(e.Status),
			"stat":          string(e.Stat),
			"stages":        e.Stages,
			"ability":       e.Ability,
			"reason":        e.Reason,
		}
	}
	return out
}

// battleStartDeliveries builds the battle_start payload sent to both sides
// the moment a battle's state blob is first initialised (matchmaker pairing
// or challenge accept) — no enriched context yet, since nothing has
// resolved.
func (c *Coordinator) battleStartDeliveries(b *store.Battle, state *battle.State, agentA, agentB *store.Agent) []webhook.Delivery {
	base := map[string]any{
		"event":    "battle_start",
		"battleId": b.ID,
	}
	return []webhook.Delivery{
		c.sidedDelivery(agentA, "battle_start", mergeMaps(base, map[string]any{
			"yourSide":    string(battle.SideA),
			"yourLobster": sideView(&state.A),
			"opponent":    opponentView(&state.B),
			"typeMatchup": typeMatchup(&state.A, &state.B),
		})),
		c.sidedDelivery(agentB, "battle_start", mergeMaps(base, map[string]any{
			"yourSide":    string(battle.SideB),
			"yourLobster": sideView(&state.B),
			"opponent":    opponentView(&state.A),
			"typeMatchup": typeMatchup(&state.B, &state.A),
		})),
	}
}

// battleTurnDeliveries builds the battle_turn payload sent to both sides
// after a non-terminal turn resolution.
func (c *Coordinator) battleTurnDeliveries(b *store.Battle, state *battle.State, turnLog *battle.TurnLog, agentA, agentB *store.Agent) []webhook.Delivery {
	base := map[string]any{
		"event":      "battle_turn",
		"battleId":   b.ID,
		"turnNumber": turnLog.TurnNumber,
		"events":     eventsPayload(turnLog.Events),
	}
	return []webhook.Delivery{
		c.sidedDelivery(agentA, "battle_turn", mergeMaps(base, map[string]any{
			"yourSide":    string(battle.SideA),
			"yourLobster": sideView(&state.A),
			"opponent":    opponentView(&state.B),
			"typeMatchup": typeMatchup(&state.A, &state.B),
		})),
		c.sidedDelivery(agentB, "battle_turn", mergeMaps(base, map[string]any{
			"yourSide":    string(battle.SideB),
			"yourLobster": sideView(&state.B),
			"opponent":    opponentView(&state.A),
			"typeMatchup": typeMatchup(&state.B, &state.A),
		})),
	}
}

// battleEndDeliveries builds the battle_end payload, including the
// enriched context block (§4.6), one delivery per side in A,B order. A
// non-empty reason (e.g. surrender) is added to the payload; a caller that
// notifies only one side filters the result with deliveriesForSide.
func (c *Coordinator) battleEndDeliveries(ctx context.Context, tx *sql.Tx, b *store.Battle, state *battle.State, turnLog *battle.TurnLog, agentA, agentB *store.Agent, winner battle.Side, result *battleResult, reason string) []webhook.Delivery {
	base := map[string]any{
		"event":    "battle_end",
		"battleId": b.ID,
		"winner":   string(winner),
	}
	if reason != "" {
		base["reason"] = reason
	}
	if turnLog != nil {
		base["events"] = eventsPayload(turnLog.Events)
	}

	winnerHPFraction := hpFraction(&state.A)
	if winner == battle.SideB {
		winnerHPFraction = hpFraction(&state.B)
	}
	closeMatch := winnerHPFraction <= closeMatchHPFraction

	deliverA := c.sidedDelivery(agentA, "battle_end", mergeMaps(base, map[string]any{
		"yourSide":    string(battle.SideA),
		"yourLobster": sideView(&state.A),
		"opponent":    opponentView(&state.B),
		"typeMatchup": typeMatchup(&state.A, &state.B),
		"context":     c.enrichedContext(ctx, tx, b, agentA, agentB, winner == battle.SideA, closeMatch, result.eloDeltaA, result.xpA, result.socialTokenA),
	}))
	deliverB := c.sidedDelivery(agentB, "battle_end", mergeMaps(base, map[string]any{
		"yourSide":    string(battle.SideB),
		"yourLobster": sideView(&state.B),
		"opponent":    opponentView(&state.A),
		"typeMatchup": typeMatchup(&state.B, &state.A),
		"context":     c.enrichedContext(ctx, tx, b, agentB, agentA, winner == battle.SideB, closeMatch, result.eloDeltaB, result.xpB, result.socialTokenB),
	}))
	return []webhook.Delivery{deliverA, deliverB}
}

func hpFraction(s *battle.SideState) float64 {
	if s.MaxHP <= 0 {
		return 0
	}
	return float64(s.CurrentHP) / float64(s.MaxHP)
}

// enrichedContext builds §4.6's battle_end context block for one side: a
// close-match flag, ELO rank, head-to-head history, revenge/upset flags,
// milestone markers, and the social-token handle for this side's battle
// summary.
func (c *Coordinator) enrichedContext(ctx context.Context, tx *sql.Tx, b *store.Battle, self, opponent *store.Agent, won, closeMatch bool, eloDelta, xp int, socialToken string) map[string]any {
	newELO := self.ELO + eloDelta
	newWinStreak := 0
	if won {
		newWinStreak = self.WinStreak + 1
	}

	rank, _ := store.RankByELO(ctx, tx, self.ID)
	wins, played, _ := store.HeadToHead(ctx, tx, self.ID, opponent.ID)
	lostLastTime, hadPrevious, _ := store.PreviousResultAgainst(ctx, tx, self.ID, opponent.ID, b.ID)
	revengeWin := won && hadPrevious && lostLastTime

	return map[string]any{
		"closeMatch":     closeMatch,
		"rank":           rank,
		"newElo":         newELO,
		"eloDelta":       eloDelta,
		"xpAwarded":      xp,
		"headToHead":     map[string]any{"wins": wins, "played": played},
		"revengeWin":     revengeWin,
		"milestones":     milestoneMarkers(newWinStreak, self.Level, rank, revengeWin),
		"socialToken":    socialToken,
		"socialTokenTTL": socialTokenTTLSeconds,
	}
}

// milestoneMarkers implements §4.6's fixed milestone marker set.
func milestoneMarkers(winStreak, level, rank int, revengeWin bool) []string {
	var markers []string
	for _, m := range winStreakMilestones {
		if winStreak == m {
			markers = append(markers, fmt.Sprintf("win_streak_%d", m))
		}
	}
	for _, m := range levelMilestones {
		if level == m {
			markers = append(markers, fmt.Sprintf("level_%d", m))
		}
	}
	if rank <= topRankThreshold {
		markers = append(markers, "top_10_clash")
	}
	if revengeWin {
		markers = append(markers, "revenge_win")
	}
	return markers
}

func mergeMaps(a, b map[string]any) map[string]any {
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

func (c *Coordinator) sidedDelivery(agent *store.Agent, eventName string, payload map[string]any) webhook.Delivery {
	return webhook.Delivery{
		AgentID:       agent.ID,
		WebhookURL:    agent.WebhookURL,
		WebhookSecret: agent.WebhookSecret,
		EventName:     eventName,
		Payload:       payload,
	}
}
