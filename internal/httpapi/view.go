package httpapi

import (
	"encoding/json"

	"github.com/MoJuiceX/clawcombat-sub000/internal/battle"
)

// sideSnapshot renders one side of a battle.State for the §6 snapshot
// endpoints. includePP reveals move PP — reserved for a side's own view,
// never the opponent's.
func sideSnapshot(s *battle.SideState, includePP bool) map[string]any {
	out := map[string]any{
		"agentId": s.AgentID,
		"type":    string(s.Type),
		"level":   s.Level,
		"hp":      s.CurrentHP,
		"maxHp":   s.MaxHP,
		"status":  string(s.Status),
		"stages":  s.Stages,
	}
	if includePP {
		moves := make([]map[string]any, len(s.Moves))
		for i, m := range s.Moves {
			moves[i] = map[string]any{
				"moveId":    string(m.ID),
				"currentPP": m.CurrentPP,
				"maxPP":     m.MaxPP,
			}
		}
		out["moves"] = moves
		out["abilityId"] = string(s.AbilityID)
	}
	return out
}

// publicBattleState renders a battle.State with no participant in
// context — neither side's PP is shown.
func publicBattleState(state *battle.State) map[string]any {
	return map[string]any{
		"turnNumber": state.TurnNumber,
		"a":          sideSnapshot(&state.A, false),
		"b":          sideSnapshot(&state.B, false),
	}
}

// jsonEvents decodes a persisted turn log's events_json column back into
// a generic slice for the §6 GET /battles/{id}/history response.
func jsonEvents(eventsJSON string) []map[string]any {
	var out []map[string]any
	_ = json.Unmarshal([]byte(eventsJSON), &out)
	return out
}
