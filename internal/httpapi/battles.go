package httpapi

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MoJuiceX/clawcombat-sub000/internal/battle"
	"github.com/MoJuiceX/clawcombat-sub000/internal/catalog"
	"github.com/MoJuiceX/clawcombat-sub000/internal/clawerr"
	"github.com/MoJuiceX/clawcombat-sub000/internal/matchmaker"
	"github.com/MoJuiceX/clawcombat-sub000/internal/store"
)

// getAgentByID and getBattle resolve a read-only row outside any write
// transaction. internal/store only exposes GetAgentByID/GetBattle against
// its unexported queryer interface (satisfied by *sql.Tx), so callers
// outside the package reach it through a throwaway WithTx.
func getAgentByID(r *http.Request, db *store.DB, id string) (*store.Agent, error) {
	var a *store.Agent
	err := db.WithTx(r.Context(), func(tx *sql.Tx) error {
		var err error
		a, err = store.GetAgentByID(r.Context(), tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func getBattle(r *http.Request, db *store.DB, id string) (*store.Battle, error) {
	var b *store.Battle
	err := db.WithTx(r.Context(), func(tx *sql.Tx) error {
		var err error
		b, err = store.GetBattle(r.Context(), tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Server) handleQueueJoin(w http.ResponseWriter, r *http.Request) {
	caller := callerAgent(r.Context())
	if err := matchmaker.Join(r.Context(), s.db, caller.ID, s.nowUnix()); err != nil {
		writeError(w, err)
		return
	}

	// §4.5: one pairing attempt (matchmaker.Match) runs synchronously on a
	// queue join; if it forms a pair, the response reports that battle.
	matched, err := matchmaker.Match(r.Context(), s.db, s.nowUnix())
	if err != nil {
		writeError(w, err)
		return
	}
	if matched == nil {
		writeJSON(w, http.StatusOK, map[string]any{"status": "queued"})
		return
	}

	agentA, errA := getAgentByID(r, s.db, matched.AgentAID)
	agentB, errB := getAgentByID(r, s.db, matched.AgentBID)
	if errA == nil && errB == nil {
		_ = s.coord.NotifyBattleStart(r.Context(), matched, agentA, agentB)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "battle_started",
		"battleId": matched.ID,
	})
}

func (s *Server) handleQueueLeave(w http.ResponseWriter, r *http.Request) {
	caller := callerAgent(r.Context())
	if err := matchmaker.Leave(r.Context(), s.db, caller.ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "left"})
}

type challengeBody struct {
	TargetID string `json:"targetId"`
}

func (s *Server) handleChallenge(w http.ResponseWriter, r *http.Request) {
	caller := callerAgent(r.Context())
	var body challengeBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	b, err := s.coord.Challenge(r.Context(), caller.ID, body.TargetID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "challenge_sent", "battleId": b.ID})
}

func (s *Server) handleAccept(w http.ResponseWriter, r *http.Request) {
	caller := callerAgent(r.Context())
	battleID := chi.URLParam(r, "id")

	b, err := s.coord.Accept(r.Context(), battleID, caller.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	state, err := battle.Unmarshal(b.StateBlob)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "battle_started",
		"battleId":    b.ID,
		"battleState": publicBattleState(state),
	})
}

type chooseMoveBody struct {
	MoveID string `json:"moveId"`
}

func (s *Server) handleChooseMove(w http.ResponseWriter, r *http.Request) {
	caller := callerAgent(r.Context())
	battleID := chi.URLParam(r, "id")

	var body chooseMoveBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if body.MoveID == "" {
		writeError(w, clawerr.InvalidArgument("moveId is required"))
		return
	}

	b, err := s.coord.SubmitMove(r.Context(), battleID, caller.ID, catalog.MoveID(body.MoveID))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "move_submitted",
		"battleId":   b.ID,
		"turnNumber": b.TurnNumber,
	})
}

func (s *Server) handleSurrender(w http.ResponseWriter, r *http.Request) {
	caller := callerAgent(r.Context())
	battleID := chi.URLParam(r, "id")

	b, err := s.coord.Surrender(r.Context(), battleID, caller.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "forfeited", "battleId": b.ID})
}

func (s *Server) handleActiveBattle(w http.ResponseWriter, r *http.Request) {
	caller := callerAgent(r.Context())
	b, err := store.GetActiveBattleForAgent(r.Context(), s.db, caller.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.renderBattle(b, caller))
}

func (s *Server) handleGetBattle(w http.ResponseWriter, r *http.Request) {
	battleID := chi.URLParam(r, "id")
	b, err := getBattle(r, s.db, battleID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.renderBattle(b, callerAgent(r.Context())))
}

func (s *Server) handleBattleHistory(w http.ResponseWriter, r *http.Request) {
	battleID := chi.URLParam(r, "id")
	if _, err := getBattle(r, s.db, battleID); err != nil {
		writeError(w, err)
		return
	}

	turns, err := store.ListTurnLogs(r.Context(), s.db, battleID)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]map[string]any, len(turns))
	for i, t := range turns {
		out[i] = map[string]any{
			"turnNumber": t.TurnNumber,
			"moveA":      t.MoveA,
			"moveB":      t.MoveB,
			"events":     jsonEvents(t.EventsJSON),
			"hpAfterA":   t.HPAfterA,
			"hpAfterB":   t.HPAfterB,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"battleId": battleID, "turns": out})
}

// renderBattle builds the §6 battle snapshot: public fields always, plus
// the caller's own full side view when they're a participant (§6 "enriched
// if caller is a participant").
func (s *Server) renderBattle(b *store.Battle, caller *store.Agent) map[string]any {
	out := map[string]any{
		"battleId":      b.ID,
		"displayNumber": b.DisplayNumber,
		"agentAId":      b.AgentAID,
		"agentBId":      b.AgentBID,
		"status":        string(b.Status),
		"phase":         string(b.Phase),
		"turnNumber":    b.TurnNumber,
		"winnerId":      b.WinnerID,
	}
	if len(b.StateBlob) == 0 {
		return out
	}
	state, err := battle.Unmarshal(b.StateBlob)
	if err != nil {
		return out
	}

	if caller == nil {
		out["state"] = publicBattleState(state)
		return out
	}

	var mine battle.Side
	switch caller.ID {
	case b.AgentAID:
		mine = battle.SideA
	case b.AgentBID:
		mine = battle.SideB
	default:
		out["state"] = publicBattleState(state)
		return out
	}

	out["yourSide"] = string(mine)
	out["state"] = map[string]any{
		"turnNumber": state.TurnNumber,
		"a":          sideSnapshot(&state.A, mine == battle.SideA),
		"b":          sideSnapshot(&state.B, mine == battle.SideB),
	}
	return out
}
