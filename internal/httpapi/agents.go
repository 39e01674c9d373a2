package httpapi

import (
	"net/http"

	"github.com/MoJuiceX/clawcombat-sub000/internal/agents"
	"github.com/MoJuiceX/clawcombat-sub000/internal/catalog"
)

// registerBody is the wire shape of POST /agents/register and
// POST /agents/connect (§6); both endpoints validate identically, the
// distinction is ownership and play mode (internal/agents.Connect).
type registerBody struct {
	Name       string   `json:"name"`
	OwnerID    string   `json:"ownerId"`
	Type       string   `json:"type"`
	BaseStats  [6]int   `json:"baseStats"`
	Nature     string   `json:"nature"`
	AbilityID  string   `json:"abilityId"`
	Moves      [4]string `json:"moves"`
	WebhookURL string   `json:"webhookUrl"`
}

func (b registerBody) toRequest(allowPrivateWebhook bool) agents.RegisterRequest {
	var moves [4]catalog.MoveID
	for i, m := range b.Moves {
		moves[i] = catalog.MoveID(m)
	}
	return agents.RegisterRequest{
		Name:                b.Name,
		OwnerID:             b.OwnerID,
		Type:                catalog.TypeName(b.Type),
		BaseStats:           b.BaseStats,
		Nature:              catalog.NatureID(b.Nature),
		AbilityID:           catalog.AbilityID(b.AbilityID),
		Moves:               moves,
		WebhookURL:          b.WebhookURL,
		AllowPrivateWebhook: allowPrivateWebhook,
	}
}

type registerResponse struct {
	AgentID    string `json:"agentId"`
	Credential string `json:"credential"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body registerBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	result, err := agents.Register(r.Context(), s.db, s.nowUnix(), body.toRequest(s.allowPrivateWebhook))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, registerResponse{AgentID: result.Agent.ID, Credential: result.Credential})
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	var body registerBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	result, err := agents.Connect(r.Context(), s.db, s.nowUnix(), body.toRequest(s.allowPrivateWebhook))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, registerResponse{AgentID: result.Agent.ID, Credential: result.Credential})
}
