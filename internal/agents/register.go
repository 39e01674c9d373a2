// Package agents implements agent creation (§6 POST /agents/register,
// POST /agents/connect): validating the §3 Agent invariants, minting a
// credential, and persisting the row.
package agents

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MoJuiceX/clawcombat-sub000/internal/catalog"
	"github.com/MoJuiceX/clawcombat-sub000/internal/clawerr"
	"github.com/MoJuiceX/clawcombat-sub000/internal/store"
	"github.com/MoJuiceX/clawcombat-sub000/internal/webhook"
)

const (
	minNameLen   = 3
	maxNameLen   = 32
	statBudget   = 100
	statCap      = 35
	statFloor    = 1
)

// RegisterRequest is the validated input to Register and Connect, shared
// by both endpoints (connect simply skips OwnerID and always sets
// PlayMode auto per §4.6's bot-identity shortcut).
type RegisterRequest struct {
	Name          string
	OwnerID       string
	Type          catalog.TypeName
	BaseStats     [6]int
	Nature        catalog.NatureID
	AbilityID     catalog.AbilityID
	Moves         [4]catalog.MoveID
	WebhookURL    string
	WebhookSecret string
	PlayMode      store.PlayMode
	AllowPrivateWebhook bool
}

// Result is what a caller gets back: the stored agent row and the
// plaintext credential, returned exactly once (§3, §8 property 4).
type Result struct {
	Agent      *store.Agent
	Credential string
}

// Register validates req against the §3 Agent invariants and creates a
// new agent row, returning its one-time plaintext credential.
func Register(ctx context.Context, db *store.DB, now int64, req RegisterRequest) (*Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	credential, digest, err := newCredential()
	if err != nil {
		return nil, err
	}

	a := &store.Agent{
		ID:               uuid.NewString(),
		Name:             req.Name,
		CredentialDigest: digest,
		OwnerID:          req.OwnerID,
		WebhookURL:       req.WebhookURL,
		WebhookSecret:    req.WebhookSecret,
		Type:             req.Type,
		BaseStats:        req.BaseStats,
		Nature:           req.Nature,
		AbilityID:        req.AbilityID,
		Moves:            req.Moves,
		Level:            1,
		ELO:              1000,
		Status:           store.AgentActive,
		PlayMode:         req.PlayMode,
		CreatedAt:        now,
	}
	if a.PlayMode == "" {
		a.PlayMode = store.PlayModeManual
	}

	err = db.WithTx(ctx, func(tx *sql.Tx) error {
		return store.InsertAgent(ctx, tx, a)
	})
	if err != nil {
		return nil, err
	}

	return &Result{Agent: a, Credential: credential}, nil
}

// Connect is the one-shot create+link shortcut for a bot identity (§6
// POST /agents/connect): identical validation to Register, but the
// created agent always runs in auto play mode and carries no owner.
func Connect(ctx context.Context, db *store.DB, now int64, req RegisterRequest) (*Result, error) {
	req.OwnerID = ""
	req.PlayMode = store.PlayModeAuto
	return Register(ctx, db, now, req)
}

func validate(req RegisterRequest) error {
	name := strings.TrimSpace(req.Name)
	if len(name) < minNameLen || len(name) > maxNameLen {
		return clawerr.InvalidArgumentf("name must be %d-%d characters", minNameLen, maxNameLen)
	}

	if !catalog.IsValidType(req.Type) {
		return clawerr.InvalidArgumentf("unknown type %q", req.Type)
	}

	sum := 0
	for _, s := range req.BaseStats {
		if s < statFloor || s > statCap {
			return clawerr.InvalidArgumentf("base stats must each be in [%d, %d]", statFloor, statCap)
		}
		sum += s
	}
	if sum != statBudget {
		return clawerr.InvalidArgumentf("base stats must sum to %d, got %d", statBudget, sum)
	}

	if !catalog.IsValidNature(req.Nature) {
		return clawerr.InvalidArgumentf("unknown nature %q", req.Nature)
	}

	if !catalog.IsAbilityAllowed(req.Type, req.AbilityID) {
		return clawerr.InvalidArgumentf("ability %q is not available to type %q", req.AbilityID, req.Type)
	}

	seen := make(map[catalog.MoveID]bool, len(req.Moves))
	for _, m := range req.Moves {
		if seen[m] {
			return clawerr.InvalidArgumentf("move %q listed more than once", m)
		}
		seen[m] = true
		if !catalog.IsMoveInTypePool(req.Type, m) {
			return clawerr.InvalidArgumentf("move %q is not in type %q's pool", m, req.Type)
		}
	}

	if err := webhook.ValidateURLAllowPrivate(req.WebhookURL, req.AllowPrivateWebhook); err != nil {
		return err
	}
	return nil
}

// newCredential mints a 32-byte random secret and returns its hex form
// alongside the SHA-256 digest of that hex string, which gets persisted
// and is what requireAuth computes from the bearer — the plaintext is
// never stored.
func newCredential() (plaintext, digest string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", clawerr.Internal(fmt.Sprintf("generate credential: %v", err))
	}
	plaintext = hex.EncodeToString(buf)
	sum := sha256.Sum256([]byte(plaintext))
	digest = hex.EncodeToString(sum[:])
	return plaintext, digest, nil
}
