package coordinator_test

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MoJuiceX/clawcombat-sub000/internal/battle"
	"github.com/MoJuiceX/clawcombat-sub000/internal/catalog"
	"github.com/MoJuiceX/clawcombat-sub000/internal/clawerr"
	"github.com/MoJuiceX/clawcombat-sub000/internal/coordinator"
	"github.com/MoJuiceX/clawcombat-sub000/internal/dice"
	"github.com/MoJuiceX/clawcombat-sub000/internal/events"
	"github.com/MoJuiceX/clawcombat-sub000/internal/store"
	"github.com/MoJuiceX/clawcombat-sub000/internal/webhook"
)

func newTestDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// recordingServer counts requests received.
type recordingServer struct {
	mu    sync.Mutex
	count int
}

func (r *recordingServer) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		r.mu.Lock()
		r.count++
		r.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}
}

func (r *recordingServer) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

func mustInsertAgentWithWebhook(t *testing.T, db *store.DB, id, webhookURL string) {
	t.Helper()
	agent := &store.Agent{
		ID:               id,
		Name:             id,
		CredentialDigest: id + "-digest",
		WebhookURL:       webhookURL,
		WebhookSecret:    "shh-" + id,
		Type:             catalog.TypeFire,
		BaseStats:        [6]int{16, 17, 17, 17, 17, 16},
		Nature:           "hardy",
		AbilityID:        "blaze",
		Moves:            [4]catalog.MoveID{"fire_blast", "flamethrower", "fire_punch", "fire_recover"},
		Level:            10,
		ELO:              1000,
		Status:           store.AgentActive,
		PlayMode:         store.PlayModeManual,
		CreatedAt:        1000,
	}
	err := db.WithTx(context.Background(), func(tx *sql.Tx) error {
		return store.InsertAgent(context.Background(), tx, agent)
	})
	require.NoError(t, err)
}

func sideInitFor(a *store.Agent) battle.SideInit {
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

func insertActiveBattle(t *testing.T, db *store.DB, agentA, agentB string) string {
	t.Helper()
	ctx := context.Background()
	var battleID string
	err := db.WithTx(ctx, func(tx *sql.Tx) error {
		agentARow, err := store.GetAgentByID(ctx, tx, agentA)
		if err != nil {
			return err
		}
		agentBRow, err := store.GetAgentByID(ctx, tx, agentB)
		if err != nil {
			return err
		}
		state, err := battle.NewBattleState(sideInitFor(agentARow), sideInitFor(agentBRow))
		if err != nil {
			return err
		}
		blob, err := battle.Marshal(state)
		if err != nil {
			return err
		}
		display, err := store.NextDisplayNumber(ctx, tx)
		if err != nil {
			return err
		}
		b := &store.Battle{
			ID:            uuid.NewString(),
			DisplayNumber: display,
			AgentAID:      agentA,
			AgentBID:      agentB,
			Status:        store.BattleActive,
			Phase:         store.PhaseWaiting,
			StateBlob:     blob,
			CreatedAt:     1000,
		}
		battleID = b.ID
		return store.InsertBattle(ctx, tx, b)
	})
	require.NoError(t, err)
	return battleID
}

func TestSubmitMove_ResolvesTurnOnceBothSidesMove(t *testing.T) {
	db := newTestDB(t)

	serverA := &recordingServer{}
	serverB := &recordingServer{}
	httpServerA := httptest.NewServer(serverA.handler())
	defer httpServerA.Close()
	httpServerB := httptest.NewServer(serverB.handler())
	defer httpServerB.Close()

	mustInsertAgentWithWebhook(t, db, "agent-a", httpServerA.URL)
	mustInsertAgentWithWebhook(t, db, "agent-b", httpServerB.URL)
	battleID := insertActiveBattle(t, db, "agent-a", "agent-b")

	bus := events.NewBus()
	d := webhook.NewDispatcher(nil)
	require.NoError(t, d.Subscribe(bus))
	defer d.Close()

	clock := func() int64 { return 2000 }
	c := coordinator.New(db, bus, clock).WithRoller(dice.NewMockRoller(1))

	b, err := c.SubmitMove(context.Background(), battleID, "agent-a", "fire_blast")
	require.NoError(t, err)
	assert.NotNil(t, b.PendingMoveA)
	assert.Nil(t, b.PendingMoveB)

	b, err = c.SubmitMove(context.Background(), battleID, "agent-b", "fire_punch")
	require.NoError(t, err)
	assert.Nil(t, b.PendingMoveA)
	assert.Nil(t, b.PendingMoveB)

	require.Eventually(t, func() bool {
		return serverA.Count() >= 1 && serverB.Count() >= 1
	}, 2*time.Second, 10*time.Millisecond, "both sides should receive a battle_turn or battle_end webhook")
}

func TestSubmitMove_RejectsAlreadySubmitted(t *testing.T) {
	db := newTestDB(t)
	mustInsertAgentWithWebhook(t, db, "agent-a", "")
	mustInsertAgentWithWebhook(t, db, "agent-b", "")
	battleID := insertActiveBattle(t, db, "agent-a", "agent-b")

	c := coordinator.New(db, nil, func() int64 { return 1 }).WithRoller(dice.NewMockRoller(1))

	_, err := c.SubmitMove(context.Background(), battleID, "agent-a", "fire_blast")
	require.NoError(t, err)

	_, err = c.SubmitMove(context.Background(), battleID, "agent-a", "flamethrower")
	assert.True(t, clawerr.IsConflict(err))
}

func TestSubmitMove_RejectsNonParticipant(t *testing.T) {
	db := newTestDB(t)
	mustInsertAgentWithWebhook(t, db, "agent-a", "")
	mustInsertAgentWithWebhook(t, db, "agent-b", "")
	mustInsertAgentWithWebhook(t, db, "stranger", "")
	battleID := insertActiveBattle(t, db, "agent-a", "agent-b")

	c := coordinator.New(db, nil, func() int64 { return 1 }).WithRoller(dice.NewMockRoller(1))

	_, err := c.SubmitMove(context.Background(), battleID, "stranger", "fire_blast")
	assert.True(t, clawerr.IsForbidden(err))
}

func TestSurrender_NotifiesOnlyOpponent(t *testing.T) {
	db := newTestDB(t)

	surrendererServer := &recordingServer{}
	opponentServer := &recordingServer{}
	httpSurrenderer := httptest.NewServer(surrendererServer.handler())
	defer httpSurrenderer.Close()
	httpOpponent := httptest.NewServer(opponentServer.handler())
	defer httpOpponent.Close()

	mustInsertAgentWithWebhook(t, db, "agent-a", httpSurrenderer.URL)
	mustInsertAgentWithWebhook(t, db, "agent-b", httpOpponent.URL)
	battleID := insertActiveBattle(t, db, "agent-a", "agent-b")

	bus := events.NewBus()
	d := webhook.NewDispatcher(nil)
	require.NoError(t, d.Subscribe(bus))
	defer d.Close()

	c := coordinator.New(db, bus, func() int64 { return 5000 })

	b, err := c.Surrender(context.Background(), battleID, "agent-a")
	require.NoError(t, err)
	assert.Equal(t, store.BattleForfeited, b.Status)
	require.NotNil(t, b.WinnerID)
	assert.Equal(t, "agent-b", *b.WinnerID)

	require.Eventually(t, func() bool {
		return opponentServer.Count() >= 1
	}, 2*time.Second, 10*time.Millisecond, "opponent should receive the battle_end webhook")

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, surrendererServer.Count(), "surrendering side must not be notified")
}

func TestChallengeThenAccept(t *testing.T) {
	db := newTestDB(t)
	mustInsertAgentWithWebhook(t, db, "challenger", "")
	mustInsertAgentWithWebhook(t, db, "target", "")

	c := coordinator.New(db, nil, func() int64 { return 10 })

	b, err := c.Challenge(context.Background(), "challenger", "target")
	require.NoError(t, err)
	assert.Equal(t, store.BattlePending, b.Status)
	assert.Equal(t, store.PhaseChallenge, b.Phase)

	_, err = c.Accept(context.Background(), b.ID, "challenger")
	assert.True(t, clawerr.IsForbidden(err), "only the target may accept")

	accepted, err := c.Accept(context.Background(), b.ID, "target")
	require.NoError(t, err)
	assert.Equal(t, store.BattleActive, accepted.Status)
	assert.Equal(t, store.PhaseWaiting, accepted.Phase)
	assert.NotEmpty(t, accepted.StateBlob)
}

func TestChallenge_RejectsSelfChallenge(t *testing.T) {
	db := newTestDB(t)
	mustInsertAgentWithWebhook(t, db, "agent-a", "")

	c := coordinator.New(db, nil, func() int64 { return 10 })
	_, err := c.Challenge(context.Background(), "agent-a", "agent-a")
	assert.True(t, clawerr.IsInvalidArgument(err))
}
