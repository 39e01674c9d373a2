package webhook_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MoJuiceX/clawcombat-sub000/internal/events"
	"github.com/MoJuiceX/clawcombat-sub000/internal/webhook"
)

func TestSign_IsDeterministicHexHMAC(t *testing.T) {
	body := []byte(`{"event":"battle_turn"}`)
	sig1 := webhook.Sign("secret", body)
	sig2 := webhook.Sign("secret", body)
	assert.Equal(t, sig1, sig2)
	assert.NotEqual(t, sig1, webhook.Sign("other-secret", body))
	assert.Len(t, sig1, 64) // hex-encoded SHA-256: 32 bytes * 2
}

func TestDispatcher_DeliversSignedRequest(t *testing.T) {
	var gotEvent, gotSig string
	var gotBody []byte
	done := make(chan struct{}, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEvent = r.Header.Get("X-ClawCombat-Event")
		gotSig = r.Header.Get("X-ClawCombat-Signature")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		done <- struct{}{}
	}))
	defer srv.Close()

	bus := events.NewBus()
	d := webhook.NewDispatcher(nil)
	require.NoError(t, d.Subscribe(bus))
	defer d.Close()

	require.NoError(t, webhook.Publish(bus, []webhook.Delivery{{
		AgentID:       "agent-a",
		WebhookURL:    srv.URL,
		WebhookSecret: "shh",
		EventName:     "battle_turn",
		Payload:       map[string]any{"battleId": "b1"},
	}}))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("webhook was not delivered in time")
	}

	assert.Equal(t, "battle_turn", gotEvent)
	assert.Equal(t, webhook.Sign("shh", gotBody), gotSig)
	assert.Contains(t, string(gotBody), "b1")
}

func TestDispatcher_DropsTerminal4xxWithoutRetry(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	bus := events.NewBus()
	d := webhook.NewDispatcher(nil)
	require.NoError(t, d.Subscribe(bus))

	require.NoError(t, webhook.Publish(bus, []webhook.Delivery{{
		AgentID:    "agent-a",
		WebhookURL: srv.URL,
		EventName:  "battle_turn",
		Payload:    map[string]any{},
	}}))

	d.Close() // waits for the single in-flight delivery to finish

	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}

func TestDispatcher_SkipsEmptyWebhookURL(t *testing.T) {
	bus := events.NewBus()
	d := webhook.NewDispatcher(nil)
	require.NoError(t, d.Subscribe(bus))

	require.NoError(t, webhook.Publish(bus, []webhook.Delivery{{
		AgentID:   "agent-a",
		EventName: "battle_turn",
		Payload:   map[string]any{},
	}}))

	d.Close()
}
