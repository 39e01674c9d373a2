// Package webhook dispatches outbound battle notifications to agents'
// registered endpoints (§4.8 C8): HMAC-signed, retried with capped
// exponential backoff, decoupled from the caller via internal/events' bus.
package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/MoJuiceX/clawcombat-sub000/internal/events"
)

const (
	requestTimeout  = 10 * time.Second
	maxAttempts     = 3
	initialInterval = 1 * time.Second
	backoffFactor   = 2.0
	queueDepth      = 256
	workerCount     = 4
)

// Logger is the narrow slice of a structured logger the dispatcher needs,
// satisfied by internal/logging's zap wrapper without importing it here.
type Logger interface {
	Warn(msg string, fields ...any)
}

type noopLogger struct{}

func (noopLogger) Warn(string, ...any) {}

// Dispatcher subscribes to DispatchEvent and sends each delivery over HTTP,
// retrying 5xx/network failures with exponential backoff and dropping 4xx
// failures immediately (§4.8).
type Dispatcher struct {
	client *http.Client
	log    Logger
	jobs   chan Delivery
	wg     sync.WaitGroup
}

// NewDispatcher builds a Dispatcher and starts its worker pool. Call
// Subscribe to wire it to a bus, and Close to drain and stop.
func NewDispatcher(log Logger) *Dispatcher {
	if log == nil {
		log = noopLogger{}
	}
	d := &Dispatcher{
		client: &http.Client{Timeout: requestTimeout},
		log:    log,
		jobs:   make(chan Delivery, queueDepth),
	}
	d.wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go d.worker()
	}
	return d
}

// Subscribe registers the dispatcher's intake handler on bus. The handler
// enqueues every delivery onto the worker channel and returns immediately;
// a delivery that finds the queue full is dropped with a warning rather than blocking the
// publisher (the publisher holds no lock a dropped webhook is worth
// stalling).
func (d *Dispatcher) Subscribe(bus *events.Bus) error {
	_, err := bus.Subscribe(dispatchRef, func(e *DispatchEvent) error {
		for _, delivery := range e.Deliveries {
			select {
			case d.jobs <- delivery:
			default:
				d.log.Warn("webhook queue full, dropping delivery",
					"agentId", delivery.AgentID, "event", delivery.EventName)
			}
		}
		return nil
	})
	return err
}

// Close stops accepting new deliveries and waits for in-flight workers to
// drain the queue they already have.
func (d *Dispatcher) Close() {
	close(d.jobs)
	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for delivery := range d.jobs {
		d.send(delivery)
	}
}

func (d *Dispatcher) send(delivery Delivery) {
	if delivery.WebhookURL == "" {
		return // §4.8: skip silently if empty
	}

	body, err := json.Marshal(delivery.Payload)
	if err != nil {
		d.log.Warn("webhook payload marshal failed", "agentId", delivery.AgentID, "error", err.Error())
		return
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initialInterval
	b.Multiplier = backoffFactor
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	policy := backoff.WithMaxRetries(b, maxAttempts-1)

	err = backoff.Retry(func() error {
		return d.attempt(delivery, body)
	}, policy)
	if err != nil {
		d.log.Warn("webhook delivery failed", "agentId", delivery.AgentID, "event", delivery.EventName, "error", err.Error())
	}
}

func (d *Dispatcher) attempt(delivery Delivery, body []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, delivery.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-ClawCombat-Event", delivery.EventName)
	req.Header.Set("X-ClawCombat-Signature", Sign(delivery.WebhookSecret, body))

	resp, err := d.client.Do(req)
	if err != nil {
		return err // network error: retryable
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 500:
		return fmt.Errorf("webhook target returned %d", resp.StatusCode)
	default:
		return backoff.Permanent(fmt.Errorf("webhook target returned %d", resp.StatusCode))
	}
}

// Sign returns the hex HMAC-SHA256 of body using secret, for the
// X-ClawCombat-Signature header (§4.8).
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
