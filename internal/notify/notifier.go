// Package notify defines the event sink the workflow core emits to after
// state-changing operations. Delivery is fire-and-forget: a failing or slow
// sink never rolls back or blocks the operation that triggered it.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"
)

// Event types emitted by the core.
const (
	EventProformaCreated  = "proforma.created"
	EventProformaApproved = "proforma.approved"
	EventDepositReceived  = "deposit.received"
	EventProductionStart  = "production.started"
	EventQcRecorded       = "qc.recorded"
)

// Event is one notification payload.
type Event struct {
	Type    string                 `json:"type"`
	At      time.Time              `json:"at"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// Notifier is the injected sink. Implementations must not return errors to
// the caller; failures are theirs to log.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

// Broadcaster is anything that accepts a raw broadcast message; the
// websocket hub satisfies it.
type Broadcaster interface {
	TryBroadcast(message []byte) bool
}

// HubNotifier pushes events to connected websocket clients.
type HubNotifier struct {
	hub Broadcaster
	log *logrus.Logger
}

func NewHubNotifier(hub Broadcaster, log *logrus.Logger) *HubNotifier {
	return &HubNotifier{hub: hub, log: log}
}

func (n *HubNotifier) Notify(_ context.Context, event Event) {
	if event.At.IsZero() {
		event.At = time.Now()
	}
	data, err := json.Marshal(event)
	if err != nil {
		n.log.WithError(err).WithField("event", event.Type).Warn("notify: failed to encode event")
		return
	}
	if !n.hub.TryBroadcast(data) {
		n.log.WithField("event", event.Type).Warn("notify: hub busy, event dropped")
	}
}

// Nop is the notifier used when no sink is wired (and in tests).
type Nop struct{}

func (Nop) Notify(context.Context, Event) {}
