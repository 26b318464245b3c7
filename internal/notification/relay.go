package notification

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"skillswap/internal/ws"

	"github.com/google/uuid"
)

// Lifecycle event types pushed to counterpart users.
const (
	EventNewRequest       = "new_request"
	EventRequestAccepted  = "request_accepted"
	EventRequestRejected  = "request_rejected"
	EventRequestCompleted = "request_completed"
	EventRequestCancelled = "request_cancelled"
	EventRatingReceived   = "rating_received"
)

// Relay delivers best-effort, at-most-once signals. Implementations must
// never fail the triggering operation: delivery problems are logged and
// swallowed.
type Relay interface {
	Notify(userID uuid.UUID, eventType, title, body string)
	SwapEvent(swapID uuid.UUID, status string, participants ...uuid.UUID)
}

type notifyEvent struct {
	Type      string `json:"type"`
	EventType string `json:"event_type"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Timestamp string `json:"timestamp"`
}

type swapFeedEvent struct {
	Type      string `json:"type"`
	SwapID    string `json:"swap_id"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// HubRelay pushes events through the websocket hub.
type HubRelay struct {
	hub    *ws.Hub
	logger *log.Logger
}

func NewHubRelay(hub *ws.Hub, logger *log.Logger) *HubRelay {
	return &HubRelay{hub: hub, logger: logger}
}

func (r *HubRelay) Notify(userID uuid.UUID, eventType, title, body string) {
	if r == nil {
		return
	}

	eventType = strings.TrimSpace(eventType)
	if eventType == "" || userID == uuid.Nil {
		return
	}

	evt := notifyEvent{
		Type:      "notification",
		EventType: eventType,
		Title:     title,
		Body:      body,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	if !r.hub.HasListeners(userID) {
		if r.logger != nil {
			r.logger.Printf("notify dropped | user=%s event=%s reason=no_listener", userID, eventType)
		}
		return
	}
	r.hub.SendToUser(userID, b)
}

// SwapEvent echoes a lifecycle change to every participant, including the
// actor. Clients tolerate their own echo by refreshing idempotently.
func (r *HubRelay) SwapEvent(swapID uuid.UUID, status string, participants ...uuid.UUID) {
	if r == nil {
		return
	}

	evt := swapFeedEvent{
		Type:      "swap_feed",
		SwapID:    swapID.String(),
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	for _, p := range participants {
		if p == uuid.Nil {
			continue
		}
		r.hub.SendToUser(p, b)
	}
}
