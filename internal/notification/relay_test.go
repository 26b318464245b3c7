package notification

import (
	"encoding/json"
	"testing"
	"time"

	"skillswap/internal/ws"

	"github.com/google/uuid"
)

func registeredClient(t *testing.T, hub *ws.Hub, userID uuid.UUID) *ws.Client {
	t.Helper()
	client := ws.NewClient(hub, nil, userID)
	hub.Register(client)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.HasListeners(userID) {
			return client
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("client never registered")
	return nil
}

func TestHubRelay_Notify_DeliversToListener(t *testing.T) {
	hub := ws.NewHub(nil)
	go hub.Run()

	userID := uuid.New()
	client := registeredClient(t, hub, userID)

	relay := NewHubRelay(hub, nil)
	relay.Notify(userID, EventRequestAccepted, "Swap request accepted", "Your swap request was accepted")

	select {
	case payload := <-client.Send():
		var evt struct {
			Type      string `json:"type"`
			EventType string `json:"event_type"`
		}
		if err := json.Unmarshal(payload, &evt); err != nil {
			t.Fatalf("bad payload: %v", err)
		}
		if evt.Type != "notification" || evt.EventType != EventRequestAccepted {
			t.Fatalf("unexpected event %+v", evt)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("event never delivered")
	}
}

func TestHubRelay_Notify_NoListenerIsSilent(t *testing.T) {
	hub := ws.NewHub(nil)
	go hub.Run()

	relay := NewHubRelay(hub, nil)
	// Must not panic or block without a connected client.
	relay.Notify(uuid.New(), EventNewRequest, "New swap request", "body")
}

func TestHubRelay_SwapEvent_ReachesAllParticipants(t *testing.T) {
	hub := ws.NewHub(nil)
	go hub.Run()

	from := uuid.New()
	to := uuid.New()
	c1 := registeredClient(t, hub, from)
	c2 := registeredClient(t, hub, to)

	relay := NewHubRelay(hub, nil)
	swapID := uuid.New()
	relay.SwapEvent(swapID, "accepted", from, to)

	for _, c := range []*ws.Client{c1, c2} {
		select {
		case payload := <-c.Send():
			var evt struct {
				Type   string `json:"type"`
				SwapID string `json:"swap_id"`
				Status string `json:"status"`
			}
			if err := json.Unmarshal(payload, &evt); err != nil {
				t.Fatalf("bad payload: %v", err)
			}
			if evt.Type != "swap_feed" || evt.SwapID != swapID.String() || evt.Status != "accepted" {
				t.Fatalf("unexpected event %+v", evt)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("participant missed the event")
		}
	}
}
