package ws

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestHub_RegisterAndDeliver(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	userID := uuid.New()
	client := NewClient(hub, nil, userID)
	hub.Register(client)

	waitFor(t, func() bool { return hub.HasListeners(userID) }, "client never registered")

	if !hub.SendToUser(userID, []byte(`{"type":"ping"}`)) {
		t.Fatalf("SendToUser returned false")
	}

	select {
	case payload := <-client.send:
		if string(payload) != `{"type":"ping"}` {
			t.Fatalf("unexpected payload %s", payload)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("payload never delivered")
	}
}

func TestHub_FanOutToAllConnections(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	userID := uuid.New()
	c1 := NewClient(hub, nil, userID)
	c2 := NewClient(hub, nil, userID)
	hub.Register(c1)
	hub.Register(c2)

	waitFor(t, func() bool { return hub.ClientCount() == 2 }, "clients never registered")

	hub.SendToUser(userID, []byte("event"))

	for _, c := range []*Client{c1, c2} {
		select {
		case <-c.send:
		case <-time.After(2 * time.Second):
			t.Fatalf("connection missed the fan-out")
		}
	}
}

func TestHub_NoCrossUserDelivery(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	alice := uuid.New()
	bob := uuid.New()
	client := NewClient(hub, nil, bob)
	hub.Register(client)

	waitFor(t, func() bool { return hub.HasListeners(bob) }, "client never registered")

	hub.SendToUser(alice, []byte("secret"))

	select {
	case payload := <-client.send:
		t.Fatalf("payload for alice delivered to bob: %s", payload)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHub_UnregisterClosesSendChannel(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	userID := uuid.New()
	client := NewClient(hub, nil, userID)
	hub.Register(client)
	waitFor(t, func() bool { return hub.HasListeners(userID) }, "client never registered")

	hub.Unregister(client)
	waitFor(t, func() bool { return !hub.HasListeners(userID) }, "client never unregistered")

	select {
	case _, open := <-client.send:
		if open {
			t.Fatalf("expected closed send channel")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("send channel never closed")
	}
}
