package app

import (
	"errors"
	"testing"

	"github.com/goccy/go-json"

	"github.com/dkeye/SwiftChat/internal/core"
	"github.com/dkeye/SwiftChat/internal/domain"
)

func TestRouteSkipsSender(t *testing.T) {
	r := NewRegistry()
	c1, c2 := conn("c1"), conn("c2")
	r.CreateRoom("R1", "Lobby", "alice", c1)
	r.JoinRoom("R1", "bob", c2)
	mr := &MessageRouter{Registry: r}

	ds, err := mr.Route("R1", c1, "alice", "hello", json.RawMessage(`"2024-01-01T00:00:00Z"`))
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if len(ds) != 1 || len(ds[0].Targets) != 1 || ds[0].Targets[0] != c2 {
		t.Fatalf("expected delivery to c2 only, got %+v", ds)
	}
	msg := ds[0].Event.Data.(core.ChatMessage)
	if msg.Message != "hello" || msg.Username != "alice" {
		t.Fatalf("unexpected payload %+v", msg)
	}
}

func TestRouteNotMember(t *testing.T) {
	r := NewRegistry()
	c1, outsider := conn("c1"), conn("cx")
	r.CreateRoom("R1", "Lobby", "alice", c1)
	mr := &MessageRouter{Registry: r}

	ds, err := mr.Route("R2", outsider, "eve", "hello", nil)
	if !errors.Is(err, domain.ErrNotMember) {
		t.Fatalf("expected ErrNotMember, got %v", err)
	}
	if len(ds) != 1 || ds[0].Targets[0] != outsider || ds[0].Event.Type != core.KindNotice {
		t.Fatalf("expected a private notice to the sender, got %+v", ds)
	}
	if ds[0].Event.Data != "User eve is no longer in room R2" {
		t.Fatalf("unexpected notice %v", ds[0].Event.Data)
	}
}
