package orch

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dkeye/SwiftChat/internal/app"
	"github.com/dkeye/SwiftChat/internal/core"
	"github.com/dkeye/SwiftChat/internal/metrics"
)

func TestJoinAndExitWithoutUsername(t *testing.T) {
	o := newTestOrchestrator()
	c1, c2 := newFakeConn("c1"), newFakeConn("c2")
	o.Handle(c1, inbound(t, core.KindCreateRoom, "", map[string]string{
		"username": "alice", "roomName": "Lobby", "roomId": "R1",
	}))

	o.Handle(c2, inbound(t, core.KindJoinRoom, "", map[string]string{"roomId": "R1"}))
	frames := c2.take()
	if len(frames) != 2 || frames[0].Type != core.KindUserJoined || frames[1].Type != core.KindRoomSnapshot {
		t.Fatalf("anonymous join should succeed, got %+v", frames)
	}
	if got := len(o.Registry.ListMembers("R1")); got != 2 {
		t.Fatalf("expected 2 members, got %d", got)
	}
	c1.take()

	o.Handle(c2, inbound(t, core.KindExitRoom, "", map[string]string{"roomId": "R1"}))
	if frames := c2.take(); len(frames) != 0 {
		t.Fatalf("exit should not answer the leaver, got %+v", frames)
	}
	frames = c1.take()
	if len(frames) != 1 || frames[0].Type != core.KindUserExited {
		t.Fatalf("expected user-exited, got %+v", frames)
	}
	if got := len(o.Registry.ListMembers("R1")); got != 1 {
		t.Fatalf("expected only alice left, got %d", got)
	}
}

func TestJoinStillRequiresRoomID(t *testing.T) {
	o := newTestOrchestrator()
	c := newFakeConn("c1")
	o.Handle(c, inbound(t, core.KindJoinRoom, "", map[string]string{"username": "bob"}))

	frames := c.take()
	if len(frames) != 1 || frames[0].Type != core.KindNotice {
		t.Fatalf("expected invalid payload notice, got %+v", frames)
	}
}

func TestNonMemberMessageCountedAsRejected(t *testing.T) {
	m := metrics.New()
	o := New(app.NewRegistry(), nil, m)
	outsider := newFakeConn("cx")

	o.Handle(outsider, inbound(t, core.KindSendMessage, "", map[string]string{
		"roomId": "R1", "username": "mallory", "message": "psst",
	}))
	if frames := outsider.take(); len(frames) != 1 || frames[0].Type != core.KindNotice {
		t.Fatalf("expected private notice, got %+v", frames)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `swiftchat_deliveries_total{result="rejected"} 1`) {
		t.Fatalf("rejected send not counted:\n%s", body)
	}
}
