package core

import (
	"strings"
	"testing"

	"github.com/dkeye/SwiftChat/internal/domain"
)

func TestEncodeUserJoined(t *testing.T) {
	ev := Event{
		Type: KindUserJoined,
		Data: UserJoined{
			Username: "bob",
			RoomID:   "R1",
			RoomName: "Lobby",
			Members: []domain.Member{
				domain.NewMember("alice", "c1"),
				domain.NewMember("bob", "c2"),
			},
		},
	}
	f, err := Encode(ev)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `{"type":"user-joined","data":{"username":"bob","roomId":"R1","roomName":"Lobby","members":[{"username":"alice","connectionId":"c1"},{"username":"bob","connectionId":"c2"}]}}`
	if string(f) != want {
		t.Fatalf("got %s\nwant %s", f, want)
	}
}

func TestEncodeNoticeAndAck(t *testing.T) {
	f, err := Encode(Notice("Room R9 does not exist"))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(f) != `{"type":"message","data":"Room R9 does not exist"}` {
		t.Fatalf("unexpected notice frame %s", f)
	}

	f, err = Encode(Event{Type: KindAck, Ack: "7", Data: AckResult{Success: true}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(string(f), `"ack":"7"`) || !strings.Contains(string(f), `"success":true`) {
		t.Fatalf("unexpected ack frame %s", f)
	}
}
