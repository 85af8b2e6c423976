package core

import (
	"github.com/goccy/go-json"

	"github.com/dkeye/SwiftChat/internal/domain"
)

type EventKind string

// Inbound kinds.
const (
	KindCreateRoom  EventKind = "create-room"
	KindJoinRoom    EventKind = "join-room"
	KindSendMessage EventKind = "send-message"
	KindExitRoom    EventKind = "exit-room"
	KindDisconnect  EventKind = "disconnect"
	KindPing        EventKind = "ping"
)

// Outbound kinds. "recieve" is spelled the way deployed clients expect it.
const (
	KindUserJoined       EventKind = "user-joined"
	KindUserExited       EventKind = "user-exited"
	KindUserDisconnected EventKind = "user-disconnected"
	KindReceive          EventKind = "recieve"
	KindRoomSnapshot     EventKind = "messages"
	KindNotice           EventKind = "message"
	KindAck              EventKind = "ack"
	KindPong             EventKind = "pong"
)

// Inbound is the client -> server envelope.
type Inbound struct {
	Type EventKind       `json:"type"`
	Ack  string          `json:"ack,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Event is the server -> client envelope.
type Event struct {
	Type EventKind `json:"type"`
	Ack  string    `json:"ack,omitempty"`
	Data any       `json:"data,omitempty"`
}

// Delivery addresses one event to a set of connections.
type Delivery struct {
	Targets []Connection
	Event   Event
}

func Private(to Connection, ev Event) Delivery {
	return Delivery{Targets: []Connection{to}, Event: ev}
}

// Notice builds the generic human-readable status event.
func Notice(text string) Event {
	return Event{Type: KindNotice, Data: text}
}

type UserJoined struct {
	Username string          `json:"username"`
	RoomID   domain.RoomID   `json:"roomId"`
	RoomName domain.RoomName `json:"roomName"`
	Members  []domain.Member `json:"members"`
}

type UserExited struct {
	Username string          `json:"username"`
	RoomID   domain.RoomID   `json:"roomId"`
	RoomName domain.RoomName `json:"roomName"`
	Members  []domain.Member `json:"members"`
}

type UserDisconnected struct {
	ConnectionID domain.ConnectionID `json:"connectionId"`
	Members      []domain.Member     `json:"members"`
}

type RoomSnapshot struct {
	RoomName domain.RoomName `json:"roomName"`
	Members  []domain.Member `json:"members"`
}

// ChatMessage is relayed verbatim; the timestamp is whatever the client sent.
type ChatMessage struct {
	Message   string          `json:"message"`
	Timestamp json.RawMessage `json:"timestamp,omitempty"`
	Username  string          `json:"username"`
}

type AckResult struct {
	Success bool `json:"success"`
}

// Encode renders an event for the wire.
func Encode(ev Event) (Frame, error) {
	return json.Marshal(ev)
}
