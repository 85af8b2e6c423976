package orch

import "github.com/dkeye/SwiftChat/internal/core"

// Event names used by the first generation of clients.
const (
	legacyJoinRoom    core.EventKind = "joinRoom"
	legacySendMessage core.EventKind = "send_message"
	legacyExitRoom    core.EventKind = "exitRoom"
)

func dispatchTable() map[core.EventKind]handlerFunc {
	return map[core.EventKind]handlerFunc{
		core.KindCreateRoom:  (*Orchestrator).createRoom,
		core.KindJoinRoom:    (*Orchestrator).joinRoom,
		core.KindSendMessage: (*Orchestrator).sendMessage,
		core.KindExitRoom:    (*Orchestrator).exitRoom,
		core.KindDisconnect:  (*Orchestrator).disconnect,

		legacyJoinRoom:    (*Orchestrator).joinRoom,
		legacySendMessage: (*Orchestrator).sendMessage,
		legacyExitRoom:    (*Orchestrator).exitRoom,
	}
}

// Handles reports whether kind has a dispatch entry.
func (o *Orchestrator) Handles(kind core.EventKind) bool {
	_, ok := o.handlers[kind]
	return ok
}
