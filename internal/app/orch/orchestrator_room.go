package orch

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/SwiftChat/internal/core"
	"github.com/dkeye/SwiftChat/internal/domain"
)

type createRoomPayload struct {
	Username string `json:"username" validate:"required,max=64"`
	RoomName string `json:"roomName" validate:"max=128"`
	RoomID   string `json:"roomId" validate:"required,max=128"`
}

// Username is optional on join and exit, as it is on send-message; only the
// creator has to name itself.
type roomPayload struct {
	Username string `json:"username" validate:"max=64"`
	RoomID   string `json:"roomId" validate:"required,max=128"`
}

func (o *Orchestrator) createRoom(conn core.Connection, in core.Inbound) []core.Delivery {
	var p createRoomPayload
	if err := o.decode(in, &p); err != nil {
		out := o.invalid(conn, in, err)
		return append(out, ack(conn, in, false)...)
	}
	o.Registry.CreateRoom(domain.RoomID(p.RoomID), domain.RoomName(p.RoomName), p.Username, conn)
	return ack(conn, in, true)
}

func (o *Orchestrator) joinRoom(conn core.Connection, in core.Inbound) []core.Delivery {
	var p roomPayload
	if err := o.decode(in, &p); err != nil {
		return o.invalid(conn, in, err)
	}
	snap, err := o.Registry.JoinRoom(domain.RoomID(p.RoomID), p.Username, conn)
	if errors.Is(err, domain.ErrRoomNotFound) {
		log.Info().Str("module", "orch").Str("conn", string(conn.ID())).Str("room", p.RoomID).Msg("join: room not found")
		return o.Presence.RoomNotFound(domain.RoomID(p.RoomID), conn)
	}
	return o.Presence.Joined(snap, p.Username, conn)
}

func (o *Orchestrator) exitRoom(conn core.Connection, in core.Inbound) []core.Delivery {
	var p roomPayload
	if err := o.decode(in, &p); err != nil {
		return o.invalid(conn, in, err)
	}
	snap, err := o.Registry.LeaveRoom(domain.RoomID(p.RoomID), p.Username, conn)
	if errors.Is(err, domain.ErrRoomNotFound) {
		log.Info().Str("module", "orch").Str("conn", string(conn.ID())).Str("room", p.RoomID).Msg("exit: room not found")
		return o.Presence.RoomNotFound(domain.RoomID(p.RoomID), conn)
	}
	return o.Presence.Exited(snap, p.Username)
}

func (o *Orchestrator) disconnect(conn core.Connection, _ core.Inbound) []core.Delivery {
	snaps := o.Registry.RemoveConnectionEverywhere(conn.ID())
	return o.Presence.Disconnected(snaps, conn.ID())
}

// ack answers create-room only when the client asked for an acknowledgment.
func ack(conn core.Connection, in core.Inbound, ok bool) []core.Delivery {
	if in.Ack == "" {
		return nil
	}
	return []core.Delivery{core.Private(conn, core.Event{
		Type: core.KindAck,
		Ack:  in.Ack,
		Data: core.AckResult{Success: ok},
	})}
}
