package orch

import (
	"errors"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/SwiftChat/internal/core"
	"github.com/dkeye/SwiftChat/internal/domain"
)

type sendMessagePayload struct {
	RoomID    string          `json:"roomId" validate:"required,max=128"`
	Username  string          `json:"username" validate:"max=64"`
	Message   string          `json:"message"`
	Timestamp json.RawMessage `json:"timestamp"`
}

func (o *Orchestrator) sendMessage(conn core.Connection, in core.Inbound) []core.Delivery {
	var p sendMessagePayload
	if err := o.decode(in, &p); err != nil {
		return o.invalid(conn, in, err)
	}
	out, err := o.Router.Route(domain.RoomID(p.RoomID), conn, p.Username, p.Message, p.Timestamp)
	if errors.Is(err, domain.ErrNotMember) {
		log.Debug().Str("module", "orch").Str("conn", string(conn.ID())).Str("room", p.RoomID).Msg("send: not a member")
		if o.Metrics != nil {
			o.Metrics.Rejected()
		}
	}
	return out
}
