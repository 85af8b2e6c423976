package app

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/SwiftChat/internal/core"
	"github.com/dkeye/SwiftChat/internal/domain"
)

// MessageRouter fans chat messages out to the other subscribers of a room.
type MessageRouter struct {
	Registry *Registry
}

// Route never addresses the sender. When the sender is not subscribed it
// returns ErrNotMember together with a private notice for the sender only.
func (mr *MessageRouter) Route(
	id domain.RoomID,
	sender core.Connection,
	username, text string,
	timestamp json.RawMessage,
) ([]core.Delivery, error) {
	recipients, err := mr.Registry.Recipients(id, sender.ID())
	if err != nil {
		log.Debug().Str("module", "app.router").Str("room", string(id)).Str("conn", string(sender.ID())).Msg("sender not subscribed")
		notice := core.Notice(fmt.Sprintf("User %s is no longer in room %s", username, id))
		return []core.Delivery{core.Private(sender, notice)}, err
	}
	return []core.Delivery{{
		Targets: recipients,
		Event: core.Event{Type: core.KindReceive, Data: core.ChatMessage{
			Message:   text,
			Timestamp: timestamp,
			Username:  username,
		}},
	}}, nil
}
