package app

import (
	"fmt"

	"github.com/dkeye/SwiftChat/internal/core"
	"github.com/dkeye/SwiftChat/internal/domain"
)

// Presence turns registry results into membership-change deliveries.
// It keeps no state of its own.
type Presence struct{}

// Joined addresses user-joined to the whole room, the joiner included, and a
// private room snapshot to the joiner.
func (Presence) Joined(snap RoomSnapshot, username string, joiner core.Connection) []core.Delivery {
	return []core.Delivery{
		{
			Targets: snap.Subscribers,
			Event: core.Event{Type: core.KindUserJoined, Data: core.UserJoined{
				Username: username,
				RoomID:   snap.ID,
				RoomName: snap.Name,
				Members:  snap.Members,
			}},
		},
		core.Private(joiner, core.Event{Type: core.KindRoomSnapshot, Data: core.RoomSnapshot{
			RoomName: snap.Name,
			Members:  snap.Members,
		}}),
	}
}

// Exited goes to the subscribers left after the leaver was unsubscribed.
func (Presence) Exited(snap RoomSnapshot, username string) []core.Delivery {
	return []core.Delivery{{
		Targets: snap.Subscribers,
		Event: core.Event{Type: core.KindUserExited, Data: core.UserExited{
			Username: username,
			RoomID:   snap.ID,
			RoomName: snap.Name,
			Members:  snap.Members,
		}},
	}}
}

func (Presence) Disconnected(snaps []RoomSnapshot, cid domain.ConnectionID) []core.Delivery {
	out := make([]core.Delivery, 0, len(snaps))
	for _, snap := range snaps {
		out = append(out, core.Delivery{
			Targets: snap.Subscribers,
			Event: core.Event{Type: core.KindUserDisconnected, Data: core.UserDisconnected{
				ConnectionID: cid,
				Members:      snap.Members,
			}},
		})
	}
	return out
}

func (Presence) RoomNotFound(id domain.RoomID, requester core.Connection) []core.Delivery {
	return []core.Delivery{core.Private(requester, core.Notice(fmt.Sprintf("Room %s does not exist", id)))}
}
