package app

import (
	"github.com/dkeye/SwiftChat/internal/core"
	"github.com/dkeye/SwiftChat/internal/domain"
)

// room is the registry's private record. It is not threadsafe on its own;
// Registry.mu guards every access.
type room struct {
	id      domain.RoomID
	name    domain.RoomName
	seq     uint64
	members []domain.Member
	// subscribers is the broadcast group, keyed by connection id.
	subscribers map[domain.ConnectionID]core.Connection
}

func newRoom(id domain.RoomID, name domain.RoomName, seq uint64) *room {
	return &room{
		id:          id,
		name:        name,
		seq:         seq,
		subscribers: make(map[domain.ConnectionID]core.Connection),
	}
}

func (r *room) subscribe(c core.Connection) { r.subscribers[c.ID()] = c }

func (r *room) unsubscribe(id domain.ConnectionID) bool {
	if _, ok := r.subscribers[id]; !ok {
		return false
	}
	delete(r.subscribers, id)
	return true
}

func (r *room) isSubscribed(id domain.ConnectionID) bool {
	_, ok := r.subscribers[id]
	return ok
}

// removeMembers drops every member for which drop returns true and reports how many went.
func (r *room) removeMembers(drop func(domain.Member) bool) int {
	kept := r.members[:0]
	removed := 0
	for _, m := range r.members {
		if drop(m) {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	// clear the tail so dropped members are not retained by the backing array
	for i := len(kept); i < len(r.members); i++ {
		r.members[i] = domain.Member{}
	}
	r.members = kept
	return removed
}

func (r *room) membersSnapshot() []domain.Member {
	out := make([]domain.Member, len(r.members))
	copy(out, r.members)
	return out
}

func (r *room) subscribersSnapshot(except domain.ConnectionID) []core.Connection {
	out := make([]core.Connection, 0, len(r.subscribers))
	for id, c := range r.subscribers {
		if id == except {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (r *room) snapshot() RoomSnapshot {
	return RoomSnapshot{
		ID:          r.id,
		Name:        r.name,
		Members:     r.membersSnapshot(),
		Subscribers: r.subscribersSnapshot(""),
	}
}
