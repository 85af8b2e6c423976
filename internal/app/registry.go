package app

import (
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/SwiftChat/internal/core"
	"github.com/dkeye/SwiftChat/internal/domain"
)

// RoomSnapshot is the state of a room right after a registry operation.
// Subscribers are the connections that should hear about it.
type RoomSnapshot struct {
	ID          domain.RoomID
	Name        domain.RoomName
	Members     []domain.Member
	Subscribers []core.Connection
	// Deleted is set when the operation left the room empty and removed it.
	Deleted bool
}

// Registry owns rooms, their members and their broadcast groups.
// Every method is one atomic unit of work under mu.
type Registry struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]*room
	seq   uint64
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[domain.RoomID]*room)}
}

// CreateRoom registers a room with a single founding member. Reusing an id
// overwrites name and members (last writer wins); existing subscriptions stay.
func (r *Registry) CreateRoom(id domain.RoomID, name domain.RoomName, username string, conn core.Connection) RoomSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, exists := r.rooms[id]
	if exists {
		rm.name = name
		log.Warn().Str("module", "app.registry").Str("room", string(id)).Msg("room overwritten by create")
	} else {
		r.seq++
		rm = newRoom(id, name, r.seq)
		r.rooms[id] = rm
	}
	rm.members = []domain.Member{domain.NewMember(username, conn.ID())}
	rm.subscribe(conn)

	log.Info().Str("module", "app.registry").Str("room", string(id)).Str("conn", string(conn.ID())).Str("username", username).Msg("room created")
	return rm.snapshot()
}

func (r *Registry) JoinRoom(id domain.RoomID, username string, conn core.Connection) (RoomSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, ok := r.rooms[id]
	if !ok {
		return RoomSnapshot{ID: id}, domain.ErrRoomNotFound
	}
	rm.members = append(rm.members, domain.NewMember(username, conn.ID()))
	rm.subscribe(conn)

	log.Info().Str("module", "app.registry").Str("room", string(id)).Str("conn", string(conn.ID())).Str("username", username).Int("members", len(rm.members)).Msg("member joined")
	return rm.snapshot(), nil
}

// LeaveRoom removes every member named username and unsubscribes conn.
func (r *Registry) LeaveRoom(id domain.RoomID, username string, conn core.Connection) (RoomSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, ok := r.rooms[id]
	if !ok {
		return RoomSnapshot{ID: id}, domain.ErrRoomNotFound
	}
	rm.unsubscribe(conn.ID())
	removed := rm.removeMembers(func(m domain.Member) bool { return m.Username == username })

	snap := rm.snapshot()
	if len(rm.members) == 0 {
		delete(r.rooms, id)
		snap.Deleted = true
	}
	log.Info().Str("module", "app.registry").Str("room", string(id)).Str("conn", string(conn.ID())).Str("username", username).Int("removed", removed).Bool("deleted", snap.Deleted).Msg("member left")
	return snap, nil
}

// RemoveConnectionEverywhere drops the connection from every room it is a
// member of or subscribed to. One snapshot per affected room.
func (r *Registry) RemoveConnectionEverywhere(cid domain.ConnectionID) []RoomSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []RoomSnapshot
	for _, rm := range r.sortedRooms() {
		unsubscribed := rm.unsubscribe(cid)
		removed := rm.removeMembers(func(m domain.Member) bool { return m.ConnectionID == cid })
		if !unsubscribed && removed == 0 {
			continue
		}
		snap := rm.snapshot()
		if len(rm.members) == 0 {
			delete(r.rooms, rm.id)
			snap.Deleted = true
		}
		out = append(out, snap)
	}
	log.Info().Str("module", "app.registry").Str("conn", string(cid)).Int("rooms", len(out)).Msg("connection removed")
	return out
}

// Recipients returns every subscriber of id except sender. Membership is
// decided by subscription, not by username.
func (r *Registry) Recipients(id domain.RoomID, sender domain.ConnectionID) ([]core.Connection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rm, ok := r.rooms[id]
	if !ok || !rm.isSubscribed(sender) {
		return nil, domain.ErrNotMember
	}
	return rm.subscribersSnapshot(sender), nil
}

// ListRooms returns rooms in creation order.
func (r *Registry) ListRooms() []domain.RoomInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms := r.sortedRooms()
	out := make([]domain.RoomInfo, 0, len(rooms))
	for _, rm := range rooms {
		out = append(out, domain.RoomInfo{ID: rm.id, Name: rm.name})
	}
	return out
}

func (r *Registry) ListMembers(id domain.RoomID) []domain.Member {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rm, ok := r.rooms[id]
	if !ok {
		return []domain.Member{}
	}
	return rm.membersSnapshot()
}

func (r *Registry) RoomCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// sortedRooms must be called with mu held.
func (r *Registry) sortedRooms() []*room {
	out := make([]*room, 0, len(r.rooms))
	for _, rm := range r.rooms {
		out = append(out, rm)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}
