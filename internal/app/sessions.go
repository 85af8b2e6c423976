package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/SwiftChat/internal/core"
	"github.com/dkeye/SwiftChat/internal/domain"
)

type sessionEntry struct {
	Conn        core.Connection
	ClientToken string
	Cancel      context.CancelFunc
}

// Sessions tracks every live connection of the process, independent of rooms.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[domain.ConnectionID]*sessionEntry
}

func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[domain.ConnectionID]*sessionEntry)}
}

func (s *Sessions) Bind(conn core.Connection, clientToken string, cancel context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[conn.ID()] = &sessionEntry{Conn: conn, ClientToken: clientToken, Cancel: cancel}
	log.Info().Str("module", "app.sessions").Str("conn", string(conn.ID())).Str("client", clientToken).Msg("bound session")
}

func (s *Sessions) Unbind(id domain.ConnectionID) {
	s.mu.Lock()
	e, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if ok && e.Cancel != nil {
		e.Cancel()
	}
	log.Info().Str("module", "app.sessions").Str("conn", string(id)).Msg("unbind session")
}

func (s *Sessions) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// CloseAll cancels and closes every live connection. Used on shutdown; the
// read pumps report the disconnects as usual.
func (s *Sessions) CloseAll() int {
	s.mu.RLock()
	entries := make([]*sessionEntry, 0, len(s.sessions))
	for _, e := range s.sessions {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	for _, e := range entries {
		if e.Cancel != nil {
			e.Cancel()
		}
		e.Conn.Close()
	}
	log.Info().Str("module", "app.sessions").Int("closed", len(entries)).Msg("closed all sessions")
	return len(entries)
}
