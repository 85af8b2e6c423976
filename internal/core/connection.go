package core

import (
	"errors"

	"github.com/dkeye/SwiftChat/internal/domain"
)

// Frame is an encoded outbound event, ready for the wire.
type Frame []byte

var (
	ErrBackpressure     = errors.New("backpressure")
	ErrConnectionClosed = errors.New("connection closed")
)

// Connection abstracts one live client channel.
// Owned by the adapter; the adapter must Close() it. The registry only keeps a
// reference for addressing.
type Connection interface {
	ID() domain.ConnectionID
	// TrySend never blocks. It fails with ErrBackpressure when the outbound
	// buffer is full and ErrConnectionClosed after Close.
	TrySend(Frame) error
	Close()
}
