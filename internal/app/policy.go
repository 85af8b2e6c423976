package app

import (
	"errors"
	"fmt"

	"github.com/dkeye/SwiftChat/internal/core"
)

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	DropFrame
	KickMember
)

// Policy decides what happens to a recipient that could not take a frame.
type Policy interface {
	OnBackPressure(conn core.Connection, err error) BackpressureAction
}

// DropPolicy loses the frame and keeps the connection.
type DropPolicy struct{}

func (DropPolicy) OnBackPressure(core.Connection, error) BackpressureAction { return DropFrame }

// KickPolicy closes connections whose buffer is full; the transport's
// disconnect hook then cleans up their rooms.
type KickPolicy struct{}

func (KickPolicy) OnBackPressure(_ core.Connection, err error) BackpressureAction {
	if errors.Is(err, core.ErrBackpressure) {
		return KickMember
	}
	return DropFrame
}

func PolicyByName(name string) (Policy, error) {
	switch name {
	case "", "drop":
		return DropPolicy{}, nil
	case "kick":
		return KickPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown backpressure policy %q", name)
	}
}
