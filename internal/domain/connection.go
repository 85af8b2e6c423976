// Package domain contains entity without logic, just meta-data
package domain

import "github.com/google/uuid"

// ConnectionID addresses one live client channel.
type ConnectionID string

func NewConnectionID() ConnectionID {
	return ConnectionID(uuid.NewString())
}
