package domain

type (
	RoomName string
	RoomID   string
)

// RoomInfo is the public projection of a room used by listings.
type RoomInfo struct {
	ID   RoomID   `json:"roomId"`
	Name RoomName `json:"roomName"`
}
