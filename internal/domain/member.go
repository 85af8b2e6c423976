package domain

// Member represents one participant's presence in a room.
// No transport or lifecycle logic here.
type Member struct {
	Username     string       `json:"username"`
	ConnectionID ConnectionID `json:"connectionId"`
}

// NewMember avoids raw literals in adapters and keeps construction obvious.
func NewMember(username string, id ConnectionID) Member {
	return Member{Username: username, ConnectionID: id}
}
