package entity

const (
	PlayerOneID = 1
	PlayerTwoID = 2
)

// Player is immutable once registered.
type Player struct {
	ID   int  `json:"id"`
	Mark Mark `json:"type"`
}

func IsPlayerID(id int) bool {
	return id == PlayerOneID || id == PlayerTwoID
}

func OtherPlayerID(id int) int {
	if id == PlayerOneID {
		return PlayerTwoID
	}
	return PlayerOneID
}
