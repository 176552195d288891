package entity

type Move struct {
	PlayerID int `json:"playerId"`
	Row      int `json:"row"`
	Col      int `json:"col"`
}

func NewMove(playerID, row, col int) Move {
	return Move{PlayerID: playerID, Row: row, Col: col}
}
