package entity

const (
	CodeValidMove   = 100
	CodeDraw        = -100
	CodeInvalidMove = -1

	drawText        = "Game Over. It was a DRAW!"
	invalidMoveText = "ERROR: It is not your turn or the space you have chosen is full."
)

// Message is the reply to a move submission.
type Message struct {
	MoveValidity bool   `json:"moveValidity"`
	Code         int    `json:"code"`
	Message      string `json:"message"`
}

func NewMessage(outcome MoveOutcome) Message {
	switch outcome {
	case ValidMoveContinue, ValidMoveGameWon:
		return Message{MoveValidity: true, Code: CodeValidMove, Message: ""}
	case ValidMoveGameDrawn:
		return Message{MoveValidity: false, Code: CodeDraw, Message: drawText}
	default:
		return InvalidMoveMessage()
	}
}

func InvalidMoveMessage() Message {
	return Message{MoveValidity: false, Code: CodeInvalidMove, Message: invalidMoveText}
}
