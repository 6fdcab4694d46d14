package bot

import (
	"errors"

	"adrenaline/internal/app"
	"adrenaline/internal/domain"
)

var (
	ErrNotAnAsk    = errors.New("event is not a question")
	ErrNoOptions   = errors.New("question has no options")
	ErrCannotPay   = errors.New("price cannot be covered")
	ErrUnknownSeat = errors.New("bot is not seated on this board")
)

// Brain is the interface that all bot strategies must implement. It answers
// the ask ev addressed to self with a legal message.
type Brain interface {
	Answer(b *domain.GameBoard, self *domain.Player, ev app.Event) (app.Message, error)
}
