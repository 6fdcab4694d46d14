package bot

import (
	"math/rand"

	"adrenaline/internal/app"
	"adrenaline/internal/domain"
)

// Agent represents an autonomous bot player.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// NewAgent seats a bot playing under name with the brain of level.
func NewAgent(id, name string, level BotLevel, rng *rand.Rand) (*Agent, error) {
	brain, err := NewBrain(level, rng)
	if err != nil {
		return nil, err
	}
	return &Agent{ID: id, Name: name, Strategy: brain}, nil
}

// Act answers the ask ev addressed to the agent.
func (a *Agent) Act(b *domain.GameBoard, ev app.Event) (app.Message, error) {
	self, ok := b.Player(a.Name)
	if !ok {
		return app.Message{}, ErrUnknownSeat
	}
	if !ev.Kind.IsAsk() {
		return app.Message{}, ErrNotAnAsk
	}
	return a.Strategy.Answer(b, self, ev)
}
