package bot

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/heroiclabs/nakama-common/runtime"

	"adrenaline/internal/app"
)

// maxRetries bounds the fallback answers tried after an invalid choice.
const maxRetries = 5

var ErrStalled = errors.New("no player has a pending question")

// Table plays a whole match with bots in every seat.
type Table struct {
	Engine *app.Engine
	// Agents by nickname.
	Agents map[string]*Agent
	// OnEvent, when set, sees every event the engine emits.
	OnEvent func(app.Event)

	logger   runtime.Logger
	fallback Brain
}

func NewTable(logger runtime.Logger, engine *app.Engine, agents []*Agent, rng *rand.Rand) *Table {
	byName := make(map[string]*Agent, len(agents))
	for _, a := range agents {
		byName[a.Name] = a
	}
	fallback, _ := NewBrain(LevelRandom, rng)
	return &Table{Engine: engine, Agents: byName, logger: logger, fallback: fallback}
}

// Run starts the match and answers questions until it ends or maxSteps
// answers were sent. It returns the number of answers sent.
func (t *Table) Run(maxSteps int) (int, error) {
	events, err := t.Engine.Start()
	if err != nil {
		return 0, err
	}
	t.notify(events)

	steps := 0
	for !t.Engine.Ended() {
		if steps >= maxSteps {
			return steps, fmt.Errorf("match still running after %d answers", steps)
		}
		ev, agent, ok := t.nextAsk()
		if !ok {
			return steps, ErrStalled
		}
		if err := t.answer(agent, ev); err != nil {
			return steps, err
		}
		steps++
	}
	return steps, nil
}

func (t *Table) nextAsk() (app.Event, *Agent, bool) {
	for _, p := range t.Engine.Board().Players() {
		ev, ok := t.Engine.Pending(p.Nickname)
		if !ok {
			continue
		}
		agent, ok := t.Agents[p.Nickname]
		if !ok {
			return app.Event{}, nil, false
		}
		return ev, agent, true
	}
	return app.Event{}, nil, false
}

// answer sends the agent's answer and forwards the resulting events.
func (t *Table) answer(agent *Agent, ev app.Event) error {
	events, err := Respond(t.logger, t.Engine, agent, t.fallback, ev)
	if err != nil {
		return err
	}
	t.notify(events)
	return nil
}

// Respond sends agent's answer to ev, falling back to random legal answers
// while the engine rejects it with an invalid choice.
func Respond(logger runtime.Logger, engine *app.Engine, agent *Agent, fallback Brain, ev app.Event) ([]app.Event, error) {
	m, err := agent.Act(engine.Board(), ev)
	for attempt := 0; ; attempt++ {
		if err == nil {
			var events []app.Event
			events, err = engine.ProcessEvent(m)
			if err == nil {
				return events, nil
			}
			if !errors.Is(err, app.ErrInvalidChoice) {
				return events, fmt.Errorf("%s answering %s: %w", agent.Name, ev.Kind, err)
			}
		}
		if attempt == maxRetries {
			return nil, fmt.Errorf("%s could not answer %s: %w", agent.Name, ev.Kind, err)
		}
		logger.Debug("Bot: %s retrying %s after %v", agent.Name, ev.Kind, err)
		self, _ := engine.Board().Player(agent.Name)
		m, err = fallback.Answer(engine.Board(), self, ev)
	}
}

func (t *Table) notify(events []app.Event) {
	if t.OnEvent == nil {
		return
	}
	for _, ev := range events {
		t.OnEvent(ev)
	}
}
