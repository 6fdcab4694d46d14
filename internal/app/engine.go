package app

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/heroiclabs/nakama-common/runtime"

	"adrenaline/internal/domain"
)

var (
	ErrInvalidChoice     = errors.New("invalid choice")
	ErrUnexpectedMessage = errors.New("unexpected message")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrMatchAborted      = errors.New("match aborted")
	ErrMatchEnded        = errors.New("match ended")
	ErrMatchNotStarted   = errors.New("match not started")
	ErrUnknownPlayer     = errors.New("player not found")
	ErrNoPendingAsk      = errors.New("no pending question")
)

// InvalidChoiceError is a protocol violation: the answer is not among the
// offered options. The question stays pending.
type InvalidChoiceError struct {
	Player string
	Kind   MessageKind
	Err    error
}

func (e *InvalidChoiceError) Error() string {
	return fmt.Sprintf("invalid %s from %s: %v", e.Kind, e.Player, e.Err)
}

func (e *InvalidChoiceError) Unwrap() []error {
	return []error{ErrInvalidChoice, e.Err}
}

func invalid(m Message, err error) error {
	return &InvalidChoiceError{Player: m.Player, Kind: m.Kind, Err: err}
}

// Config is the setup of one match. Players are nicknames in seat order.
type Config struct {
	Players []string `validate:"min=3,max=5,unique,dive,required"`
	Skulls  int      `validate:"min=5,max=8"`
	// Frenzy enables final frenzy once the skulls run out; otherwise the
	// match ends right away.
	Frenzy bool
}

var validate = validator.New()

// pendingAsk is the question a player must answer next.
type pendingAsk struct {
	event    Event
	question domain.QuestionContainer
	accepts  []MessageKind
	// indexes maps option indexes to inventory or square indexes.
	indexes []int
	useCase domain.UseCase
}

func (a *pendingAsk) option(i int) (int, bool) {
	if i < 0 || i >= len(a.indexes) {
		return 0, false
	}
	return a.indexes[i], true
}

func (a *pendingAsk) accept(kind MessageKind) bool {
	for _, k := range a.accepts {
		if k == kind {
			return true
		}
	}
	return false
}

// Engine resolves the turns of one match. It is driven by a single match
// loop and is not safe for concurrent use.
type Engine struct {
	logger runtime.Logger
	board  *domain.GameBoard
	frenzy bool

	pending map[string]*pendingAsk
	payment payment
	shot    *shot
	out     []Event

	started     bool
	ended       bool
	aborted     bool
	leaderboard []domain.LeaderboardSlot
}

// NewEngine validates cfg and deals a new board. A nil rng is time-seeded.
func NewEngine(logger runtime.Logger, cfg Config, rng *rand.Rand) (*Engine, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid match config: %w", err)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	board, err := domain.NewGameBoard(domain.SmallMap, cfg.Players, cfg.Skulls, rng)
	if err != nil {
		return nil, err
	}
	return &Engine{
		logger:  logger,
		board:   board,
		frenzy:  cfg.Frenzy,
		pending: make(map[string]*pendingAsk),
	}, nil
}

// Board exposes the game state for read-only use.
func (e *Engine) Board() *domain.GameBoard { return e.board }

func (e *Engine) Ended() bool   { return e.ended }
func (e *Engine) Aborted() bool { return e.aborted }

// Leaderboard is the final ranking, set once the match ended.
func (e *Engine) Leaderboard() []domain.LeaderboardSlot { return e.leaderboard }

// Pending returns the ask awaiting an answer from player.
func (e *Engine) Pending(player string) (Event, bool) {
	a, ok := e.pending[player]
	if !ok {
		return Event{}, false
	}
	return a.event, true
}

// Start opens the match and asks the first player to spawn.
func (e *Engine) Start() ([]Event, error) {
	return e.run(func() error {
		if e.started {
			return nil
		}
		e.started = true
		e.emit(Event{Kind: EventMatchStarted, Payload: MatchStartedPayload{
			Players: e.board.Queue(),
			Skulls:  e.board.RemainingSkulls(),
			Frenzy:  e.frenzy,
		}})
		e.logger.Info("Engine: match started with %v", e.board.Queue())
		e.startTurn(e.board.CurrentPlayer())
		e.emitSnapshot()
		return nil
	})
}

// ProcessEvent applies one player message. An *InvalidChoiceError leaves
// the question pending; Reask re-emits it.
func (e *Engine) ProcessEvent(m Message) ([]Event, error) {
	return e.run(func() error {
		if e.ended {
			return ErrMatchEnded
		}
		if !e.started {
			return ErrMatchNotStarted
		}
		p, ok := e.board.Player(m.Player)
		if !ok {
			return ErrUnknownPlayer
		}
		ask, ok := e.pending[m.Player]
		if !ok {
			if p != e.board.CurrentPlayer() {
				return ErrNotYourTurn
			}
			return ErrUnexpectedMessage
		}
		if !ask.accept(m.Kind) {
			return fmt.Errorf("%w: %s while waiting on %s", ErrUnexpectedMessage, m.Kind, ask.event.Kind)
		}

		e.logger.Debug("Engine: %s answered %s with %s", m.Player, ask.event.Kind, m.Kind)
		delete(e.pending, m.Player)
		if err := e.dispatch(p, m, ask); err != nil {
			e.pending[m.Player] = ask
			return err
		}
		if !e.ended {
			e.emitSnapshot()
		}
		return nil
	})
}

// Reask re-emits the question pending for player.
func (e *Engine) Reask(player string) ([]Event, error) {
	if e.aborted {
		return nil, ErrMatchAborted
	}
	a, ok := e.pending[player]
	if !ok {
		return nil, ErrNoPendingAsk
	}
	return []Event{a.event}, nil
}

// Disconnect marks player as gone. Their in-flight action is cancelled and,
// on their turn, the turn ends. Below the minimum player count the match ends.
func (e *Engine) Disconnect(player string) ([]Event, error) {
	return e.run(func() error {
		p, ok := e.board.Player(player)
		if !ok {
			return ErrUnknownPlayer
		}
		if !p.Connected {
			return nil
		}
		p.Connected = false
		e.emit(Event{Kind: EventPlayerDisconnected, Payload: PlayerConnectionPayload{Player: player}})
		e.logger.Info("Engine: %s disconnected", player)
		if e.ended || !e.started {
			return nil
		}

		ask, asked := e.pending[player]
		if asked && ask.event.Kind == EventAskSpawn {
			e.board.ReturnSpawnDraw(p)
		}
		delete(e.pending, player)
		if e.board.ConnectedPlayers() < domain.MinPlayers {
			e.cancelTurn(e.board.CurrentPlayer())
			e.endMatch("not enough connected players")
			return nil
		}

		switch {
		case p == e.board.CurrentPlayer():
			e.cancelTurn(p)
			e.endTurn(p)
		case asked && e.shot != nil:
			// reacting to a shot
			e.cancelPowerup(p)
			e.nextReaction()
		}
		e.emitSnapshot()
		return nil
	})
}

// Reconnect restores player, who rejoins the rotation from their next turn.
func (e *Engine) Reconnect(player string) ([]Event, error) {
	return e.run(func() error {
		p, ok := e.board.Player(player)
		if !ok {
			return ErrUnknownPlayer
		}
		if p.Connected {
			return nil
		}
		p.Connected = true
		e.logger.Info("Engine: %s reconnected", player)
		e.emit(Event{Kind: EventPlayerReconnected, Payload: PlayerConnectionPayload{Player: player}})
		e.emit(Event{Kind: EventBoardSnapshot, Payload: Snapshot(e.board), Recipients: []string{player}})
		return nil
	})
}

// run executes fn and collects the events it emitted. An invariant
// violation raised inside fn aborts the match.
func (e *Engine) run(fn func() error) (events []Event, err error) {
	if e.aborted {
		return nil, ErrMatchAborted
	}
	e.out = nil
	defer e.abortOnInvariant(&events, &err)
	defer domain.RecoverInvariant(&err)
	if err = fn(); err != nil {
		return nil, err
	}
	events, e.out = e.out, nil
	return events, nil
}

func (e *Engine) abortOnInvariant(events *[]Event, err *error) {
	var ie *domain.InvariantError
	if !errors.As(*err, &ie) {
		return
	}
	e.aborted = true
	e.pending = make(map[string]*pendingAsk)
	e.out = nil
	e.logger.Error("Engine: aborting match: %v", ie)
	*events = []Event{{Kind: EventMatchAborted, Payload: MatchAbortedPayload{Reason: ie.Msg}}}
	*err = fmt.Errorf("%w: %v", ErrMatchAborted, ie)
}

func (e *Engine) emit(ev Event) {
	e.out = append(e.out, ev)
}

func (e *Engine) emitSnapshot() {
	e.emit(Event{Kind: EventBoardSnapshot, Payload: Snapshot(e.board)})
}

func (e *Engine) ask(p *domain.Player, kind EventKind, payload AskPayload, accepts []MessageKind, indexes []int) *pendingAsk {
	payload.QuestionID = uuid.NewString()
	payload.Player = p.Nickname
	a := &pendingAsk{
		event:    Event{Kind: kind, Payload: payload, Recipients: []string{p.Nickname}},
		question: payload.Question,
		accepts:  accepts,
		indexes:  indexes,
	}
	e.pending[p.Nickname] = a
	e.emit(a.event)
	return a
}

func (e *Engine) dispatch(p *domain.Player, m Message, ask *pendingAsk) error {
	switch m.Kind {
	case MsgSpawn:
		return e.handleSpawn(p, m)
	case MsgAction:
		return e.handleAction(p, m)
	case MsgMove:
		return e.handleMove(p, m, ask)
	case MsgGrabWeapon:
		return e.handleGrabWeapon(p, m, ask)
	case MsgSwapWeapon:
		return e.handleSwapWeapon(p, m, ask)
	case MsgReload:
		return e.handleReload(p, m, ask)
	case MsgWeapon:
		return e.handleWeapon(p, m, ask)
	case MsgActivatePowerup:
		return e.handleActivatePowerup(p, m)
	case MsgPowerup:
		return e.handlePowerup(p, m, ask)
	case MsgPayment:
		return e.resolvePayment(p, m)
	case MsgEndTurn:
		e.endTurn(p)
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnexpectedMessage, m.Kind)
	}
}
