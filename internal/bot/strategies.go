package bot

import (
	"math/rand"

	"adrenaline/internal/app"
	"adrenaline/internal/domain"
)

// AggressiveBot scores its options with a Tuning: it shoots when a loaded
// weapon has targets, moves where enemies are visible, focuses damaged
// players and always uses reactive powerups.
type AggressiveBot struct {
	Tuning Tuning
	rng    *rand.Rand
}

func (a *AggressiveBot) Answer(b *domain.GameBoard, self *domain.Player, ev app.Event) (app.Message, error) {
	ask, ok := ev.Payload.(app.AskPayload)
	if !ok {
		return app.Message{}, ErrNotAnAsk
	}
	m := app.Message{Player: self.Nickname}
	q := ask.Question
	if q.Len() == 0 && ev.Kind != app.EventAskToPay {
		return m, ErrNoOptions
	}

	switch ev.Kind {
	case app.EventAskAction:
		m.Kind, m.Index = app.MsgAction, a.bestAction(b, self)
	case app.EventAskEnd:
		m.Kind = app.MsgEndTurn
		if ask.CanReload {
			m.Kind, m.Subtype = app.MsgReload, app.SubtypeRequest
		}
	case app.EventAskMove:
		m.Kind, m.Coordinates = app.MsgMove, q.Coordinates[a.bestSquare(b, self, q.Coordinates)]
	case app.EventAskSpawn:
		m.Kind, m.Index = app.MsgSpawn, spawnDiscard(self)
	case app.EventAskSwapWeapon:
		m.Kind, m.Index = app.MsgSwapWeapon, 0
		m.Discard = swapDiscard(self)
	case app.EventAskWeaponChoice, app.EventAskPowerupChoice:
		m.Kind = app.MsgWeapon
		if ev.Kind == app.EventAskPowerupChoice {
			m.Kind = app.MsgPowerup
		}
		if q.Kind == domain.CoordinatesQuestion {
			m.Index = a.bestSquare(b, self, q.Coordinates)
		} else {
			m.Index = a.bestTarget(b, q.Options)
		}
	case app.EventAskToPay:
		return payMessage(self, ask)
	default:
		// first option: the first weapon, the first card, the basic mode
		kind, ok := answerKind[ev.Kind]
		if !ok {
			return m, ErrNotAnAsk
		}
		m.Kind, m.Index = kind, 0
	}
	return m, nil
}

func (a *AggressiveBot) bestAction(b *domain.GameBoard, self *domain.Player) int {
	canShoot := false
	for _, w := range self.Board.Weapons {
		if w.CanBeActivated(b, self) {
			canShoot = true
			break
		}
	}
	best, bestScore := 0, -1.0
	for i, action := range self.Status.Actions() {
		score := a.Tuning.MoveWeight + a.Tuning.MovePerSquare*float64(action.Movement)
		if action.Shoot && canShoot {
			score += a.Tuning.ShootWeight
		}
		if action.Grab {
			score += a.Tuning.GrabWeight
		}
		if action.Reload && len(self.Board.LoadableWeapons()) > 0 {
			score += a.Tuning.ReloadWeight
		}
		// jitter breaks ties between equal actions
		score += a.rng.Float64() * 0.01
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

func (a *AggressiveBot) bestSquare(b *domain.GameBoard, self *domain.Player, squares []domain.Coordinates) int {
	best, bestScore := 0, -1.0
	for i, c := range squares {
		score := a.Tuning.VisibleEnemyWeight * float64(len(b.Map.VisiblePlayersFrom(c, self)))
		score += a.rng.Float64() * 0.01
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

// bestTarget picks the most damaged player among the options. Options
// that are not players (modes, effects, ammo) fall back to the first one.
func (a *AggressiveBot) bestTarget(b *domain.GameBoard, options []string) int {
	best, bestScore := 0, -1.0
	for i, name := range options {
		p, ok := b.Player(name)
		if !ok {
			continue
		}
		score := a.Tuning.DamageFocus * float64(len(p.Board.Damage.Damage))
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

// spawnDiscard keeps the reactive cards and spawns on an ON_TURN one when possible.
func spawnDiscard(self *domain.Player) int {
	for i, pu := range self.Board.Powerups {
		if pu.UseCase() == domain.OnTurn {
			return i
		}
	}
	return 0
}

// swapDiscard drops an unloaded weapon first.
func swapDiscard(self *domain.Player) int {
	for i, w := range self.Board.Weapons {
		if !w.Loaded {
			return i
		}
	}
	return 0
}
