package bot

import (
	"fmt"
	"math/rand"

	"adrenaline/internal/app"
	"adrenaline/internal/domain"
)

// RandomBot picks uniformly among the legal answers. Once the budget is
// spent it reloads half of the time it can.
type RandomBot struct {
	rng *rand.Rand
}

func (r *RandomBot) pick(q domain.QuestionContainer) (int, error) {
	if q.Len() == 0 {
		return 0, ErrNoOptions
	}
	return r.rng.Intn(q.Len()), nil
}

func (r *RandomBot) Answer(b *domain.GameBoard, self *domain.Player, ev app.Event) (app.Message, error) {
	ask, ok := ev.Payload.(app.AskPayload)
	if !ok {
		return app.Message{}, ErrNotAnAsk
	}
	m := app.Message{Player: self.Nickname}

	switch ev.Kind {
	case app.EventAskEnd:
		m.Kind = app.MsgEndTurn
		if ask.CanReload && r.rng.Intn(2) == 0 {
			m.Kind, m.Subtype = app.MsgReload, app.SubtypeRequest
		}
		return m, nil
	case app.EventAskToPay:
		return payMessage(self, ask)
	case app.EventAskMove:
		i, err := r.pick(ask.Question)
		if err != nil {
			return m, err
		}
		m.Kind = app.MsgMove
		m.Coordinates = ask.Question.Coordinates[i]
		return m, nil
	case app.EventAskSwapWeapon:
		if len(self.Board.Weapons) == 0 {
			return m, ErrNoOptions
		}
		m.Discard = r.rng.Intn(len(self.Board.Weapons))
	}

	kind, ok := answerKind[ev.Kind]
	if !ok {
		return m, fmt.Errorf("%w: %s", ErrNotAnAsk, ev.Kind)
	}
	i, err := r.pick(ask.Question)
	if err != nil {
		return m, err
	}
	m.Kind = kind
	m.Index = i
	return m, nil
}

// answerKind is the message that answers an index-choice ask.
var answerKind = map[app.EventKind]app.MessageKind{
	app.EventAskSpawn:             app.MsgSpawn,
	app.EventAskAction:            app.MsgAction,
	app.EventAskGrabWeapon:        app.MsgGrabWeapon,
	app.EventAskSwapWeapon:        app.MsgSwapWeapon,
	app.EventAskReload:            app.MsgReload,
	app.EventAskShoot:             app.MsgWeapon,
	app.EventAskWeaponChoice:      app.MsgWeapon,
	app.EventAskPowerupActivation: app.MsgPowerup,
	app.EventAskPowerupChoice:     app.MsgPowerup,
}

// payMessage covers as much of the price as possible with powerups and
// the rest with ammo. Spending every matching card leaves the smallest
// ammo remainder, so it succeeds whenever any split does.
func payMessage(self *domain.Player, ask app.AskPayload) (app.Message, error) {
	m := app.Message{Player: self.Nickname, Kind: app.MsgPayment, Price: ask.Price}
	if ask.CanAffordWithAmmo {
		return m, nil
	}
	remaining := append(domain.Price(nil), ask.Price...)
	for i, pu := range self.Board.Powerups {
		if remaining.Contains(pu.Ammo) {
			m.Powerups = append(m.Powerups, i)
			remaining = remaining.Without(pu.Ammo)
		}
	}
	if !self.Board.Ammo.CanAfford(remaining) {
		return m, fmt.Errorf("%w: %s with %v", ErrCannotPay, ask.Price, self.Board.Ammo)
	}
	return m, nil
}
