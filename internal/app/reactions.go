package app

import (
	"adrenaline/internal/domain"
)

// shot is the aftermath of a concluded weapon: the shooter's ON_SHOOT
// window, then the ON_DAMAGE queue of the players hit.
type shot struct {
	shooter *domain.Player
	hit     []*domain.Player
	queue   []*domain.Player
}

func (e *Engine) onTurnPowerups(p *domain.Player) []int {
	var out []int
	for i, pu := range p.Board.Powerups {
		if pu.UseCase() == domain.OnTurn && pu.CanBeActivated(e.board, p) {
			out = append(out, i)
		}
	}
	return out
}

func (e *Engine) onShootPowerups(p *domain.Player, hit []*domain.Player) []int {
	var out []int
	for i, pu := range p.Board.Powerups {
		if pu.UseCase() != domain.OnShoot {
			continue
		}
		pu.SetHit(hit)
		if pu.CanBeActivated(e.board, p) {
			out = append(out, i)
		}
	}
	return out
}

func (e *Engine) onDamagePowerups(p, shooter *domain.Player) []int {
	var out []int
	for i, pu := range p.Board.Powerups {
		if pu.UseCase() == domain.OnDamage && pu.CanReactTo(e.board, p, shooter) {
			out = append(out, i)
		}
	}
	return out
}

func (e *Engine) askPowerupActivation(p *domain.Player, uc domain.UseCase, cards []int, prompt, decline string) {
	names := make([]string, 0, len(cards)+1)
	for _, i := range cards {
		names = append(names, p.Board.Powerups[i].String())
	}
	names = append(names, decline)
	a := e.ask(p, EventAskPowerupActivation, AskPayload{
		Question: domain.NewStringQuestion(prompt, names),
		UseCase:  uc.String(),
	}, []MessageKind{MsgPowerup}, cards)
	a.useCase = uc
}

// offerOnShoot asks the shooter to use a powerup on the players just hit.
// It is asked again after each use until declined.
func (e *Engine) offerOnShoot() {
	s := e.shot
	cards := e.onShootPowerups(s.shooter, s.hit)
	if len(cards) == 0 {
		e.startReactions()
		return
	}
	e.askPowerupActivation(s.shooter, domain.OnShoot, cards, "Do you want to use a powerup on the players you hit?", "No")
}

// startReactions queues, in hit order, the players holding a card they
// could use against the shooter.
func (e *Engine) startReactions() {
	s := e.shot
	for _, h := range s.hit {
		if h.Connected && len(e.onDamagePowerups(h, s.shooter)) > 0 {
			s.queue = append(s.queue, h)
		}
	}
	e.nextReaction()
}

// nextReaction asks the next queued player, checking again that they can
// still react. With the queue empty the shooter's action resumes.
func (e *Engine) nextReaction() {
	s := e.shot
	for len(s.queue) > 0 {
		h := s.queue[0]
		s.queue = s.queue[1:]
		if !h.Connected {
			continue
		}
		cards := e.onDamagePowerups(h, s.shooter)
		if len(cards) == 0 {
			continue
		}
		e.askPowerupActivation(h, domain.OnDamage, cards, s.shooter.Nickname+" hit you. Do you want to use a powerup?", "No")
		return
	}
	e.shot = nil
	e.advance(s.shooter)
}

func (e *Engine) handleActivatePowerup(p *domain.Player, m Message) error {
	cards := e.onTurnPowerups(p)
	if len(cards) == 0 {
		return invalid(m, domain.ErrNotActivatable)
	}
	e.askPowerupActivation(p, domain.OnTurn, cards, "Which powerup do you want to use?", "Cancel")
	return nil
}

func (e *Engine) handlePowerup(p *domain.Player, m Message, ask *pendingAsk) error {
	if p.IsUsingPowerup() {
		pu := p.CurrentPowerup()
		q, err := pu.Step(e.board, m.Index)
		if err != nil {
			return invalid(m, err)
		}
		e.afterPowerupStep(p, pu, q)
		return nil
	}
	if m.Index == len(ask.indexes) {
		e.continueAfterPowerup(p, ask.useCase, false)
		return nil
	}
	idx, ok := ask.option(m.Index)
	if !ok {
		return invalid(m, domain.ErrInvalidIndex)
	}
	pu := p.Board.Powerups[idx]
	switch ask.useCase {
	case domain.OnShoot:
		pu.SetHit(e.shot.hit)
	case domain.OnDamage:
		if !pu.CanReactTo(e.board, p, e.shot.shooter) {
			return invalid(m, domain.ErrNotActivatable)
		}
	}
	q, err := pu.Begin(e.board, p)
	if err != nil {
		return invalid(m, err)
	}
	p.ActivePowerup = idx
	e.afterPowerupStep(p, pu, q)
	return nil
}

func (e *Engine) afterPowerupStep(p *domain.Player, pu *domain.Powerup, q *domain.QuestionContainer) {
	if pu.IsActivationConcluded() {
		e.powerupEnd(p, pu)
		return
	}
	if q == nil {
		domain.Invariantf("%s: %s neither concluded nor asked", p.Nickname, pu.Name())
	}
	a := e.ask(p, EventAskPowerupChoice, AskPayload{Question: *q, UseCase: pu.UseCase().String()}, []MessageKind{MsgPowerup}, nil)
	a.useCase = pu.UseCase()
}

// powerupEnd discards a used card and hands control back to whoever was
// waiting on it.
func (e *Engine) powerupEnd(p *domain.Player, pu *domain.Powerup) {
	uc := pu.UseCase()
	e.logger.Info("Engine: %s used %s", p.Nickname, pu.Name())
	if _, err := e.board.DiscardPowerup(p, p.ActivePowerup); err != nil {
		domain.Invariantf("%s discarding %s: %v", p.Nickname, pu.Name(), err)
	}
	p.ActivePowerup = -1
	e.continueAfterPowerup(p, uc, true)
}

func (e *Engine) continueAfterPowerup(p *domain.Player, uc domain.UseCase, used bool) {
	switch uc {
	case domain.OnTurn:
		e.askNext(p)
	case domain.OnShoot:
		if used {
			e.offerOnShoot()
		} else {
			e.startReactions()
		}
	case domain.OnDamage:
		e.nextReaction()
	}
}

func (e *Engine) cancelPowerup(p *domain.Player) {
	if !p.IsUsingPowerup() {
		return
	}
	p.CurrentPowerup().Reset()
	p.ActivePowerup = -1
}
