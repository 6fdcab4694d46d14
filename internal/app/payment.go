package app

import (
	"fmt"

	"adrenaline/internal/domain"
)

// payment is the interrupt raised when an answer costs ammo. The answer is
// saved and dispatched again once paid.
type payment struct {
	saved  *Message
	ask    *pendingAsk
	target int
	price  domain.Price
	paid   bool
}

// take consumes a completed payment and returns the index it was for.
func (p *payment) take() int {
	target := p.target
	*p = payment{}
	return target
}

// requestPayment saves m and either pays price from ammo right away or asks
// how to pay when a powerup could cover part of it.
func (e *Engine) requestPayment(p *domain.Player, m Message, ask *pendingAsk, price domain.Price, target int) error {
	if e.payment.saved != nil {
		domain.Invariantf("%s: payment requested while another is pending", p.Nickname)
	}
	e.payment = payment{saved: &m, ask: ask, target: target, price: append(domain.Price(nil), price...)}
	if !p.Board.CanUsePowerupToPay(price) {
		if err := e.board.Pay(p, price, nil); err != nil {
			domain.Invariantf("%s offered %s without affording it: %v", p.Nickname, price, err)
		}
		return e.resume(p)
	}

	names := make([]string, len(p.Board.Powerups))
	for i, pu := range p.Board.Powerups {
		names[i] = pu.String()
	}
	e.ask(p, EventAskToPay, AskPayload{
		Question:          domain.NewStringQuestion("Which powerups do you want to pay with?", names),
		Price:             e.payment.price,
		CanAffordWithAmmo: p.Board.Ammo.CanAfford(price),
	}, []MessageKind{MsgPayment}, nil)
	return nil
}

// resolvePayment pays the pending price with the chosen powerups and ammo
// for the rest, then resumes the saved answer.
func (e *Engine) resolvePayment(p *domain.Player, m Message) error {
	if e.payment.saved == nil {
		domain.Invariantf("%s: payment answer with nothing to pay", p.Nickname)
	}
	if !m.Price.Equal(e.payment.price) {
		return invalid(m, fmt.Errorf("price %s, expected %s", m.Price, e.payment.price))
	}
	if err := e.board.Pay(p, e.payment.price, m.Powerups); err != nil {
		return invalid(m, err)
	}
	return e.resume(p)
}

func (e *Engine) resume(p *domain.Player) error {
	e.payment.paid = true
	saved, ask := *e.payment.saved, e.payment.ask
	e.logger.Debug("Engine: %s paid %s, resuming %s", p.Nickname, e.payment.price, saved.Kind)
	if err := e.dispatch(p, saved, ask); err != nil {
		domain.Invariantf("%s: resuming paid %s: %v", p.Nickname, saved.Kind, err)
	}
	return nil
}
