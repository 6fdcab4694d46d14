package app

import (
	"fmt"

	"adrenaline/internal/domain"
)

// startTurn hands the turn to p. Players off the map spawn first.
func (e *Engine) startTurn(p *domain.Player) {
	e.board.SetCorrectDamageStatus(p)
	e.emit(Event{Kind: EventTurnStarted, Payload: TurnStartedPayload{
		Player:    p.Nickname,
		Status:    p.Status.Kind().String(),
		Remaining: p.Status.Remaining(),
	}})
	e.logger.Debug("Engine: turn of %s (%s)", p.Nickname, p.Status.Kind())

	if p.TurnStatus == domain.PreSpawn || p.TurnStatus == domain.Dead {
		e.board.DrawSpawnPowerups(p)
		e.askSpawn(p)
		return
	}
	p.TurnStatus = domain.YourTurn
	e.askNext(p)
}

func (e *Engine) askSpawn(p *domain.Player) {
	names := make([]string, len(p.Board.Powerups))
	for i, pu := range p.Board.Powerups {
		names[i] = pu.String()
	}
	q := domain.NewStringQuestion("Which powerup do you want to discard to spawn?", names)
	e.ask(p, EventAskSpawn, AskPayload{Question: q}, []MessageKind{MsgSpawn}, nil)
}

func (e *Engine) handleSpawn(p *domain.Player, m Message) error {
	pos, err := e.board.Spawn(p, m.Index)
	if err != nil {
		return invalid(m, err)
	}
	e.logger.Debug("Engine: %s spawned at %s", p.Nickname, pos)
	e.askNext(p)
	return nil
}

// askNext asks for the next macro-action while budget remains, else to end the turn.
func (e *Engine) askNext(p *domain.Player) {
	canPowerup := len(e.onTurnPowerups(p)) > 0
	if p.Status.Remaining() > 0 {
		actions := p.Status.Actions()
		names := make([]string, len(actions))
		for i, a := range actions {
			names[i] = a.Name
		}
		e.ask(p, EventAskAction, AskPayload{
			Question:           domain.NewStringQuestion("Which action do you want to take?", names),
			CanActivatePowerup: canPowerup,
			CanReload:          len(p.Board.LoadableWeapons()) > 0,
		}, []MessageKind{MsgAction, MsgActivatePowerup, MsgEndTurn}, nil)
		return
	}
	e.ask(p, EventAskEnd, AskPayload{
		Question:           domain.NewStringQuestion("You have no actions left.", []string{"End turn"}),
		CanActivatePowerup: canPowerup,
		CanReload:          len(p.Board.LoadableWeapons()) > 0,
	}, []MessageKind{MsgEndTurn, MsgActivatePowerup, MsgReload}, nil)
}

func (e *Engine) handleAction(p *domain.Player, m Message) error {
	if err := p.Status.Select(m.Index); err != nil {
		return invalid(m, err)
	}
	action, _ := p.Status.Current()
	e.logger.Debug("Engine: %s chose %s", p.Nickname, action.Name)
	e.advance(p)
	return nil
}

// advance runs the next step of the executing macro-action. Steps with
// nothing to choose are skipped.
func (e *Engine) advance(p *domain.Player) {
	action, ok := p.Status.Current()
	if !ok {
		domain.Invariantf("%s: advancing without a macro-action", p.Nickname)
	}
	switch p.Status.NextStep() {
	case domain.ActionMove:
		coords := e.board.Map.ReachableCoordinates(p, action.Movement)
		q := domain.NewCoordinatesQuestion("Where do you want to move?", coords)
		e.ask(p, EventAskMove, AskPayload{Question: q}, []MessageKind{MsgMove}, nil)
	case domain.ActionGrab:
		e.grab(p)
	case domain.ActionReload:
		e.askReload(p)
	case domain.ActionShoot:
		e.askShoot(p)
	case domain.ActionEnd:
		e.askNext(p)
	}
}

func (e *Engine) handleMove(p *domain.Player, m Message, ask *pendingAsk) error {
	if ask.question.IndexOf(m.Coordinates) == -1 {
		return invalid(m, fmt.Errorf("%s is not reachable", m.Coordinates))
	}
	e.board.Map.MovePlayerTo(p, m.Coordinates)
	e.advance(p)
	return nil
}

func (e *Engine) grab(p *domain.Player) {
	if !e.board.IsOnSpawn(p) {
		e.board.GrabAmmo(p)
		e.advance(p)
		return
	}
	grabbable := e.board.GrabbableWeapons(p)
	if len(grabbable) == 0 {
		e.advance(p)
		return
	}
	weapons := e.board.SquareWeapons(p)
	names := make([]string, len(grabbable))
	for i, idx := range grabbable {
		names[i] = weapons[idx].Name()
	}
	q := domain.NewStringQuestion("Which weapon do you want to grab?", names)
	if len(p.Board.Weapons) >= domain.MaxWeapons {
		e.ask(p, EventAskSwapWeapon, AskPayload{Question: q}, []MessageKind{MsgSwapWeapon}, grabbable)
		return
	}
	e.ask(p, EventAskGrabWeapon, AskPayload{Question: q}, []MessageKind{MsgGrabWeapon}, grabbable)
}

func (e *Engine) handleGrabWeapon(p *domain.Player, m Message, ask *pendingAsk) error {
	if e.payment.paid {
		target := e.payment.take()
		if err := e.board.GrabWeapon(p, target); err != nil {
			domain.Invariantf("%s grabbing paid weapon %d: %v", p.Nickname, target, err)
		}
		e.advance(p)
		return nil
	}
	target, ok := ask.option(m.Index)
	if !ok {
		return invalid(m, domain.ErrInvalidIndex)
	}
	w := e.board.SquareWeapons(p)[target]
	return e.requestPayment(p, m, ask, w.Def.GrabPrice(), target)
}

func (e *Engine) handleSwapWeapon(p *domain.Player, m Message, ask *pendingAsk) error {
	if e.payment.paid {
		target := e.payment.take()
		if err := e.board.SwapWeapon(p, m.Discard, target); err != nil {
			domain.Invariantf("%s swapping paid weapon %d: %v", p.Nickname, target, err)
		}
		e.advance(p)
		return nil
	}
	target, ok := ask.option(m.Index)
	if !ok {
		return invalid(m, domain.ErrInvalidIndex)
	}
	if m.Discard < 0 || m.Discard >= len(p.Board.Weapons) {
		return invalid(m, domain.ErrInvalidIndex)
	}
	w := e.board.SquareWeapons(p)[target]
	return e.requestPayment(p, m, ask, w.Def.GrabPrice(), target)
}

// askReload offers the loadable weapons plus a skip option. With none, the
// flow moves on: the next step inside an action, the end ask otherwise.
func (e *Engine) askReload(p *domain.Player) {
	loadable := p.Board.LoadableWeapons()
	if len(loadable) == 0 {
		e.afterReload(p)
		return
	}
	names := make([]string, 0, len(loadable)+1)
	for _, i := range loadable {
		names = append(names, p.Board.Weapons[i].Name())
	}
	names = append(names, "Skip")
	q := domain.NewStringQuestion("Which weapon do you want to reload?", names)
	e.ask(p, EventAskReload, AskPayload{Question: q}, []MessageKind{MsgReload}, loadable)
}

func (e *Engine) afterReload(p *domain.Player) {
	if _, inAction := p.Status.Current(); inAction {
		e.advance(p)
		return
	}
	e.askNext(p)
}

func (e *Engine) handleReload(p *domain.Player, m Message, ask *pendingAsk) error {
	if e.payment.paid {
		target := e.payment.take()
		if err := e.board.Reload(p, target); err != nil {
			domain.Invariantf("%s reloading paid weapon %d: %v", p.Nickname, target, err)
		}
		if _, inAction := p.Status.Current(); inAction {
			e.advance(p)
		} else {
			e.askReload(p)
		}
		return nil
	}
	if m.Subtype == SubtypeRequest {
		if ask.event.Kind != EventAskEnd {
			return fmt.Errorf("%w: reload request outside end of turn", ErrUnexpectedMessage)
		}
		e.askReload(p)
		return nil
	}
	if ask.event.Kind != EventAskReload {
		return fmt.Errorf("%w: reload answer without a reload question", ErrUnexpectedMessage)
	}
	if m.Index == len(ask.indexes) {
		e.afterReload(p)
		return nil
	}
	target, ok := ask.option(m.Index)
	if !ok {
		return invalid(m, domain.ErrInvalidIndex)
	}
	return e.requestPayment(p, m, ask, p.Board.Weapons[target].Def.ReloadPrice, target)
}

func (e *Engine) askShoot(p *domain.Player) {
	var usable []int
	var names []string
	for i, w := range p.Board.Weapons {
		if w.CanBeActivated(e.board, p) {
			usable = append(usable, i)
			names = append(names, w.Name())
		}
	}
	if len(usable) == 0 {
		e.advance(p)
		return
	}
	q := domain.NewStringQuestion("Which weapon do you want to use?", names)
	e.ask(p, EventAskShoot, AskPayload{Question: q}, []MessageKind{MsgWeapon}, usable)
}

func (e *Engine) handleWeapon(p *domain.Player, m Message, ask *pendingAsk) error {
	if p.IsShooting() {
		w := p.CurrentWeapon()
		q, err := w.Step(e.board, m.Index)
		if err != nil {
			return invalid(m, err)
		}
		e.afterWeaponStep(p, w, q)
		return nil
	}
	idx, ok := ask.option(m.Index)
	if !ok {
		return invalid(m, domain.ErrInvalidIndex)
	}
	w := p.Board.Weapons[idx]
	q, err := w.Begin(e.board, p)
	if err != nil {
		return invalid(m, err)
	}
	p.FiringWeapon = idx
	e.afterWeaponStep(p, w, q)
	return nil
}

func (e *Engine) afterWeaponStep(p *domain.Player, w *domain.Weapon, q *domain.QuestionContainer) {
	if w.IsActivationConcluded() {
		e.weaponEnd(p, w)
		return
	}
	if q == nil {
		domain.Invariantf("%s: %s neither concluded nor asked", p.Nickname, w.Name())
	}
	e.ask(p, EventAskWeaponChoice, AskPayload{Question: *q}, []MessageKind{MsgWeapon}, nil)
}

// weaponEnd unloads the weapon and opens the reaction windows for the
// players it damaged.
func (e *Engine) weaponEnd(p *domain.Player, w *domain.Weapon) {
	hit := w.PlayersHit()
	w.Unload()
	w.Reset()
	p.FiringWeapon = -1
	e.logger.Info("Engine: %s fired %s hitting %d players", p.Nickname, w.Name(), len(hit))
	e.shot = &shot{shooter: p, hit: hit}
	e.offerOnShoot()
}

// endTurn scores the turn and hands over to the next connected player.
func (e *Engine) endTurn(p *domain.Player) {
	p.Status.EndAction()
	e.board.RefillSquares()

	before := len(e.board.KillShots)
	for i, victim := range e.board.ScoreDeadPlayers() {
		ks := e.board.KillShots[before+i]
		e.logger.Info("Engine: %s killed %s (overkill %v)", ks.Shooter, victim.Nickname, ks.Overkill)
		e.emit(Event{Kind: EventKillShot, Payload: KillShotPayload{
			Victim:   victim.Nickname,
			Shooter:  ks.Shooter,
			Overkill: ks.Overkill,
		}})
	}

	if e.board.SkullsFinished() && !e.board.IsFrenzyStarted() {
		if !e.frenzy {
			e.endMatch("skulls finished")
			return
		}
		e.board.StartFrenzy()
		e.logger.Info("Engine: final frenzy started")
		e.emit(Event{Kind: EventFrenzyStarted, Payload: FrenzyStartedPayload{TurnsLeft: e.board.TurnsLeftInFrenzy}})
	}

	e.board.NextPlayerTurn()
	if !e.board.CanGameContinue() {
		e.endMatch("final frenzy over")
		return
	}
	e.startTurn(e.board.CurrentPlayer())
}

// cancelTurn drops whatever p was doing and drains the budget.
func (e *Engine) cancelTurn(p *domain.Player) {
	if p.IsShooting() {
		p.CurrentWeapon().Reset()
		p.FiringWeapon = -1
	}
	e.cancelPowerup(p)
	e.payment = payment{}
	if e.shot != nil {
		for _, h := range e.shot.hit {
			delete(e.pending, h.Nickname)
			e.cancelPowerup(h)
		}
		e.shot = nil
	}
	delete(e.pending, p.Nickname)
	p.Status.Drain()
}

func (e *Engine) endMatch(reason string) {
	e.ended = true
	e.pending = make(map[string]*pendingAsk)
	e.leaderboard = e.board.EndGame()
	e.logger.Info("Engine: match ended (%s)", reason)
	e.emitSnapshot()
	e.emit(Event{Kind: EventMatchEnded, Payload: MatchEndedPayload{Leaderboard: e.leaderboard, Reason: reason}})
}
