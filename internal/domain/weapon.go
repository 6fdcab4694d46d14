package domain

// EffectKind tags an effect within a fire mode.
type EffectKind int

const (
	EffectBase EffectKind = iota
	EffectOptional1
	EffectOptional2
	EffectExtra
	EffectMove
)

func (k EffectKind) String() string {
	return [...]string{"BASE", "OPTIONAL_1", "OPTIONAL_2", "EXTRA", "MOVE"}[k]
}

// Pick is how an effect resolves its targets.
type Pick int

const (
	PickNone Pick = iota
	PickOne
	PickAll
	PickPrevious
)

// Push is how an effect relocates its target.
type Push int

const (
	PushNone Push = iota
	PushChoose
	PushToOwner
)

// Hit is the damage and marks an effect deals to each of its targets.
type Hit struct {
	Damage int
	Marks  int
}

// Effect is one row of a weapon's effect table.
type Effect struct {
	Kind   EffectKind
	Name   string
	Select Selector
	Pick   Pick
	// Fresh excludes players already targeted during this activation.
	Fresh bool
	// Optional lets the player skip choosing a target.
	Optional  bool
	AfterBase bool
	Hit       Hit
	// Move is the owner's movement for EffectMove, or the push distance.
	Move int
	Push Push
}

// FireMode is one way to fire a weapon, with its extra cost.
type FireMode struct {
	Name     string
	Cost     Price
	Effects  []Effect
	AnyOrder bool
}

// WeaponDef is the immutable description of a weapon.
type WeaponDef struct {
	Name        string
	ReloadPrice Price
	Modes       []FireMode
	Targeting   Targeting
}

// GrabPrice is the reload price minus the unit already loaded in the card.
func (d *WeaponDef) GrabPrice() Price {
	if len(d.ReloadPrice) == 0 {
		return nil
	}
	return append(Price(nil), d.ReloadPrice[1:]...)
}

// Firing is what selectors and targeting strategies see of an activation.
type Firing struct {
	Board  *GameBoard
	Map    *GameMap
	Owner  *Player
	Weapon *Weapon
}

// Targeted returns the players chosen so far in this activation.
func (f *Firing) Targeted() []*Player {
	return append([]*Player(nil), f.Weapon.targets...)
}

type awaiting int

const (
	awaitNothing awaiting = iota
	awaitMode
	awaitOrder
	awaitMove
	awaitTarget
	awaitPush
)

type effectPhase int

const (
	phaseStart effectPhase = iota
	phaseTarget
	phasePush
	phaseDone
)

type plannedHit struct {
	target *Player
	hit    Hit
}

// Weapon is a weapon card with its activation state.
type Weapon struct {
	Def    *WeaponDef
	Loaded bool

	owner      *Player
	step       int
	mode       int
	offered    []int
	eligible   []int
	completed  []bool
	effect     int
	phase      effectPhase
	await      awaiting
	question   QuestionContainer
	candidates []*Player
	squares    []Coordinates
	chosen     *Player
	targets    []*Player
	baseTarget *Player
	hits       []plannedHit
	fired      bool
	hitPlayers []*Player
}

// NewWeapon returns a loaded weapon for def.
func NewWeapon(def *WeaponDef) *Weapon {
	w := &Weapon{Def: def, Loaded: true}
	w.Reset()
	return w
}

func (w *Weapon) Name() string { return w.Def.Name }

func (w *Weapon) targeting() Targeting {
	if w.Def.Targeting != nil {
		return w.Def.Targeting
	}
	return DefaultTargeting{}
}

func (w *Weapon) firing(b *GameBoard, owner *Player) *Firing {
	return &Firing{Board: b, Map: b.Map, Owner: owner, Weapon: w}
}

// availableModes lists indexes of modes the owner can afford and fire.
func (w *Weapon) availableModes(f *Firing) []int {
	var out []int
	for i, m := range w.Def.Modes {
		if !f.Owner.Board.Ammo.CanAfford(m.Cost) {
			continue
		}
		if w.targeting().CanFire(f, m) {
			out = append(out, i)
		}
	}
	return out
}

// CanBeActivated reports whether owner can start firing this weapon now.
func (w *Weapon) CanBeActivated(b *GameBoard, owner *Player) bool {
	if !w.Loaded {
		return false
	}
	if _, ok := b.Map.Position(owner); !ok {
		return false
	}
	return len(w.availableModes(w.firing(b, owner))) > 0
}

// Begin starts an activation. A nil question means the weapon concluded
// without needing any answer.
func (w *Weapon) Begin(b *GameBoard, owner *Player) (*QuestionContainer, error) {
	if !w.CanBeActivated(b, owner) {
		return nil, ErrNotActivatable
	}
	w.Reset()
	w.owner = owner
	return w.advance(b), nil
}

// Step answers the pending question with choice. An invalid choice returns
// ErrInvalidChoice and leaves the activation untouched.
func (w *Weapon) Step(b *GameBoard, choice int) (*QuestionContainer, error) {
	if w.owner == nil || w.await == awaitNothing {
		invariant("%s: step without a pending question", w.Def.Name)
	}
	if !w.question.Valid(choice) {
		return nil, ErrInvalidChoice
	}
	w.step++
	mode := w.currentMode()

	switch w.await {
	case awaitMode:
		w.selectMode(w.offered[choice])
	case awaitOrder:
		w.startEffect(w.eligible[choice])
	case awaitMove:
		b.Map.MovePlayerTo(w.owner, w.squares[choice])
		w.phase = phaseDone
	case awaitTarget:
		if choice == len(w.candidates) {
			// optional target declined
			w.phase = phaseDone
			break
		}
		eff := mode.Effects[w.effect]
		w.chooseTarget(w.candidates[choice], eff)
	case awaitPush:
		b.Map.MovePlayerTo(w.chosen, w.squares[choice])
		w.phase = phaseDone
	}
	w.await = awaitNothing
	return w.advance(b), nil
}

func (w *Weapon) currentMode() FireMode {
	if w.mode == -1 {
		return FireMode{}
	}
	return w.Def.Modes[w.mode]
}

func (w *Weapon) selectMode(index int) {
	mode := w.Def.Modes[index]
	if err := w.owner.Board.Ammo.Pay(mode.Cost); err != nil {
		invariant("%s: mode %q offered but not affordable", w.Def.Name, mode.Name)
	}
	w.mode = index
	w.completed = make([]bool, len(mode.Effects))
}

func (w *Weapon) startEffect(index int) {
	w.effect = index
	w.phase = phaseStart
	w.chosen = nil
}

func (w *Weapon) chooseTarget(target *Player, eff Effect) {
	w.chosen = target
	w.targets = append(w.targets, target)
	if eff.Kind == EffectBase && w.baseTarget == nil {
		w.baseTarget = target
	}
	w.plan(target, eff.Hit)
	if eff.Push != PushNone {
		w.phase = phasePush
	} else {
		w.phase = phaseDone
	}
}

func (w *Weapon) plan(target *Player, h Hit) {
	if h.Damage == 0 && h.Marks == 0 {
		return
	}
	w.hits = append(w.hits, plannedHit{target: target, hit: h})
}

// eligibleEffects lists incomplete effects whose prerequisites are met. When
// the order is free, effects that cannot resolve right now are held back as
// long as another one can.
func (w *Weapon) eligibleEffects(f *Firing) []int {
	mode := w.currentMode()
	var out []int
	for i, eff := range mode.Effects {
		if w.completed[i] {
			continue
		}
		if eff.AfterBase && !w.completedKind(EffectBase) {
			continue
		}
		out = append(out, i)
		if !mode.AnyOrder {
			break
		}
	}
	if len(out) < 2 {
		return out
	}
	var ready []int
	for _, i := range out {
		if w.canResolve(f, mode.Effects[i]) {
			ready = append(ready, i)
		}
	}
	if len(ready) == 0 {
		return out
	}
	return ready
}

func (w *Weapon) canResolve(f *Firing, eff Effect) bool {
	switch {
	case eff.Kind == EffectMove:
		return len(w.targeting().Squares(f, eff, nil)) > 0
	case eff.Pick == PickOne && !eff.Optional:
		return len(w.candidatesFor(f, eff)) > 0
	}
	return true
}

func (w *Weapon) completedKind(kind EffectKind) bool {
	mode := w.currentMode()
	for i, eff := range mode.Effects {
		if eff.Kind == kind && w.completed[i] {
			return true
		}
	}
	return false
}

// advance runs the activation until a question is needed or the weapon fires.
func (w *Weapon) advance(b *GameBoard) *QuestionContainer {
	f := w.firing(b, w.owner)
	t := w.targeting()
	for {
		if w.mode == -1 {
			w.offered = w.availableModes(f)
			switch len(w.offered) {
			case 0:
				invariant("%s: activation started with no available mode", w.Def.Name)
			case 1:
				w.selectMode(w.offered[0])
				continue
			}
			names := make([]string, len(w.offered))
			for i, m := range w.offered {
				names[i] = w.Def.Modes[m].Name
			}
			return w.ask(awaitMode, NewStringQuestion("Which fire mode do you want to use?", names))
		}

		mode := w.currentMode()
		if w.effect == -1 {
			w.eligible = w.eligibleEffects(f)
			if len(w.eligible) == 0 {
				w.fire(b)
				return nil
			}
			if len(w.eligible) > 1 {
				names := make([]string, len(w.eligible))
				for i, e := range w.eligible {
					names[i] = mode.Effects[e].Name
				}
				return w.ask(awaitOrder, NewStringQuestion("Which effect do you want to resolve next?", names))
			}
			w.startEffect(w.eligible[0])
		}

		eff := mode.Effects[w.effect]
		switch w.phase {
		case phaseStart:
			if eff.Kind == EffectMove {
				w.squares = t.Squares(f, eff, nil)
				if len(w.squares) == 0 {
					w.phase = phaseDone
					continue
				}
				return w.ask(awaitMove, NewCoordinatesQuestion("Where do you want to move?", w.squares))
			}
			w.phase = phaseTarget
		case phaseTarget:
			switch eff.Pick {
			case PickNone:
				w.phase = phaseDone
			case PickOne:
				w.candidates = w.candidatesFor(f, eff)
				if len(w.candidates) == 0 {
					w.phase = phaseDone
					continue
				}
				names := nicknames(w.candidates)
				if eff.Optional {
					names = append(names, "No one")
				}
				return w.ask(awaitTarget, NewStringQuestion("Which player do you want to target?", names))
			case PickAll:
				for _, p := range w.candidatesFor(f, eff) {
					w.targets = append(w.targets, p)
					w.plan(p, eff.Hit)
				}
				w.phase = phaseDone
			case PickPrevious:
				if w.baseTarget == nil {
					w.phase = phaseDone
					continue
				}
				w.chooseTarget(w.baseTarget, eff)
			}
		case phasePush:
			if eff.Push == PushToOwner {
				if pos, ok := b.Map.Position(w.owner); ok {
					b.Map.MovePlayerTo(w.chosen, pos)
				}
				w.phase = phaseDone
				continue
			}
			w.squares = t.Squares(f, eff, w.chosen)
			if len(w.squares) == 0 {
				w.phase = phaseDone
				continue
			}
			return w.ask(awaitPush, NewCoordinatesQuestion("Where do you want to move "+w.chosen.Nickname+"?", w.squares))
		case phaseDone:
			w.completed[w.effect] = true
			w.effect = -1
		}
	}
}

func (w *Weapon) ask(a awaiting, q QuestionContainer) *QuestionContainer {
	w.await = a
	w.question = q
	return &q
}

func (w *Weapon) candidatesFor(f *Firing, eff Effect) []*Player {
	var cands []*Player
	if eff.Select != nil {
		cands = eff.Select(f)
	}
	cands = w.targeting().Targets(f, eff, cands)
	if eff.Fresh {
		cands = without(cands, w.targets)
	}
	return cands
}

// fire applies every planned hit in table order.
func (w *Weapon) fire(b *GameBoard) {
	for _, h := range w.hits {
		dealt := b.DealDamage(w.owner, h.target, h.hit.Damage, h.hit.Marks)
		if dealt > 0 && !containsPlayer(w.hitPlayers, h.target) {
			w.hitPlayers = append(w.hitPlayers, h.target)
		}
	}
	w.fired = true
}

// IsActivationConcluded reports whether every chosen effect fired.
func (w *Weapon) IsActivationConcluded() bool {
	if !w.fired {
		return false
	}
	for _, done := range w.completed {
		if !done {
			return false
		}
	}
	return true
}

// Completed reports whether an effect of the given kind resolved in this activation.
func (w *Weapon) Completed(kind EffectKind) bool {
	if w.mode == -1 {
		return false
	}
	return w.completedKind(kind)
}

// PlayersHit lists players damaged by the last activation, in hit order.
func (w *Weapon) PlayersHit() []*Player {
	return append([]*Player(nil), w.hitPlayers...)
}

// CurrentTargets lists the players targeted in this activation.
func (w *Weapon) CurrentTargets() []*Player {
	return append([]*Player(nil), w.targets...)
}

// PendingQuestion returns the question awaiting an answer.
func (w *Weapon) PendingQuestion() (QuestionContainer, bool) {
	return w.question, w.await != awaitNothing
}

// Unload marks the weapon as spent.
func (w *Weapon) Unload() { w.Loaded = false }

// Load marks the weapon as ready.
func (w *Weapon) Load() { w.Loaded = true }

// Reset clears the activation state. Identity and loaded flag are kept.
func (w *Weapon) Reset() {
	w.owner = nil
	w.step = 0
	w.mode = -1
	w.offered = nil
	w.eligible = nil
	w.completed = nil
	w.effect = -1
	w.phase = phaseStart
	w.await = awaitNothing
	w.question = QuestionContainer{}
	w.candidates = nil
	w.squares = nil
	w.chosen = nil
	w.targets = nil
	w.baseTarget = nil
	w.hits = nil
	w.fired = false
	w.hitPlayers = nil
}

func nicknames(players []*Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.Nickname
	}
	return out
}

func containsPlayer(list []*Player, p *Player) bool {
	for _, o := range list {
		if o == p {
			return true
		}
	}
	return false
}

func without(list, remove []*Player) []*Player {
	var out []*Player
	for _, p := range list {
		if !containsPlayer(remove, p) {
			out = append(out, p)
		}
	}
	return out
}
