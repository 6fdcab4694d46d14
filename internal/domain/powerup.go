package domain

// UseCase is the window in which a powerup may be activated.
type UseCase int

const (
	OnTurn UseCase = iota
	OnShoot
	OnDamage
)

func (u UseCase) String() string {
	return [...]string{"ON_TURN", "ON_SHOOT", "ON_DAMAGE"}[u]
}

// PowerupBehavior is what a powerup card does once activated. Advance is
// called with choice -1 when the activation begins; a nil question means
// the card concluded.
type PowerupBehavior interface {
	CanBeActivated(b *GameBoard, pu *Powerup) bool
	Advance(b *GameBoard, pu *Powerup, choice int) *QuestionContainer
}

// PowerupDef is the immutable description of a powerup card.
type PowerupDef struct {
	Name     string
	UseCase  UseCase
	Behavior PowerupBehavior
}

// Powerup is a powerup card with its activation state.
type Powerup struct {
	Def  *PowerupDef
	Ammo AmmoType

	owner     *Player
	step      int
	question  QuestionContainer
	pending   bool
	concluded bool
	shooter   *Player
	hit       []*Player

	players []*Player
	squares []Coordinates
	target  *Player
}

// NewPowerup returns a card of def associated with ammo colour a.
func NewPowerup(def *PowerupDef, a AmmoType) *Powerup {
	return &Powerup{Def: def, Ammo: a}
}

func (pu *Powerup) Name() string { return pu.Def.Name }

func (pu *Powerup) UseCase() UseCase { return pu.Def.UseCase }

func (pu *Powerup) String() string {
	return pu.Def.Name + " (" + pu.Ammo.String() + ")"
}

// Owner is the player activating the card.
func (pu *Powerup) Owner() *Player { return pu.owner }

// Shooter is the player that triggered an ON_DAMAGE window.
func (pu *Powerup) Shooter() *Player { return pu.shooter }

// SetHit seeds an ON_SHOOT card with the players just hit.
func (pu *Powerup) SetHit(players []*Player) {
	pu.hit = append([]*Player(nil), players...)
}

// Hit lists the players an ON_SHOOT card may act upon.
func (pu *Powerup) Hit() []*Player { return append([]*Player(nil), pu.hit...) }

// CanBeActivated reports whether owner can activate the card now.
func (pu *Powerup) CanBeActivated(b *GameBoard, owner *Player) bool {
	pu.owner = owner
	return pu.Def.Behavior.CanBeActivated(b, pu)
}

// CanReactTo checks an ON_DAMAGE card against shooter, keeping the shooter
// reference only when the card is activatable.
func (pu *Powerup) CanReactTo(b *GameBoard, owner, shooter *Player) bool {
	pu.shooter = shooter
	if !pu.CanBeActivated(b, owner) {
		pu.shooter = nil
		return false
	}
	return true
}

// Begin starts the activation. A nil question means the card already concluded.
func (pu *Powerup) Begin(b *GameBoard, owner *Player) (*QuestionContainer, error) {
	if !pu.CanBeActivated(b, owner) {
		return nil, ErrNotActivatable
	}
	pu.step = 0
	pu.concluded = false
	return pu.next(b, -1), nil
}

// Step answers the pending question.
func (pu *Powerup) Step(b *GameBoard, choice int) (*QuestionContainer, error) {
	if !pu.pending {
		invariant("%s: step without a pending question", pu.Def.Name)
	}
	if !pu.question.Valid(choice) {
		return nil, ErrInvalidChoice
	}
	pu.step++
	return pu.next(b, choice), nil
}

func (pu *Powerup) next(b *GameBoard, choice int) *QuestionContainer {
	q := pu.Def.Behavior.Advance(b, pu, choice)
	if q == nil {
		pu.pending = false
		pu.concluded = true
		return nil
	}
	pu.pending = true
	pu.question = *q
	return q
}

// IsActivationConcluded reports whether the card did its effect.
func (pu *Powerup) IsActivationConcluded() bool { return pu.concluded }

// PendingQuestion returns the question awaiting an answer.
func (pu *Powerup) PendingQuestion() (QuestionContainer, bool) {
	return pu.question, pu.pending
}

// Reset clears the activation state. Identity and ammo colour are kept.
func (pu *Powerup) Reset() {
	pu.owner = nil
	pu.step = 0
	pu.question = QuestionContainer{}
	pu.pending = false
	pu.concluded = false
	pu.shooter = nil
	pu.hit = nil
	pu.players = nil
	pu.squares = nil
	pu.target = nil
}
