package domain

// NewtonDistance is how far Newton pushes a player in a straight line.
const NewtonDistance = 2

var (
	TagbackGrenade = &PowerupDef{Name: "Tagback Grenade", UseCase: OnDamage, Behavior: tagback{}}
	TargetingScope = &PowerupDef{Name: "Targeting Scope", UseCase: OnShoot, Behavior: scope{}}
	Newton         = &PowerupDef{Name: "Newton", UseCase: OnTurn, Behavior: newton{}}
	Teleporter     = &PowerupDef{Name: "Teleporter", UseCase: OnTurn, Behavior: teleporter{}}
)

// PowerupCatalog lists every powerup kind.
var PowerupCatalog = []*PowerupDef{TagbackGrenade, TargetingScope, Newton, Teleporter}

// NewPowerupCards returns the full powerup deck: two cards per kind and colour.
func NewPowerupCards() []*Powerup {
	var out []*Powerup
	for _, def := range PowerupCatalog {
		for _, a := range AmmoTypes {
			out = append(out, NewPowerup(def, a), NewPowerup(def, a))
		}
	}
	return out
}

// tagback gives the shooter a mark. The owner must see the shooter.
type tagback struct{}

func (tagback) CanBeActivated(b *GameBoard, pu *Powerup) bool {
	return pu.shooter != nil && b.Map.CanSee(pu.owner, pu.shooter)
}

func (tagback) Advance(b *GameBoard, pu *Powerup, _ int) *QuestionContainer {
	b.DealDamage(pu.owner, pu.shooter, 0, 1)
	return nil
}

// scope pays one ammo of any colour for one extra damage on a player just hit.
type scope struct{}

func (scope) CanBeActivated(b *GameBoard, pu *Powerup) bool {
	return len(scopeTargets(b, pu)) > 0 && pu.owner.Board.Ammo.Total() > 0
}

func scopeTargets(b *GameBoard, pu *Powerup) []*Player {
	var out []*Player
	for _, p := range pu.hit {
		if _, ok := b.Map.Position(p); ok {
			out = append(out, p)
		}
	}
	return out
}

func (scope) Advance(b *GameBoard, pu *Powerup, choice int) *QuestionContainer {
	switch pu.step {
	case 0:
		pu.players = scopeTargets(b, pu)
		q := NewStringQuestion("Which player do you want to hit?", nicknames(pu.players))
		return &q
	case 1:
		pu.target = pu.players[choice]
		owned := pu.owner.Board.Ammo.Owned()
		names := make([]string, len(owned))
		for i, a := range owned {
			names[i] = a.String()
		}
		q := NewStringQuestion("Which ammo do you want to pay with?", names)
		return &q
	default:
		owned := pu.owner.Board.Ammo.Owned()
		if err := pu.owner.Board.Ammo.Pay(Price{owned[choice]}); err != nil {
			invariant("%s: cannot pay %s", pu.Def.Name, owned[choice])
		}
		b.DealDamage(pu.owner, pu.target, 1, 0)
		return nil
	}
}

// newton moves another player up to two squares in one direction.
type newton struct{}

func newtonTargets(b *GameBoard, owner *Player) []*Player {
	var out []*Player
	for _, p := range b.Players() {
		if p == owner {
			continue
		}
		if pos, ok := b.Map.Position(p); ok && len(b.Map.StraightLine(pos, NewtonDistance)) > 0 {
			out = append(out, p)
		}
	}
	return out
}

func (newton) CanBeActivated(b *GameBoard, pu *Powerup) bool {
	return len(newtonTargets(b, pu.owner)) > 0
}

func (newton) Advance(b *GameBoard, pu *Powerup, choice int) *QuestionContainer {
	switch pu.step {
	case 0:
		pu.players = newtonTargets(b, pu.owner)
		q := NewStringQuestion("Which player do you want to move?", nicknames(pu.players))
		return &q
	case 1:
		pu.target = pu.players[choice]
		pos, _ := b.Map.Position(pu.target)
		pu.squares = b.Map.StraightLine(pos, NewtonDistance)
		q := NewCoordinatesQuestion("Where do you want to move "+pu.target.Nickname+"?", pu.squares)
		return &q
	default:
		b.Map.MovePlayerTo(pu.target, pu.squares[choice])
		return nil
	}
}

// teleporter moves the owner to any other square.
type teleporter struct{}

func (teleporter) CanBeActivated(b *GameBoard, pu *Powerup) bool {
	_, ok := b.Map.Position(pu.owner)
	return ok
}

func (teleporter) Advance(b *GameBoard, pu *Powerup, choice int) *QuestionContainer {
	if pu.step == 0 {
		pos, _ := b.Map.Position(pu.owner)
		pu.squares = nil
		for _, sq := range b.Map.Squares() {
			if sq.Coords != pos {
				pu.squares = append(pu.squares, sq.Coords)
			}
		}
		q := NewCoordinatesQuestion("Where do you want to teleport?", pu.squares)
		return &q
	}
	b.Map.MovePlayerTo(pu.owner, pu.squares[choice])
	return nil
}

var (
	_ PowerupBehavior = tagback{}
	_ PowerupBehavior = scope{}
	_ PowerupBehavior = newton{}
	_ PowerupBehavior = teleporter{}
)
