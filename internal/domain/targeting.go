package domain

// Selector returns the candidate targets of an effect.
type Selector func(f *Firing) []*Player

// Visible selects the players the owner can see.
func Visible(f *Firing) []*Player {
	return f.Map.VisiblePlayers(f.Owner)
}

// NotVisible selects the players on the map the owner cannot see.
func NotVisible(f *Firing) []*Player {
	var out []*Player
	for _, p := range f.Board.Players() {
		if p == f.Owner {
			continue
		}
		if _, ok := f.Map.Position(p); ok && !f.Map.CanSee(f.Owner, p) {
			out = append(out, p)
		}
	}
	return out
}

// SameSquare selects the players on the owner's square.
func SameSquare(f *Firing) []*Player {
	pos, ok := f.Map.Position(f.Owner)
	if !ok {
		return nil
	}
	return without(f.Map.PlayersAt(pos), []*Player{f.Owner})
}

// AnyOther selects every other player on the map.
func AnyOther(f *Firing) []*Player {
	var out []*Player
	for _, p := range f.Board.Players() {
		if _, ok := f.Map.Position(p); ok && p != f.Owner {
			out = append(out, p)
		}
	}
	return out
}

// WithinDistance selects players at most n steps away.
func WithinDistance(n int) Selector {
	return func(f *Firing) []*Player {
		return f.Map.ReachablePlayers(f.Owner, n)
	}
}

// AtDistance selects players exactly n steps away.
func AtDistance(n int) Selector {
	return func(f *Firing) []*Player {
		if n == 0 {
			return SameSquare(f)
		}
		return without(f.Map.ReachablePlayers(f.Owner, n), f.Map.ReachablePlayers(f.Owner, n-1))
	}
}

// VisibleBeyond selects visible players at least n steps away.
func VisibleBeyond(n int) Selector {
	return func(f *Firing) []*Player {
		return without(Visible(f), f.Map.ReachablePlayers(f.Owner, n-1))
	}
}

// Targeting holds the rules a weapon cannot express through its effect table.
type Targeting interface {
	// Targets filters the selected candidates of an effect.
	Targets(f *Firing, e Effect, candidates []*Player) []*Player
	// Squares lists the squares offered for an owner move (target nil) or a push.
	Squares(f *Firing, e Effect, target *Player) []Coordinates
	// CanFire reports whether a mode has something to hit right now.
	CanFire(f *Firing, m FireMode) bool
}

// DefaultTargeting uses the effect table as is.
type DefaultTargeting struct{}

func (DefaultTargeting) Targets(_ *Firing, _ Effect, candidates []*Player) []*Player {
	return candidates
}

func (DefaultTargeting) Squares(f *Firing, e Effect, target *Player) []Coordinates {
	if target == nil {
		return f.Map.ReachableCoordinates(f.Owner, e.Move)
	}
	pos, ok := f.Map.Position(target)
	if !ok {
		return nil
	}
	return f.Map.ReachableFrom(pos, e.Move)
}

func (DefaultTargeting) CanFire(f *Firing, m FireMode) bool {
	return modeHasTargets(f, m)
}

// modeHasTargets checks every mandatory targeting effect of m. An effect that
// excludes earlier targets needs one more distinct candidate than the picks
// before it.
func modeHasTargets(f *Firing, m FireMode) bool {
	t := f.Weapon.targeting()
	picks := 0
	for _, e := range m.Effects {
		if e.Pick != PickOne && e.Pick != PickAll {
			continue
		}
		if e.Optional {
			continue
		}
		if e.Select == nil {
			return false
		}
		n := len(t.Targets(f, e, e.Select(f)))
		need := 1
		if e.Pick == PickOne && e.Fresh {
			need = picks + 1
		}
		if n < need {
			return false
		}
		if e.Pick == PickOne {
			picks++
		}
	}
	return true
}

// mandatoryPicks counts the single-target effects of m that cannot be skipped.
func mandatoryPicks(m FireMode) int {
	n := 0
	for _, e := range m.Effects {
		if e.Pick == PickOne && !e.Optional {
			n++
		}
	}
	return n
}

func modeMove(m FireMode) (Effect, bool) {
	for _, e := range m.Effects {
		if e.Kind == EffectMove {
			return e, true
		}
	}
	return Effect{}, false
}

// bladeTargeting moves the owner only onto squares holding enough players
// for the blade hits still to resolve.
type bladeTargeting struct {
	DefaultTargeting
}

func (b bladeTargeting) Squares(f *Firing, e Effect, target *Player) []Coordinates {
	if target != nil {
		return b.DefaultTargeting.Squares(f, e, target)
	}
	needed := 0
	mode := f.Weapon.currentMode()
	for i, eff := range mode.Effects {
		if eff.Pick == PickOne && !f.Weapon.completed[i] {
			needed++
		}
	}
	var out []Coordinates
	for _, c := range f.Map.ReachableCoordinates(f.Owner, e.Move) {
		others := without(f.Map.PlayersAt(c), append(f.Targeted(), f.Owner))
		if len(others) >= needed {
			out = append(out, c)
		}
	}
	return out
}

func (b bladeTargeting) CanFire(f *Firing, m FireMode) bool {
	needed := mandatoryPicks(m)
	here := len(SameSquare(f))
	if here >= needed {
		return true
	}
	move, ok := modeMove(m)
	if !ok {
		return false
	}
	pos, _ := f.Map.Position(f.Owner)
	for _, c := range f.Map.ReachableCoordinates(f.Owner, move.Move) {
		there := len(without(f.Map.PlayersAt(c), []*Player{f.Owner}))
		if there >= needed {
			return true
		}
		// cut here, step, cut there
		if c != pos && here > 0 && there > 0 && here+there >= needed {
			return true
		}
	}
	return false
}

// glideTargeting lets the owner move before shooting, onto squares from which
// someone is still visible.
type glideTargeting struct {
	DefaultTargeting
}

func (g glideTargeting) Squares(f *Firing, e Effect, target *Player) []Coordinates {
	all := g.DefaultTargeting.Squares(f, e, target)
	if target != nil || f.Weapon.Completed(EffectBase) {
		return all
	}
	var out []Coordinates
	for _, c := range all {
		if len(f.Map.VisiblePlayersFrom(c, f.Owner)) > 0 {
			out = append(out, c)
		}
	}
	return out
}

func (g glideTargeting) CanFire(f *Firing, m FireMode) bool {
	if len(Visible(f)) > 0 {
		return true
	}
	move, ok := modeMove(m)
	if !ok {
		return false
	}
	for _, c := range f.Map.ReachableCoordinates(f.Owner, move.Move) {
		if len(f.Map.VisiblePlayersFrom(c, f.Owner)) > 0 {
			return true
		}
	}
	return false
}

// beamTargeting drags a target onto a square the owner can see.
type beamTargeting struct {
	DefaultTargeting
}

func (b beamTargeting) Targets(f *Firing, e Effect, candidates []*Player) []*Player {
	if e.Push != PushChoose {
		return candidates
	}
	var out []*Player
	for _, p := range candidates {
		if len(b.Squares(f, e, p)) > 0 {
			out = append(out, p)
		}
	}
	return out
}

func (b beamTargeting) Squares(f *Firing, e Effect, target *Player) []Coordinates {
	all := b.DefaultTargeting.Squares(f, e, target)
	if target == nil {
		return all
	}
	pos, ok := f.Map.Position(f.Owner)
	if !ok {
		return nil
	}
	var out []Coordinates
	for _, c := range all {
		if f.Map.IsVisible(pos, c) {
			out = append(out, c)
		}
	}
	return out
}

var (
	_ Targeting = DefaultTargeting{}
	_ Targeting = bladeTargeting{}
	_ Targeting = glideTargeting{}
	_ Targeting = beamTargeting{}
)
