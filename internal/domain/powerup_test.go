package domain

import (
	"errors"
	"reflect"
	"testing"
)

func give(t *testing.T, p *Player, def *PowerupDef, a AmmoType) *Powerup {
	t.Helper()
	pu := NewPowerup(def, a)
	if err := p.Board.AddPowerup(pu); err != nil {
		t.Fatalf("AddPowerup: %v", err)
	}
	return pu
}

func TestTagbackReactsOnlyToVisibleShooter(t *testing.T) {
	b := newTestBoard(t)
	anna := place(t, b, "anna", 1, 0)
	bruno := place(t, b, "bruno", 1, 2)
	carla := place(t, b, "carla", 2, 2)

	tag := give(t, bruno, TagbackGrenade, AmmoRed)
	if !tag.CanReactTo(b, bruno, anna) || tag.Shooter() != anna {
		t.Fatalf("bruno sees anna, tagback should be activatable")
	}
	q, err := tag.Begin(b, bruno)
	if err != nil || q != nil {
		t.Fatalf("Begin = %v, %v; want immediate conclusion", q, err)
	}
	if !tag.IsActivationConcluded() {
		t.Fatalf("tagback not concluded")
	}
	if anna.Board.Damage.Marks["bruno"] != 1 || len(anna.Board.Damage.Damage) != 0 {
		t.Fatalf("anna board = %+v", anna.Board.Damage)
	}

	other := give(t, carla, TagbackGrenade, AmmoBlue)
	if other.CanReactTo(b, carla, anna) {
		t.Fatalf("carla cannot see anna")
	}
	if other.Shooter() != nil {
		t.Fatalf("shooter reference must be cleared when not activatable")
	}
	if _, err := other.Begin(b, carla); !errors.Is(err, ErrNotActivatable) {
		t.Fatalf("Begin err = %v, want ErrNotActivatable", err)
	}
}

func TestTargetingScope(t *testing.T) {
	b := newTestBoard(t)
	anna := place(t, b, "anna", 1, 0)
	bruno := place(t, b, "bruno", 1, 2)
	place(t, b, "carla", 2, 2)

	scope := give(t, anna, TargetingScope, AmmoYellow)
	if scope.CanBeActivated(b, anna) {
		t.Fatalf("no hit players, scope should not activate")
	}
	scope.SetHit([]*Player{bruno})
	q, err := scope.Begin(b, anna)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if !reflect.DeepEqual(q.Options, []string{"bruno"}) {
		t.Fatalf("scope targets = %v", q.Options)
	}
	q, _ = scope.Step(b, 0)
	if !reflect.DeepEqual(q.Options, []string{"RED", "BLUE", "YELLOW"}) {
		t.Fatalf("scope ammo = %v", q.Options)
	}
	if q, _ = scope.Step(b, 1); q != nil {
		t.Fatalf("expected conclusion")
	}
	if anna.Board.Ammo != (Ammo{1, 0, 1}) {
		t.Fatalf("ammo after scope = %v", anna.Board.Ammo)
	}
	if got := bruno.Board.Damage.Damage; !reflect.DeepEqual(got, []string{"anna"}) {
		t.Fatalf("bruno damage = %v", got)
	}

	scope.Reset()
	if scope.IsActivationConcluded() || len(scope.Hit()) != 0 || scope.Owner() != nil {
		t.Fatalf("Reset left state behind")
	}
}

func TestNewtonPushesInALine(t *testing.T) {
	b := newTestBoard(t)
	anna := place(t, b, "anna", 0, 0)
	bruno := place(t, b, "bruno", 1, 1)
	place(t, b, "carla", 1, 1)

	newton := give(t, anna, Newton, AmmoBlue)
	q, err := newton.Begin(b, anna)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if !reflect.DeepEqual(q.Options, []string{"bruno", "carla"}) {
		t.Fatalf("newton targets = %v", q.Options)
	}
	q, _ = newton.Step(b, 0)
	if want := []Coordinates{c(1, 0), c(1, 2), c(1, 3), c(2, 1)}; !reflect.DeepEqual(q.Coordinates, want) {
		t.Fatalf("newton squares = %v, want %v", q.Coordinates, want)
	}
	if _, err := newton.Step(b, 9); !errors.Is(err, ErrInvalidChoice) {
		t.Fatalf("Step(9) err = %v", err)
	}
	if q, _ = newton.Step(b, 2); q != nil {
		t.Fatalf("expected conclusion")
	}
	if pos, _ := b.Map.Position(bruno); pos != c(1, 3) {
		t.Fatalf("bruno at %s, want (1,3)", pos)
	}
}

func TestTeleporterOffersEveryOtherSquare(t *testing.T) {
	b := newTestBoard(t)
	anna := place(t, b, "anna", 2, 2)

	tp := give(t, anna, Teleporter, AmmoRed)
	q, err := tp.Begin(b, anna)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if q.Len() != len(b.Map.Squares())-1 || q.IndexOf(c(2, 2)) != -1 {
		t.Fatalf("teleporter squares = %v", q.Coordinates)
	}
	if q, _ = tp.Step(b, q.IndexOf(c(0, 0))); q != nil {
		t.Fatalf("expected conclusion")
	}
	if pos, _ := b.Map.Position(anna); pos != c(0, 0) {
		t.Fatalf("anna at %s", pos)
	}

	b.Map.RemovePlayer(anna)
	if tp.CanBeActivated(b, anna) {
		t.Fatalf("off-map player cannot teleport")
	}
}

func TestPowerupDeck(t *testing.T) {
	cards := NewPowerupCards()
	if len(cards) != len(PowerupCatalog)*len(AmmoTypes)*2 {
		t.Fatalf("deck size = %d", len(cards))
	}
	counts := make(map[UseCase]int)
	for _, pu := range cards {
		counts[pu.UseCase()]++
	}
	if counts[OnDamage] != 6 || counts[OnShoot] != 6 || counts[OnTurn] != 12 {
		t.Fatalf("use cases = %v", counts)
	}
}
