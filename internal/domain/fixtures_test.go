package domain

import (
	"math/rand"
	"testing"
)

// newTestBoard seats anna, bruno and carla; anna plays first. Nobody is on the map.
func newTestBoard(t *testing.T) *GameBoard {
	t.Helper()
	b, err := NewGameBoard(SmallMap, []string{"anna", "bruno", "carla"}, 5, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("NewGameBoard: %v", err)
	}
	for _, p := range b.Players() {
		p.TurnStatus = Idle
	}
	b.CurrentPlayer().TurnStatus = YourTurn
	return b
}

func player(t *testing.T, b *GameBoard, nickname string) *Player {
	t.Helper()
	p, ok := b.Player(nickname)
	if !ok {
		t.Fatalf("no player %q", nickname)
	}
	return p
}

func place(t *testing.T, b *GameBoard, nickname string, row, col int) *Player {
	t.Helper()
	p := player(t, b, nickname)
	b.Map.MovePlayerTo(p, Coordinates{Row: row, Col: col})
	return p
}

func arm(t *testing.T, p *Player, def *WeaponDef) *Weapon {
	t.Helper()
	w := NewWeapon(def)
	if err := p.Board.AddWeapon(w); err != nil {
		t.Fatalf("AddWeapon: %v", err)
	}
	return w
}

func expectInvariant(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if _, ok := r.(*InvariantError); !ok {
			t.Fatalf("expected invariant panic, got %v", r)
		}
	}()
	fn()
}

func damageFrom(shooters ...string) []string {
	return append([]string(nil), shooters...)
}

func repeat(shooter string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = shooter
	}
	return out
}
