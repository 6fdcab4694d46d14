package domain

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

func TestNewGameBoardValidation(t *testing.T) {
	tests := []struct {
		name    string
		players []string
		skulls  int
		wantErr error
	}{
		{name: "too few", players: []string{"a", "b"}, skulls: 5, wantErr: ErrTooFewPlayers},
		{name: "too many", players: []string{"a", "b", "c", "d", "e", "f"}, skulls: 5, wantErr: ErrTooManyPlayers},
		{name: "few skulls", players: []string{"a", "b", "c"}, skulls: 4, wantErr: ErrInvalidSkulls},
		{name: "many skulls", players: []string{"a", "b", "c"}, skulls: 9, wantErr: ErrInvalidSkulls},
		{name: "duplicate", players: []string{"a", "b", "a"}, skulls: 8, wantErr: ErrDuplicatePlayer},
		{name: "ok", players: []string{"a", "b", "c", "d", "e"}, skulls: 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGameBoard(SmallMap, tt.players, tt.skulls, rand.New(rand.NewSource(1)))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBoardIsFilledAtStart(t *testing.T) {
	b := newTestBoard(t)
	for _, sq := range b.Map.Squares() {
		if sq.Spawn && len(sq.Weapons) != WeaponsPerSpawn {
			t.Fatalf("spawn %s has %d weapons", sq.Coords, len(sq.Weapons))
		}
		if !sq.Spawn && sq.Ammo == nil {
			t.Fatalf("square %s has no ammo card", sq.Coords)
		}
	}
}

func TestNextPlayerTurnSkipsDisconnected(t *testing.T) {
	b := newTestBoard(t)
	player(t, b, "bruno").Connected = false

	b.NextPlayerTurn()
	if got := b.CurrentPlayer().Nickname; got != "carla" {
		t.Fatalf("current = %s, want carla", got)
	}
	if player(t, b, "anna").TurnStatus != Idle {
		t.Fatalf("anna should be idle after her turn")
	}
	if got := b.Queue(); !reflect.DeepEqual(got, []string{"carla", "anna", "bruno"}) {
		t.Fatalf("queue = %v", got)
	}
}

func TestFrenzyCounter(t *testing.T) {
	b := newTestBoard(t)
	b.StartFrenzy()
	if b.TurnsLeftInFrenzy != 3 {
		t.Fatalf("TurnsLeftInFrenzy = %d, want 3", b.TurnsLeftInFrenzy)
	}
	var seen []int
	for b.CanGameContinue() {
		b.NextPlayerTurn()
		seen = append(seen, b.TurnsLeftInFrenzy)
	}
	if want := []int{2, 1, 0, -1}; !reflect.DeepEqual(seen, want) {
		t.Fatalf("frenzy turns = %v, want %v", seen, want)
	}

	// a skipped seat still consumes a frenzy turn
	b = newTestBoard(t)
	b.StartFrenzy()
	player(t, b, "bruno").Connected = false
	b.NextPlayerTurn()
	if b.TurnsLeftInFrenzy != 1 {
		t.Fatalf("TurnsLeftInFrenzy = %d, want 1", b.TurnsLeftInFrenzy)
	}
}

func TestStartFrenzyStatuses(t *testing.T) {
	b := newTestBoard(t)
	_, _ = player(t, b, "carla").Board.Damage.AddDamage("anna", 1)
	b.StartFrenzy()

	want := map[string]StatusKind{"anna": FrenzyAfter, "bruno": FrenzyBefore, "carla": FrenzyBefore}
	for nick, kind := range want {
		if got := player(t, b, nick).Status.Kind(); got != kind {
			t.Fatalf("%s status = %s, want %s", nick, got, kind)
		}
	}
	if !player(t, b, "anna").Board.Flipped || player(t, b, "carla").Board.Flipped {
		t.Fatalf("only undamaged boards flip")
	}

	b.SetCorrectDamageStatus(player(t, b, "bruno"))
	if player(t, b, "bruno").Status.Kind() != FrenzyBefore {
		t.Fatalf("frenzy status must only be refilled")
	}
}

func TestSetCorrectDamageStatus(t *testing.T) {
	b := newTestBoard(t)
	bruno := player(t, b, "bruno")
	bruno.Board.Damage.Damage = repeat("anna", 4)
	b.SetCorrectDamageStatus(bruno)
	if bruno.Status.Kind() != MediumDamage {
		t.Fatalf("status = %s", bruno.Status.Kind())
	}
	bruno.TurnStatus = PreSpawn
	b.SetCorrectDamageStatus(bruno)
	if bruno.Status.Kind() != LowDamage {
		t.Fatalf("pre-spawn status = %s", bruno.Status.Kind())
	}
}

func TestSpawn(t *testing.T) {
	b := newTestBoard(t)
	anna := player(t, b, "anna")
	anna.TurnStatus = PreSpawn
	b.DrawSpawnPowerups(anna)
	if len(anna.Board.Powerups) != FirstSpawnDraw {
		t.Fatalf("spawn draw = %d", len(anna.Board.Powerups))
	}
	anna.Board.Powerups[1] = NewPowerup(Newton, AmmoYellow)

	pos, err := b.Spawn(anna, 1)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if pos != c(2, 3) || anna.TurnStatus != YourTurn || len(anna.Board.Powerups) != 1 {
		t.Fatalf("spawned at %s status %s with %d powerups", pos, anna.TurnStatus, len(anna.Board.Powerups))
	}
	if _, err := b.Spawn(anna, 5); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("Spawn(5) err = %v", err)
	}
}

func TestSpawnDrawIsBounded(t *testing.T) {
	b := newTestBoard(t)
	anna := player(t, b, "anna")
	anna.TurnStatus = PreSpawn
	anna.Board.Powerups = []*Powerup{
		NewPowerup(Newton, AmmoRed),
		NewPowerup(Newton, AmmoBlue),
		NewPowerup(Teleporter, AmmoYellow),
	}

	b.DrawSpawnPowerups(anna)
	if len(anna.Board.Powerups) != MaxPowerups+1 {
		t.Fatalf("spawn draw over a full hand = %d, want %d", len(anna.Board.Powerups), MaxPowerups+1)
	}
	b.DrawSpawnPowerups(anna)
	if len(anna.Board.Powerups) != MaxPowerups+1 {
		t.Fatalf("second spawn draw = %d", len(anna.Board.Powerups))
	}

	b.ReturnSpawnDraw(anna)
	if len(anna.Board.Powerups) != MaxPowerups {
		t.Fatalf("after returning the draw = %d", len(anna.Board.Powerups))
	}
	if anna.Board.Powerups[2].Def != Teleporter {
		t.Fatalf("the cards held before the draw must stay, got %s", anna.Board.Powerups[2])
	}
}

func TestPay(t *testing.T) {
	tests := []struct {
		name     string
		ammo     Ammo
		powerups []AmmoType
		price    Price
		indexes  []int
		wantErr  error
		wantAmmo Ammo
		wantLeft []AmmoType
	}{
		{
			name: "ammo only", ammo: Ammo{1, 1, 1}, price: Price{AmmoRed, AmmoBlue},
			wantAmmo: Ammo{0, 0, 1},
		},
		{
			name: "powerup covers red", ammo: Ammo{0, 1, 1}, powerups: []AmmoType{AmmoRed}, price: Price{AmmoRed},
			indexes: []int{0}, wantAmmo: Ammo{0, 1, 1}, wantLeft: []AmmoType{},
		},
		{
			name: "highest index first", ammo: Ammo{}, powerups: []AmmoType{AmmoRed, AmmoYellow, AmmoBlue},
			price: Price{AmmoRed, AmmoBlue}, indexes: []int{0, 2}, wantAmmo: Ammo{}, wantLeft: []AmmoType{AmmoYellow},
		},
		{
			name: "not enough", ammo: Ammo{0, 1, 1}, price: Price{AmmoRed},
			wantErr: ErrNotEnoughAmmo, wantAmmo: Ammo{0, 1, 1},
		},
		{
			name: "powerup not in price", ammo: Ammo{1, 1, 1}, powerups: []AmmoType{AmmoYellow}, price: Price{AmmoRed},
			indexes: []int{0}, wantErr: ErrInvalidChoice, wantAmmo: Ammo{1, 1, 1}, wantLeft: []AmmoType{AmmoYellow},
		},
		{
			name: "duplicate index", ammo: Ammo{}, powerups: []AmmoType{AmmoRed}, price: Price{AmmoRed, AmmoRed},
			indexes: []int{0, 0}, wantErr: ErrInvalidIndex, wantAmmo: Ammo{}, wantLeft: []AmmoType{AmmoRed},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBoard(t)
			anna := player(t, b, "anna")
			anna.Board.Ammo = tt.ammo
			for _, a := range tt.powerups {
				give(t, anna, Teleporter, a)
			}

			err := b.Pay(anna, tt.price, tt.indexes)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Pay err = %v, want %v", err, tt.wantErr)
			}
			if anna.Board.Ammo != tt.wantAmmo {
				t.Fatalf("ammo = %v, want %v", anna.Board.Ammo, tt.wantAmmo)
			}
			if tt.wantLeft != nil {
				got := []AmmoType(anna.Board.PowerupAmmo())
				if !reflect.DeepEqual(got, tt.wantLeft) {
					t.Fatalf("powerups left = %v, want %v", got, tt.wantLeft)
				}
			}
		})
	}
}

func TestGrabAndSwap(t *testing.T) {
	b := newTestBoard(t)
	anna := place(t, b, "anna", 1, 1)
	sq, _ := b.Map.Square(c(1, 1))
	card := sq.Ammo
	anna.Board.Ammo = Ammo{}
	if !b.GrabAmmo(anna) {
		t.Fatalf("GrabAmmo() = false")
	}
	if anna.Board.Ammo.Total() != len(card.Ammo) || sq.Ammo != nil {
		t.Fatalf("ammo = %v from card %v", anna.Board.Ammo, card.Ammo)
	}
	if b.GrabAmmo(anna) {
		t.Fatalf("second grab on an empty square should fail")
	}
	b.RefillSquares()
	if sq.Ammo == nil {
		t.Fatalf("square not refilled")
	}

	b.Map.MovePlayerTo(anna, c(1, 0))
	anna.Board.Ammo = Ammo{3, 3, 3}
	if got := b.GrabbableWeapons(anna); len(got) != WeaponsPerSpawn {
		t.Fatalf("grabbable = %v", got)
	}
	for i := 0; i < MaxWeapons; i++ {
		if err := b.GrabWeapon(anna, 0); err != nil {
			t.Fatalf("GrabWeapon: %v", err)
		}
	}
	b.RefillSquares()
	if err := b.GrabWeapon(anna, 0); !errors.Is(err, ErrInventoryFull) {
		t.Fatalf("GrabWeapon on full inventory err = %v", err)
	}

	old := anna.Board.Weapons[0]
	old.Unload()
	onSquare := b.SquareWeapons(anna)[0]
	if err := b.SwapWeapon(anna, 0, 0); err != nil {
		t.Fatalf("SwapWeapon: %v", err)
	}
	if b.SquareWeapons(anna)[0] != old || anna.Board.Weapons[len(anna.Board.Weapons)-1] != onSquare {
		t.Fatalf("swap did not exchange weapons")
	}
	if !onSquare.Loaded {
		t.Fatalf("grabbed weapon must be loaded")
	}
}
