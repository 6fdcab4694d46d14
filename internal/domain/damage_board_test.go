package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestAddDamageConvertsMarks(t *testing.T) {
	b := NewDamageBoard()
	if err := b.AddMarks("bruno", 2); err != nil {
		t.Fatalf("AddMarks: %v", err)
	}
	placed, err := b.AddDamage("bruno", 1)
	if err != nil {
		t.Fatalf("AddDamage: %v", err)
	}
	if placed != 3 {
		t.Fatalf("placed = %d, want 3", placed)
	}
	if b.Marks["bruno"] != 0 {
		t.Fatalf("marks left = %d, want 0", b.Marks["bruno"])
	}

	// marks alone never convert
	_ = b.AddMarks("carla", 1)
	if placed, _ := b.AddDamage("carla", 0); placed != 0 || b.Marks["carla"] != 1 {
		t.Fatalf("zero damage placed %d tokens, marks %d", placed, b.Marks["carla"])
	}
}

func TestDamageBoardLimits(t *testing.T) {
	b := NewDamageBoard()
	if _, err := b.AddDamage("x", -1); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("negative damage err = %v", err)
	}
	if err := b.AddMarks("x", -1); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("negative marks err = %v", err)
	}

	_ = b.AddMarks("x", 2)
	_ = b.AddMarks("x", 2)
	if b.Marks["x"] != MaxMarksPerShooter {
		t.Fatalf("marks = %d, want %d", b.Marks["x"], MaxMarksPerShooter)
	}

	placed, _ := b.AddDamage("y", 20)
	if placed != MaxDamageTokens || len(b.Damage) != MaxDamageTokens {
		t.Fatalf("placed %d, board %d, want %d", placed, len(b.Damage), MaxDamageTokens)
	}
}

func TestKillerAndOverkill(t *testing.T) {
	tests := []struct {
		name     string
		damage   []string
		dead     bool
		killer   string
		overkill bool
	}{
		{name: "alive", damage: repeat("b", 9)},
		{name: "killshot", damage: append(repeat("b", 9), "s"), dead: true, killer: "s"},
		{name: "overkill", damage: append(repeat("b", 9), "s", "s"), dead: true, killer: "s", overkill: true},
		{name: "overkill by someone else", damage: append(repeat("b", 9), "s", "b"), dead: true, killer: "s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := DamageBoard{Damage: tt.damage}
			if b.IsDead() != tt.dead {
				t.Fatalf("IsDead() = %v, want %v", b.IsDead(), tt.dead)
			}
			killer, _ := b.Killer()
			if killer != tt.killer {
				t.Fatalf("Killer() = %q, want %q", killer, tt.killer)
			}
			if b.IsOverkill() != tt.overkill {
				t.Fatalf("IsOverkill() = %v, want %v", b.IsOverkill(), tt.overkill)
			}
		})
	}
}

func TestTallyIsStable(t *testing.T) {
	tests := []struct {
		name   string
		damage []string
		want   []ShooterTally
	}{
		{
			name:   "ties keep first appearance",
			damage: damageFrom("c", "b", "b", "c"),
			want:   []ShooterTally{{"c", 2}, {"b", 2}},
		},
		{
			name:   "count wins over order",
			damage: damageFrom("b", "a", "a"),
			want:   []ShooterTally{{"a", 2}, {"b", 1}},
		},
		{
			name:   "three shooters",
			damage: damageFrom("a", "b", "b", "a", "c"),
			want:   []ShooterTally{{"a", 2}, {"b", 2}, {"c", 1}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := DamageBoard{Damage: tt.damage}
			if got := b.Tally(); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Tally() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFirstBlood(t *testing.T) {
	b := NewDamageBoard()
	if _, ok := b.FirstBlood(); ok {
		t.Fatalf("empty board has no first blood")
	}
	_, _ = b.AddDamage("carla", 1)
	_, _ = b.AddDamage("bruno", 2)
	if first, _ := b.FirstBlood(); first != "carla" {
		t.Fatalf("FirstBlood() = %q, want carla", first)
	}
	b.ClearDamage()
	if len(b.Damage) != 0 {
		t.Fatalf("ClearDamage left %d tokens", len(b.Damage))
	}
}
