package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestBudgetIsSpentExactlyOncePerTurn(t *testing.T) {
	for _, kind := range []StatusKind{LowDamage, MediumDamage, HighDamage, FrenzyBefore, FrenzyAfter} {
		t.Run(kind.String(), func(t *testing.T) {
			s := NewDamageStatus(kind)
			spent := 0
			for s.Remaining() > 0 {
				if err := s.Select(0); err != nil {
					t.Fatalf("Select: %v", err)
				}
				for s.NextStep() != ActionEnd {
				}
				spent++
			}
			if spent != s.ActionsPerTurn() {
				t.Fatalf("spent %d actions, want %d", spent, s.ActionsPerTurn())
			}
			expectInvariant(t, func() { _ = s.Select(0) })

			s.Refill()
			if s.Remaining() != s.ActionsPerTurn() || s.Cursor() != -1 {
				t.Fatalf("after refill remaining=%d cursor=%d", s.Remaining(), s.Cursor())
			}
		})
	}
}

func TestLowDamageGetsThreeActions(t *testing.T) {
	if got := NewDamageStatus(LowDamage).ActionsPerTurn(); got != 3 {
		t.Fatalf("LowDamage actions per turn = %d, want 3", got)
	}
}

func TestMacroActionSteps(t *testing.T) {
	tests := []struct {
		name   string
		kind   StatusKind
		action int
		want   []ActionKind
	}{
		{name: "low move", kind: LowDamage, action: 0, want: []ActionKind{ActionMove, ActionEnd}},
		{name: "low grab", kind: LowDamage, action: 1, want: []ActionKind{ActionMove, ActionGrab, ActionEnd}},
		{name: "low shoot", kind: LowDamage, action: 2, want: []ActionKind{ActionShoot, ActionEnd}},
		{name: "high shoot moves first", kind: HighDamage, action: 2, want: []ActionKind{ActionMove, ActionShoot, ActionEnd}},
		{name: "frenzy shoot reloads", kind: FrenzyAfter, action: 0, want: []ActionKind{ActionMove, ActionReload, ActionShoot, ActionEnd}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewDamageStatus(tt.kind)
			if err := s.Select(tt.action); err != nil {
				t.Fatalf("Select: %v", err)
			}
			var got []ActionKind
			for {
				step := s.NextStep()
				got = append(got, step)
				if step == ActionEnd {
					break
				}
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("steps = %v, want %v", got, tt.want)
			}
			if s.Cursor() != -1 {
				t.Fatalf("cursor after END = %d, want -1", s.Cursor())
			}
		})
	}
}

func TestDamageStatusRejectsBadIndex(t *testing.T) {
	s := NewDamageStatus(FrenzyAfter)
	if err := s.Select(2); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("Select(2) err = %v, want ErrInvalidIndex", err)
	}
	if s.Remaining() != FrenzyAfterActionsPerTurn {
		t.Fatalf("budget changed on a bad index")
	}
	expectInvariant(t, func() { s.NextStep() })
}

func TestStatusForDamage(t *testing.T) {
	tests := []struct {
		tokens int
		want   StatusKind
	}{
		{0, LowDamage}, {2, LowDamage}, {3, MediumDamage}, {5, MediumDamage}, {6, HighDamage}, {10, HighDamage},
	}
	for _, tt := range tests {
		if got := StatusForDamage(tt.tokens); got != tt.want {
			t.Fatalf("StatusForDamage(%d) = %s, want %s", tt.tokens, got, tt.want)
		}
	}
}

func TestDrainCancelsTurn(t *testing.T) {
	s := NewDamageStatus(MediumDamage)
	_ = s.Select(1)
	s.Drain()
	if s.Remaining() != 0 || s.Cursor() != -1 {
		t.Fatalf("after drain remaining=%d cursor=%d", s.Remaining(), s.Cursor())
	}
}
