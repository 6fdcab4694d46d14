package domain

import (
	"encoding/json"
	"testing"
)

func TestLowestAvailableSeat(t *testing.T) {
	tests := []struct {
		name  string
		seats [MaxPlayers]string
		want  int
	}{
		{name: "all empty", seats: [MaxPlayers]string{}, want: 0},
		{name: "first taken", seats: [MaxPlayers]string{"u1"}, want: 1},
		{name: "gap is reused", seats: [MaxPlayers]string{"u1", "", "u3"}, want: 1},
		{name: "full returns minus one", seats: [MaxPlayers]string{"u1", "u2", "u3", "u4", "u5"}, want: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LowestAvailableSeat(&tt.seats); got != tt.want {
				t.Fatalf("LowestAvailableSeat() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComputeLabel(t *testing.T) {
	state := NewMatchState()
	state.Seat(&Member{UserID: "a", Nickname: "anna"})
	state.Seat(&Member{UserID: "b", Nickname: "bruno"})
	label := ComputeLabel(state)
	if !label.Open || label.Game != "adrenaline" || label.Phase != string(PhaseLobby) || label.Players != 2 {
		t.Fatalf("unexpected label: %+v", label)
	}

	// full lobby
	state.Seat(&Member{UserID: "c", Nickname: "carla"})
	state.Seat(&Member{UserID: "d", Nickname: "dario"})
	state.Seat(&Member{UserID: "e", Nickname: "elena"})
	label = ComputeLabel(state)
	if label.Open {
		t.Fatalf("expected label.Open=false for full lobby")
	}

	state.Phase = PhasePlaying
	state.Unseat("e")
	if ComputeLabel(state).Open {
		t.Fatalf("expected label.Open=false while playing")
	}

	if _, err := json.Marshal(label); err != nil {
		t.Fatalf("label should marshal: %v", err)
	}
}
