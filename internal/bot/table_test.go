package bot

import (
	"math/rand"
	"testing"

	"adrenaline/internal/app"
)

func TestTablePlaysMatchToTheEnd(t *testing.T) {
	tests := []struct {
		name   string
		levels []BotLevel
		seed   int64
	}{
		{name: "aggressive", levels: []BotLevel{LevelAggressive, LevelAggressive, LevelAggressive}, seed: 11},
		{name: "mixed", levels: []BotLevel{LevelAggressive, LevelRandom, LevelAggressive}, seed: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t, tt.seed)
			rng := rand.New(rand.NewSource(tt.seed))
			agents := make([]*Agent, len(names))
			for i, name := range names {
				a, err := NewAgent("bot-"+name, name, tt.levels[i], rng)
				if err != nil {
					t.Fatalf("NewAgent failed: %v", err)
				}
				agents[i] = a
			}

			table := NewTable(noopLogger{}, e, agents, rng)
			var ended *app.MatchEndedPayload
			table.OnEvent = func(ev app.Event) {
				if ev.Kind == app.EventMatchEnded {
					p := ev.Payload.(app.MatchEndedPayload)
					ended = &p
				}
			}

			steps, err := table.Run(200000)
			if err != nil {
				t.Fatalf("Run failed after %d answers: %v", steps, err)
			}
			if !e.Ended() || e.Aborted() {
				t.Fatalf("Expected a finished match, ended=%v aborted=%v", e.Ended(), e.Aborted())
			}
			if ended == nil {
				t.Fatal("match_ended was never emitted")
			}

			seen := make(map[string]bool)
			for _, slot := range e.Leaderboard() {
				for _, p := range slot.Players {
					seen[p] = true
				}
			}
			for _, name := range names {
				if !seen[name] {
					t.Fatalf("%s missing from leaderboard %+v", name, e.Leaderboard())
				}
			}
			if e.Board().RemainingSkulls() != 0 {
				t.Fatalf("Expected skulls to run out, %d left", e.Board().RemainingSkulls())
			}
		})
	}
}
