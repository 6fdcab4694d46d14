package domain

import (
	"reflect"
	"testing"
)

func TestScoreDeadPlayer(t *testing.T) {
	b := newTestBoard(t)
	anna := place(t, b, "anna", 1, 0)
	bruno := place(t, b, "bruno", 1, 1)
	carla := place(t, b, "carla", 1, 2)
	carla.Board.Damage.Damage = append(repeat("bruno", 4), repeat("anna", 6)...)

	dead := b.ScoreDeadPlayers()
	if len(dead) != 1 || dead[0] != carla {
		t.Fatalf("dead = %v", dead)
	}
	if anna.Board.Points != 8 || bruno.Board.Points != 7 {
		t.Fatalf("points anna=%d bruno=%d, want 8 and 7", anna.Board.Points, bruno.Board.Points)
	}
	if b.RemainingSkulls() != 4 {
		t.Fatalf("skulls = %d, want 4", b.RemainingSkulls())
	}
	if want := []KillShot{{Shooter: "anna"}}; !reflect.DeepEqual(b.KillShots, want) {
		t.Fatalf("killshots = %v", b.KillShots)
	}
	if carla.Board.Deaths != 1 || len(carla.Board.Damage.Damage) != 0 {
		t.Fatalf("deaths=%d damage=%v", carla.Board.Deaths, carla.Board.Damage.Damage)
	}
	if carla.TurnStatus != Dead || carla.Status.Kind() != LowDamage {
		t.Fatalf("turn status %s, damage status %s", carla.TurnStatus, carla.Status.Kind())
	}
	if _, ok := b.Map.Position(carla); ok {
		t.Fatalf("dead player still on the map")
	}
	if b.KillShotInThisTurn {
		t.Fatalf("double kill window must close after scoring")
	}
}

func TestOverkillGivesRevengeMark(t *testing.T) {
	b := newTestBoard(t)
	anna := place(t, b, "anna", 1, 0)
	carla := place(t, b, "carla", 1, 2)
	carla.Board.Damage.Damage = repeat("anna", MaxDamageTokens)

	ks := b.ScoreDeadPlayer(carla)
	if !ks.Overkill || ks.Shooter != "anna" {
		t.Fatalf("killshot = %+v", ks)
	}
	if got := anna.Board.Damage.Marks["carla"]; got != 1 {
		t.Fatalf("revenge marks = %d, want 1", got)
	}
	if got := b.KillShotTally(); !reflect.DeepEqual(got, []ShooterTally{{Shooter: "anna", Tokens: 2}}) {
		t.Fatalf("tally = %v", got)
	}
}

func TestDoubleKill(t *testing.T) {
	b := newTestBoard(t)
	anna := place(t, b, "anna", 1, 0)
	bruno := place(t, b, "bruno", 1, 1)
	carla := place(t, b, "carla", 1, 2)
	bruno.Board.Damage.Damage = repeat("anna", DeathDamage)
	carla.Board.Damage.Damage = repeat("anna", DeathDamage)

	b.ScoreDeadPlayers()
	if !reflect.DeepEqual(b.DoubleKills, []string{"anna"}) {
		t.Fatalf("double kills = %v", b.DoubleKills)
	}
	// 8+1 per board plus the double kill
	if anna.Board.Points != 19 {
		t.Fatalf("points = %d, want 19", anna.Board.Points)
	}
	if b.RemainingSkulls() != 3 {
		t.Fatalf("skulls = %d, want 3", b.RemainingSkulls())
	}
}

func TestKillByOtherPlayerIsNotDoubleKill(t *testing.T) {
	b := newTestBoard(t)
	place(t, b, "anna", 1, 0)
	bruno := place(t, b, "bruno", 1, 1)
	carla := place(t, b, "carla", 1, 2)
	bruno.Board.Damage.Damage = repeat("carla", DeathDamage)
	carla.Board.Damage.Damage = repeat("bruno", DeathDamage)

	b.ScoreDeadPlayers()
	if len(b.DoubleKills) != 0 {
		t.Fatalf("double kills = %v", b.DoubleKills)
	}
}

func TestPointsShiftWithDeaths(t *testing.T) {
	b := newTestBoard(t)
	anna := place(t, b, "anna", 1, 0)
	carla := place(t, b, "carla", 1, 2)
	carla.Board.Deaths = 2
	carla.Board.Damage.Damage = repeat("anna", DeathDamage)

	b.ScoreDeadPlayer(carla)
	if anna.Board.Points != 5 {
		t.Fatalf("points = %d, want 4+1", anna.Board.Points)
	}
}

func TestFlippedBoardInFrenzy(t *testing.T) {
	b := newTestBoard(t)
	anna := place(t, b, "anna", 1, 0)
	bruno := place(t, b, "bruno", 1, 1)
	carla := place(t, b, "carla", 1, 2)
	carla.Board.Damage.Damage = append(repeat("bruno", 4), repeat("anna", 6)...)
	b.StartFrenzy()
	carla.Board.Flipped = true
	kind := carla.Status.Kind()

	b.ScoreDeadPlayer(carla)
	if anna.Board.Points != 2 || bruno.Board.Points != 1 {
		t.Fatalf("points anna=%d bruno=%d, want 2 and 1", anna.Board.Points, bruno.Board.Points)
	}
	if !carla.Board.Flipped || carla.Status.Kind() != kind {
		t.Fatalf("flipped=%v status=%s", carla.Board.Flipped, carla.Status.Kind())
	}
}

func TestSkullsDoNotGoNegative(t *testing.T) {
	b := newTestBoard(t)
	anna := player(t, b, "anna")
	for i := 0; i < 7; i++ {
		b.AddKillShot(anna, false)
	}
	if b.RemainingSkulls() != 0 || len(b.KillShots) != 7 {
		t.Fatalf("skulls=%d killshots=%d", b.RemainingSkulls(), len(b.KillShots))
	}
}

func TestRanking(t *testing.T) {
	tests := []struct {
		name      string
		points    map[string]int
		killShots []KillShot
		want      []LeaderboardSlot
	}{
		{
			name:   "distinct points",
			points: map[string]int{"anna": 3, "bruno": 9, "carla": 6},
			want: []LeaderboardSlot{
				{Players: []string{"bruno"}, Points: 9},
				{Players: []string{"carla"}, Points: 6},
				{Players: []string{"anna"}, Points: 3},
			},
		},
		{
			name:      "tie broken by killshot track",
			points:    map[string]int{"anna": 10, "bruno": 10, "carla": 12},
			killShots: []KillShot{{Shooter: "bruno"}, {Shooter: "anna"}},
			want: []LeaderboardSlot{
				{Players: []string{"carla"}, Points: 12},
				{Players: []string{"bruno"}, Points: 10},
				{Players: []string{"anna"}, Points: 10},
			},
		},
		{
			name:      "players off the track stay tied",
			points:    map[string]int{"anna": 5, "bruno": 5, "carla": 5},
			killShots: []KillShot{{Shooter: "carla"}, {Shooter: "carla"}},
			want: []LeaderboardSlot{
				{Players: []string{"carla"}, Points: 5},
				{Players: []string{"anna", "bruno"}, Points: 5},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBoard(t)
			for n, pts := range tt.points {
				player(t, b, n).Board.Points = pts
			}
			b.KillShots = tt.killShots
			if got := b.Ranking(); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Ranking() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEndGame(t *testing.T) {
	b := newTestBoard(t)
	player(t, b, "carla").Board.Damage.Damage = damageFrom("anna")
	b.KillShots = []KillShot{{Shooter: "anna"}, {Shooter: "bruno", Overkill: true}}

	want := []LeaderboardSlot{
		{Players: []string{"anna"}, Points: 15},
		{Players: []string{"bruno"}, Points: 8},
		{Players: []string{"carla"}, Points: 0},
	}
	if got := b.EndGame(); !reflect.DeepEqual(got, want) {
		t.Fatalf("EndGame() = %+v, want %+v", got, want)
	}
}
