package bot

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/spf13/afero"

	"adrenaline/internal/app"
	"adrenaline/internal/domain"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

var names = []string{"Sprog", "Banshee", "Dozer"}

func newEngine(t *testing.T, seed int64) *app.Engine {
	t.Helper()
	e, err := app.NewEngine(noopLogger{}, app.Config{Players: names, Skulls: 5, Frenzy: true}, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return e
}

func TestNewBrainLevels(t *testing.T) {
	for _, level := range []BotLevel{LevelRandom, LevelAggressive} {
		if _, err := NewBrain(level, nil); err != nil {
			t.Fatalf("NewBrain(%s) failed: %v", level, err)
		}
	}
	if _, err := NewBrain("genius", nil); err == nil {
		t.Fatal("Expected error for unknown level")
	}
}

func TestAgentAnswersSpawn(t *testing.T) {
	for _, level := range []BotLevel{LevelRandom, LevelAggressive} {
		t.Run(string(level), func(t *testing.T) {
			e := newEngine(t, 7)
			if _, err := e.Start(); err != nil {
				t.Fatalf("Start failed: %v", err)
			}
			ev, ok := e.Pending("Sprog")
			if !ok || ev.Kind != app.EventAskSpawn {
				t.Fatalf("Expected a spawn question, got %v", ev.Kind)
			}

			agent, err := NewAgent("bot-sprog", "Sprog", level, rand.New(rand.NewSource(1)))
			if err != nil {
				t.Fatalf("NewAgent failed: %v", err)
			}
			m, err := agent.Act(e.Board(), ev)
			if err != nil {
				t.Fatalf("Act failed: %v", err)
			}
			if m.Kind != app.MsgSpawn || m.Player != "Sprog" {
				t.Fatalf("Unexpected answer %+v", m)
			}
			if _, err := e.ProcessEvent(m); err != nil {
				t.Fatalf("Engine rejected %+v: %v", m, err)
			}
			if next, ok := e.Pending("Sprog"); !ok || next.Kind != app.EventAskAction {
				t.Fatalf("Expected an action question after spawning, got %v", next.Kind)
			}
		})
	}
}

func TestAgentRejectsBroadcasts(t *testing.T) {
	e := newEngine(t, 1)
	agent, _ := NewAgent("bot-sprog", "Sprog", LevelRandom, nil)
	if _, err := agent.Act(e.Board(), app.Event{Kind: app.EventBoardSnapshot}); !errors.Is(err, ErrNotAnAsk) {
		t.Fatalf("Expected ErrNotAnAsk, got %v", err)
	}
	stranger, _ := NewAgent("bot-x", "Nobody", LevelRandom, nil)
	if _, err := stranger.Act(e.Board(), app.Event{Kind: app.EventAskAction}); !errors.Is(err, ErrUnknownSeat) {
		t.Fatalf("Expected ErrUnknownSeat, got %v", err)
	}
}

func TestPayMessage(t *testing.T) {
	p := domain.NewPlayer("Sprog")
	p.Board.Ammo = domain.Ammo{0, 1, 0}
	p.Board.Powerups = []*domain.Powerup{
		domain.NewPowerup(domain.Teleporter, domain.AmmoYellow),
		domain.NewPowerup(domain.Newton, domain.AmmoRed),
	}

	tests := []struct {
		name     string
		ask      app.AskPayload
		powerups []int
		err      error
	}{
		{
			name: "ammo suffices",
			ask:  app.AskPayload{Price: domain.Price{domain.AmmoBlue}, CanAffordWithAmmo: true},
		},
		{
			name:     "powerup covers the rest",
			ask:      app.AskPayload{Price: domain.Price{domain.AmmoRed, domain.AmmoBlue}},
			powerups: []int{1},
		},
		{
			name:     "every matching card is spent",
			ask:      app.AskPayload{Price: domain.Price{domain.AmmoRed, domain.AmmoYellow}},
			powerups: []int{0, 1},
		},
		{
			name: "short",
			ask:  app.AskPayload{Price: domain.Price{domain.AmmoRed, domain.AmmoRed}},
			err:  ErrCannotPay,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := payMessage(p, tt.ask)
			if !errors.Is(err, tt.err) {
				t.Fatalf("Expected error %v, got %v", tt.err, err)
			}
			if err != nil {
				return
			}
			if m.Kind != app.MsgPayment || !m.Price.Equal(tt.ask.Price) {
				t.Fatalf("Unexpected payment %+v", m)
			}
			if len(m.Powerups) != len(tt.powerups) {
				t.Fatalf("Expected powerups %v, got %v", tt.powerups, m.Powerups)
			}
			for i := range tt.powerups {
				if m.Powerups[i] != tt.powerups[i] {
					t.Fatalf("Expected powerups %v, got %v", tt.powerups, m.Powerups)
				}
			}
		})
	}
}

func TestAggressiveBotFocusesDamagedTarget(t *testing.T) {
	b, err := domain.NewGameBoard(domain.SmallMap, names, 5, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewGameBoard failed: %v", err)
	}
	banshee, _ := b.Player("Banshee")
	dozer, _ := b.Player("Dozer")
	banshee.Board.Damage.Damage = []string{"Sprog"}
	dozer.Board.Damage.Damage = []string{"Sprog", "Sprog", "Banshee"}

	bot := &AggressiveBot{Tuning: DefaultTuning, rng: rand.New(rand.NewSource(1))}
	if got := bot.bestTarget(b, []string{"Banshee", "Dozer"}); got != 1 {
		t.Fatalf("Expected Dozer (1), got %d", got)
	}
	if got := bot.bestTarget(b, []string{"basic effect", "with rocket jump"}); got != 0 {
		t.Fatalf("Expected first option for non-player options, got %d", got)
	}
}

func TestAggressiveBotDiscards(t *testing.T) {
	p := domain.NewPlayer("Sprog")
	p.Board.Powerups = []*domain.Powerup{
		domain.NewPowerup(domain.TagbackGrenade, domain.AmmoRed),
		domain.NewPowerup(domain.Teleporter, domain.AmmoBlue),
	}
	if got := spawnDiscard(p); got != 1 {
		t.Fatalf("Expected to spawn on the teleporter, got %d", got)
	}

	p.Board.Weapons = []*domain.Weapon{
		domain.NewWeapon(domain.LockRifle),
		domain.NewWeapon(domain.Whisper),
	}
	p.Board.Weapons[1].Unload()
	if got := swapDiscard(p); got != 1 {
		t.Fatalf("Expected to drop the unloaded weapon, got %d", got)
	}
}

func TestIdentities(t *testing.T) {
	t.Cleanup(func() {
		poolMu.Lock()
		pool = defaultIdentities
		poolMu.Unlock()
	})

	if !IsBot(GetBotIdentity(0).UserID) {
		t.Fatal("Default pool should be recognised")
	}
	if IsBot("user-1") {
		t.Fatal("Human user reported as bot")
	}

	fs := afero.NewMemMapFs()
	data := `[{"user_id": "b1", "display_name": "One"}, {"user_id": "b2", "display_name": "Two", "level": "aggressive"}]`
	if err := afero.WriteFile(fs, "bots.json", []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := LoadIdentities(fs, "bots.json"); err != nil {
		t.Fatalf("LoadIdentities failed: %v", err)
	}
	if got := GetBotIdentity(3); got.UserID != "b2" || got.Level != LevelAggressive {
		t.Fatalf("Expected b2 for index 3, got %+v", got)
	}
	if got, _ := GetBotConfig("b1"); got.Level != LevelRandom {
		t.Fatalf("Expected default level, got %q", got.Level)
	}
	if IsBot("bot-sprog") {
		t.Fatal("Loaded pool should replace the defaults")
	}

	if err := LoadIdentities(fs, "missing.json"); err == nil {
		t.Fatal("Expected error for missing file")
	}
}
