package cmd

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"adrenaline/internal/app"
	"adrenaline/internal/bot"
	"adrenaline/internal/config"
	"adrenaline/internal/domain"
	"adrenaline/internal/ports"
	"adrenaline/internal/ports/bus"
)

type simOptions struct {
	players  int
	seed     int64
	level    string
	maxSteps int
	watch    bool
}

var simOpts simOptions

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play a bot-only match",
	Long: `Seat bots from the bot pool and play one full match with the engine the
server runs, then print the final leaderboard.

With --watch the command keeps running and plays a new match every time
the config file is saved.

Examples:
  adrenaline simulate
  adrenaline simulate --players 5 --level random --seed 42
  adrenaline simulate --watch -v`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func runSimulate(cmd *cobra.Command, args []string) error {
	fs := afero.NewOsFs()
	logger := newLogger(cmd)
	out := cmd.OutOrStdout()

	cfg := config.Default()
	if exists, _ := afero.Exists(fs, configPath); exists {
		loaded, err := loadConfig(fs, configPath)
		if err != nil {
			return err
		}
		cfg = *loaded
	}
	if err := simulate(cmd.Context(), out, logger, cfg, simOpts); err != nil {
		return err
	}
	if !simOpts.watch {
		return nil
	}

	fmt.Fprintf(out, "Watching %s, press Ctrl+C to stop\n", configPath)
	err := config.Watch(cmd.Context(), fs, configPath, func(c *config.GameConfig, err error) {
		if err == nil {
			err = config.ApplyEnv(c, config.EnvFromOS())
		}
		if err != nil {
			logger.Warn("Simulate: ignoring config change: %v", err)
			return
		}
		if err := simulate(cmd.Context(), out, logger, *c, simOpts); err != nil {
			logger.Error("Simulate: %v", err)
		}
	})
	if err != nil {
		return err
	}
	<-cmd.Context().Done()
	return nil
}

// simulate plays one match and prints its summary once the end-of-match
// notification comes back through the bus.
func simulate(ctx context.Context, out io.Writer, logger runtime.Logger, cfg config.GameConfig, opts simOptions) error {
	if opts.players < domain.MinPlayers || opts.players > domain.MaxPlayers {
		return fmt.Errorf("players must be between %d and %d, got %d", domain.MinPlayers, domain.MaxPlayers, opts.players)
	}
	level := opts.level
	if level == "" {
		level = cfg.BotLevel
	}
	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	agents, userIDs, err := seatBots(opts.players, bot.BotLevel(level), rng)
	if err != nil {
		return err
	}
	names := make([]string, len(agents))
	for i, a := range agents {
		names[i] = a.Name
	}

	engine, err := app.NewEngine(logger, app.Config{Players: names, Skulls: cfg.Skulls, Frenzy: cfg.Frenzy}, rng)
	if err != nil {
		return err
	}

	matchBus := bus.New(logger)
	defer matchBus.Close()
	done := make(chan struct{})
	if err := matchBus.Subscribe(ctx, func(ctx context.Context, n ports.MatchNotification) error {
		defer close(done)
		printSummary(out, n)
		return nil
	}); err != nil {
		return err
	}

	table := bot.NewTable(logger, engine, agents, rng)
	kills, frenzy := 0, false
	table.OnEvent = func(ev app.Event) {
		switch ev.Kind {
		case app.EventKillShot:
			kills++
		case app.EventFrenzyStarted:
			frenzy = true
		}
	}
	steps, runErr := table.Run(opts.maxSteps)

	n := ports.MatchNotification{MatchID: uuid.NewString(), Players: names, Occurred: time.Now().UTC()}
	switch {
	case engine.Aborted():
		n.Kind = ports.MatchAborted
		n.Reason = runErr.Error()
	case engine.Ended():
		n.Kind = ports.MatchEnded
		n.Results = leaderboardResults(engine.Leaderboard(), userIDs)
	default:
		return fmt.Errorf("match with seed %d: %w", seed, runErr)
	}

	fmt.Fprintf(out, "Match %s (seed %d, %s bots): %d answers, %d kill shots, frenzy %t\n", n.MatchID, seed, level, steps, kills, frenzy)
	if err := matchBus.Publish(ctx, n); err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// seatBots creates one agent per seat from the bot pool. Names are title
// cased usernames, numbered when the pool repeats.
func seatBots(players int, level bot.BotLevel, rng *rand.Rand) ([]*bot.Agent, map[string]string, error) {
	caser := cases.Title(language.English)
	agents := make([]*bot.Agent, 0, players)
	userIDs := make(map[string]string, players)
	for i := 0; i < players; i++ {
		identity := bot.GetBotIdentity(i)
		name := caser.String(identity.Username)
		if _, taken := userIDs[name]; taken {
			name = fmt.Sprintf("%s%d", name, i+1)
		}
		agent, err := bot.NewAgent(identity.UserID, name, level, rng)
		if err != nil {
			return nil, nil, err
		}
		agents = append(agents, agent)
		userIDs[name] = identity.UserID
	}
	return agents, userIDs, nil
}

func leaderboardResults(leaderboard []domain.LeaderboardSlot, userIDs map[string]string) []ports.PlayerResult {
	var out []ports.PlayerResult
	for i, slot := range leaderboard {
		for _, name := range slot.Players {
			out = append(out, ports.PlayerResult{UserID: userIDs[name], Nickname: name, Points: slot.Points, Rank: i + 1, Bot: true})
		}
	}
	return out
}

func printSummary(out io.Writer, n ports.MatchNotification) {
	if n.Kind == ports.MatchAborted {
		fmt.Fprintf(out, "  aborted: %s\n", n.Reason)
		return
	}
	for _, r := range n.Results {
		fmt.Fprintf(out, "  %d. %-12s %3d pts\n", r.Rank, r.Nickname, r.Points)
	}
}

func init() {
	simulateCmd.Flags().IntVarP(&simOpts.players, "players", "p", 3, "number of bots at the table")
	simulateCmd.Flags().Int64Var(&simOpts.seed, "seed", 0, "random seed, 0 for a time-based one")
	simulateCmd.Flags().StringVar(&simOpts.level, "level", "", "bot level (random or aggressive), defaults to the config")
	simulateCmd.Flags().IntVar(&simOpts.maxSteps, "max-steps", 200000, "give up after this many answers")
	simulateCmd.Flags().BoolVarP(&simOpts.watch, "watch", "w", false, "play again whenever the config file changes")
	rootCmd.AddCommand(simulateCmd)
}
