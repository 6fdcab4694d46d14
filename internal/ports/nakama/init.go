package nakama

import (
	"context"
	"database/sql"
	"fmt"

	"adrenaline/internal/bot"
	"adrenaline/internal/config"
	"adrenaline/internal/ports"
	"adrenaline/internal/ports/bus"

	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/spf13/afero"
)

const botIdentitiesPath = "data/bot_identities.json"

// InitModule wires RPCs, hooks and match handlers for Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	fs := afero.NewOsFs()
	if err := loadConfig(ctx, logger, fs); err != nil {
		return err
	}

	if err := bot.LoadIdentities(fs, botIdentitiesPath); err != nil {
		logger.Warn("InitModule: Could not load bot identities, using defaults: %v", err)
	}
	bot.ProvisionBots(ctx, nk, logger)

	if err := nk.LeaderboardCreate(ctx, LeaderboardPoints, true, "desc", "incr", "", nil, true); err != nil {
		logger.Warn("InitModule: Could not create leaderboard %s: %v", LeaderboardPoints, err)
	}

	// Match results reach storage through the bus, off the match loop.
	matchBus := bus.New(logger)
	if err := matchBus.Subscribe(context.Background(), recordResults(NewNakamaStatsAdapter(nk), logger)); err != nil {
		return fmt.Errorf("subscribe to match notifications: %w", err)
	}

	if err := RegisterRPCs(initializer); err != nil {
		return err
	}
	if err := initializer.RegisterAfterAuthenticateDevice(AfterAuthenticateDevice); err != nil {
		return err
	}

	accounts := NewNakamaAccountAdapter(nk)
	if err := initializer.RegisterMatch(MatchNameAdrenaline, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return newMatchHandler(matchBus, accounts), nil
	}); err != nil {
		return err
	}

	logger.Info("Adrenaline Go module loaded.")
	return nil
}

// loadConfig reads the game config file when present, then the runtime env.
func loadConfig(ctx context.Context, logger runtime.Logger, fs afero.Fs) error {
	cfg := config.Default()
	if exists, _ := afero.Exists(fs, config.DefaultPath); exists {
		loaded, err := config.Load(fs, config.DefaultPath)
		if err != nil {
			return err
		}
		cfg = *loaded
	} else {
		logger.Info("InitModule: %s not found, using defaults", config.DefaultPath)
	}
	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		if err := config.ApplyEnv(&cfg, env); err != nil {
			return err
		}
	}
	if cfg.SeatTokenSecret == "" {
		logger.Warn("InitModule: adrenaline_seat_token_secret is not set, reconnects are disabled")
	}
	config.Set(&cfg)
	return nil
}

// recordResults stores the results of every ended match.
func recordResults(stats ports.StatsPort, logger runtime.Logger) bus.Handler {
	return func(ctx context.Context, n ports.MatchNotification) error {
		switch n.Kind {
		case ports.MatchEnded:
			logger.Info("Stats: recording match %s (%d players)", n.MatchID, len(n.Results))
			return stats.RecordMatch(ctx, n.MatchID, n.Results)
		case ports.MatchAborted:
			logger.Info("Stats: match %s aborted: %s", n.MatchID, n.Reason)
		}
		return nil
	}
}
