package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"adrenaline/internal/config"
	"adrenaline/internal/ports/console"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "adrenaline",
	Short: "Adrenaline server tools",
	Long: `Command line tools for the Adrenaline game server.

Available commands:
  simulate          Play bot-only matches with the same engine the server runs
  validate-config   Check a game config file and the adrenaline_* environment

Use "adrenaline [command] --help" for more information about a command.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A .env file is optional.
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	},
}

// Execute runs the root command until it returns or the process is interrupted.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "game config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log engine decisions")
}

func newLogger(cmd *cobra.Command) *console.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return console.New(cmd.ErrOrStderr(), level)
}
