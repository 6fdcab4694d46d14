package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"adrenaline/internal/config"
)

var validateConfigCmd = &cobra.Command{
	Use:   "validate-config",
	Short: "Validate the game config",
	Long: `Load the game config file, apply the adrenaline_* environment on top of
it and check the result. Prints the effective configuration on success.

Examples:
  adrenaline validate-config
  adrenaline validate-config --config data/game_config.json
  adrenaline_skulls=5 adrenaline validate-config`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(afero.NewOsFs(), configPath)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s is valid\n", configPath)
		fmt.Fprintf(out, "  skulls:       %d (frenzy %t)\n", cfg.Skulls, cfg.Frenzy)
		fmt.Fprintf(out, "  min players:  %d\n", cfg.MinPlayers)
		fmt.Fprintf(out, "  bots:         %t, %s, %d-%ds, auto-fill after %ds\n",
			cfg.BotsEnabled, cfg.BotLevel, cfg.BotMinDelaySeconds, cfg.BotMaxDelaySeconds, cfg.BotAutoFillDelaySeconds)
		fmt.Fprintf(out, "  seat tokens:  issuer %q, ttl %s, secret set %t\n", cfg.SeatTokenIssuer, cfg.SeatTokenTTL(), cfg.SeatTokenSecret != "")
		return nil
	},
}

// loadConfig reads path and applies the process environment on top.
func loadConfig(fs afero.Fs, path string) (*config.GameConfig, error) {
	cfg, err := config.Load(fs, path)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg, config.EnvFromOS()); err != nil {
		return nil, err
	}
	return cfg, nil
}

func init() {
	rootCmd.AddCommand(validateConfigCmd)
}
