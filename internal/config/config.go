package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
)

// DefaultPath is where the Nakama module looks for the game configuration.
const DefaultPath = "data/game_config.json"

// EnvPrefix prefixes every override key, in the Nakama runtime env and in
// the process environment.
const EnvPrefix = "adrenaline_"

var ErrInvalidConfig = errors.New("invalid game config")

// GameConfig holds the tunables of a match and of the server around it.
type GameConfig struct {
	Skulls     int  `json:"skulls" validate:"min=5,max=8"`
	Frenzy     bool `json:"frenzy"`
	MinPlayers int  `json:"min_players" validate:"min=3,max=5"`

	BotsEnabled bool   `json:"bots_enabled"`
	BotLevel    string `json:"bot_level" validate:"oneof=random aggressive"`
	// BotMinDelaySeconds and BotMaxDelaySeconds bound how long a bot thinks.
	BotMinDelaySeconds int `json:"bot_min_delay_seconds" validate:"min=0"`
	BotMaxDelaySeconds int `json:"bot_max_delay_seconds" validate:"gtefield=BotMinDelaySeconds"`
	// BotAutoFillDelaySeconds is how long a lobby short of players waits before bots take the empty seats.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds" validate:"min=0"`

	SeatTokenIssuer     string `json:"seat_token_issuer" validate:"required"`
	SeatTokenTTLSeconds int    `json:"seat_token_ttl_seconds" validate:"min=60"`
	// SeatTokenSecret only ever comes from the environment.
	SeatTokenSecret string `json:"-"`
}

// Default returns the configuration used when no file is present.
func Default() GameConfig {
	return GameConfig{
		Skulls:                  8,
		Frenzy:                  true,
		MinPlayers:              3,
		BotLevel:                "random",
		BotMinDelaySeconds:      1,
		BotMaxDelaySeconds:      3,
		BotAutoFillDelaySeconds: 10,
		SeatTokenIssuer:         "adrenaline",
		SeatTokenTTLSeconds:     900,
	}
}

// SeatTokenTTL is the lifetime of a reconnect token.
func (c GameConfig) SeatTokenTTL() time.Duration {
	return time.Duration(c.SeatTokenTTLSeconds) * time.Second
}

var validate = validator.New()

// Validate checks the struct tags of c.
func Validate(c *GameConfig) error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Load reads the JSON file at path on top of the defaults and validates it.
func Load(fs afero.Fs, path string) (*GameConfig, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config: %w", err)
	}

	c := Default()
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	if err := Validate(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ApplyEnv overrides c with the adrenaline_* keys of env, then validates.
// Keys are matched case-insensitively so both the Nakama runtime env and
// the process environment work.
func ApplyEnv(c *GameConfig, env map[string]string) error {
	for k, v := range env {
		key := strings.ToLower(k)
		if !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		if err := applyKey(c, strings.TrimPrefix(key, EnvPrefix), v); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, k, err)
		}
	}
	return Validate(c)
}

func applyKey(c *GameConfig, key, value string) error {
	var err error
	switch key {
	case "skulls":
		c.Skulls, err = strconv.Atoi(value)
	case "frenzy":
		c.Frenzy, err = strconv.ParseBool(value)
	case "min_players":
		c.MinPlayers, err = strconv.Atoi(value)
	case "bots_enabled":
		c.BotsEnabled, err = strconv.ParseBool(value)
	case "bot_level":
		c.BotLevel = value
	case "bot_min_delay_sec":
		c.BotMinDelaySeconds, err = strconv.Atoi(value)
	case "bot_max_delay_sec":
		c.BotMaxDelaySeconds, err = strconv.Atoi(value)
	case "bot_auto_fill_delay_sec":
		c.BotAutoFillDelaySeconds, err = strconv.Atoi(value)
	case "seat_token_issuer":
		c.SeatTokenIssuer = value
	case "seat_token_ttl_sec":
		c.SeatTokenTTLSeconds, err = strconv.Atoi(value)
	case "seat_token_secret":
		c.SeatTokenSecret = value
	}
	return err
}

// EnvFromOS collects the adrenaline_* variables of the process environment.
func EnvFromOS() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(strings.ToLower(k), EnvPrefix) {
			env[k] = v
		}
	}
	return env
}

var (
	mu  sync.RWMutex
	cfg *GameConfig
)

// Set replaces the process-wide configuration.
func Set(c *GameConfig) {
	mu.Lock()
	defer mu.Unlock()
	cfg = c
}

// GetGameConfig returns the process-wide configuration, or the defaults
// when none was set.
func GetGameConfig() GameConfig {
	mu.RLock()
	defer mu.RUnlock()
	if cfg == nil {
		return Default()
	}
	return *cfg
}
