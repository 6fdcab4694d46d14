package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, Validate(&c))
	assert.Equal(t, 15*time.Minute, c.SeatTokenTTL())
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, DefaultPath, []byte(`{"skulls": 5, "bots_enabled": true, "bot_level": "aggressive"}`), 0o644))

	c, err := Load(fs, DefaultPath)
	require.NoError(t, err)
	assert.Equal(t, 5, c.Skulls)
	assert.True(t, c.BotsEnabled)
	assert.Equal(t, "aggressive", c.BotLevel)
	// untouched keys keep their defaults
	assert.True(t, c.Frenzy)
	assert.Equal(t, 3, c.MinPlayers)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		invalid bool
	}{
		{name: "malformed", content: `{"skulls": `},
		{name: "too many skulls", content: `{"skulls": 9}`, invalid: true},
		{name: "unknown bot level", content: `{"bot_level": "genius"}`, invalid: true},
		{name: "delays reversed", content: `{"bot_min_delay_seconds": 5, "bot_max_delay_seconds": 2}`, invalid: true},
		{name: "short token ttl", content: `{"seat_token_ttl_seconds": 10}`, invalid: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "game.json", []byte(tt.content), 0o644))
			_, err := Load(fs, "game.json")
			require.Error(t, err)
			assert.Equal(t, tt.invalid, errors.Is(err, ErrInvalidConfig))
		})
	}

	_, err := Load(afero.NewMemMapFs(), "missing.json")
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	c := Default()
	err := ApplyEnv(&c, map[string]string{
		"adrenaline_skulls":            "6",
		"ADRENALINE_FRENZY":            "false",
		"adrenaline_bots_enabled":      "true",
		"adrenaline_seat_token_secret": "s3cret",
		"other_key":                    "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, c.Skulls)
	assert.False(t, c.Frenzy)
	assert.True(t, c.BotsEnabled)
	assert.Equal(t, "s3cret", c.SeatTokenSecret)

	c = Default()
	assert.ErrorIs(t, ApplyEnv(&c, map[string]string{"adrenaline_skulls": "many"}), ErrInvalidConfig)
	c = Default()
	assert.ErrorIs(t, ApplyEnv(&c, map[string]string{"adrenaline_skulls": "2"}), ErrInvalidConfig)
}

func TestSetAndGet(t *testing.T) {
	t.Cleanup(func() { Set(nil) })
	assert.Equal(t, Default(), GetGameConfig())

	c := Default()
	c.Skulls = 5
	Set(&c)
	assert.Equal(t, 5, GetGameConfig().Skulls)
}

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"skulls": 8}`), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes := make(chan *GameConfig, 8)
	require.NoError(t, Watch(ctx, afero.NewOsFs(), path, func(c *GameConfig, err error) {
		if err == nil {
			changes <- c
		}
	}))

	require.NoError(t, os.WriteFile(path, []byte(`{"skulls": 6}`), 0o644))
	deadline := time.After(5 * time.Second)
	for {
		select {
		case c := <-changes:
			if c.Skulls == 6 {
				return
			}
		case <-deadline:
			t.Fatal("config change not observed")
		}
	}
}
