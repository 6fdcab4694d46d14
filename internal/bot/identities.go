package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/spf13/afero"
)

type BotIdentity struct {
	DeviceID    string   `json:"device_id"`
	UserID      string   `json:"user_id"`
	Username    string   `json:"username"`
	DisplayName string   `json:"display_name"`
	Level       BotLevel `json:"level"`
}

// defaultIdentities is the pool used until LoadIdentities succeeds.
var defaultIdentities = []BotIdentity{
	{UserID: "bot-sprog", Username: "sprog", DisplayName: "Sprog", Level: LevelAggressive},
	{UserID: "bot-banshee", Username: "banshee", DisplayName: "Banshee", Level: LevelRandom},
	{UserID: "bot-dozer", Username: "dozer", DisplayName: "Dozer", Level: LevelAggressive},
	{UserID: "bot-violet", Username: "violet", DisplayName: "Violet", Level: LevelRandom},
	{UserID: "bot-destructor", Username: "destructor", DisplayName: "Destructor", Level: LevelAggressive},
}

var (
	poolMu sync.RWMutex
	pool   = defaultIdentities
)

// LoadIdentities replaces the bot pool with the profiles in the JSON file at path.
func LoadIdentities(fs afero.Fs, path string) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("failed to read bot identities: %w", err)
	}
	var loaded []BotIdentity
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal bot identities: %w", err)
	}
	if len(loaded) == 0 {
		return fmt.Errorf("bot identities file %s is empty", path)
	}
	for i := range loaded {
		if loaded[i].Level == "" {
			loaded[i].Level = LevelRandom
		}
	}

	poolMu.Lock()
	pool = loaded
	poolMu.Unlock()
	return nil
}

// ProvisionBots ensures that every bot with a device ID has a Nakama account
// flagged with is_bot metadata, and records the resulting user IDs.
func ProvisionBots(ctx context.Context, nk runtime.NakamaModule, logger runtime.Logger) {
	poolMu.Lock()
	defer poolMu.Unlock()
	for i := range pool {
		identity := &pool[i]
		if identity.DeviceID == "" {
			continue
		}

		userID, username, _, err := nk.AuthenticateDevice(ctx, identity.DeviceID, identity.Username, true)
		if err != nil {
			logger.Error("ProvisionBots: Failed to authenticate bot %s: %v", identity.Username, err)
			continue
		}
		identity.UserID = userID
		identity.Username = username

		metadata := map[string]interface{}{
			"is_bot": true,
			"level":  string(identity.Level),
		}
		if err := nk.AccountUpdateId(ctx, userID, identity.Username, metadata, identity.DisplayName, "", "", "", ""); err != nil {
			logger.Warn("ProvisionBots: Failed to update bot account %s: %v", userID, err)
		}
		logger.Info("ProvisionBots: Bot %s (%s) is ready. Level: %s", identity.DisplayName, userID, identity.Level)
	}
}

// GetBotIdentity returns an identity for a bot by index (mod pool size).
func GetBotIdentity(index int) BotIdentity {
	poolMu.RLock()
	defer poolMu.RUnlock()
	return pool[index%len(pool)]
}

// GetBotConfig returns the identity of the bot userID.
func GetBotConfig(userID string) (BotIdentity, bool) {
	poolMu.RLock()
	defer poolMu.RUnlock()
	for _, identity := range pool {
		if identity.UserID == userID {
			return identity, true
		}
	}
	return BotIdentity{}, false
}

// IsBot reports whether the given user ID belongs to the bot pool.
func IsBot(userID string) bool {
	_, ok := GetBotConfig(userID)
	return ok
}
