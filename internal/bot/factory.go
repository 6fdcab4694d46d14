package bot

import (
	"fmt"
	"math/rand"
	"time"
)

// BotLevel names a strategy.
type BotLevel string

const (
	LevelRandom     BotLevel = "random"
	LevelAggressive BotLevel = "aggressive"
)

// NewBrain creates a new AI brain based on the specified level. A nil rng
// is time-seeded.
func NewBrain(level BotLevel, rng *rand.Rand) (Brain, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	switch level {
	case LevelRandom:
		return &RandomBot{rng: rng}, nil
	case LevelAggressive:
		return &AggressiveBot{Tuning: DefaultTuning, rng: rng}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %q", level)
	}
}
