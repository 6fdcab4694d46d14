package ports

import (
	"context"
	"time"
)

// Match lifecycle notifications.
const (
	MatchStarted = "match_started"
	MatchEnded   = "match_ended"
	MatchAborted = "match_aborted"
)

// MatchNotification is published when a match changes phase. It leaves the
// match loop, so it carries plain values only.
type MatchNotification struct {
	MatchID  string         `json:"match_id"`
	Kind     string         `json:"kind"`
	Players  []string       `json:"players"`
	Results  []PlayerResult `json:"results,omitempty"`
	Reason   string         `json:"reason,omitempty"`
	Occurred time.Time      `json:"occurred"`
}

// MatchPublisher fans match notifications out to whoever listens.
type MatchPublisher interface {
	Publish(ctx context.Context, n MatchNotification) error
}
