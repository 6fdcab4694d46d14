package ports

import "context"

// PlayerResult is how one seated user finished a match.
type PlayerResult struct {
	UserID   string `json:"user_id"`
	Nickname string `json:"nickname"`
	Points   int    `json:"points"`
	// Rank is the 1-based leaderboard slot; tied players share it.
	Rank int  `json:"rank"`
	Bot  bool `json:"bot"`
}

// Won reports whether the player shares the first slot.
func (r PlayerResult) Won() bool { return r.Rank == 1 }

// PlayerStats is the lifetime record kept per account.
type PlayerStats struct {
	Matches     int `json:"matches"`
	Wins        int `json:"wins"`
	TotalPoints int `json:"total_points"`
	BestPoints  int `json:"best_points"`
}

// StatsPort persists per-account match statistics.
type StatsPort interface {
	// InitStats creates an empty record for userID.
	// Returns created=false when the record already existed.
	InitStats(ctx context.Context, userID string) (bool, error)

	// RecordMatch folds the results of matchID into each human player's record.
	RecordMatch(ctx context.Context, matchID string, results []PlayerResult) error
}
