package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"adrenaline/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	statsCollection = "stats"
	statsKey        = "adrenaline"
)

// NakamaStatsAdapter implements ports.StatsPort on Nakama storage, mirroring
// points to the lifetime leaderboard.
type NakamaStatsAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaStatsAdapter creates a new stats adapter.
func NewNakamaStatsAdapter(nk runtime.NakamaModule) *NakamaStatsAdapter {
	return &NakamaStatsAdapter{nk: nk}
}

// InitStats writes an empty record with Version "*" so an existing one is kept.
func (a *NakamaStatsAdapter) InitStats(ctx context.Context, userID string) (bool, error) {
	value, err := json.Marshal(ports.PlayerStats{})
	if err != nil {
		return false, err
	}
	_, err = a.nk.StorageWrite(ctx, []*runtime.StorageWrite{statsWrite(userID, value, "*")})
	if errors.Is(err, runtime.ErrStorageRejectedVersion) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// RecordMatch folds results into each human player's record. Bots have no record.
func (a *NakamaStatsAdapter) RecordMatch(ctx context.Context, matchID string, results []ports.PlayerResult) error {
	var errs []error
	for _, r := range results {
		if r.Bot || r.UserID == "" {
			continue
		}
		if err := a.recordOne(ctx, r); err != nil {
			errs = append(errs, fmt.Errorf("match %s, user %s: %w", matchID, r.UserID, err))
		}
	}
	return errors.Join(errs...)
}

func (a *NakamaStatsAdapter) recordOne(ctx context.Context, r ports.PlayerResult) error {
	objects, err := a.nk.StorageRead(ctx, []*runtime.StorageRead{{
		Collection: statsCollection,
		Key:        statsKey,
		UserID:     r.UserID,
	}})
	if err != nil {
		return err
	}

	var stats ports.PlayerStats
	version := "*"
	if len(objects) > 0 {
		if err := json.Unmarshal([]byte(objects[0].GetValue()), &stats); err != nil {
			return fmt.Errorf("decode stats: %w", err)
		}
		version = objects[0].GetVersion()
	}
	stats = applyResult(stats, r)

	value, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	if _, err := a.nk.StorageWrite(ctx, []*runtime.StorageWrite{statsWrite(r.UserID, value, version)}); err != nil {
		return err
	}
	_, err = a.nk.LeaderboardRecordWrite(ctx, LeaderboardPoints, r.UserID, r.Nickname, int64(r.Points), 0, nil, nil)
	return err
}

func applyResult(s ports.PlayerStats, r ports.PlayerResult) ports.PlayerStats {
	s.Matches++
	if r.Won() {
		s.Wins++
	}
	s.TotalPoints += r.Points
	if r.Points > s.BestPoints {
		s.BestPoints = r.Points
	}
	return s
}

func statsWrite(userID string, value []byte, version string) *runtime.StorageWrite {
	return &runtime.StorageWrite{
		Collection:      statsCollection,
		Key:             statsKey,
		UserID:          userID,
		Value:           string(value),
		Version:         version,
		PermissionRead:  2,
		PermissionWrite: 0,
	}
}

var _ ports.StatsPort = (*NakamaStatsAdapter)(nil)
