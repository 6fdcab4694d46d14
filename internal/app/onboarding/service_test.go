package onboarding

import (
	"context"
	"errors"
	"math/rand"
	"regexp"
	"testing"

	"adrenaline/internal/ports"
)

type fakeAccountPort struct {
	updateErr error
	names     []string
}

func (f *fakeAccountPort) UpdateProfile(ctx context.Context, userID, username, displayName string) error {
	f.names = append(f.names, displayName)
	return f.updateErr
}

func (f *fakeAccountPort) DisplayName(ctx context.Context, userID string) (string, error) {
	if len(f.names) == 0 {
		return "", errors.New("no name")
	}
	return f.names[len(f.names)-1], nil
}

type fakeStatsPort struct {
	initErr error
	exists  map[string]bool
	calls   int
}

func (f *fakeStatsPort) InitStats(ctx context.Context, userID string) (bool, error) {
	f.calls++
	if f.initErr != nil {
		return false, f.initErr
	}
	if f.exists == nil {
		f.exists = make(map[string]bool)
	}
	if f.exists[userID] {
		return false, nil
	}
	f.exists[userID] = true
	return true, nil
}

func (f *fakeStatsPort) RecordMatch(ctx context.Context, matchID string, results []ports.PlayerResult) error {
	return nil
}

var nicknamePattern = regexp.MustCompile(`^[A-Z][a-z]+[A-Z][a-z]+\d{4}$`)

func TestOnboardNewUser_CreatesStatsAndNickname(t *testing.T) {
	accounts := &fakeAccountPort{}
	stats := &fakeStatsPort{}
	service := NewService(accounts, stats, rand.New(rand.NewSource(1)))

	result, err := service.OnboardNewUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("OnboardNewUser returned error: %v", err)
	}
	if result.ProfileUpdateErr != nil {
		t.Fatalf("Expected no profile update error, got %v", result.ProfileUpdateErr)
	}
	if !result.StatsCreated {
		t.Fatal("Expected stats record to be created")
	}
	if !nicknamePattern.MatchString(result.Nickname) {
		t.Fatalf("Unexpected nickname %q", result.Nickname)
	}
	if len(accounts.names) != 1 || accounts.names[0] != result.Nickname {
		t.Fatalf("Expected profile update with %q, got %v", result.Nickname, accounts.names)
	}
}

func TestOnboardNewUser_AccountUpdateFailureStillCreatesStats(t *testing.T) {
	stats := &fakeStatsPort{}
	service := NewService(&fakeAccountPort{updateErr: errors.New("update failed")}, stats, rand.New(rand.NewSource(1)))

	result, err := service.OnboardNewUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("OnboardNewUser returned error: %v", err)
	}
	if result.ProfileUpdateErr == nil {
		t.Fatal("Expected profile update error to be captured")
	}
	if stats.calls != 1 {
		t.Fatalf("Expected 1 stats call, got %d", stats.calls)
	}
}

func TestOnboardNewUser_StatsFailureReturnsError(t *testing.T) {
	service := NewService(&fakeAccountPort{}, &fakeStatsPort{initErr: errors.New("storage down")}, rand.New(rand.NewSource(1)))

	if _, err := service.OnboardNewUser(context.Background(), "user-1"); err == nil {
		t.Fatal("Expected error when stats record cannot be created")
	}
}

func TestOnboardNewUser_StatsAlreadyExist(t *testing.T) {
	stats := &fakeStatsPort{exists: map[string]bool{"user-1": true}}
	service := NewService(&fakeAccountPort{}, stats, rand.New(rand.NewSource(1)))

	result, err := service.OnboardNewUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("OnboardNewUser returned error: %v", err)
	}
	if result.StatsCreated {
		t.Fatal("Expected existing stats record to be kept")
	}
}

func TestOnboardNewUser_NotConfigured(t *testing.T) {
	service := NewService(nil, nil, nil)
	if _, err := service.OnboardNewUser(context.Background(), "user-1"); err == nil {
		t.Fatal("Expected error from unconfigured service")
	}
}
