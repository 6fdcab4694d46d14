package ports

import "context"

// AccountPort reads and updates the account profile a player is known by.
type AccountPort interface {
	// UpdateProfile sets the username and display name of userID.
	UpdateProfile(ctx context.Context, userID, username, displayName string) error

	// DisplayName returns the name shown at the table for userID.
	DisplayName(ctx context.Context, userID string) (string, error)
}
