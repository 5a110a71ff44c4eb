package storage

import (
	"context"

	"github.com/mohtashimnawaz/satoshiflow/pkg/models"
)

// StatsStore defines the interface for aggregate statistics.
type StatsStore interface {
	RecordStreamCreated(ctx context.Context, sender, recipient string, locked, duration uint64) error
	RecordStreamClaimed(ctx context.Context, recipient string, amount uint64) error
	RecordStreamCancelled(ctx context.Context, sender string, fee uint64) error
	RecordStreamCompleted(ctx context.Context) error

	GetGlobalStats(ctx context.Context) (*models.StreamStats, error)

	// GetUserStats returns ErrNotFound for a principal with no recorded activity.
	GetUserStats(ctx context.Context, user string) (*models.UserStats, error)
}
