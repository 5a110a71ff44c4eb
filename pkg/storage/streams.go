package storage

import (
	"context"

	"github.com/mohtashimnawaz/satoshiflow/pkg/models"
)

// StreamMutator edits a copy of a stored stream. Returning an error aborts the
// update and leaves the stored record unchanged; the error is passed through as is.
type StreamMutator func(s *models.Stream) error

// StreamReader defines the interface for reading stream data.
type StreamReader interface {
	// GetStream retrieves a stream by its ID.
	GetStream(ctx context.Context, id uint64) (*models.Stream, error)

	// ListStreamsByParticipant retrieves every stream where principal is the sender or recipient.
	// The order is unspecified.
	ListStreamsByParticipant(ctx context.Context, principal string) ([]models.Stream, error)

	// SearchStreams narrows ListStreamsByParticipant with filter.
	SearchStreams(ctx context.Context, principal string, filter models.StreamFilter) ([]models.Stream, error)

	// ListActiveStreams retrieves all streams in the ACTIVE state.
	ListActiveStreams(ctx context.Context) ([]models.Stream, error)
}

// StreamWriter defines the interface for creating and mutating streams.
type StreamWriter interface {
	// InsertStream stores a new stream under the next free id and returns it.
	// Ids are allocated sequentially from zero and never reused.
	InsertStream(ctx context.Context, s *models.Stream) (uint64, error)

	// UpdateStream applies fn to the stream as one atomic read-modify-write and
	// returns the stored result.
	UpdateStream(ctx context.Context, id uint64, fn StreamMutator) (*models.Stream, error)
}

// StreamStore combines the reader and writer interfaces.
type StreamStore interface {
	StreamReader
	StreamWriter
}
