package memory

import (
	"context"
	"fmt"

	"github.com/mohtashimnawaz/satoshiflow/pkg/models"
	"github.com/mohtashimnawaz/satoshiflow/pkg/storage"
)

// InsertStream stores a copy of s under the next stream id.
func (s *Store) InsertStream(ctx context.Context, stream *models.Stream) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextStreamID
	s.nextStreamID++

	c := stream.Clone()
	c.Id = id
	c.Version = 1
	s.streams[id] = c
	s.index(c)
	return id, nil
}

// GetStream returns a copy of the stream with the given id.
func (s *Store) GetStream(ctx context.Context, id uint64) (*models.Stream, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stream, ok := s.streams[id]
	if !ok {
		return nil, fmt.Errorf("stream %d: %w", id, storage.ErrNotFound)
	}
	return stream.Clone(), nil
}

// UpdateStream runs fn on a copy and swaps it in only if fn succeeds.
func (s *Store) UpdateStream(ctx context.Context, id uint64, fn storage.StreamMutator) (*models.Stream, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.streams[id]
	if !ok {
		return nil, fmt.Errorf("stream %d: %w", id, storage.ErrNotFound)
	}

	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	next.Id = id
	next.Version = current.Version + 1
	s.streams[id] = next
	s.index(next)
	return next.Clone(), nil
}

func (s *Store) ListStreamsByParticipant(ctx context.Context, principal string) ([]models.Stream, error) {
	return s.SearchStreams(ctx, principal, models.StreamFilter{})
}

func (s *Store) SearchStreams(ctx context.Context, principal string, filter models.StreamFilter) ([]models.Stream, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Stream
	for _, stream := range s.streams {
		if !stream.Involves(principal) || !filter.Matches(stream) {
			continue
		}
		out = append(out, *stream.Clone())
	}
	return out, nil
}

// ListActiveStreams reads from the active index rather than the whole table.
func (s *Store) ListActiveStreams(ctx context.Context) ([]models.Stream, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Stream, 0, len(s.active))
	for id := range s.active {
		out = append(out, *s.streams[id].Clone())
	}
	return out, nil
}

// index keeps the active set in step with a stream's status. Callers hold mu.
func (s *Store) index(stream *models.Stream) {
	if stream.Status == models.ACTIVE {
		s.active[stream.Id] = struct{}{}
	} else {
		delete(s.active, stream.Id)
	}
}
