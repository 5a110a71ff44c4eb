package memory

import "context"

func (s *Store) AddConnection(ctx context.Context, connectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connections[connectionID] = struct{}{}
	return nil
}

func (s *Store) RemoveConnection(ctx context.Context, connectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.connections, connectionID)
	return nil
}

func (s *Store) GetAllConnections(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.connections))
	for id := range s.connections {
		out = append(out, id)
	}
	return out, nil
}
