package memory

import (
	"context"
	"fmt"

	"github.com/mohtashimnawaz/satoshiflow/pkg/models"
	"github.com/mohtashimnawaz/satoshiflow/pkg/storage"
)

func (s *Store) CreateTemplate(ctx context.Context, t *models.StreamTemplate) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextTemplateID
	s.nextTemplateID++

	c := *t
	c.Id = id
	s.templates[id] = &c
	return id, nil
}

func (s *Store) GetTemplate(ctx context.Context, id uint64) (*models.StreamTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.templates[id]
	if !ok {
		return nil, fmt.Errorf("template %d: %w", id, storage.ErrNotFound)
	}
	c := *t
	return &c, nil
}

func (s *Store) ListTemplates(ctx context.Context) ([]models.StreamTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.StreamTemplate, 0, len(s.templates))
	for _, t := range s.templates {
		out = append(out, *t)
	}
	return out, nil
}

func (s *Store) IncrementTemplateUsage(ctx context.Context, id uint64) (*models.StreamTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.templates[id]
	if !ok {
		return nil, fmt.Errorf("template %d: %w", id, storage.ErrNotFound)
	}
	t.UsageCount++
	c := *t
	return &c, nil
}
