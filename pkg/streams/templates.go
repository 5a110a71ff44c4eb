package streams

import (
	"context"
	"fmt"
	"sort"

	"github.com/mohtashimnawaz/satoshiflow/pkg/models"
)

// TemplateParams describes a reusable (rate, duration) pair.
type TemplateParams struct {
	Name         string
	Description  string
	DurationSecs uint64
	SatsPerSec   uint64
}

func (s *Service) CreateTemplate(ctx context.Context, creator string, p TemplateParams) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.Name == "" {
		return 0, fmt.Errorf("%w: template name is required", ErrInvalidArgument)
	}

	id, err := s.store.CreateTemplate(ctx, &models.StreamTemplate{
		Name:         p.Name,
		Description:  p.Description,
		DurationSecs: p.DurationSecs,
		SatsPerSec:   p.SatsPerSec,
		Creator:      creator,
		CreatedAt:    s.clock.Now(),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create template: %w", err)
	}
	return id, nil
}

// CreateStreamFromTemplate opens a stream with the template's rate and duration,
// exactly as CreateStream would, and counts the use.
func (s *Service) CreateStreamFromTemplate(ctx context.Context, caller string, templateID uint64, recipient string, totalLocked uint64) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmpl, err := s.store.IncrementTemplateUsage(ctx, templateID)
	if err != nil {
		return 0, err
	}

	return s.createStream(ctx, caller, CreateParams{
		Recipient:    recipient,
		SatsPerSec:   tmpl.SatsPerSec,
		DurationSecs: tmpl.DurationSecs,
		TotalLocked:  totalLocked,
	})
}

// ListTemplates returns every template ordered by id.
func (s *Service) ListTemplates(ctx context.Context) ([]models.StreamTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.store.ListTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Id < list[j].Id })
	return list, nil
}
