package storage

import (
	"context"

	"github.com/mohtashimnawaz/satoshiflow/pkg/models"
)

// TemplateStore defines the interface for managing stream templates.
type TemplateStore interface {
	// CreateTemplate stores t under the next free id and returns it.
	CreateTemplate(ctx context.Context, t *models.StreamTemplate) (uint64, error)

	// GetTemplate retrieves a template by its ID.
	GetTemplate(ctx context.Context, id uint64) (*models.StreamTemplate, error)

	// ListTemplates retrieves all templates.
	ListTemplates(ctx context.Context) ([]models.StreamTemplate, error)

	// IncrementTemplateUsage bumps the usage counter and returns the updated template.
	IncrementTemplateUsage(ctx context.Context, id uint64) (*models.StreamTemplate, error)
}
