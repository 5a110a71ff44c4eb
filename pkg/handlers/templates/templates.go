package templates

import (
	"context"
	"net/http"

	"github.com/mohtashimnawaz/satoshiflow/pkg/api"
	"github.com/mohtashimnawaz/satoshiflow/pkg/handlers/respond"
	"github.com/mohtashimnawaz/satoshiflow/pkg/mapping"
	"github.com/mohtashimnawaz/satoshiflow/pkg/models"
	"github.com/mohtashimnawaz/satoshiflow/pkg/streams"
)

// Service is the part of the stream engine behind the template routes.
type Service interface {
	CreateTemplate(ctx context.Context, creator string, p streams.TemplateParams) (uint64, error)
	ListTemplates(ctx context.Context) ([]models.StreamTemplate, error)
	CreateStreamFromTemplate(ctx context.Context, caller string, templateID uint64, recipient string, totalLocked uint64) (uint64, error)
}

// TemplatesHandler holds the dependencies for template handlers.
type TemplatesHandler struct {
	Service Service
}

// NewTemplatesHandler creates a new TemplatesHandler.
func NewTemplatesHandler(svc Service) *TemplatesHandler {
	return &TemplatesHandler{Service: svc}
}

func (h *TemplatesHandler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	caller, ok := respond.Caller(w, r)
	if !ok {
		return
	}
	var req api.NewTemplate
	if !respond.Decode(w, r, &req) {
		return
	}

	id, err := h.Service.CreateTemplate(r.Context(), caller, mapping.ToTemplateParams(&req))
	if err != nil {
		respond.Error(w, r, err, "Failed to create template")
		return
	}
	respond.JSON(w, http.StatusCreated, api.Created{Id: id})
}

func (h *TemplatesHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListTemplates(r.Context())
	if err != nil {
		respond.Error(w, r, err, "Failed to retrieve templates")
		return
	}
	out := make([]*api.StreamTemplate, len(list))
	for i := range list {
		out[i] = mapping.ToApiTemplate(&list[i])
	}
	respond.JSON(w, http.StatusOK, out)
}

// CreateStreamFromTemplate opens a stream from the caller using a template's
// rate and duration.
func (h *TemplatesHandler) CreateStreamFromTemplate(w http.ResponseWriter, r *http.Request, templateId uint64) {
	caller, ok := respond.Caller(w, r)
	if !ok {
		return
	}
	var req api.NewStreamFromTemplate
	if !respond.Decode(w, r, &req) {
		return
	}

	id, err := h.Service.CreateStreamFromTemplate(r.Context(), caller, templateId, req.Recipient, req.TotalLocked)
	if err != nil {
		respond.Error(w, r, err, "Failed to create stream from template")
		return
	}
	respond.JSON(w, http.StatusCreated, api.Created{Id: id})
}
