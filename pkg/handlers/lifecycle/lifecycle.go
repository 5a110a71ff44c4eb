package lifecycle

import (
	"context"
	"net/http"

	"github.com/mohtashimnawaz/satoshiflow/pkg/api"
	"github.com/mohtashimnawaz/satoshiflow/pkg/handlers/respond"
	"github.com/mohtashimnawaz/satoshiflow/pkg/mapping"
	"github.com/mohtashimnawaz/satoshiflow/pkg/models"
	"github.com/mohtashimnawaz/satoshiflow/pkg/streams"
)

// Service is the part of the stream engine behind the stream routes.
type Service interface {
	CreateStream(ctx context.Context, sender string, p streams.CreateParams) (uint64, error)
	GetStream(ctx context.Context, id uint64) (*models.Stream, error)
	TopUp(ctx context.Context, id uint64, caller string, amount uint64) error
	Pause(ctx context.Context, id uint64, caller string) error
	Resume(ctx context.Context, id uint64, caller string) error
	Cancel(ctx context.Context, id uint64, caller string) (models.CancelResult, error)
	Claim(ctx context.Context, id uint64, caller string) (uint64, error)
	Reclaim(ctx context.Context, id uint64, caller string) (uint64, error)
	ListStreamsForUser(ctx context.Context, user string) ([]models.Stream, error)
	SearchStreams(ctx context.Context, caller string, filter models.StreamFilter) ([]models.Stream, error)
	StreamStats(ctx context.Context, id uint64) (*models.StreamProgress, error)
	AddMilestone(ctx context.Context, caller string, streamID, triggerAmount uint64, action models.MilestoneAction) (uint64, error)
	ListMilestones(ctx context.Context, streamID uint64) ([]models.Milestone, error)
}

// StreamsHandler holds the dependencies for stream lifecycle handlers.
type StreamsHandler struct {
	Service Service
}

// NewStreamsHandler creates a new StreamsHandler.
func NewStreamsHandler(svc Service) *StreamsHandler {
	return &StreamsHandler{Service: svc}
}

// CreateStream opens a stream from the caller.
func (h *StreamsHandler) CreateStream(w http.ResponseWriter, r *http.Request) {
	caller, ok := respond.Caller(w, r)
	if !ok {
		return
	}
	var req api.NewStream
	if !respond.Decode(w, r, &req) {
		return
	}

	id, err := h.Service.CreateStream(r.Context(), caller, mapping.ToCreateParams(&req))
	if err != nil {
		respond.Error(w, r, err, "Failed to create stream")
		return
	}
	respond.JSON(w, http.StatusCreated, api.Created{Id: id})
}

func (h *StreamsHandler) GetStream(w http.ResponseWriter, r *http.Request, streamId uint64) {
	s, err := h.Service.GetStream(r.Context(), streamId)
	if err != nil {
		respond.Error(w, r, err, "Failed to retrieve stream")
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiStream(s))
}

// TopUpStream raises the locked amount of one of the caller's streams.
func (h *StreamsHandler) TopUpStream(w http.ResponseWriter, r *http.Request, streamId uint64) {
	caller, ok := respond.Caller(w, r)
	if !ok {
		return
	}
	var req api.TopUpRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	if err := h.Service.TopUp(r.Context(), streamId, caller, req.Amount); err != nil {
		respond.Error(w, r, err, "Failed to top up stream")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *StreamsHandler) PauseStream(w http.ResponseWriter, r *http.Request, streamId uint64) {
	h.transition(w, r, streamId, h.Service.Pause, "Failed to pause stream")
}

func (h *StreamsHandler) ResumeStream(w http.ResponseWriter, r *http.Request, streamId uint64) {
	h.transition(w, r, streamId, h.Service.Resume, "Failed to resume stream")
}

func (h *StreamsHandler) transition(w http.ResponseWriter, r *http.Request, streamId uint64, op func(context.Context, uint64, string) error, doing string) {
	caller, ok := respond.Caller(w, r)
	if !ok {
		return
	}
	if err := op(r.Context(), streamId, caller); err != nil {
		respond.Error(w, r, err, doing)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CancelStream ends a stream early and reports the refund and fee to settle.
func (h *StreamsHandler) CancelStream(w http.ResponseWriter, r *http.Request, streamId uint64) {
	caller, ok := respond.Caller(w, r)
	if !ok {
		return
	}
	res, err := h.Service.Cancel(r.Context(), streamId, caller)
	if err != nil {
		respond.Error(w, r, err, "Failed to cancel stream")
		return
	}
	respond.JSON(w, http.StatusOK, api.CancelResult{Refund: res.Refund, Fee: res.Fee})
}

func (h *StreamsHandler) ClaimStream(w http.ResponseWriter, r *http.Request, streamId uint64) {
	h.withdrawal(w, r, streamId, h.Service.Claim, "Failed to claim stream")
}

func (h *StreamsHandler) ReclaimStream(w http.ResponseWriter, r *http.Request, streamId uint64) {
	h.withdrawal(w, r, streamId, h.Service.Reclaim, "Failed to reclaim stream")
}

func (h *StreamsHandler) withdrawal(w http.ResponseWriter, r *http.Request, streamId uint64, op func(context.Context, uint64, string) (uint64, error), doing string) {
	caller, ok := respond.Caller(w, r)
	if !ok {
		return
	}
	amount, err := op(r.Context(), streamId, caller)
	if err != nil {
		respond.Error(w, r, err, doing)
		return
	}
	respond.JSON(w, http.StatusOK, api.AmountResult{Amount: amount})
}

func (h *StreamsHandler) GetStreamStats(w http.ResponseWriter, r *http.Request, streamId uint64) {
	p, err := h.Service.StreamStats(r.Context(), streamId)
	if err != nil {
		respond.Error(w, r, err, "Failed to retrieve stream stats")
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiProgress(p))
}

// SearchStreams filters the caller's streams by the request body.
func (h *StreamsHandler) SearchStreams(w http.ResponseWriter, r *http.Request) {
	caller, ok := respond.Caller(w, r)
	if !ok {
		return
	}
	var req api.StreamFilter
	if !respond.Decode(w, r, &req) {
		return
	}

	list, err := h.Service.SearchStreams(r.Context(), caller, mapping.ToDomainFilter(&req))
	if err != nil {
		respond.Error(w, r, err, "Failed to search streams")
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiStreams(list))
}

// ListUserStreams lists every stream userId sends or receives, optionally by status.
func (h *StreamsHandler) ListUserStreams(w http.ResponseWriter, r *http.Request, userId string, params api.ListUserStreamsParams) {
	list, err := h.Service.ListStreamsForUser(r.Context(), userId)
	if err != nil {
		respond.Error(w, r, err, "Failed to retrieve streams")
		return
	}
	if params.Status != nil {
		kept := list[:0]
		for _, s := range list {
			if s.Status == models.StreamStatus(*params.Status) {
				kept = append(kept, s)
			}
		}
		list = kept
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiStreams(list))
}

func (h *StreamsHandler) AddMilestone(w http.ResponseWriter, r *http.Request, streamId uint64) {
	caller, ok := respond.Caller(w, r)
	if !ok {
		return
	}
	var req api.NewMilestone
	if !respond.Decode(w, r, &req) {
		return
	}

	id, err := h.Service.AddMilestone(r.Context(), caller, streamId, req.TriggerAmount, mapping.ToDomainAction(req.Action))
	if err != nil {
		respond.Error(w, r, err, "Failed to add milestone")
		return
	}
	respond.JSON(w, http.StatusCreated, api.Created{Id: id})
}

func (h *StreamsHandler) ListMilestones(w http.ResponseWriter, r *http.Request, streamId uint64) {
	list, err := h.Service.ListMilestones(r.Context(), streamId)
	if err != nil {
		respond.Error(w, r, err, "Failed to retrieve milestones")
		return
	}
	out := make([]*api.Milestone, len(list))
	for i := range list {
		out[i] = mapping.ToApiMilestone(&list[i])
	}
	respond.JSON(w, http.StatusOK, out)
}
