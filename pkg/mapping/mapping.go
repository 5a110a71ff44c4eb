package mapping

import (
	"github.com/mohtashimnawaz/satoshiflow/pkg/api"
	"github.com/mohtashimnawaz/satoshiflow/pkg/models"
	"github.com/mohtashimnawaz/satoshiflow/pkg/streams"
)

// ToApiStream converts a domain Stream model to an API Stream model.
func ToApiStream(s *models.Stream) *api.Stream {
	out := &api.Stream{
		Id:              s.Id,
		Sender:          s.Sender,
		Recipient:       s.Recipient,
		SatsPerSec:      s.SatsPerSec,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		TotalLocked:     s.TotalLocked,
		TotalReleased:   s.TotalReleased,
		TotalClaimed:    s.TotalWithdrawn,
		Buffer:          s.Buffer,
		LastReleaseTime: s.LastReleaseTime,
		LastClaimTime:   s.LastClaimTime,
		Status:          api.StreamStatus(s.Status),
		Title:           s.Title,
		Description:     s.Description,
	}
	if len(s.Tags) > 0 {
		tags := append([]string(nil), s.Tags...)
		out.Tags = &tags
	}
	if len(s.Metadata) > 0 {
		meta := make(map[string]string, len(s.Metadata))
		for k, v := range s.Metadata {
			meta[k] = v
		}
		out.Metadata = &meta
	}
	return out
}

// ToApiStreams converts a slice of domain streams, never returning nil.
func ToApiStreams(list []models.Stream) []*api.Stream {
	out := make([]*api.Stream, len(list))
	for i := range list {
		out[i] = ToApiStream(&list[i])
	}
	return out
}

// ToCreateParams converts an API NewStream request to engine parameters.
func ToCreateParams(n *api.NewStream) streams.CreateParams {
	p := streams.CreateParams{
		Recipient:    n.Recipient,
		SatsPerSec:   n.SatsPerSec,
		DurationSecs: n.DurationSecs,
		TotalLocked:  n.TotalLocked,
		Title:        n.Title,
		Description:  n.Description,
	}
	if n.Tags != nil {
		p.Tags = *n.Tags
	}
	if n.Metadata != nil {
		p.Metadata = *n.Metadata
	}
	return p
}

// ToDomainFilter converts an API search filter to the domain filter.
func ToDomainFilter(f *api.StreamFilter) models.StreamFilter {
	out := models.StreamFilter{
		MinAmount:     f.MinAmount,
		MaxAmount:     f.MaxAmount,
		MinDuration:   f.MinDuration,
		MaxDuration:   f.MaxDuration,
		Sender:        f.Sender,
		Recipient:     f.Recipient,
		CreatedAfter:  f.CreatedAfter,
		CreatedBefore: f.CreatedBefore,
	}
	if f.Status != nil {
		status := models.StreamStatus(*f.Status)
		out.Status = &status
	}
	return out
}

func ToApiProgress(p *models.StreamProgress) *api.StreamProgress {
	return &api.StreamProgress{
		StreamId:      p.StreamId,
		Status:        api.StreamStatus(p.Status),
		TotalLocked:   p.TotalLocked,
		TotalReleased: p.TotalReleased,
		TotalClaimed:  p.TotalClaimed,
		Buffer:        p.Buffer,
		Remaining:     p.Remaining,
		ElapsedSecs:   p.ElapsedSecs,
		RemainingSecs: p.RemainingSecs,
		PercentDone:   p.PercentDone,
	}
}

// ToDomainAction converts an API milestone action. Absent payloads become zero values.
func ToDomainAction(a api.MilestoneAction) models.MilestoneAction {
	out := models.MilestoneAction{Kind: models.MilestoneActionKind(a.Kind)}
	if a.Message != nil {
		out.Message = *a.Message
	}
	if a.Amount != nil {
		out.Amount = *a.Amount
	}
	return out
}

func ToApiAction(a models.MilestoneAction) api.MilestoneAction {
	out := api.MilestoneAction{Kind: api.MilestoneActionKind(a.Kind)}
	if a.Message != "" {
		msg := a.Message
		out.Message = &msg
	}
	if a.Amount != 0 {
		amount := a.Amount
		out.Amount = &amount
	}
	return out
}

func ToApiMilestone(m *models.Milestone) *api.Milestone {
	out := &api.Milestone{
		Id:            m.Id,
		StreamId:      m.StreamId,
		TriggerAmount: m.TriggerAmount,
		Action:        ToApiAction(m.Action),
		Triggered:     m.Triggered,
		CreatedBy:     m.CreatedBy,
	}
	if m.Triggered {
		at := m.TriggeredAt
		out.TriggeredAt = &at
	}
	return out
}

func ToApiNotification(n *models.Notification) *api.Notification {
	return &api.Notification{
		Id:        n.Id,
		StreamId:  n.StreamId,
		Type:      string(n.Type),
		Message:   n.Message,
		Timestamp: n.Timestamp,
		Read:      n.Read,
	}
}

func ToApiTemplate(t *models.StreamTemplate) *api.StreamTemplate {
	return &api.StreamTemplate{
		Id:           t.Id,
		Name:         t.Name,
		Description:  t.Description,
		DurationSecs: t.DurationSecs,
		SatsPerSec:   t.SatsPerSec,
		Creator:      t.Creator,
		CreatedAt:    t.CreatedAt,
		UsageCount:   t.UsageCount,
	}
}

// ToTemplateParams converts an API NewTemplate request to engine parameters.
func ToTemplateParams(n *api.NewTemplate) streams.TemplateParams {
	p := streams.TemplateParams{
		Name:         n.Name,
		DurationSecs: n.DurationSecs,
		SatsPerSec:   n.SatsPerSec,
	}
	if n.Description != nil {
		p.Description = *n.Description
	}
	return p
}

func ToApiGlobalStats(s *models.StreamStats) *api.GlobalStats {
	return &api.GlobalStats{
		TotalStreamsCreated:   s.TotalStreamsCreated,
		TotalVolumeLocked:     s.TotalVolumeLocked,
		TotalVolumeClaimed:    s.TotalVolumeClaimed,
		ActiveStreams:         s.ActiveStreams,
		CompletedStreams:      s.CompletedStreams,
		CancelledStreams:      s.CancelledStreams,
		AverageStreamDuration: s.AverageStreamDuration,
		TotalFeesCollected:    s.TotalFeesCollected,
	}
}

func ToApiUserStats(s *models.UserStats) *api.UserStats {
	return &api.UserStats{
		User:            s.User,
		StreamsCreated:  s.StreamsCreated,
		StreamsReceived: s.StreamsReceived,
		TotalSent:       s.TotalSent,
		TotalReceived:   s.TotalReceived,
		TotalFeesPaid:   s.TotalFeesPaid,
		AvgStreamSize:   s.AvgStreamSize,
	}
}
