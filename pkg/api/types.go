// Package api holds the HTTP wire types and the chi binding of ServerInterface.
package api

// StreamStatus defines model for StreamStatus.
type StreamStatus string

const (
	ACTIVE    StreamStatus = "ACTIVE"
	PAUSED    StreamStatus = "PAUSED"
	CANCELLED StreamStatus = "CANCELLED"
	COMPLETED StreamStatus = "COMPLETED"
)

// MilestoneActionKind defines model for MilestoneActionKind.
type MilestoneActionKind string

const (
	SENDNOTIFICATION MilestoneActionKind = "SEND_NOTIFICATION"
	AUTOCLAIM        MilestoneActionKind = "AUTO_CLAIM"
	AUTOPAUSE        MilestoneActionKind = "AUTO_PAUSE"
	AUTOTOPUP        MilestoneActionKind = "AUTO_TOP_UP"
)

// Stream defines model for Stream.
type Stream struct {
	Id              uint64             `json:"id"`
	Sender          string             `json:"sender"`
	Recipient       string             `json:"recipient"`
	SatsPerSec      uint64             `json:"sats_per_sec"`
	StartTime       uint64             `json:"start_time"`
	EndTime         uint64             `json:"end_time"`
	TotalLocked     uint64             `json:"total_locked"`
	TotalReleased   uint64             `json:"total_released"`
	TotalClaimed    uint64             `json:"total_claimed"`
	Buffer          uint64             `json:"buffer"`
	LastReleaseTime uint64             `json:"last_release_time"`
	LastClaimTime   uint64             `json:"last_claim_time"`
	Status          StreamStatus       `json:"status"`
	Title           *string            `json:"title,omitempty"`
	Description     *string            `json:"description,omitempty"`
	Tags            *[]string          `json:"tags,omitempty"`
	Metadata        *map[string]string `json:"metadata,omitempty"`
}

// NewStream defines model for NewStream.
type NewStream struct {
	Recipient    string             `json:"recipient"`
	SatsPerSec   uint64             `json:"sats_per_sec"`
	DurationSecs uint64             `json:"duration_secs"`
	TotalLocked  uint64             `json:"total_locked"`
	Title        *string            `json:"title,omitempty"`
	Description  *string            `json:"description,omitempty"`
	Tags         *[]string          `json:"tags,omitempty"`
	Metadata     *map[string]string `json:"metadata,omitempty"`
}

// TopUpRequest defines model for TopUpRequest.
type TopUpRequest struct {
	Amount uint64 `json:"amount"`
}

// CancelResult defines model for CancelResult.
type CancelResult struct {
	Refund uint64 `json:"refund"`
	Fee    uint64 `json:"fee"`
}

// AmountResult defines model for AmountResult.
type AmountResult struct {
	Amount uint64 `json:"amount"`
}

// Created defines model for Created.
type Created struct {
	Id uint64 `json:"id"`
}

// StreamFilter defines model for StreamFilter.
type StreamFilter struct {
	Status        *StreamStatus `json:"status,omitempty"`
	MinAmount     *uint64       `json:"min_amount,omitempty"`
	MaxAmount     *uint64       `json:"max_amount,omitempty"`
	MinDuration   *uint64       `json:"min_duration,omitempty"`
	MaxDuration   *uint64       `json:"max_duration,omitempty"`
	Sender        *string       `json:"sender,omitempty"`
	Recipient     *string       `json:"recipient,omitempty"`
	CreatedAfter  *uint64       `json:"created_after,omitempty"`
	CreatedBefore *uint64       `json:"created_before,omitempty"`
}

// StreamProgress defines model for StreamProgress.
type StreamProgress struct {
	StreamId      uint64       `json:"stream_id"`
	Status        StreamStatus `json:"status"`
	TotalLocked   uint64       `json:"total_locked"`
	TotalReleased uint64       `json:"total_released"`
	TotalClaimed  uint64       `json:"total_claimed"`
	Buffer        uint64       `json:"buffer"`
	Remaining     uint64       `json:"remaining"`
	ElapsedSecs   uint64       `json:"elapsed_secs"`
	RemainingSecs uint64       `json:"remaining_secs"`
	PercentDone   uint64       `json:"percent_done"`
}

// MilestoneAction defines model for MilestoneAction.
type MilestoneAction struct {
	Kind    MilestoneActionKind `json:"kind"`
	Message *string             `json:"message,omitempty"`
	Amount  *uint64             `json:"amount,omitempty"`
}

// Milestone defines model for Milestone.
type Milestone struct {
	Id            uint64          `json:"id"`
	StreamId      uint64          `json:"stream_id"`
	TriggerAmount uint64          `json:"trigger_amount"`
	Action        MilestoneAction `json:"action"`
	Triggered     bool            `json:"triggered"`
	TriggeredAt   *uint64         `json:"triggered_at,omitempty"`
	CreatedBy     string          `json:"created_by"`
}

// NewMilestone defines model for NewMilestone.
type NewMilestone struct {
	TriggerAmount uint64          `json:"trigger_amount"`
	Action        MilestoneAction `json:"action"`
}

// Notification defines model for Notification.
type Notification struct {
	Id        uint64 `json:"id"`
	StreamId  uint64 `json:"stream_id"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	Timestamp uint64 `json:"timestamp"`
	Read      bool   `json:"read"`
}

// StreamTemplate defines model for StreamTemplate.
type StreamTemplate struct {
	Id           uint64 `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	DurationSecs uint64 `json:"duration_secs"`
	SatsPerSec   uint64 `json:"sats_per_sec"`
	Creator      string `json:"creator"`
	CreatedAt    uint64 `json:"created_at"`
	UsageCount   uint64 `json:"usage_count"`
}

// NewTemplate defines model for NewTemplate.
type NewTemplate struct {
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	DurationSecs uint64  `json:"duration_secs"`
	SatsPerSec   uint64  `json:"sats_per_sec"`
}

// NewStreamFromTemplate defines model for NewStreamFromTemplate.
type NewStreamFromTemplate struct {
	Recipient   string `json:"recipient"`
	TotalLocked uint64 `json:"total_locked"`
}

// GlobalStats defines model for GlobalStats.
type GlobalStats struct {
	TotalStreamsCreated   uint64 `json:"total_streams_created"`
	TotalVolumeLocked     uint64 `json:"total_volume_locked"`
	TotalVolumeClaimed    uint64 `json:"total_volume_claimed"`
	ActiveStreams         uint64 `json:"active_streams"`
	CompletedStreams      uint64 `json:"completed_streams"`
	CancelledStreams      uint64 `json:"cancelled_streams"`
	AverageStreamDuration uint64 `json:"average_stream_duration"`
	TotalFeesCollected    uint64 `json:"total_fees_collected"`
}

// UserStats defines model for UserStats.
type UserStats struct {
	User            string `json:"user"`
	StreamsCreated  uint64 `json:"streams_created"`
	StreamsReceived uint64 `json:"streams_received"`
	TotalSent       uint64 `json:"total_sent"`
	TotalReceived   uint64 `json:"total_received"`
	TotalFeesPaid   uint64 `json:"total_fees_paid"`
	AvgStreamSize   uint64 `json:"avg_stream_size"`
}

// GetNotificationsParams defines parameters for GetNotifications.
type GetNotificationsParams struct {
	// Unread restricts the listing to notifications not yet marked read.
	Unread *bool `form:"unread,omitempty" json:"unread,omitempty"`
}

// ListUserStreamsParams defines parameters for ListUserStreams.
type ListUserStreamsParams struct {
	Status *StreamStatus `form:"status,omitempty" json:"status,omitempty"`
}
