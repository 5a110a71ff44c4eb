package models

// NotificationType classifies lifecycle and milestone events.
type NotificationType string

const (
	StreamCreated    NotificationType = "STREAM_CREATED"
	StreamClaimed    NotificationType = "STREAM_CLAIMED"
	StreamTopUp      NotificationType = "STREAM_TOP_UP"
	StreamPaused     NotificationType = "STREAM_PAUSED"
	StreamResumed    NotificationType = "STREAM_RESUMED"
	StreamCancelled  NotificationType = "STREAM_CANCELLED"
	StreamCompleted  NotificationType = "STREAM_COMPLETED"
	StreamReclaimed  NotificationType = "STREAM_RECLAIMED"
	MilestoneReached NotificationType = "MILESTONE_REACHED"
	LowBalance       NotificationType = "LOW_BALANCE"
	ClaimReminder    NotificationType = "CLAIM_REMINDER"
)

// Notification is a message stored for a single user.
type Notification struct {
	Id        uint64           `json:"id" dynamodbav:"id"`
	User      string           `json:"user" dynamodbav:"user"`
	StreamId  uint64           `json:"stream_id" dynamodbav:"stream_id"`
	Type      NotificationType `json:"type" dynamodbav:"type"`
	Message   string           `json:"message" dynamodbav:"message"`
	Timestamp uint64           `json:"timestamp" dynamodbav:"timestamp"`
	Read      bool             `json:"read" dynamodbav:"read"`
}

// StreamTemplate is a reusable (rate, duration) pair.
type StreamTemplate struct {
	Id           uint64 `json:"id" dynamodbav:"id"`
	Name         string `json:"name" dynamodbav:"name"`
	Description  string `json:"description" dynamodbav:"description"`
	DurationSecs uint64 `json:"duration_secs" dynamodbav:"duration_secs"`
	SatsPerSec   uint64 `json:"sats_per_sec" dynamodbav:"sats_per_sec"`
	Creator      string `json:"creator" dynamodbav:"creator"`
	CreatedAt    uint64 `json:"created_at" dynamodbav:"created_at"`
	UsageCount   uint64 `json:"usage_count" dynamodbav:"usage_count"`
}

// StreamStats aggregates activity across all streams, or describes a single stream.
type StreamStats struct {
	TotalStreamsCreated   uint64 `json:"total_streams_created" dynamodbav:"total_streams_created"`
	TotalVolumeLocked     uint64 `json:"total_volume_locked" dynamodbav:"total_volume_locked"`
	TotalVolumeClaimed    uint64 `json:"total_volume_claimed" dynamodbav:"total_volume_claimed"`
	ActiveStreams         uint64 `json:"active_streams" dynamodbav:"active_streams"`
	CompletedStreams      uint64 `json:"completed_streams" dynamodbav:"completed_streams"`
	CancelledStreams      uint64 `json:"cancelled_streams" dynamodbav:"cancelled_streams"`
	AverageStreamDuration uint64 `json:"average_stream_duration" dynamodbav:"average_stream_duration"`
	TotalDuration         uint64 `json:"-" dynamodbav:"total_duration"`
	TotalFeesCollected    uint64 `json:"total_fees_collected" dynamodbav:"total_fees_collected"`
}

// UserStats aggregates a single principal's activity.
type UserStats struct {
	User            string `json:"user" dynamodbav:"user"`
	StreamsCreated  uint64 `json:"streams_created" dynamodbav:"streams_created"`
	StreamsReceived uint64 `json:"streams_received" dynamodbav:"streams_received"`
	TotalSent       uint64 `json:"total_sent" dynamodbav:"total_sent"`
	TotalReceived   uint64 `json:"total_received" dynamodbav:"total_received"`
	TotalFeesPaid   uint64 `json:"total_fees_paid" dynamodbav:"total_fees_paid"`
	AvgStreamSize   uint64 `json:"avg_stream_size" dynamodbav:"avg_stream_size"`
}

// StreamProgress is a point-in-time view of a single stream.
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
