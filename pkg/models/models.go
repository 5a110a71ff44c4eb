package models

// StreamStatus defines the possible states of a stream.
type StreamStatus string

const (
	ACTIVE    StreamStatus = "ACTIVE"
	PAUSED    StreamStatus = "PAUSED"
	CANCELLED StreamStatus = "CANCELLED"
	COMPLETED StreamStatus = "COMPLETED"
)

// IsTerminal reports whether no further transition is possible from s.
func (s StreamStatus) IsTerminal() bool {
	return s == CANCELLED || s == COMPLETED
}

// Valid reports whether s is one of the known statuses.
func (s StreamStatus) Valid() bool {
	switch s {
	case ACTIVE, PAUSED, CANCELLED, COMPLETED:
		return true
	}
	return false
}

// Stream represents the internal domain model for a payment stream.
// All times are unix seconds.
type Stream struct {
	Id              uint64            `json:"id" dynamodbav:"id"`
	Sender          string            `json:"sender" dynamodbav:"sender"`
	Recipient       string            `json:"recipient" dynamodbav:"recipient"`
	SatsPerSec      uint64            `json:"sats_per_sec" dynamodbav:"sats_per_sec"`
	StartTime       uint64            `json:"start_time" dynamodbav:"start_time"`
	EndTime         uint64            `json:"end_time" dynamodbav:"end_time"`
	TotalLocked     uint64            `json:"total_locked" dynamodbav:"total_locked"`
	TotalReleased   uint64            `json:"total_released" dynamodbav:"total_released"`
	TotalWithdrawn  uint64            `json:"total_withdrawn" dynamodbav:"total_withdrawn"`
	Buffer          uint64            `json:"buffer" dynamodbav:"buffer"`
	LastReleaseTime uint64            `json:"last_release_time" dynamodbav:"last_release_time"`
	LastClaimTime   uint64            `json:"last_claim_time" dynamodbav:"last_claim_time"`
	Status          StreamStatus      `json:"status" dynamodbav:"status"`
	Title           *string           `json:"title,omitempty" dynamodbav:"title,omitempty"`
	Description     *string           `json:"description,omitempty" dynamodbav:"description,omitempty"`
	Tags            []string          `json:"tags,omitempty" dynamodbav:"tags,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty" dynamodbav:"metadata,omitempty"`
	Version         int64             `json:"version" dynamodbav:"version"`
}

// Duration returns the configured length of the stream in seconds.
func (s *Stream) Duration() uint64 {
	if s.EndTime < s.StartTime {
		return 0
	}
	return s.EndTime - s.StartTime
}

// Remaining returns the locked amount not yet released.
func (s *Stream) Remaining() uint64 {
	if s.TotalReleased > s.TotalLocked {
		return 0
	}
	return s.TotalLocked - s.TotalReleased
}

// Clone returns a deep copy so callers never share slices or maps with the store.
func (s *Stream) Clone() *Stream {
	c := *s
	if s.Title != nil {
		t := *s.Title
		c.Title = &t
	}
	if s.Description != nil {
		d := *s.Description
		c.Description = &d
	}
	if s.Tags != nil {
		c.Tags = append([]string(nil), s.Tags...)
	}
	if s.Metadata != nil {
		c.Metadata = make(map[string]string, len(s.Metadata))
		for k, v := range s.Metadata {
			c.Metadata[k] = v
		}
	}
	return &c
}

// CancelResult is the settlement the boundary performs after a cancellation.
type CancelResult struct {
	Refund uint64 `json:"refund"`
	Fee    uint64 `json:"fee"`
}

// StreamFilter narrows a search. Nil fields impose no constraint; the rest are AND-ed.
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

// Matches reports whether s satisfies every present constraint.
func (f StreamFilter) Matches(s *Stream) bool {
	if f.Status != nil && s.Status != *f.Status {
		return false
	}
	if f.MinAmount != nil && s.TotalLocked < *f.MinAmount {
		return false
	}
	if f.MaxAmount != nil && s.TotalLocked > *f.MaxAmount {
		return false
	}
	if f.MinDuration != nil && s.Duration() < *f.MinDuration {
		return false
	}
	if f.MaxDuration != nil && s.Duration() > *f.MaxDuration {
		return false
	}
	if f.Sender != nil && s.Sender != *f.Sender {
		return false
	}
	if f.Recipient != nil && s.Recipient != *f.Recipient {
		return false
	}
	if f.CreatedAfter != nil && s.StartTime < *f.CreatedAfter {
		return false
	}
	if f.CreatedBefore != nil && s.StartTime > *f.CreatedBefore {
		return false
	}
	return true
}

// Involves reports whether principal is the sender or recipient of s.
func (s *Stream) Involves(principal string) bool {
	return s.Sender == principal || s.Recipient == principal
}
