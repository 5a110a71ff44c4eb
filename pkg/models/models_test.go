package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func u64(v uint64) *uint64 { return &v }
func str(v string) *string { return &v }

func TestStreamFilterMatches(t *testing.T) {
	s := &Stream{
		Id:          1,
		Sender:      "alice",
		Recipient:   "bob",
		TotalLocked: 1000,
		StartTime:   100,
		EndTime:     200,
		Status:      ACTIVE,
	}
	paused := PAUSED

	tests := []struct {
		name   string
		filter StreamFilter
		want   bool
	}{
		{"Empty", StreamFilter{}, true},
		{"Status Mismatch", StreamFilter{Status: &paused}, false},
		{"Amount In Range", StreamFilter{MinAmount: u64(1000), MaxAmount: u64(1000)}, true},
		{"Amount Too Small", StreamFilter{MinAmount: u64(1001)}, false},
		{"Amount Too Large", StreamFilter{MaxAmount: u64(999)}, false},
		{"Duration Bounds", StreamFilter{MinDuration: u64(100), MaxDuration: u64(100)}, true},
		{"Duration Too Short", StreamFilter{MinDuration: u64(101)}, false},
		{"Sender", StreamFilter{Sender: str("alice")}, true},
		{"Wrong Recipient", StreamFilter{Recipient: str("carol")}, false},
		{"Created After", StreamFilter{CreatedAfter: u64(101)}, false},
		{"Created Before", StreamFilter{CreatedBefore: u64(100)}, true},
		{"All Constraints AND-ed", StreamFilter{Sender: str("alice"), MaxAmount: u64(10)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(s))
		})
	}
}

func TestStreamHelpers(t *testing.T) {
	s := &Stream{StartTime: 10, EndTime: 5, TotalLocked: 10, TotalReleased: 20}
	assert.Equal(t, uint64(0), s.Duration())
	assert.Equal(t, uint64(0), s.Remaining())

	s = &Stream{Title: str("rent"), Tags: []string{"a"}, Metadata: map[string]string{"k": "v"}}
	c := s.Clone()
	*c.Title = "changed"
	c.Tags[0] = "b"
	c.Metadata["k"] = "w"
	assert.Equal(t, "rent", *s.Title)
	assert.Equal(t, "a", s.Tags[0])
	assert.Equal(t, "v", s.Metadata["k"])
}

func TestMilestoneActionValidate(t *testing.T) {
	assert.NoError(t, NotifyAction("half way").Validate())
	assert.NoError(t, AutoClaimAction().Validate())
	assert.NoError(t, AutoPauseAction().Validate())
	assert.NoError(t, AutoTopUpAction(5).Validate())

	assert.Error(t, AutoTopUpAction(0).Validate())
	assert.Error(t, MilestoneAction{Kind: AUTO_PAUSE, Amount: 3}.Validate())
	assert.Error(t, MilestoneAction{Kind: "EXPLODE"}.Validate())
}

func TestStreamStatus(t *testing.T) {
	assert.True(t, CANCELLED.IsTerminal())
	assert.True(t, COMPLETED.IsTerminal())
	assert.False(t, PAUSED.IsTerminal())
	assert.False(t, StreamStatus("NOPE").Valid())
}
