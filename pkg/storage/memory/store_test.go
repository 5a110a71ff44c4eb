package memory

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/mohtashimnawaz/satoshiflow/pkg/models"
	"github.com/mohtashimnawaz/satoshiflow/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStream(sender, recipient string) *models.Stream {
	return &models.Stream{
		Sender:      sender,
		Recipient:   recipient,
		SatsPerSec:  10,
		StartTime:   100,
		EndTime:     200,
		TotalLocked: 1000,
		Status:      models.ACTIVE,
	}
}

func TestInsertAndGetStream(t *testing.T) {
	ctx := context.Background()
	store := New()

	first, err := store.InsertStream(ctx, newStream("alice", "bob"))
	require.NoError(t, err)
	second, err := store.InsertStream(ctx, newStream("alice", "carol"))
	require.NoError(t, err)

	assert.Equal(t, uint64(0), first)
	assert.Equal(t, uint64(1), second)

	t.Run("Success", func(t *testing.T) {
		got, err := store.GetStream(ctx, second)
		require.NoError(t, err)
		assert.Equal(t, "carol", got.Recipient)
		assert.Equal(t, int64(1), got.Version)
	})

	t.Run("Not Found", func(t *testing.T) {
		_, err := store.GetStream(ctx, 42)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("Returned Copies Are Detached", func(t *testing.T) {
		got, err := store.GetStream(ctx, first)
		require.NoError(t, err)
		got.Buffer = 999

		again, err := store.GetStream(ctx, first)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), again.Buffer)
	})
}

func TestUpdateStream(t *testing.T) {
	ctx := context.Background()
	store := New()
	id, err := store.InsertStream(ctx, newStream("alice", "bob"))
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		updated, err := store.UpdateStream(ctx, id, func(s *models.Stream) error {
			s.TotalLocked += 500
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(1500), updated.TotalLocked)
		assert.Equal(t, int64(2), updated.Version)
	})

	t.Run("Mutator Error Leaves Record Unchanged", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := store.UpdateStream(ctx, id, func(s *models.Stream) error {
			s.TotalLocked = 0
			return boom
		})
		assert.ErrorIs(t, err, boom)

		got, err := store.GetStream(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, uint64(1500), got.TotalLocked)
	})

	t.Run("Not Found", func(t *testing.T) {
		_, err := store.UpdateStream(ctx, 99, func(s *models.Stream) error { return nil })
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestListActiveStreams(t *testing.T) {
	ctx := context.Background()
	store := New()
	a, _ := store.InsertStream(ctx, newStream("alice", "bob"))
	b, _ := store.InsertStream(ctx, newStream("alice", "bob"))

	_, err := store.UpdateStream(ctx, a, func(s *models.Stream) error {
		s.Status = models.CANCELLED
		return nil
	})
	require.NoError(t, err)

	active, err := store.ListActiveStreams(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, b, active[0].Id)
}

func TestSearchStreams(t *testing.T) {
	ctx := context.Background()
	store := New()
	store.InsertStream(ctx, newStream("alice", "bob"))
	store.InsertStream(ctx, newStream("carol", "alice"))
	store.InsertStream(ctx, newStream("carol", "dave"))

	t.Run("List By Participant", func(t *testing.T) {
		streams, err := store.ListStreamsByParticipant(ctx, "alice")
		require.NoError(t, err)
		ids := []uint64{}
		for _, s := range streams {
			ids = append(ids, s.Id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		assert.Equal(t, []uint64{0, 1}, ids)
	})

	t.Run("Filter Restricted To Caller", func(t *testing.T) {
		sender := "carol"
		streams, err := store.SearchStreams(ctx, "alice", models.StreamFilter{Sender: &sender})
		require.NoError(t, err)
		require.Len(t, streams, 1)
		assert.Equal(t, uint64(1), streams[0].Id)
	})
}

func TestAccrueStream(t *testing.T) {
	ctx := context.Background()
	store := New()
	id, _ := store.InsertStream(ctx, newStream("alice", "bob"))
	low, _ := store.AddMilestone(ctx, &models.Milestone{StreamId: id, TriggerAmount: 100, Action: models.AutoPauseAction()})
	high, _ := store.AddMilestone(ctx, &models.Milestone{StreamId: id, TriggerAmount: 900, Action: models.AutoClaimAction()})
	store.AddMilestone(ctx, &models.Milestone{StreamId: id + 1, TriggerAmount: 0, Action: models.AutoClaimAction()})

	t.Run("Latches Returned Milestones", func(t *testing.T) {
		stream, fired, err := store.AccrueStream(ctx, id, func(s *models.Stream, pending []models.Milestone) ([]models.Milestone, error) {
			assert.Len(t, pending, 2)
			s.TotalReleased = 500
			var out []models.Milestone
			for _, m := range pending {
				if m.TriggerAmount <= s.TotalReleased {
					out = append(out, m)
				}
			}
			return out, nil
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(500), stream.TotalReleased)
		require.Len(t, fired, 1)
		assert.Equal(t, low, fired[0].Id)
		assert.True(t, fired[0].Triggered)
	})

	t.Run("Triggered Milestones Are No Longer Pending", func(t *testing.T) {
		_, _, err := store.AccrueStream(ctx, id, func(s *models.Stream, pending []models.Milestone) ([]models.Milestone, error) {
			require.Len(t, pending, 1)
			assert.Equal(t, high, pending[0].Id)
			return nil, nil
		})
		require.NoError(t, err)
	})

	t.Run("Refuses To Latch Twice", func(t *testing.T) {
		milestones, _ := store.ListMilestones(ctx, id)
		var already models.Milestone
		for _, m := range milestones {
			if m.Id == low {
				already = m
			}
		}
		_, _, err := store.AccrueStream(ctx, id, func(s *models.Stream, pending []models.Milestone) ([]models.Milestone, error) {
			s.TotalReleased = 1000
			return []models.Milestone{already}, nil
		})
		assert.ErrorIs(t, err, storage.ErrConflict)

		got, _ := store.GetStream(ctx, id)
		assert.Equal(t, uint64(500), got.TotalReleased)
	})
}

func TestNotifications(t *testing.T) {
	ctx := context.Background()
	store := New()
	id, _ := store.AddNotification(ctx, &models.Notification{User: "bob", Message: "hi"})
	store.AddNotification(ctx, &models.Notification{User: "alice", Message: "hello"})

	list, err := store.ListNotifications(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].Read)

	assert.ErrorIs(t, store.MarkNotificationRead(ctx, id, "alice"), storage.ErrNotOwner)
	assert.ErrorIs(t, store.MarkNotificationRead(ctx, 77, "bob"), storage.ErrNotFound)
	require.NoError(t, store.MarkNotificationRead(ctx, id, "bob"))

	list, _ = store.ListNotifications(ctx, "bob")
	assert.True(t, list[0].Read)
}

func TestTemplates(t *testing.T) {
	ctx := context.Background()
	store := New()
	id, err := store.CreateTemplate(ctx, &models.StreamTemplate{Name: "salary", SatsPerSec: 5, DurationSecs: 60})
	require.NoError(t, err)

	updated, err := store.IncrementTemplateUsage(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), updated.UsageCount)

	_, err = store.GetTemplate(ctx, id+1)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	all, _ := store.ListTemplates(ctx)
	assert.Len(t, all, 1)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	store := New()
	require.NoError(t, store.RecordStreamCreated(ctx, "alice", "bob", 1000, 100))
	require.NoError(t, store.RecordStreamCreated(ctx, "alice", "carol", 500, 300))
	require.NoError(t, store.RecordStreamClaimed(ctx, "bob", 200))
	require.NoError(t, store.RecordStreamCancelled(ctx, "alice", 8))
	require.NoError(t, store.RecordStreamCompleted(ctx))

	global, err := store.GetGlobalStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), global.TotalStreamsCreated)
	assert.Equal(t, uint64(1500), global.TotalVolumeLocked)
	assert.Equal(t, uint64(200), global.TotalVolumeClaimed)
	assert.Equal(t, uint64(0), global.ActiveStreams)
	assert.Equal(t, uint64(1), global.CancelledStreams)
	assert.Equal(t, uint64(1), global.CompletedStreams)
	assert.Equal(t, uint64(200), global.AverageStreamDuration)
	assert.Equal(t, uint64(8), global.TotalFeesCollected)

	alice, err := store.GetUserStats(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), alice.StreamsCreated)
	assert.Equal(t, uint64(750), alice.AvgStreamSize)
	assert.Equal(t, uint64(8), alice.TotalFeesPaid)

	bob, err := store.GetUserStats(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), bob.StreamsReceived)
	assert.Equal(t, uint64(200), bob.TotalReceived)

	_, err = store.GetUserStats(ctx, "nobody")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestConnections(t *testing.T) {
	ctx := context.Background()
	store := New()
	require.NoError(t, store.AddConnection(ctx, "c1"))
	require.NoError(t, store.AddConnection(ctx, "c2"))
	require.NoError(t, store.RemoveConnection(ctx, "c1"))

	ids, err := store.GetAllConnections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c2"}, ids)
}
