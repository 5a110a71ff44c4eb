package lifecycle

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mohtashimnawaz/satoshiflow/pkg/api"
	"github.com/mohtashimnawaz/satoshiflow/pkg/handlers/mocks"
	"github.com/mohtashimnawaz/satoshiflow/pkg/middleware"
	"github.com/mohtashimnawaz/satoshiflow/pkg/models"
	"github.com/mohtashimnawaz/satoshiflow/pkg/streams"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func request(method, target, caller string, body any) *http.Request {
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	if caller != "" {
		req = req.WithContext(middleware.WithCaller(req.Context(), caller))
	}
	return req
}

func TestCreateStream(t *testing.T) {
	newStream := api.NewStream{Recipient: "bob", SatsPerSec: 10, DurationSecs: 100, TotalLocked: 1000}
	params := streams.CreateParams{Recipient: "bob", SatsPerSec: 10, DurationSecs: 100, TotalLocked: 1000}

	t.Run("Success", func(t *testing.T) {
		svc := mocks.NewStreamService(t)
		svc.On("CreateStream", mock.Anything, "alice", params).Return(uint64(4), nil)

		rr := httptest.NewRecorder()
		NewStreamsHandler(svc).CreateStream(rr, request(http.MethodPost, "/streams", "alice", newStream))

		assert.Equal(t, http.StatusCreated, rr.Code)
		var created api.Created
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
		assert.Equal(t, uint64(4), created.Id)
	})

	t.Run("Bad Request - Invalid JSON", func(t *testing.T) {
		svc := mocks.NewStreamService(t)

		rr := httptest.NewRecorder()
		NewStreamsHandler(svc).CreateStream(rr, request(http.MethodPost, "/streams", "alice", "not-json"))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Missing Caller", func(t *testing.T) {
		svc := mocks.NewStreamService(t)

		rr := httptest.NewRecorder()
		NewStreamsHandler(svc).CreateStream(rr, request(http.MethodPost, "/streams", "", newStream))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Generic Storage Failure", func(t *testing.T) {
		svc := mocks.NewStreamService(t)
		svc.On("CreateStream", mock.Anything, "alice", params).Return(uint64(0), errors.New("something went wrong"))

		rr := httptest.NewRecorder()
		NewStreamsHandler(svc).CreateStream(rr, request(http.MethodPost, "/streams", "alice", newStream))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), "Failed to create stream")
	})
}

func TestGetStream(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := mocks.NewStreamService(t)
		svc.On("GetStream", mock.Anything, uint64(2)).Return(&models.Stream{
			Id: 2, Sender: "alice", Recipient: "bob", TotalLocked: 1000, TotalWithdrawn: 40, Status: models.ACTIVE,
		}, nil)

		rr := httptest.NewRecorder()
		NewStreamsHandler(svc).GetStream(rr, request(http.MethodGet, "/streams/2", "", nil), 2)

		assert.Equal(t, http.StatusOK, rr.Code)
		var got api.Stream
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "bob", got.Recipient)
		assert.Equal(t, uint64(40), got.TotalClaimed)
		assert.Equal(t, api.ACTIVE, got.Status)
	})

	t.Run("Not Found", func(t *testing.T) {
		svc := mocks.NewStreamService(t)
		svc.On("GetStream", mock.Anything, uint64(9)).Return(nil, fmt.Errorf("stream 9: %w", streams.ErrNotFound))

		rr := httptest.NewRecorder()
		NewStreamsHandler(svc).GetStream(rr, request(http.MethodGet, "/streams/9", "", nil), 9)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestTopUpStream(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := mocks.NewStreamService(t)
		svc.On("TopUp", mock.Anything, uint64(1), "alice", uint64(500)).Return(nil)

		rr := httptest.NewRecorder()
		NewStreamsHandler(svc).TopUpStream(rr, request(http.MethodPost, "/streams/1/top-up", "alice", api.TopUpRequest{Amount: 500}), 1)

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("Unauthorized", func(t *testing.T) {
		svc := mocks.NewStreamService(t)
		svc.On("TopUp", mock.Anything, uint64(1), "mallory", uint64(500)).
			Return(fmt.Errorf("%w: only the sender can top up", streams.ErrUnauthorized))

		rr := httptest.NewRecorder()
		NewStreamsHandler(svc).TopUpStream(rr, request(http.MethodPost, "/streams/1/top-up", "mallory", api.TopUpRequest{Amount: 500}), 1)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Contains(t, rr.Body.String(), "only the sender can top up")
	})
}

func TestPauseAndResume(t *testing.T) {
	t.Run("Pause Not Active", func(t *testing.T) {
		svc := mocks.NewStreamService(t)
		svc.On("Pause", mock.Anything, uint64(1), "alice").Return(streams.ErrNotActive)

		rr := httptest.NewRecorder()
		NewStreamsHandler(svc).PauseStream(rr, request(http.MethodPost, "/streams/1/pause", "alice", nil), 1)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Resume Success", func(t *testing.T) {
		svc := mocks.NewStreamService(t)
		svc.On("Resume", mock.Anything, uint64(1), "alice").Return(nil)

		rr := httptest.NewRecorder()
		NewStreamsHandler(svc).ResumeStream(rr, request(http.MethodPost, "/streams/1/resume", "alice", nil), 1)

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("Resume Invalid State", func(t *testing.T) {
		svc := mocks.NewStreamService(t)
		svc.On("Resume", mock.Anything, uint64(1), "alice").Return(fmt.Errorf("%w: stream is not paused", streams.ErrInvalidState))

		rr := httptest.NewRecorder()
		NewStreamsHandler(svc).ResumeStream(rr, request(http.MethodPost, "/streams/1/resume", "alice", nil), 1)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestCancelStream(t *testing.T) {
	svc := mocks.NewStreamService(t)
	svc.On("Cancel", mock.Anything, uint64(3), "alice").Return(models.CancelResult{Refund: 792, Fee: 8}, nil)

	rr := httptest.NewRecorder()
	NewStreamsHandler(svc).CancelStream(rr, request(http.MethodPost, "/streams/3/cancel", "alice", nil), 3)

	assert.Equal(t, http.StatusOK, rr.Code)
	var got api.CancelResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, api.CancelResult{Refund: 792, Fee: 8}, got)
}

func TestWithdrawals(t *testing.T) {
	t.Run("Claim Success", func(t *testing.T) {
		svc := mocks.NewStreamService(t)
		svc.On("Claim", mock.Anything, uint64(1), "bob").Return(uint64(250), nil)

		rr := httptest.NewRecorder()
		NewStreamsHandler(svc).ClaimStream(rr, request(http.MethodPost, "/streams/1/claim", "bob", nil), 1)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"amount": 250}`, rr.Body.String())
	})

	t.Run("Nothing To Claim", func(t *testing.T) {
		svc := mocks.NewStreamService(t)
		svc.On("Claim", mock.Anything, uint64(1), "bob").Return(uint64(0), streams.ErrNothingToClaim)

		rr := httptest.NewRecorder()
		NewStreamsHandler(svc).ClaimStream(rr, request(http.MethodPost, "/streams/1/claim", "bob", nil), 1)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("Reclaim Too Early", func(t *testing.T) {
		svc := mocks.NewStreamService(t)
		svc.On("Reclaim", mock.Anything, uint64(1), "alice").Return(uint64(0), streams.ErrTimeoutNotReached)

		rr := httptest.NewRecorder()
		NewStreamsHandler(svc).ReclaimStream(rr, request(http.MethodPost, "/streams/1/reclaim", "alice", nil), 1)

		assert.Equal(t, http.StatusTooEarly, rr.Code)
	})
}

func TestSearchStreams(t *testing.T) {
	svc := mocks.NewStreamService(t)
	svc.On("SearchStreams", mock.Anything, "alice", mock.MatchedBy(func(f models.StreamFilter) bool {
		return f.Status != nil && *f.Status == models.PAUSED && f.MinAmount != nil && *f.MinAmount == 100 && f.Sender == nil
	})).Return([]models.Stream{{Id: 3, Status: models.PAUSED}}, nil)

	rr := httptest.NewRecorder()
	body := `{"status": "PAUSED", "min_amount": 100}`
	NewStreamsHandler(svc).SearchStreams(rr, request(http.MethodPost, "/streams/search", "alice", body))

	assert.Equal(t, http.StatusOK, rr.Code)
	var got []api.Stream
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, uint64(3), got[0].Id)
}

func TestListUserStreams(t *testing.T) {
	list := []models.Stream{
		{Id: 0, Status: models.ACTIVE},
		{Id: 1, Status: models.COMPLETED},
		{Id: 2, Status: models.ACTIVE},
	}

	t.Run("All", func(t *testing.T) {
		svc := mocks.NewStreamService(t)
		svc.On("ListStreamsForUser", mock.Anything, "bob").Return(append([]models.Stream(nil), list...), nil)

		rr := httptest.NewRecorder()
		NewStreamsHandler(svc).ListUserStreams(rr, request(http.MethodGet, "/users/bob/streams", "", nil), "bob", api.ListUserStreamsParams{})

		var got []api.Stream
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Len(t, got, 3)
	})

	t.Run("By Status", func(t *testing.T) {
		svc := mocks.NewStreamService(t)
		svc.On("ListStreamsForUser", mock.Anything, "bob").Return(append([]models.Stream(nil), list...), nil)

		status := api.ACTIVE
		rr := httptest.NewRecorder()
		NewStreamsHandler(svc).ListUserStreams(rr, request(http.MethodGet, "/users/bob/streams?status=ACTIVE", "", nil), "bob", api.ListUserStreamsParams{Status: &status})

		var got []api.Stream
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, uint64(2), got[1].Id)
	})

	t.Run("Empty List Is An Array", func(t *testing.T) {
		svc := mocks.NewStreamService(t)
		svc.On("ListStreamsForUser", mock.Anything, "nobody").Return(nil, nil)

		rr := httptest.NewRecorder()
		NewStreamsHandler(svc).ListUserStreams(rr, request(http.MethodGet, "/users/nobody/streams", "", nil), "nobody", api.ListUserStreamsParams{})

		assert.Equal(t, "[]", strings.TrimSpace(rr.Body.String()))
	})
}

func TestMilestones(t *testing.T) {
	t.Run("Add Success", func(t *testing.T) {
		svc := mocks.NewStreamService(t)
		svc.On("AddMilestone", mock.Anything, "alice", uint64(1), uint64(500), models.AutoTopUpAction(200)).Return(uint64(0), nil)

		rr := httptest.NewRecorder()
		body := `{"trigger_amount": 500, "action": {"kind": "AUTO_TOP_UP", "amount": 200}}`
		NewStreamsHandler(svc).AddMilestone(rr, request(http.MethodPost, "/streams/1/milestones", "alice", body), 1)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.JSONEq(t, `{"id": 0}`, rr.Body.String())
	})

	t.Run("Add Invalid Action", func(t *testing.T) {
		svc := mocks.NewStreamService(t)
		svc.On("AddMilestone", mock.Anything, "alice", uint64(1), uint64(500), mock.Anything).
			Return(uint64(0), fmt.Errorf("%w: unknown milestone action", streams.ErrInvalidArgument))

		rr := httptest.NewRecorder()
		body := `{"trigger_amount": 500, "action": {"kind": "EXPLODE"}}`
		NewStreamsHandler(svc).AddMilestone(rr, request(http.MethodPost, "/streams/1/milestones", "alice", body), 1)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("List", func(t *testing.T) {
		svc := mocks.NewStreamService(t)
		svc.On("ListMilestones", mock.Anything, uint64(1)).Return([]models.Milestone{
			{Id: 0, StreamId: 1, TriggerAmount: 100, Action: models.NotifyAction("first"), Triggered: true, TriggeredAt: 50},
		}, nil)

		rr := httptest.NewRecorder()
		NewStreamsHandler(svc).ListMilestones(rr, request(http.MethodGet, "/streams/1/milestones", "", nil), 1)

		var got []api.Milestone
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, api.SENDNOTIFICATION, got[0].Action.Kind)
		require.NotNil(t, got[0].TriggeredAt)
		assert.Equal(t, uint64(50), *got[0].TriggeredAt)
	})
}

func TestGetStreamStats(t *testing.T) {
	svc := mocks.NewStreamService(t)
	svc.On("StreamStats", mock.Anything, uint64(1)).Return(&models.StreamProgress{StreamId: 1, Status: models.ACTIVE, PercentDone: 40}, nil)

	rr := httptest.NewRecorder()
	NewStreamsHandler(svc).GetStreamStats(rr, request(http.MethodGet, "/streams/1/stats", "", nil), 1)

	assert.Equal(t, http.StatusOK, rr.Code)
	var got api.StreamProgress
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, uint64(40), got.PercentDone)
}
