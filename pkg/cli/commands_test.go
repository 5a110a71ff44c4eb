package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mohtashimnawaz/satoshiflow/pkg/api"
	"github.com/mohtashimnawaz/satoshiflow/pkg/client"
	"github.com/mohtashimnawaz/satoshiflow/pkg/clock"
	"github.com/mohtashimnawaz/satoshiflow/pkg/events"
	"github.com/mohtashimnawaz/satoshiflow/pkg/handlers"
	"github.com/mohtashimnawaz/satoshiflow/pkg/storage/memory"
	"github.com/mohtashimnawaz/satoshiflow/pkg/streams"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, server string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--server", server}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func decode[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}

func TestCommands(t *testing.T) {
	t.Setenv(PrincipalEnv, "")

	ctx := context.Background()
	store := memory.New()
	clk := clock.NewManual(10_000)
	svc := streams.New(store, clk, events.NewNotificationSink(store), streams.DefaultConfig())
	srv := httptest.NewServer(handlers.NewRouter(svc, slog.New(slog.NewTextHandler(io.Discard, nil)), nil))
	defer srv.Close()

	out, err := execute(t, srv.URL, "--as", "alice", "create",
		"--to", "bob", "--rate", "10", "--duration", "100", "--amount", "1000",
		"--title", "payroll", "--tag", "monthly", "--meta", "team=core")
	require.NoError(t, err)
	created := decode[api.Created](t, out)
	assert.Equal(t, uint64(0), created.Id)

	t.Run("Get", func(t *testing.T) {
		out, err := execute(t, srv.URL, "--as", "bob", "get", "0")
		require.NoError(t, err)
		st := decode[api.Stream](t, out)
		assert.Equal(t, "alice", st.Sender)
		require.NotNil(t, st.Title)
		assert.Equal(t, "payroll", *st.Title)
		require.NotNil(t, st.Metadata)
		assert.Equal(t, "core", (*st.Metadata)["team"])
	})

	t.Run("Milestones", func(t *testing.T) {
		out, err := execute(t, srv.URL, "--as", "alice", "milestones", "add", "0", "--at", "500", "--message", "halfway")
		require.NoError(t, err)
		assert.Equal(t, uint64(0), decode[api.Created](t, out).Id)

		out, err = execute(t, srv.URL, "--as", "bob", "milestones", "list", "0")
		require.NoError(t, err)
		milestones := decode[[]api.Milestone](t, out)
		require.Len(t, milestones, 1)
		assert.Equal(t, api.SENDNOTIFICATION, milestones[0].Action.Kind)
		assert.False(t, milestones[0].Triggered)
	})

	t.Run("Invalid Milestone Action", func(t *testing.T) {
		_, err := execute(t, srv.URL, "--as", "alice", "milestones", "add", "0", "--action", "explode")
		assert.ErrorContains(t, err, "invalid action")
	})

	t.Run("Claim", func(t *testing.T) {
		clk.Advance(30 * time.Second)
		_, err := svc.Tick(ctx)
		require.NoError(t, err)

		out, err := execute(t, srv.URL, "--as", "bob", "claim", "0")
		require.NoError(t, err)
		assert.Equal(t, uint64(300), decode[api.AmountResult](t, out).Amount)

		out, err = execute(t, srv.URL, "--as", "bob", "progress", "0")
		require.NoError(t, err)
		p := decode[api.StreamProgress](t, out)
		assert.Equal(t, uint64(300), p.TotalClaimed)
		assert.Equal(t, uint64(0), p.Buffer)
	})

	t.Run("Unauthorized Claim", func(t *testing.T) {
		_, err := execute(t, srv.URL, "--as", "alice", "claim", "0")
		var apiErr *client.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	})

	t.Run("Pause And List", func(t *testing.T) {
		out, err := execute(t, srv.URL, "--as", "alice", "pause", "0")
		require.NoError(t, err)
		assert.Equal(t, "stream 0 paused\n", out)

		out, err = execute(t, srv.URL, "--as", "bob", "list", "--status", "PAUSED")
		require.NoError(t, err)
		assert.Len(t, decode[[]api.Stream](t, out), 1)

		out, err = execute(t, srv.URL, "--as", "bob", "list", "alice", "--status", "ACTIVE")
		require.NoError(t, err)
		assert.Empty(t, decode[[]api.Stream](t, out))

		out, err = execute(t, srv.URL, "--as", "alice", "resume", "0")
		require.NoError(t, err)
		assert.Equal(t, "stream 0 resumed\n", out)
	})

	t.Run("Templates", func(t *testing.T) {
		out, err := execute(t, srv.URL, "--as", "alice", "templates", "create", "--name", "salary", "--rate", "5", "--duration", "60")
		require.NoError(t, err)
		tid := decode[api.Created](t, out).Id

		out, err = execute(t, srv.URL, "--as", "alice", "templates", "use", "0", "--to", "carol", "--amount", "300")
		require.NoError(t, err)
		assert.Equal(t, uint64(1), decode[api.Created](t, out).Id)

		out, err = execute(t, srv.URL, "--as", "carol", "templates", "list")
		require.NoError(t, err)
		templates := decode[[]api.StreamTemplate](t, out)
		require.Len(t, templates, 1)
		assert.Equal(t, tid, templates[0].Id)
		assert.Equal(t, uint64(1), templates[0].UsageCount)

		out, err = execute(t, srv.URL, "--as", "alice", "search", "--recipient", "carol", "--max-amount", "300")
		require.NoError(t, err)
		found := decode[[]api.Stream](t, out)
		require.Len(t, found, 1)
		assert.Equal(t, uint64(1), found[0].Id)
	})

	t.Run("Notifications", func(t *testing.T) {
		out, err := execute(t, srv.URL, "--as", "bob", "notifications", "list", "--unread")
		require.NoError(t, err)
		assert.NotEmpty(t, decode[[]api.Notification](t, out))

		out, err = execute(t, srv.URL, "--as", "bob", "notifications", "read", "1")
		require.NoError(t, err)
		assert.Equal(t, "notification 1 marked read\n", out)
	})

	t.Run("Stats", func(t *testing.T) {
		out, err := execute(t, srv.URL, "--as", "alice", "stats")
		require.NoError(t, err)
		assert.Equal(t, uint64(2), decode[api.GlobalStats](t, out).TotalStreamsCreated)

		out, err = execute(t, srv.URL, "--as", "alice", "stats", "bob")
		require.NoError(t, err)
		assert.Equal(t, uint64(1), decode[api.UserStats](t, out).StreamsReceived)
	})

	t.Run("Missing Principal", func(t *testing.T) {
		_, err := execute(t, srv.URL, "get", "0")
		assert.ErrorContains(t, err, "--as is required")
	})

	t.Run("Invalid Id", func(t *testing.T) {
		_, err := execute(t, srv.URL, "--as", "alice", "get", "abc")
		assert.ErrorContains(t, err, "invalid id")
	})
}
