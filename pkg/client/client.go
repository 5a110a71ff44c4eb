// Package client is a typed HTTP client for the stream API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mohtashimnawaz/satoshiflow/pkg/api"
	"github.com/mohtashimnawaz/satoshiflow/pkg/middleware"
)

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

// Client calls the API as a single principal.
type Client struct {
	BaseURL   string
	Principal string
	HTTP      *http.Client
}

// New creates a Client. A nil httpClient uses http.DefaultClient.
func New(baseURL, principal string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		Principal: principal,
		HTTP:      httpClient,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(middleware.PrincipalHeader, c.Principal)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(msg))}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func streamPath(id uint64, suffix string) string {
	return "/streams/" + strconv.FormatUint(id, 10) + suffix
}

func (c *Client) CreateStream(ctx context.Context, req api.NewStream) (uint64, error) {
	var out api.Created
	err := c.do(ctx, http.MethodPost, "/streams", req, &out)
	return out.Id, err
}

func (c *Client) GetStream(ctx context.Context, id uint64) (*api.Stream, error) {
	var out api.Stream
	if err := c.do(ctx, http.MethodGet, streamPath(id, ""), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TopUp(ctx context.Context, id, amount uint64) error {
	return c.do(ctx, http.MethodPost, streamPath(id, "/top-up"), api.TopUpRequest{Amount: amount}, nil)
}

func (c *Client) Pause(ctx context.Context, id uint64) error {
	return c.do(ctx, http.MethodPost, streamPath(id, "/pause"), nil, nil)
}

func (c *Client) Resume(ctx context.Context, id uint64) error {
	return c.do(ctx, http.MethodPost, streamPath(id, "/resume"), nil, nil)
}

func (c *Client) Cancel(ctx context.Context, id uint64) (*api.CancelResult, error) {
	var out api.CancelResult
	if err := c.do(ctx, http.MethodPost, streamPath(id, "/cancel"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Claim(ctx context.Context, id uint64) (uint64, error) {
	var out api.AmountResult
	err := c.do(ctx, http.MethodPost, streamPath(id, "/claim"), nil, &out)
	return out.Amount, err
}

func (c *Client) Reclaim(ctx context.Context, id uint64) (uint64, error) {
	var out api.AmountResult
	err := c.do(ctx, http.MethodPost, streamPath(id, "/reclaim"), nil, &out)
	return out.Amount, err
}

func (c *Client) StreamStats(ctx context.Context, id uint64) (*api.StreamProgress, error) {
	var out api.StreamProgress
	if err := c.do(ctx, http.MethodGet, streamPath(id, "/stats"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUserStreams lists user's streams; a nil status lists all of them.
func (c *Client) ListUserStreams(ctx context.Context, user string, status *api.StreamStatus) ([]api.Stream, error) {
	path := "/users/" + url.PathEscape(user) + "/streams"
	if status != nil {
		path += "?status=" + url.QueryEscape(string(*status))
	}
	var out []api.Stream
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) SearchStreams(ctx context.Context, filter api.StreamFilter) ([]api.Stream, error) {
	var out []api.Stream
	err := c.do(ctx, http.MethodPost, "/streams/search", filter, &out)
	return out, err
}

func (c *Client) AddMilestone(ctx context.Context, id uint64, req api.NewMilestone) (uint64, error) {
	var out api.Created
	err := c.do(ctx, http.MethodPost, streamPath(id, "/milestones"), req, &out)
	return out.Id, err
}

func (c *Client) ListMilestones(ctx context.Context, id uint64) ([]api.Milestone, error) {
	var out []api.Milestone
	err := c.do(ctx, http.MethodGet, streamPath(id, "/milestones"), nil, &out)
	return out, err
}

func (c *Client) CreateTemplate(ctx context.Context, req api.NewTemplate) (uint64, error) {
	var out api.Created
	err := c.do(ctx, http.MethodPost, "/templates", req, &out)
	return out.Id, err
}

func (c *Client) ListTemplates(ctx context.Context) ([]api.StreamTemplate, error) {
	var out []api.StreamTemplate
	err := c.do(ctx, http.MethodGet, "/templates", nil, &out)
	return out, err
}

func (c *Client) CreateStreamFromTemplate(ctx context.Context, templateID uint64, req api.NewStreamFromTemplate) (uint64, error) {
	var out api.Created
	err := c.do(ctx, http.MethodPost, "/templates/"+strconv.FormatUint(templateID, 10)+"/streams", req, &out)
	return out.Id, err
}

func (c *Client) Notifications(ctx context.Context, unreadOnly bool) ([]api.Notification, error) {
	path := "/notifications"
	if unreadOnly {
		path += "?unread=true"
	}
	var out []api.Notification
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) MarkNotificationRead(ctx context.Context, id uint64) error {
	return c.do(ctx, http.MethodPost, "/notifications/"+strconv.FormatUint(id, 10)+"/read", nil, nil)
}

func (c *Client) GlobalStats(ctx context.Context) (*api.GlobalStats, error) {
	var out api.GlobalStats
	if err := c.do(ctx, http.MethodGet, "/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UserStats(ctx context.Context, user string) (*api.UserStats, error) {
	var out api.UserStats
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(user)+"/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
