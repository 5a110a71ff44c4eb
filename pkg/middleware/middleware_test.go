package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrincipal(t *testing.T) {
	var seen string
	h := Principal(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CallerFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("Success", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/streams/1", nil)
		req.Header.Set(PrincipalHeader, " alice ")
		rr := httptest.NewRecorder()

		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, "alice", seen)
	})

	t.Run("Missing Header", func(t *testing.T) {
		seen = ""
		rr := httptest.NewRecorder()

		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/streams/1", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Empty(t, seen)
	})
}

func TestStructuredLogger(t *testing.T) {
	tests := []struct {
		name   string
		status int
		msg    string
	}{
		{"Success", http.StatusCreated, "request completed"},
		{"Client Error", http.StatusNotFound, "request rejected"},
		{"Server Error", http.StatusInternalServerError, "server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			h := NewStructuredLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			req := httptest.NewRequest(http.MethodPost, "/streams", nil)
			req.Header.Set(PrincipalHeader, "alice")
			h.ServeHTTP(httptest.NewRecorder(), req)

			var entry struct {
				Msg     string `json:"msg"`
				Request struct {
					Method string `json:"method"`
					Path   string `json:"path"`
					Caller string `json:"caller"`
				} `json:"request"`
				Response struct {
					Status int `json:"status"`
				} `json:"response"`
			}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.msg, entry.Msg)
			assert.Equal(t, "POST", entry.Request.Method)
			assert.Equal(t, "/streams", entry.Request.Path)
			assert.Equal(t, "alice", entry.Request.Caller)
			assert.Equal(t, tt.status, entry.Response.Status)
		})
	}
}
