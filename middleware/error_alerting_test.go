package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slackRecorder struct {
	mu       sync.Mutex
	payloads []map[string]any
}

func (r *slackRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.payloads)
}

func newSlackServer(t *testing.T) (*httptest.Server, *slackRecorder) {
	t.Helper()
	rec := &slackRecorder{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var payload map[string]any
		_ = json.Unmarshal(body, &payload)
		rec.mu.Lock()
		rec.payloads = append(rec.payloads, payload)
		rec.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)
	return server, rec
}

func TestHTTPMiddleware_RecoversPanic(t *testing.T) {
	server, rec := newSlackServer(t)
	m := NewErrorAlertMiddleware(SlackAlertConfig{WebhookURL: server.URL, Environment: "test", AppName: "kbbridge"})

	handler := m.HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/complete_project", nil))

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.JSONEq(t, `{"status":"error","message":"internal error"}`, resp.Body.String())
	assert.NotContains(t, resp.Body.String(), "boom")
	assert.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, 10*time.Millisecond)
}

func TestHTTPMiddleware_PassesThrough(t *testing.T) {
	m := NewErrorAlertMiddleware(SlackAlertConfig{})

	handler := m.HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusTeapot, resp.Code)
}

func TestAlertOnError_Deduplicates(t *testing.T) {
	server, rec := newSlackServer(t)
	m := NewErrorAlertMiddleware(SlackAlertConfig{WebhookURL: server.URL, AppName: "kbbridge"})
	current := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return current }

	m.AlertOnError(errors.New("missing access"), "Discord event: message_create")
	m.AlertOnError(errors.New("missing access"), "Discord event: message_create")
	assert.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, 10*time.Millisecond)

	current = current.Add(11 * time.Minute)
	m.AlertOnError(errors.New("missing access"), "Discord event: message_create")
	assert.Eventually(t, func() bool { return rec.count() == 2 }, time.Second, 10*time.Millisecond)
}

func TestWrapEventHandler_SwallowsPanicAndError(t *testing.T) {
	m := NewErrorAlertMiddleware(SlackAlertConfig{})

	assert.NotPanics(t, func() {
		m.WrapEventHandler("message_create", func() error { panic("nil map") })()
	})
	assert.NotPanics(t, func() {
		m.WrapEventHandler("message_create", func() error { return errors.New("failed") })()
	})
}

func TestWrapBackgroundTask(t *testing.T) {
	m := NewErrorAlertMiddleware(SlackAlertConfig{})

	err := m.WrapBackgroundTask("http server", func() error { return errors.New("address in use") })()
	assert.ErrorContains(t, err, "address in use")

	err = m.WrapBackgroundTask("discord bot", func() error { panic("gateway") })()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")

	assert.NoError(t, m.WrapBackgroundTask("noop", func() error { return nil })())
}

func TestBuildAlertMessage(t *testing.T) {
	m := NewErrorAlertMiddleware(SlackAlertConfig{Environment: "dev", AppName: "kbbridge", LogsURL: "https://logs.example.com"})

	msg := m.buildAlertMessage("boom", "HTTP POST /setup")

	assert.Equal(t, "🚨 [dev] [kbbridge] Error Alert", msg.Text)
	require.NotNil(t, msg.Blocks)
	assert.Len(t, msg.Blocks.BlockSet, 4)

	m.config.LogsURL = ""
	assert.Len(t, m.buildAlertMessage("boom", "ctx").Blocks.BlockSet, 3)
}
