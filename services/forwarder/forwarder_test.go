package forwarder

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	webhookclient "kbbridge/clients/webhook"
	"kbbridge/core"
	"kbbridge/models"
)

func mentionEvent() models.ClassifiedEvent {
	return models.ClassifiedEvent{
		Event: models.DiscordMessageEvent{
			GuildID:   "guild-789",
			ChannelID: "channel-456",
			MessageID: "msg-123",
			UserID:    "user-abc",
			UserName:  "alice",
			Content:   "<@bot-xyz> hi",
			Kind:      models.ConversationKindGuildText,
		},
		Category: models.EventCategoryMention,
	}
}

func testHistory() []models.ContextEntry {
	return []models.ContextEntry{
		{Role: models.ContextRoleUser, Name: "alice", Content: "earlier"},
		{Role: models.ContextRoleAssistant, Name: "kb-bot", Content: "reply"},
		{Role: models.ContextRoleUser, Name: "alice", Content: "<@bot-xyz> hi"},
	}
}

func TestForward_Outcomes(t *testing.T) {
	tests := []struct {
		name           string
		statusCode     int
		err            error
		expectedStatus models.ForwardStatus
	}{
		{name: "200 is delivered", statusCode: http.StatusOK, expectedStatus: models.ForwardStatusDelivered},
		{name: "204 is delivered", statusCode: http.StatusNoContent, expectedStatus: models.ForwardStatusDelivered},
		{name: "404 is rejected", statusCode: http.StatusNotFound, expectedStatus: models.ForwardStatusRejected},
		{name: "500 is rejected", statusCode: http.StatusInternalServerError, expectedStatus: models.ForwardStatusRejected},
		{name: "302 is rejected", statusCode: http.StatusFound, expectedStatus: models.ForwardStatusRejected},
		{name: "transport error is failed", err: errors.New("connection refused"), expectedStatus: models.ForwardStatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			webhook := new(webhookclient.MockWebhookClient)
			webhook.On("PostJSON", mock.Anything, mock.AnythingOfType("models.ForwardPayload"), mock.Anything).
				Return(tt.statusCode, tt.err).Once()
			service := NewForwarderService(webhook, time.Second)

			outcome := service.Forward(context.Background(), mentionEvent(), testHistory())

			assert.Equal(t, tt.expectedStatus, outcome.Status)
			if tt.err != nil {
				assert.ErrorIs(t, outcome.Err, tt.err)
			} else {
				assert.Equal(t, tt.statusCode, outcome.StatusCode)
				assert.NoError(t, outcome.Err)
			}
			webhook.AssertNumberOfCalls(t, "PostJSON", 1)
		})
	}
}

func TestForward_SendsPayloadAndRequestID(t *testing.T) {
	webhook := new(webhookclient.MockWebhookClient)
	webhook.On("PostJSON", mock.Anything, mock.Anything, mock.Anything).Return(http.StatusOK, nil)
	service := NewForwarderService(webhook, time.Second)

	service.Forward(context.Background(), mentionEvent(), testHistory())

	call := webhook.Calls[0]
	payload := call.Arguments.Get(1).(models.ForwardPayload)
	headers := call.Arguments.Get(2).(map[string]string)
	assert.Equal(t, BuildPayload(mentionEvent(), testHistory()), payload)
	assert.True(t, core.IsValidID(headers["X-Request-ID"]))

	ctx := call.Arguments.Get(0).(context.Context)
	_, hasDeadline := ctx.Deadline()
	assert.True(t, hasDeadline, "delivery must be bounded by a timeout")
}

func TestForward_UnqualifiedEventIsNotSent(t *testing.T) {
	webhook := new(webhookclient.MockWebhookClient)
	service := NewForwarderService(webhook, time.Second)
	event := mentionEvent()
	event.Category = models.EventCategoryUnqualified

	outcome := service.Forward(context.Background(), event, nil)

	assert.Equal(t, models.ForwardStatusFailed, outcome.Status)
	webhook.AssertNotCalled(t, "PostJSON", mock.Anything, mock.Anything, mock.Anything)
}

func TestForward_TimeoutIsFailed(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	service := NewForwarderService(webhookclient.NewWebhookClient(&http.Client{}, server.URL), 50*time.Millisecond)

	outcome := service.Forward(context.Background(), mentionEvent(), testHistory())

	assert.Equal(t, models.ForwardStatusFailed, outcome.Status)
	assert.ErrorIs(t, outcome.Err, context.DeadlineExceeded)
}

func TestForward_WireFormat(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	service := NewForwarderService(webhookclient.NewWebhookClient(&http.Client{}, server.URL), time.Second)
	outcome := service.Forward(context.Background(), mentionEvent(), testHistory())

	require.Equal(t, models.ForwardStatusDelivered, outcome.Status)
	assert.Equal(t, "user-abc", body["userId"])
	assert.Equal(t, "alice", body["userName"])
	assert.Equal(t, "channel-456", body["channelId"])
	assert.Equal(t, "MENTION", body["type"])
	assert.NotContains(t, body, "threadId")
	assert.NotContains(t, body, "threadName")

	history := body["history"].([]any)
	require.Len(t, history, 3)
	assert.Equal(t, map[string]any{"role": "assistant", "name": "kb-bot", "content": "reply"}, history[1])
}

func TestBuildPayload(t *testing.T) {
	t.Run("direct message", func(t *testing.T) {
		event := mentionEvent()
		event.Category = models.EventCategoryDirectMessage
		event.Event.Kind = models.ConversationKindDirectMessage

		payload := BuildPayload(event, nil)

		assert.Equal(t, models.EventCategoryDirectMessage, payload.Type)
		assert.NotNil(t, payload.History, "history is always an array")
		assert.Empty(t, payload.ThreadID)
	})

	t.Run("thread reply carries thread identity", func(t *testing.T) {
		event := mentionEvent()
		event.Category = models.EventCategoryThreadReply
		event.Event.Kind = models.ConversationKindGuildThread
		event.Event.ChannelID = "thread-123"
		event.Event.ThreadName = "release planning"

		payload := BuildPayload(event, testHistory())

		assert.Equal(t, models.EventCategoryThreadReply, payload.Type)
		assert.Equal(t, "thread-123", payload.ThreadID)
		assert.Equal(t, "release planning", payload.ThreadName)
		assert.Equal(t, "thread-123", payload.ChannelID)
	})

	t.Run("mention inside a thread does not carry thread fields", func(t *testing.T) {
		event := mentionEvent()
		event.Event.Kind = models.ConversationKindGuildThread
		event.Event.ThreadName = "release planning"

		payload := BuildPayload(event, nil)

		assert.Empty(t, payload.ThreadID)
		assert.Empty(t, payload.ThreadName)
	})
}
