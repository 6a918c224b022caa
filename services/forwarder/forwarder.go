package forwarder

import (
	"context"
	"errors"
	"time"

	"kbbridge/clients"
	"kbbridge/core"
	"kbbridge/core/log"
	"kbbridge/models"
)

const DefaultTimeout = 15 * time.Second

// ForwarderService implements services.ForwarderService
type ForwarderService struct {
	webhookClient clients.WebhookClient
	timeout       time.Duration
}

func NewForwarderService(webhookClient clients.WebhookClient, timeout time.Duration) *ForwarderService {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ForwarderService{
		webhookClient: webhookClient,
		timeout:       timeout,
	}
}

// Forward posts the payload exactly once. Every result, including transport
// failures, is reported through the returned outcome.
func (s *ForwarderService) Forward(
	ctx context.Context,
	event models.ClassifiedEvent,
	history []models.ContextEntry,
) models.ForwardOutcome {
	if !event.Qualified() {
		return models.Failed(errors.New("refusing to forward an unqualified event"))
	}

	forwardID := core.NewID("fwd")
	payload := BuildPayload(event, history)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	log.Info("📤 Forwarding message to webhook",
		"forward_id", forwardID,
		"type", payload.Type,
		"channel_id", payload.ChannelID,
		"user_id", payload.UserID,
		"history", len(payload.History))

	statusCode, err := s.webhookClient.PostJSON(ctx, payload, map[string]string{"X-Request-ID": forwardID})
	outcome := interpret(statusCode, err)

	switch outcome.Status {
	case models.ForwardStatusDelivered:
		log.Info("✅ Webhook accepted message", "forward_id", forwardID, "status", statusCode)
	case models.ForwardStatusRejected:
		log.Warn("❌ Webhook rejected message", "forward_id", forwardID, "status", statusCode)
	default:
		log.Error("🔥 Webhook delivery failed", "forward_id", forwardID, "error", err)
	}
	return outcome
}

func interpret(statusCode int, err error) models.ForwardOutcome {
	if err != nil {
		return models.Failed(err)
	}
	if statusCode >= 200 && statusCode < 300 {
		return models.Delivered(statusCode)
	}
	return models.Rejected(statusCode)
}

// BuildPayload assembles the self-contained webhook body. Thread fields are only
// set for thread replies.
func BuildPayload(event models.ClassifiedEvent, history []models.ContextEntry) models.ForwardPayload {
	if history == nil {
		history = []models.ContextEntry{}
	}

	payload := models.ForwardPayload{
		UserID:    event.Event.UserID,
		UserName:  event.Event.UserName,
		ChannelID: event.Event.ChannelID,
		History:   history,
		Type:      event.Category,
	}
	if event.Category == models.EventCategoryThreadReply {
		payload.ThreadID = event.Event.ChannelID
		payload.ThreadName = event.Event.ThreadName
	}
	return payload
}
