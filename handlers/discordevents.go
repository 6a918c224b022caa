package handlers

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"kbbridge/clients"
	discordclient "kbbridge/clients/discord"
	"kbbridge/core/log"
	"kbbridge/middleware"
	"kbbridge/models"
	"kbbridge/services/eventqueue"
)

// MessageEventProcessor runs the forwarding pipeline for one inbound message
type MessageEventProcessor interface {
	ProcessMessageEvent(ctx context.Context, event models.DiscordMessageEvent) error
}

type DiscordEventsHandler struct {
	discordSDKClient *discordgo.Session
	discordClient    clients.DiscordClient
	discordUseCase   MessageEventProcessor
	queue            *eventqueue.ConversationQueue
	alertMiddleware  *middleware.ErrorAlertMiddleware
}

func NewDiscordEventsHandler(
	session *discordgo.Session,
	discordClient clients.DiscordClient,
	discordUseCase MessageEventProcessor,
	queue *eventqueue.ConversationQueue,
	alertMiddleware *middleware.ErrorAlertMiddleware,
) *DiscordEventsHandler {
	handler := &DiscordEventsHandler{
		discordSDKClient: session,
		discordClient:    discordClient,
		discordUseCase:   discordUseCase,
		queue:            queue,
		alertMiddleware:  alertMiddleware,
	}

	session.AddHandler(handler.handleMessageCreatedEvent)
	session.AddHandler(handler.handleReady)

	// Message content is a privileged intent and must also be enabled for the bot
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	return handler
}

// StartBot opens the Discord connection and starts listening for events
func (h *DiscordEventsHandler) StartBot() error {
	if err := h.discordSDKClient.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	log.Info("🤖 Discord bot is now running and listening for events")
	return nil
}

// StopBot gracefully closes the Discord connection
func (h *DiscordEventsHandler) StopBot() error {
	if err := h.discordSDKClient.Close(); err != nil {
		return fmt.Errorf("failed to close Discord session: %w", err)
	}
	log.Info("🤖 Discord bot disconnected")
	return nil
}

func (h *DiscordEventsHandler) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Info("🤖 Logged in to Discord", "user", r.User.Username, "guilds", len(r.Guilds))
}

// handleMessageCreatedEvent hands the message to the per-channel queue so the
// gateway goroutine is never blocked on webhook delivery.
func (h *DiscordEventsHandler) handleMessageCreatedEvent(s *discordgo.Session, m *discordgo.MessageCreate) {
	h.dispatchMessage(m)
}

func (h *DiscordEventsHandler) dispatchMessage(m *discordgo.MessageCreate) bool {
	if m.Message == nil || m.Author == nil {
		return false
	}

	task := h.alertMiddleware.WrapEventHandler("message_create", func() error {
		ctx := context.Background()
		event, err := h.mapToDiscordMessageEvent(ctx, m)
		if err != nil {
			return fmt.Errorf("failed to map Discord message event: %w", err)
		}
		return h.discordUseCase.ProcessMessageEvent(ctx, event)
	})

	if !h.queue.Submit(m.ChannelID, task) {
		log.Warn("⚠️ Event queue stopped - dropping Discord message", "message_id", m.ID)
		return false
	}
	return true
}

// mapToDiscordMessageEvent maps a Discord SDK message event to our domain model
func (h *DiscordEventsHandler) mapToDiscordMessageEvent(
	ctx context.Context,
	m *discordgo.MessageCreate,
) (models.DiscordMessageEvent, error) {
	mentions := make([]string, len(m.Mentions))
	for i, mentionedUser := range m.Mentions {
		mentions[i] = mentionedUser.ID
	}

	event := models.DiscordMessageEvent{
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		MessageID: m.ID,
		UserID:    m.Author.ID,
		UserName:  discordclient.DisplayName(m.Author, m.Member),
		Content:   m.Content,
		Kind:      models.ConversationKindDirectMessage,
		Mentions:  mentions,
	}
	if m.GuildID == "" {
		return event, nil
	}

	channel, err := h.discordClient.GetChannel(ctx, m.ChannelID)
	if err != nil {
		return models.DiscordMessageEvent{}, fmt.Errorf("failed to get channel info: %w", err)
	}

	switch channel.Type {
	case clients.DiscordChannelTypeGuildThread:
		event.Kind = models.ConversationKindGuildThread
		event.ThreadName = channel.Name
	case clients.DiscordChannelTypeDM:
		event.Kind = models.ConversationKindDirectMessage
	default:
		event.Kind = models.ConversationKindGuildText
	}
	return event, nil
}
