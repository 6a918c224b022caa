package discord

import (
	"context"
	"fmt"

	"kbbridge/clients"
	"kbbridge/core/log"
	"kbbridge/models"
	"kbbridge/services"
)

// DiscordUseCase runs the inbound message pipeline: classify, assemble context,
// forward, and report the outcome as a reaction on the originating message.
type DiscordUseCase struct {
	discordClient  clients.DiscordClient
	classifier     services.EventClassifier
	contextService services.ConversationContextService
	forwarder      services.ForwarderService
	historyLimit   int
}

// NewDiscordUseCase creates a new instance of DiscordUseCase
func NewDiscordUseCase(
	discordClient clients.DiscordClient,
	classifier services.EventClassifier,
	contextService services.ConversationContextService,
	forwarder services.ForwarderService,
	historyLimit int,
) *DiscordUseCase {
	return &DiscordUseCase{
		discordClient:  discordClient,
		classifier:     classifier,
		contextService: contextService,
		forwarder:      forwarder,
		historyLimit:   historyLimit,
	}
}

func (d *DiscordUseCase) ProcessMessageEvent(ctx context.Context, event models.DiscordMessageEvent) error {
	log.Debug("📋 Starting to process Discord message event",
		"user_id", event.UserID, "channel_id", event.ChannelID, "message_id", event.MessageID)

	botUser, err := d.discordClient.GetBotUser()
	if err != nil {
		return fmt.Errorf("failed to get bot user: %w", err)
	}

	classified := d.classifier.Classify(event, botUser.ID)
	if !classified.Qualified() {
		log.Debug("🔍 Message not qualified for forwarding - ignoring",
			"user_id", event.UserID, "channel_id", event.ChannelID)
		return nil
	}
	log.Info("📨 Qualified message received",
		"category", classified.Category, "user_id", event.UserID, "channel_id", event.ChannelID)

	history, err := d.contextService.AssembleContext(ctx, event.ChannelID, botUser.ID, d.historyLimit)
	if err != nil {
		log.Error("❌ Failed to assemble conversation context", "channel_id", event.ChannelID, "error", err)
		return d.react(ctx, event, models.Failed(err))
	}

	outcome := d.forwarder.Forward(ctx, classified, history)
	if err := d.react(ctx, event, outcome); err != nil {
		return err
	}

	log.Debug("📋 Completed successfully - processed Discord message event",
		"message_id", event.MessageID, "outcome", outcome.String())
	return nil
}

func (d *DiscordUseCase) react(ctx context.Context, event models.DiscordMessageEvent, outcome models.ForwardOutcome) error {
	emoji := reactionForOutcome(outcome)
	if err := d.discordClient.AddReaction(ctx, event.ChannelID, event.MessageID, emoji); err != nil {
		return fmt.Errorf("failed to report outcome %s on message %s: %w", outcome.Status, event.MessageID, err)
	}
	return nil
}
