package conversationcontext

import (
	"context"
	"fmt"
	"strings"

	"kbbridge/clients"
	"kbbridge/core/log"
	"kbbridge/models"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// Double quotes in display names have broken hand-built JSON downstream.
var nameSanitizer = strings.NewReplacer(`"`, "'", "“", "'", "”", "'", "`", "'")

type ConversationContextService struct {
	discordClient clients.DiscordClient
}

func NewConversationContextService(discordClient clients.DiscordClient) *ConversationContextService {
	return &ConversationContextService{discordClient: discordClient}
}

// AssembleContext fetches the newest limit messages of a conversation and returns
// them oldest first. Each call fetches fresh history.
func (s *ConversationContextService) AssembleContext(
	ctx context.Context,
	channelID, botUserID string,
	limit int,
) ([]models.ContextEntry, error) {
	limit = NormalizeLimit(limit)
	log.Debug("📋 Starting to assemble conversation context", "channel_id", channelID, "limit", limit)

	messages, err := s.discordClient.GetChannelMessages(ctx, channelID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch conversation history: %w", err)
	}
	if len(messages) > limit {
		messages = messages[:limit]
	}

	entries := make([]models.ContextEntry, len(messages))
	for i, msg := range messages {
		// newest-first fetch, filled back to front
		entries[len(messages)-1-i] = toContextEntry(msg, botUserID)
	}

	log.Debug("📋 Completed successfully - assembled conversation context", "channel_id", channelID, "entries", len(entries))
	return entries, nil
}

// NormalizeLimit applies the default for non-positive limits and clamps to the
// platform's page size.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		return MaxHistoryLimit
	}
	return limit
}

func toContextEntry(msg clients.DiscordMessage, botUserID string) models.ContextEntry {
	role := models.ContextRoleUser
	if botUserID != "" && msg.AuthorID == botUserID {
		role = models.ContextRoleAssistant
	}
	return models.ContextEntry{
		Role:    role,
		Name:    SanitizeName(msg.AuthorName),
		Content: msg.Content,
	}
}

// SanitizeName neutralizes quote characters in a speaker's display name.
func SanitizeName(name string) string {
	return nameSanitizer.Replace(name)
}
