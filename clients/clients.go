package clients

import (
	"context"
)

// DiscordClient defines the Discord operations the bridge relies on. It is built
// once at startup around a single session and shared by the event and API tasks.
type DiscordClient interface {
	// Bot operations
	GetBotUser() (*DiscordBotUser, error)

	// Channel operations
	GetChannel(ctx context.Context, channelID string) (*DiscordChannel, error)
	GetGuildChannels(ctx context.Context, guildID string) ([]DiscordChannel, error)
	CreateCategory(ctx context.Context, guildID, name string) (*DiscordChannel, error)
	CreateForumChannel(ctx context.Context, guildID string, params DiscordForumParams) (*DiscordChannel, error)
	SetForumTags(ctx context.Context, forumID string, tags []DiscordForumTag) error
	StartForumPost(ctx context.Context, forumID, title, content string) (*DiscordChannel, error)
	SetChannelParent(ctx context.Context, channelID, parentID string) error

	// Message operations
	// GetChannelMessages returns up to limit messages, newest first.
	GetChannelMessages(ctx context.Context, channelID string, limit int) ([]DiscordMessage, error)

	// Reaction operations
	AddReaction(ctx context.Context, channelID, messageID, emoji string) error
}

// WebhookClient posts a JSON body to a fixed endpoint exactly once.
type WebhookClient interface {
	// PostJSON returns the response status code, or an error when no response
	// was received at all.
	PostJSON(ctx context.Context, body any, headers map[string]string) (int, error)
}
