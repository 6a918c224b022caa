package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"kbbridge/clients"
)

// Discord caps a single history page at 100 messages.
const maxMessagesPerRequest = 100

// Forum posts auto-archive after a week of inactivity.
const forumPostArchiveMinutes = 10080

// DiscordClient implements the clients.DiscordClient interface on top of one
// discordgo session.
type DiscordClient struct {
	session *discordgo.Session
}

// NewDiscordClient wraps an existing session. The session is owned by the caller.
func NewDiscordClient(session *discordgo.Session) clients.DiscordClient {
	return &DiscordClient{session: session}
}

// GetBotUser returns the identity the session is logged in as
func (c *DiscordClient) GetBotUser() (*clients.DiscordBotUser, error) {
	var user *discordgo.User
	if c.session.State != nil && c.session.State.User != nil {
		user = c.session.State.User
	} else {
		u, err := c.session.User("@me")
		if err != nil {
			return nil, fmt.Errorf("failed to fetch bot user: %w", err)
		}
		user = u
	}

	return &clients.DiscordBotUser{
		ID:       user.ID,
		Username: user.Username,
		Bot:      user.Bot,
	}, nil
}

// GetChannel reads the channel from the session state, falling back to the REST API
func (c *DiscordClient) GetChannel(ctx context.Context, channelID string) (*clients.DiscordChannel, error) {
	if c.session.State != nil {
		if ch, err := c.session.State.Channel(channelID); err == nil {
			mapped := mapChannel(ch)
			return &mapped, nil
		}
	}

	ch, err := c.session.Channel(channelID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch channel %s: %w", channelID, err)
	}
	mapped := mapChannel(ch)
	return &mapped, nil
}

func (c *DiscordClient) GetGuildChannels(ctx context.Context, guildID string) ([]clients.DiscordChannel, error) {
	channels, err := c.session.GuildChannels(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to list channels for guild %s: %w", guildID, err)
	}

	result := make([]clients.DiscordChannel, 0, len(channels))
	for _, ch := range channels {
		result = append(result, mapChannel(ch))
	}
	return result, nil
}

func (c *DiscordClient) CreateCategory(ctx context.Context, guildID, name string) (*clients.DiscordChannel, error) {
	ch, err := c.session.GuildChannelCreate(guildID, name, discordgo.ChannelTypeGuildCategory, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to create category %q: %w", name, err)
	}
	mapped := mapChannel(ch)
	return &mapped, nil
}

// CreateForumChannel creates the forum under its parent category. Tags are set
// separately with SetForumTags since the create endpoint does not accept them.
func (c *DiscordClient) CreateForumChannel(
	ctx context.Context,
	guildID string,
	params clients.DiscordForumParams,
) (*clients.DiscordChannel, error) {
	ch, err := c.session.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:     params.Name,
		Type:     discordgo.ChannelTypeGuildForum,
		Topic:    params.Topic,
		ParentID: params.ParentID,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to create forum %q: %w", params.Name, err)
	}

	mapped := mapChannel(ch)
	return &mapped, nil
}

// SetForumTags replaces the forum's available tags
func (c *DiscordClient) SetForumTags(ctx context.Context, forumID string, tags []clients.DiscordForumTag) error {
	forumTags := make([]discordgo.ForumTag, 0, len(tags))
	for _, tag := range tags {
		forumTags = append(forumTags, discordgo.ForumTag{Name: tag.Name, EmojiName: tag.Emoji})
	}
	_, err := c.session.ChannelEdit(forumID, &discordgo.ChannelEdit{
		AvailableTags: &forumTags,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to set tags on forum %s: %w", forumID, err)
	}
	return nil
}

func (c *DiscordClient) StartForumPost(
	ctx context.Context,
	forumID, title, content string,
) (*clients.DiscordChannel, error) {
	thread, err := c.session.ForumThreadStart(forumID, title, forumPostArchiveMinutes, content, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to start forum post in %s: %w", forumID, err)
	}
	mapped := mapChannel(thread)
	return &mapped, nil
}

// SetChannelParent moves a channel under another category
func (c *DiscordClient) SetChannelParent(ctx context.Context, channelID, parentID string) error {
	_, err := c.session.ChannelEdit(channelID, &discordgo.ChannelEdit{
		ParentID: parentID,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to move channel %s under %s: %w", channelID, parentID, err)
	}
	return nil
}

func (c *DiscordClient) GetChannelMessages(
	ctx context.Context,
	channelID string,
	limit int,
) ([]clients.DiscordMessage, error) {
	if limit <= 0 {
		return nil, nil
	}
	if limit > maxMessagesPerRequest {
		limit = maxMessagesPerRequest
	}

	messages, err := c.session.ChannelMessages(channelID, limit, "", "", "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history for channel %s: %w", channelID, err)
	}

	result := make([]clients.DiscordMessage, 0, len(messages))
	for _, m := range messages {
		msg := clients.DiscordMessage{
			ID:        m.ID,
			ChannelID: m.ChannelID,
			Content:   m.Content,
		}
		if m.Author != nil {
			msg.AuthorID = m.Author.ID
			msg.AuthorName = DisplayName(m.Author, m.Member)
		}
		result = append(result, msg)
	}
	return result, nil
}

func (c *DiscordClient) AddReaction(ctx context.Context, channelID, messageID, emoji string) error {
	if err := c.session.MessageReactionAdd(channelID, messageID, emoji, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to add %s reaction to message %s: %w", emoji, messageID, err)
	}
	return nil
}

// DisplayName picks the guild nickname, then the global display name, then the username.
func DisplayName(user *discordgo.User, member *discordgo.Member) string {
	if member != nil && member.Nick != "" {
		return member.Nick
	}
	if user == nil {
		return ""
	}
	if user.GlobalName != "" {
		return user.GlobalName
	}
	return user.Username
}

func mapChannel(ch *discordgo.Channel) clients.DiscordChannel {
	return clients.DiscordChannel{
		ID:       ch.ID,
		Name:     ch.Name,
		Type:     MapChannelType(ch.Type),
		GuildID:  ch.GuildID,
		ParentID: ch.ParentID,
		Topic:    ch.Topic,
	}
}

// MapChannelType folds discordgo's channel types into the kinds the bridge cares about
func MapChannelType(channelType discordgo.ChannelType) clients.DiscordChannelType {
	switch channelType {
	case discordgo.ChannelTypeDM, discordgo.ChannelTypeGroupDM:
		return clients.DiscordChannelTypeDM
	case discordgo.ChannelTypeGuildText, discordgo.ChannelTypeGuildNews:
		return clients.DiscordChannelTypeGuildText
	case discordgo.ChannelTypeGuildPublicThread,
		discordgo.ChannelTypeGuildPrivateThread,
		discordgo.ChannelTypeGuildNewsThread:
		return clients.DiscordChannelTypeGuildThread
	case discordgo.ChannelTypeGuildCategory:
		return clients.DiscordChannelTypeGuildCategory
	case discordgo.ChannelTypeGuildForum:
		return clients.DiscordChannelTypeGuildForum
	default:
		return clients.DiscordChannelTypeUnknown
	}
}
