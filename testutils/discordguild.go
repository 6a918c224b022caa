package testutils

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"kbbridge/clients"
)

// FakeGuild is an in-memory Discord guild implementing clients.DiscordClient.
// Channel ids are numeric strings, like real snowflakes.
type FakeGuild struct {
	mu        sync.Mutex
	GuildID   string
	BotUser   clients.DiscordBotUser
	channels  map[string]*clients.DiscordChannel
	messages  map[string][]clients.DiscordMessage // oldest first
	reactions map[string][]string                 // message id -> emojis
	posts     map[string][]string                 // forum id -> post titles
	tags      map[string][]clients.DiscordForumTag
	nextID    int64

	// Optional failure injection, checked before each operation.
	FailGuildChannels    error
	FailSetChannelParent error
	FailSetForumTags     error
	FailStartForumPost   error
}

var _ clients.DiscordClient = (*FakeGuild)(nil)

func NewFakeGuild(guildID string) *FakeGuild {
	return &FakeGuild{
		GuildID:   guildID,
		BotUser:   clients.DiscordBotUser{ID: "900000000000000001", Username: "kb-bot", Bot: true},
		channels:  make(map[string]*clients.DiscordChannel),
		messages:  make(map[string][]clients.DiscordMessage),
		reactions: make(map[string][]string),
		posts:     make(map[string][]string),
		tags:      make(map[string][]clients.DiscordForumTag),
		nextID:    1000000000000000000,
	}
}

func (g *FakeGuild) newID() string {
	g.nextID++
	return strconv.FormatInt(g.nextID, 10)
}

// AddChannel inserts a channel directly, bypassing the client API.
func (g *FakeGuild) AddChannel(name string, channelType clients.DiscordChannelType, parentID string) clients.DiscordChannel {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch := &clients.DiscordChannel{
		ID:       g.newID(),
		Name:     name,
		Type:     channelType,
		GuildID:  g.GuildID,
		ParentID: parentID,
	}
	g.channels[ch.ID] = ch
	return *ch
}

// AddMessage appends a message to a channel's history.
func (g *FakeGuild) AddMessage(channelID, authorID, authorName, content string) clients.DiscordMessage {
	g.mu.Lock()
	defer g.mu.Unlock()
	msg := clients.DiscordMessage{
		ID:         g.newID(),
		ChannelID:  channelID,
		AuthorID:   authorID,
		AuthorName: authorName,
		Content:    content,
	}
	g.messages[channelID] = append(g.messages[channelID], msg)
	return msg
}

// Channel returns a copy of the stored channel.
func (g *FakeGuild) Channel(channelID string) (clients.DiscordChannel, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.channels[channelID]
	if !ok {
		return clients.DiscordChannel{}, false
	}
	return *ch, true
}

// ChildrenOf lists channel names under parentID, sorted.
func (g *FakeGuild) ChildrenOf(parentID string) []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	var names []string
	for _, ch := range g.channels {
		if ch.ParentID == parentID {
			names = append(names, ch.Name)
		}
	}
	sort.Strings(names)
	return names
}

func (g *FakeGuild) Reactions(messageID string) []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.reactions[messageID]...)
}

func (g *FakeGuild) Posts(forumID string) []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.posts[forumID]...)
}

// Tags returns the available tags set on a forum.
func (g *FakeGuild) Tags(forumID string) []clients.DiscordForumTag {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]clients.DiscordForumTag(nil), g.tags[forumID]...)
}

func (g *FakeGuild) GetBotUser() (*clients.DiscordBotUser, error) {
	user := g.BotUser
	return &user, nil
}

func (g *FakeGuild) GetChannel(_ context.Context, channelID string) (*clients.DiscordChannel, error) {
	ch, ok := g.Channel(channelID)
	if !ok {
		return nil, fmt.Errorf("unknown channel %s", channelID)
	}
	return &ch, nil
}

func (g *FakeGuild) GetGuildChannels(_ context.Context, guildID string) ([]clients.DiscordChannel, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.FailGuildChannels != nil {
		return nil, g.FailGuildChannels
	}
	if guildID != g.GuildID {
		return nil, fmt.Errorf("unknown guild %s", guildID)
	}
	result := make([]clients.DiscordChannel, 0, len(g.channels))
	for _, ch := range g.channels {
		result = append(result, *ch)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (g *FakeGuild) CreateCategory(_ context.Context, guildID, name string) (*clients.DiscordChannel, error) {
	if guildID != g.GuildID {
		return nil, fmt.Errorf("unknown guild %s", guildID)
	}
	ch := g.AddChannel(name, clients.DiscordChannelTypeGuildCategory, "")
	return &ch, nil
}

func (g *FakeGuild) CreateForumChannel(
	_ context.Context,
	guildID string,
	params clients.DiscordForumParams,
) (*clients.DiscordChannel, error) {
	if guildID != g.GuildID {
		return nil, fmt.Errorf("unknown guild %s", guildID)
	}
	ch := g.AddChannel(params.Name, clients.DiscordChannelTypeGuildForum, params.ParentID)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.channels[ch.ID].Topic = params.Topic
	ch.Topic = params.Topic
	return &ch, nil
}

func (g *FakeGuild) SetForumTags(_ context.Context, forumID string, tags []clients.DiscordForumTag) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.FailSetForumTags != nil {
		return g.FailSetForumTags
	}
	if _, ok := g.channels[forumID]; !ok {
		return fmt.Errorf("unknown forum %s", forumID)
	}
	g.tags[forumID] = append([]clients.DiscordForumTag(nil), tags...)
	return nil
}

func (g *FakeGuild) StartForumPost(_ context.Context, forumID, title, _ string) (*clients.DiscordChannel, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.FailStartForumPost != nil {
		return nil, g.FailStartForumPost
	}
	if _, ok := g.channels[forumID]; !ok {
		return nil, fmt.Errorf("unknown forum %s", forumID)
	}
	g.posts[forumID] = append(g.posts[forumID], title)
	thread := &clients.DiscordChannel{
		ID:       g.newID(),
		Name:     title,
		Type:     clients.DiscordChannelTypeGuildThread,
		GuildID:  g.GuildID,
		ParentID: forumID,
	}
	return thread, nil
}

func (g *FakeGuild) SetChannelParent(_ context.Context, channelID, parentID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.FailSetChannelParent != nil {
		return g.FailSetChannelParent
	}
	ch, ok := g.channels[channelID]
	if !ok {
		return fmt.Errorf("unknown channel %s", channelID)
	}
	ch.ParentID = parentID
	return nil
}

func (g *FakeGuild) GetChannelMessages(_ context.Context, channelID string, limit int) ([]clients.DiscordMessage, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	history := g.messages[channelID]
	result := make([]clients.DiscordMessage, 0, max(0, min(limit, len(history))))
	for i := len(history) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, history[i])
	}
	return result, nil
}

func (g *FakeGuild) AddReaction(_ context.Context, _, messageID, emoji string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reactions[messageID] = append(g.reactions[messageID], emoji)
	return nil
}
