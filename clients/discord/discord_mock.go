package discord

import (
	"context"

	"github.com/stretchr/testify/mock"

	"kbbridge/clients"
)

// MockDiscordClient implements the clients.DiscordClient interface for testing
type MockDiscordClient struct {
	mock.Mock
}

func (m *MockDiscordClient) GetBotUser() (*clients.DiscordBotUser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.DiscordBotUser), args.Error(1)
}

func (m *MockDiscordClient) GetChannel(ctx context.Context, channelID string) (*clients.DiscordChannel, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.DiscordChannel), args.Error(1)
}

func (m *MockDiscordClient) GetGuildChannels(ctx context.Context, guildID string) ([]clients.DiscordChannel, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]clients.DiscordChannel), args.Error(1)
}

func (m *MockDiscordClient) CreateCategory(ctx context.Context, guildID, name string) (*clients.DiscordChannel, error) {
	args := m.Called(ctx, guildID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.DiscordChannel), args.Error(1)
}

func (m *MockDiscordClient) CreateForumChannel(
	ctx context.Context,
	guildID string,
	params clients.DiscordForumParams,
) (*clients.DiscordChannel, error) {
	args := m.Called(ctx, guildID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.DiscordChannel), args.Error(1)
}

func (m *MockDiscordClient) SetForumTags(ctx context.Context, forumID string, tags []clients.DiscordForumTag) error {
	args := m.Called(ctx, forumID, tags)
	return args.Error(0)
}

func (m *MockDiscordClient) StartForumPost(
	ctx context.Context,
	forumID, title, content string,
) (*clients.DiscordChannel, error) {
	args := m.Called(ctx, forumID, title, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.DiscordChannel), args.Error(1)
}

func (m *MockDiscordClient) SetChannelParent(ctx context.Context, channelID, parentID string) error {
	args := m.Called(ctx, channelID, parentID)
	return args.Error(0)
}

func (m *MockDiscordClient) GetChannelMessages(
	ctx context.Context,
	channelID string,
	limit int,
) ([]clients.DiscordMessage, error) {
	args := m.Called(ctx, channelID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]clients.DiscordMessage), args.Error(1)
}

func (m *MockDiscordClient) AddReaction(ctx context.Context, channelID, messageID, emoji string) error {
	args := m.Called(ctx, channelID, messageID, emoji)
	return args.Error(0)
}
