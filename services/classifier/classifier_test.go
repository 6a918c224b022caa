package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kbbridge/models"
)

const (
	testBotID  = "bot-xyz"
	testUserID = "user-abc"
)

func guildEvent(content string) models.DiscordMessageEvent {
	return models.DiscordMessageEvent{
		GuildID:   "guild-789",
		ChannelID: "channel-456",
		MessageID: "msg-123",
		UserID:    testUserID,
		Content:   content,
		Kind:      models.ConversationKindGuildText,
	}
}

func TestClassifier_Classify(t *testing.T) {
	tests := []struct {
		name     string
		policy   Policy
		event    models.DiscordMessageEvent
		expected models.EventCategory
	}{
		{
			name: "self-authored direct message is unqualified",
			event: models.DiscordMessageEvent{
				UserID:  testBotID,
				Content: "✅",
				Kind:    models.ConversationKindDirectMessage,
			},
			expected: models.EventCategoryUnqualified,
		},
		{
			name: "self-authored mention is unqualified",
			event: func() models.DiscordMessageEvent {
				e := guildEvent("<@" + testBotID + "> hi")
				e.UserID = testBotID
				return e
			}(),
			expected: models.EventCategoryUnqualified,
		},
		{
			name: "direct message with empty body qualifies",
			event: models.DiscordMessageEvent{
				UserID: testUserID,
				Kind:   models.ConversationKindDirectMessage,
			},
			expected: models.EventCategoryDirectMessage,
		},
		{
			name: "direct message with mention is still a direct message",
			event: models.DiscordMessageEvent{
				UserID:   testUserID,
				Content:  "<@" + testBotID + "> hello",
				Kind:     models.ConversationKindDirectMessage,
				Mentions: []string{testBotID},
			},
			expected: models.EventCategoryDirectMessage,
		},
		{
			name:     "mention token in guild channel",
			event:    guildEvent("<@" + testBotID + "> summarize this"),
			expected: models.EventCategoryMention,
		},
		{
			name:     "nickname mention token in guild channel",
			event:    guildEvent("hey <@!" + testBotID + ">"),
			expected: models.EventCategoryMention,
		},
		{
			name: "resolved mention list",
			event: func() models.DiscordMessageEvent {
				e := guildEvent("hey @bot")
				e.Mentions = []string{"someone-else", testBotID}
				return e
			}(),
			expected: models.EventCategoryMention,
		},
		{
			name:     "same body without the token is unqualified",
			event:    guildEvent(" summarize this"),
			expected: models.EventCategoryUnqualified,
		},
		{
			name:     "mention of another user is unqualified",
			event:    guildEvent("<@someone-else> summarize this"),
			expected: models.EventCategoryUnqualified,
		},
		{
			name: "thread message with thread replies disabled",
			event: func() models.DiscordMessageEvent {
				e := guildEvent("follow up")
				e.Kind = models.ConversationKindGuildThread
				return e
			}(),
			expected: models.EventCategoryUnqualified,
		},
		{
			name:   "thread message with thread replies enabled",
			policy: Policy{ThreadReplies: true},
			event: func() models.DiscordMessageEvent {
				e := guildEvent("follow up")
				e.Kind = models.ConversationKindGuildThread
				return e
			}(),
			expected: models.EventCategoryThreadReply,
		},
		{
			name:   "mention in thread takes precedence over thread reply",
			policy: Policy{ThreadReplies: true},
			event: func() models.DiscordMessageEvent {
				e := guildEvent("<@" + testBotID + "> follow up")
				e.Kind = models.ConversationKindGuildThread
				return e
			}(),
			expected: models.EventCategoryMention,
		},
		{
			name:     "thread replies policy does not affect text channels",
			policy:   Policy{ThreadReplies: true},
			event:    guildEvent("plain message"),
			expected: models.EventCategoryUnqualified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassifier(tt.policy)
			result := c.Classify(tt.event, testBotID)

			assert.Equal(t, tt.expected, result.Category)
			assert.Equal(t, tt.event, result.Event)
			assert.Equal(t, tt.expected != models.EventCategoryUnqualified, result.Qualified())
		})
	}
}

func TestClassifier_IsDeterministic(t *testing.T) {
	c := NewClassifier(Policy{})
	event := guildEvent("<@" + testBotID + ">")

	first := c.Classify(event, testBotID)
	second := c.Classify(event, testBotID)

	assert.Equal(t, first, second)
}

func TestMentionsUser_EmptyUserID(t *testing.T) {
	assert.False(t, MentionsUser(guildEvent("<@>"), ""))
}
