package models

// ConversationKind is where a message was posted.
type ConversationKind string

const (
	ConversationKindDirectMessage ConversationKind = "direct_message"
	ConversationKindGuildText     ConversationKind = "guild_text"
	ConversationKindGuildThread   ConversationKind = "guild_thread"
)

// DiscordMessageEvent is one inbound chat message, built per event and never stored.
type DiscordMessageEvent struct {
	GuildID   string
	ChannelID string
	MessageID string
	UserID    string
	UserName  string
	Content   string
	Kind      ConversationKind
	// ThreadName is set for messages posted inside a thread
	ThreadName string
	// Mentions contains the user IDs of all users mentioned in this message
	Mentions []string
}

// EventCategory is the classifier verdict for a message event.
type EventCategory string

const (
	EventCategoryDirectMessage EventCategory = "DM"
	EventCategoryMention       EventCategory = "MENTION"
	EventCategoryThreadReply   EventCategory = "THREAD_MESSAGE"
	EventCategoryUnqualified   EventCategory = "UNQUALIFIED"
)

type ClassifiedEvent struct {
	Event    DiscordMessageEvent
	Category EventCategory
}

func (c ClassifiedEvent) Qualified() bool {
	return c.Category != EventCategoryUnqualified
}
