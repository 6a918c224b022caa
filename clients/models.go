package clients

// DiscordBotUser represents Discord bot user information
type DiscordBotUser struct {
	ID       string
	Username string
	Bot      bool
}

type DiscordChannelType int

const (
	DiscordChannelTypeUnknown DiscordChannelType = iota
	DiscordChannelTypeDM
	DiscordChannelTypeGuildText
	DiscordChannelTypeGuildThread
	DiscordChannelTypeGuildCategory
	DiscordChannelTypeGuildForum
)

// DiscordChannel represents Discord channel information
type DiscordChannel struct {
	ID       string
	Name     string
	Type     DiscordChannelType
	GuildID  string
	ParentID string
	Topic    string
}

// DiscordMessage is a historical message as returned by the history endpoint.
type DiscordMessage struct {
	ID         string
	ChannelID  string
	AuthorID   string
	AuthorName string
	Content    string
}

// DiscordForumTag is a tag offered on a forum channel.
type DiscordForumTag struct {
	Name  string
	Emoji string
}

// DiscordForumParams holds parameters for creating a forum channel
type DiscordForumParams struct {
	Name     string
	ParentID string
	Topic    string
}
