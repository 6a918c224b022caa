package classifier

import (
	"slices"
	"strings"

	"kbbridge/models"
)

// Policy toggles categories that are switched off by default.
type Policy struct {
	ThreadReplies bool
}

// Classifier implements services.EventClassifier. It has no side effects.
type Classifier struct {
	policy Policy
}

func NewClassifier(policy Policy) *Classifier {
	return &Classifier{policy: policy}
}

// Classify checks, in this fixed order: self-authored, direct message, bot
// mention, thread reply.
func (c *Classifier) Classify(event models.DiscordMessageEvent, botUserID string) models.ClassifiedEvent {
	category := models.EventCategoryUnqualified

	switch {
	case botUserID != "" && event.UserID == botUserID:
		// never react to our own messages, acknowledgments included
	case event.Kind == models.ConversationKindDirectMessage:
		category = models.EventCategoryDirectMessage
	case MentionsUser(event, botUserID):
		category = models.EventCategoryMention
	case c.policy.ThreadReplies && event.Kind == models.ConversationKindGuildThread:
		category = models.EventCategoryThreadReply
	}

	return models.ClassifiedEvent{Event: event, Category: category}
}

// MentionsUser reports whether userID is referenced by the event, either through
// the platform's resolved mention list or a raw mention token in the body.
func MentionsUser(event models.DiscordMessageEvent, userID string) bool {
	if userID == "" {
		return false
	}
	if slices.Contains(event.Mentions, userID) {
		return true
	}
	return strings.Contains(event.Content, "<@"+userID+">") ||
		strings.Contains(event.Content, "<@!"+userID+">")
}
