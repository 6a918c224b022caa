package discord

import "kbbridge/models"

// Discord Unicode emoji constants used as forwarding status reactions
const (
	// Webhook accepted the message
	EmojiCheckMark = "✅"
	// Webhook answered with a non-success status
	EmojiCrossMark = "❌"
	// Webhook could not be reached
	EmojiFire = "🔥"
)

// AllStatusEmojis contains every emoji the bridge may react with
var AllStatusEmojis = []string{
	EmojiCheckMark,
	EmojiCrossMark,
	EmojiFire,
}

// reactionForOutcome maps a forward outcome to exactly one status emoji
func reactionForOutcome(outcome models.ForwardOutcome) string {
	switch outcome.Status {
	case models.ForwardStatusDelivered:
		return EmojiCheckMark
	case models.ForwardStatusRejected:
		return EmojiCrossMark
	default:
		return EmojiFire
	}
}
