package models

type ContextRole string

const (
	ContextRoleUser      ContextRole = "user"
	ContextRoleAssistant ContextRole = "assistant"
)

// ContextEntry is one historical message reduced to what the webhook consumer needs.
type ContextEntry struct {
	Role    ContextRole `json:"role"`
	Name    string      `json:"name"`
	Content string      `json:"content"`
}
