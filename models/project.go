package models

import "fmt"

// ProjectState is encoded purely by which lifecycle category holds the project's forum.
type ProjectState string

const (
	ProjectStateActive    ProjectState = "active"
	ProjectStateCompleted ProjectState = "completed"
)

func ParseProjectState(s string) (ProjectState, error) {
	switch ProjectState(s) {
	case ProjectStateActive, ProjectStateCompleted:
		return ProjectState(s), nil
	default:
		return "", fmt.Errorf("unknown project state %q", s)
	}
}

type Project struct {
	ID    string
	Name  string
	State ProjectState
}

// DefaultForumTag is a tag every new project forum starts with.
type DefaultForumTag struct {
	Name  string
	Emoji string
}

var DefaultProjectTags = []DefaultForumTag{
	{Name: "bug", Emoji: "🐛"},
	{Name: "documentation", Emoji: "📄"},
	{Name: "duplicate", Emoji: "👯"},
	{Name: "enhancement", Emoji: "✨"},
	{Name: "good first issue", Emoji: "👍"},
	{Name: "help wanted", Emoji: "🙋"},
	{Name: "invalid", Emoji: "❗"},
	{Name: "question", Emoji: "❓"},
	{Name: "wontfix", Emoji: "🤷"},
}

type CreateProjectParams struct {
	Name         string
	CategoryName string
	Guideline    string
}

type LifecycleCategories struct {
	ActiveCategoryID    string
	CompletedCategoryID string
}
