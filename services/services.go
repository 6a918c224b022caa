package services

import (
	"context"

	"kbbridge/models"
)

// EventClassifier decides whether a message event should be forwarded
type EventClassifier interface {
	Classify(event models.DiscordMessageEvent, botUserID string) models.ClassifiedEvent
}

// ConversationContextService builds the bounded history window sent with a forward
type ConversationContextService interface {
	AssembleContext(ctx context.Context, channelID, botUserID string, limit int) ([]models.ContextEntry, error)
}

// ForwarderService delivers a classified event to the automation webhook once
type ForwarderService interface {
	Forward(ctx context.Context, event models.ClassifiedEvent, history []models.ContextEntry) models.ForwardOutcome
}

// ProjectsService is the project lifecycle store. Callers never look at channel
// parentage directly.
type ProjectsService interface {
	CreateProject(ctx context.Context, params models.CreateProjectParams) (*models.Project, error)
	CompleteProject(ctx context.Context, name string) (*models.Project, error)
	ReactivateProject(ctx context.Context, name string) (*models.Project, error)
	ListProjects(ctx context.Context, state models.ProjectState) ([]models.Project, error)
	EnsureLifecycleCategories(ctx context.Context) (*models.LifecycleCategories, error)
}
