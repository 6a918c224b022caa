package projects

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/samber/mo"

	"kbbridge/clients"
	"kbbridge/core"
	"kbbridge/core/log"
	"kbbridge/models"
)

const (
	DefaultActiveCategoryName    = "Active Projects"
	DefaultCompletedCategoryName = "Completed Projects"

	GuidelinePostTitle   = "📌 Guideline (README)"
	GuidelinePostContent = "Please read the guideline in the channel topic above."

	// Discord rejects forum topics longer than this
	maxForumTopicLength = 4096
)

type Config struct {
	GuildID               string
	ActiveCategoryName    string
	CompletedCategoryName string
}

// ProjectsService implements services.ProjectsService. Lifecycle state is which
// of the two categories a project's forum channel sits under; every lookup is a
// live read of the guild's channel list.
type ProjectsService struct {
	discordClient clients.DiscordClient
	config        Config
	locks         *nameLocks
}

func NewProjectsService(discordClient clients.DiscordClient, config Config) *ProjectsService {
	if config.ActiveCategoryName == "" {
		config.ActiveCategoryName = DefaultActiveCategoryName
	}
	if config.CompletedCategoryName == "" {
		config.CompletedCategoryName = DefaultCompletedCategoryName
	}
	return &ProjectsService{
		discordClient: discordClient,
		config:        config,
		locks:         newNameLocks(),
	}
}

// CompleteProject moves a project from Active to Completed.
func (s *ProjectsService) CompleteProject(ctx context.Context, name string) (*models.Project, error) {
	return s.transition(ctx, name, models.ProjectStateActive, models.ProjectStateCompleted)
}

// ReactivateProject moves a project from Completed back to Active.
func (s *ProjectsService) ReactivateProject(ctx context.Context, name string) (*models.Project, error) {
	return s.transition(ctx, name, models.ProjectStateCompleted, models.ProjectStateActive)
}

func (s *ProjectsService) transition(
	ctx context.Context,
	name string,
	from, to models.ProjectState,
) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", core.ErrInvalidArgument)
	}
	log.Info("📋 Starting project transition", "project", name, "from", from, "to", to)

	unlock := s.locks.lock(name)
	defer unlock()

	channels, err := s.discordClient.GetGuildChannels(ctx, s.config.GuildID)
	if err != nil {
		return nil, fmt.Errorf("failed to load guild channels: %w", err)
	}

	fromCategory, err := s.requireCategory(channels, s.categoryName(from))
	if err != nil {
		return nil, err
	}
	toCategory, err := s.requireCategory(channels, s.categoryName(to))
	if err != nil {
		return nil, err
	}

	maybeProject := findProject(channels, fromCategory.ID, name)
	if !maybeProject.IsPresent() {
		if findProject(channels, toCategory.ID, name).IsPresent() {
			log.Info("⏭️ Project already in target state", "project", name, "state", to)
			return nil, fmt.Errorf("project %q is already %s: %w", name, to, core.ErrProjectWrongState)
		}
		log.Info("🔍 Project not found", "project", name, "expected_state", from)
		return nil, fmt.Errorf("project %q is not %s: %w", name, from, core.ErrProjectNotFound)
	}
	project := maybeProject.MustGet()

	if err := s.discordClient.SetChannelParent(ctx, project.ID, toCategory.ID); err != nil {
		return nil, fmt.Errorf("failed to move project %q: %w", name, err)
	}

	log.Info("📋 Completed successfully - project transitioned", "project", name, "channel_id", project.ID, "state", to)
	return &models.Project{ID: project.ID, Name: project.Name, State: to}, nil
}

// ListProjects returns the projects in one lifecycle state, sorted by name.
func (s *ProjectsService) ListProjects(ctx context.Context, state models.ProjectState) ([]models.Project, error) {
	channels, err := s.discordClient.GetGuildChannels(ctx, s.config.GuildID)
	if err != nil {
		return nil, fmt.Errorf("failed to load guild channels: %w", err)
	}

	category, err := s.requireCategory(channels, s.categoryName(state))
	if err != nil {
		return nil, err
	}

	projects := []models.Project{}
	for _, ch := range channels {
		if ch.Type == clients.DiscordChannelTypeGuildForum && ch.ParentID == category.ID {
			projects = append(projects, models.Project{ID: ch.ID, Name: ch.Name, State: state})
		}
	}
	slices.SortFunc(projects, func(a, b models.Project) int {
		return strings.Compare(a.Name, b.Name)
	})
	return projects, nil
}

// CreateProject creates a forum for a new project under the named category with
// the guideline as its topic, the default tags, and a guideline post. A name that
// already exists under either lifecycle category is rejected.
func (s *ProjectsService) CreateProject(
	ctx context.Context,
	params models.CreateProjectParams,
) (*models.Project, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", core.ErrInvalidArgument)
	}
	categoryName := params.CategoryName
	if categoryName == "" {
		categoryName = s.config.ActiveCategoryName
	}
	log.Info("📋 Starting to create project", "project", name, "category", categoryName)

	unlock := s.locks.lock(name)
	defer unlock()

	channels, err := s.discordClient.GetGuildChannels(ctx, s.config.GuildID)
	if err != nil {
		return nil, fmt.Errorf("failed to load guild channels: %w", err)
	}

	category, err := s.requireCategory(channels, categoryName)
	if err != nil {
		return nil, err
	}

	for _, state := range []models.ProjectState{models.ProjectStateActive, models.ProjectStateCompleted} {
		maybeCategory := findCategory(channels, s.categoryName(state))
		if !maybeCategory.IsPresent() {
			continue
		}
		if findProject(channels, maybeCategory.MustGet().ID, name).IsPresent() {
			return nil, fmt.Errorf("project %q already exists as %s: %w", name, state, core.ErrProjectExists)
		}
	}
	if findProject(channels, category.ID, name).IsPresent() {
		return nil, fmt.Errorf("project %q already exists in %q: %w", name, categoryName, core.ErrProjectExists)
	}

	forum, err := s.discordClient.CreateForumChannel(ctx, s.config.GuildID, clients.DiscordForumParams{
		Name:     name,
		ParentID: category.ID,
		Topic:    truncateTopic(params.Guideline),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create project forum: %w", err)
	}

	// From here on the forum exists, so follow-up failures only degrade it.
	// Failing the request would leave a forum that blocks every retry.
	if err := s.discordClient.SetForumTags(ctx, forum.ID, defaultForumTags()); err != nil {
		log.Warn("⚠️ Failed to set default tags", "project", name, "channel_id", forum.ID, "error", err)
	}

	if _, err := s.discordClient.StartForumPost(ctx, forum.ID, GuidelinePostTitle, GuidelinePostContent); err != nil {
		log.Warn("⚠️ Failed to create guideline post", "project", name, "channel_id", forum.ID, "error", err)
	}

	project := &models.Project{ID: forum.ID, Name: forum.Name}
	if state, ok := s.stateForCategory(categoryName).Get(); ok {
		project.State = state
	}

	log.Info("📋 Completed successfully - created project", "project", name, "channel_id", forum.ID)
	return project, nil
}

// EnsureLifecycleCategories creates whichever of the two lifecycle categories is
// missing. Running it again changes nothing.
func (s *ProjectsService) EnsureLifecycleCategories(ctx context.Context) (*models.LifecycleCategories, error) {
	channels, err := s.discordClient.GetGuildChannels(ctx, s.config.GuildID)
	if err != nil {
		return nil, fmt.Errorf("failed to load guild channels: %w", err)
	}

	ids := make([]string, 0, 2)
	for _, name := range []string{s.config.ActiveCategoryName, s.config.CompletedCategoryName} {
		if category, ok := findCategory(channels, name).Get(); ok {
			ids = append(ids, category.ID)
			continue
		}

		created, err := s.discordClient.CreateCategory(ctx, s.config.GuildID, name)
		if err != nil {
			return nil, fmt.Errorf("failed to create category %q: %w", name, err)
		}
		log.Info("✅ Created lifecycle category", "category", name, "channel_id", created.ID)
		ids = append(ids, created.ID)
	}

	return &models.LifecycleCategories{
		ActiveCategoryID:    ids[0],
		CompletedCategoryID: ids[1],
	}, nil
}

func (s *ProjectsService) categoryName(state models.ProjectState) string {
	if state == models.ProjectStateCompleted {
		return s.config.CompletedCategoryName
	}
	return s.config.ActiveCategoryName
}

func (s *ProjectsService) stateForCategory(categoryName string) mo.Option[models.ProjectState] {
	switch categoryName {
	case s.config.ActiveCategoryName:
		return mo.Some(models.ProjectStateActive)
	case s.config.CompletedCategoryName:
		return mo.Some(models.ProjectStateCompleted)
	default:
		return mo.None[models.ProjectState]()
	}
}

func (s *ProjectsService) requireCategory(channels []clients.DiscordChannel, name string) (clients.DiscordChannel, error) {
	maybeCategory := findCategory(channels, name)
	if !maybeCategory.IsPresent() {
		return clients.DiscordChannel{}, fmt.Errorf("category %q: %w", name, core.ErrCategoryNotFound)
	}
	return maybeCategory.MustGet(), nil
}

func findCategory(channels []clients.DiscordChannel, name string) mo.Option[clients.DiscordChannel] {
	for _, ch := range channels {
		if ch.Type == clients.DiscordChannelTypeGuildCategory && ch.Name == name {
			return mo.Some(ch)
		}
	}
	return mo.None[clients.DiscordChannel]()
}

func findProject(channels []clients.DiscordChannel, parentID, name string) mo.Option[clients.DiscordChannel] {
	for _, ch := range channels {
		if ch.Type == clients.DiscordChannelTypeGuildForum && ch.ParentID == parentID && ch.Name == name {
			return mo.Some(ch)
		}
	}
	return mo.None[clients.DiscordChannel]()
}

func truncateTopic(topic string) string {
	if utf8.RuneCountInString(topic) <= maxForumTopicLength {
		return topic
	}
	log.Warn("⚠️ Guideline trimmed to fit the forum topic limit", "length", utf8.RuneCountInString(topic))
	return string([]rune(topic)[:maxForumTopicLength])
}

func defaultForumTags() []clients.DiscordForumTag {
	tags := make([]clients.DiscordForumTag, 0, len(models.DefaultProjectTags))
	for _, tag := range models.DefaultProjectTags {
		tags = append(tags, clients.DiscordForumTag{Name: tag.Name, Emoji: tag.Emoji})
	}
	return tags
}
