package projects

import (
	"context"

	"github.com/stretchr/testify/mock"

	"kbbridge/models"
)

// MockProjectsService implements services.ProjectsService for testing
type MockProjectsService struct {
	mock.Mock
}

func (m *MockProjectsService) CreateProject(
	ctx context.Context,
	params models.CreateProjectParams,
) (*models.Project, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectsService) CompleteProject(ctx context.Context, name string) (*models.Project, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectsService) ReactivateProject(ctx context.Context, name string) (*models.Project, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectsService) ListProjects(ctx context.Context, state models.ProjectState) ([]models.Project, error) {
	args := m.Called(ctx, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Project), args.Error(1)
}

func (m *MockProjectsService) EnsureLifecycleCategories(ctx context.Context) (*models.LifecycleCategories, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LifecycleCategories), args.Error(1)
}
