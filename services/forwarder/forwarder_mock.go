package forwarder

import (
	"context"

	"github.com/stretchr/testify/mock"

	"kbbridge/models"
)

// MockForwarderService implements services.ForwarderService for testing
type MockForwarderService struct {
	mock.Mock
}

func (m *MockForwarderService) Forward(
	ctx context.Context,
	event models.ClassifiedEvent,
	history []models.ContextEntry,
) models.ForwardOutcome {
	args := m.Called(ctx, event, history)
	return args.Get(0).(models.ForwardOutcome)
}
