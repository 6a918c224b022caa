package conversationcontext

import (
	"context"

	"github.com/stretchr/testify/mock"

	"kbbridge/models"
)

// MockConversationContextService implements services.ConversationContextService for testing
type MockConversationContextService struct {
	mock.Mock
}

func (m *MockConversationContextService) AssembleContext(
	ctx context.Context,
	channelID, botUserID string,
	limit int,
) ([]models.ContextEntry, error) {
	args := m.Called(ctx, channelID, botUserID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ContextEntry), args.Error(1)
}
