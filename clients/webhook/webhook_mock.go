package webhook

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockWebhookClient implements the clients.WebhookClient interface for testing
type MockWebhookClient struct {
	mock.Mock
}

func (m *MockWebhookClient) PostJSON(ctx context.Context, body any, headers map[string]string) (int, error) {
	args := m.Called(ctx, body, headers)
	return args.Int(0), args.Error(1)
}
