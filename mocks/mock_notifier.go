package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/frogman715/hims-app-sub002/internal/domain"
)

// MockNotifier is a mock implementation of port.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendDistributionNotice(ctx context.Context, toEmail, toName string, doc *domain.Document) error {
	args := m.Called(ctx, toEmail, toName, doc)
	return args.Error(0)
}
