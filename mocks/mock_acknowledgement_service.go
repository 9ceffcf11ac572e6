package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/frogman715/hims-app-sub002/internal/domain"
	"github.com/frogman715/hims-app-sub002/internal/service"
)

// MockAcknowledgementService is a mock implementation of service.AcknowledgementService.
type MockAcknowledgementService struct {
	mock.Mock
}

func (m *MockAcknowledgementService) Acknowledge(ctx context.Context, input *service.AcknowledgeInput) (*domain.Acknowledgement, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Acknowledgement), args.Error(1)
}

func (m *MockAcknowledgementService) ListByDocument(ctx context.Context, documentID uuid.UUID, role domain.UserRole) ([]domain.Acknowledgement, error) {
	args := m.Called(ctx, documentID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Acknowledgement), args.Error(1)
}
