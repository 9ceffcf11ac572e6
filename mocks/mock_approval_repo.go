package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/frogman715/hims-app-sub002/internal/domain"
	"github.com/frogman715/hims-app-sub002/internal/port"
)

// MockApprovalRepo is a mock implementation of port.ApprovalRepository.
type MockApprovalRepo struct {
	mock.Mock
}

func (m *MockApprovalRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Approval, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Approval), args.Error(1)
}

func (m *MockApprovalRepo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.Approval, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Approval), args.Error(1)
}

func (m *MockApprovalRepo) Approve(ctx context.Context, in *port.DecideInput) (*port.DecideResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.DecideResult), args.Error(1)
}

func (m *MockApprovalRepo) Reject(ctx context.Context, in *port.DecideInput) (*port.DecideResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.DecideResult), args.Error(1)
}
