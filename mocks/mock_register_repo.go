package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/frogman715/hims-app-sub002/internal/domain"
)

// MockRegisterRepo is a mock implementation of port.RegisterRepository.
type MockRegisterRepo struct {
	mock.Mock
}

func (m *MockRegisterRepo) DocumentRegister(ctx context.Context) ([]domain.RegisterRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RegisterRow), args.Error(1)
}
