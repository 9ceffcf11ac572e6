package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/frogman715/hims-app-sub002/internal/domain"
)

// MockDistributionRepo is a mock implementation of port.DistributionRepository.
type MockDistributionRepo struct {
	mock.Mock
}

func (m *MockDistributionRepo) Distribute(ctx context.Context, documentID uuid.UUID, recipientIDs []uuid.UUID, channel domain.DistributionChannel, actorID uuid.UUID) (*domain.Document, []domain.Distribution, error) {
	args := m.Called(ctx, documentID, recipientIDs, channel, actorID)
	var doc *domain.Document
	if args.Get(0) != nil {
		doc = args.Get(0).(*domain.Document)
	}
	var dists []domain.Distribution
	if args.Get(1) != nil {
		dists = args.Get(1).([]domain.Distribution)
	}
	return doc, dists, args.Error(2)
}

func (m *MockDistributionRepo) GetByDocumentAndRecipient(ctx context.Context, documentID, recipientID uuid.UUID) (*domain.Distribution, error) {
	args := m.Called(ctx, documentID, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Distribution), args.Error(1)
}

func (m *MockDistributionRepo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.Distribution, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Distribution), args.Error(1)
}

// MockAcknowledgementRepo is a mock implementation of port.AcknowledgementRepository.
type MockAcknowledgementRepo struct {
	mock.Mock
}

func (m *MockAcknowledgementRepo) Acknowledge(ctx context.Context, documentID, recipientID uuid.UUID, remarks string) (*domain.Acknowledgement, error) {
	args := m.Called(ctx, documentID, recipientID, remarks)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Acknowledgement), args.Error(1)
}

func (m *MockAcknowledgementRepo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.Acknowledgement, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Acknowledgement), args.Error(1)
}
