package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/frogman715/hims-app-sub002/internal/domain"
	"github.com/frogman715/hims-app-sub002/internal/service"
	"github.com/frogman715/hims-app-sub002/mocks"
)

func setupDistributionService() (service.DistributionService, *mocks.MockDistributionRepo, *mocks.MockUserRepo, *mocks.MockAuditRepo, *mocks.MockNotifier) {
	distRepo := new(mocks.MockDistributionRepo)
	userRepo := new(mocks.MockUserRepo)
	auditRepo := new(mocks.MockAuditRepo)
	notifier := new(mocks.MockNotifier)
	svc := service.NewDistributionService(distRepo, userRepo, auditRepo, notifier)
	return svc, distRepo, userRepo, auditRepo, notifier
}

func TestDistributionService_Distribute_Success(t *testing.T) {
	svc, distRepo, userRepo, auditRepo, notifier := setupDistributionService()
	docID := uuid.New()
	actorID := uuid.New()
	r1 := uuid.New()
	r2 := uuid.New()

	users := []domain.User{
		{ID: r1, Email: "a@hospital.example", FullName: "A"},
		{ID: r2, Email: "b@hospital.example", FullName: "B"},
	}
	doc := &domain.Document{ID: docID, Code: "DOC-001", Status: domain.StatusActive}

	userRepo.On("ListByIDs", mock.Anything, []uuid.UUID{r1, r2}).Return(users, nil)
	distRepo.On("Distribute", mock.Anything, docID, []uuid.UUID{r1, r2}, domain.ChannelSystemNotification, actorID).
		Return(doc, []domain.Distribution{{RecipientID: r1}, {RecipientID: r2}}, nil)
	notifier.On("SendDistributionNotice", mock.Anything, "a@hospital.example", "A", doc).Return(nil)
	notifier.On("SendDistributionNotice", mock.Anything, "b@hospital.example", "B", doc).Return(nil)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.Distribute(context.Background(), &service.DistributeInput{
		DocumentID:   docID,
		RecipientIDs: []uuid.UUID{r1, r2, r1}, // duplicate collapses
		ActorID:      actorID,
		Role:         domain.RoleQMR,
	})

	assert.NoError(t, err)
	assert.Len(t, result.Distributions, 2)
	distRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestDistributionService_Distribute_PermissionDenied(t *testing.T) {
	svc, distRepo, _, _, _ := setupDistributionService()

	result, err := svc.Distribute(context.Background(), &service.DistributeInput{
		DocumentID:   uuid.New(),
		RecipientIDs: []uuid.UUID{uuid.New()},
		ActorID:      uuid.New(),
		Role:         domain.RoleStaff,
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	distRepo.AssertNotCalled(t, "Distribute", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDistributionService_Distribute_NoRecipientsIsNoop(t *testing.T) {
	svc, distRepo, userRepo, auditRepo, notifier := setupDistributionService()
	docID := uuid.New()
	doc := &domain.Document{ID: docID, Code: "DOC-001", Status: domain.StatusActive}

	distRepo.On("Distribute", mock.Anything, docID, []uuid.UUID{}, domain.ChannelSystemNotification, mock.Anything).
		Return(doc, []domain.Distribution{}, nil)

	result, err := svc.Distribute(context.Background(), &service.DistributeInput{
		DocumentID: docID,
		ActorID:    uuid.New(),
		Role:       domain.RoleQMR,
	})

	assert.NoError(t, err)
	assert.Empty(t, result.Distributions)
	assert.Equal(t, domain.StatusActive, result.Document.Status)
	userRepo.AssertNotCalled(t, "ListByIDs", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "SendDistributionNotice", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	auditRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDistributionService_Distribute_UnknownRecipient(t *testing.T) {
	svc, distRepo, userRepo, _, _ := setupDistributionService()
	r1 := uuid.New()
	r2 := uuid.New()

	// Only one of the two recipients exists.
	userRepo.On("ListByIDs", mock.Anything, []uuid.UUID{r1, r2}).
		Return([]domain.User{{ID: r1}}, nil)

	result, err := svc.Distribute(context.Background(), &service.DistributeInput{
		DocumentID:   uuid.New(),
		RecipientIDs: []uuid.UUID{r1, r2},
		ActorID:      uuid.New(),
		Role:         domain.RoleQMR,
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	distRepo.AssertNotCalled(t, "Distribute", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDistributionService_Distribute_NotPublished(t *testing.T) {
	svc, distRepo, userRepo, _, _ := setupDistributionService()
	r1 := uuid.New()

	userRepo.On("ListByIDs", mock.Anything, []uuid.UUID{r1}).Return([]domain.User{{ID: r1}}, nil)
	distRepo.On("Distribute", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, nil, domain.ErrInvalidState)

	result, err := svc.Distribute(context.Background(), &service.DistributeInput{
		DocumentID:   uuid.New(),
		RecipientIDs: []uuid.UUID{r1},
		ActorID:      uuid.New(),
		Role:         domain.RoleQMR,
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestDistributionService_Distribute_NotifierFailureIsNotFatal(t *testing.T) {
	svc, distRepo, userRepo, auditRepo, notifier := setupDistributionService()
	docID := uuid.New()
	r1 := uuid.New()
	doc := &domain.Document{ID: docID, Status: domain.StatusActive}

	userRepo.On("ListByIDs", mock.Anything, []uuid.UUID{r1}).
		Return([]domain.User{{ID: r1, Email: "a@hospital.example", FullName: "A"}}, nil)
	distRepo.On("Distribute", mock.Anything, docID, []uuid.UUID{r1}, domain.ChannelEmail, mock.Anything).
		Return(doc, []domain.Distribution{{RecipientID: r1}}, nil)
	notifier.On("SendDistributionNotice", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp timeout"))
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.Distribute(context.Background(), &service.DistributeInput{
		DocumentID:   docID,
		RecipientIDs: []uuid.UUID{r1},
		Channel:      domain.ChannelEmail,
		ActorID:      uuid.New(),
		Role:         domain.RoleDirector,
	})

	assert.NoError(t, err)
	assert.Len(t, result.Distributions, 1)
}
