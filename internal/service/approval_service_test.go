package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/frogman715/hims-app-sub002/internal/domain"
	"github.com/frogman715/hims-app-sub002/internal/port"
	"github.com/frogman715/hims-app-sub002/internal/service"
	"github.com/frogman715/hims-app-sub002/mocks"
)

func setupApprovalService() (service.ApprovalService, *mocks.MockApprovalRepo, *mocks.MockAuditRepo) {
	approvalRepo := new(mocks.MockApprovalRepo)
	auditRepo := new(mocks.MockAuditRepo)
	svc := service.NewApprovalService(approvalRepo, auditRepo)
	return svc, approvalRepo, auditRepo
}

func TestApprovalService_Decide_ApproveFinalizes(t *testing.T) {
	svc, approvalRepo, auditRepo := setupApprovalService()
	docID := uuid.New()
	approvalID := uuid.New()
	actorID := uuid.New()

	approvalRepo.On("Approve", mock.Anything, mock.MatchedBy(func(in *port.DecideInput) bool {
		return in.DocumentID == docID && in.ApprovalID == approvalID && in.ActorID == actorID
	})).Return(&port.DecideResult{
		Document:  &domain.Document{ID: docID, Status: domain.StatusApproved},
		Finalized: true,
	}, nil)
	auditRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.AuditEntry) bool {
		return e.Action == domain.AuditDocumentApproved
	})).Return(nil)

	result, err := svc.Decide(context.Background(), &service.DecideApprovalInput{
		DocumentID: docID,
		ApprovalID: approvalID,
		ActorID:    actorID,
		Role:       domain.RoleDirector,
		Decision:   service.DecisionApprove,
		Comments:   "verified",
	})

	assert.NoError(t, err)
	assert.True(t, result.Finalized)
	assert.Equal(t, domain.StatusApproved, result.Document.Status)
	approvalRepo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
}

func TestApprovalService_Decide_RejectRevertsDocument(t *testing.T) {
	svc, approvalRepo, auditRepo := setupApprovalService()
	docID := uuid.New()

	approvalRepo.On("Reject", mock.Anything, mock.AnythingOfType("*port.DecideInput")).Return(&port.DecideResult{
		Document: &domain.Document{ID: docID, Status: domain.StatusDraft},
		Approvals: []domain.Approval{
			{Status: domain.ApprovalRejected},
			{Status: domain.ApprovalRevoked},
		},
	}, nil)
	auditRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.AuditEntry) bool {
		return e.Action == domain.AuditDocumentRejected
	})).Return(nil)

	result, err := svc.Decide(context.Background(), &service.DecideApprovalInput{
		DocumentID: docID,
		ApprovalID: uuid.New(),
		ActorID:    uuid.New(),
		Role:       domain.RoleQMR,
		Decision:   service.DecisionReject,
		Comments:   "section 3 outdated",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, result.Document.Status)
	assert.False(t, result.Finalized)
	approvalRepo.AssertExpectations(t)
}

func TestApprovalService_Decide_RejectRequiresReason(t *testing.T) {
	svc, approvalRepo, _ := setupApprovalService()

	result, err := svc.Decide(context.Background(), &service.DecideApprovalInput{
		DocumentID: uuid.New(),
		ApprovalID: uuid.New(),
		ActorID:    uuid.New(),
		Role:       domain.RoleQMR,
		Decision:   service.DecisionReject,
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	approvalRepo.AssertNotCalled(t, "Reject", mock.Anything, mock.Anything)
}

func TestApprovalService_Decide_PermissionDenied(t *testing.T) {
	svc, approvalRepo, _ := setupApprovalService()

	result, err := svc.Decide(context.Background(), &service.DecideApprovalInput{
		DocumentID: uuid.New(),
		ApprovalID: uuid.New(),
		ActorID:    uuid.New(),
		Role:       domain.RoleStaff,
		Decision:   service.DecisionApprove,
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	approvalRepo.AssertNotCalled(t, "Approve", mock.Anything, mock.Anything)
}

func TestApprovalService_Decide_UnknownDecision(t *testing.T) {
	svc, _, _ := setupApprovalService()

	result, err := svc.Decide(context.Background(), &service.DecideApprovalInput{
		DocumentID: uuid.New(),
		ApprovalID: uuid.New(),
		ActorID:    uuid.New(),
		Role:       domain.RoleQMR,
		Decision:   service.Decision("MAYBE"),
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestApprovalService_Decide_AlreadyDecidedPassesThrough(t *testing.T) {
	svc, approvalRepo, _ := setupApprovalService()

	approvalRepo.On("Approve", mock.Anything, mock.Anything).Return(nil, domain.ErrAlreadyDecided)

	result, err := svc.Decide(context.Background(), &service.DecideApprovalInput{
		DocumentID: uuid.New(),
		ApprovalID: uuid.New(),
		ActorID:    uuid.New(),
		Role:       domain.RoleDirector,
		Decision:   service.DecisionApprove,
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrAlreadyDecided)
}

func TestApprovalService_ListByDocument(t *testing.T) {
	svc, approvalRepo, _ := setupApprovalService()
	docID := uuid.New()

	approvalRepo.On("ListByDocument", mock.Anything, docID).Return([]domain.Approval{
		{ApprovalLevel: 1}, {ApprovalLevel: 2},
	}, nil)

	approvals, err := svc.ListByDocument(context.Background(), docID, domain.RoleStaff)

	assert.NoError(t, err)
	assert.Len(t, approvals, 2)
}
