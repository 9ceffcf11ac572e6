package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/frogman715/hims-app-sub002/internal/domain"
	"github.com/frogman715/hims-app-sub002/internal/port"
)

// Decision is the choice an approver makes on an assigned approval.
type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
)

// DecideApprovalInput is the DTO for deciding an assigned approval.
type DecideApprovalInput struct {
	DocumentID uuid.UUID
	ApprovalID uuid.UUID
	ActorID    uuid.UUID
	Role       domain.UserRole
	Decision   Decision
	// Comments carries approval comments, or the rejection reason on reject.
	Comments string
}

// ApprovalService handles approval decisions on submitted documents.
type ApprovalService interface {
	Decide(ctx context.Context, input *DecideApprovalInput) (*port.DecideResult, error)
	ListByDocument(ctx context.Context, documentID uuid.UUID, role domain.UserRole) ([]domain.Approval, error)
}

type approvalService struct {
	approvalRepo port.ApprovalRepository
	auditRepo    port.AuditRepository
}

// NewApprovalService creates a new ApprovalService implementation.
func NewApprovalService(approvalRepo port.ApprovalRepository, auditRepo port.AuditRepository) ApprovalService {
	return &approvalService{approvalRepo: approvalRepo, auditRepo: auditRepo}
}

func (s *approvalService) Decide(ctx context.Context, input *DecideApprovalInput) (*port.DecideResult, error) {
	if !domain.Allowed(input.Role, domain.ActionApprove) {
		return nil, fmt.Errorf("%w: role %s cannot decide approvals", domain.ErrPermissionDenied, input.Role)
	}

	in := &port.DecideInput{
		DocumentID: input.DocumentID,
		ApprovalID: input.ApprovalID,
		ActorID:    input.ActorID,
		Comments:   input.Comments,
	}

	var (
		result *port.DecideResult
		action domain.AuditAction
		err    error
	)
	switch input.Decision {
	case DecisionApprove:
		result, err = s.approvalRepo.Approve(ctx, in)
		action = domain.AuditDocumentApproved
	case DecisionReject:
		if input.Comments == "" {
			return nil, fmt.Errorf("%w: rejection requires a reason", domain.ErrInvalidState)
		}
		result, err = s.approvalRepo.Reject(ctx, in)
		action = domain.AuditDocumentRejected
	default:
		return nil, fmt.Errorf("%w: unknown decision %q", domain.ErrInvalidState, input.Decision)
	}
	if err != nil {
		return nil, err
	}

	if result.Finalized {
		log.Printf("approvalService.Decide: document %s fully approved", input.DocumentID)
	}

	changes, _ := json.Marshal(map[string]interface{}{
		"approval_id": input.ApprovalID,
		"decision":    input.Decision,
		"finalized":   result.Finalized,
	})
	s.audit(ctx, input.DocumentID, input.ActorID, action, changes)
	return result, nil
}

func (s *approvalService) ListByDocument(ctx context.Context, documentID uuid.UUID, role domain.UserRole) ([]domain.Approval, error) {
	if !domain.Allowed(role, domain.ActionView) {
		return nil, fmt.Errorf("%w: role %s cannot view approvals", domain.ErrPermissionDenied, role)
	}
	return s.approvalRepo.ListByDocument(ctx, documentID)
}

func (s *approvalService) audit(ctx context.Context, docID, userID uuid.UUID, action domain.AuditAction, changes json.RawMessage) {
	if s.auditRepo == nil {
		return
	}
	entry := &domain.AuditEntry{DocumentID: docID, UserID: &userID, Action: action, Changes: changes}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("approvalService.audit: failed to write audit entry for %s/%s: %v", action, docID, err)
	}
}
