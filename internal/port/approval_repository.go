package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/frogman715/hims-app-sub002/internal/domain"
)

// DecideInput identifies one approval decision.
type DecideInput struct {
	DocumentID uuid.UUID
	ApprovalID uuid.UUID
	ActorID    uuid.UUID
	// Comments carries approval comments, or the rejection reason on Reject.
	Comments string
}

// DecideResult is the updated aggregate after a decision.
type DecideResult struct {
	Document  *domain.Document
	Approvals []domain.Approval
	// Finalized is true when this approval was the last pending one and the
	// document transitioned to APPROVED.
	Finalized bool
}

// ApprovalRepository defines persistence for approval decisions. Approve and
// Reject run in a single transaction holding a row lock on the document, so
// concurrent deciders serialize and exactly one approval finalizes the
// document.
type ApprovalRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Approval, error)
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.Approval, error)

	// Approve marks the approval APPROVED; when no PENDING approvals remain
	// the document moves FOR_APPROVAL -> APPROVED in the same transaction.
	Approve(ctx context.Context, in *DecideInput) (*DecideResult, error)

	// Reject marks the approval REJECTED, reverts the document to DRAFT and
	// revokes every sibling PENDING approval in the same transaction.
	Reject(ctx context.Context, in *DecideInput) (*DecideResult, error)
}
