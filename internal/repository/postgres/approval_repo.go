package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/frogman715/hims-app-sub002/internal/domain"
	"github.com/frogman715/hims-app-sub002/internal/port"
)

type approvalRepo struct {
	db *sqlx.DB
}

// NewApprovalRepo creates a new PostgreSQL-backed ApprovalRepository.
func NewApprovalRepo(db *sqlx.DB) port.ApprovalRepository {
	return &approvalRepo{db: db}
}

func (r *approvalRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Approval, error) {
	var ap domain.Approval
	err := r.db.GetContext(ctx, &ap, "SELECT * FROM document_approvals WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("approvalRepo.GetByID: %w", err)
	}
	return &ap, nil
}

func (r *approvalRepo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.Approval, error) {
	var approvals []domain.Approval
	err := r.db.SelectContext(ctx, &approvals,
		"SELECT * FROM document_approvals WHERE document_id = $1 ORDER BY approval_level ASC, created_at ASC",
		documentID)
	if err != nil {
		return nil, fmt.Errorf("approvalRepo.ListByDocument: %w", err)
	}
	return approvals, nil
}

func (r *approvalRepo) Approve(ctx context.Context, in *port.DecideInput) (*port.DecideResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("approvalRepo.Approve begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	doc, ap, err := lockDecision(ctx, tx, in)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx, `UPDATE document_approvals
		SET status = $1, decided_by = $2, comments = $3, decided_at = $4
		WHERE id = $5`,
		domain.ApprovalApproved, in.ActorID, in.Comments, now, ap.ID)
	if err != nil {
		return nil, fmt.Errorf("approvalRepo.Approve: %w", err)
	}

	// The FOR UPDATE lock on the document row serializes concurrent
	// deciders, so exactly one of them observes zero remaining and
	// finalizes the transition.
	var pending int
	err = tx.GetContext(ctx, &pending,
		"SELECT COUNT(*) FROM document_approvals WHERE document_id = $1 AND status = $2",
		doc.ID, domain.ApprovalPending)
	if err != nil {
		return nil, fmt.Errorf("approvalRepo.Approve pending count: %w", err)
	}

	finalized := false
	if pending == 0 {
		doc.Status = domain.StatusApproved
		doc.UpdatedAt = now
		_, err = tx.ExecContext(ctx,
			"UPDATE documents SET status = $1, updated_at = $2 WHERE id = $3",
			doc.Status, doc.UpdatedAt, doc.ID)
		if err != nil {
			return nil, fmt.Errorf("approvalRepo.Approve finalize: %w", err)
		}
		finalized = true
	}

	approvals, err := listApprovalsTx(ctx, tx, doc.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("approvalRepo.Approve commit: %w", err)
	}
	return &port.DecideResult{Document: doc, Approvals: approvals, Finalized: finalized}, nil
}

func (r *approvalRepo) Reject(ctx context.Context, in *port.DecideInput) (*port.DecideResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("approvalRepo.Reject begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	doc, ap, err := lockDecision(ctx, tx, in)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx, `UPDATE document_approvals
		SET status = $1, decided_by = $2, rejection_reason = $3, decided_at = $4
		WHERE id = $5`,
		domain.ApprovalRejected, in.ActorID, in.Comments, now, ap.ID)
	if err != nil {
		return nil, fmt.Errorf("approvalRepo.Reject: %w", err)
	}

	// The remaining cycle no longer applies; a fresh submit starts over.
	_, err = tx.ExecContext(ctx, `UPDATE document_approvals
		SET status = $1 WHERE document_id = $2 AND status = $3`,
		domain.ApprovalRevoked, doc.ID, domain.ApprovalPending)
	if err != nil {
		return nil, fmt.Errorf("approvalRepo.Reject revoke siblings: %w", err)
	}

	doc.Status = domain.StatusDraft
	doc.UpdatedAt = now
	_, err = tx.ExecContext(ctx,
		"UPDATE documents SET status = $1, updated_at = $2 WHERE id = $3",
		doc.Status, doc.UpdatedAt, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("approvalRepo.Reject revert: %w", err)
	}

	approvals, err := listApprovalsTx(ctx, tx, doc.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("approvalRepo.Reject commit: %w", err)
	}
	return &port.DecideResult{Document: doc, Approvals: approvals}, nil
}

// lockDecision locks the document row, loads the approval and validates the
// decision preconditions shared by Approve and Reject.
func lockDecision(ctx context.Context, tx *sqlx.Tx, in *port.DecideInput) (*domain.Document, *domain.Approval, error) {
	doc, err := lockDocument(ctx, tx, in.DocumentID)
	if err != nil {
		return nil, nil, err
	}
	if doc.Status != domain.StatusForApproval {
		return nil, nil, fmt.Errorf("%w: document %s is %s, cannot decide approval", domain.ErrInvalidState, doc.Code, doc.Status)
	}

	var ap domain.Approval
	err = tx.GetContext(ctx, &ap, "SELECT * FROM document_approvals WHERE id = $1", in.ApprovalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("loading approval %s: %w", in.ApprovalID, err)
	}

	if ap.DocumentID != in.DocumentID {
		return nil, nil, fmt.Errorf("%w: approval %s belongs to document %s, not %s",
			domain.ErrIntegrity, ap.ID, ap.DocumentID, in.DocumentID)
	}
	if ap.AssignedTo != in.ActorID {
		return nil, nil, fmt.Errorf("%w: approval %s (level %d)", domain.ErrNotAssigned, ap.ID, ap.ApprovalLevel)
	}
	if ap.Status != domain.ApprovalPending {
		return nil, nil, fmt.Errorf("%w: approval %s is %s", domain.ErrAlreadyDecided, ap.ID, ap.Status)
	}
	return doc, &ap, nil
}

func listApprovalsTx(ctx context.Context, tx *sqlx.Tx, documentID uuid.UUID) ([]domain.Approval, error) {
	var approvals []domain.Approval
	err := tx.SelectContext(ctx, &approvals,
		"SELECT * FROM document_approvals WHERE document_id = $1 ORDER BY approval_level ASC, created_at ASC",
		documentID)
	if err != nil {
		return nil, fmt.Errorf("listing approvals for %s: %w", documentID, err)
	}
	return approvals, nil
}
