package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/frogman715/hims-app-sub002/internal/domain"
	"github.com/frogman715/hims-app-sub002/internal/port"
)

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *domain.Document) error {
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	doc.Status = domain.StatusDraft

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("documentRepo.Create begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `INSERT INTO documents (
		id, code, title, description, document_type, department,
		retention_period, effective_date, status,
		content_url, file_name, file_size,
		created_by, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6,
		$7, $8, $9,
		$10, $11, $12,
		$13, $14, $15
	)`,
		doc.ID, doc.Code, doc.Title, doc.Description, doc.DocumentType, doc.Department,
		doc.RetentionPeriod, doc.EffectiveDate, doc.Status,
		doc.ContentURL, doc.FileName, doc.FileSize,
		doc.CreatedBy, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "code") {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateCode, doc.Code)
		}
		return fmt.Errorf("documentRepo.Create: %w", err)
	}

	// Revision 0 is the creation snapshot and commits with the document.
	_, err = tx.ExecContext(ctx, `INSERT INTO document_revisions (
		id, document_id, revision_number, changes_summary,
		content_url, file_name, created_by, created_at
	) VALUES ($1, $2, 0, $3, $4, $5, $6, $7)`,
		uuid.New(), doc.ID, "Initial creation",
		doc.ContentURL, doc.FileName, doc.CreatedBy, now)
	if err != nil {
		return fmt.Errorf("documentRepo.Create revision 0: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("documentRepo.Create commit: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc, "SELECT * FROM documents WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) GetByCode(ctx context.Context, code string) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc, "SELECT * FROM documents WHERE code = $1", code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByCode: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) List(ctx context.Context, status *domain.DocumentStatus, offset, limit int) ([]domain.Document, int, error) {
	where := ""
	args := []interface{}{}
	if status != nil {
		where = " WHERE status = $1"
		args = append(args, *status)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM documents"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM documents%s ORDER BY code ASC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var docs []domain.Document
	if err := r.db.SelectContext(ctx, &docs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List: %w", err)
	}
	return docs, total, nil
}

func (r *documentRepo) UpdateDraft(ctx context.Context, id uuid.UUID, changes *port.DocumentChanges, editorID uuid.UUID) (*domain.Document, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.UpdateDraft begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	doc, err := lockDocument(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if doc.Status != domain.StatusDraft {
		return nil, fmt.Errorf("%w: document %s is %s, cannot edit", domain.ErrInvalidState, doc.Code, doc.Status)
	}

	applyChanges(doc, changes)
	now := time.Now().UTC()
	doc.UpdatedAt = now

	_, err = tx.ExecContext(ctx, `UPDATE documents SET
		title = $1, description = $2, document_type = $3, department = $4,
		retention_period = $5, effective_date = $6,
		content_url = $7, file_name = $8, file_size = $9, updated_at = $10
	 WHERE id = $11`,
		doc.Title, doc.Description, doc.DocumentType, doc.Department,
		doc.RetentionPeriod, doc.EffectiveDate,
		doc.ContentURL, doc.FileName, doc.FileSize, doc.UpdatedAt, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.UpdateDraft: %w", err)
	}

	// The row lock on the document serializes concurrent edits, so max+1
	// stays gapless.
	var next int
	err = tx.GetContext(ctx, &next,
		"SELECT COALESCE(MAX(revision_number), -1) + 1 FROM document_revisions WHERE document_id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.UpdateDraft next revision: %w", err)
	}

	summary := changes.ChangesSummary
	if summary == "" {
		summary = "Revised"
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO document_revisions (
		id, document_id, revision_number, changes_summary,
		content_url, file_name, created_by, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.New(), id, next, summary, doc.ContentURL, doc.FileName, editorID, now)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.UpdateDraft revision: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("documentRepo.UpdateDraft commit: %w", err)
	}
	return doc, nil
}

func (r *documentRepo) Submit(ctx context.Context, id uuid.UUID, approvals []domain.Approval) (*domain.Document, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.Submit begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	doc, err := lockDocument(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if doc.Status != domain.StatusDraft {
		return nil, fmt.Errorf("%w: document %s is %s, cannot submit", domain.ErrInvalidState, doc.Code, doc.Status)
	}

	now := time.Now().UTC()
	doc.Status = domain.StatusForApproval
	doc.UpdatedAt = now
	_, err = tx.ExecContext(ctx,
		"UPDATE documents SET status = $1, updated_at = $2 WHERE id = $3",
		doc.Status, doc.UpdatedAt, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.Submit: %w", err)
	}

	for i := range approvals {
		ap := &approvals[i]
		if ap.ID == uuid.Nil {
			ap.ID = uuid.New()
		}
		ap.DocumentID = id
		ap.Status = domain.ApprovalPending
		ap.CreatedAt = now
		_, err = tx.ExecContext(ctx, `INSERT INTO document_approvals (
			id, document_id, approval_level, approval_role, status,
			assigned_to, comments, rejection_reason, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, '', '', $7)`,
			ap.ID, ap.DocumentID, ap.ApprovalLevel, ap.ApprovalRole, ap.Status,
			ap.AssignedTo, ap.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("documentRepo.Submit approval level %d: %w", ap.ApprovalLevel, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("documentRepo.Submit commit: %w", err)
	}
	return doc, nil
}

func (r *documentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("documentRepo.Delete begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	doc, err := lockDocument(ctx, tx, id)
	if err != nil {
		return err
	}
	if doc.Status != domain.StatusDraft {
		return fmt.Errorf("%w: document %s is %s, cannot delete", domain.ErrInvalidState, doc.Code, doc.Status)
	}

	// Child rows go via ON DELETE CASCADE; the audit log has no FK and stays.
	if _, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE id = $1", id); err != nil {
		return fmt.Errorf("documentRepo.Delete: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("documentRepo.Delete commit: %w", err)
	}
	return nil
}

func (r *documentRepo) History(ctx context.Context, id uuid.UUID) (*domain.DocumentHistory, error) {
	doc, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	h := &domain.DocumentHistory{Document: doc}

	err = r.db.SelectContext(ctx, &h.Revisions,
		"SELECT * FROM document_revisions WHERE document_id = $1 ORDER BY revision_number ASC", id)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.History revisions: %w", err)
	}
	err = r.db.SelectContext(ctx, &h.Approvals,
		"SELECT * FROM document_approvals WHERE document_id = $1 ORDER BY approval_level ASC, created_at ASC", id)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.History approvals: %w", err)
	}
	err = r.db.SelectContext(ctx, &h.Distributions,
		"SELECT * FROM document_distributions WHERE document_id = $1 ORDER BY distributed_at ASC", id)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.History distributions: %w", err)
	}
	err = r.db.SelectContext(ctx, &h.Acknowledgements,
		"SELECT * FROM document_acknowledgements WHERE document_id = $1 ORDER BY acknowledged_at ASC", id)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.History acknowledgements: %w", err)
	}
	return h, nil
}

func (r *documentRepo) ObsoleteExpired(ctx context.Context, asOf time.Time) ([]domain.Document, error) {
	var docs []domain.Document
	err := r.db.SelectContext(ctx, &docs, `
		UPDATE documents SET status = $1, updated_at = $2
		WHERE status = $3
		  AND retention_period <> $4
		  AND effective_date + (CASE retention_period
				WHEN 'ONE_YEAR' THEN INTERVAL '1 year'
				WHEN 'THREE_YEARS' THEN INTERVAL '3 years'
				WHEN 'FIVE_YEARS' THEN INTERVAL '5 years'
			END) <= $5
		RETURNING *`,
		domain.StatusObsolete, time.Now().UTC(),
		domain.StatusActive, domain.RetentionPermanent, asOf)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.ObsoleteExpired: %w", err)
	}
	return docs, nil
}

// lockDocument reads a document under FOR UPDATE inside tx, serializing all
// writers for the same document.
func lockDocument(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := tx.GetContext(ctx, &doc, "SELECT * FROM documents WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("locking document %s: %w", id, err)
	}
	return &doc, nil
}

func applyChanges(doc *domain.Document, changes *port.DocumentChanges) {
	if changes.Title != nil {
		doc.Title = *changes.Title
	}
	if changes.Description != nil {
		doc.Description = *changes.Description
	}
	if changes.DocumentType != nil {
		doc.DocumentType = *changes.DocumentType
	}
	if changes.Department != nil {
		doc.Department = *changes.Department
	}
	if changes.RetentionPeriod != nil {
		doc.RetentionPeriod = *changes.RetentionPeriod
	}
	if changes.EffectiveDate != nil {
		doc.EffectiveDate = *changes.EffectiveDate
	}
	if changes.ContentURL != nil {
		doc.ContentURL = *changes.ContentURL
	}
	if changes.FileName != nil {
		doc.FileName = *changes.FileName
	}
	if changes.FileSize != nil {
		doc.FileSize = *changes.FileSize
	}
}
