package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/frogman715/hims-app-sub002/internal/domain"
)

// DocumentChanges carries a partial DRAFT update. Nil fields keep their
// prior values.
type DocumentChanges struct {
	Title           *string
	Description     *string
	DocumentType    *string
	Department      *string
	RetentionPeriod *domain.RetentionPeriod
	EffectiveDate   *time.Time
	ContentURL      *string
	FileName        *string
	FileSize        *int64
	ChangesSummary  string
}

// DocumentRepository defines persistence for documents and the transactional
// operations that span a document and its child records. The document row is
// the unit of consistency: multi-table writes lock it and commit atomically.
type DocumentRepository interface {
	// Create inserts the document and its revision 0 snapshot in one
	// transaction. Returns domain.ErrDuplicateCode if the code is taken.
	Create(ctx context.Context, doc *domain.Document) error

	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	GetByCode(ctx context.Context, code string) (*domain.Document, error)
	List(ctx context.Context, status *domain.DocumentStatus, offset, limit int) ([]domain.Document, int, error)

	// UpdateDraft applies a partial field update and writes the next
	// revision in one transaction. The document must be in DRAFT.
	UpdateDraft(ctx context.Context, id uuid.UUID, changes *DocumentChanges, editorID uuid.UUID) (*domain.Document, error)

	// Submit flips a DRAFT document to FOR_APPROVAL and inserts the
	// pre-resolved PENDING approval rows in one transaction.
	Submit(ctx context.Context, id uuid.UUID, approvals []domain.Approval) (*domain.Document, error)

	// Delete removes a DRAFT document; child rows go with it via FK cascade.
	Delete(ctx context.Context, id uuid.UUID) error

	// History returns the document with all child collections ordered by
	// their natural keys.
	History(ctx context.Context, id uuid.UUID) (*domain.DocumentHistory, error)

	// ObsoleteExpired marks ACTIVE documents whose retention window has
	// elapsed as OBSOLETE and returns the affected documents.
	ObsoleteExpired(ctx context.Context, asOf time.Time) ([]domain.Document, error)
}

// RevisionRepository reads the append-only revision ledger. Writes happen
// only inside DocumentRepository transactions.
type RevisionRepository interface {
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.Revision, error)
}
