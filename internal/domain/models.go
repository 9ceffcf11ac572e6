package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User represents an identity known to the role directory.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Document is a controlled document and the root of its revision, approval,
// distribution and acknowledgement records.
type Document struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	Code            string          `db:"code" json:"code"`
	Title           string          `db:"title" json:"title"`
	Description     string          `db:"description" json:"description"`
	DocumentType    string          `db:"document_type" json:"document_type"`
	Department      string          `db:"department" json:"department"`
	RetentionPeriod RetentionPeriod `db:"retention_period" json:"retention_period"`
	EffectiveDate   time.Time       `db:"effective_date" json:"effective_date"`
	Status          DocumentStatus  `db:"status" json:"status"`
	ContentURL      string          `db:"content_url" json:"content_url"`
	FileName        string          `db:"file_name" json:"file_name"`
	FileSize        int64           `db:"file_size" json:"file_size"`
	CreatedBy       uuid.UUID       `db:"created_by" json:"created_by"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// Revision is an immutable content snapshot of a document. Revision numbers
// start at 0 and increase without gaps.
type Revision struct {
	ID             uuid.UUID `db:"id" json:"id"`
	DocumentID     uuid.UUID `db:"document_id" json:"document_id"`
	RevisionNumber int       `db:"revision_number" json:"revision_number"`
	ChangesSummary string    `db:"changes_summary" json:"changes_summary"`
	ContentURL     string    `db:"content_url" json:"content_url"`
	FileName       string    `db:"file_name" json:"file_name"`
	CreatedBy      uuid.UUID `db:"created_by" json:"created_by"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Approval is one level of a document's approval cycle, bound to the
// approver resolved at submission time.
type Approval struct {
	ID              uuid.UUID      `db:"id" json:"id"`
	DocumentID      uuid.UUID      `db:"document_id" json:"document_id"`
	ApprovalLevel   int            `db:"approval_level" json:"approval_level"`
	ApprovalRole    UserRole       `db:"approval_role" json:"approval_role"`
	Status          ApprovalStatus `db:"status" json:"status"`
	AssignedTo      uuid.UUID      `db:"assigned_to" json:"assigned_to"`
	DecidedBy       *uuid.UUID     `db:"decided_by" json:"decided_by"`
	Comments        string         `db:"comments" json:"comments"`
	RejectionReason string         `db:"rejection_reason" json:"rejection_reason"`
	DecidedAt       *time.Time     `db:"decided_at" json:"decided_at"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
}

// Distribution records that a published document was pushed to a recipient.
// One row per (document, recipient); re-distribution refreshes the timestamp.
type Distribution struct {
	ID                      uuid.UUID           `db:"id" json:"id"`
	DocumentID              uuid.UUID           `db:"document_id" json:"document_id"`
	RecipientID             uuid.UUID           `db:"recipient_id" json:"recipient_id"`
	Channel                 DistributionChannel `db:"channel" json:"channel"`
	RequiresAcknowledgement bool                `db:"requires_acknowledgement" json:"requires_acknowledgement"`
	DistributedBy           uuid.UUID           `db:"distributed_by" json:"distributed_by"`
	DistributedAt           time.Time           `db:"distributed_at" json:"distributed_at"`
}

// Acknowledgement records a recipient's confirmation of a distributed
// document. One row per (document, recipient).
type Acknowledgement struct {
	ID             uuid.UUID             `db:"id" json:"id"`
	DocumentID     uuid.UUID             `db:"document_id" json:"document_id"`
	RecipientID    uuid.UUID             `db:"recipient_id" json:"recipient_id"`
	Status         AcknowledgementStatus `db:"status" json:"status"`
	Remarks        string                `db:"remarks" json:"remarks"`
	AcknowledgedAt *time.Time            `db:"acknowledged_at" json:"acknowledged_at"`
}

// DocumentHistory aggregates a document with all of its child records,
// ordered by their natural keys.
type DocumentHistory struct {
	Document         *Document         `json:"document"`
	Revisions        []Revision        `json:"revisions"`
	Approvals        []Approval        `json:"approvals"`
	Distributions    []Distribution    `json:"distributions"`
	Acknowledgements []Acknowledgement `json:"acknowledgements"`
}

// AuditEntry is one immutable line of the document audit trail. Audit rows
// carry no foreign key so they survive document deletion.
type AuditEntry struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	DocumentID uuid.UUID       `db:"document_id" json:"document_id"`
	UserID     *uuid.UUID      `db:"user_id" json:"user_id"`
	Action     AuditAction     `db:"action" json:"action"`
	Changes    json.RawMessage `db:"changes" json:"changes"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// RegisterRow is one line of the document control register report.
type RegisterRow struct {
	Code              string         `db:"code" json:"code"`
	Title             string         `db:"title" json:"title"`
	DocumentType      string         `db:"document_type" json:"document_type"`
	Department        string         `db:"department" json:"department"`
	Status            DocumentStatus `db:"status" json:"status"`
	EffectiveDate     time.Time      `db:"effective_date" json:"effective_date"`
	CurrentRevision   int            `db:"current_revision" json:"current_revision"`
	DistributionCount int            `db:"distribution_count" json:"distribution_count"`
	AcknowledgedCount int            `db:"acknowledged_count" json:"acknowledged_count"`
}
