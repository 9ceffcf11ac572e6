package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/frogman715/hims-app-sub002/internal/domain"
)

// DistributionRepository defines persistence for distribution tracking.
type DistributionRepository interface {
	// Distribute upserts one row per recipient (re-distribution refreshes
	// the timestamp) and flips an APPROVED document to ACTIVE, all in one
	// transaction. The document must be APPROVED or ACTIVE.
	Distribute(ctx context.Context, documentID uuid.UUID, recipientIDs []uuid.UUID, channel domain.DistributionChannel, actorID uuid.UUID) (*domain.Document, []domain.Distribution, error)

	GetByDocumentAndRecipient(ctx context.Context, documentID, recipientID uuid.UUID) (*domain.Distribution, error)
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.Distribution, error)
}

// AcknowledgementRepository defines persistence for the acknowledgement
// ledger.
type AcknowledgementRepository interface {
	// Acknowledge upserts the recipient's acknowledgement to ACKNOWLEDGED.
	// Returns domain.ErrNotDistributed when the document was never
	// distributed to the recipient.
	Acknowledge(ctx context.Context, documentID, recipientID uuid.UUID, remarks string) (*domain.Acknowledgement, error)

	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.Acknowledgement, error)
}
