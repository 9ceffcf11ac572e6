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

type acknowledgementRepo struct {
	db *sqlx.DB
}

// NewAcknowledgementRepo creates a new PostgreSQL-backed AcknowledgementRepository.
func NewAcknowledgementRepo(db *sqlx.DB) port.AcknowledgementRepository {
	return &acknowledgementRepo{db: db}
}

func (r *acknowledgementRepo) Acknowledge(ctx context.Context, documentID, recipientID uuid.UUID, remarks string) (*domain.Acknowledgement, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("acknowledgementRepo.Acknowledge begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// A recipient can only acknowledge what was distributed to them.
	var distID uuid.UUID
	err = tx.GetContext(ctx, &distID,
		"SELECT id FROM document_distributions WHERE document_id = $1 AND recipient_id = $2",
		documentID, recipientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: document %s, recipient %s", domain.ErrNotDistributed, documentID, recipientID)
		}
		return nil, fmt.Errorf("acknowledgementRepo.Acknowledge lookup: %w", err)
	}

	now := time.Now().UTC()
	var ack domain.Acknowledgement
	err = tx.GetContext(ctx, &ack, `INSERT INTO document_acknowledgements (
		id, document_id, recipient_id, status, remarks, acknowledged_at
	) VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (document_id, recipient_id)
	DO UPDATE SET status = EXCLUDED.status,
	              remarks = EXCLUDED.remarks,
	              acknowledged_at = EXCLUDED.acknowledged_at
	RETURNING *`,
		uuid.New(), documentID, recipientID, domain.AckAcknowledged, remarks, now)
	if err != nil {
		return nil, fmt.Errorf("acknowledgementRepo.Acknowledge: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("acknowledgementRepo.Acknowledge commit: %w", err)
	}
	return &ack, nil
}

func (r *acknowledgementRepo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.Acknowledgement, error) {
	var acks []domain.Acknowledgement
	err := r.db.SelectContext(ctx, &acks,
		"SELECT * FROM document_acknowledgements WHERE document_id = $1 ORDER BY acknowledged_at ASC",
		documentID)
	if err != nil {
		return nil, fmt.Errorf("acknowledgementRepo.ListByDocument: %w", err)
	}
	return acks, nil
}
