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

type distributionRepo struct {
	db *sqlx.DB
}

// NewDistributionRepo creates a new PostgreSQL-backed DistributionRepository.
func NewDistributionRepo(db *sqlx.DB) port.DistributionRepository {
	return &distributionRepo{db: db}
}

func (r *distributionRepo) Distribute(ctx context.Context, documentID uuid.UUID, recipientIDs []uuid.UUID, channel domain.DistributionChannel, actorID uuid.UUID) (*domain.Document, []domain.Distribution, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("distributionRepo.Distribute begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	doc, err := lockDocument(ctx, tx, documentID)
	if err != nil {
		return nil, nil, err
	}
	if doc.Status != domain.StatusApproved && doc.Status != domain.StatusActive {
		return nil, nil, fmt.Errorf("%w: document %s is %s, cannot distribute", domain.ErrInvalidState, doc.Code, doc.Status)
	}

	now := time.Now().UTC()
	dists := make([]domain.Distribution, 0, len(recipientIDs))
	for _, recipientID := range recipientIDs {
		var dist domain.Distribution
		err = tx.GetContext(ctx, &dist, `INSERT INTO document_distributions (
			id, document_id, recipient_id, channel,
			requires_acknowledgement, distributed_by, distributed_at
		) VALUES ($1, $2, $3, $4, TRUE, $5, $6)
		ON CONFLICT (document_id, recipient_id)
		DO UPDATE SET distributed_at = EXCLUDED.distributed_at,
		              channel = EXCLUDED.channel,
		              distributed_by = EXCLUDED.distributed_by
		RETURNING *`,
			uuid.New(), documentID, recipientID, channel, actorID, now)
		if err != nil {
			return nil, nil, fmt.Errorf("distributionRepo.Distribute recipient %s: %w", recipientID, err)
		}
		dists = append(dists, dist)
	}

	// First successful distribution publishes the document.
	if len(dists) > 0 && doc.Status == domain.StatusApproved {
		doc.Status = domain.StatusActive
		doc.UpdatedAt = now
		_, err = tx.ExecContext(ctx,
			"UPDATE documents SET status = $1, updated_at = $2 WHERE id = $3",
			doc.Status, doc.UpdatedAt, doc.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("distributionRepo.Distribute activate: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("distributionRepo.Distribute commit: %w", err)
	}
	return doc, dists, nil
}

func (r *distributionRepo) GetByDocumentAndRecipient(ctx context.Context, documentID, recipientID uuid.UUID) (*domain.Distribution, error) {
	var dist domain.Distribution
	err := r.db.GetContext(ctx, &dist,
		"SELECT * FROM document_distributions WHERE document_id = $1 AND recipient_id = $2",
		documentID, recipientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("distributionRepo.GetByDocumentAndRecipient: %w", err)
	}
	return &dist, nil
}

func (r *distributionRepo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.Distribution, error) {
	var dists []domain.Distribution
	err := r.db.SelectContext(ctx, &dists,
		"SELECT * FROM document_distributions WHERE document_id = $1 ORDER BY distributed_at ASC",
		documentID)
	if err != nil {
		return nil, fmt.Errorf("distributionRepo.ListByDocument: %w", err)
	}
	return dists, nil
}
