package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/frogman715/hims-app-sub002/internal/domain"
	"github.com/frogman715/hims-app-sub002/internal/port"
)

type revisionRepo struct {
	db *sqlx.DB
}

// NewRevisionRepo creates a new PostgreSQL-backed RevisionRepository.
// Revision writes happen inside document transactions; this repository only
// reads the ledger.
func NewRevisionRepo(db *sqlx.DB) port.RevisionRepository {
	return &revisionRepo{db: db}
}

func (r *revisionRepo) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.Revision, error) {
	var revisions []domain.Revision
	err := r.db.SelectContext(ctx, &revisions,
		"SELECT * FROM document_revisions WHERE document_id = $1 ORDER BY revision_number ASC",
		documentID)
	if err != nil {
		return nil, fmt.Errorf("revisionRepo.ListByDocument: %w", err)
	}
	return revisions, nil
}
