package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/frogman715/hims-app-sub002/internal/domain"
	"github.com/frogman715/hims-app-sub002/internal/port"
)

type registerRepo struct {
	db *sqlx.DB
}

// NewRegisterRepo creates a new PostgreSQL-backed RegisterRepository.
func NewRegisterRepo(db *sqlx.DB) port.RegisterRepository {
	return &registerRepo{db: db}
}

func (r *registerRepo) DocumentRegister(ctx context.Context) ([]domain.RegisterRow, error) {
	var rows []domain.RegisterRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT d.code, d.title, d.document_type, d.department, d.status, d.effective_date,
		       COALESCE((SELECT MAX(rev.revision_number)
		                 FROM document_revisions rev
		                 WHERE rev.document_id = d.id), 0) AS current_revision,
		       (SELECT COUNT(*)
		        FROM document_distributions dist
		        WHERE dist.document_id = d.id) AS distribution_count,
		       (SELECT COUNT(*)
		        FROM document_acknowledgements ack
		        WHERE ack.document_id = d.id AND ack.status = $1) AS acknowledged_count
		FROM documents d
		ORDER BY d.code ASC`,
		domain.AckAcknowledged)
	if err != nil {
		return nil, fmt.Errorf("registerRepo.DocumentRegister: %w", err)
	}
	return rows, nil
}
