package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/frogman715/hims-app-sub002/internal/domain"
	"github.com/frogman715/hims-app-sub002/internal/port"
)

// RetentionService retires active documents whose retention window has
// elapsed. Run as a scheduled job.
type RetentionService interface {
	EnforceRetention(ctx context.Context, asOf time.Time) ([]domain.Document, error)
}

type retentionService struct {
	docRepo   port.DocumentRepository
	auditRepo port.AuditRepository
}

// NewRetentionService creates a new RetentionService implementation.
func NewRetentionService(docRepo port.DocumentRepository, auditRepo port.AuditRepository) RetentionService {
	return &retentionService{docRepo: docRepo, auditRepo: auditRepo}
}

func (s *retentionService) EnforceRetention(ctx context.Context, asOf time.Time) ([]domain.Document, error) {
	docs, err := s.docRepo.ObsoleteExpired(ctx, asOf)
	if err != nil {
		return nil, err
	}

	for i := range docs {
		doc := &docs[i]
		changes, _ := json.Marshal(map[string]string{
			"retention_period": string(doc.RetentionPeriod),
			"effective_date":   doc.EffectiveDate.Format(time.RFC3339),
		})
		entry := &domain.AuditEntry{
			DocumentID: doc.ID,
			UserID:     nil, // system action
			Action:     domain.AuditDocumentObsoleted,
			Changes:    changes,
		}
		if s.auditRepo != nil {
			if err := s.auditRepo.Create(ctx, entry); err != nil {
				log.Printf("retentionService.EnforceRetention: audit entry for %s failed: %v", doc.ID, err)
			}
		}
	}

	log.Printf("retentionService.EnforceRetention: retired %d document(s) as of %s", len(docs), asOf.Format("2006-01-02"))
	return docs, nil
}
