package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/frogman715/hims-app-sub002/internal/domain"
	"github.com/frogman715/hims-app-sub002/internal/port"
)

// AcknowledgeInput is the DTO for confirming receipt of a distributed
// document. Recipients acknowledge for themselves only.
type AcknowledgeInput struct {
	DocumentID  uuid.UUID
	RecipientID uuid.UUID
	Remarks     string
}

// AcknowledgementService maintains the acknowledgement ledger.
type AcknowledgementService interface {
	Acknowledge(ctx context.Context, input *AcknowledgeInput) (*domain.Acknowledgement, error)
	ListByDocument(ctx context.Context, documentID uuid.UUID, role domain.UserRole) ([]domain.Acknowledgement, error)
}

type acknowledgementService struct {
	ackRepo   port.AcknowledgementRepository
	auditRepo port.AuditRepository
}

// NewAcknowledgementService creates a new AcknowledgementService
// implementation.
func NewAcknowledgementService(ackRepo port.AcknowledgementRepository, auditRepo port.AuditRepository) AcknowledgementService {
	return &acknowledgementService{ackRepo: ackRepo, auditRepo: auditRepo}
}

func (s *acknowledgementService) Acknowledge(ctx context.Context, input *AcknowledgeInput) (*domain.Acknowledgement, error) {
	ack, err := s.ackRepo.Acknowledge(ctx, input.DocumentID, input.RecipientID, input.Remarks)
	if err != nil {
		return nil, err
	}

	changes, _ := json.Marshal(map[string]string{"remarks": input.Remarks})
	entry := &domain.AuditEntry{
		DocumentID: input.DocumentID,
		UserID:     &input.RecipientID,
		Action:     domain.AuditDocumentAcknowledged,
		Changes:    changes,
	}
	if s.auditRepo != nil {
		if err := s.auditRepo.Create(ctx, entry); err != nil {
			log.Printf("acknowledgementService.Acknowledge: failed to write audit entry for %s: %v", input.DocumentID, err)
		}
	}
	return ack, nil
}

func (s *acknowledgementService) ListByDocument(ctx context.Context, documentID uuid.UUID, role domain.UserRole) ([]domain.Acknowledgement, error) {
	if !domain.Allowed(role, domain.ActionView) {
		return nil, fmt.Errorf("%w: role %s cannot view acknowledgements", domain.ErrPermissionDenied, role)
	}
	return s.ackRepo.ListByDocument(ctx, documentID)
}
