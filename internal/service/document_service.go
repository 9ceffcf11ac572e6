package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/frogman715/hims-app-sub002/internal/domain"
	"github.com/frogman715/hims-app-sub002/internal/port"
)

// ApprovalLevelDef binds one approval level to the role that signs it.
type ApprovalLevelDef struct {
	Level int
	Role  domain.UserRole
}

// ApprovalLevelsFromConfig parses an ordered role list ("QMR,DIRECTOR") into
// level definitions. Position in the list is the approval level.
func ApprovalLevelsFromConfig(roles []string) ([]ApprovalLevelDef, error) {
	if len(roles) == 0 {
		return nil, errors.New("approval flow needs at least one level")
	}
	defs := make([]ApprovalLevelDef, 0, len(roles))
	for i, r := range roles {
		role := domain.UserRole(strings.ToUpper(strings.TrimSpace(r)))
		if !domain.ValidRoles[role] {
			return nil, fmt.Errorf("unknown approval role %q at level %d", r, i+1)
		}
		defs = append(defs, ApprovalLevelDef{Level: i + 1, Role: role})
	}
	return defs, nil
}

// CreateDocumentInput is the DTO for creating a controlled document.
type CreateDocumentInput struct {
	Code            string
	Title           string
	Description     string
	DocumentType    string
	Department      string
	RetentionPeriod domain.RetentionPeriod
	EffectiveDate   time.Time
	ContentURL      string
	FileName        string
	FileSize        int64
	ActorID         uuid.UUID
	Role            domain.UserRole
}

// EditDocumentInput is the DTO for a partial DRAFT update.
type EditDocumentInput struct {
	DocumentID uuid.UUID
	Changes    port.DocumentChanges
	ActorID    uuid.UUID
	Role       domain.UserRole
}

// SubmitResult is the updated aggregate after submission.
type SubmitResult struct {
	Document  *domain.Document  `json:"document"`
	Approvals []domain.Approval `json:"approvals"`
}

// DocumentService orchestrates the controlled-document lifecycle.
type DocumentService interface {
	Create(ctx context.Context, input *CreateDocumentInput) (*domain.Document, error)
	GetByID(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.Document, error)
	List(ctx context.Context, status *domain.DocumentStatus, offset, limit int, role domain.UserRole) ([]domain.Document, int, error)
	Edit(ctx context.Context, input *EditDocumentInput) (*domain.Document, error)
	Submit(ctx context.Context, id, actorID uuid.UUID, role domain.UserRole) (*SubmitResult, error)
	Delete(ctx context.Context, id, actorID uuid.UUID, role domain.UserRole) error
	History(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.DocumentHistory, error)
}

type documentService struct {
	docRepo   port.DocumentRepository
	directory port.UserDirectory
	auditRepo port.AuditRepository
	levels    []ApprovalLevelDef
}

// NewDocumentService creates a new DocumentService implementation.
func NewDocumentService(
	docRepo port.DocumentRepository,
	directory port.UserDirectory,
	auditRepo port.AuditRepository,
	levels []ApprovalLevelDef,
) DocumentService {
	return &documentService{
		docRepo:   docRepo,
		directory: directory,
		auditRepo: auditRepo,
		levels:    levels,
	}
}

// audit records a document mutation. Failures are logged but never block
// business logic.
func (s *documentService) audit(ctx context.Context, docID uuid.UUID, userID *uuid.UUID, action domain.AuditAction, changes json.RawMessage) {
	if s.auditRepo == nil {
		return
	}
	if changes == nil {
		changes = json.RawMessage("{}")
	}
	entry := &domain.AuditEntry{
		DocumentID: docID,
		UserID:     userID,
		Action:     action,
		Changes:    changes,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("documentService.audit: failed to write audit entry for %s/%s: %v", action, docID, err)
	}
}

func (s *documentService) Create(ctx context.Context, input *CreateDocumentInput) (*domain.Document, error) {
	if !domain.Allowed(input.Role, domain.ActionCreate) {
		return nil, fmt.Errorf("%w: role %s cannot create documents", domain.ErrPermissionDenied, input.Role)
	}

	retention := input.RetentionPeriod
	if retention == "" {
		retention = domain.RetentionOneYear
	}
	if !domain.ValidRetentionPeriods[retention] {
		return nil, fmt.Errorf("%w: unknown retention period %q", domain.ErrInvalidState, retention)
	}

	effective := input.EffectiveDate
	if effective.IsZero() {
		effective = time.Now().UTC()
	}

	// Early duplicate check for a precise error; the unique constraint is
	// the real guard under concurrency.
	if _, err := s.docRepo.GetByCode(ctx, input.Code); err == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateCode, input.Code)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("checking code: %w", err)
	}

	doc := &domain.Document{
		ID:              uuid.New(),
		Code:            input.Code,
		Title:           input.Title,
		Description:     input.Description,
		DocumentType:    input.DocumentType,
		Department:      input.Department,
		RetentionPeriod: retention,
		EffectiveDate:   effective,
		Status:          domain.StatusDraft,
		ContentURL:      input.ContentURL,
		FileName:        input.FileName,
		FileSize:        input.FileSize,
		CreatedBy:       input.ActorID,
	}

	log.Printf("documentService.Create: creating document %s (%s)", doc.Code, doc.ID)
	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	changes, _ := json.Marshal(map[string]interface{}{
		"code": doc.Code, "title": doc.Title, "document_type": doc.DocumentType,
	})
	s.audit(ctx, doc.ID, &input.ActorID, domain.AuditDocumentCreated, changes)
	return doc, nil
}

func (s *documentService) GetByID(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.Document, error) {
	if !domain.Allowed(role, domain.ActionView) {
		return nil, fmt.Errorf("%w: role %s cannot view documents", domain.ErrPermissionDenied, role)
	}
	return s.docRepo.GetByID(ctx, id)
}

func (s *documentService) List(ctx context.Context, status *domain.DocumentStatus, offset, limit int, role domain.UserRole) ([]domain.Document, int, error) {
	if !domain.Allowed(role, domain.ActionView) {
		return nil, 0, fmt.Errorf("%w: role %s cannot view documents", domain.ErrPermissionDenied, role)
	}
	return s.docRepo.List(ctx, status, offset, limit)
}

func (s *documentService) Edit(ctx context.Context, input *EditDocumentInput) (*domain.Document, error) {
	if !domain.Allowed(input.Role, domain.ActionEdit) {
		return nil, fmt.Errorf("%w: role %s cannot edit documents", domain.ErrPermissionDenied, input.Role)
	}

	doc, err := s.docRepo.UpdateDraft(ctx, input.DocumentID, &input.Changes, input.ActorID)
	if err != nil {
		return nil, err
	}

	changes, _ := json.Marshal(map[string]string{"summary": input.Changes.ChangesSummary})
	s.audit(ctx, doc.ID, &input.ActorID, domain.AuditDocumentEdited, changes)
	return doc, nil
}

func (s *documentService) Submit(ctx context.Context, id, actorID uuid.UUID, role domain.UserRole) (*SubmitResult, error) {
	if !domain.Allowed(role, domain.ActionSubmit) {
		return nil, fmt.Errorf("%w: role %s cannot submit documents", domain.ErrPermissionDenied, role)
	}

	// Resolve one concrete approver per level up front, so every approval
	// is bound to the identity it was assigned to at submission time.
	approvals := make([]domain.Approval, 0, len(s.levels))
	for _, def := range s.levels {
		approver, err := s.directory.ResolveApproverForRole(ctx, def.Role)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Nobody holds the role: the level is skipped so the
				// workflow cannot deadlock on an unfilled seat.
				log.Printf("documentService.Submit: no active approver for role %s, skipping level %d", def.Role, def.Level)
				continue
			}
			return nil, fmt.Errorf("resolving approver for %s: %w", def.Role, err)
		}
		approvals = append(approvals, domain.Approval{
			ApprovalLevel: def.Level,
			ApprovalRole:  def.Role,
			AssignedTo:    approver.ID,
		})
	}

	doc, err := s.docRepo.Submit(ctx, id, approvals)
	if err != nil {
		return nil, err
	}

	changes, _ := json.Marshal(map[string]int{"approval_levels": len(approvals)})
	s.audit(ctx, doc.ID, &actorID, domain.AuditDocumentSubmitted, changes)
	return &SubmitResult{Document: doc, Approvals: approvals}, nil
}

func (s *documentService) Delete(ctx context.Context, id, actorID uuid.UUID, role domain.UserRole) error {
	if !domain.Allowed(role, domain.ActionDelete) {
		return fmt.Errorf("%w: role %s cannot delete documents", domain.ErrPermissionDenied, role)
	}

	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.docRepo.Delete(ctx, id); err != nil {
		return err
	}

	changes, _ := json.Marshal(map[string]string{"code": doc.Code})
	s.audit(ctx, id, &actorID, domain.AuditDocumentDeleted, changes)
	return nil
}

func (s *documentService) History(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.DocumentHistory, error) {
	if !domain.Allowed(role, domain.ActionView) {
		return nil, fmt.Errorf("%w: role %s cannot view documents", domain.ErrPermissionDenied, role)
	}
	return s.docRepo.History(ctx, id)
}
