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

// DistributeInput is the DTO for distributing a published document.
type DistributeInput struct {
	DocumentID   uuid.UUID
	RecipientIDs []uuid.UUID
	Channel      domain.DistributionChannel
	ActorID      uuid.UUID
	Role         domain.UserRole
}

// DistributeResult is the updated aggregate after distribution.
type DistributeResult struct {
	Document      *domain.Document      `json:"document"`
	Distributions []domain.Distribution `json:"distributions"`
}

// DistributionService pushes published documents to recipients and notifies
// them.
type DistributionService interface {
	Distribute(ctx context.Context, input *DistributeInput) (*DistributeResult, error)
	ListByDocument(ctx context.Context, documentID uuid.UUID, role domain.UserRole) ([]domain.Distribution, error)
}

type distributionService struct {
	distRepo  port.DistributionRepository
	userRepo  port.UserRepository
	auditRepo port.AuditRepository
	notifier  port.Notifier
}

// NewDistributionService creates a new DistributionService implementation.
func NewDistributionService(
	distRepo port.DistributionRepository,
	userRepo port.UserRepository,
	auditRepo port.AuditRepository,
	notifier port.Notifier,
) DistributionService {
	return &distributionService{
		distRepo:  distRepo,
		userRepo:  userRepo,
		auditRepo: auditRepo,
		notifier:  notifier,
	}
}

func (s *distributionService) Distribute(ctx context.Context, input *DistributeInput) (*DistributeResult, error) {
	if !domain.Allowed(input.Role, domain.ActionDistribute) {
		return nil, fmt.Errorf("%w: role %s cannot distribute documents", domain.ErrPermissionDenied, input.Role)
	}

	channel := input.Channel
	if channel == "" {
		channel = domain.ChannelSystemNotification
	}

	// An empty recipient list distributes to nobody and changes nothing.
	recipients := dedupeIDs(input.RecipientIDs)

	var users []domain.User
	if len(recipients) > 0 {
		var err error
		users, err = s.userRepo.ListByIDs(ctx, recipients)
		if err != nil {
			return nil, fmt.Errorf("loading recipients: %w", err)
		}
		if len(users) != len(recipients) {
			return nil, fmt.Errorf("%w: one or more recipients do not exist", domain.ErrNotFound)
		}
	}

	doc, dists, err := s.distRepo.Distribute(ctx, input.DocumentID, recipients, channel, input.ActorID)
	if err != nil {
		return nil, err
	}

	// Notices are best-effort: the distribution is already committed.
	if s.notifier != nil {
		for _, u := range users {
			if err := s.notifier.SendDistributionNotice(ctx, u.Email, u.FullName, doc); err != nil {
				log.Printf("distributionService.Distribute: notice to %s failed: %v", u.Email, err)
			}
		}
	}

	if len(recipients) > 0 {
		changes, _ := json.Marshal(map[string]interface{}{
			"recipients": len(recipients),
			"channel":    channel,
		})
		s.audit(ctx, doc.ID, input.ActorID, domain.AuditDocumentDistributed, changes)
	}
	return &DistributeResult{Document: doc, Distributions: dists}, nil
}

func (s *distributionService) ListByDocument(ctx context.Context, documentID uuid.UUID, role domain.UserRole) ([]domain.Distribution, error) {
	if !domain.Allowed(role, domain.ActionView) {
		return nil, fmt.Errorf("%w: role %s cannot view distributions", domain.ErrPermissionDenied, role)
	}
	return s.distRepo.ListByDocument(ctx, documentID)
}

func (s *distributionService) audit(ctx context.Context, docID, userID uuid.UUID, action domain.AuditAction, changes json.RawMessage) {
	if s.auditRepo == nil {
		return
	}
	entry := &domain.AuditEntry{DocumentID: docID, UserID: &userID, Action: action, Changes: changes}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("distributionService.audit: failed to write audit entry for %s/%s: %v", action, docID, err)
	}
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
