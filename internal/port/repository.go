package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/frogman715/hims-app-sub002/internal/domain"
)

// UserDirectory resolves identities for approval assignment. The workflow
// receives resolved identities; it never searches a global store itself.
type UserDirectory interface {
	// ResolveApproverForRole returns the first active user holding role,
	// or domain.ErrNotFound when nobody does.
	ResolveApproverForRole(ctx context.Context, role domain.UserRole) (*domain.User, error)
}

// UserRepository defines the contract for user lookup.
type UserRepository interface {
	UserDirectory

	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error)
}

// AuditRepository writes the immutable document audit trail.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditEntry) error
	ListByDocument(ctx context.Context, documentID uuid.UUID, offset, limit int) ([]domain.AuditEntry, int, error)
}

// RegisterRepository reads the document control register rows for reporting.
type RegisterRepository interface {
	DocumentRegister(ctx context.Context) ([]domain.RegisterRow, error)
}
