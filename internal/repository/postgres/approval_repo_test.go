package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frogman715/hims-app-sub002/internal/domain"
	"github.com/frogman715/hims-app-sub002/internal/port"
	"github.com/frogman715/hims-app-sub002/internal/repository/postgres"
)

func approvalRows(ap domain.Approval) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "document_id", "approval_level", "approval_role", "status",
		"assigned_to", "comments", "rejection_reason", "created_at",
	}).AddRow(ap.ID, ap.DocumentID, ap.ApprovalLevel, ap.ApprovalRole, ap.Status,
		ap.AssignedTo, ap.Comments, ap.RejectionReason, time.Now().UTC())
}

func pendingApproval(docID, actorID uuid.UUID) domain.Approval {
	return domain.Approval{
		ID:            uuid.New(),
		DocumentID:    docID,
		ApprovalLevel: 1,
		ApprovalRole:  domain.RoleQMR,
		Status:        domain.ApprovalPending,
		AssignedTo:    actorID,
	}
}

func TestApprovalRepoApproveIntermediateLevel(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := postgres.NewApprovalRepo(sqlxDB)

	docID := uuid.New()
	actorID := uuid.New()
	ap := pendingApproval(docID, actorID)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM documents WHERE id = \$1 FOR UPDATE`).
		WithArgs(docID).
		WillReturnRows(documentRows(docID, "SOP-001", domain.StatusForApproval))
	mock.ExpectQuery(`SELECT \* FROM document_approvals WHERE id = \$1`).
		WithArgs(ap.ID).
		WillReturnRows(approvalRows(ap))
	mock.ExpectExec("UPDATE document_approvals").
		WithArgs(domain.ApprovalApproved, actorID, "looks good", sqlmock.AnyArg(), ap.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM document_approvals`).
		WithArgs(docID, domain.ApprovalPending).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM document_approvals WHERE document_id = \$1`).
		WithArgs(docID).
		WillReturnRows(approvalRows(ap))
	mock.ExpectCommit()

	res, err := repo.Approve(context.Background(), &port.DecideInput{
		DocumentID: docID,
		ApprovalID: ap.ID,
		ActorID:    actorID,
		Comments:   "looks good",
	})

	require.NoError(t, err)
	assert.False(t, res.Finalized)
	assert.Equal(t, domain.StatusForApproval, res.Document.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApprovalRepoApproveFinalizesOnLastPending(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := postgres.NewApprovalRepo(sqlxDB)

	docID := uuid.New()
	actorID := uuid.New()
	ap := pendingApproval(docID, actorID)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM documents WHERE id = \$1 FOR UPDATE`).
		WithArgs(docID).
		WillReturnRows(documentRows(docID, "SOP-001", domain.StatusForApproval))
	mock.ExpectQuery(`SELECT \* FROM document_approvals WHERE id = \$1`).
		WithArgs(ap.ID).
		WillReturnRows(approvalRows(ap))
	mock.ExpectExec("UPDATE document_approvals").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM document_approvals`).
		WithArgs(docID, domain.ApprovalPending).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("UPDATE documents SET status").
		WithArgs(domain.StatusApproved, sqlmock.AnyArg(), docID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM document_approvals WHERE document_id = \$1`).
		WithArgs(docID).
		WillReturnRows(approvalRows(ap))
	mock.ExpectCommit()

	res, err := repo.Approve(context.Background(), &port.DecideInput{
		DocumentID: docID,
		ApprovalID: ap.ID,
		ActorID:    actorID,
	})

	require.NoError(t, err)
	assert.True(t, res.Finalized)
	assert.Equal(t, domain.StatusApproved, res.Document.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApprovalRepoRejectRevokesSiblingsAndRevertsDocument(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := postgres.NewApprovalRepo(sqlxDB)

	docID := uuid.New()
	actorID := uuid.New()
	ap := pendingApproval(docID, actorID)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM documents WHERE id = \$1 FOR UPDATE`).
		WithArgs(docID).
		WillReturnRows(documentRows(docID, "SOP-001", domain.StatusForApproval))
	mock.ExpectQuery(`SELECT \* FROM document_approvals WHERE id = \$1`).
		WithArgs(ap.ID).
		WillReturnRows(approvalRows(ap))
	mock.ExpectExec("UPDATE document_approvals").
		WithArgs(domain.ApprovalRejected, actorID, "section 3 is outdated", sqlmock.AnyArg(), ap.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE document_approvals").
		WithArgs(domain.ApprovalRevoked, docID, domain.ApprovalPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE documents SET status").
		WithArgs(domain.StatusDraft, sqlmock.AnyArg(), docID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM document_approvals WHERE document_id = \$1`).
		WithArgs(docID).
		WillReturnRows(approvalRows(ap))
	mock.ExpectCommit()

	res, err := repo.Reject(context.Background(), &port.DecideInput{
		DocumentID: docID,
		ApprovalID: ap.ID,
		ActorID:    actorID,
		Comments:   "section 3 is outdated",
	})

	require.NoError(t, err)
	assert.False(t, res.Finalized)
	assert.Equal(t, domain.StatusDraft, res.Document.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApprovalRepoDecisionOnNonSubmittedDocument(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := postgres.NewApprovalRepo(sqlxDB)

	docID := uuid.New()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM documents WHERE id = \$1 FOR UPDATE`).
		WithArgs(docID).
		WillReturnRows(documentRows(docID, "SOP-001", domain.StatusDraft))
	mock.ExpectRollback()

	_, err := repo.Approve(context.Background(), &port.DecideInput{
		DocumentID: docID,
		ApprovalID: uuid.New(),
		ActorID:    uuid.New(),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Contains(t, err.Error(), "cannot decide approval")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApprovalRepoDecisionNotAssigned(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := postgres.NewApprovalRepo(sqlxDB)

	docID := uuid.New()
	ap := pendingApproval(docID, uuid.New())

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM documents WHERE id = \$1 FOR UPDATE`).
		WithArgs(docID).
		WillReturnRows(documentRows(docID, "SOP-001", domain.StatusForApproval))
	mock.ExpectQuery(`SELECT \* FROM document_approvals WHERE id = \$1`).
		WithArgs(ap.ID).
		WillReturnRows(approvalRows(ap))
	mock.ExpectRollback()

	_, err := repo.Approve(context.Background(), &port.DecideInput{
		DocumentID: docID,
		ApprovalID: ap.ID,
		ActorID:    uuid.New(), // not the assigned approver
	})

	assert.ErrorIs(t, err, domain.ErrNotAssigned)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApprovalRepoDecisionAlreadyDecided(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := postgres.NewApprovalRepo(sqlxDB)

	docID := uuid.New()
	actorID := uuid.New()
	ap := pendingApproval(docID, actorID)
	ap.Status = domain.ApprovalApproved

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM documents WHERE id = \$1 FOR UPDATE`).
		WithArgs(docID).
		WillReturnRows(documentRows(docID, "SOP-001", domain.StatusForApproval))
	mock.ExpectQuery(`SELECT \* FROM document_approvals WHERE id = \$1`).
		WithArgs(ap.ID).
		WillReturnRows(approvalRows(ap))
	mock.ExpectRollback()

	_, err := repo.Approve(context.Background(), &port.DecideInput{
		DocumentID: docID,
		ApprovalID: ap.ID,
		ActorID:    actorID,
	})

	assert.ErrorIs(t, err, domain.ErrAlreadyDecided)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApprovalRepoDecisionWrongDocument(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := postgres.NewApprovalRepo(sqlxDB)

	docID := uuid.New()
	actorID := uuid.New()
	ap := pendingApproval(uuid.New(), actorID) // belongs to a different document

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM documents WHERE id = \$1 FOR UPDATE`).
		WithArgs(docID).
		WillReturnRows(documentRows(docID, "SOP-001", domain.StatusForApproval))
	mock.ExpectQuery(`SELECT \* FROM document_approvals WHERE id = \$1`).
		WithArgs(ap.ID).
		WillReturnRows(approvalRows(ap))
	mock.ExpectRollback()

	_, err := repo.Reject(context.Background(), &port.DecideInput{
		DocumentID: docID,
		ApprovalID: ap.ID,
		ActorID:    actorID,
		Comments:   "wrong target",
	})

	assert.ErrorIs(t, err, domain.ErrIntegrity)
	assert.NoError(t, mock.ExpectationsWereMet())
}
