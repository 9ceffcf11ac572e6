package domain

// UserRole defines the organizational roles known to document control.
type UserRole string

const (
	RoleDirector    UserRole = "DIRECTOR"
	RoleCDMO        UserRole = "CDMO"
	RoleQMR         UserRole = "QMR"
	RoleHRAdmin     UserRole = "HR_ADMIN"
	RoleSectionHead UserRole = "SECTION_HEAD"
	RoleStaff       UserRole = "STAFF"
)

// ValidRoles lists every role accepted by the API.
var ValidRoles = map[UserRole]bool{
	RoleDirector:    true,
	RoleCDMO:        true,
	RoleQMR:         true,
	RoleHRAdmin:     true,
	RoleSectionHead: true,
	RoleStaff:       true,
}

// DocumentStatus represents the controlled-document lifecycle state.
type DocumentStatus string

const (
	StatusDraft       DocumentStatus = "DRAFT"
	StatusForApproval DocumentStatus = "FOR_APPROVAL"
	StatusApproved    DocumentStatus = "APPROVED"
	StatusActive      DocumentStatus = "ACTIVE"
	StatusObsolete    DocumentStatus = "OBSOLETE"
)

// ApprovalStatus represents the state of a single approval level.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
	ApprovalRevoked  ApprovalStatus = "REVOKED"
)

// AcknowledgementStatus represents a recipient's acknowledgement state.
type AcknowledgementStatus string

const (
	AckPending      AcknowledgementStatus = "PENDING"
	AckAcknowledged AcknowledgementStatus = "ACKNOWLEDGED"
)

// RetentionPeriod controls how long an active document is retained before
// it becomes obsolete.
type RetentionPeriod string

const (
	RetentionOneYear    RetentionPeriod = "ONE_YEAR"
	RetentionThreeYears RetentionPeriod = "THREE_YEARS"
	RetentionFiveYears  RetentionPeriod = "FIVE_YEARS"
	RetentionPermanent  RetentionPeriod = "PERMANENT"
)

// ValidRetentionPeriods lists the accepted retention period values.
var ValidRetentionPeriods = map[RetentionPeriod]bool{
	RetentionOneYear:    true,
	RetentionThreeYears: true,
	RetentionFiveYears:  true,
	RetentionPermanent:  true,
}

// RetentionYears returns the retention window in years, or 0 for PERMANENT.
func RetentionYears(p RetentionPeriod) int {
	switch p {
	case RetentionOneYear:
		return 1
	case RetentionThreeYears:
		return 3
	case RetentionFiveYears:
		return 5
	default:
		return 0
	}
}

// DistributionChannel tags how a distribution reached its recipient.
type DistributionChannel string

const (
	ChannelSystemNotification DistributionChannel = "SYSTEM_NOTIFICATION"
	ChannelEmail              DistributionChannel = "EMAIL"
)

// AuditAction identifies a document mutation in the audit log.
type AuditAction string

const (
	AuditDocumentCreated      AuditAction = "document_created"
	AuditDocumentEdited       AuditAction = "document_edited"
	AuditDocumentSubmitted    AuditAction = "document_submitted"
	AuditDocumentApproved     AuditAction = "document_approved"
	AuditDocumentRejected     AuditAction = "document_rejected"
	AuditDocumentDistributed  AuditAction = "document_distributed"
	AuditDocumentAcknowledged AuditAction = "document_acknowledged"
	AuditDocumentDeleted      AuditAction = "document_deleted"
	AuditDocumentObsoleted    AuditAction = "document_obsoleted"
)
