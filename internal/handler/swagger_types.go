package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/frogman715/hims-app-sub002/internal/domain"
	"github.com/frogman715/hims-app-sub002/internal/service"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// LoginRequest represents the login request body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"qmr@hospital.example"`
	Password string `json:"password" binding:"required" example:"securepassword123"`
}

// RefreshRequest represents the token refresh request body.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// CreateDocumentRequest represents the create document request body.
type CreateDocumentRequest struct {
	Code            string                 `json:"code" binding:"required" example:"DOC-001"`
	Title           string                 `json:"title" binding:"required" example:"Infection Control Policy"`
	Description     string                 `json:"description" example:"Hospital-wide infection control measures"`
	DocumentType    string                 `json:"document_type" binding:"required" example:"POLICY"`
	Department      string                 `json:"department" example:"Quality Management"`
	RetentionPeriod domain.RetentionPeriod `json:"retention_period" example:"THREE_YEARS"`
	EffectiveDate   time.Time              `json:"effective_date" example:"2026-01-01T00:00:00Z"`
	ContentURL      string                 `json:"content_url" example:"documents/550e8400-e29b-41d4-a716-446655440000/policy.pdf"`
	FileName        string                 `json:"file_name" example:"policy.pdf"`
	FileSize        int64                  `json:"file_size" example:"120394"`
}

// UpdateDocumentRequest represents the partial draft update request body.
type UpdateDocumentRequest struct {
	Title           *string                 `json:"title" example:"Infection Control Policy v2"`
	Description     *string                 `json:"description" example:"Updated isolation procedures"`
	DocumentType    *string                 `json:"document_type" example:"POLICY"`
	Department      *string                 `json:"department" example:"Quality Management"`
	RetentionPeriod *domain.RetentionPeriod `json:"retention_period" example:"FIVE_YEARS"`
	EffectiveDate   *time.Time              `json:"effective_date" example:"2026-02-01T00:00:00Z"`
	ContentURL      *string                 `json:"content_url" example:"documents/550e8400-e29b-41d4-a716-446655440000/policy-v2.pdf"`
	FileName        *string                 `json:"file_name" example:"policy-v2.pdf"`
	FileSize        *int64                  `json:"file_size" example:"131072"`
	ChangesSummary  string                  `json:"changes_summary" example:"Updated isolation procedures"`
}

// DecideApprovalRequest represents the approval decision request body.
type DecideApprovalRequest struct {
	Decision service.Decision `json:"decision" binding:"required" example:"APPROVE"`
	Comments string           `json:"comments" example:"Reviewed and verified"`
}

// DistributeRequest represents the distribute document request body.
type DistributeRequest struct {
	RecipientIDs []uuid.UUID                `json:"recipient_ids" binding:"required" example:"987fcdeb-51a2-3bc4-d567-890123456789"`
	Channel      domain.DistributionChannel `json:"channel" example:"SYSTEM_NOTIFICATION"`
}

// AcknowledgeRequest represents the acknowledgement request body.
type AcknowledgeRequest struct {
	Remarks string `json:"remarks" example:"Read and understood"`
}

// --- Response Types ---

// TokenResponse represents the authentication token response.
type TokenResponse struct {
	AccessToken  string    `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string    `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt    time.Time `json:"expires_at" example:"2026-01-15T10:30:00Z"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
