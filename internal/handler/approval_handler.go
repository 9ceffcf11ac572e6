package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/frogman715/hims-app-sub002/internal/service"
)

// ApprovalHandler handles approval decision endpoints.
type ApprovalHandler struct {
	approvalService service.ApprovalService
}

// NewApprovalHandler creates a new ApprovalHandler.
func NewApprovalHandler(approvalService service.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{approvalService: approvalService}
}

// Decide handles POST /api/v1/documents/:id/approvals/:approvalID/decision
// @Summary Decide an assigned approval
// @Description Approve or reject an approval assigned to the caller. Approving the last pending level publishes the document; rejecting reverts it to DRAFT and revokes sibling approvals.
// @Tags approvals
// @Accept json
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Param approvalID path string true "Approval ID (UUID)"
// @Param request body DecideApprovalRequest true "Decision"
// @Success 200 {object} Response{data=port.DecideResult} "Updated document and approvals"
// @Failure 400 {object} ErrorResponseBody "Invalid request or approval does not belong to the document"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Not assigned or insufficient permission"
// @Failure 404 {object} ErrorResponseBody "Document or approval not found"
// @Failure 409 {object} ErrorResponseBody "Approval already processed or document not in FOR_APPROVAL"
// @Security BearerAuth
// @Router /documents/{id}/approvals/{approvalID}/decision [post]
func (h *ApprovalHandler) Decide(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}
	approvalID, err := uuid.Parse(c.Param("approvalID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid approval ID")
		return
	}

	var req DecideApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "decision is required")
		return
	}
	if req.Decision != service.DecisionApprove && req.Decision != service.DecisionReject {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "decision must be 'APPROVE' or 'REJECT'")
		return
	}
	if req.Decision == service.DecisionReject && req.Comments == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "rejection requires a reason in comments")
		return
	}

	result, err := h.approvalService.Decide(c.Request.Context(), &service.DecideApprovalInput{
		DocumentID: docID,
		ApprovalID: approvalID,
		ActorID:    userID,
		Role:       role,
		Decision:   req.Decision,
		Comments:   req.Comments,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// ListByDocument handles GET /api/v1/documents/:id/approvals
// @Summary List a document's approvals
// @Tags approvals
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} Response{data=[]domain.Approval} "Approvals ordered by level"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /documents/{id}/approvals [get]
func (h *ApprovalHandler) ListByDocument(c *gin.Context) {
	_, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	approvals, err := h.approvalService.ListByDocument(c.Request.Context(), docID, role)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, approvals)
}
