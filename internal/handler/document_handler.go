package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/frogman715/hims-app-sub002/internal/domain"
	"github.com/frogman715/hims-app-sub002/internal/port"
	"github.com/frogman715/hims-app-sub002/internal/service"
)

// DocumentHandler handles controlled-document lifecycle endpoints.
type DocumentHandler struct {
	documentService service.DocumentService
	revisionRepo    port.RevisionRepository
	auditRepo       port.AuditRepository
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService, revisionRepo port.RevisionRepository, auditRepo port.AuditRepository) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, revisionRepo: revisionRepo, auditRepo: auditRepo}
}

// Create handles POST /api/v1/documents
// @Summary Create a document
// @Description Create a controlled document in DRAFT with revision 0
// @Tags documents
// @Accept json
// @Produce json
// @Param request body CreateDocumentRequest true "Document details"
// @Success 201 {object} Response{data=domain.Document} "Document created"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Insufficient permission"
// @Failure 409 {object} ErrorResponseBody "Document code already exists"
// @Security BearerAuth
// @Router /documents [post]
func (h *DocumentHandler) Create(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "code, title, and document_type are required")
		return
	}

	doc, err := h.documentService.Create(c.Request.Context(), &service.CreateDocumentInput{
		Code:            req.Code,
		Title:           req.Title,
		Description:     req.Description,
		DocumentType:    req.DocumentType,
		Department:      req.Department,
		RetentionPeriod: req.RetentionPeriod,
		EffectiveDate:   req.EffectiveDate,
		ContentURL:      req.ContentURL,
		FileName:        req.FileName,
		FileSize:        req.FileSize,
		ActorID:         userID,
		Role:            role,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, doc)
}

// GetByID handles GET /api/v1/documents/:id
// @Summary Get document by ID
// @Tags documents
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} Response{data=domain.Document} "Document details"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Security BearerAuth
// @Router /documents/{id} [get]
func (h *DocumentHandler) GetByID(c *gin.Context) {
	_, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	doc, err := h.documentService.GetByID(c.Request.Context(), docID, role)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// List handles GET /api/v1/documents
// @Summary List documents
// @Description List documents, optionally filtered by lifecycle status
// @Tags documents
// @Produce json
// @Param status query string false "Filter by status (DRAFT, FOR_APPROVAL, APPROVED, ACTIVE, OBSOLETE)"
// @Param offset query int false "Pagination offset" default(0)
// @Param limit query int false "Pagination limit" default(20)
// @Success 200 {object} Response{data=[]domain.Document} "Documents"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	_, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)

	var status *domain.DocumentStatus
	if s := c.Query("status"); s != "" {
		st := domain.DocumentStatus(s)
		status = &st
	}

	docs, total, err := h.documentService.List(c.Request.Context(), status, offset, limit, role)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, docs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Update handles PATCH /api/v1/documents/:id
// @Summary Edit a draft document
// @Description Apply a partial update to a DRAFT document; records the next revision
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Param request body UpdateDocumentRequest true "Fields to change"
// @Success 200 {object} Response{data=domain.Document} "Updated document"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Insufficient permission"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Failure 409 {object} ErrorResponseBody "Document is not in DRAFT"
// @Security BearerAuth
// @Router /documents/{id} [patch]
func (h *DocumentHandler) Update(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	var req UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	doc, err := h.documentService.Edit(c.Request.Context(), &service.EditDocumentInput{
		DocumentID: docID,
		Changes: port.DocumentChanges{
			Title:           req.Title,
			Description:     req.Description,
			DocumentType:    req.DocumentType,
			Department:      req.Department,
			RetentionPeriod: req.RetentionPeriod,
			EffectiveDate:   req.EffectiveDate,
			ContentURL:      req.ContentURL,
			FileName:        req.FileName,
			FileSize:        req.FileSize,
			ChangesSummary:  req.ChangesSummary,
		},
		ActorID: userID,
		Role:    role,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// Submit handles POST /api/v1/documents/:id/submit
// @Summary Submit a document for approval
// @Description Move a DRAFT document to FOR_APPROVAL and open its approval cycle
// @Tags documents
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} Response{data=service.SubmitResult} "Document submitted"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Insufficient permission"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Failure 409 {object} ErrorResponseBody "Document is not in DRAFT"
// @Security BearerAuth
// @Router /documents/{id}/submit [post]
func (h *DocumentHandler) Submit(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	result, err := h.documentService.Submit(c.Request.Context(), docID, userID, role)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Delete handles DELETE /api/v1/documents/:id
// @Summary Delete a draft document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Document deleted"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Insufficient permission"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Failure 409 {object} ErrorResponseBody "Document is not in DRAFT"
// @Security BearerAuth
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), docID, userID, role); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, MessageResponse{Message: "document deleted"})
}

// History handles GET /api/v1/documents/:id/history
// @Summary Get document history
// @Description Get the document with its revisions, approvals, distributions and acknowledgements
// @Tags documents
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} Response{data=domain.DocumentHistory} "Document history"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Security BearerAuth
// @Router /documents/{id}/history [get]
func (h *DocumentHandler) History(c *gin.Context) {
	_, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	history, err := h.documentService.History(c.Request.Context(), docID, role)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, history)
}

// Revisions handles GET /api/v1/documents/:id/revisions
// @Summary List a document's revisions
// @Tags documents
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} Response{data=[]domain.Revision} "Revisions ordered by number"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /documents/{id}/revisions [get]
func (h *DocumentHandler) Revisions(c *gin.Context) {
	_, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	if !domain.Allowed(role, domain.ActionView) {
		RespondError(c, http.StatusForbidden, "PERMISSION_DENIED", "permission denied for this action")
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	revisions, err := h.revisionRepo.ListByDocument(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, revisions)
}

// AuditTrail handles GET /api/v1/documents/:id/audit
// @Summary Get document audit trail
// @Tags documents
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Param offset query int false "Pagination offset" default(0)
// @Param limit query int false "Pagination limit" default(20)
// @Success 200 {object} Response{data=[]domain.AuditEntry} "Audit entries, newest first"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /documents/{id}/audit [get]
func (h *DocumentHandler) AuditTrail(c *gin.Context) {
	_, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	if !domain.Allowed(role, domain.ActionView) {
		RespondError(c, http.StatusForbidden, "PERMISSION_DENIED", "permission denied for this action")
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	offset, limit := parsePagination(c)
	entries, total, err := h.auditRepo.ListByDocument(c.Request.Context(), docID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, entries, PagMeta{Total: total, Offset: offset, Limit: limit})
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return offset, limit
}
