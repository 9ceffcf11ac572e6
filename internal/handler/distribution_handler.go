package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/frogman715/hims-app-sub002/internal/service"
)

// DistributionHandler handles distribution and acknowledgement endpoints.
type DistributionHandler struct {
	distributionService    service.DistributionService
	acknowledgementService service.AcknowledgementService
}

// NewDistributionHandler creates a new DistributionHandler.
func NewDistributionHandler(
	distributionService service.DistributionService,
	acknowledgementService service.AcknowledgementService,
) *DistributionHandler {
	return &DistributionHandler{
		distributionService:    distributionService,
		acknowledgementService: acknowledgementService,
	}
}

// Distribute handles POST /api/v1/documents/:id/distributions
// @Summary Distribute a published document
// @Description Push an APPROVED or ACTIVE document to recipients; first distribution activates an APPROVED document
// @Tags distributions
// @Accept json
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Param request body DistributeRequest true "Recipients"
// @Success 200 {object} Response{data=service.DistributeResult} "Updated document and distribution rows"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Insufficient permission"
// @Failure 404 {object} ErrorResponseBody "Document or recipient not found"
// @Failure 409 {object} ErrorResponseBody "Document is not APPROVED or ACTIVE"
// @Security BearerAuth
// @Router /documents/{id}/distributions [post]
func (h *DistributionHandler) Distribute(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	var req DistributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "recipient_ids is required")
		return
	}

	result, err := h.distributionService.Distribute(c.Request.Context(), &service.DistributeInput{
		DocumentID:   docID,
		RecipientIDs: req.RecipientIDs,
		Channel:      req.Channel,
		ActorID:      userID,
		Role:         role,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// ListDistributions handles GET /api/v1/documents/:id/distributions
// @Summary List a document's distributions
// @Tags distributions
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} Response{data=[]domain.Distribution} "Distribution rows"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /documents/{id}/distributions [get]
func (h *DistributionHandler) ListDistributions(c *gin.Context) {
	_, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	dists, err := h.distributionService.ListByDocument(c.Request.Context(), docID, role)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, dists)
}

// Acknowledge handles POST /api/v1/documents/:id/acknowledgements
// @Summary Acknowledge a distributed document
// @Description Confirm receipt of a document distributed to the caller; repeat calls refresh the acknowledgement
// @Tags acknowledgements
// @Accept json
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Param request body AcknowledgeRequest false "Remarks"
// @Success 200 {object} Response{data=domain.Acknowledgement} "Acknowledgement"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 409 {object} ErrorResponseBody "Document was not distributed to the caller"
// @Security BearerAuth
// @Router /documents/{id}/acknowledgements [post]
func (h *DistributionHandler) Acknowledge(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	// Remarks are optional; a bare POST with no body is a valid acknowledgement.
	var req AcknowledgeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
			return
		}
	}

	ack, err := h.acknowledgementService.Acknowledge(c.Request.Context(), &service.AcknowledgeInput{
		DocumentID:  docID,
		RecipientID: userID,
		Remarks:     req.Remarks,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, ack)
}

// ListAcknowledgements handles GET /api/v1/documents/:id/acknowledgements
// @Summary List a document's acknowledgements
// @Tags acknowledgements
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} Response{data=[]domain.Acknowledgement} "Acknowledgement rows"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /documents/{id}/acknowledgements [get]
func (h *DistributionHandler) ListAcknowledgements(c *gin.Context) {
	_, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	acks, err := h.acknowledgementService.ListByDocument(c.Request.Context(), docID, role)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, acks)
}
