package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/frogman715/hims-app-sub002/internal/service"
)

// ReportHandler handles report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// DocumentRegister handles GET /api/v1/reports/document-register
// @Summary Download the document register
// @Description Download the full document control register as an xlsx workbook
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary "xlsx workbook"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Insufficient permission"
// @Security BearerAuth
// @Router /reports/document-register [get]
func (h *ReportHandler) DocumentRegister(c *gin.Context) {
	_, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	data, err := h.reportService.DocumentRegisterXLSX(c.Request.Context(), role)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("document-register-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		data,
	)
}
