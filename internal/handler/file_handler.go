package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/frogman715/hims-app-sub002/internal/service"
)

// FileHandler handles document content uploads.
type FileHandler struct {
	fileService service.FileService
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(fileService service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// Upload handles POST /api/v1/files
// @Summary Upload document content
// @Description Upload a pdf, doc or docx file; the returned content_url is attached to a document on create or edit
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Success 201 {object} Response{data=service.ContentUpload} "Stored content reference"
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Security BearerAuth
// @Router /files [post]
func (h *FileHandler) Upload(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "file form field is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "could not read uploaded file")
		return
	}
	defer file.Close()

	upload, err := h.fileService.Upload(c.Request.Context(), service.FileUploadInput{
		UploadedBy: userID,
		File:       file,
		Header:     fileHeader,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, upload)
}
