package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/frogman715/hims-app-sub002/internal/domain"
	"github.com/frogman715/hims-app-sub002/internal/handler"
	"github.com/frogman715/hims-app-sub002/internal/middleware"
	"github.com/frogman715/hims-app-sub002/internal/service"
	"github.com/frogman715/hims-app-sub002/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setAuthContext(c *gin.Context, userID uuid.UUID, role domain.UserRole) {
	c.Set(middleware.ContextKeyUserID, userID)
	c.Set(middleware.ContextKeyRole, string(role))
	c.Set(middleware.ContextKeyEmail, "user@hospital.example")
}

func newDocumentHandler() (*handler.DocumentHandler, *mocks.MockDocumentService) {
	mockSvc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(mockSvc, nil, nil)
	return h, mockSvc
}

func TestDocumentHandler_Update_PassesContentFields(t *testing.T) {
	h, mockSvc := newDocumentHandler()

	docID := uuid.New()
	userID := uuid.New()

	expected := &domain.Document{
		ID:         docID,
		Status:     domain.StatusDraft,
		ContentURL: "documents/x/v2.pdf",
		FileName:   "v2.pdf",
		FileSize:   999,
	}

	mockSvc.On("Edit", mock.Anything, mock.MatchedBy(func(input *service.EditDocumentInput) bool {
		return input.DocumentID == docID &&
			input.ActorID == userID &&
			input.Changes.ContentURL != nil && *input.Changes.ContentURL == "documents/x/v2.pdf" &&
			input.Changes.FileName != nil && *input.Changes.FileName == "v2.pdf" &&
			input.Changes.FileSize != nil && *input.Changes.FileSize == 999
	})).Return(expected, nil)

	body, _ := json.Marshal(map[string]interface{}{
		"content_url": "documents/x/v2.pdf",
		"file_name":   "v2.pdf",
		"file_size":   999,
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPatch, "/api/v1/documents/"+docID.String(), bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: docID.String()}}
	setAuthContext(c, userID, domain.RoleQMR)

	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.True(t, resp.Success)
	mockSvc.AssertExpectations(t)
}

func TestDocumentHandler_Update_OmittedFieldsStayNil(t *testing.T) {
	h, mockSvc := newDocumentHandler()

	docID := uuid.New()
	userID := uuid.New()

	mockSvc.On("Edit", mock.Anything, mock.MatchedBy(func(input *service.EditDocumentInput) bool {
		return input.Changes.Title != nil && *input.Changes.Title == "Revised title" &&
			input.Changes.ContentURL == nil &&
			input.Changes.FileName == nil &&
			input.Changes.FileSize == nil
	})).Return(&domain.Document{ID: docID, Status: domain.StatusDraft, Title: "Revised title"}, nil)

	body, _ := json.Marshal(map[string]string{"title": "Revised title"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPatch, "/api/v1/documents/"+docID.String(), bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: docID.String()}}
	setAuthContext(c, userID, domain.RoleQMR)

	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestDocumentHandler_Update_InvalidID(t *testing.T) {
	h, mockSvc := newDocumentHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPatch, "/api/v1/documents/not-a-uuid", bytes.NewReader([]byte(`{}`)))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
	setAuthContext(c, uuid.New(), domain.RoleQMR)

	h.Update(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Edit", mock.Anything, mock.Anything)
}

func TestDocumentHandler_Update_NotDraft(t *testing.T) {
	h, mockSvc := newDocumentHandler()

	docID := uuid.New()
	mockSvc.On("Edit", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidState)

	body, _ := json.Marshal(map[string]string{"title": "Too late"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPatch, "/api/v1/documents/"+docID.String(), bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: docID.String()}}
	setAuthContext(c, uuid.New(), domain.RoleQMR)

	h.Update(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}
