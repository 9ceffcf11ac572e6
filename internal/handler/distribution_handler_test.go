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
	"github.com/frogman715/hims-app-sub002/internal/service"
	"github.com/frogman715/hims-app-sub002/mocks"
)

func newAcknowledgeHandler() (*handler.DistributionHandler, *mocks.MockAcknowledgementService) {
	mockAck := new(mocks.MockAcknowledgementService)
	h := handler.NewDistributionHandler(nil, mockAck)
	return h, mockAck
}

func TestDistributionHandler_Acknowledge_EmptyBody(t *testing.T) {
	h, mockAck := newAcknowledgeHandler()

	docID := uuid.New()
	userID := uuid.New()

	mockAck.On("Acknowledge", mock.Anything, mock.MatchedBy(func(input *service.AcknowledgeInput) bool {
		return input.DocumentID == docID && input.RecipientID == userID && input.Remarks == ""
	})).Return(&domain.Acknowledgement{
		DocumentID:  docID,
		RecipientID: userID,
		Status:      domain.AckAcknowledged,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/documents/"+docID.String()+"/acknowledgements", nil)
	c.Params = gin.Params{{Key: "id", Value: docID.String()}}
	setAuthContext(c, userID, domain.RoleStaff)

	h.Acknowledge(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.True(t, resp.Success)
	mockAck.AssertExpectations(t)
}

func TestDistributionHandler_Acknowledge_WithRemarks(t *testing.T) {
	h, mockAck := newAcknowledgeHandler()

	docID := uuid.New()
	userID := uuid.New()

	mockAck.On("Acknowledge", mock.Anything, mock.MatchedBy(func(input *service.AcknowledgeInput) bool {
		return input.Remarks == "read and understood"
	})).Return(&domain.Acknowledgement{
		DocumentID:  docID,
		RecipientID: userID,
		Status:      domain.AckAcknowledged,
		Remarks:     "read and understood",
	}, nil)

	body, _ := json.Marshal(map[string]string{"remarks": "read and understood"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/documents/"+docID.String()+"/acknowledgements", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: docID.String()}}
	setAuthContext(c, userID, domain.RoleStaff)

	h.Acknowledge(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockAck.AssertExpectations(t)
}

func TestDistributionHandler_Acknowledge_MalformedBody(t *testing.T) {
	h, mockAck := newAcknowledgeHandler()

	docID := uuid.New()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/documents/"+docID.String()+"/acknowledgements", bytes.NewReader([]byte("{not json")))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: docID.String()}}
	setAuthContext(c, uuid.New(), domain.RoleStaff)

	h.Acknowledge(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAck.AssertNotCalled(t, "Acknowledge", mock.Anything, mock.Anything)
}

func TestDistributionHandler_Acknowledge_NotDistributed(t *testing.T) {
	h, mockAck := newAcknowledgeHandler()

	docID := uuid.New()

	mockAck.On("Acknowledge", mock.Anything, mock.Anything).Return(nil, domain.ErrNotDistributed)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/documents/"+docID.String()+"/acknowledgements", nil)
	c.Params = gin.Params{{Key: "id", Value: docID.String()}}
	setAuthContext(c, uuid.New(), domain.RoleStaff)

	h.Acknowledge(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}
