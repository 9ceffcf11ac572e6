package service_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xuri/excelize/v2"

	"github.com/frogman715/hims-app-sub002/internal/domain"
	"github.com/frogman715/hims-app-sub002/internal/service"
	"github.com/frogman715/hims-app-sub002/mocks"
)

func TestReportService_DocumentRegisterXLSX(t *testing.T) {
	registerRepo := new(mocks.MockRegisterRepo)
	svc := service.NewReportService(registerRepo)

	registerRepo.On("DocumentRegister", mock.Anything).Return([]domain.RegisterRow{
		{
			Code:              "DOC-001",
			Title:             "Infection Control Policy",
			DocumentType:      "POLICY",
			Department:        "Quality Management",
			Status:            domain.StatusActive,
			EffectiveDate:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			CurrentRevision:   2,
			DistributionCount: 5,
			AcknowledgedCount: 3,
		},
	}, nil)

	data, err := svc.DocumentRegisterXLSX(context.Background(), domain.RoleQMR)
	assert.NoError(t, err)
	assert.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	assert.NoError(t, err)
	defer f.Close()

	code, err := f.GetCellValue("Document Register", "A2")
	assert.NoError(t, err)
	assert.Equal(t, "DOC-001", code)

	status, err := f.GetCellValue("Document Register", "E2")
	assert.NoError(t, err)
	assert.Equal(t, "ACTIVE", status)
}

func TestReportService_DocumentRegisterXLSX_PermissionDenied(t *testing.T) {
	registerRepo := new(mocks.MockRegisterRepo)
	svc := service.NewReportService(registerRepo)

	data, err := svc.DocumentRegisterXLSX(context.Background(), domain.UserRole("INTERN"))

	assert.Nil(t, data)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	registerRepo.AssertNotCalled(t, "DocumentRegister", mock.Anything)
}
