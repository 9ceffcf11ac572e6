package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/frogman715/hims-app-sub002/internal/domain"
	"github.com/frogman715/hims-app-sub002/internal/port"
)

// ReportService produces document control reports.
type ReportService interface {
	// DocumentRegisterXLSX renders the full document register as an xlsx
	// workbook.
	DocumentRegisterXLSX(ctx context.Context, role domain.UserRole) ([]byte, error)
}

type reportService struct {
	registerRepo port.RegisterRepository
}

// NewReportService creates a new ReportService implementation.
func NewReportService(registerRepo port.RegisterRepository) ReportService {
	return &reportService{registerRepo: registerRepo}
}

var registerHeaders = []string{
	"Code", "Title", "Type", "Department", "Status",
	"Effective Date", "Revision", "Distributed To", "Acknowledged",
}

func (s *reportService) DocumentRegisterXLSX(ctx context.Context, role domain.UserRole) ([]byte, error) {
	if !domain.Allowed(role, domain.ActionView) {
		return nil, fmt.Errorf("%w: role %s cannot view the document register", domain.ErrPermissionDenied, role)
	}

	rows, err := s.registerRepo.DocumentRegister(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading register: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Document Register"
	f.SetSheetName("Sheet1", sheet)

	for i, h := range registerHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("writing header: %w", err)
		}
	}

	for i, r := range rows {
		values := []interface{}{
			r.Code, r.Title, r.DocumentType, r.Department, string(r.Status),
			r.EffectiveDate.Format("2006-01-02"), r.CurrentRevision,
			r.DistributionCount, r.AcknowledgedCount,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("writing row %d: %w", i+1, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("rendering workbook: %w", err)
	}
	return buf.Bytes(), nil
}
