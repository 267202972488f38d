package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/yukikurage/shift-scheduling-api/internal/constants"
)

const exportSheetName = "シフト表"

// ExportService renders the pivoted shift grid as an Excel workbook.
// The workbook mirrors the on-screen table: one header row of M/D
// dates, one row per staff member, blanks for unassigned days.
type ExportService struct {
	shiftService *ShiftService
	logger       *zap.Logger
}

// NewExportService creates a new ExportService.
func NewExportService(shiftService *ShiftService, logger *zap.Logger) *ExportService {
	return &ExportService{
		shiftService: shiftService,
		logger:       logger,
	}
}

// ExportExcel builds an .xlsx file for a period and returns the file
// contents along with a suggested filename.
func (s *ExportService) ExportExcel(periodID uint64) (*bytes.Buffer, string, error) {
	period, grid, err := s.shiftService.Grid(periodID, "")
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet, err := f.NewSheet(exportSheetName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(sheet)
	f.DeleteSheet("Sheet1")

	header := []interface{}{"スタッフ名"}
	for _, date := range grid.Dates {
		header = append(header, shortDate(date))
	}
	if err := f.SetSheetRow(exportSheetName, "A1", &header); err != nil {
		return nil, "", fmt.Errorf("failed to write header: %w", err)
	}

	for i, name := range grid.Staff {
		row := []interface{}{name}
		for _, date := range grid.Dates {
			row = append(row, grid.Cells[name][date])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, "", fmt.Errorf("failed to address row: %w", err)
		}
		if err := f.SetSheetRow(exportSheetName, cell, &row); err != nil {
			return nil, "", fmt.Errorf("failed to write row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("failed to generate excel file",
			zap.Uint64("period_id", periodID),
			zap.Error(err),
		)
		return nil, "", fmt.Errorf("failed to generate excel file: %w", err)
	}

	filename := fmt.Sprintf("シフト表_%s.xlsx", period.DisplayName)
	return buf, filename, nil
}

// shortDate renders a stored date as M/D for column headers.
func shortDate(date string) string {
	d, err := time.Parse(constants.DateLayout, date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%d/%d", d.Month(), d.Day())
}
