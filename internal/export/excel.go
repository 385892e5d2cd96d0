// Package export writes booking lists as Excel workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"hangarbook/internal/models"
)

const sheetName = "Bookings"

var header = []string{"ID", "Resource", "Start", "End", "Title", "Created At"}

// WriteWorkbook writes all bookings as a single-sheet xlsx workbook.
func WriteWorkbook(w io.Writer, bookings []models.Booking) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)

	for col, name := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, b := range bookings {
		values := []any{
			b.ID,
			b.ResourceID,
			b.StartDateTime.String(),
			b.EndDateTime.String(),
			b.Title,
			b.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", i+1, err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
