// Package export renders archived bookings as an .xlsx workbook.
package export

import (
	"fmt"
	"hotelier/internal/domains/archive/model/dto"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const SheetName = "Archived bookings"

var header = []string{
	"Booking ID", "Guest", "Type", "Resources", "Check in", "Check out",
	"Total", "Paid", "Payment status", "Completed at",
}

type workbook struct {
	file *excelize.File
	row  int
}

func (w *workbook) writeRow(values []any) error {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, w.row)
		if err != nil {
			return fmt.Errorf("failed to resolve cell: %w", err)
		}

		if err = w.file.SetCellValue(SheetName, cell, value); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", cell, err)
		}
	}

	w.row++

	return nil
}

func resources(archive dto.ArchiveResponse) string {
	labels := make([]string, len(archive.Occupancy))
	for i, occ := range archive.Occupancy {
		labels[i] = fmt.Sprintf("%s %s", occ.Kind, strconv.FormatInt(occ.ResourceID, 10))
	}

	return strings.Join(labels, ", ")
}

// Write streams a single-sheet workbook with one row per archived booking.
func Write(out io.Writer, archives []dto.ArchiveResponse) (err error) {
	w := &workbook{file: excelize.NewFile(), row: 1}

	defer func() {
		if closeErr := w.file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close workbook: %w", closeErr)
		}
	}()

	if err = w.file.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerValues := make([]any, len(header))
	for i, h := range header {
		headerValues[i] = h
	}

	if err = w.writeRow(headerValues); err != nil {
		return err
	}

	style, err := w.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		endCell, _ := excelize.CoordinatesToCellName(len(header), 1)
		_ = w.file.SetCellStyle(SheetName, "A1", endCell, style)
	}

	for _, archive := range archives {
		total, _ := archive.TotalAmount.Float64()
		paid, _ := archive.PaidAmount.Float64()

		err = w.writeRow([]any{
			archive.BookingID,
			archive.GuestName,
			string(archive.BookingType),
			resources(archive),
			archive.CheckIn,
			archive.CheckOut,
			total,
			paid,
			string(archive.PaymentStatus),
			archive.CompletedAt,
		})
		if err != nil {
			return err
		}
	}

	if err = w.file.Write(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	return nil
}
