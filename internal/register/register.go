// Package register reads trusted drawing records out of the project's
// register workbooks. It is the only place that knows the positional column
// layout; everything downstream sees named fields.
package register

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/drawing-register/internal/common"
)

// Record is the trusted row read from a register workbook: document number,
// revision and title, in that column order on the sheet.
type Record struct {
	DocumentNumber string
	Revision       string
	Title          string
}

// Source reads trusted records for a document.
type Source interface {
	ReadRow(path string, row int) (Record, error)
}

// XLSXSource reads the active sheet of an XLSX register via excelize.
// Columns are fixed: A = document number, B = revision, C = title.
type XLSXSource struct {
	log *slog.Logger
}

func NewXLSXSource(logger *slog.Logger) *XLSXSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXSource{log: logger}
}

func (s *XLSXSource) ReadRow(path string, row int) (Record, error) {
	if row < 1 {
		return Record{}, common.NewAppError("REGISTER_ROW",
			fmt.Sprintf("row index must be >= 1, got %d", row), common.ErrInvalidInput)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("open register %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.log.Warn("register close failed", "path", path, "error", cerr)
		}
	}()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if sheet == "" {
		return Record{}, common.NewAppError("REGISTER_SHEET",
			fmt.Sprintf("register %s has no active sheet", path), common.ErrInvalidInput)
	}

	// a row beyond the sheet's content is a broken register, not a record
	// with empty fields
	rows, err := f.GetRows(sheet)
	if err != nil {
		return Record{}, fmt.Errorf("read sheet %s!%s: %w", path, sheet, err)
	}
	if row > len(rows) {
		return Record{}, common.NewAppError("REGISTER_ROW",
			fmt.Sprintf("register %s has no row %d", path, row), common.ErrNotFound)
	}

	cell := func(col int) (string, error) {
		name, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return "", err
		}
		v, err := f.GetCellValue(sheet, name)
		if err != nil {
			return "", fmt.Errorf("read cell %s!%s: %w", sheet, name, err)
		}
		return cleanCell(v), nil
	}

	rec := Record{}
	if rec.DocumentNumber, err = cell(1); err != nil {
		return Record{}, err
	}
	if rec.Revision, err = cell(2); err != nil {
		return Record{}, err
	}
	if rec.Title, err = cell(3); err != nil {
		return Record{}, err
	}

	s.log.Info("register.row",
		"path", path,
		"row", row,
		"document_number", rec.DocumentNumber,
		"revision", rec.Revision,
		"title", rec.Title,
	)
	return rec, nil
}

// cleanCell flattens line breaks inside a cell and collapses repeated
// whitespace; register titles frequently wrap across cell lines.
func cleanCell(v string) string {
	return strings.Join(strings.Fields(v), " ")
}
