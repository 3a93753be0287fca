package report

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/drawing-register/internal/reconcile"
)

// BuildXLSX returns an XLSX workbook (as bytes) with one sheet of results.
// Revision cells are written as explicit strings so leading zeros survive.
func BuildXLSX(results []reconcile.Result) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Results"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for i, h := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	// revision and latest_revision live in columns 4 and 5
	stringCols := map[int]bool{4: true, 5: true}

	row := 2
	for idx := range results {
		r := &results[idx]
		values := []string{
			r.DocumentID,
			r.DrawingTitle,
			r.DrawingNumber,
			r.Revision,
			r.LatestRevision,
			r.LatestDate,
			r.LatestReason,
			r.TableTitle,
			r.Status.String(),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if stringCols[col+1] {
				_ = f.SetCellStr(sheet, cell, v)
			} else {
				_ = f.SetCellValue(sheet, cell, v)
			}
		}
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteXLSXFile writes the results workbook to path.
func WriteXLSXFile(path string, results []reconcile.Result) error {
	b, err := BuildXLSX(results)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
