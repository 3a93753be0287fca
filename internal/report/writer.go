// Package report renders reconciliation results as audit files: CSV for
// downstream tooling and XLSX for people. Column order is a contract.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/joseph-ayodele/drawing-register/internal/reconcile"
)

// BOM is the UTF-8 byte order mark; spreadsheet applications on Windows
// need it to decode accented drawing titles correctly.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the output header row. Order is fixed; consumers index
// by position.
var columns = []string{
	"document_id",
	"drawing_title",
	"drawing_number",
	"revision",
	"latest_revision",
	"latest_date",
	"latest_reason",
	"table_title",
	"status",
}

// CSVWriter wraps csv.Writer for exporting results as CSV.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes CSV to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteResults converts a batch of results to CSV rows and writes them.
func (w *CSVWriter) WriteResults(results []reconcile.Result) error {
	for i := range results {
		if err := w.csv.Write(resultToRow(&results[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

// resultToRow converts a single result to a row slice. Revision cells get
// an apostrophe prefix so "07" survives a round-trip through Excel instead
// of collapsing to 7. Hard output contract, not cosmetic.
func resultToRow(r *reconcile.Result) []string {
	return []string{
		r.DocumentID,
		r.DrawingTitle,
		r.DrawingNumber,
		guardLeadingZeros(r.Revision),
		guardLeadingZeros(r.LatestRevision),
		r.LatestDate,
		r.LatestReason,
		r.TableTitle,
		r.Status.String(),
	}
}

func guardLeadingZeros(v string) string {
	if v == "" {
		return ""
	}
	return "'" + v
}

// WriteCSVFile writes BOM, header and all result rows to path.
func WriteCSVFile(path string, results []reconcile.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(BOM); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}
	w := NewCSVWriter(f)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteResults(results); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
