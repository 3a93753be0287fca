package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/drawing-register/internal/reconcile"
)

func sampleResults() []reconcile.Result {
	return []reconcile.Result{
		{
			DocumentID:     "a.pdf",
			DrawingTitle:   "Mockup External Wall",
			DrawingNumber:  "L01-H01D01-FOS-00-XX-MUP-AR-80050",
			Revision:       "07",
			LatestRevision: "07",
			LatestDate:     "12/01/2025",
			LatestReason:   "Issued for Construction",
			TableTitle:     "Construction Procurement",
			Status:         reconcile.Status{Kind: reconcile.StatusSuccess},
		},
		{
			DocumentID: "b.pdf",
			Status:     reconcile.Status{Kind: reconcile.StatusProcessingError, Message: "pdf is corrupt"},
		},
	}
}

func TestCSVColumnOrderAndStatusText(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteResults(sampleResults()))
	w.Flush()
	require.NoError(t, w.Error())

	rows, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"document_id", "drawing_title", "drawing_number", "revision",
		"latest_revision", "latest_date", "latest_reason", "table_title", "status",
	}, rows[0])
	assert.Equal(t, "SUCCESS", rows[1][8])
	assert.Equal(t, "ERROR", rows[2][8])
}

func TestCSVGuardsLeadingZeros(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf)
	require.NoError(t, w.WriteResults(sampleResults()))
	w.Flush()
	require.NoError(t, w.Error())

	rows, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, "'07", rows[0][3], "revision cell must carry the apostrophe guard")
	assert.Equal(t, "'07", rows[0][4])
	// empty revision cells stay empty, no dangling apostrophe
	assert.Empty(t, rows[1][3])
	assert.Empty(t, rows[1][4])
}

func TestWriteCSVFileStartsWithBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSVFile(path, sampleResults()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, BOM), "CSV output must start with a UTF-8 BOM")

	rows, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, BOM))).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestBuildXLSX(t *testing.T) {
	b, err := BuildXLSX(sampleResults())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Results", "A1")
	require.NoError(t, err)
	assert.Equal(t, "document_id", header)

	rev, err := f.GetCellValue("Results", "D2")
	require.NoError(t, err)
	assert.Equal(t, "07", rev, "revision must survive as a string cell")

	status, err := f.GetCellValue("Results", "I3")
	require.NoError(t, err)
	assert.Equal(t, "ERROR", status)
}
