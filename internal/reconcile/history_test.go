package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindLatestRevisionSingleRow(t *testing.T) {
	pages := []string{"Title block\nRev 07 12/01/2025 Issued for Construction\nScale 1:50"}

	entry, ok := FindLatestRevision(pages)
	require.True(t, ok)
	assert.Equal(t, "07", entry.Code)
	assert.Equal(t, "12/01/2025", entry.Date)
	assert.Equal(t, "Issued for Construction", entry.Reason)
}

func TestFindLatestRevisionFlattenedTable(t *testing.T) {
	// extracted text often flattens the whole history table onto one line,
	// reviewer initials trailing each row
	pages := []string{"Revision History\nT0 26/10/2023 ISSUED FOR TENDER AK T1 07/11/2024 ISSUED FOR TENDER NQ"}

	entry, ok := FindLatestRevision(pages)
	require.True(t, ok)
	assert.Equal(t, "T1", entry.Code)
	assert.Equal(t, "07/11/2024", entry.Date)
	assert.Equal(t, "ISSUED FOR TENDER", entry.Reason)
}

func TestFindLatestRevisionLastRowWins(t *testing.T) {
	pages := []string{
		"Rev Date Reason for Issue\n" +
			"T0 13/10/2023 Issued for Tender\n" +
			"T1 07/11/2024 Issued for Tender\n" +
			"T2 12/01/2025 Issued for Construction",
	}

	entry, ok := FindLatestRevision(pages)
	require.True(t, ok)
	assert.Equal(t, "T2", entry.Code)
	assert.Equal(t, "Issued for Construction", entry.Reason)
}

func TestFindLatestRevisionHeaderAnchoredBeatsPositional(t *testing.T) {
	// the invoice-like row at the bottom parses as a candidate but sits
	// nowhere near a table header; the anchored row must win even though
	// the stray one is lower on the page
	pages := []string{
		"Rev Date Reason for Issue\n" +
			"T1 07/11/2024 Issued for Tender\n" +
			"\n\n\n\n\n\n\n\n\n\n\n" +
			"Contract 12 01/01/2020 Payment milestone two",
	}

	entry, ok := FindLatestRevision(pages)
	require.True(t, ok)
	assert.Equal(t, "T1", entry.Code)
}

func TestFindLatestRevisionPositionalFallback(t *testing.T) {
	// no header vocabulary anywhere: lowest candidate wins
	pages := []string{
		"N0 31/07/25 Issued For Construction",
		"N1 13/08/25 Issued For Construction",
	}

	entry, ok := FindLatestRevision(pages)
	require.True(t, ok)
	assert.Equal(t, "N1", entry.Code)
	assert.Equal(t, "13/08/25", entry.Date)
}

func TestFindLatestRevisionNone(t *testing.T) {
	_, ok := FindLatestRevision([]string{"just a drawing with no table", "scale 1:50"})
	assert.False(t, ok)

	_, ok = FindLatestRevision(nil)
	assert.False(t, ok)
}

func TestFindLatestRevisionIgnoresShortReasons(t *testing.T) {
	// a revision token next to a date but with no usable description is
	// not a history row
	_, ok := FindLatestRevision([]string{"T1 07/11/2024 ok"})
	assert.False(t, ok)
}

func TestFindLatestRevisionDeduplicates(t *testing.T) {
	pages := []string{
		"Rev Date Reason for Issue\n" +
			"T1 07/11/2024 Issued for Tender\n" +
			"T1 07/11/2024 Issued for Tender",
	}

	entry, ok := FindLatestRevision(pages)
	require.True(t, ok)
	assert.Equal(t, "T1", entry.Code)
}
