// Package batch pairs drawing PDFs with their register workbooks and runs
// per-document reconciliation on a bounded worker pool. Documents are
// independent; a failure in one is recorded in its own output row and never
// stops the batch.
package batch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/drawing-register/internal/pdftext"
	"github.com/joseph-ayodele/drawing-register/internal/reconcile"
	"github.com/joseph-ayodele/drawing-register/internal/register"
)

// Document is one PDF/register pair to reconcile.
type Document struct {
	PDFPath      string
	RegisterPath string
}

// Stats aggregates a run's outcomes.
type Stats struct {
	Total     int
	Succeeded int
	Failed    int
	Errored   int
}

// Driver wires the collaborators together for a batch run.
type Driver struct {
	Register   register.Source
	Extractor  pdftext.Extractor
	Reconciler *reconcile.Reconciler
	Workers    int
	RowIndex   int
	Log        *slog.Logger
}

func NewDriver(src register.Source, ex pdftext.Extractor, rec *reconcile.Reconciler, workers, rowIndex int, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	if workers < 1 {
		workers = 1
	}
	return &Driver{
		Register:   src,
		Extractor:  ex,
		Reconciler: rec,
		Workers:    workers,
		RowIndex:   rowIndex,
		Log:        logger,
	}
}

// Discover finds every *.pdf under root and pairs it with the sibling
// register workbook (same name, .xlsx). The register file is not required
// to exist at discovery time; a missing one surfaces later as that
// document's ProcessingError. Results are sorted by path for stable output.
func Discover(root string, recursive bool) ([]Document, error) {
	var docs []Document
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if !recursive && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".pdf") {
			return nil
		}
		docs = append(docs, Document{
			PDFPath:      path,
			RegisterPath: strings.TrimSuffix(path, filepath.Ext(path)) + ".xlsx",
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].PDFPath < docs[j].PDFPath })
	return docs, nil
}

// Run reconciles every document and returns exactly one result per input,
// in input order. Worker failures and panics become per-document ERROR
// records; Run itself never fails once started.
func (d *Driver) Run(ctx context.Context, docs []Document) []reconcile.Result {
	results := make([]reconcile.Result, len(docs))

	g := new(errgroup.Group)
	g.SetLimit(d.Workers)
	for i, doc := range docs {
		g.Go(func() error {
			results[i] = d.processOne(ctx, doc)
			return nil
		})
	}
	// workers never return errors; Wait is only a join point
	_ = g.Wait()
	return results
}

func (d *Driver) processOne(ctx context.Context, doc Document) (res reconcile.Result) {
	docID := filepath.Base(doc.PDFPath)
	defer func() {
		if r := recover(); r != nil {
			d.Log.Error("panic during reconciliation", "document", docID, "panic", r)
			res = reconcile.ErrorResult(docID, fmt.Errorf("panic: %v", r))
		}
	}()

	rec, err := d.Register.ReadRow(doc.RegisterPath, d.RowIndex)
	if err != nil {
		d.Log.Error("register read failed", "document", docID, "register", doc.RegisterPath, "error", err)
		return reconcile.ErrorResult(docID, err)
	}

	pages, err := d.Extractor.Extract(ctx, doc.PDFPath)
	if err != nil {
		d.Log.Error("text extraction failed", "document", docID, "error", err)
		return reconcile.ErrorResult(docID, err)
	}

	trusted := reconcile.TrustedRecord{
		DocumentNumber: rec.DocumentNumber,
		Revision:       rec.Revision,
		Title:          rec.Title,
	}
	return d.Reconciler.Reconcile(docID, trusted, pages)
}

// Summarize tallies run outcomes for the end-of-run log line.
func Summarize(results []reconcile.Result) Stats {
	s := Stats{Total: len(results)}
	for _, r := range results {
		switch r.Status.Kind {
		case reconcile.StatusSuccess:
			s.Succeeded++
		case reconcile.StatusProcessingError:
			s.Errored++
		default:
			s.Failed++
		}
	}
	return s
}
