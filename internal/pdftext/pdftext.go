// Package pdftext turns a drawing PDF into an ordered sequence of page
// texts for the reconciliation core. No layout analysis, no OCR: if a page
// carries no extractable text it contributes an empty string.
package pdftext

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Extractor produces the ordered page texts of a document.
type Extractor interface {
	Extract(ctx context.Context, path string) ([]string, error)
}

// FileExtractor extracts plain text page by page. Files are preflighted
// with pdfcpu first so structurally broken documents fail with a
// diagnosable error instead of a mid-extraction panic.
type FileExtractor struct {
	conf *model.Configuration
	log  *slog.Logger
}

func NewFileExtractor(logger *slog.Logger) *FileExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &FileExtractor{conf: conf, log: logger}
}

func (e *FileExtractor) Extract(ctx context.Context, path string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := filepath.Base(path)

	if err := api.ValidateFile(path, e.conf); err != nil {
		return nil, fmt.Errorf("preflight %s: %w", name, err)
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", name, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			e.log.Warn("pdf close failed", "path", path, "error", cerr)
		}
	}()

	total := r.NumPage()
	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// a single unreadable page is not fatal; the field checks
			// decide whether anything important was on it
			e.log.Warn("page text extraction failed", "path", path, "page", i, "error", err)
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}

	e.log.Info("pdftext.extracted", "path", path, "pages", total)
	return pages, nil
}
