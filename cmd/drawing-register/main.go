package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/drawing-register/internal/batch"
	"github.com/joseph-ayodele/drawing-register/internal/common"
	"github.com/joseph-ayodele/drawing-register/internal/pdftext"
	"github.com/joseph-ayodele/drawing-register/internal/policy"
	"github.com/joseph-ayodele/drawing-register/internal/reconcile"
	"github.com/joseph-ayodele/drawing-register/internal/register"
	"github.com/joseph-ayodele/drawing-register/internal/report"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	cfg := common.LoadConfig()

	// Parse CLI flags (env provides defaults)
	var (
		dir        = flag.String("dir", "", "directory of PDF/XLSX drawing pairs (required)")
		out        = flag.String("out", "", "output CSV path (defaults to <parent>/drawing_register_results.csv)")
		xlsxOut    = flag.String("xlsx", "", "optional XLSX output path")
		row        = flag.Int("row", cfg.Batch.RowIndex, "register row holding the trusted record")
		workers    = flag.Int("workers", cfg.Batch.Workers, "concurrent documents")
		policyFile = flag.String("policy", cfg.Batch.PolicyPath, "optional JSON policy file")
		recursive  = flag.Bool("recursive", cfg.Batch.Recursive, "recurse into subdirectories")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*dir), "drawing_register_results.csv")
	}

	cfg.Batch.Workers = *workers
	cfg.Batch.RowIndex = *row
	if err := cfg.Validate(); err != nil {
		printError("Error: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	level := slog.LevelInfo
	if cfg.Log.Level == "debug" {
		level = slog.LevelDebug
	}
	runID := uuid.New()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})).With("run_id", runID)
	slog.SetDefault(logger)

	ctx := context.Background()

	// Load reconciliation policy
	pol := policy.Default()
	if *policyFile != "" {
		loaded, err := policy.Load(*policyFile)
		if err != nil {
			logger.Error("failed to load policy", "path", *policyFile, "error", err)
			os.Exit(1)
		}
		pol = loaded
	}
	logger.Info("policy resolved",
		"missing_history", pol.MissingHistory,
		"phase_ambiguity", pol.PhaseAmbiguity)

	// Wire collaborators
	src := register.NewXLSXSource(logger)
	extractor := pdftext.NewFileExtractor(logger)
	reconciler := reconcile.NewReconciler(logger, pol.Options()...)
	driver := batch.NewDriver(src, extractor, reconciler, *workers, *row, logger)

	// Discover document pairs
	docs, err := batch.Discover(*dir, *recursive)
	if err != nil {
		logger.Error("failed to scan input directory", "dir", *dir, "error", err)
		os.Exit(1)
	}
	if len(docs) == 0 {
		logger.Warn("no PDF files found", "dir", *dir)
	}
	logger.Info("starting batch", "dir", *dir, "documents", len(docs), "workers", *workers, "row", *row)

	// Reconcile
	results := driver.Run(ctx, docs)

	// Write outputs
	if err := report.WriteCSVFile(*out, results); err != nil {
		logger.Error("failed to write CSV output", "path", *out, "error", err)
		os.Exit(1)
	}
	if *xlsxOut != "" {
		if err := report.WriteXLSXFile(*xlsxOut, results); err != nil {
			logger.Error("failed to write XLSX output", "path", *xlsxOut, "error", err)
			os.Exit(1)
		}
	}

	stats := batch.Summarize(results)
	logger.Info("batch complete",
		"documents", stats.Total,
		"succeeded", stats.Succeeded,
		"failed_validation", stats.Failed,
		"errors", stats.Errored,
		"csv", *out,
	)
}
