package reconcile

import (
	"log/slog"
	"strings"
)

// TrustedRecord holds the three register fields treated as ground truth
// pending validation against document content.
type TrustedRecord struct {
	DocumentNumber string
	Revision       string
	Title          string
}

// StatusKind is the per-document outcome taxonomy.
type StatusKind int

const (
	StatusSuccess StatusKind = iota
	StatusMissingField
	StatusRevisionMismatch
	StatusProcessingError
)

// Status is the definitive outcome of one document's reconciliation.
type Status struct {
	Kind    StatusKind
	Field   string // which field, for StatusMissingField
	Message string // diagnostic detail, for StatusProcessingError
}

// String renders the audit-log status text. The exact forms are a contract
// with downstream consumers of the output rows.
func (s Status) String() string {
	switch s.Kind {
	case StatusSuccess:
		return "SUCCESS"
	case StatusMissingField:
		return "FAILED - Missing " + s.Field
	case StatusRevisionMismatch:
		return "FAILED - Revision mismatch"
	default:
		return "ERROR"
	}
}

// Result is the single output record produced for a document. Revision
// fields are always in normalized display form. Write-once.
type Result struct {
	DocumentID     string
	DrawingTitle   string
	DrawingNumber  string
	Revision       string
	LatestRevision string
	LatestDate     string
	LatestReason   string
	TableTitle     string
	Status         Status
}

// ErrorResult records an unrecoverable per-document failure (unreadable
// register row, corrupt PDF, panic) without dropping the document from the
// batch output.
func ErrorResult(documentID string, err error) Result {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return Result{
		DocumentID: documentID,
		Status:     Status{Kind: StatusProcessingError, Message: msg},
	}
}

// MissingHistory selects how a document with no discoverable revision
// history table is judged.
type MissingHistory string

const (
	// HistoryAllow leaves the document eligible for success; the latest
	// fields stay empty and only the recorded row shows the table was
	// never found.
	HistoryAllow MissingHistory = "allow"
	// HistoryMismatch treats an undiscoverable table as a revision mismatch.
	HistoryMismatch MissingHistory = "mismatch"
)

// Reconciler validates trusted register fields against document text and
// the document's own revision history. Safe for concurrent use; every
// reconciliation is a pure function of its inputs.
type Reconciler struct {
	missingHistory MissingHistory
	phaseAmbiguity PhaseAmbiguity
	log            *slog.Logger
}

type Option func(*Reconciler)

func WithMissingHistory(p MissingHistory) Option {
	return func(r *Reconciler) {
		if p != "" {
			r.missingHistory = p
		}
	}
}

func WithPhaseAmbiguity(p PhaseAmbiguity) Option {
	return func(r *Reconciler) {
		if p != "" {
			r.phaseAmbiguity = p
		}
	}
}

func NewReconciler(logger *slog.Logger, opts ...Option) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Reconciler{
		missingHistory: HistoryAllow,
		phaseAmbiguity: PhaseFirst,
		log:            logger,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// fieldOrder lists the trusted fields in reporting order; the first failing
// field names the MissingField status.
var fieldOrder = []string{"document_number", "revision", "title"}

// Reconcile cross-checks one document. It never returns an error: every
// outcome, including inability to validate, is a Status on the Result.
func (r *Reconciler) Reconcile(documentID string, trusted TrustedRecord, pages []string) Result {
	res := Result{
		DocumentID:    documentID,
		DrawingTitle:  strings.TrimSpace(trusted.Title),
		DrawingNumber: strings.TrimSpace(trusted.DocumentNumber),
		TableTitle:    DetectPhase(pages, r.phaseAmbiguity),
	}
	if rev, err := Normalize(trusted.Revision); err == nil {
		res.Revision = rev
	}

	values := map[string]string{
		"document_number": strings.TrimSpace(trusted.DocumentNumber),
		"revision":        strings.TrimSpace(trusted.Revision),
		"title":           strings.TrimSpace(trusted.Title),
	}
	for _, field := range fieldOrder {
		if values[field] == "" {
			res.Status = Status{Kind: StatusMissingField, Field: field}
			r.logOutcome(documentID, res.Status)
			return res
		}
	}

	needles := map[string]string{
		"document_number": values["document_number"],
		"revision":        res.Revision,
		"title":           values["title"],
	}
	for _, field := range fieldOrder {
		if !Contains(pages, needles[field]) {
			res.Status = Status{Kind: StatusMissingField, Field: field}
			r.logOutcome(documentID, res.Status)
			return res
		}
	}

	entry, found := FindLatestRevision(pages)
	if found {
		latest, err := Normalize(entry.Code)
		if err != nil {
			latest = entry.Code
		}
		res.LatestRevision = latest
		res.LatestDate = entry.Date
		res.LatestReason = entry.Reason
		if latest != res.Revision {
			res.Status = Status{Kind: StatusRevisionMismatch}
			r.logOutcome(documentID, res.Status)
			return res
		}
	} else if r.missingHistory == HistoryMismatch {
		res.Status = Status{Kind: StatusRevisionMismatch}
		r.logOutcome(documentID, res.Status)
		return res
	}

	res.Status = Status{Kind: StatusSuccess}
	r.logOutcome(documentID, res.Status)
	return res
}

func (r *Reconciler) logOutcome(documentID string, s Status) {
	if s.Kind == StatusSuccess {
		r.log.Info("reconcile.ok", "document", documentID)
		return
	}
	r.log.Warn("reconcile.flagged", "document", documentID, "status", s.String())
}
