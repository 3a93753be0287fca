package reconcile

import (
	"errors"
	"regexp"
	"strings"
)

// ErrEmptyRevision is returned by Normalize when the raw token trims to nothing.
var ErrEmptyRevision = errors.New("revision is empty")

var (
	reDigitsOnly   = regexp.MustCompile(`^[0-9]+$`)
	reLetterDigits = regexp.MustCompile(`^([A-Za-z]+)([0-9]+)$`)
)

// Normalize canonicalizes a revision token into its display/comparison form.
// Single-digit runs are zero-padded to two digits ("7" -> "07", "T7" -> "T07")
// so spreadsheet-sourced numerics compare against drawing text. Issue-zero
// codes like "T0"/"N0" appear verbatim on drawings and are kept as laid out.
// Unrecognized shapes pass through unchanged; comparison is still attempted
// on whatever comes out. Idempotent.
func Normalize(raw string) (string, error) {
	rev := strings.TrimSpace(raw)
	if rev == "" {
		return "", ErrEmptyRevision
	}
	if reDigitsOnly.MatchString(rev) {
		if len(rev) == 1 {
			return "0" + rev, nil
		}
		return rev, nil
	}
	if m := reLetterDigits.FindStringSubmatch(rev); m != nil {
		prefix, digits := m[1], m[2]
		if len(digits) == 1 && digits != "0" {
			return prefix + "0" + digits, nil
		}
		return rev, nil
	}
	return rev, nil
}
