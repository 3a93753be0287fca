package reconcile

import (
	"regexp"
	"strings"
)

// Entry is one row of a drawing's revision history table.
type Entry struct {
	Code   string
	Date   string
	Reason string
}

// headerWindow is how many lines below a table header a row may sit and
// still count as header-anchored. Drawing title blocks keep the history
// rows immediately under the REV/DATE/REASON header strip.
const headerWindow = 10

const maxRevisionTokenLen = 4

var (
	// revision token followed by a date-like token; the free-text reason
	// runs from the end of the date to the next row anchor or end of line.
	reHistoryRow = regexp.MustCompile(`\b([A-Za-z]?[0-9]{1,4}) ([0-9]{1,2}/[0-9]{1,2}/[0-9]{2,4})\b`)

	reTableHeader = regexp.MustCompile(`(?i)\b(revision|rev|reason for issue)\b`)

	// reviewer initials trail history rows ("... ISSUED FOR TENDER AK").
	reTrailingInitials = regexp.MustCompile(` [A-Z]{1,3}$`)
)

type anchorKind int

const (
	anchorHeader anchorKind = iota
	anchorPositional
)

type candidate struct {
	entry Entry
	kind  anchorKind
}

// FindLatestRevision scans page text for revision-history rows and returns
// the latest one, defined as the last candidate in reading order (history
// tables grow downward, most recent entry last). Rows sitting under a
// recognizable table header outrank positional matches when both exist.
// The second return is false when no plausible row was found; callers treat
// that as inability to validate, not a failure.
func FindLatestRevision(pages []string) (Entry, bool) {
	var all []candidate
	seen := make(map[string]struct{})

	for _, page := range pages {
		lines := strings.Split(page, "\n")
		headerLines := make([]int, 0, 4)
		for i, line := range lines {
			if reTableHeader.MatchString(line) {
				headerLines = append(headerLines, i)
			}
		}
		for i, raw := range lines {
			line := canonical(raw)
			if line == "" {
				continue
			}
			kind := anchorPositional
			for _, h := range headerLines {
				if i >= h && i-h <= headerWindow {
					kind = anchorHeader
					break
				}
			}
			for _, c := range scanLine(line) {
				key := c.Code + "_" + c.Date
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				all = append(all, candidate{entry: c, kind: kind})
			}
		}
	}

	if len(all) == 0 {
		return Entry{}, false
	}

	var anchored []candidate
	for _, c := range all {
		if c.kind == anchorHeader {
			anchored = append(anchored, c)
		}
	}
	if len(anchored) > 0 {
		return anchored[len(anchored)-1].entry, true
	}
	return all[len(all)-1].entry, true
}

// scanLine extracts every history row on a single canonicalized line.
// A line may carry several rows back to back when the extracted text has
// flattened the table ("T0 26/10/2023 ISSUED FOR TENDER AK T1 07/11/2024 ...").
func scanLine(line string) []Entry {
	matches := reHistoryRow.FindAllStringSubmatchIndex(line, -1)
	if len(matches) == 0 {
		return nil
	}
	entries := make([]Entry, 0, len(matches))
	for i, m := range matches {
		code := line[m[2]:m[3]]
		date := line[m[4]:m[5]]
		if len(code) > maxRevisionTokenLen {
			continue
		}
		end := len(line)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		reason := strings.TrimSpace(line[m[1]:end])
		reason = strings.TrimSpace(reTrailingInitials.ReplaceAllString(reason, ""))
		if len(reason) <= 3 {
			continue
		}
		entries = append(entries, Entry{Code: code, Date: date, Reason: reason})
	}
	return entries
}
