package reconcile

// PhaseLabels are the five project phase labels a drawing's approval table
// may carry, in register order.
var PhaseLabels = []string{
	"Concept Design",
	"Schematic Design",
	"Design Development",
	"Construction Documents",
	"Construction Procurement",
}

// PhaseAmbiguity selects how DetectPhase resolves documents whose text
// carries more than one phase label.
type PhaseAmbiguity string

const (
	// PhaseFirst records the first matching label in register order.
	PhaseFirst PhaseAmbiguity = "first"
	// PhaseEmpty records nothing when the label is ambiguous.
	PhaseEmpty PhaseAmbiguity = "empty"
)

// DetectPhase returns the project phase label present in the document text,
// or "" when none is found (or several are, under PhaseEmpty). At most one
// label is expected on a well-formed drawing.
func DetectPhase(pages []string, policy PhaseAmbiguity) string {
	var found []string
	for _, label := range PhaseLabels {
		if Contains(pages, label) {
			found = append(found, label)
		}
	}
	switch {
	case len(found) == 0:
		return ""
	case len(found) == 1:
		return found[0]
	case policy == PhaseEmpty:
		return ""
	default:
		return found[0]
	}
}
