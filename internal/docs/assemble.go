package docs

import (
	"fmt"
	"strings"
)

// boundaryRatio is the minimum fraction of the budget a sentence or line
// boundary must preserve for the truncation to cut there instead of at the
// raw character limit.
const boundaryRatio = 0.8

// orderingKeywords mark lines in the orchestration guide that carry
// execution-ordering rules worth keeping in a tight prompt budget.
var orderingKeywords = []string{"parent", "dependencies", "execution order"}

// Truncate cuts text to at most maxChars characters, preferring the last
// sentence or line boundary that keeps at least 80% of the budget. When the
// text is cut, a truncation marker is appended.
func Truncate(text string, maxChars int) string {
	if maxChars <= 0 || len(text) <= maxChars {
		return text
	}

	truncated := text[:maxChars]
	lastPeriod := strings.LastIndex(truncated, ".")
	lastNewline := strings.LastIndex(truncated, "\n")

	cut := lastPeriod
	if lastNewline > cut {
		cut = lastNewline
	}
	if float64(cut) > float64(maxChars)*boundaryRatio {
		truncated = truncated[:cut+1]
	}

	return truncated + fmt.Sprintf("\n\n[Content truncated to %d characters]", maxChars)
}

// filterOrderingRules scans the orchestration guide line by line and keeps
// lines within or after the first line mentioning an ordering keyword,
// stopping once the budget is filled. Falls back to the whole truncated
// document when no keyword appears.
func filterOrderingRules(text string, maxChars int) string {
	var kept []string
	inKeySection := false
	size := 0

	for _, line := range strings.Split(text, "\n") {
		if !inKeySection && containsOrderingKeyword(line) {
			inKeySection = true
		}
		if inKeySection && strings.TrimSpace(line) != "" {
			kept = append(kept, line)
			size += len(line) + 1
			if size > maxChars {
				break
			}
		}
	}

	if len(kept) == 0 {
		return Truncate(text, maxChars)
	}
	return Truncate(strings.Join(kept, "\n"), maxChars)
}

func containsOrderingKeyword(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range orderingKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Assembler combines the reference documents into a single prompt context
// block under a per-section character budget.
type Assembler struct {
	store *Store
}

// NewAssembler creates an assembler backed by the given store.
func NewAssembler(store *Store) *Assembler {
	return &Assembler{store: store}
}

// Assemble loads the concept, orchestration, and example documents,
// truncates each to maxCharsPerSection, and joins them under section
// headers. Missing documents are skipped; their logical names are returned
// so the caller can log a warning.
func (a *Assembler) Assemble(maxCharsPerSection int) (combined string, missing []string) {
	var sections []string

	concepts := a.store.Load(DocConcepts)
	if concepts == "" {
		missing = append(missing, DocConcepts)
	} else {
		sections = append(sections, "=== Core Concepts (Summary) ===")
		sections = append(sections, Truncate(concepts, maxCharsPerSection))
		sections = append(sections, "")
	}

	orchestration := a.store.Load(DocOrchestration)
	if orchestration == "" {
		missing = append(missing, DocOrchestration)
	} else {
		sections = append(sections, "=== Task Orchestration (Key Rules) ===")
		sections = append(sections, filterOrderingRules(orchestration, maxCharsPerSection))
		sections = append(sections, "")
	}

	examples := a.store.Load(DocExamples)
	if examples == "" {
		missing = append(missing, DocExamples)
	} else {
		sections = append(sections, "=== Task Tree Examples ===")
		sections = append(sections, Truncate(examples, maxCharsPerSection))
		sections = append(sections, "")
	}

	return strings.Join(sections, "\n"), missing
}
