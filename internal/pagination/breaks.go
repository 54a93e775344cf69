package pagination

import (
	"unicode"
)

// CalculateOptimalPageBreaks paginates an entire document and returns the
// ordered, strictly increasing break offsets. Offsets are rune indices into
// the normalized document (existing break markers stripped, runs of three or
// more newlines collapsed); callers that feed the result to InsertPageBreaks
// must pass the same normalized text, which NormalizeDocument produces.
func (e *Engine) CalculateOptimalPageBreaks(text string) []int {
	doc := []rune(NormalizeDocument(text))
	budget := e.est.Metrics.ContentHeight

	var breaks []int
	cursor := 0
	// The loop bound equals document length: every iteration either
	// terminates or advances the cursor by at least one rune.
	for iter := 0; iter < len(doc); iter++ {
		for cursor < len(doc) && unicode.IsSpace(doc[cursor]) {
			cursor++
		}
		if cursor >= len(doc) {
			break
		}

		rest := doc[cursor:]
		cut := e.FindBreakOffset(rest, budget)
		if cut >= len(rest) {
			break
		}

		abs := snapToLineBreak(doc, cursor+cut, e.tuning.SnapDistance)
		if abs <= cursor {
			abs = cursor + cut
		}
		breaks = append(breaks, abs)
		cursor = abs
	}
	return breaks
}

// snapToLineBreak pulls abs back to the position just after the nearest
// preceding line break, if one lies within dist runes. Keeps breaks
// visually clean without changing page contents materially.
func snapToLineBreak(doc []rune, abs, dist int) int {
	for j := abs; j > abs-dist && j > 0; j-- {
		if doc[j-1] == '\n' {
			return j
		}
	}
	return abs
}
