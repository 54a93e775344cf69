package pagination

import (
	"regexp"
	"sort"
	"strings"
)

// BreakMarker is the token denoting an explicit page boundary. A marker line
// is the token alone, optionally padded with horizontal whitespace.
const BreakMarker = "---"

var (
	breakLineRe   = regexp.MustCompile(`(?m)^[ \t]*---[ \t]*$`)
	excessBlankRe = regexp.MustCompile(`\n{3,}`)
)

// NormalizeDocument strips pre-existing break markers and collapses runs of
// three or more newlines to a single blank line. The orchestrator works on
// normalized text, and break offsets index into it.
func NormalizeDocument(text string) string {
	return RemovePageBreaks(text)
}

// InsertPageBreaks splices a blank-line-delimited marker line into text at
// each offset (rune indices). Insertions are applied in descending offset
// order so earlier splices never invalidate offsets still expressed in
// original coordinates. Trailing whitespace before the cut and leading
// whitespace after it are trimmed around the marker.
func InsertPageBreaks(text string, offsets []int) string {
	if len(offsets) == 0 {
		return text
	}
	desc := append([]int(nil), offsets...)
	sort.Sort(sort.Reverse(sort.IntSlice(desc)))

	r := []rune(text)
	for _, off := range desc {
		if off <= 0 || off >= len(r) {
			continue
		}
		before := strings.TrimRight(string(r[:off]), " \t\n")
		after := strings.TrimLeft(string(r[off:]), " \t\n")
		r = []rune(before + "\n\n" + BreakMarker + "\n\n" + after)
	}
	return string(r)
}

// RemovePageBreaks deletes every marker line and collapses the excess blank
// lines left behind. For documents whose content contains no literal marker
// lines of its own, this is the left inverse of InsertPageBreaks modulo
// whitespace normalization at the splice points. A literal "---" line the
// author typed is indistinguishable from a marker and is removed with it.
func RemovePageBreaks(text string) string {
	out := breakLineRe.ReplaceAllString(text, "")
	return excessBlankRe.ReplaceAllString(out, "\n\n")
}

// RecalculatePageBreaks re-flows explicit breaks after a typography change:
// remove, recompute against the engine's current budget, reinsert. Running
// it again on its own output with the same settings is a fixed point.
func (e *Engine) RecalculatePageBreaks(text string) string {
	clean := NormalizeDocument(text)
	return InsertPageBreaks(clean, e.CalculateOptimalPageBreaks(clean))
}
