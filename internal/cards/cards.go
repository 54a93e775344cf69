// Package cards splits a document containing explicit break markers into
// Card records with stable offsets into the original buffer.
package cards

import (
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/starford/folio/internal/models"
)

// isMarkerLine reports whether line is exactly the break marker, optionally
// padded with horizontal whitespace.
func isMarkerLine(line string) bool {
	return strings.Trim(line, " \t") == "---"
}

// Split cuts text on explicit break-marker lines into Cards. Each card's
// text is trimmed and empty segments are dropped; StartOffset is the rune
// index of the card's first character in the original buffer. The result
// always contains at least one card: empty or whitespace-only input yields a
// single empty card at offset 0. Ids are fresh per call.
func Split(text string) []models.Card {
	doc := []rune(text)
	var out []models.Card

	segStart := 0 // rune offset of the current segment's start
	offset := 0   // rune offset of the current line's start
	for _, line := range strings.SplitAfter(text, "\n") {
		lineLen := len([]rune(line))
		if isMarkerLine(strings.TrimSuffix(line, "\n")) {
			out = appendCard(out, doc, segStart, offset)
			segStart = offset + lineLen
		}
		offset += lineLen
	}
	out = appendCard(out, doc, segStart, len(doc))

	if len(out) == 0 {
		out = append(out, models.Card{ID: uuid.NewString(), StartOffset: 0})
	}
	return out
}

// appendCard trims the segment [segStart, segEnd) and appends it as a card
// unless it is empty. StartOffset points at the first non-whitespace rune so
// it remains a valid index of the trimmed text's first character.
func appendCard(dst []models.Card, doc []rune, segStart, segEnd int) []models.Card {
	if segStart > len(doc) {
		segStart = len(doc)
	}
	seg := doc[segStart:segEnd]

	lead := 0
	for lead < len(seg) && unicode.IsSpace(seg[lead]) {
		lead++
	}
	trimmed := strings.TrimRightFunc(string(seg[lead:]), unicode.IsSpace)
	if trimmed == "" {
		return dst
	}
	return append(dst, models.Card{
		ID:          uuid.NewString(),
		Text:        trimmed,
		StartOffset: segStart + lead,
	})
}
