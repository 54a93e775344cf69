// Package markup models the small inline syntax Folio documents use: four
// span markers (**, __, ==, single *), an [IMG:id] placeholder token, and
// headings of level 1-3. It is deliberately not a markdown parser.
package markup

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	imageTokenRe = regexp.MustCompile(`\[IMG:([A-Za-z0-9_-]+)\]`)
	headingRe    = regexp.MustCompile(`^(#{1,3}) (.+)$`)
)

// StripMarkers returns text with every span marker and image token removed.
// The result is used only for length estimation, never as content. Single *
// is removed only when it is not part of a ** pair, so bold markers are
// consumed atomically. A lone = or _ is not a marker and stays literal.
func StripMarkers(text string) string {
	s := imageTokenRe.ReplaceAllString(text, "")
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "==", "")
	s = strings.ReplaceAll(s, "*", "")
	return s
}

// ImageIDs returns the ids of every [IMG:id] token in text, in document
// order, deduplicated.
func ImageIDs(text string) []string {
	matches := imageTokenRe.FindAllStringSubmatch(text, -1)
	seen := make(map[string]struct{}, len(matches))
	var out []string
	for _, m := range matches {
		if _, dup := seen[m[1]]; dup {
			continue
		}
		seen[m[1]] = struct{}{}
		out = append(out, m[1])
	}
	return out
}

// ImageTokenSpans returns the [start, end) rune spans of every image token
// in buf. Spans are ascending and non-overlapping.
func ImageTokenSpans(buf []rune) [][2]int {
	s := string(buf)
	byteSpans := imageTokenRe.FindAllStringIndex(s, -1)
	if len(byteSpans) == 0 {
		return nil
	}
	// Token bodies are ASCII, so a span's rune length equals its byte length;
	// only the start needs byte-to-rune conversion.
	out := make([][2]int, 0, len(byteSpans))
	runeIdx, byteIdx := 0, 0
	for _, sp := range byteSpans {
		runeIdx += utf8.RuneCountInString(s[byteIdx:sp[0]])
		byteIdx = sp[0]
		length := sp[1] - sp[0]
		out = append(out, [2]int{runeIdx, runeIdx + length})
		runeIdx += length
		byteIdx = sp[1]
	}
	return out
}
