// Package pagination finds page-break offsets for a document so every page
// fits a fixed height budget, preferring natural textual boundaries over
// arbitrary character cuts.
package pagination

import (
	"sort"
	"unicode"

	"github.com/starford/folio/internal/layout"
	"github.com/starford/folio/internal/markup"
)

// Tuning groups the empirical constants of the cut search. They are tuned
// values, not derived from a model; deployments may override them.
type Tuning struct {
	// MinProgress is the minimum number of characters a page consumes, the
	// guard against zero-progress loops on unbreakable input.
	MinProgress int `json:"minProgress" yaml:"min_progress"`
	// WindowRatio sizes the trailing candidate window as a fraction of the
	// length-optimal cut position.
	WindowRatio float64 `json:"windowRatio" yaml:"window_ratio"`
	// WindowCap is the window's fixed character floor: the window is the
	// larger of WindowRatio*cut and WindowCap.
	WindowCap int `json:"windowCap" yaml:"window_cap"`
	// WasteTolerance rejects a natural boundary whose page height falls
	// below this fraction of the length-optimal cut's height.
	WasteTolerance float64 `json:"wasteTolerance" yaml:"waste_tolerance"`
	// EarlyStop ends the candidate scan once a page reaches this fraction
	// of the budget.
	EarlyStop float64 `json:"earlyStop" yaml:"early_stop"`
	// SnapDistance is how far a break may be pulled back to a preceding
	// line break by the orchestrator.
	SnapDistance int `json:"snapDistance" yaml:"snap_distance"`
}

// DefaultTuning returns the production cut-search constants.
func DefaultTuning() Tuning {
	return Tuning{
		MinProgress:    50,
		WindowRatio:    0.30,
		WindowCap:      200,
		WasteTolerance: 0.92,
		EarlyStop:      0.985,
		SnapDistance:   8,
	}
}

// Engine runs the page-break search against one immutable estimator
// snapshot. All methods are pure; an Engine is safe for concurrent use.
type Engine struct {
	est    *layout.Estimator
	tuning Tuning
}

// New creates an Engine.
func New(est *layout.Estimator, tuning Tuning) *Engine {
	return &Engine{est: est, tuning: tuning}
}

// Estimator exposes the engine's height estimator.
func (e *Engine) Estimator() *layout.Estimator { return e.est }

func (e *Engine) height(buf []rune) float64 {
	return e.est.EstimateText(string(buf))
}

// FindBreakOffset returns the best break offset (in runes) for buf against
// budget, or len(buf) when the whole buffer already fits. Identical inputs
// always yield the identical offset.
func (e *Engine) FindBreakOffset(buf []rune, budget float64) int {
	if len(buf) == 0 || e.height(buf) <= budget {
		return len(buf)
	}

	cut := e.findMaxFittingCut(buf, budget)
	if cut >= len(buf) {
		return len(buf)
	}

	window := int(float64(cut) * e.tuning.WindowRatio)
	if window < e.tuning.WindowCap {
		window = e.tuning.WindowCap
	}
	lo := cut - window
	if lo < 0 {
		lo = 0
	}

	spans := markup.ImageTokenSpans(buf)
	candidates := collectCandidateCuts(buf, lo, cut)

	best := -1
	bestHeight := -1.0
	for i := len(candidates) - 1; i >= 0; i-- {
		c := candidates[i]
		if !isSafeCut(buf, spans, c) {
			continue
		}
		h := e.height(buf[:c])
		if h > budget {
			continue
		}
		if h > bestHeight {
			best, bestHeight = c, h
		}
		if h >= budget*e.tuning.EarlyStop {
			break
		}
	}

	if best < 0 {
		return nearestSafeCut(buf, spans, cut)
	}
	if bestHeight < e.height(buf[:cut])*e.tuning.WasteTolerance {
		return nearestSafeCut(buf, spans, cut)
	}
	return best
}

// nearestSafeCut moves a raw cut off an image token or marker pair,
// preferring the closest safe position at or before it.
func nearestSafeCut(buf []rune, spans [][2]int, cut int) int {
	for c := cut; c >= 1; c-- {
		if isSafeCut(buf, spans, c) {
			return c
		}
	}
	for c := cut + 1; c <= len(buf); c++ {
		if isSafeCut(buf, spans, c) {
			return c
		}
	}
	return cut
}

// findMaxFittingCut binary-searches for the maximal prefix length whose
// estimated height fits the budget. Valid because estimated height is
// monotone in prefix length. The result is clamped to MinProgress so a page
// always consumes something, even when a single unbreakable run exceeds the
// budget.
func (e *Engine) findMaxFittingCut(buf []rune, budget float64) int {
	lo, hi := 1, len(buf)
	best := 1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		if e.height(buf[:mid]) <= budget {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	min := e.tuning.MinProgress
	if min > len(buf) {
		min = len(buf)
	}
	if best < min {
		best = min
	}
	return best
}

// Candidate boundary character classes, strongest first: paragraph breaks,
// CJK sentence terminators, Latin sentence terminators, plain line breaks.
func isCJKTerminator(r rune) bool {
	switch r {
	case '。', '！', '？', '；', '…':
		return true
	}
	return false
}

func isLatinTerminator(r rune) bool {
	switch r {
	case '.', '!', '?', ';':
		return true
	}
	return false
}

// collectCandidateCuts gathers break candidates in (lo, hi], deduplicated
// and ascending. A candidate is the offset immediately after the boundary.
func collectCandidateCuts(buf []rune, lo, hi int) []int {
	seen := make(map[int]struct{})
	var out []int
	add := func(i int) {
		if i <= lo || i > hi {
			return
		}
		if _, dup := seen[i]; dup {
			return
		}
		seen[i] = struct{}{}
		out = append(out, i)
	}

	for i := lo + 1; i <= hi; i++ {
		// Paragraph boundary: position after a blank-line run.
		if i >= 2 && buf[i-1] == '\n' && buf[i-2] == '\n' && (i == len(buf) || buf[i] != '\n') {
			add(i)
		}
	}
	for i := lo + 1; i <= hi; i++ {
		if isCJKTerminator(buf[i-1]) {
			add(i)
		}
	}
	for i := lo + 1; i <= hi; i++ {
		if isLatinTerminator(buf[i-1]) && (i == len(buf) || unicode.IsSpace(buf[i])) {
			add(i)
		}
	}
	for i := lo + 1; i <= hi; i++ {
		if buf[i-1] == '\n' {
			add(i)
		}
	}

	sort.Ints(out)
	return out
}

// isSafeCut reports whether cutting buf at offset c would neither land
// inside an image token nor split the two characters of a paired span
// marker.
func isSafeCut(buf []rune, imageSpans [][2]int, c int) bool {
	if c <= 0 || c > len(buf) {
		return false
	}
	for _, sp := range imageSpans {
		if c > sp[0] && c < sp[1] {
			return false
		}
		if c <= sp[0] {
			break
		}
	}
	if c < len(buf) && buf[c-1] == buf[c] {
		switch buf[c] {
		case '*', '_', '=':
			return false
		}
	}
	return true
}
