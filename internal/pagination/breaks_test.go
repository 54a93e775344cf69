package pagination

import (
	"strings"
	"testing"

	"github.com/starford/folio/internal/layout"
	"github.com/starford/folio/internal/markup"
)

func defaultEngine() *Engine {
	est := layout.NewEstimator(layout.DefaultMetrics(), layout.DefaultTypography(), nil)
	return New(est, DefaultTuning())
}

// latinFiller builds a paragraph of short sentences at least n runes long.
func latinFiller(n int) string {
	var b strings.Builder
	for i := 0; b.Len() < n; i++ {
		b.WriteString("Another plain sentence to fill the page. ")
	}
	return strings.TrimRight(b.String(), " ")
}

func TestCalculateOptimalPageBreaks_ShortDocumentHasNone(t *testing.T) {
	e := defaultEngine()
	if breaks := e.CalculateOptimalPageBreaks("just a short line"); len(breaks) != 0 {
		t.Errorf("breaks = %v, want none", breaks)
	}
}

func TestCalculateOptimalPageBreaks_EmptyAndWhitespace(t *testing.T) {
	e := defaultEngine()
	if breaks := e.CalculateOptimalPageBreaks(""); len(breaks) != 0 {
		t.Errorf("breaks on empty = %v", breaks)
	}
	if breaks := e.CalculateOptimalPageBreaks("\n\n  \n"); len(breaks) != 0 {
		t.Errorf("breaks on whitespace = %v", breaks)
	}
}

func TestCalculateOptimalPageBreaks_LongParagraphEveryPageFits(t *testing.T) {
	e := defaultEngine()
	text := latinFiller(3000)
	doc := []rune(NormalizeDocument(text))
	budget := e.est.Metrics.ContentHeight

	breaks := e.CalculateOptimalPageBreaks(text)
	if len(breaks) == 0 {
		t.Fatal("expected at least one break for a 3000-char paragraph")
	}
	prev := 0
	for _, brk := range breaks {
		if brk <= prev || brk >= len(doc) {
			t.Fatalf("break %d out of order or range (prev %d, len %d)", brk, prev, len(doc))
		}
		page := string(doc[prev:brk])
		if h := e.est.EstimateText(page); h > budget+1e-6 {
			t.Errorf("page [%d:%d] overflows budget: %v > %v", prev, brk, h, budget)
		}
		prev = brk
	}
	if h := e.est.EstimateText(string(doc[prev:])); h > budget+1e-6 {
		t.Errorf("final page overflows budget: %v", h)
	}
}

func TestCalculateOptimalPageBreaks_BreaksLandAfterSentences(t *testing.T) {
	e := defaultEngine()
	doc := []rune(NormalizeDocument(latinFiller(3000)))
	for _, brk := range e.CalculateOptimalPageBreaks(string(doc)) {
		if doc[brk-1] != '.' {
			t.Errorf("break %d not after a sentence terminator: %q", brk, string(doc[brk-5:brk+1]))
		}
	}
}

func TestCalculateOptimalPageBreaks_CJKSentences(t *testing.T) {
	e := defaultEngine()
	text := strings.Repeat("这是一个用来测试分页的完整句子，包含标点。", 120)
	doc := []rune(NormalizeDocument(text))
	breaks := e.CalculateOptimalPageBreaks(text)
	if len(breaks) == 0 {
		t.Fatal("expected breaks for long CJK text")
	}
	for _, brk := range breaks {
		if doc[brk-1] != '。' {
			t.Errorf("break %d not after 。: %q", brk, string(doc[brk-3:brk+1]))
		}
	}
}

func TestCalculateOptimalPageBreaks_UnbreakableRunStillTerminates(t *testing.T) {
	e := defaultEngine()
	text := strings.Repeat("x", 5000)
	breaks := e.CalculateOptimalPageBreaks(text)
	if len(breaks) < 2 {
		t.Fatalf("breaks = %v, want several forced cuts", breaks)
	}
	prev := 0
	for _, brk := range breaks {
		if brk <= prev {
			t.Fatalf("breaks not strictly increasing: %v", breaks)
		}
		prev = brk
	}
	if prev >= 5000 {
		t.Errorf("last break %d out of range", prev)
	}
}

func TestCalculateOptimalPageBreaks_Deterministic(t *testing.T) {
	e := defaultEngine()
	text := latinFiller(4000) + "\n\n" + strings.Repeat("第二部分的中文内容。", 80)
	a := e.CalculateOptimalPageBreaks(text)
	b := e.CalculateOptimalPageBreaks(text)
	if len(a) != len(b) {
		t.Fatalf("runs disagree: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("runs disagree at %d: %v vs %v", i, a, b)
		}
	}
}

func TestCalculateOptimalPageBreaks_NeverSplitsTokensOrMarkerPairs(t *testing.T) {
	e := defaultEngine()
	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("Some **bold words** and a ==highlight== in every sentence here. ")
		if i%5 == 4 {
			b.WriteString("[IMG:photo-")
			b.WriteByte(byte('a' + i/5))
			b.WriteString("] ")
		}
	}
	text := b.String()
	doc := []rune(NormalizeDocument(text))
	spans := markup.ImageTokenSpans(doc)

	breaks := e.CalculateOptimalPageBreaks(text)
	if len(breaks) == 0 {
		t.Fatal("expected breaks")
	}
	for _, brk := range breaks {
		if !isSafeCut(doc, spans, brk) {
			t.Errorf("break %d is not a safe cut: %q", brk, string(doc[brk-4:brk+4]))
		}
	}
}

func TestRecalculatePageBreaks_FixedPoint(t *testing.T) {
	e := defaultEngine()
	text := latinFiller(3000)
	once := e.RecalculatePageBreaks(text)
	twice := e.RecalculatePageBreaks(once)
	if once != twice {
		t.Errorf("recalculation is not a fixed point:\nonce:  %q\ntwice: %q", once, twice)
	}
}

func TestRecalculatePageBreaks_PreservesContent(t *testing.T) {
	e := defaultEngine()
	text := latinFiller(2500) + "\n\n## Section\n\n" + latinFiller(1500)
	out := e.RecalculatePageBreaks(text)
	if stripAllWhitespace(RemovePageBreaks(out)) != stripAllWhitespace(NormalizeDocument(text)) {
		t.Error("repagination altered document content")
	}
}
