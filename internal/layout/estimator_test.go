package layout

import (
	"math"
	"strings"
	"testing"

	"github.com/starford/folio/internal/models"
)

func defaultEstimator(images map[string]models.ImageMeta) *Estimator {
	return NewEstimator(DefaultMetrics(), DefaultTypography(), images)
}

func floatEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCharsPerLine_Defaults(t *testing.T) {
	e := defaultEstimator(nil)
	// 343 / (16 * 0.6) = 35.7 chars.
	if got := e.CharsPerLine(); got != 35 {
		t.Errorf("CharsPerLine() = %d, want 35", got)
	}
}

func TestCharsPerLine_DegenerateAdvanceClampsToOne(t *testing.T) {
	e := defaultEstimator(nil)
	e.Typography.FontSize = 0
	if got := e.CharsPerLine(); got != 1 {
		t.Errorf("CharsPerLine() = %d, want 1", got)
	}
}

func TestEstimateText_SingleLineParagraph(t *testing.T) {
	e := defaultEstimator(nil)
	// One line at 16 * 1.6 plus the 12px paragraph bottom margin.
	want := 16*1.6 + 12
	if got := e.EstimateText("hello"); !floatEq(got, want) {
		t.Errorf("EstimateText = %v, want %v", got, want)
	}
}

func TestEstimateText_ParagraphWraps(t *testing.T) {
	e := defaultEstimator(nil)
	text := strings.Repeat("a", 80) // ceil(80/35) = 3 lines
	want := 3*16*1.6 + 12
	if got := e.EstimateText(text); !floatEq(got, want) {
		t.Errorf("EstimateText = %v, want %v", got, want)
	}
}

func TestEstimateText_MarkersDoNotCount(t *testing.T) {
	e := defaultEstimator(nil)
	plain := strings.Repeat("x", 35)
	marked := "**" + plain + "**"
	if g1, g2 := e.EstimateText(plain), e.EstimateText(marked); !floatEq(g1, g2) {
		t.Errorf("marked height %v differed from plain %v", g2, g1)
	}
}

func TestEstimateText_FirstHeadingHasNoTopMargin(t *testing.T) {
	e := defaultEstimator(nil)
	// Level 1: font 24, line height 1.3, bottom margin 0.4em.
	want := 24*1.3 + 0.4*24
	if got := e.EstimateText("# Title"); !floatEq(got, want) {
		t.Errorf("EstimateText = %v, want %v", got, want)
	}
}

func TestHeight_AdjacentMarginsCollapseToMax(t *testing.T) {
	e := defaultEstimator(nil)
	// Paragraph bottom 12 meets heading-1 top 19.2; the gap is 19.2, not 31.2.
	got := e.EstimateText("para\n\n# Head")
	want := 16*1.6 + math.Max(12, 0.8*24) + 24*1.3 + 0.4*24
	if !floatEq(got, want) {
		t.Errorf("EstimateText = %v, want %v", got, want)
	}
	summed := 16*1.6 + 12 + 0.8*24 + 24*1.3 + 0.4*24
	if got >= summed {
		t.Errorf("margins appear summed: %v >= %v", got, summed)
	}
}

func TestImageHeight_DefaultRatioWhenUnregistered(t *testing.T) {
	e := defaultEstimator(nil)
	want := 0.5*16 + 343*(9.0/16.0) + 0.5*16
	if got := e.EstimateText("[IMG:unknown]"); !floatEq(got, want) {
		t.Errorf("EstimateText = %v, want %v", got, want)
	}
}

func TestImageHeight_RegisteredRatio(t *testing.T) {
	e := defaultEstimator(map[string]models.ImageMeta{
		"pic": {Width: 100, Height: 50},
	})
	want := 0.5*16 + 343*0.5 + 0.5*16
	if got := e.EstimateText("[IMG:pic]"); !floatEq(got, want) {
		t.Errorf("EstimateText = %v, want %v", got, want)
	}
}

func TestImageHeight_TallImageClamped(t *testing.T) {
	e := defaultEstimator(map[string]models.ImageMeta{
		"tall": {Width: 100, Height: 400},
	})
	want := 0.5*16 + 320.0 + 0.5*16
	if got := e.EstimateText("[IMG:tall]"); !floatEq(got, want) {
		t.Errorf("EstimateText = %v, want %v", got, want)
	}
}

func TestEstimateText_EmptyIsZero(t *testing.T) {
	e := defaultEstimator(nil)
	if got := e.EstimateText(""); got != 0 {
		t.Errorf("EstimateText(\"\") = %v, want 0", got)
	}
	if got := e.EstimateText("  \n\n"); got != 0 {
		t.Errorf("EstimateText(whitespace) = %v, want 0", got)
	}
}

func TestEstimateText_MonotoneOverPrefixes(t *testing.T) {
	e := defaultEstimator(map[string]models.ImageMeta{
		"m": {Width: 160, Height: 90},
	})
	doc := []rune("First paragraph with some **bold** words and a longer tail to wrap.\n\n" +
		"[IMG:m]\n\n" +
		"第二段落。中文文本也要估算高度，版式模型按字符计数。\n\n" +
		"Final paragraph to close things out after the image block.")
	prev := 0.0
	for i := 0; i <= len(doc); i++ {
		h := e.EstimateText(string(doc[:i]))
		if h < prev-1e-9 {
			t.Fatalf("height decreased at prefix %d: %v -> %v", i, prev, h)
		}
		prev = h
	}
}
