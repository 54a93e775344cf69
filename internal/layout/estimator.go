// Package layout estimates the rendered height of marked-up text without a
// rendering engine. The model is a character-count approximation tuned for
// mixed CJK/Latin text: it will diverge from a real layout engine for
// proportional fonts or RTL scripts, and that divergence is accepted.
package layout

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/starford/folio/internal/markup"
	"github.com/starford/folio/internal/models"
)

// Metrics holds the fixed geometry of the card content area. All values are
// pixels except BaseCharWidthEm and DefaultImageRatio.
type Metrics struct {
	// ContentWidth is the usable horizontal space for one card.
	ContentWidth float64 `json:"contentWidth" yaml:"content_width"`
	// ContentHeight is the usable vertical space for one card (the budget).
	ContentHeight float64 `json:"contentHeight" yaml:"content_height"`
	// MaxImageHeight caps the display height of a single image.
	MaxImageHeight float64 `json:"maxImageHeight" yaml:"max_image_height"`
	// BaseCharWidthEm is the average character advance in em, before letter
	// spacing is added.
	BaseCharWidthEm float64 `json:"baseCharWidthEm" yaml:"base_char_width_em"`
	// DefaultImageRatio is the assumed height/width ratio for images with no
	// registered metadata.
	DefaultImageRatio float64 `json:"defaultImageRatio" yaml:"default_image_ratio"`
}

// DefaultMetrics returns the production card geometry.
func DefaultMetrics() Metrics {
	return Metrics{
		ContentWidth:      343,
		ContentHeight:     520,
		MaxImageHeight:    320,
		BaseCharWidthEm:   0.6,
		DefaultImageRatio: 9.0 / 16.0,
	}
}

// DefaultTypography returns the typography used when a request supplies none.
func DefaultTypography() models.Typography {
	return models.Typography{
		FontSize:         16,
		LineHeight:       1.6,
		ParagraphSpacing: 12,
		LetterSpacing:    0,
	}
}

// Heading constants by level (index 0 = level 1). Font scale and line height
// mirror the renderer's stylesheet; margins are in em of the heading's own
// font size.
var (
	headingFontScale   = [3]float64{1.5, 1.25, 1.1}
	headingLineHeight  = [3]float64{1.3, 1.4, 1.5}
	headingMarginTopEm = [3]float64{0.8, 0.7, 0.6}
	headingMarginBotEm = [3]float64{0.4, 0.35, 0.3}
	imageMarginEm      = 0.5
)

// Estimator computes rendered heights for one immutable (metrics,
// typography, image metadata) snapshot. It holds no mutable state and is
// safe for concurrent use.
type Estimator struct {
	Metrics    Metrics
	Typography models.Typography
	Images     map[string]models.ImageMeta
}

// NewEstimator builds an Estimator. images may be nil.
func NewEstimator(m Metrics, t models.Typography, images map[string]models.ImageMeta) *Estimator {
	return &Estimator{Metrics: m, Typography: t, Images: images}
}

// CharsPerLine returns how many characters fit on one wrapped line, never
// less than one.
func (e *Estimator) CharsPerLine() int {
	adv := e.Typography.FontSize * (e.Metrics.BaseCharWidthEm + e.Typography.LetterSpacing)
	if adv <= 0 {
		return 1
	}
	n := int(math.Floor(e.Metrics.ContentWidth / adv))
	if n < 1 {
		return 1
	}
	return n
}

// BlockHeight returns the content height of a single block, excluding its
// margins.
func (e *Estimator) BlockHeight(b models.Block) float64 {
	switch b.Kind {
	case models.BlockParagraph:
		return e.paragraphHeight(b.Text)
	case models.BlockHeading:
		fs := e.Typography.FontSize * headingFontScale[b.Level-1]
		return fs * headingLineHeight[b.Level-1]
	case models.BlockImage:
		return e.imageHeight(b.ImageID)
	}
	return 0
}

func (e *Estimator) paragraphHeight(text string) float64 {
	cpl := e.CharsPerLine()
	wrapped := 0
	for _, line := range strings.Split(markup.StripMarkers(text), "\n") {
		n := utf8.RuneCountInString(line)
		if n == 0 {
			continue
		}
		wrapped += int(math.Ceil(float64(n) / float64(cpl)))
	}
	return float64(wrapped) * e.Typography.FontSize * e.Typography.LineHeight
}

func (e *Estimator) imageHeight(id string) float64 {
	ratio := e.Metrics.DefaultImageRatio
	if meta, ok := e.Images[id]; ok && meta.Width > 0 && meta.Height > 0 {
		ratio = meta.Height / meta.Width
	}
	h := e.Metrics.ContentWidth * ratio
	if h > e.Metrics.MaxImageHeight {
		h = e.Metrics.MaxImageHeight
	}
	return h
}

// blockMargins returns the top and bottom margins of a block. The first
// block in the document carries no top margin.
func (e *Estimator) blockMargins(b models.Block, first bool) (top, bottom float64) {
	switch b.Kind {
	case models.BlockParagraph:
		return 0, e.Typography.ParagraphSpacing
	case models.BlockHeading:
		fs := e.Typography.FontSize * headingFontScale[b.Level-1]
		top = headingMarginTopEm[b.Level-1] * fs
		if first {
			top = 0
		}
		return top, headingMarginBotEm[b.Level-1] * fs
	case models.BlockImage:
		m := imageMarginEm * e.Typography.FontSize
		return m, m
	}
	return 0, 0
}

// Height returns the total rendered height of an ordered block list.
// Adjacent vertical margins collapse CSS-style: the gap between two blocks
// is the max of the first's bottom margin and the second's top margin, not
// their sum. The first block's top margin and the last block's bottom margin
// are each counted once.
func (e *Estimator) Height(blocks []models.Block) float64 {
	if len(blocks) == 0 {
		return 0
	}
	total := 0.0
	prevBottom := 0.0
	for i, b := range blocks {
		top, bottom := e.blockMargins(b, i == 0)
		if i == 0 {
			total += top
		} else {
			total += math.Max(prevBottom, top)
		}
		total += e.BlockHeight(b)
		prevBottom = bottom
	}
	return total + prevBottom
}

// EstimateText parses text and returns its total estimated height. Extending
// text never decreases the result, which is what makes binary search over
// prefixes valid.
func (e *Estimator) EstimateText(text string) float64 {
	return e.Height(markup.ParseBlocks(text))
}
