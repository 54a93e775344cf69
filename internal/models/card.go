// Package models defines the domain types for Folio.
package models

// Typography describes the text rendering settings a document is paginated
// against. Values are caller-supplied and treated as immutable for the
// duration of one computation.
type Typography struct {
	// FontSize is the base font size in pixels. Must be positive.
	FontSize float64 `json:"fontSize" yaml:"font_size"`
	// LineHeight is the unitless line-height multiplier. Must be positive.
	LineHeight float64 `json:"lineHeight" yaml:"line_height"`
	// ParagraphSpacing is the vertical gap between paragraphs in pixels.
	ParagraphSpacing float64 `json:"paragraphSpacing" yaml:"paragraph_spacing"`
	// LetterSpacing is additional per-character tracking in em.
	LetterSpacing float64 `json:"letterSpacing" yaml:"letter_spacing"`
}

// ImageMeta holds the intrinsic pixel dimensions of an image, keyed by its
// opaque id. Absence of metadata implies a default 16:9 aspect assumption.
type ImageMeta struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// BlockKind discriminates the Block tagged union.
type BlockKind int

// Block kinds, in no particular order.
const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockImage
)

// Block is one typed segment of a parsed document: a paragraph, a heading
// (levels 1-3), or an image placeholder. Exactly the fields relevant to Kind
// are populated.
type Block struct {
	Kind    BlockKind
	Text    string // paragraph or heading text
	Level   int    // heading level, 1..3
	ImageID string // image placeholder id
}

// Card is one page-sized unit of paginated content. Cards are produced
// wholesale by a split and replaced wholesale by the next one; ids are unique
// only within a single split call.
type Card struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	// StartOffset is the rune index, in the original unsplit document, of the
	// first character of the card's text. Scroll-sync consumers rely on it.
	StartOffset int `json:"startOffset"`
}
