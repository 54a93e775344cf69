package markup

import (
	"strings"

	"github.com/starford/folio/internal/models"
)

// ParseBlocks segments a document into an ordered list of typed blocks.
// The document is first split on image tokens, alternating plain-text spans
// with Image blocks. Within a text span, lines accumulate into a pending
// paragraph; a blank line flushes it, and a heading line flushes it
// immediately even without a preceding blank line. Whitespace-only
// paragraphs are dropped.
func ParseBlocks(text string) []models.Block {
	var blocks []models.Block

	spans := imageTokenRe.FindAllStringSubmatchIndex(text, -1)
	pos := 0
	for _, sp := range spans {
		blocks = appendTextBlocks(blocks, text[pos:sp[0]])
		blocks = append(blocks, models.Block{
			Kind:    models.BlockImage,
			ImageID: text[sp[2]:sp[3]],
		})
		pos = sp[1]
	}
	blocks = appendTextBlocks(blocks, text[pos:])

	return blocks
}

// appendTextBlocks parses one image-free text span into paragraphs and
// headings, appending to dst.
func appendTextBlocks(dst []models.Block, span string) []models.Block {
	var pending []string

	flush := func() {
		if len(pending) == 0 {
			return
		}
		joined := strings.TrimSpace(strings.Join(pending, "\n"))
		pending = pending[:0]
		if joined == "" {
			return
		}
		dst = append(dst, models.Block{Kind: models.BlockParagraph, Text: joined})
	}

	for _, line := range strings.Split(span, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if m := headingRe.FindStringSubmatch(line); m != nil {
			flush()
			dst = append(dst, models.Block{
				Kind:  models.BlockHeading,
				Level: len(m[1]),
				Text:  m[2],
			})
			continue
		}
		pending = append(pending, line)
	}
	flush()

	return dst
}
