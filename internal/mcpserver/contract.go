package mcpserver

// MarkupFormatContract describes the markup that paginated documents may
// contain. LLM consumers should follow it when composing documents for the
// paginate_document tool.
const MarkupFormatContract = `# Folio Markup Format

Folio paginates plain Unicode text with a deliberately small markup model.
It is NOT general markdown: only the constructs below are recognized.

## Headings

` + "```" + `
# Level 1
## Level 2
### Level 3
` + "```" + `

One to three '#' characters, one space, then the heading text. Deeper
levels are not recognized and flow as paragraph text.

## Inline span markers

- ` + "`" + `**bold**` + "`" + `
- ` + "`" + `*italic*` + "`" + `
- ` + "`" + `__underline__` + "`" + `
- ` + "`" + `==highlight==` + "`" + `

Markers are stripped when estimating text length; unmatched markers are
treated as literal characters, never an error.

## Images

Embed an image with an inline placeholder token:

` + "```" + `
[IMG:my-diagram]
` + "```" + `

The id may contain letters, digits, '_' and '-'. Register the image's
intrinsic dimensions (register_image tool or the images API) so pagination
uses its real aspect ratio; unregistered images assume 16:9.

## Page breaks

A line containing only ` + "`" + `---` + "`" + ` (optionally padded with spaces or
tabs) is an explicit page-break marker. paginate_document inserts them;
split_cards cuts on them. Do not hand-write ` + "`" + `---` + "`" + ` lines for any
other purpose: they are always interpreted as page breaks.

## Structure rules

1. Paragraphs are separated by blank lines.
2. Runs of three or more blank lines are collapsed during pagination.
3. Encoding is UTF-8; mixed CJK/Latin text is expected and supported.
`
