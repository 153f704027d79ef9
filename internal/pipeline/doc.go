// Package pipeline turns expanded markdown into a standalone HTML preview.
//
// The stages run in order:
//   - Markdown preprocessing (line endings, tabbed blocks, line number hints)
//   - Markdown to HTML conversion via Goldmark with chroma highlighting
//   - CSS injection into the HTML document
//   - Relative path rewriting so images and links resolve from disk
//
// The preview is a proofreading aid for snippet expansion. The site
// generator that consumes the expanded markdown owns the real rendering,
// so tabbed blocks are flattened rather than reproduced.
package pipeline
