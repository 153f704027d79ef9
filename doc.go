// Package mdsnip pulls code snippets out of source files and formats them as
// fenced markdown blocks for a static documentation site.
//
// # Markers
//
// A snippet is the text between a start marker and the next end marker:
//
//	//[push_back Vector
//	v.push_back(4);
//	//]
//
// Text after the snippet name on the start line is an optional tab header.
// Content lines are dedented by their common indentation (at most 20
// characters). Snippets longer than ten lines get line numbers.
//
// # Quick Start
//
//	ext := mdsnip.NewExtractor(mdsnip.WithDocsDir("docs"))
//	block := ext.Extract(mdsnip.Request{
//	    Filename: "vector.cpp",
//	    Snippet:  "push_back",
//	})
//
// Extract never fails: a missing file or marker yields bold inline markup
// that shows up on the rendered page. Use Lookup for typed errors.
//
// # Path Resolution
//
// A relative filename is tried, in order, under the docs directory, its
// parent, and the parent's examples directory. The first regular file wins.
//
// # Documents
//
// Renderer expands every {{ code_snippet(...) }} call in a markdown
// document, reports unresolved calls with their line numbers, and can
// render an HTML preview with syntax highlighting:
//
//	r, err := mdsnip.NewRenderer(mdsnip.WithExtractor(ext))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := r.Render(ctx, mdsnip.RenderInput{Markdown: page, HTML: true})
//
// Extractor and Renderer hold no mutable state and are safe for concurrent use.
package mdsnip
