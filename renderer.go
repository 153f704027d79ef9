package mdsnip

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/alnah/go-mdsnip/internal/assets"
	"github.com/alnah/go-mdsnip/internal/macro"
	"github.com/alnah/go-mdsnip/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.PreviewPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector          = (*pipeline.CSSInjection)(nil)
)

// Snippet macro parameters, in positional order.
var snippetParams = []string{"filename", "snippet", "language"}

// Renderer expands snippet macros in markdown documents and optionally
// renders an HTML preview of the result. It is safe for concurrent use.
type Renderer struct {
	extractor    *Extractor
	macroNames   []string
	logger       zerolog.Logger
	style        string // theme name or CSS path
	extraCSS     string
	css          string // resolved preview stylesheet
	preprocessor pipeline.MarkdownPreprocessor
	converter    pipeline.HTMLConverter
	cssInjector  pipeline.CSSInjector
}

// RenderOption configures a Renderer.
type RenderOption func(*Renderer)

// WithExtractor sets the Extractor that resolves macro calls.
func WithExtractor(e *Extractor) RenderOption {
	return func(r *Renderer) {
		r.extractor = e
	}
}

// WithMacroNames sets the macro names bound to the extractor.
// Every name expands the same way; aliases let older pages keep working.
func WithMacroNames(names ...string) RenderOption {
	return func(r *Renderer) {
		r.macroNames = names
	}
}

// WithRenderLogger sets the logger used for unresolved calls and stage timing.
func WithRenderLogger(logger zerolog.Logger) RenderOption {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// WithPreviewStyle selects the preview stylesheet: a chroma theme name or a
// path to a CSS file. Empty keeps the default theme.
func WithPreviewStyle(nameOrPath string) RenderOption {
	return func(r *Renderer) {
		r.style = nameOrPath
	}
}

// WithPreviewCSS appends css after the preview stylesheet.
func WithPreviewCSS(css string) RenderOption {
	return func(r *Renderer) {
		r.extraCSS = css
	}
}

// NewRenderer creates a Renderer. Without options it binds "code_snippet"
// to an Extractor with DefaultConfig and uses the default preview theme.
// Returns ErrInvalidMacroName or ErrStyleNotFound for bad options.
func NewRenderer(opts ...RenderOption) (*Renderer, error) {
	r := &Renderer{
		logger:       zerolog.Nop(),
		preprocessor: &pipeline.PreviewPreprocessor{},
		converter:    pipeline.NewGoldmarkConverter(),
		cssInjector:  &pipeline.CSSInjection{},
	}
	for _, opt := range opts {
		opt(r)
	}

	// Default extractor shares the renderer's logger
	if r.extractor == nil {
		r.extractor = NewExtractor(WithLogger(r.logger))
	}
	if len(r.macroNames) == 0 {
		r.macroNames = []string{DefaultMacroName}
	}
	// Reject bad macro names here rather than on the first document
	reg, err := r.registry()
	if err != nil {
		return nil, err
	}
	r.logger.Debug().Strs("macros", reg.Names()).Msg("snippet macros bound")

	// Resolve the preview stylesheet once; extra CSS goes last so it can override
	css, err := assets.LoadStyle(r.style)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) || errors.Is(err, assets.ErrInvalidAssetName) {
			return nil, fmt.Errorf("%w: %v", ErrStyleNotFound, err)
		}
		return nil, err
	}
	r.css = css
	if r.extraCSS != "" {
		r.css += "\n" + r.extraCSS
	}

	return r, nil
}

// Extractor returns the Extractor used for macro calls.
func (r *Renderer) Extractor() *Extractor {
	return r.extractor
}

// MacroNames returns the macro names bound to the extractor.
func (r *Renderer) MacroNames() []string {
	return append([]string(nil), r.macroNames...)
}

// RenderInput is a markdown document to expand.
type RenderInput struct {
	Markdown  string
	SourceDir string // directory of the document; used by the preview for relative paths
	Title     string // preview title; "" uses the first H1
	HTML      bool   // also render the HTML preview
}

// Issue is a macro call that produced inline error markup.
type Issue struct {
	Line     int    // 1-based line of the call in the source document
	Macro    string // macro name as written
	Filename string
	Snippet  string
	Err      error
}

// String formats the issue as "line N: message".
func (i Issue) String() string {
	return fmt.Sprintf("line %d: %v", i.Line, i.Err)
}

// RenderResult holds an expanded document.
type RenderResult struct {
	Markdown string
	HTML     string // empty unless RenderInput.HTML
	Issues   []Issue
}

// Render expands every bound macro in the document. Failed calls are left
// as inline error markup and reported in Issues; they are not errors.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (r *Renderer) Render(ctx context.Context, in RenderInput) (result *RenderResult, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("internal error: %v", rec)
		}
	}()

	if strings.TrimSpace(in.Markdown) == "" {
		return nil, ErrEmptyMarkdown
	}

	// Expand macros
	expanded, issues, err := r.expand(ctx, in.Markdown)
	if err != nil {
		return nil, err
	}

	result = &RenderResult{Markdown: expanded, Issues: issues}
	if !in.HTML {
		return result, nil
	}

	// Title from the source, not the expansion: snippets may contain "# " lines
	title := in.Title
	if title == "" {
		title = documentTitle(in.Markdown)
	}

	html, err := r.preview(ctx, expanded, title, in.SourceDir)
	if err != nil {
		return nil, err
	}
	result.HTML = html
	return result, nil
}

// Check resolves every bound macro call without expanding the document or
// building a preview, and returns the calls that failed. An empty document
// has no issues.
func (r *Renderer) Check(ctx context.Context, markdown string) ([]Issue, error) {
	reg, err := r.registry()
	if err != nil {
		return nil, err
	}

	var issues []Issue
	for _, call := range reg.Calls(markdown) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		callErr := call.Err
		if callErr == nil {
			var req Request
			if req, callErr = snippetRequest(call); callErr == nil {
				_, callErr = r.extractor.Lookup(req)
			}
		}
		if callErr != nil {
			issues = append(issues, newIssue(call, callErr))
		}
	}
	return issues, nil
}

func (r *Renderer) expand(ctx context.Context, markdown string) (string, []Issue, error) {
	reg, err := r.registry()
	if err != nil {
		return "", nil, err
	}

	expanded, failures, err := reg.Expand(ctx, markdown)
	if err != nil {
		return "", nil, err
	}

	var issues []Issue
	for _, f := range failures {
		issues = append(issues, newIssue(f.Call, f.Err))
	}
	return expanded, issues, nil
}

// newIssue reports a failed call; filename and snippet are best effort.
func newIssue(call macro.Call, err error) Issue {
	issue := Issue{Line: call.Line, Macro: call.Name, Err: err}
	issue.Filename, _ = call.Args.Get(0, snippetParams[0])
	issue.Snippet, _ = call.Args.Get(1, snippetParams[1])
	return issue
}

// preview runs the HTML stages on expanded markdown.
func (r *Renderer) preview(ctx context.Context, markdown, title, sourceDir string) (string, error) {
	// Unfold tabbed blocks and line-number hints for goldmark
	md := r.preprocessor.PreprocessMarkdown(ctx, markdown)
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	// Convert to HTML
	html, err := r.converter.ToHTML(ctx, md, title)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	// Inject CSS
	html = r.cssInjector.InjectCSS(ctx, html, r.css)
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	// Rewrite relative paths (if source directory provided)
	if sourceDir != "" {
		html, err = pipeline.RewriteRelativePaths(html, sourceDir)
		if err != nil {
			return "", fmt.Errorf("rewriting relative paths: %w", err)
		}
	}
	return html, nil
}

// registry builds a fresh macro registry for one document.
func (r *Renderer) registry() (*macro.Registry, error) {
	reg := macro.NewRegistry()
	for _, name := range r.macroNames {
		if err := reg.Register(name, r.snippetMacro); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMacroName, err)
		}
	}
	return reg, nil
}

// snippetMacro expands code_snippet(filename, snippet="", language=<default>).
func (r *Renderer) snippetMacro(call macro.Call) (string, error) {
	req, err := snippetRequest(call)
	if err != nil {
		return "", err
	}

	block, err := r.extractor.Lookup(req)
	if err != nil {
		r.logger.Warn().
			Err(err).
			Int("line", call.Line).
			Str("file", req.Filename).
			Str("snippet", req.Snippet).
			Msg("snippet unresolved")
		return "", &macro.Fallback{Text: InlineError(req, err), Err: err}
	}
	return block, nil
}

// snippetRequest binds a call's arguments to a Request.
func snippetRequest(call macro.Call) (Request, error) {
	vals, err := call.Args.Bind(snippetParams...)
	if err != nil {
		return Request{}, err
	}
	if vals[0] == "" {
		return Request{}, fmt.Errorf("%w: filename is required", macro.ErrArguments)
	}
	return Request{Filename: vals[0], Snippet: vals[1], Language: vals[2]}, nil
}

// documentTitle returns the text of the first ATX level-1 heading outside
// fenced code, or "".
func documentTitle(markdown string) string {
	inFence := false
	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if !inFence && strings.HasPrefix(line, "# ") {
			return headingText(line[2:])
		}
	}
	return ""
}

// headingText strips an optional closing sequence of '#'. The sequence only
// counts when preceded by a space, so "C#" keeps its hash.
func headingText(s string) string {
	s = strings.TrimSpace(s)
	bare := strings.TrimRight(s, "#")
	if bare == "" {
		return ""
	}
	if bare != s && (strings.HasSuffix(bare, " ") || strings.HasSuffix(bare, "\t")) {
		s = bare
	}
	return strings.TrimSpace(s)
}
