package mdsnip

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/alnah/go-mdsnip/internal/fileutil"
	"github.com/alnah/go-mdsnip/internal/snippet"
)

// examplesDir is the sibling of the docs directory searched last.
const examplesDir = "examples"

// Extractor turns file references into fenced markdown code blocks.
// It holds no mutable state and is safe for concurrent use.
type Extractor struct {
	cfg    Config
	logger zerolog.Logger
}

// NewExtractor creates an Extractor with DefaultConfig, then applies opts.
// Empty fields left by options fall back to the defaults.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		cfg:    DefaultConfig(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.cfg.DocsDir == "" {
		e.cfg.DocsDir = DefaultDocsDir
	}
	if e.cfg.Language == "" {
		e.cfg.Language = DefaultLanguage
	}
	return e
}

// Config returns the effective configuration.
func (e *Extractor) Config() Config {
	return e.cfg
}

// Candidates returns the absolute paths tried for filename, in priority order:
// the docs directory, its parent, then the parent's examples directory.
// An absolute filename is its own single candidate.
func (e *Extractor) Candidates(filename string) []string {
	if filepath.IsAbs(filename) {
		return []string{filepath.Clean(filename)}
	}

	base := e.cfg.DocsDir
	if abs, err := filepath.Abs(base); err == nil {
		base = abs
	}
	return []string{
		filepath.Join(base, filename),
		filepath.Join(base, "..", filename),
		filepath.Join(base, "..", examplesDir, filename),
	}
}

// Resolve returns the first candidate that exists as a regular file.
func (e *Extractor) Resolve(filename string) (string, error) {
	for _, path := range e.Candidates(filename) {
		if fileutil.FileExists(path) {
			e.logger.Debug().Str("file", filename).Str("path", path).Msg("resolved source")
			return path, nil
		}
	}
	e.logger.Debug().Str("file", filename).Strs("tried", e.Candidates(filename)).Msg("source not found")
	return "", fmt.Errorf("%w: %s", ErrFileNotFound, filename)
}

// Lookup extracts the requested code and reports failures as errors.
// Errors wrap ErrFileNotFound, ErrSnippetStartNotFound,
// ErrSnippetEndNotFound or ErrReadSource.
func (e *Extractor) Lookup(req Request) (string, error) {
	path, err := e.Resolve(req.Filename)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the docs author
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrReadSource, req.Filename, err)
	}

	lang := req.Language
	if lang == "" {
		lang = e.cfg.Language
	}

	if req.Snippet == "" {
		return snippet.WholeFile(string(data), lang), nil
	}

	block, err := snippet.Extract(string(data), req.Snippet, lang)
	switch {
	case errors.Is(err, snippet.ErrStartNotFound):
		return "", fmt.Errorf("%w: %s in %s", ErrSnippetStartNotFound, req.Snippet, req.Filename)
	case errors.Is(err, snippet.ErrEndNotFound):
		return "", fmt.Errorf("%w: %s in %s", ErrSnippetEndNotFound, req.Snippet, req.Filename)
	case err != nil:
		return "", err
	}
	return block, nil
}

// Extract is Lookup for documents: failures become inline markup, so the
// result is always a string that can be substituted into markdown.
func (e *Extractor) Extract(req Request) string {
	block, err := e.Lookup(req)
	if err != nil {
		e.logger.Warn().Err(err).Str("file", req.Filename).Str("snippet", req.Snippet).Msg("snippet unresolved")
		return InlineError(req, err)
	}
	return block
}

// InlineError renders a Lookup error as the bold markup shown on the page.
// Both snippet marker errors share one message.
func InlineError(req Request, err error) string {
	switch {
	case errors.Is(err, ErrFileNotFound):
		return "<b>File not found: " + req.Filename + "</b>"
	case errors.Is(err, ErrSnippetStartNotFound), errors.Is(err, ErrSnippetEndNotFound):
		return "<b>Snippet " + req.Snippet + " not found in " + req.Filename + "</b>"
	default:
		return "<b>Cannot read " + req.Filename + "</b>"
	}
}
