package mdsnip

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Configuration defaults.
const (
	DefaultDocsDir   = "docs"
	DefaultLanguage  = "cpp"
	DefaultMacroName = "code_snippet"

	// DocsDirVariable is the host variable holding the docs directory.
	DocsDirVariable = "docs_dir"
)

// Config holds the settings shared by every extraction.
type Config struct {
	DocsDir  string // base for candidate paths (default: "docs")
	Language string // fence language when a Request leaves it empty (default: "cpp")
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		DocsDir:  DefaultDocsDir,
		Language: DefaultLanguage,
	}
}

// ConfigFromVariables builds a Config from a host variable map.
// Only "docs_dir" is read; a missing or empty value keeps the default.
func ConfigFromVariables(vars map[string]string) Config {
	cfg := DefaultConfig()
	if dir := vars[DocsDirVariable]; dir != "" {
		cfg.DocsDir = dir
	}
	return cfg
}

// Validate checks that the configuration can produce well-formed fences.
// Empty fields are valid and mean "use the default".
func (c Config) Validate() error {
	return ValidateLanguage(c.Language)
}

// ValidateLanguage rejects language tags that would break the opening fence.
func ValidateLanguage(lang string) error {
	if strings.ContainsAny(lang, " \t\r\n`") {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, lang)
	}
	return nil
}

// Request identifies the code to extract.
type Request struct {
	Filename string // path relative to one of the candidate directories
	Snippet  string // marker name; "" extracts the whole file
	Language string // fence language; "" uses Config.Language
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extractor) {
		e.cfg = cfg
	}
}

// WithDocsDir sets the docs directory used for path resolution.
func WithDocsDir(dir string) Option {
	return func(e *Extractor) {
		e.cfg.DocsDir = dir
	}
}

// WithLanguage sets the default fence language.
func WithLanguage(lang string) Option {
	return func(e *Extractor) {
		e.cfg.Language = lang
	}
}

// WithLogger sets the logger used for resolution diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}
