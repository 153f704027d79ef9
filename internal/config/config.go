package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdsnip/internal/assets"
	"github.com/alnah/go-mdsnip/internal/fileutil"
	"github.com/alnah/go-mdsnip/internal/macro"
	"github.com/alnah/go-mdsnip/internal/yamlutil"
)

// AppName names the per-user config directory.
const AppName = "mdsnip"

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength     = 4096
	MaxLanguageLength = 32 // "cpp", "objective-c", "console"
	MaxMacroLength    = 64
	MaxMacros         = 16
	MaxStyleLength    = 4096 // theme name or CSS path
)

// Default values filled in by ApplyDefaults.
const (
	DefaultDocsDir   = "docs"
	DefaultLanguage  = "cpp"
	DefaultMacroName = "code_snippet"
)

// Config holds all configuration for a render run.
type Config struct {
	DocsDir  string        `yaml:"docsDir"`  // base for snippet candidate paths
	Language string        `yaml:"language"` // fence language when a call gives none
	Macros   []string      `yaml:"macros"`   // macro names bound to the extractor
	Input    InputConfig   `yaml:"input"`
	Output   OutputConfig  `yaml:"output"`
	Preview  PreviewConfig `yaml:"preview"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = must specify
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = next to each source
}

// PreviewConfig defines the HTML preview.
type PreviewConfig struct {
	Enabled bool   `yaml:"enabled"`
	Style   string `yaml:"style"` // chroma theme name or CSS file path
}

// Validate checks field lengths and values that would break rendering.
// Called automatically by LoadConfig; empty fields are valid.
func (c *Config) Validate() error {
	if err := validateFieldLength("docsDir", c.DocsDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("language", c.Language, MaxLanguageLength); err != nil {
		return err
	}
	if strings.ContainsAny(c.Language, " \t\r\n`") {
		return fmt.Errorf("%w: language %q must not contain whitespace or backticks", ErrInvalidField, c.Language)
	}

	if len(c.Macros) > MaxMacros {
		return fmt.Errorf("%w: macros (%d entries, max %d)", ErrFieldTooLong, len(c.Macros), MaxMacros)
	}
	for i, name := range c.Macros {
		if err := validateFieldLength(fmt.Sprintf("macros[%d]", i), name, MaxMacroLength); err != nil {
			return err
		}
		if !macro.IsIdentifier(name) {
			return fmt.Errorf("%w: macros[%d] %q is not an identifier", ErrInvalidField, i, name)
		}
	}

	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}

	if err := validateFieldLength("preview.style", c.Preview.Style, MaxStyleLength); err != nil {
		return err
	}
	if c.Preview.Style != "" && !assets.IsStylePath(c.Preview.Style) {
		if err := assets.ValidateAssetName(c.Preview.Style); err != nil {
			return fmt.Errorf("%w: preview.style: %v", ErrInvalidField, err)
		}
	}

	return nil
}

// ApplyDefaults fills empty fields with their default values.
func (c *Config) ApplyDefaults() {
	if c.DocsDir == "" {
		c.DocsDir = DefaultDocsDir
	}
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
	if len(c.Macros) == 0 {
		c.Macros = []string{DefaultMacroName}
	}
	if c.Preview.Style == "" {
		c.Preview.Style = assets.DefaultStyle
	}
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns an empty configuration: every field falls through
// to environment values, then to ApplyDefaults.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's searched as <name>.yaml or <name>.yml in SearchDirs.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := yamlutil.ReadFileStrict(configPath, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths returns every path LoadConfig tries for a config name.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppName, name+ext))
		}
	}

	return paths
}

// resolveConfigPath returns the first existing path from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, path := range tried {
		if fileutil.FileExists(path) {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
