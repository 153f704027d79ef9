package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.DocsDir != "" {
		t.Errorf("DocsDir = %q, want empty", cfg.DocsDir)
	}
	if len(cfg.Macros) != 0 {
		t.Errorf("Macros = %v, want empty", cfg.Macros)
	}
	if cfg.Preview.Enabled {
		t.Error("Preview.Enabled = true, want false")
	}
}

func TestApplyDefaults(t *testing.T) {
	t.Parallel()

	t.Run("fills empty fields", func(t *testing.T) {
		t.Parallel()

		cfg := DefaultConfig()
		cfg.ApplyDefaults()

		if cfg.DocsDir != DefaultDocsDir {
			t.Errorf("DocsDir = %q, want %q", cfg.DocsDir, DefaultDocsDir)
		}
		if cfg.Language != DefaultLanguage {
			t.Errorf("Language = %q, want %q", cfg.Language, DefaultLanguage)
		}
		if len(cfg.Macros) != 1 || cfg.Macros[0] != DefaultMacroName {
			t.Errorf("Macros = %v, want [%s]", cfg.Macros, DefaultMacroName)
		}
		if cfg.Preview.Style != "github" {
			t.Errorf("Preview.Style = %q, want %q", cfg.Preview.Style, "github")
		}
	})

	t.Run("keeps set fields", func(t *testing.T) {
		t.Parallel()

		cfg := &Config{DocsDir: "manual", Language: "rust", Macros: []string{"snippet"}}
		cfg.ApplyDefaults()

		if cfg.DocsDir != "manual" || cfg.Language != "rust" || cfg.Macros[0] != "snippet" {
			t.Errorf("ApplyDefaults overwrote set fields: %+v", cfg)
		}
	})
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{name: "empty value is valid", value: "", maxLength: 10},
		{name: "value at limit is valid", value: "1234567890", maxLength: 10},
		{name: "value over limit returns error", value: "12345678901", maxLength: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("field", tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     *Config
		wantErr error
	}{
		{
			name: "valid config",
			cfg: &Config{
				DocsDir:  "docs",
				Language: "cpp",
				Macros:   []string{"code_snippet", "api_snippet"},
				Preview:  PreviewConfig{Enabled: true, Style: "monokai"},
			},
		},
		{
			name: "empty config is valid",
			cfg:  &Config{},
		},
		{
			name: "style path skips name validation",
			cfg:  &Config{Preview: PreviewConfig{Style: "./site/preview.css"}},
		},
		{
			name:    "language with space",
			cfg:     &Config{Language: "c pp"},
			wantErr: ErrInvalidField,
		},
		{
			name:    "language with backtick",
			cfg:     &Config{Language: "cpp`"},
			wantErr: ErrInvalidField,
		},
		{
			name:    "language too long",
			cfg:     &Config{Language: strings.Repeat("x", MaxLanguageLength+1)},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "macro not an identifier",
			cfg:     &Config{Macros: []string{"code-snippet"}},
			wantErr: ErrInvalidField,
		},
		{
			name:    "macro starting with digit",
			cfg:     &Config{Macros: []string{"1snippet"}},
			wantErr: ErrInvalidField,
		},
		{
			name:    "too many macros",
			cfg:     &Config{Macros: make([]string, MaxMacros+1)},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "docsDir too long",
			cfg:     &Config{DocsDir: strings.Repeat("d", MaxPathLength+1)},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "output dir too long",
			cfg:     &Config{Output: OutputConfig{DefaultDir: strings.Repeat("o", MaxPathLength+1)}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "style name with dot",
			cfg:     &Config{Preview: PreviewConfig{Style: "mono.kai"}},
			wantErr: ErrInvalidField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	writeConfig := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "mdsnip.yaml")
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		return path
	}

	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `docsDir: site/docs
language: python
macros:
  - code_snippet
  - py_snippet
input:
  defaultDir: site/docs
output:
  defaultDir: build/docs
preview:
  enabled: true
  style: dracula
`)
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.DocsDir != "site/docs" {
			t.Errorf("DocsDir = %q", cfg.DocsDir)
		}
		if cfg.Language != "python" {
			t.Errorf("Language = %q", cfg.Language)
		}
		if len(cfg.Macros) != 2 || cfg.Macros[1] != "py_snippet" {
			t.Errorf("Macros = %v", cfg.Macros)
		}
		if cfg.Input.DefaultDir != "site/docs" || cfg.Output.DefaultDir != "build/docs" {
			t.Errorf("Input/Output = %+v / %+v", cfg.Input, cfg.Output)
		}
		if !cfg.Preview.Enabled || cfg.Preview.Style != "dracula" {
			t.Errorf("Preview = %+v", cfg.Preview)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown name returns ErrConfigNotFound with tried paths", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("no-such-mdsnip-config")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "no-such-mdsnip-config.yaml") {
			t.Errorf("error should list tried paths, got %v", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "macros: [unclosed")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "docs_dir: docs\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("validation runs after parsing", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "macros: [\"not-valid\"]\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidField) {
			t.Errorf("error = %v, want ErrInvalidField", err)
		}
	})
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("docs")
	if len(paths) < 2 {
		t.Fatalf("SearchPaths() = %v, want at least local paths", paths)
	}
	if paths[0] != "docs.yaml" || paths[1] != "docs.yml" {
		t.Errorf("local paths = %v, want docs.yaml then docs.yml", paths[:2])
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, AppName) {
			t.Errorf("user path %q should be under %s", p, AppName)
		}
	}
}
