package yamlutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-mdsnip/internal/yamlutil"
)

type previewSection struct {
	Enabled bool   `yaml:"enabled"`
	Style   string `yaml:"style"`
}

type testConfig struct {
	DocsDir string         `yaml:"docsDir"`
	Macros  []string       `yaml:"macros"`
	Preview previewSection `yaml:"preview"`
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		data      []byte
		dest      any
		wantErr   error
		wantInErr string
		check     func(t *testing.T, v any)
	}{
		{
			name: "known fields",
			data: []byte("docsDir: site/docs\nmacros: [code_snippet, api]\npreview:\n  enabled: true\n  style: monokai\n"),
			dest: &testConfig{},
			check: func(t *testing.T, v any) {
				cfg := v.(*testConfig)
				if cfg.DocsDir != "site/docs" {
					t.Errorf("DocsDir = %q, want %q", cfg.DocsDir, "site/docs")
				}
				if len(cfg.Macros) != 2 || cfg.Macros[1] != "api" {
					t.Errorf("Macros = %v", cfg.Macros)
				}
				if !cfg.Preview.Enabled || cfg.Preview.Style != "monokai" {
					t.Errorf("Preview = %+v", cfg.Preview)
				}
			},
		},
		{
			name: "unicode content",
			data: []byte("docsDir: ドキュメント"),
			dest: &testConfig{},
			check: func(t *testing.T, v any) {
				if got := v.(*testConfig).DocsDir; got != "ドキュメント" {
					t.Errorf("DocsDir = %q", got)
				}
			},
		},
		{
			name:      "unknown field",
			data:      []byte("docsDir: docs\ndocs_dir: docs"),
			dest:      &testConfig{},
			wantInErr: "yamlutil:",
		},
		{
			name:      "invalid syntax",
			data:      []byte("macros: [unclosed"),
			dest:      &testConfig{},
			wantInErr: "yamlutil:",
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &testConfig{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("docsDir: docs"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
		{
			name:    "too large",
			data:    []byte("docsDir: " + strings.Repeat("x", yamlutil.MaxInputSize)),
			dest:    &testConfig{},
			wantErr: yamlutil.ErrInputTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.UnmarshalStrict(tt.data, tt.dest)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			case tt.wantInErr != "":
				if err == nil || !strings.Contains(err.Error(), tt.wantInErr) {
					t.Fatalf("error = %v, want containing %q", err, tt.wantInErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, tt.dest)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestReadFileStrict
// ---------------------------------------------------------------------------

func TestReadFileStrict(t *testing.T) {
	t.Parallel()

	t.Run("reads file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "mdsnip.yaml")
		if err := os.WriteFile(path, []byte("docsDir: manual\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		var cfg testConfig
		if err := yamlutil.ReadFileStrict(path, &cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.DocsDir != "manual" {
			t.Errorf("DocsDir = %q, want %q", cfg.DocsDir, "manual")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		var cfg testConfig
		err := yamlutil.ReadFileStrict(filepath.Join(t.TempDir(), "none.yaml"), &cfg)
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want os.ErrNotExist", err)
		}
	})

	t.Run("oversized file rejected before reading", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "big.yaml")
		if err := os.WriteFile(path, make([]byte, yamlutil.MaxInputSize+1), 0o644); err != nil {
			t.Fatal(err)
		}
		var cfg testConfig
		err := yamlutil.ReadFileStrict(path, &cfg)
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("error = %v, want ErrInputTooLarge", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestMarshal
// ---------------------------------------------------------------------------

func TestMarshal(t *testing.T) {
	t.Parallel()

	data, err := yamlutil.Marshal(&testConfig{
		DocsDir: "docs",
		Macros:  []string{"code_snippet"},
		Preview: previewSection{Style: "github"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := string(data)
	for _, want := range []string{"docsDir: docs", "- code_snippet", "style: github"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q, got:\n%s", want, out)
		}
	}

	var decoded testConfig
	if err := yamlutil.UnmarshalStrict(data, &decoded); err != nil {
		t.Fatalf("output does not decode strictly: %v", err)
	}
}
