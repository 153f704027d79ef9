package pipeline

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRewriteRelativePaths
// ---------------------------------------------------------------------------

func TestRewriteRelativePaths(t *testing.T) {
	t.Parallel()

	sourceDir := "/docs"
	if runtime.GOOS == "windows" {
		sourceDir = `C:\docs`
	}

	tests := []struct {
		name         string
		html         string
		sourceDir    string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "relative image",
			html:         `<img src="images/diagram.png">`,
			sourceDir:    sourceDir,
			wantContains: []string{`src="file://`, `diagram.png"`},
		},
		{
			name:         "absolute image unchanged",
			html:         `<img src="/abs/logo.png">`,
			sourceDir:    sourceDir,
			wantContains: []string{`src="/abs/logo.png"`},
		},
		{
			name:         "https link unchanged",
			html:         `<a href="https://example.com/guide.md">guide</a>`,
			sourceDir:    sourceDir,
			wantContains: []string{`href="https://example.com/guide.md"`},
		},
		{
			name:         "anchor unchanged",
			html:         `<a href="#usage">usage</a>`,
			sourceDir:    sourceDir,
			wantContains: []string{`href="#usage"`},
		},
		{
			name:         "markdown link becomes preview link",
			html:         `<a href="api/vectors.md">vectors</a>`,
			sourceDir:    sourceDir,
			wantContains: []string{`href="api/vectors.html"`},
			wantExcludes: []string{"file://"},
		},
		{
			name:         "markdown link keeps fragment",
			html:         `<a href="install.md#linux">linux</a>`,
			sourceDir:    sourceDir,
			wantContains: []string{`href="install.html#linux"`},
		},
		{
			name:         "relative non-markdown link becomes file URL",
			html:         `<a href="examples/demo.cpp">demo</a>`,
			sourceDir:    sourceDir,
			wantContains: []string{`href="file://`, `demo.cpp"`},
		},
		{
			name:         "traversal left alone",
			html:         `<img src="../../etc/passwd">`,
			sourceDir:    sourceDir,
			wantContains: []string{`src="../../etc/passwd"`},
		},
		{
			name:         "empty source dir returns input",
			html:         `<img src="logo.png">`,
			sourceDir:    "",
			wantContains: []string{`src="logo.png"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteRelativePaths(tt.html, tt.sourceDir)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("result missing %q\ngot: %s", want, got)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("result should not contain %q\ngot: %s", exclude, got)
				}
			}
		})
	}
}

func TestRewriteRelativePaths_FullDocument(t *testing.T) {
	t.Parallel()

	doc := `<!DOCTYPE html><html><head><title>t</title></head><body><img src="a.png"></body></html>`

	got, err := RewriteRelativePaths(doc, t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(strings.ToLower(got), "<!doctype html>") {
		t.Errorf("doctype lost: %s", got)
	}
	if !strings.Contains(got, "file://") {
		t.Errorf("image not rewritten: %s", got)
	}
}

func TestRewriteRelativePaths_Fragment(t *testing.T) {
	t.Parallel()

	got, err := RewriteRelativePaths(`<p><img src="a.png"></p>`, t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(got, "<html>") || strings.Contains(got, "<body>") {
		t.Errorf("fragment should not be wrapped: %s", got)
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func TestIsRelativePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"", false},
		{"#top", false},
		{"//cdn.example.com/x.png", false},
		{"https://example.com", false},
		{"mailto:a@b.c", false},
		{"data:image/png;base64,AAAA", false},
		{"/abs/x.png", false},
		{"x.png", true},
		{"./x.png", true},
		{"../x.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := isRelativePath(tt.path); got != tt.want {
				t.Errorf("isRelativePath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestIsPathUnderDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(string(filepath.Separator), "docs")

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"same dir", dir, true},
		{"child", filepath.Join(dir, "a.png"), true},
		{"sibling prefix", dir + "-other", false},
		{"parent", filepath.Dir(dir), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := isPathUnderDir(tt.path, dir); got != tt.want {
				t.Errorf("isPathUnderDir(%q, %q) = %v, want %v", tt.path, dir, got, tt.want)
			}
		})
	}
}

func TestSplitFragment(t *testing.T) {
	t.Parallel()

	path, fragment := splitFragment("guide.md#setup")
	if path != "guide.md" || fragment != "#setup" {
		t.Errorf("splitFragment() = %q, %q", path, fragment)
	}

	path, fragment = splitFragment("guide.md")
	if path != "guide.md" || fragment != "" {
		t.Errorf("splitFragment() = %q, %q", path, fragment)
	}
}
