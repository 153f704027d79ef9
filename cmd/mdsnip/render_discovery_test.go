package main

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"
)

// ---------------------------------------------------------------------------
// TestDiscoverFiles - Markdown discovery and output mirroring
// ---------------------------------------------------------------------------

func TestDiscoverFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, rel := range []string{
		"docs/index.md",
		"docs/guide/intro.markdown",
		"docs/guide/notes.txt",
		"docs/.cache/stale.md",
		"docs/build/old.md",
	} {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("# x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	docs := filepath.Join(root, "docs")
	out := filepath.Join(docs, "build")

	files, err := discoverFiles(docs, out)
	if err != nil {
		t.Fatalf("discoverFiles() error = %v", err)
	}

	got := make(map[string]string, len(files))
	for _, f := range files {
		got[f.InputPath] = f.OutputPath
	}
	want := map[string]string{
		filepath.Join(docs, "index.md"):                 filepath.Join(out, "index.md"),
		filepath.Join(docs, "guide", "intro.markdown"): filepath.Join(out, "guide", "intro.markdown"),
	}
	if len(got) != len(want) {
		keys := make([]string, 0, len(got))
		for k := range got {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		t.Fatalf("discovered %v, want %d files", keys, len(want))
	}
	for in, wantOut := range want {
		if got[in] != wantOut {
			t.Errorf("output for %s = %q, want %q", in, got[in], wantOut)
		}
	}
}

func TestDiscoverFiles_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	md := filepath.Join(dir, "page.md")
	txt := filepath.Join(dir, "page.txt")
	for _, p := range []string{md, txt} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := discoverFiles(md, filepath.Join(dir, "out"))
	if err != nil {
		t.Fatalf("discoverFiles(md) error = %v", err)
	}
	if len(files) != 1 || files[0].OutputPath != filepath.Join(dir, "out", "page.md") {
		t.Errorf("discoverFiles(md) = %+v", files)
	}

	if _, err := discoverFiles(txt, ""); !errors.Is(err, ErrInvalidExtension) {
		t.Errorf("discoverFiles(txt) error = %v, want ErrInvalidExtension", err)
	}

	if _, err := discoverFiles(filepath.Join(dir, "missing.md"), ""); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("discoverFiles(missing) error = %v, want os.ErrNotExist", err)
	}
}

// ---------------------------------------------------------------------------
// TestResolveOutputPath - Output path mirroring
// ---------------------------------------------------------------------------

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		inputPath    string
		outputDir    string
		baseInputDir string
		want         string
	}{
		{"no output dir keeps input path", "docs/a.md", "", "", "docs/a.md"},
		{"single file into dir", "docs/a.md", "out", "", filepath.Join("out", "a.md")},
		{"nested file mirrors tree", filepath.Join("docs", "x", "a.md"), "out", "docs", filepath.Join("out", "x", "a.md")},
		{"markdown extension kept", filepath.Join("docs", "a.markdown"), "out", "docs", filepath.Join("out", "a.markdown")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := resolveOutputPath(tt.inputPath, tt.outputDir, tt.baseInputDir); got != tt.want {
				t.Errorf("resolveOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPreviewPath(t *testing.T) {
	t.Parallel()

	if got, want := previewPath(filepath.Join("out", "a.markdown")), filepath.Join("out", "a.html"); got != want {
		t.Errorf("previewPath() = %q, want %q", got, want)
	}
}

// ---------------------------------------------------------------------------
// TestValidateWorkers / TestResolveWorkers - Worker bounds
// ---------------------------------------------------------------------------

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n       int
		wantErr bool
	}{
		{-1, true},
		{0, false},
		{1, false},
		{MaxWorkers, false},
		{MaxWorkers + 1, true},
	}

	for _, tt := range tests {
		err := validateWorkers(tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateWorkers(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) error should wrap ErrInvalidWorkerCount", tt.n)
		}
	}
}

func TestResolveWorkers(t *testing.T) {
	t.Parallel()

	if got := resolveWorkers(3, 7); got != 3 {
		t.Errorf("flag should win: got %d, want 3", got)
	}
	if got := resolveWorkers(0, 7); got != 7 {
		t.Errorf("env should apply: got %d, want 7", got)
	}
	if got := resolveWorkers(0, 500); got != MaxWorkers {
		t.Errorf("env should be capped: got %d, want %d", got, MaxWorkers)
	}

	auto := resolveWorkers(0, 0)
	if auto < 1 || auto > maxAutoWorkers {
		t.Errorf("auto workers = %d, want 1..%d", auto, maxAutoWorkers)
	}
	if want := min(max(runtime.GOMAXPROCS(0)/2, 1), maxAutoWorkers); auto != want {
		t.Errorf("auto workers = %d, want %d", auto, want)
	}
}
