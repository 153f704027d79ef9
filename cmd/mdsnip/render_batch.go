package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	mdsnip "github.com/alnah/go-mdsnip"
	"github.com/alnah/go-mdsnip/internal/fileutil"
	"github.com/alnah/go-mdsnip/internal/hints"
)

// Sentinel errors for batch operations.
var (
	ErrReadMarkdown    = errors.New("failed to read markdown file")
	ErrWriteOutput     = errors.New("failed to write output file")
	ErrOutputOverwrite = errors.New("output would overwrite its source")
)

// DocumentRenderer is the interface for the rendering service.
type DocumentRenderer interface {
	Render(ctx context.Context, in mdsnip.RenderInput) (*mdsnip.RenderResult, error)
}

// Compile-time interface implementation check.
var _ DocumentRenderer = (*mdsnip.Renderer)(nil)

// renderParams groups parameters shared across batch rendering.
type renderParams struct {
	renderer DocumentRenderer
	html     bool // write the preview
	htmlOnly bool // skip the expanded markdown
}

// RenderResult holds the outcome of a single file.
type RenderResult struct {
	InputPath  string
	OutputPath string
	Issues     []mdsnip.Issue
	Err        error
	Duration   time.Duration
}

// renderBatch processes files concurrently with a bounded number of workers.
// Results keep the order of files.
func renderBatch(ctx context.Context, workers int, files []FileToRender, params *renderParams) []RenderResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(workers, len(files))
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]RenderResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = RenderResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = renderFile(ctx, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// renderFile processes a single file and returns the result.
func renderFile(ctx context.Context, f FileToRender, params *renderParams) RenderResult {
	start := time.Now()
	result := RenderResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	fail := func(err error) RenderResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	if !params.htmlOnly && samePath(f.InputPath, f.OutputPath) {
		return fail(fmt.Errorf("%w: %s", ErrOutputOverwrite, f.InputPath))
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadMarkdown, err))
	}

	// Placeholder pages have nothing to expand: copy them through with an
	// empty preview instead of failing on ErrEmptyMarkdown.
	rendered := &mdsnip.RenderResult{Markdown: string(content)}
	if strings.TrimSpace(string(content)) != "" {
		rendered, err = params.renderer.Render(ctx, mdsnip.RenderInput{
			Markdown:  string(content),
			SourceDir: filepath.Dir(f.InputPath),
			HTML:      params.html || params.htmlOnly,
		})
		if err != nil {
			return fail(err)
		}
	}
	result.Issues = rendered.Issues

	if !params.htmlOnly {
		if err := fileutil.WriteFile(f.OutputPath, []byte(rendered.Markdown)); err != nil {
			return fail(fmt.Errorf("%w: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory()))
		}
	}

	if params.html || params.htmlOnly {
		htmlPath := previewPath(f.OutputPath)
		if err := fileutil.WriteFile(htmlPath, []byte(rendered.HTML)); err != nil {
			return fail(fmt.Errorf("%w: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory()))
		}
		if params.htmlOnly {
			result.OutputPath = htmlPath
		}
	}

	result.Duration = time.Since(start)
	return result
}

// samePath reports whether a and b name the same file location.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// ResultSummary holds the count of succeeded and failed files and the
// number of unresolved snippet calls across them.
type ResultSummary struct {
	Succeeded  int
	Failed     int
	Unresolved int
}

// countResults tallies succeeded and failed files.
func countResults(results []RenderResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
		summary.Unresolved += len(r.Issues)
	}
	return summary
}

// printResultsWithWriter outputs render results using the provided writers.
// Unresolved calls are listed on stderr as path:line: message.
func printResultsWithWriter(results []RenderResult, quiet, verbose bool, env *Environment) ResultSummary {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		printIssues(env.Stderr, r.InputPath, r.Issues)

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary
}

// printIssues writes one line per unresolved call.
func printIssues(w io.Writer, path string, issues []mdsnip.Issue) {
	for _, issue := range issues {
		fmt.Fprintf(w, "%s:%d: %v\n", path, issue.Line, issue.Err)
	}
}
