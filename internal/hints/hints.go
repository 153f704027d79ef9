// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdsnip/internal/fileutil"
)

// IsCI detects a continuous integration environment.
var IsCI = func() bool {
	return os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""
}

// ForFileNotFound returns hints for a snippet source that resolved nowhere.
// Lists the candidate paths and, when none of their directories exist,
// suggests pointing the docs directory elsewhere.
func ForFileNotFound(candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}

	hints := []string{"tried " + strings.Join(candidates, ", ")}

	anyDir := false
	for _, c := range candidates {
		if fileutil.DirExists(filepath.Dir(c)) {
			anyDir = true
			break
		}
	}
	if !anyDir {
		hints = append(hints, "set --docs-dir or MDSNIP_DOCS_DIR")
	}

	return formatHints(hints)
}

// ForSnippetNotFound returns a hint showing the expected marker pair.
func ForSnippetNotFound(name string) string {
	if name == "" {
		return ""
	}
	return format("mark the region with //[" + name + " ... //]")
}

// ForUnresolved returns a hint after a render left inline errors behind.
// In CI it suggests failing the build instead of publishing them.
func ForUnresolved() string {
	if IsCI() {
		return format("use --strict to fail the build on unresolved snippets")
	}
	return format("run 'mdsnip check' to list every unresolved call")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/mdsnip/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
