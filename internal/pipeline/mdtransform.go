package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// tabIndent is the indentation of content belonging to a tabbed block.
const tabIndent = "    "

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Tab header: === "Label"
	tabHeader = regexp.MustCompile(`^===\s+"([^"]*)"\s*$`)

	// Fence line numbers: ```cpp linenums="1"
	fenceLineNums = regexp.MustCompile("^(\\s*```[^\\s`]*)\\s+linenums=\"\\d+\"\\s*$")
)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// PreviewPreprocessor rewrites site-generator markdown into plain CommonMark
// that Goldmark can render.
type PreviewPreprocessor struct{}

// PreprocessMarkdown applies all transformations to prepare markdown for preview.
func (p *PreviewPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	// Check for cancellation before processing
	if ctx.Err() != nil {
		return content
	}

	content = normalizeLineEndings(content)
	content = unfoldTabs(content)
	content = convertLineNumbers(content)
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// unfoldTabs flattens tabbed blocks. The header line becomes a bold label and
// the indented lines that follow lose one level of indentation. A block ends
// at the first non-blank line that is not indented.
func unfoldTabs(content string) string {
	lines := strings.Split(content, "\n")
	inTab := false

	for i, line := range lines {
		if m := tabHeader.FindStringSubmatch(line); m != nil {
			lines[i] = "**" + m[1] + "**"
			inTab = true
			continue
		}
		if !inTab {
			continue
		}
		switch {
		case strings.TrimSpace(line) == "":
			lines[i] = ""
		case strings.HasPrefix(line, tabIndent):
			lines[i] = line[len(tabIndent):]
		default:
			inTab = false
		}
	}
	return strings.Join(lines, "\n")
}

// convertLineNumbers rewrites linenums="N" fence options into the attribute
// form understood by goldmark-highlighting.
func convertLineNumbers(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if m := fenceLineNums.FindStringSubmatch(line); m != nil {
			lines[i] = m[1] + " {linenos=true}"
		}
	}
	return strings.Join(lines, "\n")
}
