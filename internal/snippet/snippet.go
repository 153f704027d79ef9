// Package snippet extracts marked regions from source text and formats them
// as fenced markdown code blocks.
//
// A region is delimited by a start marker "//[name" and the first end marker
// "//]" that follows it:
//
//	//[example cpp
//	    small::vector<int> v = {1, 2, 3};
//	//]
//
// Text on the start marker line after the name is the variant header. When
// present, the formatted block is emitted as a single tabbed entry.
package snippet

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Marker tokens.
const (
	StartMarker = "//["
	EndMarker   = "//]"
)

// Formatting constants.
const (
	// LineNumbersThreshold is the region line count (header line included)
	// above which the opening fence requests line numbers.
	LineNumbersThreshold = 10

	// MaxDedent caps the indentation removed from content lines.
	MaxDedent = 20

	tabIndent   = "    "
	fence       = "```"
	lineNumbers = ` linenums="1" `
)

// Sentinel errors for region lookup.
var (
	ErrStartNotFound = errors.New("snippet start marker not found")
	ErrEndNotFound   = errors.New("snippet end marker not found")
)

// Region returns the text strictly between the first "//[name" in content
// and the first "//]" after it. Later occurrences are never considered.
func Region(content, name string) (string, error) {
	start := strings.Index(content, StartMarker+name)
	if start < 0 {
		return "", ErrStartNotFound
	}
	bodyStart := start + len(StartMarker) + len(name)

	end := strings.Index(content[bodyStart:], EndMarker)
	if end < 0 {
		return "", ErrEndNotFound
	}
	return content[bodyStart : bodyStart+end], nil
}

// SplitLines splits text on \n, \r\n and \r. A trailing line terminator does
// not produce an empty final line, and empty text yields no lines.
// Form feeds, vertical tabs and Unicode line separators stay in the line.
func SplitLines(text string) []string {
	var lines []string
	for len(text) > 0 {
		i := strings.IndexAny(text, "\r\n")
		if i < 0 {
			lines = append(lines, text)
			break
		}
		lines = append(lines, text[:i])
		if text[i] == '\r' && i+1 < len(text) && text[i+1] == '\n' {
			i++
		}
		text = text[i+1:]
	}
	return lines
}

// IsBlank reports whether line is empty or whitespace only.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// Header returns the trimmed first line, or "" when it is blank.
func Header(firstLine string) string {
	if IsBlank(firstLine) {
		return ""
	}
	return strings.TrimSpace(firstLine)
}

// leadingWhitespace counts leading whitespace characters (not bytes).
func leadingWhitespace(line string) int {
	n := 0
	for _, r := range line {
		if !unicode.IsSpace(r) {
			break
		}
		n++
	}
	return n
}

// DedentWidth returns the smallest leading-whitespace width among non-blank
// lines, starting from MaxDedent. Blank lines are ignored.
func DedentWidth(lines []string) int {
	width := MaxDedent
	for _, line := range lines {
		if IsBlank(line) {
			continue
		}
		if n := leadingWhitespace(line); n < width {
			width = n
		}
	}
	return width
}

// TrimChars removes the first n characters of line. Lines shorter than n
// become empty.
func TrimChars(line string, n int) string {
	for i := 0; i < n; i++ {
		if line == "" {
			return ""
		}
		_, size := utf8.DecodeRuneInString(line)
		line = line[size:]
	}
	return line
}

// Block is a parsed marker region ready for formatting.
type Block struct {
	Header string   // variant header, "" if none
	Lines  []string // content lines after the header line, already dedented
	Total  int      // region line count including the header line
}

// Parse splits a region into header and dedented content lines.
func Parse(region string) Block {
	lines := SplitLines(region)
	if len(lines) == 0 {
		return Block{}
	}

	content := lines[1:]
	width := DedentWidth(content)
	out := make([]string, len(content))
	for i, line := range content {
		out[i] = TrimChars(line, width)
	}

	return Block{
		Header: Header(lines[0]),
		Lines:  out,
		Total:  len(lines),
	}
}

// Format renders b as a fenced code block tagged with language. A block with
// a header becomes one tabbed entry with every following line indented.
func (b Block) Format(language string) string {
	indent := ""
	var sb strings.Builder

	if b.Header != "" {
		indent = tabIndent
		sb.WriteString(`=== "`)
		sb.WriteString(b.Header)
		sb.WriteString("\"\n\n")
		sb.WriteString(indent)
	}

	sb.WriteString(fence)
	sb.WriteString(language)
	if b.Total > LineNumbersThreshold {
		sb.WriteString(lineNumbers)
	}
	sb.WriteByte('\n')

	for _, line := range b.Lines {
		sb.WriteString(indent)
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	sb.WriteString(indent)
	sb.WriteString(fence)
	sb.WriteByte('\n')
	return sb.String()
}

// Extract finds the named region in content and formats it.
func Extract(content, name, language string) (string, error) {
	region, err := Region(content, name)
	if err != nil {
		return "", err
	}
	return Parse(region).Format(language), nil
}

// WholeFile wraps content verbatim in a fenced block. Unlike Format, no
// newline follows the closing fence.
func WholeFile(content, language string) string {
	return fence + language + "\n" + content + "\n" + fence
}
