package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// previewExt replaces markdown extensions in links between previews.
const previewExt = ".html"

// RewriteRelativePaths fixes relative references in a preview written away
// from its markdown source. If sourceDir is empty, returns the HTML unchanged.
//
// Rewrites:
//   - img[src]: relative paths become absolute file:// URLs under sourceDir
//   - a[href] to another markdown page: extension becomes .html, path stays
//     relative (previews mirror the source tree)
//   - other relative a[href]: absolute file:// URLs under sourceDir
//
// Absolute paths, URLs, anchors and paths escaping sourceDir are left alone.
func RewriteRelativePaths(htmlContent, sourceDir string) (string, error) {
	if sourceDir == "" {
		return htmlContent, nil
	}

	// Absolute base so file:// URLs and traversal checks agree
	absSourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	// Full preview documents and bare fragments parse differently
	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	rewriteNode(doc, absSourceDir)

	// Fragments render without the <html><body> wrapper html.Parse would add
	return renderHTML(doc, isFragment)
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Returns the parsed node, whether it was a fragment, and any error.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	// Full document: starts with <!DOCTYPE or <html
	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	// Fragment: parse with body context to avoid wrapping
	body := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}

	// Wrap nodes in a container for uniform traversal
	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderHTML renders the document back to string.
// For fragments, only renders the children (avoids adding <html><body> wrapper).
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	// Full document: render normally
	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// rewriteNode traverses the DOM and rewrites relative paths.
func rewriteNode(n *html.Node, sourceDir string) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			rewriteAttr(n, "src", sourceDir, false)
		case atom.A:
			rewriteAttr(n, "href", sourceDir, true)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, sourceDir)
	}
}

// rewriteAttr rewrites a single attribute if it's a relative path.
func rewriteAttr(n *html.Node, attrName, sourceDir string, pageLinks bool) {
	for i, attr := range n.Attr {
		if attr.Key != attrName || !isRelativePath(attr.Val) {
			continue
		}

		path, fragment := splitFragment(attr.Val)
		absPath := filepath.Join(sourceDir, filepath.FromSlash(path))
		// Security: never point outside the docs tree
		if !isPathUnderDir(absPath, sourceDir) {
			continue // leave original path
		}

		// Previews mirror the source tree, so page links stay relative
		if pageLinks && isMarkdownPath(path) {
			n.Attr[i].Val = strings.TrimSuffix(path, filepath.Ext(path)) + previewExt + fragment
			continue
		}
		// Convert to file:// URL (handles Windows paths correctly)
		n.Attr[i].Val = pathToFileURL(absPath) + fragment
	}
}

// splitFragment separates a trailing #anchor from a path.
func splitFragment(ref string) (path, fragment string) {
	if idx := strings.IndexByte(ref, '#'); idx != -1 {
		return ref[:idx], ref[idx:]
	}
	return ref, ""
}

func isMarkdownPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// isRelativePath returns true if the path should be rewritten.
func isRelativePath(path string) bool {
	// Skip empty values and anchors
	if path == "" || strings.HasPrefix(path, "#") {
		return false
	}

	// URLs (http, https, file, data, mailto, protocol-relative)
	if strings.HasPrefix(path, "//") {
		return false
	}
	// One-letter schemes are Windows drive letters, not URLs
	if u, err := url.Parse(path); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		return false
	}

	return !filepath.IsAbs(path) && !strings.HasPrefix(path, "/")
}

// isPathUnderDir checks if absPath is under dir (prevents path traversal).
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	// Trailing separator so /docs does not match /docs-old
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}

	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(absPath),
	}
	return u.String()
}
