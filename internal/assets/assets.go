package assets

import (
	"embed"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is the chroma theme used when none is configured.
const DefaultStyle = "github"

//go:embed styles/*
var embedded embed.FS

// BaseCSS returns the embedded layout stylesheet shared by every theme.
func BaseCSS() string {
	content, err := embedded.ReadFile("styles/base.css")
	if err != nil {
		// Embedded at compile time; unreachable unless the build is broken.
		panic(fmt.Sprintf("assets: missing embedded base.css: %v", err))
	}
	return string(content)
}

// Styles returns the sorted names of every available chroma theme.
func Styles() []string {
	return styles.Names()
}

// LoadStyle returns the preview stylesheet for nameOrPath.
// An empty value selects DefaultStyle. Paths (see IsStylePath) are read
// from disk and returned unchanged; names select a chroma theme.
func LoadStyle(nameOrPath string) (string, error) {
	if nameOrPath == "" {
		nameOrPath = DefaultStyle
	}
	if IsStylePath(nameOrPath) {
		return LoadCSSFile(nameOrPath)
	}
	return LoadTheme(nameOrPath)
}

// LoadTheme returns base.css followed by the chroma class rules for name.
func LoadTheme(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	style, ok := styles.Registry[name]
	if !ok {
		style, ok = styles.Registry[strings.ToLower(name)]
	}
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}

	var b strings.Builder
	b.WriteString(BaseCSS())
	b.WriteString("\n")

	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&b, style); err != nil {
		return "", fmt.Errorf("%w: theme %q: %v", ErrAssetRead, name, err)
	}
	return b.String(), nil
}
