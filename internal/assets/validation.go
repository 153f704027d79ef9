package assets

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdsnip/internal/fileutil"
)

// ValidateAssetName checks that a theme name is safe to look up.
// Returns ErrInvalidAssetName if the name is empty, contains path
// separators or dots, or contains whitespace.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\. \t\n") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// IsStylePath reports whether value names a CSS file rather than a theme.
func IsStylePath(value string) bool {
	return fileutil.IsFilePath(value) || strings.EqualFold(filepath.Ext(value), ".css")
}
