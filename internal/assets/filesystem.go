package assets

import (
	"fmt"
	"os"
	"path/filepath"
)

// MaxCSSSize is the largest user stylesheet accepted (1MB).
const MaxCSSSize = 1 << 20

// LoadCSSFile reads a user stylesheet from disk.
// Returns ErrAssetRead if the file cannot be read or is a directory,
// ErrAssetTooLarge if it exceeds MaxCSSSize.
func LoadCSSFile(path string) (string, error) {
	cleanPath := filepath.Clean(path)

	info, err := os.Stat(cleanPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrAssetRead, cleanPath)
	}
	if info.Size() > MaxCSSSize {
		return "", fmt.Errorf("%w: %s is %d bytes, limit %d", ErrAssetTooLarge, cleanPath, info.Size(), MaxCSSSize)
	}

	content, err := os.ReadFile(cleanPath) // #nosec G304 -- user-provided stylesheet path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(content), nil
}
