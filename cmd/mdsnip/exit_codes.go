package main

import (
	"errors"
	"os"

	mdsnip "github.com/alnah/go-mdsnip"
	"github.com/alnah/go-mdsnip/internal/config"
)

// Exit codes for the mdsnip CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess    = 0 // Every file rendered, every call resolved
	ExitGeneral    = 1 // General/unexpected error
	ExitUsage      = 2 // Invalid flags, config, or validation
	ExitIO         = 3 // File not found, permission denied
	ExitUnresolved = 4 // Snippet calls left as inline errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Unresolved snippets (exit 4)
	if errors.Is(err, ErrUnresolved) ||
		errors.Is(err, mdsnip.ErrFileNotFound) ||
		errors.Is(err, mdsnip.ErrSnippetStartNotFound) ||
		errors.Is(err, mdsnip.ErrSnippetEndNotFound) {
		return ExitUnresolved
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, mdsnip.ErrReadSource) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrOutputOverwrite) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrNoOutput) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, mdsnip.ErrEmptyMarkdown) ||
		errors.Is(err, mdsnip.ErrInvalidMacroName) ||
		errors.Is(err, mdsnip.ErrInvalidLanguage) ||
		errors.Is(err, mdsnip.ErrStyleNotFound) {
		return ExitUsage
	}

	return ExitGeneral
}
