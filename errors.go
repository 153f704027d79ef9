package mdsnip

import "errors"

// Sentinel errors for library operations.
var (
	ErrFileNotFound         = errors.New("file not found")
	ErrSnippetStartNotFound = errors.New("snippet start marker not found")
	ErrSnippetEndNotFound   = errors.New("snippet end marker not found")
	ErrReadSource           = errors.New("failed to read source file")

	ErrEmptyMarkdown  = errors.New("markdown content cannot be empty")
	ErrHTMLConversion = errors.New("HTML conversion failed")

	// Configuration errors.
	ErrInvalidMacroName = errors.New("invalid macro name")
	ErrInvalidLanguage  = errors.New("invalid language tag")
	ErrStyleNotFound    = errors.New("style not found")
)
