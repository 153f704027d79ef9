package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	mdsnip "github.com/alnah/go-mdsnip"
	"github.com/alnah/go-mdsnip/internal/hints"
)

// runExtract prints one snippet. An unresolved snippet still prints its
// inline error markup, then fails with the lookup error.
func runExtract(args []string, env *Environment) error {
	flags, positional, err := parseExtractFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) == 0 || len(positional) > 2 {
		return fmt.Errorf("%w: extract takes <filename> [snippet]", ErrUsage)
	}

	cfg, _, err := loadConfig(flags.common.config, env)
	if err != nil {
		return err
	}
	mergeSourceFlags(flags.source, nil, cfg)
	if err := finalizeConfig(cfg); err != nil {
		return err
	}

	extractor := newExtractor(cfg, newLogger(flags.common, env))

	req := mdsnip.Request{Filename: positional[0]}
	if len(positional) == 2 {
		req.Snippet = positional[1]
	}

	block, err := extractor.Lookup(req)
	if err != nil {
		printBlock(env.Stdout, mdsnip.InlineError(req, err))
		return fmt.Errorf("%w%s", err, lookupHint(extractor, req, err))
	}

	printBlock(env.Stdout, block)
	return nil
}

// printBlock writes block followed by exactly one newline.
func printBlock(w io.Writer, block string) {
	fmt.Fprint(w, block)
	if !strings.HasSuffix(block, "\n") {
		fmt.Fprintln(w)
	}
}

// lookupHint returns the hint matching a Lookup error.
func lookupHint(extractor *mdsnip.Extractor, req mdsnip.Request, err error) string {
	switch {
	case errors.Is(err, mdsnip.ErrFileNotFound):
		return hints.ForFileNotFound(extractor.Candidates(req.Filename))
	case errors.Is(err, mdsnip.ErrSnippetStartNotFound), errors.Is(err, mdsnip.ErrSnippetEndNotFound):
		return hints.ForSnippetNotFound(req.Snippet)
	}
	return ""
}
