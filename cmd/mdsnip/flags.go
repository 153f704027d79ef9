package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	noColor bool
}

// sourceFlags locate snippet sources and set the fence language.
type sourceFlags struct {
	docsDir  string
	language string
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common   commonFlags
	source   sourceFlags
	macros   []string
	output   string
	workers  int
	html     bool // write a preview next to the markdown
	htmlOnly bool // write the preview only
	style    string
	strict   bool
}

// extractFlags holds flags for the extract command.
type extractFlags struct {
	common commonFlags
	source sourceFlags
}

// checkFlags holds flags for the check command.
type checkFlags struct {
	common commonFlags
	source sourceFlags
	macros []string
}

// configFlags holds flags for the config command.
type configFlags struct {
	common commonFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show resolution details and timing")
	fs.BoolVar(&f.noColor, "no-color", false, "disable colored log output")
}

// addSourceFlags adds snippet source flags to a FlagSet.
func addSourceFlags(fs *flag.FlagSet, f *sourceFlags) {
	fs.StringVarP(&f.docsDir, "docs-dir", "d", "", "docs directory for snippet paths")
	fs.StringVarP(&f.language, "language", "l", "", "default fence language")
}

// addMacroFlag adds the repeatable --macro flag to a FlagSet.
func addMacroFlag(fs *flag.FlagSet, macros *[]string) {
	fs.StringSliceVarP(macros, "macro", "m", nil, "macro name bound to the extractor (repeatable)")
}

// newFlagSet creates a FlagSet that reports errors and usage to w.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseError wraps flag parse failures so they map to ExitUsage.
// flag.ErrHelp passes through untouched.
func parseError(err error) error {
	if err == flag.ErrHelp {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, w io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newFlagSet("render", w, printRenderUsage)

	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.html, "html", false, "write an HTML preview alongside the markdown")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "write the HTML preview only")
	fs.StringVar(&f.style, "style", "", "preview theme name or CSS file path")
	fs.BoolVar(&f.strict, "strict", false, "fail when a snippet call is unresolved")

	addCommonFlags(fs, &f.common)
	addSourceFlags(fs, &f.source)
	addMacroFlag(fs, &f.macros)

	if err := fs.Parse(args); err != nil {
		return nil, nil, parseError(err)
	}
	return f, fs.Args(), nil
}

// parseExtractFlags parses extract command flags and returns positional args.
func parseExtractFlags(args []string, w io.Writer) (*extractFlags, []string, error) {
	f := &extractFlags{}
	fs := newFlagSet("extract", w, printExtractUsage)

	addCommonFlags(fs, &f.common)
	addSourceFlags(fs, &f.source)

	if err := fs.Parse(args); err != nil {
		return nil, nil, parseError(err)
	}
	return f, fs.Args(), nil
}

// parseCheckFlags parses check command flags and returns positional args.
func parseCheckFlags(args []string, w io.Writer) (*checkFlags, []string, error) {
	f := &checkFlags{}
	fs := newFlagSet("check", w, printCheckUsage)

	addCommonFlags(fs, &f.common)
	addSourceFlags(fs, &f.source)
	addMacroFlag(fs, &f.macros)

	if err := fs.Parse(args); err != nil {
		return nil, nil, parseError(err)
	}
	return f, fs.Args(), nil
}

// parseConfigFlags parses config command flags.
func parseConfigFlags(args []string, w io.Writer) (*configFlags, []string, error) {
	f := &configFlags{}
	fs := newFlagSet("config", w, printConfigUsage)

	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, parseError(err)
	}
	return f, fs.Args(), nil
}
