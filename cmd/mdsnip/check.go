package main

import (
	"context"
	"fmt"
	"os"

	mdsnip "github.com/alnah/go-mdsnip"
)

// runCheck lists unresolved snippet calls without writing anything.
func runCheck(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseCheckFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, _, err := loadConfig(flags.common.config, env)
	if err != nil {
		return err
	}
	mergeSourceFlags(flags.source, flags.macros, cfg)
	if err := finalizeConfig(cfg); err != nil {
		return err
	}

	logger := newLogger(flags.common, env)

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}

	files, err := discoverFiles(inputPath, "")
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, inputPath)
	}

	// No preview is built, so the style is irrelevant here.
	checker, err := mdsnip.NewRenderer(
		mdsnip.WithExtractor(newExtractor(cfg, logger)),
		mdsnip.WithMacroNames(cfg.Macros...),
		mdsnip.WithRenderLogger(logger),
	)
	if err != nil {
		return err
	}

	unresolved := 0
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
		if err != nil {
			return fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		}

		issues, err := checker.Check(ctx, string(content))
		if err != nil {
			return fmt.Errorf("checking %s: %w", f.InputPath, err)
		}
		printIssues(env.Stdout, f.InputPath, issues)
		unresolved += len(issues)
	}

	if unresolved > 0 {
		return fmt.Errorf("%w: %d in %d file(s)", ErrUnresolved, unresolved, len(files))
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "%d file(s) checked, all snippets resolved\n", len(files))
	}
	return nil
}
