package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/alnah/go-mdsnip/internal/config"
	"github.com/alnah/go-mdsnip/internal/hints"
)

// Sentinel errors for the render command.
var (
	ErrNoInput    = errors.New("no input specified")
	ErrNoOutput   = errors.New("no output directory specified")
	ErrUnresolved = errors.New("unresolved snippet calls")
)

// runRender orchestrates the render command.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, envCfg, err := loadConfig(flags.common.config, env)
	if err != nil {
		return err
	}
	mergeRenderFlags(flags, cfg)
	if err := finalizeConfig(cfg); err != nil {
		return err
	}

	logger := newLogger(flags.common, env)

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}

	outputDir := resolveOutputDir(flags.output, cfg)
	if outputDir == "" && !flags.htmlOnly {
		return fmt.Errorf("%w: use --output or output.defaultDir (sources are never overwritten)", ErrNoOutput)
	}

	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, inputPath)
	}

	renderer, err := newRenderer(cfg, logger)
	if err != nil {
		return err
	}

	params := &renderParams{
		renderer: renderer,
		html:     flags.html || cfg.Preview.Enabled,
		htmlOnly: flags.htmlOnly,
	}

	workers := resolveWorkers(flags.workers, envCfg.Workers)
	logger.Debug().Int("files", len(files)).Int("workers", workers).Msg("rendering")

	results := renderBatch(ctx, workers, files, params)

	summary := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if summary.Failed > 0 {
		return fmt.Errorf("%d file(s) failed", summary.Failed)
	}

	if summary.Unresolved > 0 {
		if flags.strict {
			return fmt.Errorf("%w: %d", ErrUnresolved, summary.Unresolved)
		}
		if !flags.common.quiet {
			fmt.Fprintf(env.Stderr, "warning: %d unresolved snippet call(s)%s\n", summary.Unresolved, hints.ForUnresolved())
		}
	}

	return nil
}

// mergeRenderFlags merges render flags into config. CLI values override config values.
func mergeRenderFlags(flags *renderFlags, cfg *config.Config) {
	mergeSourceFlags(flags.source, flags.macros, cfg)
	if flags.style != "" {
		cfg.Preview.Style = flags.style
	}
	if flags.html || flags.htmlOnly {
		cfg.Preview.Enabled = true
	}
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}
