package main

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	mdsnip "github.com/alnah/go-mdsnip"
	"github.com/alnah/go-mdsnip/internal/assets"
	"github.com/alnah/go-mdsnip/internal/config"
	"github.com/alnah/go-mdsnip/internal/hints"
	"github.com/alnah/go-mdsnip/internal/logging"
)

// loadConfig builds the configuration for one command: the --config file
// (or MDSNIP_CONFIG, or env.Config when neither is set), with environment
// values filling the fields it leaves empty. Defaults are not applied yet
// so CLI flags can still be merged.
func loadConfig(configFlag string, env *Environment) (*config.Config, *envConfig, error) {
	envCfg := loadEnvConfig()

	name := configFlag
	if name == "" {
		name = envCfg.ConfigPath
	}

	var cfg *config.Config
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = cloneConfig(env.Config)
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, envCfg, nil
}

// cloneConfig copies cfg so commands never mutate the shared base.
func cloneConfig(cfg *config.Config) *config.Config {
	if cfg == nil {
		return config.DefaultConfig()
	}
	c := *cfg
	c.Macros = append([]string(nil), cfg.Macros...)
	return &c
}

// mergeSourceFlags merges snippet flags into config. CLI values override config values.
func mergeSourceFlags(flags sourceFlags, macros []string, cfg *config.Config) {
	if flags.docsDir != "" {
		cfg.DocsDir = flags.docsDir
	}
	if flags.language != "" {
		cfg.Language = flags.language
	}
	if len(macros) > 0 {
		cfg.Macros = macros
	}
}

// finalizeConfig fills defaults and validates the merged configuration.
func finalizeConfig(cfg *config.Config) error {
	cfg.ApplyDefaults()
	return cfg.Validate()
}

// newLogger creates the stderr logger for a command.
func newLogger(flags commonFlags, env *Environment) zerolog.Logger {
	return logging.New(env.Stderr, logging.Options{
		Verbose: flags.verbose,
		Quiet:   flags.quiet,
		NoColor: flags.noColor,
	})
}

// newExtractor creates an Extractor from a finalized config.
func newExtractor(cfg *config.Config, logger zerolog.Logger) *mdsnip.Extractor {
	return mdsnip.NewExtractor(
		mdsnip.WithConfig(mdsnip.Config{
			DocsDir:  cfg.DocsDir,
			Language: cfg.Language,
		}),
		mdsnip.WithLogger(logger),
	)
}

// newRenderer creates a Renderer bound to cfg's macros and preview style.
func newRenderer(cfg *config.Config, logger zerolog.Logger) (*mdsnip.Renderer, error) {
	renderer, err := mdsnip.NewRenderer(
		mdsnip.WithExtractor(newExtractor(cfg, logger)),
		mdsnip.WithMacroNames(cfg.Macros...),
		mdsnip.WithRenderLogger(logger),
		mdsnip.WithPreviewStyle(cfg.Preview.Style),
	)
	if err != nil {
		if errors.Is(err, mdsnip.ErrStyleNotFound) {
			return nil, fmt.Errorf("%w%s", err, hints.ForStyleNotFound(assets.Styles()))
		}
		return nil, err
	}
	return renderer, nil
}
