package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-mdsnip/internal/config"
)

// envPrefix marks variables read by mdsnip.
const envPrefix = "MDSNIP_"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string // MDSNIP_CONFIG: config file name or path
	DocsDir    string // MDSNIP_DOCS_DIR: docs directory
	Language   string // MDSNIP_LANGUAGE: default fence language

	// Tier 2 - I/O
	InputDir  string   // MDSNIP_INPUT_DIR: default input directory
	OutputDir string   // MDSNIP_OUTPUT_DIR: default output directory
	Macros    []string // MDSNIP_MACROS: comma-separated macro names

	// Tier 3 - Extended
	Style   string // MDSNIP_STYLE: preview theme name or CSS path
	Workers int    // MDSNIP_WORKERS: parallel workers
}

// knownEnvVars lists valid MDSNIP_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"MDSNIP_CONFIG":   true,
	"MDSNIP_DOCS_DIR": true,
	"MDSNIP_LANGUAGE": true,
	// Tier 2 - I/O
	"MDSNIP_INPUT_DIR":  true,
	"MDSNIP_OUTPUT_DIR": true,
	"MDSNIP_MACROS":     true,
	// Tier 3 - Extended
	"MDSNIP_STYLE":   true,
	"MDSNIP_WORKERS": true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized MDSNIP_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		// Tier 1
		ConfigPath: os.Getenv("MDSNIP_CONFIG"),
		DocsDir:    os.Getenv("MDSNIP_DOCS_DIR"),
		Language:   os.Getenv("MDSNIP_LANGUAGE"),
		// Tier 2
		InputDir:  os.Getenv("MDSNIP_INPUT_DIR"),
		OutputDir: os.Getenv("MDSNIP_OUTPUT_DIR"),
		Macros:    splitList(os.Getenv("MDSNIP_MACROS")),
		// Tier 3
		Style: os.Getenv("MDSNIP_STYLE"),
	}

	// Invalid or non-positive values are ignored
	if workers := os.Getenv("MDSNIP_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// splitList splits a comma-separated value, dropping blank entries.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// warnUnknownEnvVars logs warnings for unrecognized MDSNIP_* variables.
// Helps catch typos like MDSNIP_DOC_DIR instead of MDSNIP_DOCS_DIR.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty,
// so a config file wins over the environment. CLI flags are merged
// afterwards and win over both.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	// Tier 1 - Snippet sources
	if env.DocsDir != "" && cfg.DocsDir == "" {
		cfg.DocsDir = env.DocsDir
	}
	if env.Language != "" && cfg.Language == "" {
		cfg.Language = env.Language
	}

	// Tier 2 - I/O
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if len(env.Macros) > 0 && len(cfg.Macros) == 0 {
		cfg.Macros = env.Macros
	}

	// Tier 3 - Preview
	if env.Style != "" && cfg.Preview.Style == "" {
		cfg.Preview.Style = env.Style
	}
}
