package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
)

// Sentinel errors for command dispatch.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrUnknownCommand = errors.New("unknown command")
)

// commands lists the subcommands runMain dispatches.
var commands = map[string]bool{
	"render":  true,
	"extract": true,
	"check":   true,
	"config":  true,
	"version": true,
	"help":    true,
}

// isCommand reports whether s names a subcommand.
func isCommand(s string) bool {
	return commands[s]
}

// runMain runs the CLI and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	if !isCommand(cmd) && cmd != "-h" && cmd != "--help" {
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	warnUnknownEnvVars(env.Stderr)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	var err error
	switch cmd {
	case "render":
		err = runRender(ctx, rest, env)
	case "extract":
		err = runExtract(rest, env)
	case "check":
		err = runCheck(ctx, rest, env)
	case "config":
		err = runConfig(rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "mdsnip %s\n", Version)
	default:
		err = runHelp(rest, env)
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}
