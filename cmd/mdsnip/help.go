package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdsnip <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Expand snippet calls in markdown files")
	fmt.Fprintln(w, "  extract    Print one snippet as a fenced code block")
	fmt.Fprintln(w, "  check      List unresolved snippet calls")
	fmt.Fprintln(w, "  config     Show the effective configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdsnip help <command>' for details on a specific command.")
}

// printCommonUsage prints the flags every command accepts.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show resolution details and timing")
	fmt.Fprintln(w, "      --no-color            Disable colored log output")
}

// printSourceUsage prints the snippet source flags.
func printSourceUsage(w io.Writer) {
	fmt.Fprintln(w, "Snippets:")
	fmt.Fprintln(w, "  -d, --docs-dir <dir>      Docs directory (default: docs)")
	fmt.Fprintln(w, "                            Files are tried under <dir>, <dir>/.. and <dir>/../examples")
	fmt.Fprintln(w, "  -l, --language <s>        Default fence language (default: cpp)")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdsnip render <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Expand {{ code_snippet(...) }} calls in markdown files.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (mirrors the input tree)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	printSourceUsage(w)
	fmt.Fprintln(w, "  -m, --macro <name>        Macro name to expand (repeatable, default: code_snippet)")
	fmt.Fprintln(w, "      --strict              Exit 4 when a call is unresolved")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Preview:")
	fmt.Fprintln(w, "      --html                Write an HTML preview alongside the markdown")
	fmt.Fprintln(w, "      --html-only           Write the HTML preview only")
	fmt.Fprintln(w, "      --style <s>           Theme name or CSS file path (default: github)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printExtractUsage prints usage for the extract command.
func printExtractUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdsnip extract <filename> [snippet] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print a snippet as a fenced code block. Without a snippet name the")
	fmt.Fprintln(w, "whole file is printed. Exits 4 when the snippet cannot be resolved.")
	fmt.Fprintln(w)
	printSourceUsage(w)
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printCheckUsage prints usage for the check command.
func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdsnip check <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List every unresolved snippet call as path:line: message.")
	fmt.Fprintln(w, "Exits 4 when any call is unresolved.")
	fmt.Fprintln(w)
	printSourceUsage(w)
	fmt.Fprintln(w, "  -m, --macro <name>        Macro name to check (repeatable, default: code_snippet)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdsnip config [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the effective configuration as YAML after applying the config")
	fmt.Fprintln(w, "file, MDSNIP_* environment variables and defaults.")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "extract":
		printExtractUsage(env.Stdout)
	case "check":
		printCheckUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdsnip version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdsnip help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return nil
}
