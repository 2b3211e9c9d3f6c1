package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: catalogue <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render       Render markdown pages to HTML")
	fmt.Fprintln(w, "  index        Build or query a search index")
	fmt.Fprintln(w, "  transform    Apply a template to JSON data")
	fmt.Fprintln(w, "  css          Write the stylesheet")
	fmt.Fprintln(w, "  version      Show version information")
	fmt.Fprintln(w, "  help         Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'catalogue help <command>' for details on a specific command.")
}

// printCommonUsage prints the flags shared by every command.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w, "      --engine <s>          Template engine: handlebars, gotemplate")
	fmt.Fprintln(w, "      --log-format <s>      Log format: console, json")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  CATALOGUE_CONFIG, CATALOGUE_ASSET_PATH, CATALOGUE_ENGINE,")
	fmt.Fprintln(w, "  CATALOGUE_LOG_LEVEL, CATALOGUE_LOG_FORMAT, CATALOGUE_WORKERS")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: catalogue render <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render markdown files to HTML. Heading anchors are prefixed with the")
	fmt.Fprintln(w, "page name, the file path relative to <input> without extension.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --page <name>         Page name (single file only)")
	fmt.Fprintln(w, "  -s, --standalone          Write complete HTML documents")
	fmt.Fprintln(w, "      --title <s>           Document title (\"\" = first heading)")
	fmt.Fprintln(w, "      --highlight-style <s> Highlighting style for --standalone")
	fmt.Fprintln(w, "      --headings            Write <page>.headings.json")
	printCommonUsage(w)
}

// printIndexUsage prints usage for the index command.
func printIndexUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: catalogue index <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build a search index. <input> is a JSON array of")
	fmt.Fprintln(w, "{id, title, body, href} documents or a directory of markdown pages.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: stdout)")
	fmt.Fprintln(w, "      --query <q>           Print the hits for q instead of the index")
	fmt.Fprintln(w, "  -n, --limit <n>           Maximum number of hits")
	printCommonUsage(w)
}

// printTransformUsage prints usage for the transform command.
func printTransformUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: catalogue transform <template> [flags]")
	fmt.Fprintln(w, "       catalogue transform --name <template> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Apply a template file, or a named template from the asset set, to JSON data.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: stdout)")
	fmt.Fprintln(w, "      --name <s>            Named template (card, results, ...)")
	fmt.Fprintln(w, "  -d, --data <path>         JSON data file (\"-\" = stdin)")
	printCommonUsage(w)
}

// printCSSUsage prints usage for the css command.
func printCSSUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: catalogue css [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write the catalogue stylesheet followed by the highlighting rules.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: stdout)")
	fmt.Fprintln(w, "      --style <s>           Highlighting style (default: github)")
	printCommonUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "index":
		printIndexUsage(env.Stdout)
	case "transform":
		printTransformUsage(env.Stdout)
	case "css":
		printCSSUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: catalogue version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: catalogue help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
