package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config    string
	assetPath string
	engine    string
	logFormat string
	highlight string
	quiet     bool
	verbose   bool
}

// renderFlags holds flags for the render command.
type renderFlags struct {
	common     commonFlags
	output     string
	workers    int
	page       string
	title      string
	standalone bool
	headings   bool
}

// indexFlags holds flags for the index command.
type indexFlags struct {
	common commonFlags
	output string
	query  string
	limit  int
}

// transformFlags holds flags for the transform command.
type transformFlags struct {
	common commonFlags
	output string
	name   string
	data   string
}

// cssFlags holds flags for the css command.
type cssFlags struct {
	common commonFlags
	output string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVar(&f.engine, "engine", "", "template engine: handlebars, gotemplate")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: console, json")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

// newFlagSet returns a FlagSet that reports errors instead of exiting.
func newFlagSet(name string, usage func(io.Writer), stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }
	return fs
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, stderr io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newFlagSet("render", printRenderUsage, stderr)

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVar(&f.page, "page", "", "page name for heading anchors (single file only)")
	fs.StringVar(&f.title, "title", "", "document title (\"\" = first heading)")
	fs.BoolVarP(&f.standalone, "standalone", "s", false, "write complete HTML documents")
	fs.BoolVar(&f.headings, "headings", false, "write headings JSON next to each page")
	fs.StringVar(&f.common.highlight, "highlight-style", "", "highlighting style for --standalone")
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseIndexFlags parses index command flags and returns positional args.
func parseIndexFlags(args []string, stderr io.Writer) (*indexFlags, []string, error) {
	f := &indexFlags{}
	fs := newFlagSet("index", printIndexUsage, stderr)

	fs.StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	fs.StringVar(&f.query, "query", "", "search the documents instead of exporting the index")
	fs.IntVarP(&f.limit, "limit", "n", 0, "maximum number of hits (0 = default)")
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseTransformFlags parses transform command flags and returns positional args.
func parseTransformFlags(args []string, stderr io.Writer) (*transformFlags, []string, error) {
	f := &transformFlags{}
	fs := newFlagSet("transform", printTransformUsage, stderr)

	fs.StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	fs.StringVar(&f.name, "name", "", "use the named template from the asset set")
	fs.StringVarP(&f.data, "data", "d", "", "JSON data file (\"-\" or empty = stdin)")
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseCSSFlags parses css command flags and returns positional args.
func parseCSSFlags(args []string, stderr io.Writer) (*cssFlags, []string, error) {
	f := &cssFlags{}
	fs := newFlagSet("css", printCSSUsage, stderr)

	fs.StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	fs.StringVar(&f.common.highlight, "style", "", "highlighting style (default: github)")
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
