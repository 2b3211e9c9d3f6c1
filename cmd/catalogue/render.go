package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	catalogue "github.com/alnah/go-catalogue"
	"github.com/alnah/go-catalogue/internal/fileutil"
	"github.com/alnah/go-catalogue/internal/headings"
)

// PageRenderer is the part of the Catalogue the render command uses.
type PageRenderer interface {
	Render(ctx context.Context, page, content string) (*catalogue.Result, error)
	Wrap(ctx context.Context, title string, res *catalogue.Result) (string, error)
}

// Compile-time interface implementation check.
var _ PageRenderer = (*catalogue.Catalogue)(nil)

// renderParams groups parameters shared across the batch.
type renderParams struct {
	standalone bool
	headings   bool
	title      string
}

// RenderResult holds the outcome of a single page.
type RenderResult struct {
	InputPath  string
	OutputPath string
	Headings   int
	Err        error
	Duration   time.Duration
}

// runRender renders Markdown files to HTML.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	if len(positional) == 0 {
		return ErrNoInput
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected one input, got %d", ErrUsage, len(positional))
	}

	s, err := newSession(&flags.common, env)
	if err != nil {
		return err
	}
	defer s.close()

	files, err := discoverFiles(positional[0], flags.output)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		fmt.Fprintf(env.Stderr, "No markdown files found in %s\n", positional[0])
		return nil
	}
	if flags.page != "" {
		if len(files) > 1 {
			return fmt.Errorf("%w: --page needs a single input file", ErrUsage)
		}
		files[0].Page = flags.page
	}

	workers := flags.workers
	if workers == 0 {
		workers = s.env.Workers
	}
	workers = resolveWorkers(workers)
	s.logger.Debug("rendering", zap.Int("files", len(files)), zap.Int("workers", workers))

	params := &renderParams{
		standalone: flags.standalone,
		headings:   flags.headings,
		title:      flags.title,
	}
	results := renderBatch(ctx, s.cat, files, workers, params)

	if failed := printResults(results, flags.common.quiet, flags.common.verbose, env); failed > 0 {
		return fmt.Errorf("%d page(s) failed", failed)
	}
	return nil
}

// renderBatch renders files concurrently with a fixed number of workers.
// Results keep the order of files.
func renderBatch(ctx context.Context, r PageRenderer, files []pageFile, workers int, params *renderParams) []RenderResult {
	if len(files) == 0 {
		return nil
	}
	if workers > len(files) {
		workers = len(files)
	}

	results := make([]RenderResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = RenderResult{InputPath: files[idx].InputPath, Err: ctx.Err()}
					continue
				}
				results[idx] = renderFile(ctx, r, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// renderFile renders a single page and writes its outputs.
func renderFile(ctx context.Context, r PageRenderer, f pageFile, params *renderParams) RenderResult {
	start := time.Now()
	result := RenderResult{InputPath: f.InputPath, OutputPath: f.OutputPath}
	fail := func(err error) RenderResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadInput, err))
	}

	res, err := r.Render(ctx, f.Page, string(content))
	if err != nil {
		return fail(err)
	}
	result.Headings = len(res.Headings)

	out := res.HTML
	if params.standalone {
		out, err = r.Wrap(ctx, params.title, res)
		if err != nil {
			return fail(err)
		}
	}

	if err := fileutil.WriteFile(f.OutputPath, []byte(out), filePermissions, dirPermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}

	if params.headings {
		data, err := headings.Marshal(res.Headings)
		if err != nil {
			return fail(err)
		}
		path, err := fileutil.ReplaceExt(f.OutputPath, "headings.json")
		if err != nil {
			return fail(err)
		}
		if err := fileutil.WriteFile(path, data, filePermissions, dirPermissions); err != nil {
			return fail(fmt.Errorf("%w: %v", ErrWriteOutput, err))
		}
	}

	result.Duration = time.Since(start)
	return result
}

// ResultSummary holds the count of succeeded and failed pages.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed pages.
func countResults(results []RenderResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs render results and returns the failure count.
func printResults(results []RenderResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d headings, %v)\n", r.InputPath, r.OutputPath, r.Headings, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
