package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	catalogue "github.com/alnah/go-catalogue"
	"github.com/alnah/go-catalogue/internal/fileutil"
)

// runIndex builds a search index from a JSON document list or from a
// directory of Markdown pages.
func runIndex(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseIndexFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	if len(positional) != 1 {
		return ErrNoInput
	}

	s, err := newSession(&flags.common, env)
	if err != nil {
		return err
	}
	defer s.close()

	docs, err := loadDocuments(ctx, s.cat, positional[0])
	if err != nil {
		return err
	}

	if flags.query != "" {
		return searchDocuments(ctx, s, docs, flags.query, flags.limit, env.Stdout)
	}

	out, err := s.cat.CreateIndex(docs)
	if err != nil {
		return err
	}
	s.logger.Debug("index created", zap.Int("bytes", len(out)))
	return writeOutput(flags.output, out, env.Stdout)
}

// loadDocuments returns the JSON document list at path. A directory is
// rendered page by page into documents first.
func loadDocuments(ctx context.Context, cat *catalogue.Catalogue, path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
		}
		return data, nil
	}

	files, err := discoverFiles(path, "")
	if err != nil {
		return nil, fmt.Errorf("discovering files: %w", err)
	}

	docs := make([]catalogue.Document, 0, len(files))
	for _, f := range files {
		content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
		}
		res, err := cat.Render(ctx, f.Page, string(content))
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", f.InputPath, err)
		}
		href, err := fileutil.ReplaceExt(f.Page, "html")
		if err != nil {
			return nil, err
		}
		title := f.Page
		if len(res.Headings) > 0 {
			title = res.Headings[0].Title
		}
		docs = append(docs, catalogue.Document{ID: catalogue.DocID(f.Page), Title: title, Body: res.HTML, Href: href})
	}
	return json.Marshal(docs)
}

// searchDocuments indexes docs and prints the hits for query.
func searchDocuments(ctx context.Context, s *session, docs []byte, query string, limit int, w io.Writer) error {
	x, err := s.cat.BuildIndex(docs)
	if err != nil {
		return err
	}
	defer func() { _ = x.Close() }()

	hits, err := x.Search(ctx, query, limit)
	if err != nil {
		return err
	}
	if len(hits) == 0 {
		fmt.Fprintf(w, "No results for %q\n", query)
		return nil
	}
	for _, h := range hits {
		fmt.Fprintf(w, "%.3f\t%s\t%s\n", h.Score, h.Href, h.Title)
	}
	return nil
}

// writeOutput writes data to path, or to w when path is empty.
func writeOutput(path string, data []byte, w io.Writer) error {
	if path == "" {
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		if len(data) > 0 && data[len(data)-1] != '\n' {
			_, _ = io.WriteString(w, "\n")
		}
		return nil
	}
	if err := fileutil.WriteFile(path, data, filePermissions, dirPermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}
