package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/alnah/go-catalogue/internal/fileutil"
)

// maxWorkers bounds the --workers flag.
const maxWorkers = 32

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

var markdownExts = []string{".md", ".markdown"}

// pageFile is a Markdown file to render.
type pageFile struct {
	InputPath  string
	OutputPath string
	Page       string // heading anchor prefix
}

// discoverFiles finds the Markdown files under inputPath. Page names are the
// slash-separated paths relative to inputPath, without extension.
func discoverFiles(inputPath, outputDir string) ([]pageFile, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !fileutil.HasExt(inputPath, markdownExts...) {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(inputPath))
		}
		out, err := resolveOutputPath(inputPath, outputDir, "")
		if err != nil {
			return nil, err
		}
		return []pageFile{{InputPath: inputPath, OutputPath: out, Page: pageName(filepath.Base(inputPath))}}, nil
	}

	var files []pageFile
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !fileutil.HasExt(path, markdownExts...) {
			return nil
		}
		out, err := resolveOutputPath(path, outputDir, inputPath)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(inputPath, path)
		if err != nil {
			rel = filepath.Base(path)
		}
		files = append(files, pageFile{InputPath: path, OutputPath: out, Page: pageName(rel)})
		return nil
	})

	return files, err
}

// pageName turns a relative file path into a page name: docs/intro.md
// becomes docs/intro.
func pageName(rel string) string {
	rel = filepath.ToSlash(rel)
	return strings.TrimSuffix(rel, filepath.Ext(rel))
}

// resolveOutputPath determines the HTML output path for a Markdown file.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) (string, error) {
	html, err := fileutil.ReplaceExt(filepath.Base(inputPath), "html")
	if err != nil {
		return "", err
	}

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), html), nil
	}

	if fileutil.HasExt(outputDir, ".html", ".htm") {
		return outputDir, nil
	}

	if baseInputDir != "" {
		if relPath, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), html), nil
		}
	}

	return filepath.Join(outputDir, html), nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > maxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, maxWorkers)
	}
	return nil
}

// resolveWorkers determines the number of render workers.
// Priority: explicit value > GOMAXPROCS-based calculation.
func resolveWorkers(n int) int {
	if n > 0 {
		return n
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	n = runtime.GOMAXPROCS(0) / 2

	// Minimum 1, maximum 8
	if n < 1 {
		return 1
	}
	if n > 8 {
		return 8
	}
	return n
}
