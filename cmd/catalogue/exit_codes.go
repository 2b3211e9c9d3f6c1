package main

import (
	"errors"
	"os"

	flag "github.com/spf13/pflag"

	catalogue "github.com/alnah/go-catalogue"
	"github.com/alnah/go-catalogue/internal/config"
	"github.com/alnah/go-catalogue/internal/logging"
	"github.com/alnah/go-catalogue/internal/search"
	"github.com/alnah/go-catalogue/internal/tmpl"
)

// Exit codes for the catalogue CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or input
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, flag.ErrHelp) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, logging.ErrUnknownLevel) ||
		errors.Is(err, logging.ErrUnknownFormat) ||
		errors.Is(err, catalogue.ErrInvalidConfig) ||
		errors.Is(err, catalogue.ErrInvalidAssetPath) ||
		errors.Is(err, search.ErrInvalidDocuments) ||
		errors.Is(err, search.ErrMissingID) ||
		errors.Is(err, tmpl.ErrCompile) ||
		errors.Is(err, tmpl.ErrData) ||
		errors.Is(err, tmpl.ErrNotFound) {
		return ExitUsage
	}

	return ExitGeneral
}
