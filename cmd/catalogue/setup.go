package main

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	catalogue "github.com/alnah/go-catalogue"
	"github.com/alnah/go-catalogue/internal/config"
	"github.com/alnah/go-catalogue/internal/logging"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage       = errors.New("invalid usage")
	ErrNoInput     = errors.New("no input specified")
	ErrReadInput   = errors.New("failed to read input")
	ErrWriteOutput = errors.New("failed to write output")
)

// usageError marks a flag parsing error. pflag.ErrHelp stays matchable.
func usageError(err error) error {
	return fmt.Errorf("%w: %w", ErrUsage, err)
}

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// session is what every command needs: the merged configuration, a logger
// and a Catalogue built from both.
type session struct {
	cfg    *config.Config
	logger *zap.Logger
	cat    *catalogue.Catalogue
	env    *envOverrides
}

// loadConfig resolves the configuration.
// Precedence: flags > environment > config file > defaults.
func loadConfig(flags *commonFlags, env *Environment) (*config.Config, *envOverrides, error) {
	overrides := loadEnvOverrides(env.Getenv)

	source := flags.config
	if source == "" {
		source = overrides.ConfigPath
	}

	cfg := config.DefaultConfig()
	if source != "" {
		var err error
		cfg, err = config.LoadConfig(source)
		if err != nil {
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}
	}

	overrides.apply(cfg)
	mergeFlags(flags, cfg)
	return cfg, overrides, nil
}

// mergeFlags applies explicitly set flags to cfg.
func mergeFlags(flags *commonFlags, cfg *config.Config) {
	if flags.assetPath != "" {
		cfg.Assets.BasePath = flags.assetPath
	}
	if flags.engine != "" {
		cfg.Templates.Engine = flags.engine
	}
	if flags.highlight != "" {
		cfg.Highlight.Style = flags.highlight
	}
	if flags.logFormat != "" {
		cfg.Log.Format = flags.logFormat
	}
	switch {
	case flags.verbose:
		cfg.Log.Level = "debug"
	case flags.quiet:
		cfg.Log.Level = "error"
	}
}

// newSession loads the configuration and builds the Catalogue.
func newSession(flags *commonFlags, env *Environment) (*session, error) {
	if env.Environ != nil {
		warnUnknownEnvVars(env.Stderr, env.Environ())
	}

	cfg, overrides, err := loadConfig(flags, env)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log, env.Stderr)
	if err != nil {
		return nil, fmt.Errorf("configuring logger: %w", err)
	}

	cat, err := catalogue.New(catalogue.WithConfig(cfg), catalogue.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, logger: logger, cat: cat, env: overrides}, nil
}

// close flushes buffered log entries.
func (s *session) close() {
	_ = s.logger.Sync()
}
