package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-catalogue/internal/config"
)

// Environment variables read by every command.
const (
	envConfig    = "CATALOGUE_CONFIG"     // config file name or path
	envAssetPath = "CATALOGUE_ASSET_PATH" // custom asset directory
	envEngine    = "CATALOGUE_ENGINE"     // template engine
	envLogLevel  = "CATALOGUE_LOG_LEVEL"  // debug, info, warn, error
	envLogFormat = "CATALOGUE_LOG_FORMAT" // console or json
	envWorkers   = "CATALOGUE_WORKERS"    // parallel render workers
	envVerbose   = "CATALOGUE_VERBOSE"    // log GOMAXPROCS adjustments
)

// knownEnvVars lists valid CATALOGUE_* environment variables.
var knownEnvVars = map[string]bool{
	envConfig:    true,
	envAssetPath: true,
	envEngine:    true,
	envLogLevel:  true,
	envLogFormat: true,
	envWorkers:   true,
	envVerbose:   true,
}

// envOverrides holds configuration from environment variables.
type envOverrides struct {
	ConfigPath string
	AssetPath  string
	Engine     string
	LogLevel   string
	LogFormat  string
	Workers    int
}

// loadEnvOverrides reads the CATALOGUE_* variables through getenv.
func loadEnvOverrides(getenv func(string) string) *envOverrides {
	o := &envOverrides{
		ConfigPath: getenv(envConfig),
		AssetPath:  getenv(envAssetPath),
		Engine:     getenv(envEngine),
		LogLevel:   getenv(envLogLevel),
		LogFormat:  getenv(envLogFormat),
	}
	if workers := getenv(envWorkers); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			o.Workers = w
		}
	}
	return o
}

// warnUnknownEnvVars reports unrecognized CATALOGUE_* variables.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, "CATALOGUE_") {
			continue
		}
		name := strings.SplitN(kv, "=", 2)[0]
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// apply copies the set variables onto cfg. Flags are merged afterwards, so
// the precedence is flags, environment, config file, defaults.
func (o *envOverrides) apply(cfg *config.Config) {
	if o.AssetPath != "" {
		cfg.Assets.BasePath = o.AssetPath
	}
	if o.Engine != "" {
		cfg.Templates.Engine = o.Engine
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		cfg.Log.Format = o.LogFormat
	}
}
