package cli

import (
	"fmt"
	"os"
	"sync"

	"github.com/joho/godotenv"

	"github.com/cperrin88/extasset/internal/logger"
	"github.com/cperrin88/extasset/pkg/cache"
	"github.com/cperrin88/extasset/pkg/config"
	"github.com/cperrin88/extasset/pkg/download"
	"github.com/cperrin88/extasset/pkg/pipeline"
)

// These variables will be set by the main package
var (
	ConfigPath *string
	Verbose    *bool
	LogFormat  *string
)

var loadEnvOnce sync.Once

// loadEnv reads EnvFile once. Variables already present in the
// environment win over the file.
func loadEnv() {
	loadEnvOnce.Do(func() {
		if _, err := os.Stat(EnvFile); err != nil {
			return
		}
		if err := godotenv.Load(EnvFile); err != nil {
			logger.Warn("Failed to load env file", logger.Fields{"path": EnvFile, "error": err})
		}
	})
}

// loadConfig loads the configuration, applies CLI flags and sets up logging.
func loadConfig() (*config.Config, error) {
	loadEnv()

	cfg, err := config.LoadConfig(getConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if Verbose != nil && *Verbose {
		cfg.LogLevel = "debug"
	}
	setupLogger(cfg)

	if err := cfg.CheckVersion(Version); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogger(cfg *config.Config) {
	format := logger.FormatText
	if LogFormat != nil && *LogFormat == string(logger.FormatJSON) {
		format = logger.FormatJSON
	}
	logger.InitLogger(cfg.LogLevel, format)
}

func getConfigPath() string {
	if ConfigPath != nil && *ConfigPath != "" {
		return *ConfigPath
	}

	defaultPath, err := config.GetDefaultConfigPath()
	if err != nil {
		// An empty path makes LoadConfig return a descriptive error.
		logger.Warn("Failed to get default config path, using empty path", logger.Fields{"error": err})
		return ""
	}
	return defaultPath
}

func userAgent(cfg *config.Config) string {
	if cfg.UserAgent != "" {
		return cfg.UserAgent
	}
	return "extasset/" + Version
}

// newDriver builds the pipeline driver described by cfg.
func newDriver(cfg *config.Config) *pipeline.Driver {
	fetcher := download.NewFetcher(cfg.HTTPTimeout, userAgent(cfg))
	return pipeline.NewDriver(fetcher, pipeline.Options{
		TempDir:     cfg.Temp,
		Destination: cfg.Destination,
		ClearTemp:   cfg.ClearTemp,
		Naming:      cache.Naming(cfg.Naming),
		Sources:     cfg.Sources,
	})
}

// logEvent reports pipeline progress through the logger.
func logEvent(e pipeline.Event) {
	fields := logger.Fields{"phase": e.Phase}
	if e.ID != "" {
		fields["marker"] = e.ID
	}
	switch e.Phase {
	case "resolve":
		fields["url"] = e.Msg
		logger.Debug("Resolving asset", fields)
	case "error":
		fields["error"] = e.Msg
		logger.Error("Run failed", fields)
	default:
		if e.Msg != "" {
			fields["detail"] = e.Msg
		}
		logger.Debug("Pipeline phase", fields)
	}
}
