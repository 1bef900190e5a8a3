// Package config provides configuration management for extasset.
// It handles loading, validating and saving the settings of an asset
// materialization run. The package reads YAML configuration files, falls
// back to sensible defaults and lets EXTASSET_* environment variables
// override individual values.
package config

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/hashicorp/go-version"
	"gopkg.in/yaml.v3"

	"github.com/cperrin88/extasset/pkg/errors"
	"github.com/cperrin88/extasset/pkg/fileset"
	"github.com/cperrin88/extasset/pkg/fsutil"
)

// Config represents the application configuration.
type Config struct {
	// Temp is the workspace directory downloads are cached in.
	Temp string `yaml:"temp" validate:"required"`
	// Destination is the directory, relative to the site root, assets are
	// published under.
	Destination string `yaml:"destination" validate:"required"`
	// ClearTemp wipes the workspace before and after each run.
	ClearTemp bool `yaml:"clear_temp"`
	// Naming is "url" or "content".
	Naming string `yaml:"naming" validate:"oneof=url content"`
	// Sources lists the extensions of files scanned for markers.
	Sources []string `yaml:"sources" validate:"min=1,dive,startswith=."`

	// Network settings
	HTTPTimeout time.Duration `yaml:"http_timeout" validate:"gte=0"`
	UserAgent   string        `yaml:"user_agent,omitempty"`

	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`
	// Requires is a version constraint the running binary must satisfy.
	Requires string `yaml:"requires,omitempty"`
}

// Default configuration values.
const (
	// DefaultDestination is the default asset directory.
	DefaultDestination = "external-assets"

	// DefaultTempPrefix prefixes the generated workspace directory name.
	DefaultTempPrefix = ".extasset-"

	// DefaultConfigFile is the config file looked up in the working directory.
	DefaultConfigFile = "extasset.yaml"

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

// Environment variables overriding config values.
const (
	EnvTemp        = "EXTASSET_TEMP"
	EnvDestination = "EXTASSET_DESTINATION"
	EnvClearTemp   = "EXTASSET_CLEAR_TEMP"
	EnvNaming      = "EXTASSET_NAMING"
	EnvLogLevel    = "EXTASSET_LOG_LEVEL"
)

var validate = validator.New()

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Temp:        DefaultTempPrefix + uuid.NewString()[:8],
		Destination: DefaultDestination,
		ClearTemp:   true,
		Naming:      "url",
		Sources:     append([]string(nil), fileset.DefaultSourceExtensions...),
		LogLevel:    "info",
	}
}

// LoadConfig loads configuration from a file. A missing file yields the
// defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return finalize(DefaultConfig())
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader. Keys absent
// from the document keep their default values.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}
	return finalize(config)
}

func finalize(c *Config) (*Config, error) {
	c.applyDefaults()
	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrConfigValidation, err.Error())
	}
	return c, nil
}

// SaveConfig saves configuration to a file.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(absPath), fsutil.DirModeDefault); err != nil {
		return errors.Wrap(errors.ErrConfigDirectory, err.Error())
	}

	tempPath := absPath + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeDefault)
	if err != nil {
		return errors.Wrap(errors.ErrConfigFileCreate, err.Error())
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(YAMLIndent)

	if err := encoder.Encode(c); err != nil {
		_ = file.Close()
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigEncode, err.Error())
	}

	_ = encoder.Close()
	_ = file.Close()

	// Atomically replace the config file
	if err := os.Rename(tempPath, absPath); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigFileRename, err.Error())
	}

	if err := os.Chmod(absPath, fsutil.FileModeDefault); err != nil {
		return errors.Wrap(errors.ErrConfigFileChmod, err.Error())
	}

	return nil
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrConfigMarshal, err.Error())
	}
	return data, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	if err := validate.Struct(c); err != nil {
		return err
	}
	if err := validateDestination(c.Destination); err != nil {
		return err
	}
	if c.Requires != "" {
		if _, err := version.NewConstraint(c.Requires); err != nil {
			return fmt.Errorf("invalid requires constraint %q: %w", c.Requires, err)
		}
	}
	return nil
}

// validateDestination rejects destinations that would publish outside the
// site root.
func validateDestination(dest string) error {
	clean := path.Clean(filepath.ToSlash(dest))
	if path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return errors.Wrapf(errors.ErrInvalidPath, "destination %q must stay inside the site root", dest)
	}
	return nil
}

// CheckVersion reports an error when current does not satisfy the
// configured requires constraint. Development builds that are not valid
// versions are always accepted.
func (c *Config) CheckVersion(current string) error {
	if c.Requires == "" {
		return nil
	}
	constraint, err := version.NewConstraint(c.Requires)
	if err != nil {
		return errors.Wrap(errors.ErrConfigValidation, err.Error())
	}
	v, err := version.NewVersion(current)
	if err != nil {
		return nil
	}
	if !constraint.Check(v) {
		return errors.Wrapf(errors.ErrVersionConstraint, "extasset %s does not satisfy %q", current, c.Requires)
	}
	return nil
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return filepath.Join(wd, DefaultConfigFile), nil
}

// applyDefaults fills in values left empty with defaults.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Temp == "" {
		c.Temp = defaults.Temp
	}
	if c.Destination == "" {
		c.Destination = defaults.Destination
	}
	if c.Naming == "" {
		c.Naming = defaults.Naming
	}
	if len(c.Sources) == 0 {
		c.Sources = defaults.Sources
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
}

// applyEnv overrides values from EXTASSET_* environment variables.
func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvTemp); ok && v != "" {
		c.Temp = v
	}
	if v, ok := os.LookupEnv(EnvDestination); ok && v != "" {
		c.Destination = v
	}
	if v, ok := os.LookupEnv(EnvClearTemp); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(errors.ErrConfigEnv, "%s=%q", EnvClearTemp, v)
		}
		c.ClearTemp = b
	}
	if v, ok := os.LookupEnv(EnvNaming); ok && v != "" {
		c.Naming = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	return nil
}
