package config

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cperrin88/extasset/pkg/errors"
)

// SetValue sets a configuration value by key
// Supported keys:
//   - temp: string - Workspace directory
//   - destination: string - Published asset directory
//   - clear_temp: bool - Whether to wipe the workspace around a run
//   - naming: string - url or content
//   - sources: comma separated extensions (".html,.css")
//   - http_timeout: duration (e.g. 30s, 0 for none)
//   - user_agent, log_level, requires: string
func (c *Config) SetValue(key, value string) error {
	switch key {
	case "temp":
		c.Temp = value
	case "destination":
		c.Destination = value
	case "clear_temp":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Wrapf(errors.ErrConfigValidation, "invalid boolean value for %s: %s", key, value)
		}
		c.ClearTemp = boolVal
	case "naming":
		c.Naming = value
	case "sources":
		var exts []string
		for _, ext := range strings.Split(value, ",") {
			if ext = strings.TrimSpace(ext); ext != "" {
				exts = append(exts, ext)
			}
		}
		c.Sources = exts
	case "http_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return errors.Wrapf(errors.ErrConfigValidation, "invalid duration for %s: %s", key, value)
		}
		c.HTTPTimeout = d
	case "user_agent":
		c.UserAgent = value
	case "log_level":
		c.LogLevel = strings.ToLower(value)
	case "requires":
		c.Requires = value
	default:
		return errors.Wrapf(errors.ErrUnknownConfigKey, "%s", key)
	}
	return nil
}

// GetValue returns the value of key formatted as a string.
func (c *Config) GetValue(key string) (string, error) {
	switch key {
	case "temp":
		return c.Temp, nil
	case "destination":
		return c.Destination, nil
	case "clear_temp":
		return strconv.FormatBool(c.ClearTemp), nil
	case "naming":
		return c.Naming, nil
	case "sources":
		return strings.Join(c.Sources, ","), nil
	case "http_timeout":
		return c.HTTPTimeout.String(), nil
	case "user_agent":
		return c.UserAgent, nil
	case "log_level":
		return c.LogLevel, nil
	case "requires":
		return c.Requires, nil
	default:
		return "", errors.Wrapf(errors.ErrUnknownConfigKey, "%s", key)
	}
}

// Keys returns the configuration keys in declaration order.
func Keys() []string {
	t := reflect.TypeOf(Config{})
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("yaml")
		if tag == "" || tag == "-" {
			continue
		}
		keys = append(keys, strings.Split(tag, ",")[0])
	}
	return keys
}

// ToMap returns every key with its string value.
// This is useful for displaying the configuration.
func (c *Config) ToMap() map[string]string {
	result := make(map[string]string)
	for _, key := range Keys() {
		v, err := c.GetValue(key)
		if err != nil {
			continue
		}
		result[key] = v
	}
	return result
}
