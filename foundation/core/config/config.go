// File: config.go
// Title: Core Configuration Management Implementation
// Description: Loads TOML and YAML configuration files into a nested map and
//              exposes typed dot-notation getters with default values and
//              environment variable overrides.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with TOML/YAML support
// - 2025-10-18 v0.2.0: Dropped file watching and request context; engine defaults

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/substance/expression/foundation/core/error"
	mdwstringx "github.com/substance/expression/foundation/utils/stringx"
)

// DefaultEnvPrefix is the prefix used for environment overrides
const DefaultEnvPrefix = "MINI"

// Format represents the configuration file format
type Format int

const (
	// FormatTOML represents TOML format (default)
	FormatTOML Format = iota

	// FormatYAML represents YAML format
	FormatYAML

	// FormatAuto auto-detects format from file extension
	FormatAuto
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// Config represents a configuration instance with thread-safe access
type Config struct {
	mu        sync.RWMutex
	data      map[string]interface{}
	filePath  string
	format    Format
	envPrefix string
}

// LoadOptions defines options for loading configuration
type LoadOptions struct {
	Format    Format                 // File format (default: auto-detect)
	EnvPrefix string                 // Environment variable prefix (default: MINI)
	Defaults  map[string]interface{} // Default values, dot-notation keys allowed
}

// Defaults returns the built-in settings for the formula tools
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"log.level":               "warn",
		"log.format":              "text",
		"engine.data_symbol":      "$data",
		"engine.max_input_length": 4096,
		"engine.detect_cycles":    true,
		"engine.wait_timeout":     "10s",
		"data.file":               "",
		"data.sqlite_dsn":         "",
		"data.sqlite_query":       "",
		"builtins.enabled":        true,
	}
}

// Load loads configuration from a file with default options
func Load(filePath string) (*Config, error) {
	return LoadWithOptions(filePath, LoadOptions{Format: FormatAuto, Defaults: Defaults()})
}

// LoadWithOptions loads configuration from a file with custom options
func LoadWithOptions(filePath string, options LoadOptions) (*Config, error) {
	if mdwstringx.IsBlank(filePath) {
		return nil, mdwerror.New("configuration file path is empty").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("config.Load")
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		code := mdwerror.CodeConfigError
		if os.IsNotExist(err) {
			code = mdwerror.CodeNotFound
		}
		return nil, mdwerror.Wrap(err, "failed to read configuration file").
			WithCode(code).
			WithOperation("config.Load").
			WithDetail("path", filePath)
	}

	format := options.Format
	if format == FormatAuto {
		format = detectFormat(filePath)
	}

	data, err := parseContent(content, format)
	if err != nil {
		if mdwErr, ok := err.(*mdwerror.Error); ok {
			return nil, mdwErr.WithDetail("path", filePath)
		}
		return nil, err
	}

	cfg := newConfig(data, options)
	cfg.filePath = filePath
	cfg.format = format
	return cfg, nil
}

// LoadFromString loads configuration from a string
func LoadFromString(content string, format Format) (*Config, error) {
	if format == FormatAuto {
		format = FormatTOML
	}
	data, err := parseContent([]byte(content), format)
	if err != nil {
		return nil, err
	}
	cfg := newConfig(data, LoadOptions{Defaults: Defaults()})
	cfg.format = format
	return cfg, nil
}

// NewDefault returns a configuration holding only the built-in defaults
func NewDefault() *Config {
	return newConfig(nil, LoadOptions{Defaults: Defaults()})
}

func newConfig(data map[string]interface{}, options LoadOptions) *Config {
	if data == nil {
		data = make(map[string]interface{})
	}
	prefix := options.EnvPrefix
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}
	cfg := &Config{data: data, format: options.Format, envPrefix: prefix}
	for key, value := range options.Defaults {
		if cfg.getValue(key) == nil {
			cfg.setValue(key, value)
		}
	}
	return cfg
}

// detectFormat detects the configuration format from file extension
func detectFormat(filePath string) Format {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// parseContent parses configuration content based on format
func parseContent(content []byte, format Format) (map[string]interface{}, error) {
	var data map[string]interface{}

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(content, &data); err != nil {
			return nil, mdwerror.Wrap(err, "TOML parse error").
				WithCode(mdwerror.CodeConfigError).
				WithOperation("config.parseContent")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(content, &data); err != nil {
			return nil, mdwerror.Wrap(err, "YAML parse error").
				WithCode(mdwerror.CodeConfigError).
				WithOperation("config.parseContent")
		}
	default:
		return nil, mdwerror.New(fmt.Sprintf("unsupported format: %s", format)).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("config.parseContent").
			WithDetail("format", format.String())
	}

	return data, nil
}

// GetString retrieves a string value
func (c *Config) GetString(key string, defaultValue ...string) string {
	if env := c.getEnvValue(key); env != "" {
		return env
	}

	c.mu.RLock()
	value := c.getValue(key)
	c.mu.RUnlock()

	if value != nil {
		return fmt.Sprintf("%v", value)
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

// GetInt retrieves an integer value
func (c *Config) GetInt(key string, defaultValue ...int) int {
	if env := c.getEnvValue(key); env != "" {
		if i, err := strconv.Atoi(env); err == nil {
			return i
		}
	}

	c.mu.RLock()
	value := c.getValue(key)
	c.mu.RUnlock()

	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return 0
}

// GetBool retrieves a boolean value
func (c *Config) GetBool(key string, defaultValue ...bool) bool {
	if env := c.getEnvValue(key); env != "" {
		if b, err := strconv.ParseBool(env); err == nil {
			return b
		}
	}

	c.mu.RLock()
	value := c.getValue(key)
	c.mu.RUnlock()

	switch v := value.(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return false
}

// GetDuration retrieves a duration value ("10s", "250ms" or seconds as number)
func (c *Config) GetDuration(key string, defaultValue ...time.Duration) time.Duration {
	if env := c.getEnvValue(key); env != "" {
		if d, err := time.ParseDuration(env); err == nil {
			return d
		}
	}

	c.mu.RLock()
	value := c.getValue(key)
	c.mu.RUnlock()

	switch v := value.(type) {
	case string:
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	case int:
		return time.Duration(v) * time.Second
	case int64:
		return time.Duration(v) * time.Second
	case float64:
		return time.Duration(v * float64(time.Second))
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return 0
}

// GetStringSlice retrieves a string slice value
func (c *Config) GetStringSlice(key string, defaultValue ...[]string) []string {
	if env := c.getEnvValue(key); env != "" {
		parts := strings.Split(env, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}

	c.mu.RLock()
	value := c.getValue(key)
	c.mu.RUnlock()

	switch v := value.(type) {
	case []string:
		return append([]string(nil), v...)
	case []interface{}:
		result := make([]string, 0, len(v))
		for _, item := range v {
			result = append(result, fmt.Sprintf("%v", item))
		}
		return result
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return nil
}

// Has checks if a configuration key exists
func (c *Config) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.getValue(key) != nil
}

// Set sets a configuration value (runtime only, not persisted)
func (c *Config) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setValue(key, value)
}

// Keys returns all leaf keys in dot notation, sorted
func (c *Config) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var keys []string
	collectKeys("", c.data, &keys)
	sort.Strings(keys)
	return keys
}

// FilePath returns the path the configuration was loaded from
func (c *Config) FilePath() string {
	return c.filePath
}

// Format returns the configuration format
func (c *Config) Format() Format {
	return c.format
}

// String returns a short description of the configuration
func (c *Config) String() string {
	source := c.filePath
	if source == "" {
		source = "<defaults>"
	}
	return fmt.Sprintf("Config{file: %s, format: %s, keys: %d}", source, c.format, len(c.Keys()))
}

// getValue retrieves a configuration value by key (supports dot notation)
func (c *Config) getValue(key string) interface{} {
	keys := strings.Split(key, ".")
	current := c.data

	for i, k := range keys {
		if i == len(keys)-1 {
			return current[k]
		}
		next, ok := current[k].(map[string]interface{})
		if !ok {
			return nil
		}
		current = next
	}
	return nil
}

func (c *Config) setValue(key string, value interface{}) {
	keys := strings.Split(key, ".")
	current := c.data

	for i, k := range keys {
		if i == len(keys)-1 {
			current[k] = value
			return
		}
		next, ok := current[k].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			current[k] = next
		}
		current = next
	}
}

// getEnvValue looks up the environment override for a key
func (c *Config) getEnvValue(key string) string {
	return os.Getenv(c.formatEnvKey(key))
}

// formatEnvKey converts a config key to environment variable format
// (engine.data_symbol -> MINI_ENGINE_DATA_SYMBOL)
func (c *Config) formatEnvKey(key string) string {
	envKey := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	if c.envPrefix != "" {
		envKey = strings.ToUpper(c.envPrefix) + "_" + envKey
	}
	return envKey
}

func collectKeys(prefix string, data map[string]interface{}, keys *[]string) {
	for k, v := range data {
		full := k
		if prefix != "" {
			full = prefix + "." + k
		}
		if nested, ok := v.(map[string]interface{}); ok {
			collectKeys(full, nested, keys)
			continue
		}
		*keys = append(*keys, full)
	}
}
