// File: discovery.go
// Title: Configuration File Discovery
// Description: Locates the formula tool configuration file in the working
//              directory, the user config directory or a MINI_CONFIG path.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-18

package config

import (
	"os"
	"path/filepath"

	"github.com/substance/expression/foundation/utils/filex"
)

// FileNames lists the configuration file names searched for, in order
var FileNames = []string{"mini.toml", "mini.yaml", "mini.yml"}

// Discover returns the first configuration file found, or "" when none exists.
// MINI_CONFIG takes precedence over the search directories.
func Discover() string {
	if explicit := os.Getenv(DefaultEnvPrefix + "_CONFIG"); explicit != "" {
		if filex.IsFile(explicit) {
			return explicit
		}
	}

	var dirs []string
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	if userDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(userDir, "mini"))
	}

	return discoverIn(dirs)
}

func discoverIn(dirs []string) string {
	for _, dir := range dirs {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if filex.IsFile(candidate) {
				return candidate
			}
		}
	}
	return ""
}

// LoadOrDefault loads path, or the discovered file when path is empty.
// Without any file the built-in defaults are returned.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		path = Discover()
	}
	if path == "" {
		return NewDefault(), nil
	}
	return Load(path)
}
