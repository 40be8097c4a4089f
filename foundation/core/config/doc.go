// File: doc.go
// Title: Core Configuration Package Documentation
// Description: Package documentation for configuration loading.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-18

/*
Package config loads TOML or YAML configuration for the formula tools.

Keys are addressed in dot notation and every getter accepts a default:

	cfg, err := config.LoadOrDefault(path)
	symbol := cfg.GetString("engine.data_symbol", "$data")
	timeout := cfg.GetDuration("engine.wait_timeout", 10*time.Second)

Each key can be overridden from the environment with the MINI_ prefix, for
example MINI_ENGINE_DETECT_CYCLES=false or MINI_LOG_LEVEL=debug.
*/
package config
