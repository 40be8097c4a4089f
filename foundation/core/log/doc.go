// File: doc.go
// Title: Core Logging Package Documentation
// Description: Package documentation for structured logging.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-10-18

/*
Package log provides structured logging for the formula engine and its tools.

Components receive a *Logger through their Options and derive a child logger
that tags every entry with the component name:

	logger := opts.Logger.WithField("component", "formula-engine")
	logger.Debug("cell evaluated", log.Fields{"cell": id, "status": "ready"})

The default logger writes text to stderr at warn level; set MINI_LOG_LEVEL
to change the level without code changes.
*/
package log
