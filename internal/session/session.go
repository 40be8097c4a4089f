// ============================================================================
// mini - Formula Engine Tools
// ============================================================================
//
// Package:     session
// Description: Builds a ready-to-use engine from configuration: logger,
//              built-in functions and the initial data matrix
// Author:      msto63
// Created:     2025-10-18
// License:     MIT
// ============================================================================

package session

import (
	"context"
	"io"
	"time"

	mdwconfig "github.com/substance/expression/foundation/core/config"
	mdwerror "github.com/substance/expression/foundation/core/error"
	mdwlog "github.com/substance/expression/foundation/core/log"
	"github.com/substance/expression/foundation/formula/engine"
	"github.com/substance/expression/foundation/formula/registry"
	"github.com/substance/expression/foundation/formula/value"
	mdwstringx "github.com/substance/expression/foundation/utils/stringx"
	"github.com/substance/expression/internal/builtins"
	"github.com/substance/expression/internal/datasource"
)

// Session owns an engine configured for the command line tools
type Session struct {
	Engine      *engine.Engine
	Config      *mdwconfig.Config
	Logger      *mdwlog.Logger
	WaitTimeout time.Duration
}

// Options configures a session
type Options struct {
	Config *mdwconfig.Config

	// LogOutput receives log entries; stderr when nil
	LogOutput io.Writer

	// Verbose lowers the log level to debug
	Verbose bool

	// DataFile overrides data.file
	DataFile string
}

// New creates a session. Data configured through data.file or
// data.sqlite_dsn is loaded into the data cell.
func New(ctx context.Context, opts Options) (*Session, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = mdwconfig.NewDefault()
	}

	logger, err := NewLogger(cfg, opts.LogOutput, opts.Verbose)
	if err != nil {
		return nil, err
	}

	reg := registry.New(registry.Options{Logger: logger})
	if cfg.GetBool("builtins.enabled", true) {
		if err := builtins.Register(reg); err != nil {
			return nil, err
		}
		for _, name := range cfg.GetStringSlice("builtins.exclude") {
			reg.Unregister(name)
		}
	}

	e, err := engine.New(engine.Options{
		Logger:                logger,
		Registry:              reg,
		DataSymbol:            cfg.GetString("engine.data_symbol", engine.DefaultDataSymbol),
		MaxInputLength:        cfg.GetInt("engine.max_input_length"),
		MaxRangeCells:         cfg.GetInt("engine.max_range_cells"),
		Context:               ctx,
		DisableCycleDetection: !cfg.GetBool("engine.detect_cycles", true),
	})
	if err != nil {
		return nil, err
	}

	s := &Session{
		Engine:      e,
		Config:      cfg,
		Logger:      logger.WithField("component", "session"),
		WaitTimeout: cfg.GetDuration("engine.wait_timeout", 10*time.Second),
	}

	s.Logger.Info("Session started", mdwlog.Fields{
		"config":    mdwstringx.FirstNonBlank(cfg.FilePath(), "<defaults>"),
		"functions": len(reg.Names()),
	})

	data, err := s.loadData(ctx, opts.DataFile)
	if err != nil {
		_ = e.Close()
		return nil, err
	}
	if data != nil {
		if err := e.SetValue(e.DataSymbol(), data); err != nil {
			_ = e.Close()
			return nil, err
		}
	}
	return s, nil
}

// NewLogger creates the logger described by log.level and log.format
func NewLogger(cfg *mdwconfig.Config, output io.Writer, verbose bool) (*mdwlog.Logger, error) {
	level, err := mdwlog.ParseLevel(cfg.GetString("log.level", "warn"))
	if err != nil {
		return nil, mdwerror.Wrap(err, "invalid log level").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("session.NewLogger")
	}
	format, err := mdwlog.ParseFormat(cfg.GetString("log.format", "text"))
	if err != nil {
		return nil, mdwerror.Wrap(err, "invalid log format").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("session.NewLogger")
	}

	logger := mdwlog.NewWithConfig(mdwlog.Config{Level: level, Format: format}).WithName("mini")
	if output != nil {
		logger = logger.WithOutput(output)
	}
	if verbose && level > mdwlog.LevelDebug {
		logger = logger.WithLevel(mdwlog.LevelDebug)
	}
	return logger, nil
}

func (s *Session) loadData(ctx context.Context, override string) (value.Matrix, error) {
	path := override
	if path == "" {
		path = s.Config.GetString("data.file")
	}
	if path != "" {
		s.Logger.Debug("Loading data file", mdwlog.Fields{"path": path})
		return datasource.Load(path)
	}

	dsn := s.Config.GetString("data.sqlite_dsn")
	if dsn == "" {
		return nil, nil
	}
	query := s.Config.GetString("data.sqlite_query")
	if query == "" {
		return nil, mdwerror.New("data.sqlite_query is required with data.sqlite_dsn").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("session.loadData")
	}
	s.Logger.Debug("Loading data from SQLite", mdwlog.Fields{"dsn": dsn})
	return datasource.LoadSQLite(ctx, dsn, query)
}

// Wait waits for outstanding deferred values, bounded by WaitTimeout
func (s *Session) Wait(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.WaitTimeout)
	defer cancel()
	return s.Engine.Wait(ctx)
}

// Close shuts the engine down
func (s *Session) Close() error {
	return s.Engine.Close()
}
