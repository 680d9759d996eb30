/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/suparena/entitymapper"
	"github.com/suparena/entitymapper/config"
	"github.com/suparena/entitymapper/datastore"
	applog "github.com/suparena/entitymapper/internal/log"
)

var loadConfigFn = config.Load

type globalOptions struct {
	ConfigPath string
	EnvFile    string
	Store      string
	LogLevel   string
}

// runtime holds what commands share during one invocation. Stores are opened on
// first use and registered in backends under their configured name.
type runtime struct {
	out      io.Writer
	build    BuildInfo
	globals  *globalOptions
	backends entitymapper.Backends

	mu        sync.Mutex
	cfg       *config.Config
	logCloser io.Closer
	closers   []config.CloseFunc
}

func (rt *runtime) config() (config.Config, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.cfg != nil {
		return *rt.cfg, nil
	}

	cfg, err := loadConfigFn(config.LoadOptions{
		ConfigPath: rt.globals.ConfigPath,
		EnvFile:    rt.globals.EnvFile,
	})
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if rt.globals.LogLevel != "" {
		cfg.Logging.Level = rt.globals.LogLevel
	}
	rt.cfg = &cfg
	return cfg, nil
}

// setupLogging installs the configured logger as the slog default.
func (rt *runtime) setupLogging() error {
	cfg, err := rt.config()
	if err != nil {
		return err
	}
	logger, closer, err := applog.New(applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		File:      cfg.Logging.File,
		MaxSizeMB: cfg.Logging.MaxSizeMB,
		MaxFiles:  cfg.Logging.MaxFiles,
	})
	if err != nil {
		return fmt.Errorf("%w: logging: %v", config.ErrInvalidConfig, err)
	}
	slog.SetDefault(logger)
	rt.logCloser = closer
	return nil
}

// backend returns the store selected by --store, opening it if needed.
func (rt *runtime) backend(ctx context.Context) (datastore.Backend, string, error) {
	cfg, err := rt.config()
	if err != nil {
		return nil, "", err
	}
	name := rt.globals.Store
	if name == "" {
		name = cfg.DefaultStore
	}

	if b, err := rt.backends.Get(name); err == nil {
		return b, name, nil
	}

	sc, err := cfg.Store(name)
	if err != nil {
		return nil, "", err
	}
	b, closeFn, err := config.OpenStore(ctx, sc)
	if err != nil {
		return nil, "", fmt.Errorf("open store %q: %w", name, err)
	}
	if err := rt.backends.Register(name, b); err != nil {
		_ = closeFn(ctx)
		return nil, "", err
	}
	rt.mu.Lock()
	rt.closers = append(rt.closers, closeFn)
	rt.mu.Unlock()

	slog.Debug("store opened", "store", name, "config", sc)
	return b, name, nil
}

func (rt *runtime) close(ctx context.Context) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	var firstErr error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	rt.closers = nil
	if rt.logCloser != nil {
		if err := rt.logCloser.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		rt.logCloser = nil
	}
	return firstErr
}

func printJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func printYAML(w io.Writer, value any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(value); err != nil {
		return err
	}
	return enc.Close()
}
