package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/chazu/orbishell/pkg/config"
	"github.com/chazu/orbishell/pkg/engine"
	"github.com/chazu/orbishell/pkg/pipeline"
)

// App assembles the configuration layers and runs builds.
type App struct {
	engine *engine.Engine
	logger *zap.Logger
	getenv func(string) string
}

// NewApp creates an App logging to logger and reading the process
// environment.
func NewApp(logger *zap.Logger) *App {
	return &App{
		engine: engine.NewEngine(),
		logger: logger,
		getenv: os.Getenv,
	}
}

// ScriptError reports evaluation errors in a parameter script.
type ScriptError struct {
	Path   string
	Errors []engine.EvalError
}

func (e *ScriptError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("%s: %v", e.Path, e.Errors[0])
	}
	return fmt.Sprintf("%s: %d errors, first: %v", e.Path, len(e.Errors), e.Errors[0])
}

// Configure builds the effective configuration: defaults, then the YAML
// file, the parameter script, the environment and finally the flags that
// were set explicitly. The result is validated.
func (a *App) Configure(opts *options) (*config.Config, error) {
	cfg, err := a.loadFile(opts.configPath)
	if err != nil {
		return nil, err
	}

	if opts.paramsPath != "" {
		if err := a.applyScript(cfg, opts.paramsPath); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(a.getenv); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	opts.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (a *App) loadFile(path string) (*config.Config, error) {
	if path == "" {
		path = config.FindConfigFile("")
		if path == "" {
			return config.Default(), nil
		}
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return nil, err
	}
	a.logger.Debug("configuration loaded", zap.String("path", path))
	return cfg, nil
}

func (a *App) applyScript(cfg *config.Config, path string) error {
	source, err := os.ReadFile(path) //nolint:gosec // user-provided script path is intentional
	if err != nil {
		return fmt.Errorf("failed to read parameter script: %w", err)
	}
	ov, evalErrs, err := a.engine.Evaluate(string(source))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if len(evalErrs) > 0 {
		return &ScriptError{Path: path, Errors: evalErrs}
	}
	if err := cfg.Apply(ov); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	a.logger.Debug("parameter script applied", zap.String("path", path), zap.Int("sections", len(ov)))
	return nil
}

// Build runs the pipeline and writes the Markdown report to w when w is
// not nil. Pipeline failures are already logged when they are returned.
func (a *App) Build(cfg *config.Config, w io.Writer) error {
	rep, err := pipeline.Run(cfg, a.logger)
	if err != nil {
		return &loggedError{err}
	}
	if w != nil {
		if err := rep.WriteMarkdown(w); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}

// loggedError marks an error that has already been logged.
type loggedError struct{ err error }

func (e *loggedError) Error() string { return e.err.Error() }
func (e *loggedError) Unwrap() error { return e.err }
