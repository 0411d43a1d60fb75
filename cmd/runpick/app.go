// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/invowk/runpick/internal/config"
	"github.com/invowk/runpick/internal/discovery"
	"github.com/invowk/runpick/internal/issue"
	"github.com/invowk/runpick/internal/runtime"
	"github.com/invowk/runpick/internal/selector"
	"github.com/invowk/runpick/pkg/manifest"

	"github.com/charmbracelet/log"
)

// Operations named in wrapped tool errors; the renderer keys issue cards on them.
const (
	opDiscover = "discover manifests"
	opSelect   = "select a script"
	opRun      = "run the script"
)

type (
	// App wires the pipeline services. It is the composition root for the CLI
	// layer: the root command delegates to App.Execute.
	App struct {
		Config   ConfigProvider
		finder   ManifestFinder
		selector selector.Selector
		runner   ScriptRunner
		stdout   io.Writer
		stderr   io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// services are built from the loaded configuration on each run.
	Dependencies struct {
		Config   ConfigProvider
		Finder   ManifestFinder
		Selector selector.Selector
		Runner   ScriptRunner
		Stdout   io.Writer
		Stderr   io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// ManifestFinder lists manifest paths.
	ManifestFinder interface {
		Find(ctx context.Context) ([]string, error)
	}

	// ScriptRunner runs one script in a package directory.
	ScriptRunner interface {
		Run(ctx context.Context, dir, script string) *runtime.Result
	}

	pipeline struct {
		finder   ManifestFinder
		selector selector.Selector
		runner   ScriptRunner
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	return &App{
		Config:   deps.Config,
		finder:   deps.Finder,
		selector: deps.Selector,
		runner:   deps.Runner,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
	}, nil
}

// Execute loads configuration and runs discover, extract, select and run.
// Failures are rendered to stderr and returned as *ExitError.
func (a *App) Execute(ctx context.Context) error {
	cfg := a.loadConfig(ctx)
	a.setupLogging(cfg)

	err := a.run(ctx, cfg)
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		// The script already reported its own failure.
		return exitErr
	}

	renderPipelineError(a.stderr, err, cfg.UI.Verbose, a.issueStyle(cfg))
	return &ExitError{Code: 1, Err: err}
}

// loadConfig returns the configuration, falling back to defaults with a
// warning when the config file cannot be loaded.
func (a *App) loadConfig(ctx context.Context) *config.Config {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{})
	if err == nil {
		return cfg
	}

	cfg = config.DefaultConfig()
	fmt.Fprintln(a.stderr, WarningStyle.Render("Warning:"), formatErrorForDisplay(err, false))
	fmt.Fprintln(a.stderr, WarningStyle.Render("Continuing with the default configuration."))
	renderIssue(a.stderr, issue.ConfigLoadFailedId, a.issueStyle(cfg))
	return cfg
}

// setupLogging installs a charmbracelet/log handler as the slog default.
func (a *App) setupLogging(cfg *config.Config) {
	level := log.InfoLevel
	if cfg.UI.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(a.stderr, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
	slog.SetDefault(slog.New(logger))
}

func (a *App) run(ctx context.Context, cfg *config.Config) error {
	p, err := a.pipeline(cfg)
	if err != nil {
		return err
	}

	paths, err := p.finder.Find(ctx)
	if err != nil {
		return issue.WrapWithContext(err, opDiscover, "")
	}
	slog.Debug("manifests discovered", "count", len(paths))

	results := manifest.ExtractAll(ctx, paths)
	for _, r := range results {
		if r.Err == nil {
			if r.Record != nil {
				slog.Debug("manifest read", "manifest", r.Record.String())
			}
			continue
		}
		if issue.KindOf(r.Err).IsFatal() {
			return r.Err
		}
		slog.Warn("skipping manifest", "path", r.Path, "error", manifestCause(r.Err))
	}

	set := selector.BuildOptions(manifest.Records(results))
	slog.Debug("options built", "count", set.Len())

	opt, err := selector.Choose(ctx, p.selector, set)
	if err != nil {
		if issue.KindOf(err) == issue.KindToolInvocation {
			return issue.WrapWithContext(err, opSelect, "")
		}
		return err
	}

	fmt.Fprintf(a.stdout, "\nRunning script %s in directory %s...\n\n",
		CmdStyle.Render(strconv.Quote(opt.Script)), CmdStyle.Render(strconv.Quote(opt.Dir)))

	result := p.runner.Run(ctx, opt.Dir, opt.Script)
	if result.Error != nil {
		return issue.WrapWithContext(result.Error, opRun, opt.Script)
	}
	if result.Success() {
		return nil
	}
	return &ExitError{Code: result.ExitCode}
}

// pipeline returns the injected services, building the missing ones from cfg.
func (a *App) pipeline(cfg *config.Config) (*pipeline, error) {
	p := &pipeline{finder: a.finder, selector: a.selector, runner: a.runner}

	if p.finder == nil {
		argv, err := cfg.Finder.Command.Args()
		if err != nil {
			return nil, err
		}
		p.finder = &discovery.Finder{
			Command:  argv,
			Manifest: cfg.Finder.Manifest,
			Exclude:  cfg.Finder.Exclude,
		}
	}

	if p.selector == nil {
		switch cfg.Selector.Backend {
		case config.SelectorBackendBuiltin:
			p.selector = &selector.BuiltinSelector{
				Title:      "Run a package script",
				TitleColor: string(ColorPrimary),
			}
		default:
			argv, err := cfg.Selector.Command.Args()
			if err != nil {
				return nil, err
			}
			p.selector = &selector.FzfSelector{Command: argv}
		}
	}

	if p.runner == nil {
		argv, err := cfg.Runner.Command.Args()
		if err != nil {
			return nil, err
		}
		p.runner = &runtime.PackageRunner{Command: argv, Stdout: a.stdout, Stderr: a.stderr}
	}

	return p, nil
}

// manifestCause strips the manifest path from a per-manifest error, since
// the path is already logged as its own attribute.
func manifestCause(err error) error {
	var ie *issue.Error
	if errors.As(err, &ie) && ie.Cause != nil {
		return ie.Cause
	}
	return err
}
