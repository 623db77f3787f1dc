// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package launcher prepares an application launch: it defaults the bind
// settings, activates the runtime environment under BUILD, resolves the
// command line and locates the executable on the activated PATH.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/bcgov/app-launcher/config"
	"github.com/bcgov/app-launcher/internal/activation"
	"github.com/hashicorp/go-hclog"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/shell"
	"mvdan.cc/sh/v3/syntax"
)

const (
	// ExitCannotExecute is the shell convention for a command that was found
	// but could not be executed.
	ExitCannotExecute = 126

	// ExitNotFound is the shell convention for a command that was not found.
	ExitNotFound = 127
)

var (
	ErrActivation      = errors.New("environment activation failed")
	ErrEmptyCommand    = errors.New("resolved command is empty")
	ErrCommandNotFound = errors.New("executable file not found in activated PATH")
	ErrNotExecutable   = errors.New("file is not executable")
)

// Plan is a fully resolved launch.
type Plan struct {
	Settings *config.Settings
	// Env is the activated environment the application receives.
	Env config.Environment
	// Argv is the command line; Argv[0] is the name as given.
	Argv []string
	// Path is the absolute path of the executable for Argv[0].
	Path string
	// Fallback is true when Argv came from the default command template.
	Fallback bool
}

// String renders the command line with shell quoting.
func (p *Plan) String() string {
	quoted := make([]string, len(p.Argv))
	for i, arg := range p.Argv {
		q, err := syntax.Quote(arg, syntax.LangPOSIX)
		if err != nil {
			q = fmt.Sprintf("%q", arg)
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " ")
}

type Launcher struct {
	Config *config.Config
	Log    hclog.Logger

	// Stdout and Stderr receive output of the activation script.
	Stdout io.Writer
	Stderr io.Writer
}

// Prepare runs every launch step short of starting the application. env is
// the launcher's starting environment; defaults are applied to it in place.
func (l *Launcher) Prepare(ctx context.Context, env config.Environment, args []string) (*Plan, error) {
	for _, name := range config.ApplyDefaults(env) {
		l.Log.Debug("using default", "name", name, "value", env.Get(name))
	}
	settings, err := config.LoadSettings(env)
	if err != nil {
		return nil, err
	}

	activator := &activation.Activator{
		Log:    l.Log.Named("activation"),
		Stdout: l.Stdout,
		Stderr: l.Stderr,
	}
	activated, err := activator.Activate(ctx, activation.ScriptPath(settings.Build, l.Config.ActivateScript), env)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrActivation, err)
	}

	argv, fallback, err := ResolveCommand(args, l.Config.DefaultCommand, activated)
	if err != nil {
		return nil, err
	}
	if fallback && !settings.AppNameSet && strings.Contains(l.Config.DefaultCommand, config.AppNameEnvVar) {
		l.Log.Warn("APP_NAME is not set and no command was given; the default command will not name a real script",
			"command", strings.Join(argv, " "))
	}

	path, err := LookPath(activated, argv[0])
	if err != nil {
		return nil, err
	}

	return &Plan{
		Settings: settings,
		Env:      activated,
		Argv:     argv,
		Path:     path,
		Fallback: fallback,
	}, nil
}

// ResolveCommand returns args verbatim when given. Otherwise it expands the
// template against env and splits it into words with shell rules. Unset
// variables expand to the empty string.
func ResolveCommand(args []string, template string, env config.Environment) ([]string, bool, error) {
	if len(args) > 0 {
		if args[0] == "" {
			return nil, false, ErrEmptyCommand
		}
		return append([]string(nil), args...), false, nil
	}

	argv, err := shell.Fields(template, env.Get)
	if err != nil {
		return nil, true, fmt.Errorf("expanding default command %q: %w", template, err)
	}
	if len(argv) == 0 || argv[0] == "" {
		return nil, true, fmt.Errorf("%w: default command %q", ErrEmptyCommand, template)
	}
	return argv, true, nil
}

// LookPath resolves file against the PATH in env, relative to the current
// working directory. Names containing a slash are checked as paths; one that
// exists but cannot be executed is ErrNotExecutable rather than not found.
func LookPath(env config.Environment, file string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	path, err := interp.LookPathDir(cwd, expand.ListEnviron(env.Slice()...), file)
	if err == nil {
		return path, nil
	}
	if strings.Contains(file, "/") {
		abs := file
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(cwd, abs)
		}
		if _, statErr := os.Stat(abs); statErr == nil {
			return "", fmt.Errorf("%w: %s", ErrNotExecutable, file)
		}
	}
	return "", fmt.Errorf("%w: %s", ErrCommandNotFound, file)
}

// ExitCode maps a launch error to the process exit code.
func ExitCode(err error) int {
	var activationExit *activation.ExitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &activationExit):
		return activationExit.Status
	case errors.Is(err, ErrActivation):
		return 1
	case errors.Is(err, ErrCommandNotFound), errors.Is(err, syscall.ENOENT):
		return ExitNotFound
	case errors.Is(err, ErrNotExecutable), errors.Is(err, syscall.EACCES), errors.Is(err, syscall.ENOEXEC):
		return ExitCannotExecute
	default:
		return 1
	}
}
