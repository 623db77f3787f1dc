// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package activation loads a runtime environment's activation script, such
// as a Python virtualenv's bin/activate, and captures the environment it
// exports.
//
// The script is interpreted in-process by a POSIX shell interpreter, so the
// result is the same set of exported variables that a shell would have after
// sourcing it, without requiring a shell in the image.
package activation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bcgov/app-launcher/config"
	"github.com/hashicorp/go-hclog"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// ErrNotFound is returned when the activation script does not exist.
var ErrNotFound = errors.New("activation script not found")

// ExitError is returned when the activation script exits with a nonzero status.
type ExitError struct {
	Path   string
	Status int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("activation script %s exited with status %d", e.Path, e.Status)
}

// Activator runs activation scripts.
type Activator struct {
	Log hclog.Logger

	// Stdout and Stderr receive anything the script prints. Nil discards it.
	Stdout io.Writer
	Stderr io.Writer
}

// ScriptPath joins the application root and the script's relative location.
func ScriptPath(build, script string) string {
	return filepath.Join(build, script)
}

// Activate runs the script at path starting from env and returns the
// environment the script leaves exported. env is not modified.
func (a *Activator) Activate(ctx context.Context, path string, env config.Environment) (config.Environment, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("opening activation script: %w", err)
	}
	defer f.Close()

	prog, err := syntax.NewParser().Parse(f, path)
	if err != nil {
		return nil, fmt.Errorf("parsing activation script: %w", err)
	}

	runner, err := interp.New(
		interp.Env(expand.ListEnviron(env.Slice()...)),
		interp.StdIO(nil, a.writer(a.Stdout), a.writer(a.Stderr)),
		interp.ExecHandlers(shellBuiltins),
	)
	if err != nil {
		return nil, fmt.Errorf("creating interpreter: %w", err)
	}

	a.Log.Debug("running activation script", "path", path)
	if err := runner.Run(ctx, prog); err != nil {
		var status interp.ExitStatus
		if errors.As(err, &status) {
			return nil, &ExitError{Path: path, Status: int(status)}
		}
		return nil, fmt.Errorf("running activation script: %w", err)
	}

	activated := make(config.Environment, len(runner.Vars))
	for name, vr := range runner.Vars {
		if vr.Exported && vr.Kind == expand.String {
			activated[name] = vr.Str
		}
	}
	a.logChanges(env, activated)
	return activated, nil
}

// shellBuiltins handles builtins of interactive shells that activation
// scripts call but the interpreter does not implement. venv's activate ends
// with an unguarded `hash -r`, which only clears a lookup cache that an
// in-process run never has.
func shellBuiltins(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(ctx context.Context, args []string) error {
		if len(args) > 0 && args[0] == "hash" {
			return nil
		}
		return next(ctx, args)
	}
}

func (a *Activator) writer(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

func (a *Activator) logChanges(before, after config.Environment) {
	if !a.Log.IsDebug() {
		return
	}
	for name, value := range after {
		if old, ok := before[name]; !ok || old != value {
			a.Log.Debug("activation set variable", "name", name, "value", value)
		}
	}
	for name := range before {
		if _, ok := after[name]; !ok {
			a.Log.Debug("activation unset variable", "name", name)
		}
	}
}
