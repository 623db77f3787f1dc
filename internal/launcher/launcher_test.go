// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/bcgov/app-launcher/config"
	"github.com/bcgov/app-launcher/internal/activation"
	"github.com/bcgov/app-launcher/testutil"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
)

func TestResolveCommand(t *testing.T) {
	cases := map[string]struct {
		args        []string
		template    string
		env         config.Environment
		expArgv     []string
		expFallback bool
		expErr      error
	}{
		"explicit args are used verbatim": {
			args:     []string{"echo", "hello"},
			template: config.DefaultCommandTemplate,
			env:      config.Environment{"APP_NAME": "server"},
			expArgv:  []string{"echo", "hello"},
		},
		"explicit args are not expanded": {
			args:     []string{"sh", "-c", "echo $APP_NAME ${HOST_PORT}"},
			template: config.DefaultCommandTemplate,
			env:      config.Environment{"APP_NAME": "server"},
			expArgv:  []string{"sh", "-c", "echo $APP_NAME ${HOST_PORT}"},
		},
		"fallback with APP_NAME": {
			template:    config.DefaultCommandTemplate,
			env:         config.Environment{"APP_NAME": "server"},
			expArgv:     []string{"python", "server.py"},
			expFallback: true,
		},
		// With APP_NAME unset the default command keeps the empty segment,
		// naming a script called ".py".
		"fallback without APP_NAME": {
			template:    config.DefaultCommandTemplate,
			env:         config.Environment{},
			expArgv:     []string{"python", ".py"},
			expFallback: true,
		},
		"custom template with quoting": {
			template:    `gunicorn --bind "${HOST_IP}:${HOST_PORT}" '${APP_NAME}:app'`,
			env:         config.Environment{"APP_NAME": "server", "HOST_IP": "0.0.0.0", "HOST_PORT": "8000"},
			expArgv:     []string{"gunicorn", "--bind", "0.0.0.0:8000", "${APP_NAME}:app"},
			expFallback: true,
		},
		"template expanding to nothing": {
			template:    "${APP_NAME}",
			env:         config.Environment{},
			expFallback: true,
			expErr:      ErrEmptyCommand,
		},
		"empty first argument": {
			args:   []string{"", "hello"},
			expErr: ErrEmptyCommand,
		},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			argv, fallback, err := ResolveCommand(c.args, c.template, c.env)
			require.Equal(t, c.expFallback, fallback)
			if c.expErr != nil {
				require.True(t, errors.Is(err, c.expErr), "unexpected error: %v", err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, c.expArgv, argv)
		})
	}
}

func TestResolveCommandDoesNotAlias(t *testing.T) {
	args := []string{"echo", "hello"}
	argv, _, err := ResolveCommand(args, "", nil)
	require.NoError(t, err)
	argv[1] = "changed"
	require.Equal(t, "hello", args[1])
}

func TestLookPath(t *testing.T) {
	build := testutil.AppRoot(t)
	python := testutil.FakeInterpreter(t, build, "python")
	notExecutable := filepath.Join(build, "bin", "data.txt")
	testutil.WriteFile(t, notExecutable, "data", 0o644)

	env := config.Environment{"PATH": filepath.Join(build, "bin") + ":/usr/bin:/bin"}

	path, err := LookPath(env, "python")
	require.NoError(t, err)
	require.Equal(t, python, path)

	path, err = LookPath(env, python)
	require.NoError(t, err)
	require.Equal(t, python, path)

	_, err = LookPath(env, "no-such-interpreter")
	require.True(t, errors.Is(err, ErrCommandNotFound))

	_, err = LookPath(env, "data.txt")
	require.True(t, errors.Is(err, ErrCommandNotFound))

	// A path that exists but cannot be executed is not "not found".
	_, err = LookPath(env, notExecutable)
	require.True(t, errors.Is(err, ErrNotExecutable))
	require.Equal(t, ExitCannotExecute, ExitCode(err))

	_, err = LookPath(env, filepath.Join(build, "bin"))
	require.True(t, errors.Is(err, ErrNotExecutable))

	_, err = LookPath(env, filepath.Join(build, "bin", "missing"))
	require.True(t, errors.Is(err, ErrCommandNotFound))

	// The launcher's own PATH is never consulted.
	_, err = LookPath(config.Environment{"PATH": testutil.TempDir(t)}, "sh")
	require.True(t, errors.Is(err, ErrCommandNotFound))
}

func TestPrepare(t *testing.T) {
	cases := map[string]struct {
		env         config.Environment
		args        []string
		expArgv     []string
		expFallback bool
		expHostIP   string
		expHostPort string
	}{
		"explicit command": {
			env:         config.Environment{},
			args:        []string{"python", "-m", "http.server"},
			expArgv:     []string{"python", "-m", "http.server"},
			expHostIP:   config.DefaultHostIP,
			expHostPort: config.DefaultHostPort,
		},
		"fallback command": {
			env:         config.Environment{"APP_NAME": "server"},
			expArgv:     []string{"python", "server.py"},
			expFallback: true,
			expHostIP:   config.DefaultHostIP,
			expHostPort: config.DefaultHostPort,
		},
		"preset bind settings": {
			env:         config.Environment{"APP_NAME": "server", "HOST_IP": "127.0.0.1", "HOST_PORT": "9000"},
			expArgv:     []string{"python", "server.py"},
			expFallback: true,
			expHostIP:   "127.0.0.1",
			expHostPort: "9000",
		},
		"fallback without APP_NAME": {
			env:         config.Environment{},
			expArgv:     []string{"python", ".py"},
			expFallback: true,
			expHostIP:   config.DefaultHostIP,
			expHostPort: config.DefaultHostPort,
		},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			build := testutil.AppRoot(t)
			python := testutil.FakeInterpreter(t, build, "python")

			env := c.env
			env["BUILD"] = build
			env["PATH"] = "/usr/bin:/bin"

			var logs bytes.Buffer
			l := &Launcher{
				Config: config.Default(),
				Log:    hclog.New(&hclog.LoggerOptions{Output: &logs}),
			}
			plan, err := l.Prepare(context.Background(), env, c.args)
			require.NoError(t, err)

			require.Equal(t, c.expArgv, plan.Argv)
			require.Equal(t, python, plan.Path)
			require.Equal(t, c.expFallback, plan.Fallback)
			require.Equal(t, build, plan.Settings.Build)

			// The application sees the activated environment, including the bind settings.
			require.Equal(t, c.expHostIP, plan.Env["HOST_IP"])
			require.Equal(t, c.expHostPort, plan.Env["HOST_PORT"])
			require.Equal(t, build, plan.Env["BUILD"])
			require.Equal(t, build, plan.Env["VIRTUAL_ENV"])
			require.Equal(t, filepath.Join(build, "bin")+":/usr/bin:/bin", plan.Env["PATH"])

			if _, ok := c.env["APP_NAME"]; !ok && plan.Fallback {
				require.Contains(t, logs.String(), "APP_NAME is not set")
			} else {
				require.NotContains(t, logs.String(), "APP_NAME is not set")
			}
		})
	}
}

func TestPrepareActivationMissing(t *testing.T) {
	build := testutil.TempDir(t)
	l := &Launcher{Config: config.Default(), Log: hclog.NewNullLogger()}

	plan, err := l.Prepare(context.Background(), config.Environment{"BUILD": build, "PATH": "/bin"}, []string{"echo", "hello"})
	require.Nil(t, plan)
	require.True(t, errors.Is(err, ErrActivation))
	require.True(t, errors.Is(err, activation.ErrNotFound))
	require.Equal(t, 1, ExitCode(err))
}

func TestPrepareCustomActivateScript(t *testing.T) {
	build := testutil.TempDir(t)
	testutil.WriteFile(t, filepath.Join(build, "etc", "scl_enable"), fmt.Sprintf(`
export PATH=%s/opt/bin:$PATH
export X_SCLS="rh-python38"
`, build), 0o644)
	gunicorn := filepath.Join(build, "opt", "bin", "gunicorn")
	testutil.WriteFile(t, gunicorn, "#!/bin/sh\n", 0o755)

	conf := config.Default()
	conf.ActivateScript = "etc/scl_enable"
	conf.DefaultCommand = "gunicorn ${APP_NAME}:app --bind ${HOST_IP}:${HOST_PORT}"
	l := &Launcher{Config: conf, Log: hclog.NewNullLogger()}

	plan, err := l.Prepare(context.Background(), config.Environment{"BUILD": build, "PATH": "/bin", "APP_NAME": "wsgi"}, nil)
	require.NoError(t, err)
	require.Equal(t, gunicorn, plan.Path)
	require.Equal(t, []string{"gunicorn", "wsgi:app", "--bind", "0.0.0.0:8000"}, plan.Argv)
	require.Equal(t, "rh-python38", plan.Env["X_SCLS"])
}

func TestPrepareCommandNotFound(t *testing.T) {
	build := testutil.AppRoot(t)
	l := &Launcher{Config: config.Default(), Log: hclog.NewNullLogger()}

	_, err := l.Prepare(context.Background(), config.Environment{"BUILD": build, "PATH": "/nonexistent"}, []string{"no-such-app"})
	require.True(t, errors.Is(err, ErrCommandNotFound))
	require.Equal(t, ExitNotFound, ExitCode(err))
}

func TestPlanString(t *testing.T) {
	plan := &Plan{Argv: []string{"sh", "-c", "echo hello world"}}
	require.Equal(t, `sh -c 'echo hello world'`, plan.String())
}

func TestExitCode(t *testing.T) {
	cases := map[string]struct {
		err     error
		expCode int
	}{
		"nil":                {nil, 0},
		"activation exit":    {fmt.Errorf("%w: %w", ErrActivation, &activation.ExitError{Path: "x", Status: 33}), 33},
		"activation missing": {fmt.Errorf("%w: %w", ErrActivation, activation.ErrNotFound), 1},
		"activation eacces":  {fmt.Errorf("%w: %w", ErrActivation, &os.PathError{Op: "open", Err: syscall.EACCES}), 1},
		"command not found":  {ErrCommandNotFound, ExitNotFound},
		"not executable":     {ErrNotExecutable, ExitCannotExecute},
		"exec enoent":        {&os.PathError{Op: "exec", Err: syscall.ENOENT}, ExitNotFound},
		"exec permission":    {fmt.Errorf("exec: %w", syscall.EACCES), ExitCannotExecute},
		"exec bad format":    {fmt.Errorf("exec: %w", syscall.ENOEXEC), ExitCannotExecute},
		"empty command":      {ErrEmptyCommand, 1},
		"anything else":      {errors.New("boom"), 1},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, c.expCode, ExitCode(c.err))
		})
	}
}
