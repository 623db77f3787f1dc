// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

// Package launch is the container entrypoint:
//   - Default BUILD, HOST_IP and HOST_PORT when they are unset
//   - Activate the runtime environment under BUILD
//   - Replace the launcher process with the application command, or
//     the default command built from APP_NAME
package launch

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/bcgov/app-launcher/config"
	"github.com/bcgov/app-launcher/internal/launcher"
	"github.com/bcgov/app-launcher/logging"
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
)

type Command struct {
	UI cli.Ui

	// Output receives the launcher's log, including the startup line.
	// Defaults to os.Stdout.
	Output io.Writer

	log  hclog.Logger
	once sync.Once

	// exec replaces the process. Tests swap it out.
	exec func(path string, argv, env []string) error

	supervisor
}

func (c *Command) Help() string {
	return `usage: app-launcher launch [--] [command [args...]]

Prepares the container environment and starts the application.

  * BUILD, HOST_IP and HOST_PORT default to /opt/app-root, 0.0.0.0 and 8000
    when unset.
  * $BUILD/bin/activate is loaded. A missing activation script is fatal.
  * The given command is run verbatim. Without one, "python ${APP_NAME}.py"
    is run.

Arguments are never interpreted as flags. A leading "--" is dropped.

Additional options are read as JSON from APP_LAUNCHER_CONFIG_JSON.
`
}

func (c *Command) Synopsis() string {
	return "Entrypoint for running an application in a container"
}

// prepare resolves the launch plan. On failure it reports the error and
// returns the exit code to use.
func (c *Command) prepare(args []string) (*launcher.Plan, *config.Config, int) {
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}

	env := config.FromEnviron(os.Environ())
	conf, err := config.FromEnv(env)
	if err != nil {
		c.UI.Error(fmt.Sprintf("invalid launcher config: %s", err))
		return nil, nil, 1
	}

	output := c.Output
	if output == nil {
		output = os.Stdout
	}
	c.log = logging.FromConfig(conf).Logger(output)

	l := &launcher.Launcher{
		Config: conf,
		Log:    c.log,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	plan, err := l.Prepare(context.Background(), env, args)
	if err != nil {
		c.UI.Error(err.Error())
		return nil, nil, launcher.ExitCode(err)
	}
	return plan, conf, 0
}

func (c *Command) logStart(plan *launcher.Plan) {
	c.log.Info(fmt.Sprintf("starting %s on %s", strings.Join(plan.Argv, " "), plan.Settings.BindAddress()))
}
