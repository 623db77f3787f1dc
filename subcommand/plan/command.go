// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package plan

import (
	"context"
	"fmt"
	"os"

	"github.com/bcgov/app-launcher/config"
	"github.com/bcgov/app-launcher/internal/launcher"
	"github.com/bcgov/app-launcher/logging"
	"github.com/mitchellh/cli"
)

type Command struct {
	UI cli.Ui
}

func (c *Command) Run(args []string) int {
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}

	env := config.FromEnviron(os.Environ())
	conf, err := config.FromEnv(env)
	if err != nil {
		c.UI.Error(fmt.Sprintf("invalid launcher config: %s", err))
		return 1
	}

	l := &launcher.Launcher{
		Config: conf,
		// Keep stdout for the plan itself.
		Log:    logging.FromConfig(conf).Logger(os.Stderr),
		Stdout: os.Stderr,
		Stderr: os.Stderr,
	}
	plan, err := l.Prepare(context.Background(), env, args)
	if err != nil {
		c.UI.Error(err.Error())
		return launcher.ExitCode(err)
	}

	s := plan.Settings
	c.UI.Output(fmt.Sprintf("%s=%s", config.BuildEnvVar, s.Build))
	c.UI.Output(fmt.Sprintf("%s=%s", config.HostIPEnvVar, s.HostIP))
	c.UI.Output(fmt.Sprintf("%s=%s", config.HostPortEnvVar, s.HostPort))
	if s.AppNameSet {
		c.UI.Output(fmt.Sprintf("%s=%s", config.AppNameEnvVar, s.AppName))
	} else {
		c.UI.Output(fmt.Sprintf("%s is not set", config.AppNameEnvVar))
	}
	if venv, ok := plan.Env.Lookup("VIRTUAL_ENV"); ok {
		c.UI.Output(fmt.Sprintf("VIRTUAL_ENV=%s", venv))
	}
	c.UI.Output(fmt.Sprintf("executable: %s", plan.Path))
	c.UI.Output(fmt.Sprintf("command: %s", plan.String()))
	return 0
}

func (c *Command) Synopsis() string {
	return "Shows what the launch command would run, without running it"
}

func (c *Command) Help() string {
	return `usage: app-launcher plan [--] [command [args...]]

Performs every step of "app-launcher launch" except starting the application:
defaults are applied, the runtime environment is activated and the command is
resolved against the activated PATH. The bind settings, the executable and the
command line are printed.

Exit codes match "app-launcher launch" for failures before the application
would start, and 0 otherwise.
`
}
