//go:build !windows
// +build !windows

package launch

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/bcgov/app-launcher/entrypoint"
	"github.com/bcgov/app-launcher/internal/launcher"
)

type supervisor struct {
	sigs   chan os.Signal
	appCmd *entrypoint.Cmd
}

func (c *Command) init() {
	if c.exec == nil {
		c.exec = entrypoint.Exec
	}
}

func (c *Command) Run(args []string) int {
	c.once.Do(c.init)

	plan, conf, code := c.prepare(args)
	if plan == nil {
		return code
	}

	c.logStart(plan)
	if conf.Supervise {
		return c.supervise(plan)
	}
	return c.replace(plan)
}

// replace execs the application in place of the launcher. It only returns
// when the exec fails.
func (c *Command) replace(plan *launcher.Plan) int {
	err := c.exec(plan.Path, plan.Argv, plan.Env.Slice())
	if err == nil {
		// Only reachable with a stubbed exec.
		return 0
	}
	c.UI.Error(err.Error())
	return launcher.ExitCode(err)
}

// supervise runs the application as a child process, forwards signals to it
// and returns its exit code.
func (c *Command) supervise(plan *launcher.Plan) int {
	c.sigs = make(chan os.Signal, 8)
	c.appCmd = entrypoint.NewCmd(c.log, plan.Path, plan.Argv, plan.Env.Slice())

	signal.Notify(c.sigs)
	defer c.cleanup()

	go c.appCmd.Run()
	if _, ok := <-c.appCmd.Started(); !ok {
		err := c.appCmd.StartErr()
		c.UI.Error(fmt.Sprintf("starting %s: %s", plan.Path, err))
		return launcher.ExitCode(err)
	}

	for {
		select {
		case <-c.appCmd.Done():
			return c.appCmd.ExitCode()
		case sig := <-c.sigs:
			c.forwardSignal(sig)
		}
	}
}

func (c *Command) forwardSignal(sig os.Signal) {
	if !entrypoint.Forwardable(sig) {
		return
	}
	c.log.Debug("forwarding", "signal", sig)
	if err := c.appCmd.Process.Signal(sig); err != nil {
		c.log.Warn("forwarding signal", "signal", sig, "err", err.Error())
	}
}

func (c *Command) cleanup() {
	signal.Stop(c.sigs)
	<-c.appCmd.Done()
}
