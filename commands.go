// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"os"

	cmdLaunch "github.com/bcgov/app-launcher/subcommand/launch"
	cmdPlan "github.com/bcgov/app-launcher/subcommand/plan"
	cmdVersion "github.com/bcgov/app-launcher/subcommand/version"
	"github.com/bcgov/app-launcher/version"
	"github.com/mitchellh/cli"
)

// Commands is the mapping of all available app-launcher commands.
var Commands map[string]cli.CommandFactory

func init() {
	ui := &cli.BasicUi{Writer: os.Stdout, ErrorWriter: os.Stderr}

	Commands = map[string]cli.CommandFactory{
		"version": func() (cli.Command, error) {
			return &cmdVersion.Command{UI: ui, Version: version.GetHumanVersion()}, nil
		},
		"launch": func() (cli.Command, error) {
			return &cmdLaunch.Command{UI: ui}, nil
		},
		"plan": func() (cli.Command, error) {
			return &cmdPlan.Command{UI: ui}, nil
		},
	}
}

func helpFunc() cli.HelpFunc {
	// This should be updated for any commands we want to hide for any reason.
	// Hidden commands can still be executed if you know the command, but
	// aren't shown in any help output.
	hidden := map[string]struct{}{}

	var include []string
	for k := range Commands {
		if _, ok := hidden[k]; !ok {
			include = append(include, k)
		}
	}

	return cli.FilteredHelpFunc(include, cli.BasicHelpFunc("app-launcher"))
}
