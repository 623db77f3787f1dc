// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

package config

import (
	"encoding/json"
)

const (
	// DefaultActivateScript is the activation resource, relative to BUILD.
	DefaultActivateScript = "bin/activate"

	// DefaultCommandTemplate is the command run when no arguments are given.
	// It is split into words with shell rules after ${APP_NAME} is expanded.
	DefaultCommandTemplate = "python ${APP_NAME}.py"
)

// Config is the top-level launcher config object.
type Config struct {
	LogLevel       string `json:"logLevel,omitempty"`
	ActivateScript string `json:"activateScript,omitempty"`
	DefaultCommand string `json:"defaultCommand,omitempty"`

	// Supervise runs the application as a child process with signal
	// forwarding instead of replacing the launcher process.
	Supervise bool `json:"supervise,omitempty"`
}

// Default returns the config used when APP_LAUNCHER_CONFIG_JSON is unset.
func Default() *Config {
	return &Config{
		ActivateScript: DefaultActivateScript,
		DefaultCommand: DefaultCommandTemplate,
	}
}

// UnmarshalJSON is a custom unmarshaller that assigns defaults to certain fields
func (c *Config) UnmarshalJSON(data []byte) error {
	type Alias Config
	alias := (*Alias)(c)
	if err := json.Unmarshal(data, alias); err != nil {
		return err
	}

	if c.ActivateScript == "" {
		c.ActivateScript = DefaultActivateScript
	}
	if c.DefaultCommand == "" {
		c.DefaultCommand = DefaultCommandTemplate
	}
	return nil
}
