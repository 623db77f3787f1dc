// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"net"

	"github.com/mitchellh/mapstructure"
)

const (
	BuildEnvVar    = "BUILD"
	HostIPEnvVar   = "HOST_IP"
	HostPortEnvVar = "HOST_PORT"
	AppNameEnvVar  = "APP_NAME"

	// DefaultBuild is the application root used when BUILD is unset.
	DefaultBuild = "/opt/app-root"

	// DefaultHostIP is the wildcard bind address used when HOST_IP is unset.
	DefaultHostIP = "0.0.0.0"

	// DefaultHostPort is the bind port used when HOST_PORT is unset.
	DefaultHostPort = "8000"
)

// Settings holds the launcher's view of the environment. It is populated once
// at startup by LoadSettings and passed explicitly from there on.
type Settings struct {
	Build    string `mapstructure:"BUILD"`
	HostIP   string `mapstructure:"HOST_IP"`
	HostPort string `mapstructure:"HOST_PORT"`
	AppName  string `mapstructure:"APP_NAME"`

	// AppNameSet is false when APP_NAME was absent from the environment.
	AppNameSet bool `mapstructure:"-"`
}

// ApplyDefaults assigns the documented defaults for BUILD, HOST_IP and
// HOST_PORT to env, leaving any value that is already present untouched.
// It returns the names of the variables that were defaulted.
func ApplyDefaults(env Environment) []string {
	defaults := []struct{ name, value string }{
		{BuildEnvVar, DefaultBuild},
		{HostIPEnvVar, DefaultHostIP},
		{HostPortEnvVar, DefaultHostPort},
	}

	var applied []string
	for _, d := range defaults {
		if env.SetDefault(d.name, d.value) {
			applied = append(applied, d.name)
		}
	}
	return applied
}

// LoadSettings applies defaults to env and decodes the result into Settings.
func LoadSettings(env Environment) (*Settings, error) {
	ApplyDefaults(env)

	var settings Settings
	if err := mapstructure.Decode(map[string]string(env), &settings); err != nil {
		return nil, fmt.Errorf("decoding settings from environment: %w", err)
	}
	_, settings.AppNameSet = env.Lookup(AppNameEnvVar)
	return &settings, nil
}

// BindAddress is the host:port the application is expected to listen on.
func (s *Settings) BindAddress() string {
	return net.JoinHostPort(s.HostIP, s.HostPort)
}
