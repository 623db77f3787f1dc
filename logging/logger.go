// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package logging

import (
	"io"

	"github.com/bcgov/app-launcher/config"
	"github.com/hashicorp/go-hclog"
)

const (
	defaultLogLevel = "INFO"
	loggerName      = "app-launcher"
)

type LogOpts struct {
	LogLevel string
}

// FromConfig pulls log settings from the launcher config JSON.
func FromConfig(conf *config.Config) *LogOpts {
	level := conf.LogLevel
	if level == "" {
		level = defaultLogLevel
	}
	return &LogOpts{LogLevel: level}
}

// Logger returns a configured logger writing to output. A nil output
// means stderr.
func (l *LogOpts) Logger(output io.Writer) hclog.Logger {
	return hclog.New(
		&hclog.LoggerOptions{
			Name:   loggerName,
			Level:  hclog.LevelFromString(l.LogLevel),
			Output: output,
		},
	)
}
