// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

//go:build !windows
// +build !windows

// Package entrypoint starts the application process for a container
// entrypoint, either by replacing the current process or by running it as a
// child with signal forwarding.
package entrypoint

import (
	"fmt"
	"syscall"
)

// Exec replaces the current process image with path. On success it never
// returns. The process keeps its pid, standard streams, controlling terminal
// and session, so signals sent to the container's init reach the application.
func Exec(path string, argv, env []string) error {
	if err := syscall.Exec(path, argv, env); err != nil {
		return fmt.Errorf("exec %s: %w", path, err)
	}
	return nil
}
