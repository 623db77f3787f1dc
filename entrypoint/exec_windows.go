//go:build windows
// +build windows

// Package entrypoint starts the application process for a container
// entrypoint.
//
// Process handling is different on Windows, and since we intend for this to be the entrypoint
// of a Docker container, we only need to support Linux.
package entrypoint

import "errors"

func Exec(path string, argv, env []string) error {
	return errors.New("not implemented on Windows")
}
