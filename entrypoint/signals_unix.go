//go:build !windows
// +build !windows

package entrypoint

import (
	"os"
	"syscall"

	mapset "github.com/deckarep/golang-set/v2"
)

// ignoredSignals are never forwarded to the application. SIGCHLD concerns the
// launcher itself and SIGURG is used by the Go runtime for preemption.
var ignoredSignals = mapset.NewSet[os.Signal](syscall.SIGCHLD, syscall.SIGURG)

// Forwardable reports whether sig should be passed on to the application.
func Forwardable(sig os.Signal) bool {
	return !ignoredSignals.Contains(sig)
}
