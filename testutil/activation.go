package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// VenvActivateScript returns the bin/activate script of a Python venv rooted
// at venvDir, in the shape CPython 3.11+ writes it. Note the unguarded
// `hash -r` calls.
func VenvActivateScript(venvDir string) string {
	return fmt.Sprintf(`# This file must be used with "source bin/activate" *from bash*
# you cannot run it directly

deactivate () {
    # reset old environment variables
    if [ -n "${_OLD_VIRTUAL_PATH:-}" ] ; then
        PATH="${_OLD_VIRTUAL_PATH:-}"
        export PATH
        unset _OLD_VIRTUAL_PATH
    fi
    if [ -n "${_OLD_VIRTUAL_PYTHONHOME:-}" ] ; then
        PYTHONHOME="${_OLD_VIRTUAL_PYTHONHOME:-}"
        export PYTHONHOME
        unset _OLD_VIRTUAL_PYTHONHOME
    fi

    # Call hash to forget past commands. Without forgetting
    # past commands the $PATH changes we made may not be respected
    hash -r 2> /dev/null

    if [ -n "${_OLD_VIRTUAL_PS1:-}" ] ; then
        PS1="${_OLD_VIRTUAL_PS1:-}"
        export PS1
        unset _OLD_VIRTUAL_PS1
    fi

    unset VIRTUAL_ENV
    unset VIRTUAL_ENV_PROMPT
    if [ ! "${1:-}" = "nondestructive" ] ; then
    # Self destruct!
        unset -f deactivate
    fi
}

# unset irrelevant variables
deactivate nondestructive

VIRTUAL_ENV=%q
export VIRTUAL_ENV

_OLD_VIRTUAL_PATH="$PATH"
PATH="$VIRTUAL_ENV/bin:$PATH"
export PATH

# unset PYTHONHOME if set
# this will fail if PYTHONHOME is set to the empty string (which is bad anyway)
# could use `+"`if (set -u; : $PYTHONHOME) ;`"+` in bash
if [ -n "${PYTHONHOME:-}" ] ; then
    _OLD_VIRTUAL_PYTHONHOME="${PYTHONHOME:-}"
    unset PYTHONHOME
fi

if [ -z "${VIRTUAL_ENV_DISABLE_PROMPT:-}" ] ; then
    _OLD_VIRTUAL_PS1="${PS1:-}"
    PS1="(app-root) ${PS1:-}"
    export PS1
    VIRTUAL_ENV_PROMPT="(app-root) "
    export VIRTUAL_ENV_PROMPT
fi

# Call hash to forget past commands. Without forgetting
# past commands the $PATH changes we made may not be respected
hash -r 2> /dev/null
`, venvDir)
}

// AppRoot creates a BUILD directory containing a venv-style bin/activate.
// It returns the directory.
func AppRoot(t *testing.T) string {
	build := TempDir(t)
	WriteFile(t, filepath.Join(build, "bin", "activate"), VenvActivateScript(build), 0o644)
	return build
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string, perm os.FileMode) {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
}

// FakeInterpreter installs an executable named name in build/bin that prints
// its own name, its arguments and the bind settings it was given.
func FakeInterpreter(t *testing.T, build, name string) string {
	path := filepath.Join(build, "bin", name)
	WriteFile(t, path, `#!/bin/sh
echo "$(basename "$0") $*"
echo "bind=${HOST_IP}:${HOST_PORT} venv=${VIRTUAL_ENV}"
`, 0o755)
	return path
}
