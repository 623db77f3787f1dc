package testutil

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/bcgov/app-launcher/config"
	"github.com/stretchr/testify/require"
)

// TempDir creates a temporary directory. A test cleanup is configured to remove the
// temp directory and its contents.
func TempDir(t *testing.T) string {
	dir, err := os.MkdirTemp("", "")
	require.NoError(t, err)

	t.Cleanup(func() {
		err := os.RemoveAll(dir)
		if err != nil {
			t.Logf("warning, failed to cleanup temp dir %s - %s", dir, err)
		}
	})

	return dir
}

// SetLauncherConfigEnvVar sets the APP_LAUNCHER_CONFIG_JSON environment variable
// to the JSON string of the provided config.Config object. A test cleanup is added
// to restore the environment variable.
func SetLauncherConfigEnvVar(t *testing.T, conf *config.Config) {
	configBytes, err := json.MarshalIndent(conf, "", "  ")
	require.NoError(t, err)

	t.Setenv(config.ConfigEnvironmentVariable, string(configBytes))
	t.Logf("%s=%s", config.ConfigEnvironmentVariable, os.Getenv(config.ConfigEnvironmentVariable))
}

// UnsetEnv removes key from the process environment for the duration of the test.
func UnsetEnv(t *testing.T, key string) {
	// t.Setenv registers the restore of the original value.
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}
