// ABOUTME: Test helpers for config tests
// ABOUTME: Provides utilities for environment variable management

package config

import (
	"os"
	"strings"
	"testing"
)

// withCleanShareEnv clears the environment, sets Share credentials to test
// values, and returns a cleanup function that restores the original env.
// Use with t.Cleanup().
func withCleanShareEnv(t *testing.T) func() {
	t.Helper()
	return withCleanShareEnvAndExtra(t, nil)
}

// withCleanShareEnvAndExtra clears the environment, sets Share credentials
// plus additional vars, and returns a cleanup function that restores the
// original env. Use with t.Cleanup().
func withCleanShareEnvAndExtra(t *testing.T, extra map[string]string) func() {
	t.Helper()

	originalEnv := os.Environ()

	os.Clearenv()
	os.Setenv("SHARE_USERNAME", "alice")
	os.Setenv("SHARE_PASSWORD", "secret")

	for key, value := range extra {
		os.Setenv(key, value)
	}

	return func() {
		os.Clearenv()
		for _, env := range originalEnv {
			if key, value, ok := strings.Cut(env, "="); ok {
				os.Setenv(key, value)
			}
		}
	}
}
