package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestXDGPaths(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name   string
		env    string
		value  string
		fn     func() (string, error)
		expect string
	}{
		{"cache default", "XDG_CACHE_HOME", "", cacheDir,
			filepath.Join(home, ".cache", appName)},
		{"cache xdg", "XDG_CACHE_HOME", "/tmp/custom-cache", cacheDir,
			filepath.Join("/tmp/custom-cache", appName)},
		{"config default", "XDG_CONFIG_HOME", "", configPath,
			filepath.Join(home, ".config", appName, "config.toml")},
		{"config xdg", "XDG_CONFIG_HOME", "/tmp/custom-config", configPath,
			filepath.Join("/tmp/custom-config", appName, "config.toml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)

			got, err := tt.fn()
			if err != nil {
				t.Fatalf("error: %v", err)
			}
			if got != tt.expect {
				t.Errorf("got %q, want %q", got, tt.expect)
			}
		})
	}
}

func TestAppName(t *testing.T) {
	if appName != "cratetower" {
		t.Errorf("appName = %q, want %q", appName, "cratetower")
	}
}
