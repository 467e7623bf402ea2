package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	errs "github.com/matzehuels/cratetower/pkg/errors"
	"github.com/matzehuels/cratetower/pkg/observability"
)

const sampleInput = `    [D]
[N] [C]
[Z] [M] [P]
 1   2   3

move 1 from 2 to 1
move 3 from 1 to 3
move 2 from 2 to 1
move 1 from 1 to 2
`

// execute runs the root command with args and returns what it wrote to
// its output stream.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(t.Context())
	return out.String(), err
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSimulateCommand(t *testing.T) {
	path := writeInput(t, sampleInput)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default mode", []string{"simulate", path}, "CMZ\n"},
		{"block mode", []string{"simulate", "--mode", "block", path}, "MCD\n"},
		{"alias", []string{"simulate", "-m", "9001", path}, "MCD\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, "", tt.args...)
			if err != nil {
				t.Fatalf("simulate error: %v", err)
			}
			if !strings.HasPrefix(out, tt.want) {
				t.Errorf("output = %q, want prefix %q", out, tt.want)
			}
		})
	}
}

func TestSimulateCommandStdinJSON(t *testing.T) {
	out, err := execute(t, sampleInput, "simulate", "--no-cache", "--format", "json", "-")
	if err != nil {
		t.Fatalf("simulate error: %v", err)
	}

	var rep struct {
		Mode string `json:"mode"`
		Tops string `json:"tops"`
	}
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("invalid json %q: %v", out, err)
	}
	if rep.Mode != "single" || rep.Tops != "CMZ" {
		t.Errorf("report = %+v", rep)
	}
}

func TestSimulateCommandConfigMode(t *testing.T) {
	cfg := writeConfig(t, "mode = \"block\"\n[cache]\nbackend = \"none\"\n")
	out, err := execute(t, sampleInput, "--config", cfg, "simulate", "-")
	if err != nil {
		t.Fatalf("simulate error: %v", err)
	}
	if !strings.HasPrefix(out, "MCD\n") {
		t.Errorf("config mode should apply, got %q", out)
	}
}

func TestSimulateCommandMetricsFile(t *testing.T) {
	t.Cleanup(observability.Reset)
	metrics := filepath.Join(t.TempDir(), "run.prom")
	if _, err := execute(t, sampleInput, "simulate", "--no-cache", "--metrics-file", metrics, "-"); err != nil {
		t.Fatalf("simulate error: %v", err)
	}
	data, err := os.ReadFile(metrics)
	if err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}
	if !strings.Contains(string(data), "cratetower_runs_total") {
		t.Errorf("metrics file missing runs counter:\n%s", data)
	}
}

func TestSimulateCommandErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		args  []string
		code  errs.Code
	}{
		{"unknown stack", " 1 2\n\nmove 1 from 5 to 1\n", nil, errs.ErrCodeUnknownStack},
		{"bad mode", sampleInput, []string{"--mode", "fast"}, errs.ErrCodeInvalidMode},
		{"bad format", sampleInput, []string{"--format", "xml"}, errs.ErrCodeInvalidInput},
		{"empty input", "  \n", nil, errs.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"simulate", "--no-cache"}, tt.args...)
			_, err := execute(t, tt.input, append(args, "-")...)
			if !errs.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestCachePathCommand(t *testing.T) {
	out, err := execute(t, "", "cache", "path")
	if err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), appName) {
		t.Errorf("cache path = %q", out)
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := execute(t, "", "completion", shell)
			if err != nil {
				t.Fatalf("completion %s error: %v", shell, err)
			}
			if !strings.Contains(out, appName) {
				t.Errorf("completion script for %s does not mention %s", shell, appName)
			}
		})
	}

	if _, err := execute(t, "", "completion", "tcsh"); err == nil {
		t.Error("unsupported shell should fail")
	}
}
