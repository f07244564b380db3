package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the root command with args and returns stdout, stderr,
// and the execution error.
func runCLI(args ...string) (string, string, error) {
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// pyo3Manifest writes a minimal pyo3 crate and returns its Cargo.toml path.
func pyo3Manifest(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	manifest := filepath.Join(dir, "Cargo.toml")
	require.NoError(t, os.WriteFile(manifest, []byte(`
[package]
name = "demo"

[dependencies]
pyo3 = "0.22"
`), 0o644))
	return manifest
}

func TestGenerateToStdout(t *testing.T) {
	manifest := pyo3Manifest(t)
	stdout, stderr, err := runCLI("generate", "github", "-m", manifest)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, "# This file is autogenerated by wheelsmith v"))
	assert.Contains(t, stdout, "jobs:")
	assert.Contains(t, stdout, "--manifest-path "+manifest)
	assert.Empty(t, stderr)
}

func TestGenerateToFile(t *testing.T) {
	manifest := pyo3Manifest(t)
	out := filepath.Join(t.TempDir(), "CI.yml")
	stdout, _, err := runCLI("generate", "github", "-m", manifest, "-o", out)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Wrote github pipeline to "+out)
	written, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(written), "jobs:")
}

func TestGenerateJSONOutput(t *testing.T) {
	manifest := pyo3Manifest(t)
	stdout, _, err := runCLI("--format", "json", "generate", "gitlab", "-m", manifest)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	_, err = uuid.Parse(resp.TraceID)
	assert.NoError(t, err, "trace_id must be a UUID")

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "gitlab", data["provider"])
	assert.Equal(t, "demo", data["project"])
	assert.Contains(t, data["pipeline"], "maturin publish")
}

func TestGenerateBadProvider(t *testing.T) {
	manifest := pyo3Manifest(t)
	_, stderr, err := runCLI("generate", "circleci", "-m", manifest)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "Error [E_BAD_PROVIDER]")
}

func TestGenerateBadPlatform(t *testing.T) {
	manifest := pyo3Manifest(t)
	_, stderr, err := runCLI("generate", "github", "-m", manifest, "--platform", "solaris")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "Error [E_BAD_PLATFORM]")
}

func TestGenerateMissingManifest(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "Cargo.toml")
	_, stderr, err := runCLI("generate", "github", "-m", missing)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "Error [E_MANIFEST]")
}

func TestGenerateNoBridgeJSON(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "Cargo.toml")
	require.NoError(t, os.WriteFile(manifest, []byte(`
[package]
name = "demo"
`), 0o644))

	stdout, _, err := runCLI("--format", "json", "generate", "github", "-m", manifest)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNoBridge, resp.Error.Code)
}

func TestGenerateUnwritableOutput(t *testing.T) {
	manifest := pyo3Manifest(t)
	out := filepath.Join(t.TempDir(), "no", "such", "dir", "CI.yml")
	_, stderr, err := runCLI("generate", "github", "-m", manifest, "-o", out)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "Error [E_WRITE_FAILED]")
}

func TestGenerateRegenerationHint(t *testing.T) {
	manifest := pyo3Manifest(t)
	stdout, _, err := runCLI("generate", "github", "-m", manifest,
		"--platform", "linux", "--platform", "macos", "--pytest", "--zig")
	require.NoError(t, err)

	hint := "wheelsmith generate github --manifest-path " + manifest +
		" --platform linux --platform macos --pytest --zig"
	assert.Contains(t, stdout, "#    "+hint+"\n")
}

func TestGenerateVerboseLogsToStderr(t *testing.T) {
	manifest := pyo3Manifest(t)
	stdout, stderr, err := runCLI("-v", "generate", "github", "-m", manifest)
	require.NoError(t, err)

	assert.Contains(t, stderr, `Resolved project "demo"`)
	assert.NotContains(t, stdout, "Resolved project")
}
