package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/optionkit/internal/cli"
)

func writeManifest(t *testing.T, src string) string {
	t.Helper()
	filePath := filepath.Join(t.TempDir(), "schemas.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(src), 0600), "failed to set up test file")
	return filePath
}

func TestRun_CleanManifest(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	filePath := writeManifest(t, `
schema "user" {
  option "name" {
    type   = string
    reader = true
  }
  option "admin" {
    allow   = [true, false]
    default = false
  }
}
`)
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, &bytes.Buffer{}, []string{"--no-color", filePath})

	// --- Assert ---
	require.NoError(t, err)
	require.Contains(t, out.String(), "1 schema(s) checked, 0 finding(s)")
}

func TestRun_Findings(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	filePath := writeManifest(t, `
schema "user" {
  option "admin" {
    allow   = [true, false]
    default = "yes"
  }
}
`)
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, &bytes.Buffer{}, []string{"--no-color", filePath})

	// --- Assert ---
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 1, exitErr.Code)
	require.Contains(t, out.String(), "admin")
	require.Contains(t, out.String(), "1 finding(s)")
}

func TestRun_InvalidManifest(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A syntax error must surface as an ordinary error, not an exit code.
	filePath := writeManifest(t, `
schema "user" {
  option "name" {
`)

	// --- Act ---
	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{filePath})

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse manifest")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, &bytes.Buffer{}, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Providing an unknown flag will cause cli.Parse to return an error.
	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, &bytes.Buffer{}, args)

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
