package cli_test

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/vk/optionkit/internal/cli"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("Success: Defaults come from the config schema", func(t *testing.T) {
		t.Parallel()
		cfg, shouldExit, err := cli.Parse([]string{"a.hcl", "dir"}, &bytes.Buffer{})
		require.NoError(t, err)
		require.False(t, shouldExit)

		if diff := cmp.Diff([]string{"a.hcl", "dir"}, cfg.Paths()); diff != "" {
			t.Errorf("paths mismatch (-want +got):\n%s", diff)
		}
		require.Equal(t, "info", cfg.LogLevel())
		require.Equal(t, "text", cfg.LogFormat())
		require.Equal(t, "table", cfg.Format())
		require.False(t, cfg.NoColor())
	})

	t.Run("Success: Explicit flags", func(t *testing.T) {
		t.Parallel()
		cfg, _, err := cli.Parse([]string{
			"--log-level", "DEBUG",
			"--log-format", "json",
			"--format", "json",
			"--no-color",
			"a.hcl",
		}, &bytes.Buffer{})
		require.NoError(t, err)
		require.Equal(t, "debug", cfg.LogLevel())
		require.Equal(t, "json", cfg.LogFormat())
		require.Equal(t, "json", cfg.Format())
		require.True(t, cfg.NoColor())
	})

	t.Run("Success: No paths prints usage", func(t *testing.T) {
		t.Parallel()
		out := &bytes.Buffer{}
		cfg, shouldExit, err := cli.Parse(nil, out)
		require.NoError(t, err)
		require.True(t, shouldExit)
		require.Nil(t, cfg)
		require.Contains(t, out.String(), "Usage:")
	})

	cases := []struct {
		name    string
		args    []string
		message string
	}{
		{"Failure: Invalid log level", []string{"--log-level", "verbose", "a.hcl"}, `"log_level"`},
		{"Failure: Invalid log format", []string{"--log-format", "xml", "a.hcl"}, `"log_format"`},
		{"Failure: Invalid report format", []string{"--format", "yaml", "a.hcl"}, `"yaml"`},
		{"Failure: Unknown flag", []string{"--nope", "a.hcl"}, "flag provided but not defined"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := cli.Parse(tc.args, &bytes.Buffer{})
			var exitErr *cli.ExitError
			require.ErrorAs(t, err, &exitErr)
			require.Equal(t, 2, exitErr.Code)
			require.Contains(t, exitErr.Message, tc.message)
		})
	}
}
