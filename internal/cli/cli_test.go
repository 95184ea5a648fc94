package cli

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/gypcmake/internal/app"
	"github.com/specialistvlad/gypcmake/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appConfig = app.Config

func TestParse(t *testing.T) {
	testCases := []struct {
		name   string
		args   []string
		assert func(t *testing.T, cfg *appConfig)
	}{
		{
			name: "positional snapshot with defaults",
			args: []string{"gyp_analysis.json"},
			assert: func(t *testing.T, cfg *appConfig) {
				assert.Equal(t, "gyp_analysis.json", cfg.SnapshotPath)
				assert.Equal(t, ".", cfg.OutDir)
				assert.Equal(t, "text", cfg.LogFormat)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.False(t, cfg.Parallel)
				assert.Empty(t, cfg.Token)
			},
		},
		{
			name: "every option",
			args: []string{
				"-s", "snap", "-o", "build", "-config", "gypcmake.hcl", "-guid", "abc",
				"-parallel", "-check", "-log-format", "JSON", "-log-level", "debug",
			},
			assert: func(t *testing.T, cfg *appConfig) {
				assert.Equal(t, "snap", cfg.SnapshotPath)
				assert.Equal(t, "build", cfg.OutDir)
				assert.Equal(t, "gypcmake.hcl", cfg.SettingsPath)
				assert.Equal(t, "abc", cfg.Token)
				assert.True(t, cfg.Parallel)
				assert.True(t, cfg.Check)
				assert.Equal(t, "json", cfg.LogFormat)
				assert.Equal(t, "debug", cfg.LogLevel)
			},
		},
		{
			name: "long snapshot flag",
			args: []string{"-snapshot", "snaps/", "-out", "tree", "-clean"},
			assert: func(t *testing.T, cfg *appConfig) {
				assert.Equal(t, "snaps/", cfg.SnapshotPath)
				assert.Equal(t, "tree", cfg.OutDir)
				assert.True(t, cfg.Clean)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, shouldExit, err := Parse(tc.args, &bytes.Buffer{})
			require.NoError(t, err)
			require.False(t, shouldExit)
			require.NotNil(t, cfg)
			tc.assert(t, cfg)
		})
	}
}

func TestParse_Environment(t *testing.T) {
	t.Setenv("GYPCMAKE_OUT", "from-env")
	t.Setenv("GYPCMAKE_LOG_LEVEL", "warn")
	t.Setenv("GYPCMAKE_PARALLEL", "true")
	t.Setenv("GYPCMAKE_GUID", "envtoken")

	cfg, _, err := Parse([]string{"snap.json"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.OutDir)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.Parallel)
	assert.Equal(t, "envtoken", cfg.Token)

	cfg, _, err = Parse([]string{"-o", "flag-wins", "snap.json"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "flag-wins", cfg.OutDir)
}

func TestParse_ShouldExit(t *testing.T) {
	for _, args := range [][]string{{"-h"}, {}} {
		out := &bytes.Buffer{}
		cfg, shouldExit, err := Parse(args, out)
		require.NoError(t, err)
		assert.True(t, shouldExit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{"unknown flag", []string{"-nope"}, "flag provided but not defined"},
		{"bad log format", []string{"-log-format", "xml", "s"}, "invalid log-format"},
		{"bad log level", []string{"-log-level", "loud", "s"}, "invalid log-level"},
		{"two snapshots", []string{"a.json", "b.json"}, "only one snapshot path"},
		{"check and clean", []string{"-check", "-clean", "s"}, "mutually exclusive"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(tc.args, &bytes.Buffer{})
			require.Error(t, err)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.errMsg)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	const key = "GYPCMAKE_DOTENV_TEST"
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
	dir := t.TempDir()

	t.Run("missing file is ignored", func(t *testing.T) {
		logs.Reset()
		loadDotEnv(filepath.Join(dir, "absent.env"))
		assert.Empty(t, logs.String())
	})

	t.Run("valid file sets variables", func(t *testing.T) {
		logs.Reset()
		loadDotEnv(testutil.WriteFile(t, dir, "good.env", key+"=fromfile\n"))
		assert.Equal(t, "fromfile", os.Getenv(key))
		assert.Empty(t, logs.String())
	})

	t.Run("malformed file is reported", func(t *testing.T) {
		logs.Reset()
		bad := testutil.WriteFile(t, dir, "bad.env", "GYPCMAKE_BROKEN=\"unterminated\n")
		loadDotEnv(bad)
		assert.Contains(t, logs.String(), "Ignoring unusable .env file.")
		assert.Contains(t, logs.String(), bad)
	})
}
