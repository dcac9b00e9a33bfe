package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterFlagsSeedsDefaultsFromConfig(t *testing.T) {
	cfg := &Config{
		Root:             ".",
		IncludeGlobs:     []string{"**/*.rhai"},
		RespectGitignore: true,
		MaxBytes:         2048,
	}
	fs, args, err := ParseArgs("rhai-hir", []string{"a.rhai", "b.rhai"}, cfg)
	require.NoError(t, err)
	require.Equal(t, []string{"a.rhai", "b.rhai"}, args)
	require.Equal(t, ".", cfg.Root)
	require.Equal(t, []string{"**/*.rhai"}, cfg.IncludeGlobs)
	require.True(t, cfg.RespectGitignore)
	require.Equal(t, int64(2048), cfg.MaxBytes)

	root, err := fs.GetString("root")
	require.NoError(t, err)
	require.Equal(t, ".", root)
}

func TestParseArgsAppliesFlagOverrides(t *testing.T) {
	cfg := &Config{Root: ".", MaxBytes: 2048, RespectGitignore: true}
	_, positional, err := ParseArgs("rhai-hir", []string{
		"--root", "/tmp/scripts",
		"--max-bytes", "4096",
		"--gitignore=false",
		"--verbose",
		"query.rhai",
	}, cfg)

	require.NoError(t, err)
	require.Equal(t, []string{"query.rhai"}, positional)
	require.Equal(t, "/tmp/scripts", cfg.Root)
	require.Equal(t, int64(4096), cfg.MaxBytes)
	require.False(t, cfg.RespectGitignore)
	require.True(t, cfg.Verbose)
}

func TestParseArgsRejectsUnknownFlag(t *testing.T) {
	cfg := &Config{}
	_, _, err := ParseArgs("rhai-hir", []string{"--not-a-real-flag"}, cfg)
	require.Error(t, err)
}

func TestParseArgsSplitsIncludeExcludeLists(t *testing.T) {
	cfg := &Config{}
	_, _, err := ParseArgs("rhai-hir", []string{
		"--include", "**/*.rhai,**/*.d.rhai",
		"--exclude", "**/testdata/**",
	}, cfg)
	require.NoError(t, err)
	require.Equal(t, []string{"**/*.rhai", "**/*.d.rhai"}, cfg.IncludeGlobs)
	require.Equal(t, []string{"**/testdata/**"}, cfg.ExcludeGlobs)
}
