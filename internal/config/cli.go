package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// RegisterFlags adds the workspace-scanning flags shared by every
// rhai-hir subcommand to fs, seeded from cfg's environment-derived
// defaults.
func RegisterFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.Root, "root", "r", cfg.Root, "Root directory to scan for sources.")
	fs.StringSliceVar(&cfg.IncludeGlobs, "include", cfg.IncludeGlobs, "Include file patterns (glob).")
	fs.StringSliceVar(&cfg.ExcludeGlobs, "exclude", cfg.ExcludeGlobs, "Exclude file patterns (glob).")
	fs.BoolVar(&cfg.RespectGitignore, "gitignore", cfg.RespectGitignore, "Respect .gitignore files while scanning.")
	fs.Int64Var(&cfg.MaxBytes, "max-bytes", cfg.MaxBytes, "Maximum file size to load.")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Enable verbose output.")
}

// ParseArgs parses args against a fresh FlagSet named name, registering
// the shared flags against cfg first. Returns the parsed set (so flag
// values can be read back) and the remaining positional arguments.
func ParseArgs(name string, args []string, cfg *Config) (*pflag.FlagSet, []string, error) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	RegisterFlags(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return fs, nil, fmt.Errorf("parsing flags: %w", err)
	}
	return fs, fs.Args(), nil
}
