package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the settings that drive a workspace load: where to scan,
// which files to include/exclude, and how large a file the loader will
// still accept.
type Config struct {
	Root             string
	IncludeGlobs     []string
	ExcludeGlobs     []string
	RespectGitignore bool
	MaxBytes         int64
	Verbose          bool
}

// LoadConfig loads configuration from environment variables, first
// merging in a local .env file if one is present (missing files are not
// an error).
func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Root:             os.Getenv("RHAI_HIR_ROOT"),
		RespectGitignore: true,
		MaxBytes:         5 * 1024 * 1024,
	}

	if cfg.Root == "" {
		cfg.Root = "."
	}

	if includes := os.Getenv("RHAI_HIR_INCLUDE"); includes != "" {
		cfg.IncludeGlobs = splitCSV(includes)
	} else {
		cfg.IncludeGlobs = []string{"**/*.rhai", "**/*.d.rhai"}
	}
	if excludes := os.Getenv("RHAI_HIR_EXCLUDE"); excludes != "" {
		cfg.ExcludeGlobs = splitCSV(excludes)
	}

	if noGitignore := os.Getenv("RHAI_HIR_NO_GITIGNORE"); noGitignore != "" {
		if b, err := strconv.ParseBool(noGitignore); err == nil && b {
			cfg.RespectGitignore = false
		}
	}

	if maxBytesStr := os.Getenv("RHAI_HIR_MAX_BYTES"); maxBytesStr != "" {
		if maxBytes, err := strconv.ParseInt(maxBytesStr, 10, 64); err == nil && maxBytes > 0 {
			cfg.MaxBytes = maxBytes
		}
	}

	if verboseStr := os.Getenv("RHAI_HIR_VERBOSE"); verboseStr != "" {
		if b, err := strconv.ParseBool(verboseStr); err == nil {
			cfg.Verbose = b
		}
	}

	return cfg
}

func splitCSV(s string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}
