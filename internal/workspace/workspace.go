// Package workspace loads a directory of Rhai sources into a Hir,
// filtering by include/exclude glob and .gitignore, mirroring how a
// language server would bulk-index a project root.
package workspace

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/oxhq/rhai-hir/internal/config"
	"github.com/oxhq/rhai-hir/internal/hir"
	"github.com/oxhq/rhai-hir/internal/syntax"
)

// FileError pairs a path with whatever went wrong loading it: an I/O
// failure reading the file, or a syntax error returned by the parser.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }

// LoadResult summarizes one Load call: which files were fed into the
// Hir, which were skipped by a filter, and which failed outright.
type LoadResult struct {
	Loaded  []string
	Skipped []string
	Errors  []FileError
}

// Load walks cfg.Root, feeding every matching file into h via
// AddSource and returning a summary of what happened. A file that
// fails to read or whose source has parse errors is recorded under
// Errors rather than aborting the whole load.
func Load(h *hir.Hir, cfg *config.Config) (*LoadResult, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving root %q: %w", cfg.Root, err)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("root %q is not a directory", cfg.Root)
	}

	gi := loadGitignore(root, cfg.RespectGitignore)
	res := &LoadResult{}

	walkErr := fs.WalkDir(os.DirFS(root), ".", func(relPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if relPath == "." {
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return fs.SkipDir
			}
			if gi != nil && gi.MatchesPath(relPath+"/") {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		if gi != nil && gi.MatchesPath(relPath) {
			res.Skipped = append(res.Skipped, relPath)
			return nil
		}
		if !matchesAny(relPath, cfg.IncludeGlobs, true) {
			res.Skipped = append(res.Skipped, relPath)
			return nil
		}
		if matchesAny(relPath, cfg.ExcludeGlobs, false) {
			res.Skipped = append(res.Skipped, relPath)
			return nil
		}

		fullPath := filepath.Join(root, relPath)
		info, err := d.Info()
		if err != nil {
			res.Errors = append(res.Errors, FileError{Path: fullPath, Err: err})
			return nil
		}
		if cfg.MaxBytes > 0 && info.Size() > cfg.MaxBytes {
			res.Skipped = append(res.Skipped, relPath)
			return nil
		}

		if loadErr := loadFile(h, fullPath); loadErr != nil {
			res.Errors = append(res.Errors, FileError{Path: fullPath, Err: loadErr})
			// A parse error still leaves the source in the Hir.
			if _, parseErr := loadErr.(syntax.ParseError); !parseErr {
				return nil
			}
		}
		res.Loaded = append(res.Loaded, fullPath)
		return nil
	})
	if walkErr != nil {
		return res, fmt.Errorf("walking %s: %w", root, walkErr)
	}
	return res, nil
}

// loadFile reads, parses, and registers one source with h. Parse
// errors are surfaced to the caller rather than silently swallowed;
// the resulting tree (best-effort, per the parser's own contract) is
// still added so a partially broken file doesn't vanish from the Hir.
func loadFile(h *hir.Hir, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	srcURL := "file://" + filepath.ToSlash(path)
	doc, parseErrs := syntax.Parse(srcURL, string(data))
	h.AddSource(srcURL, doc)
	if len(parseErrs) > 0 {
		return parseErrs[0]
	}
	return nil
}

// matchesAny reports whether path matches any of patterns, checked
// both against the full relative path (so `**/*.rhai` works) and the
// bare basename (so a plain `*.rhai` pattern matches regardless of
// depth). An empty pattern list matches everything when emptyMatches
// is set (the include-list default) and nothing otherwise (the
// exclude-list default).
func matchesAny(path string, patterns []string, emptyMatches bool) bool {
	if len(patterns) == 0 {
		return emptyMatches
	}
	base := filepath.Base(path)
	for _, pat := range patterns {
		if ok, _ := doublestar.Match(pat, path); ok {
			return true
		}
		if ok, _ := doublestar.Match(pat, base); ok {
			return true
		}
	}
	return false
}

// loadGitignore compiles root's .gitignore, if present and enabled.
// Unlike a long-running CLI scanning from the working directory, a
// one-shot workspace load only honors the root's own file: there is
// no ambient "current directory" to walk upward from.
func loadGitignore(root string, respect bool) *ignore.GitIgnore {
	if !respect {
		return nil
	}
	path := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}
	return gi
}
