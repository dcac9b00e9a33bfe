package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oxhq/rhai-hir/internal/config"
	"github.com/oxhq/rhai-hir/internal/hir"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	full := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func TestLoadFindsMatchingFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.rhai", "let x = 1;")
	writeFile(t, root, "lib/util.rhai", "export fn helper() { 1 }")
	writeFile(t, root, "notes.txt", "not a script")

	cfg := &config.Config{
		Root:             root,
		IncludeGlobs:     []string{"**/*.rhai"},
		RespectGitignore: true,
		MaxBytes:         1024 * 1024,
	}

	h := hir.New()
	res, err := Load(h, cfg)
	require.NoError(t, err)
	require.Len(t, res.Loaded, 2)
	require.Contains(t, res.Skipped, "notes.txt")
	require.Empty(t, res.Errors)
}

func TestLoadRespectsExcludeGlobs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.rhai", "let x = 1;")
	writeFile(t, root, "testdata/fixture.rhai", "let y = 2;")

	cfg := &config.Config{
		Root:         root,
		IncludeGlobs: []string{"**/*.rhai"},
		ExcludeGlobs: []string{"**/testdata/**"},
		MaxBytes:     1024 * 1024,
	}

	h := hir.New()
	res, err := Load(h, cfg)
	require.NoError(t, err)
	require.Len(t, res.Loaded, 1)
	require.Contains(t, res.Loaded[0], "main.rhai")
}

func TestLoadRespectsGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.rhai", "let x = 1;")
	writeFile(t, root, "build/generated.rhai", "let z = 3;")
	writeFile(t, root, ".gitignore", "build/\n")

	cfg := &config.Config{
		Root:             root,
		IncludeGlobs:     []string{"**/*.rhai"},
		RespectGitignore: true,
		MaxBytes:         1024 * 1024,
	}

	h := hir.New()
	res, err := Load(h, cfg)
	require.NoError(t, err)
	require.Len(t, res.Loaded, 1)
	require.Contains(t, res.Loaded[0], "main.rhai")
}

func TestLoadSkipsOversizedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "big.rhai", "let x = 1; // "+string(make([]byte, 100)))

	cfg := &config.Config{
		Root:         root,
		IncludeGlobs: []string{"**/*.rhai"},
		MaxBytes:     10,
	}

	h := hir.New()
	res, err := Load(h, cfg)
	require.NoError(t, err)
	require.Empty(t, res.Loaded)
	require.Contains(t, res.Skipped, "big.rhai")
}

func TestLoadRecordsParseErrorsWithoutAbortingWalk(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "broken.rhai", "let x = ;")
	writeFile(t, root, "ok.rhai", "let y = 1;")

	cfg := &config.Config{
		Root:         root,
		IncludeGlobs: []string{"**/*.rhai"},
		MaxBytes:     1024 * 1024,
	}

	h := hir.New()
	res, err := Load(h, cfg)
	require.NoError(t, err)
	require.Len(t, res.Loaded, 2, "both files are added even when one has parse errors")
	require.Len(t, res.Errors, 1)
	require.Contains(t, res.Errors[0].Path, "broken.rhai")
}

func TestLoadRejectsMissingRoot(t *testing.T) {
	cfg := &config.Config{Root: filepath.Join(t.TempDir(), "does-not-exist")}
	h := hir.New()
	_, err := Load(h, cfg)
	require.Error(t, err)
}
