package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/oxhq/rhai-hir/internal/config"
	"github.com/oxhq/rhai-hir/internal/hir"
	"github.com/oxhq/rhai-hir/internal/workspace"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
)

// loadWorkspace loads cfg.Root into a fresh Hir and prints a one-line
// summary of what was found.
func loadWorkspace(cfg *config.Config) (*hir.Hir, *workspace.LoadResult, error) {
	h := hir.New()
	res, err := workspace.Load(h, cfg)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Verbose {
		for _, p := range res.Skipped {
			fmt.Printf("  %s skip %s\n", yellow("-"), p)
		}
		for _, e := range res.Errors {
			fmt.Printf("  %s %v\n", color.New(color.FgRed).SprintFunc()("!"), e)
		}
	}
	fmt.Printf("%s loaded %d source(s), skipped %d, %d error(s)\n",
		cyan("*"), len(res.Loaded), len(res.Skipped), len(res.Errors))
	return h, res, nil
}

// errDiagnosticsFound signals a non-empty diagnostic set to main without
// printing a redundant "Error:" line — resolve already printed them.
var errDiagnosticsFound = errors.New("diagnostics found")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rhai-hir",
		Short: "Semantic indexer for Rhai scripts and definition files",
		Long:  "Builds a content-addressed semantic model (HIR) over a tree of Rhai sources and exposes it for diagnostics and cursor queries.",
	}

	root.AddCommand(newAddCmd(), newResolveCmd(), newQueryCmd(), newVerifyIdempotentCmd())
	return root
}

func newAddCmd() *cobra.Command {
	cfg := config.LoadConfig()
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Load a workspace and report what was indexed, without resolving",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, _, err := loadWorkspace(cfg)
			if err != nil {
				return err
			}
			fmt.Printf("%s symbols=%d scopes=%d modules=%d\n",
				green("✓"), h.SymbolCount(), h.ScopeCount(), h.ModuleCount())
			return nil
		},
	}
	config.RegisterFlags(cmd.Flags(), cfg)
	return cmd
}

func newResolveCmd() *cobra.Command {
	cfg := config.LoadConfig()
	jsonOut := false
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Load a workspace, run resolve_all, and print semantic diagnostics",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, res, err := loadWorkspace(cfg)
			if err != nil {
				return err
			}
			h.ResolveAll()
			total := 0
			for _, path := range res.Loaded {
				srcURL := "file://" + filepath.ToSlash(path)
				sh, ok := h.SourceByURL(srcURL)
				if !ok {
					continue
				}
				errs := h.ErrorsForSource(sh)
				total += len(errs)
				config.PrintDiagnostics(srcURL, errs, jsonOut)
			}
			if total > 0 {
				return errDiagnosticsFound
			}
			return nil
		},
	}
	config.RegisterFlags(cmd.Flags(), cfg)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit diagnostics as a JSON array.")
	return cmd
}

func newQueryCmd() *cobra.Command {
	cfg := config.LoadConfig()
	cmd := &cobra.Command{
		Use:   "query <file> <offset>",
		Short: "Resolve a workspace and report the symbol and visible names at a byte offset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, offsetStr := args[0], args[1]
			offset, err := strconv.ParseUint(offsetStr, 10, 32)
			if err != nil {
				return fmt.Errorf("parsing offset %q: %w", offsetStr, err)
			}

			h, _, err := loadWorkspace(cfg)
			if err != nil {
				return err
			}
			h.ResolveAll()

			absFile, err := absPath(file)
			if err != nil {
				return err
			}
			srcURL := "file://" + absFile
			src, ok := h.SourceByURL(srcURL)
			if !ok {
				return fmt.Errorf("%s was not loaded from root %s", file, cfg.Root)
			}

			runQuery(h, src, srcURL, uint32(offset))
			return nil
		},
	}
	config.RegisterFlags(cmd.Flags(), cfg)
	return cmd
}

func runQuery(h *hir.Hir, src hir.SourceHandle, srcURL string, offset uint32) {
	if sh, ok := h.SymbolAt(src, offset, false); ok {
		sym := h.Symbol(sh)
		fmt.Printf("%s symbol at %d: kind=%s name=%q\n", bold("*"), offset, kindName(sym.Kind), sym.Name())
	} else {
		fmt.Printf("%s no symbol covers offset %d\n", yellow("-"), offset)
	}

	visible := h.VisibleSymbolsFromOffset(src, offset)
	fmt.Printf("%s %d symbol(s) visible from offset %d:\n", cyan("*"), len(visible), offset)
	for _, sh := range visible {
		sym, ok := h.SymbolOK(sh)
		if !ok {
			continue
		}
		if name := sym.Name(); name != "" {
			fmt.Printf("  - %s (%s)\n", name, kindName(sym.Kind))
		}
	}
}

func newVerifyIdempotentCmd() *cobra.Command {
	cfg := config.LoadConfig()
	cmd := &cobra.Command{
		Use:   "verify-idempotent",
		Short: "Run resolve_all twice and diff the resulting diagnostics to check for drift",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, res, err := loadWorkspace(cfg)
			if err != nil {
				return err
			}

			h.ResolveAll()
			before := snapshotDiagnostics(h, res.Loaded)
			h.ResolveAll()
			after := snapshotDiagnostics(h, res.Loaded)

			return config.PrintIdempotenceDiff(before, after, cfg.Root)
		},
	}
	config.RegisterFlags(cmd.Flags(), cfg)
	return cmd
}

func snapshotDiagnostics(h *hir.Hir, loaded []string) string {
	var out string
	for _, path := range loaded {
		srcURL := "file://" + filepath.ToSlash(path)
		sh, ok := h.SourceByURL(srcURL)
		if !ok {
			continue
		}
		for _, e := range h.ErrorsForSource(sh) {
			out += fmt.Sprintf("%s:%d-%d %s %s\n", srcURL, e.Range.Start, e.Range.End, e.Code, e.Name)
		}
	}
	return out
}

func kindName(k hir.SymbolKindTag) string {
	if name, ok := symbolKindNames[k]; ok {
		return name
	}
	return "unknown"
}

var symbolKindNames = map[hir.SymbolKindTag]string{
	hir.SymbolDecl:          "decl",
	hir.SymbolFn:            "fn",
	hir.SymbolOp:            "op",
	hir.SymbolReference:     "reference",
	hir.SymbolPath:          "path",
	hir.SymbolImport:        "import",
	hir.SymbolBlock:         "block",
	hir.SymbolIf:            "if",
	hir.SymbolLoop:          "loop",
	hir.SymbolFor:           "for",
	hir.SymbolWhile:         "while",
	hir.SymbolSwitch:        "switch",
	hir.SymbolTry:           "try",
	hir.SymbolUnary:         "unary",
	hir.SymbolBinary:        "binary",
	hir.SymbolIndexExpr:     "index",
	hir.SymbolCall:          "call",
	hir.SymbolArray:         "array",
	hir.SymbolObject:        "object",
	hir.SymbolLit:           "lit",
	hir.SymbolClosure:       "closure",
	hir.SymbolReturn:        "return",
	hir.SymbolBreak:         "break",
	hir.SymbolContinue:      "continue",
	hir.SymbolThrow:         "throw",
	hir.SymbolExport:        "export",
	hir.SymbolDiscard:       "discard",
	hir.SymbolTypeDecl:      "type_decl",
	hir.SymbolVirtualModule: "virtual_module",
	hir.SymbolVirtualProxy:  "virtual_proxy",
	hir.SymbolVirtualAlias:  "virtual_alias",
}

func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", path, err)
	}
	return filepath.ToSlash(abs), nil
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errDiagnosticsFound) {
			config.PrintFatal(err, false)
		}
		os.Exit(1)
	}
}
