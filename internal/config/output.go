package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/pflag"

	"github.com/oxhq/rhai-hir/internal/hir"
)

var (
	errColor  = color.New(color.FgRed).SprintFunc()
	warnColor = color.New(color.FgYellow).SprintFunc()
	okColor   = color.New(color.FgGreen).SprintFunc()
)

// diagnosticJSON is the wire shape for --json diagnostic output; it
// flattens hir.SemanticError's byte range into plain start/end fields.
type diagnosticJSON struct {
	Source     string `json:"source"`
	Code       string `json:"code"`
	Start      uint32 `json:"start"`
	End        uint32 `json:"end"`
	Name       string `json:"name,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// PrintDiagnostics writes the semantic errors collected for one source
// to stdout, either as colored one-line-per-error text or as a JSON
// array when jsonOut is set.
func PrintDiagnostics(sourceURL string, errs []hir.SemanticError, jsonOut bool) {
	if jsonOut {
		out := make([]diagnosticJSON, 0, len(errs))
		for _, e := range errs {
			out = append(out, diagnosticJSON{
				Source:     sourceURL,
				Code:       string(e.Code),
				Start:      e.Range.Start,
				End:        e.Range.End,
				Name:       e.Name,
				Suggestion: e.Suggestion,
			})
		}
		enc, err := json.Marshal(out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "encoding diagnostics: %v\n", err)
			return
		}
		fmt.Println(string(enc))
		return
	}

	if len(errs) == 0 {
		fmt.Printf("%s %s — no diagnostics\n", okColor("✓"), sourceURL)
		return
	}
	for _, e := range errs {
		label := errColor(string(e.Code))
		if e.Code == hir.ErrDuplicateFnParameter {
			label = warnColor(string(e.Code))
		}
		msg := fmt.Sprintf("%s:%d-%d %s", sourceURL, e.Range.Start, e.Range.End, label)
		if e.Name != "" {
			msg += fmt.Sprintf(" %q", e.Name)
		}
		if e.Suggestion != "" {
			msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
		}
		fmt.Println(msg)
	}
}

// PrintIdempotenceDiff prints a unified diff between two resolve_all
// snapshots, used by the verify-idempotent subcommand to surface any
// non-idempotent resolution as readable output.
func PrintIdempotenceDiff(before, after, label string) error {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: label + " (pass 1)",
		ToFile:   label + " (pass 2)",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return fmt.Errorf("building diff: %w", err)
	}
	if text == "" {
		fmt.Printf("%s %s — resolve_all is idempotent\n", okColor("✓"), label)
		return nil
	}
	fmt.Printf("%s %s — resolve_all produced different output on the second pass\n", errColor("✗"), label)
	fmt.Print(text)
	return nil
}

// PrintFatal reports a fatal CLI error, either as plain text to stderr
// or as a JSON object when jsonOut is set.
func PrintFatal(err error, jsonOut bool) {
	if jsonOut {
		enc, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Println(string(enc))
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

// PrintUsage prints the top-level usage banner followed by fs's flag
// defaults.
func PrintUsage(fs *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, "\nUsage: rhai-hir <command> [flags] [path ...]\n")
	fmt.Fprintf(os.Stderr, "Commands: add, resolve, query, verify-idempotent\n")
	fmt.Fprintf(os.Stderr, "\nFlags:\n")
	fs.PrintDefaults()
}
