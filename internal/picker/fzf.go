package picker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// fzf exit statuses that mean "nothing selected" rather than failure:
// 1 is no match, 130 is user abort (esc / ctrl-c).
const (
	fzfExitNoMatch = 1
	fzfExitAborted = 130
)

// FzfPicker delegates multi-selection to an external fzf process. The
// item list is written to fzf's stdin and the confirmed lines are read
// back from its stdout; fzf draws its UI on the terminal directly.
type FzfPicker struct {
	path   string
	stderr io.Writer
}

// NewFzfPicker creates an FzfPicker invoking the given binary path
func NewFzfPicker(path string) *FzfPicker {
	slog.Debug("creating new FzfPicker", "path", path)
	return &FzfPicker{
		path:   path,
		stderr: os.Stderr,
	}
}

// Name identifies this picker implementation
func (p *FzfPicker) Name() string {
	return "fzf"
}

// Pick runs fzf over the requested items and returns the confirmed
// selection in the order fzf yields it
func (p *FzfPicker) Pick(ctx context.Context, req Request) (*Result, error) {
	args := buildFzfArgs(req.Query)
	slog.Debug("starting fzf", "path", p.path, "args", args, "items", len(req.Items))

	cmd := exec.CommandContext(ctx, p.path, args...)
	cmd.Stdin = strings.NewReader(joinLines(req.Items))
	cmd.Stderr = p.stderr

	var out bytes.Buffer
	cmd.Stdout = &out

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && isFzfCancel(exitErr.ExitCode()) {
			slog.Debug("fzf cancelled by user", "exit_code", exitErr.ExitCode())
			return &Result{Cancelled: true}, nil
		}
		slog.Error("fzf failed", "path", p.path, "error", err)
		return nil, fmt.Errorf("fzf failed: %w", err)
	}

	selected := parseSelections(out.String())
	slog.Debug("fzf selection confirmed", "selected", len(selected))
	return &Result{Selected: selected}, nil
}

// buildFzfArgs constructs the fzf argument list for a selection run
func buildFzfArgs(query string) []string {
	args := []string{"--multi", "--prompt", "log settings> "}
	if query != "" {
		args = append(args, "--query", query)
	}
	return args
}

// isFzfCancel reports whether an fzf exit code means an empty
// selection rather than an error
func isFzfCancel(code int) bool {
	return code == fzfExitNoMatch || code == fzfExitAborted
}

// joinLines renders items as the newline-terminated list fed to fzf
func joinLines(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return strings.Join(items, "\n") + "\n"
}

// parseSelections splits fzf's stdout back into selected identifiers
func parseSelections(output string) []string {
	var selected []string
	for _, line := range strings.Split(output, "\n") {
		if line != "" {
			selected = append(selected, line)
		}
	}
	return selected
}
