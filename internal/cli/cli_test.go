package cli

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logpick.dev/internal/catalog"
	"logpick.dev/internal/config"
	"logpick.dev/internal/picker"
)

// fakeTerminalDetector reports a fixed interactivity state
type fakeTerminalDetector struct {
	interactive bool
}

func (f *fakeTerminalDetector) IsTerminal(fd int) bool { return f.interactive }

// fakePicker returns a scripted result without any terminal interaction
type fakePicker struct {
	result *picker.Result
	err    error
}

func (f *fakePicker) Pick(ctx context.Context, req picker.Request) (*picker.Result, error) {
	return f.result, f.err
}

func (f *fakePicker) Name() string { return "fake" }

// fakeFactory hands out a fixed picker for every type
type fakeFactory struct {
	picker picker.Picker
	err    error
}

func (f *fakeFactory) CreatePicker(pickerType string) (picker.Picker, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.picker, nil
}

func (f *fakeFactory) GetSupportedPickers() []string {
	return []string{"auto", "fzf", "builtin"}
}

func (f *fakeFactory) IsValidPickerType(pickerType string) bool { return true }

// newTestCLI builds a CLI wired against an in-memory config
// filesystem and a non-interactive terminal
func newTestCLI() *CLI {
	c := NewCLI()
	c.configManager = config.NewConfigManagerWithFs(afero.NewMemMapFs())
	c.terminalDetector = &fakeTerminalDetector{interactive: false}
	c.pickerFactory = picker.NewFactoryWithDependencies(func(string) bool { return false })
	return c
}

// run executes the CLI and captures its streams
func run(t *testing.T, c *CLI, stdin string, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := c.Run(append([]string{"logpick"}, args...), strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunVersionFlag(t *testing.T) {
	code, stdout, _ := run(t, newTestCLI(), "", "--version")

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "logpick version "+Version)
}

func TestRunPipedSelection(t *testing.T) {
	// Names arrive in reverse order; output is normalized to
	// catalog order
	code, stdout, _ := run(t, newTestCLI(), "app.rx\napp.tx\n", "--no-history")

	assert.Equal(t, 0, code)
	assert.Equal(t, "[\"app.tx\", \"app.rx\"]\n", stdout)
}

func TestRunPipedSelectionDropsUnknownNames(t *testing.T) {
	stdin := "tsch.synced\nnot.a.setting\n\n"
	code, stdout, _ := run(t, newTestCLI(), stdin, "--no-history")

	assert.Equal(t, 0, code)
	assert.Equal(t, "[\"tsch.synced\"]\n", stdout)
}

func TestRunPipedEmptySelection(t *testing.T) {
	code, stdout, _ := run(t, newTestCLI(), "", "--no-history")

	assert.Equal(t, 0, code)
	assert.Equal(t, "[]\n", stdout)
}

func TestRunInteractiveSelection(t *testing.T) {
	c := newTestCLI()
	c.terminalDetector = &fakeTerminalDetector{interactive: true}
	c.pickerFactory = &fakeFactory{picker: &fakePicker{
		result: &picker.Result{Selected: []string{"rpl.churn", "app.tx"}},
	}}

	code, stdout, _ := run(t, c, "", "--no-history")

	assert.Equal(t, 0, code)
	assert.Equal(t, "[\"app.tx\", \"rpl.churn\"]\n", stdout, "selection is normalized to catalog order")
}

func TestRunInteractiveCancelled(t *testing.T) {
	c := newTestCLI()
	c.terminalDetector = &fakeTerminalDetector{interactive: true}
	c.pickerFactory = &fakeFactory{picker: &fakePicker{
		result: &picker.Result{Cancelled: true},
	}}

	code, stdout, _ := run(t, c, "", "--no-history")

	assert.Equal(t, 0, code, "cancellation is not an error")
	assert.Equal(t, "[]\n", stdout)
}

func TestRunInteractivePickerError(t *testing.T) {
	c := newTestCLI()
	c.terminalDetector = &fakeTerminalDetector{interactive: true}
	c.pickerFactory = &fakeFactory{picker: &fakePicker{
		err: fmt.Errorf("terminal exploded"),
	}}

	code, _, _ := run(t, c, "", "--no-history")

	assert.Equal(t, 1, code)
}

func TestRunPickerUnavailable(t *testing.T) {
	// fzf explicitly requested but not installed: startup failure
	c := newTestCLI()
	c.terminalDetector = &fakeTerminalDetector{interactive: true}

	code, _, stderr := run(t, c, "", "--picker", "fzf", "--no-history")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "fzf")
}

func TestRunInvalidPickerFlag(t *testing.T) {
	code, _, stderr := run(t, newTestCLI(), "", "--picker", "rofi", "--no-history")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid picker")
}

func TestRunFullCatalogRoundTrip(t *testing.T) {
	stdin := strings.Join(catalog.All(), "\n") + "\n"
	code, stdout, _ := run(t, newTestCLI(), stdin, "--no-history")

	require.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(stdout, "[\"simulator.state\", "))
	assert.True(t, strings.HasSuffix(stdout, ", \"conn.matrix.update\"]\n"))
	assert.Equal(t, catalog.Len(), strings.Count(stdout, "\"")/2)
}

func TestListCommand(t *testing.T) {
	code, stdout, _ := run(t, newTestCLI(), "", "list")

	require.Equal(t, 0, code)
	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	assert.Len(t, lines, catalog.Len())
	assert.Equal(t, "simulator.state", lines[0])
	assert.Equal(t, "conn.matrix.update", lines[len(lines)-1])
}

func TestListCommandFilter(t *testing.T) {
	code, stdout, _ := run(t, newTestCLI(), "", "list", "--filter", "secjoin")

	require.Equal(t, 0, code)
	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	assert.Len(t, lines, 5)
	for _, line := range lines {
		assert.Contains(t, line, "secjoin")
	}
}

func TestListCommandGroups(t *testing.T) {
	code, stdout, _ := run(t, newTestCLI(), "", "list", "--groups")

	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "simulator\n")
	assert.Contains(t, stdout, "engine\n")
	assert.Contains(t, stdout, "tsch\n")
}

// writeHistoryConfig stores a config file on the CLI's in-memory
// filesystem pointing history at a real temp database
func writeHistoryConfig(t *testing.T, c *CLI, enabled bool) string {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "history.db")
	content := fmt.Sprintf(`{"history": {"enabled": %t, "database_path": %q}}`, enabled, dbPath)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/config.json", []byte(content), 0644))
	c.configManager = config.NewConfigManagerWithFs(fs)

	return dbPath
}

func TestHistoryCommandEmpty(t *testing.T) {
	c := newTestCLI()
	writeHistoryConfig(t, c, true)

	code, stdout, _ := run(t, c, "", "history", "--config", "/config.json")

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "No selections recorded")
}

func TestPickThenHistoryRoundTrip(t *testing.T) {
	c := newTestCLI()
	writeHistoryConfig(t, c, true)

	code, stdout, _ := run(t, c, "app.tx\ntsch.synced\n", "--config", "/config.json")
	require.Equal(t, 0, code)
	require.Equal(t, "[\"app.tx\", \"tsch.synced\"]\n", stdout)

	code, stdout, _ = run(t, c, "", "history", "--config", "/config.json")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "app.tx, tsch.synced")
	assert.Contains(t, stdout, "stdin")

	code, stdout, _ = run(t, c, "", "history", "--config", "/config.json", "--top")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "1  app.tx")
}

func TestHistoryDisabledSkipsRecording(t *testing.T) {
	c := newTestCLI()
	dbPath := writeHistoryConfig(t, c, false)

	code, _, _ := run(t, c, "app.tx\n", "--config", "/config.json")
	require.Equal(t, 0, code)

	// The database is never created when history is disabled
	assert.NoFileExists(t, dbPath)
}
