package picker

import (
	"log/slog"
	"os/exec"
)

// FzfCommand is the external fuzzy-finder binary probed for by auto
// detection.
const FzfCommand = "fzf"

// CommandExists checks if a command is available in the system's PATH
func CommandExists(command string) bool {
	if command == "" {
		return false
	}

	_, err := exec.LookPath(command)
	exists := err == nil
	slog.Debug("command existence check", "command", command, "exists", exists)
	return exists
}

// DetectOptimalPicker determines the best picker type for the current
// system: fzf when installed, otherwise the built-in terminal picker.
func DetectOptimalPicker() string {
	return detectOptimalPickerWithChecker(CommandExists)
}

// detectOptimalPickerWithChecker allows dependency injection for testing
func detectOptimalPickerWithChecker(commandChecker func(string) bool) string {
	if commandChecker(FzfCommand) {
		slog.Debug("fzf found on PATH, preferring external picker")
		return "fzf"
	}

	slog.Debug("fzf not found, falling back to built-in picker")
	return "builtin"
}
