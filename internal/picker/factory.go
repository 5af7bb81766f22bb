package picker

import (
	"fmt"
	"log/slog"
)

// Factory creates Picker instances based on configuration
type Factory interface {
	CreatePicker(pickerType string) (Picker, error)
	GetSupportedPickers() []string
	IsValidPickerType(pickerType string) bool
}

// DefaultFactory implements Factory with PATH-based fzf detection
type DefaultFactory struct {
	commandExists func(string) bool
}

// NewFactory creates a new DefaultFactory with real command detection
func NewFactory() *DefaultFactory {
	return &DefaultFactory{
		commandExists: CommandExists,
	}
}

// NewFactoryWithDependencies creates a factory with an injected
// command checker for testing
func NewFactoryWithDependencies(commandExists func(string) bool) *DefaultFactory {
	return &DefaultFactory{
		commandExists: commandExists,
	}
}

// CreatePicker creates a Picker instance for the specified type.
// An empty type defaults to "auto".
func (f *DefaultFactory) CreatePicker(pickerType string) (Picker, error) {
	if pickerType == "" {
		pickerType = "auto"
	}

	slog.Debug("creating picker", "type", pickerType)

	switch pickerType {
	case "auto":
		return f.createAutoPicker()
	case "fzf":
		return f.createFzfPicker()
	case "builtin":
		return NewBuiltinPicker(), nil
	default:
		slog.Error("invalid picker type requested", "type", pickerType)
		return nil, fmt.Errorf("%w: %s", ErrInvalidPickerType, pickerType)
	}
}

// GetSupportedPickers returns a list of all supported picker types
func (f *DefaultFactory) GetSupportedPickers() []string {
	return []string{"auto", "fzf", "builtin"}
}

// IsValidPickerType checks if a picker type is supported
func (f *DefaultFactory) IsValidPickerType(pickerType string) bool {
	// Empty string is valid (defaults to auto)
	if pickerType == "" {
		return true
	}

	for _, supported := range f.GetSupportedPickers() {
		if pickerType == supported {
			return true
		}
	}
	return false
}

// createAutoPicker selects fzf when installed, the built-in picker
// otherwise. Auto detection never fails.
func (f *DefaultFactory) createAutoPicker() (Picker, error) {
	optimalType := detectOptimalPickerWithChecker(f.commandExists)
	slog.Debug("auto-detection result", "selected_type", optimalType)

	if optimalType == "fzf" {
		return f.createFzfPicker()
	}
	return NewBuiltinPicker(), nil
}

// createFzfPicker creates an FzfPicker, failing when fzf is not on PATH
func (f *DefaultFactory) createFzfPicker() (Picker, error) {
	if !f.commandExists(FzfCommand) {
		slog.Error("fzf requested but not found on PATH")
		return nil, fmt.Errorf("%w: %s not found on PATH", ErrPickerUnavailable, FzfCommand)
	}
	return NewFzfPicker(FzfCommand), nil
}
