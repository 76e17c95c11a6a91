package reach

import "errors"

// Sentinel errors. Construction-time failures wrap one of these so callers
// can match them with errors.Is.
var (
	// ErrInvalidConfig is wrapped by every configuration validation failure.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrDuplicateNode is returned when a node already carries an interactable.
	ErrDuplicateNode = errors.New("node already has an interactable")

	// ErrNilNode is returned when an interactable is created without a node.
	ErrNilNode = errors.New("interactable requires a node")

	// ErrNilSource is returned when an interactor is created without a pose source.
	ErrNilSource = errors.New("interactor requires a pose source")

	// ErrUnknownSource is returned by the script runner for unnamed sources.
	ErrUnknownSource = errors.New("unknown scripted source")

	// ErrEmptyScript is returned by LoadScript for scripts without steps.
	ErrEmptyScript = errors.New("script has no steps")
)

// ConfigError describes which setting failed validation.
type ConfigError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "reach: " + ErrInvalidConfig.Error() + ": " + e.Field + " " + e.Reason
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

func configError(field, reason string) error {
	return &ConfigError{Field: field, Reason: reason}
}
