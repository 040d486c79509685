package tsgen

import (
	"errors"
	"fmt"

	"github.com/syssam/tsgen/compiler/gen"
	"github.com/syssam/tsgen/compiler/load"
)

// Standard sentinel errors for common operations.
var (
	// ErrNoSource is returned when a run has neither a database URL, a
	// schema file, nor a snapshot to read from.
	ErrNoSource = errors.New("tsgen: no schema source configured")

	// ErrNoSnapshot is returned when a snapshot operation is requested
	// without a snapshot path.
	ErrNoSnapshot = errors.New("tsgen: no snapshot path configured")
)

// ConfigFileError reports a problem loading or validating the project
// configuration file.
type ConfigFileError struct {
	Path    string
	Message string
	Cause   error
}

// Error returns the error string.
func (e *ConfigFileError) Error() string {
	msg := fmt.Sprintf("tsgen: config %s", e.Path)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ConfigFileError) Unwrap() error {
	return e.Cause
}

// NewConfigFileError returns a new ConfigFileError.
func NewConfigFileError(path, message string, cause error) *ConfigFileError {
	return &ConfigFileError{Path: path, Message: message, Cause: cause}
}

// IsUnsupportedType reports whether the generation run failed on a
// column type the Zod target cannot express.
func IsUnsupportedType(err error) bool {
	return gen.IsUnsupportedType(err)
}

// IsParseError reports whether the run failed parsing a schema file.
func IsParseError(err error) bool {
	return load.IsParseError(err)
}
