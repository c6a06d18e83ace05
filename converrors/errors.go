package converrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrFileNotFound indicates the input file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrDecode indicates malformed JSON or YAML content.
	ErrDecode = errors.New("decode error")

	// ErrSchemaValidation indicates a document failed JSON Schema validation.
	ErrSchemaValidation = errors.New("schema validation failed")

	// ErrFormatUndetectable indicates no known format schema matched.
	ErrFormatUndetectable = errors.New("format undetectable")

	// ErrUnsupportedConversion indicates no converter exists for the requested pair.
	ErrUnsupportedConversion = errors.New("unsupported conversion")

	// ErrStructural indicates a converter-internal failure.
	ErrStructural = errors.New("structural conversion error")
)

// FileNotFoundError indicates that the input file does not exist on disk.
type FileNotFoundError struct {
	// Path is the file path that was not found
	Path string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *FileNotFoundError) Error() string {
	msg := "file not found"
	if e.Path != "" {
		msg += ": " + e.Path
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *FileNotFoundError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *FileNotFoundError) Is(target error) bool {
	return target == ErrFileNotFound
}

// DecodeError indicates that content could not be decoded as JSON or YAML.
type DecodeError struct {
	// Path is the file path or source identifier ("" for in-memory content)
	Path string
	// Encoding is the attempted encoding: "json", "yaml", or "" when both failed
	Encoding string
	// Message describes the decode failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *DecodeError) Error() string {
	msg := "decode error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Encoding != "" {
		msg += " (" + e.Encoding + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// SchemaValidationError indicates a well-formed document that does not
// conform to the JSON Schema of the expected format.
type SchemaValidationError struct {
	// Format is the format name the document was validated against
	Format string
	// Detail is the first mismatch reported by the schema validator
	Detail string
	// Path is the file path, if the document came from a file
	Path string
}

// Error returns a human-readable error message.
func (e *SchemaValidationError) Error() string {
	msg := "schema validation failed"
	if e.Format != "" {
		msg += " for format " + e.Format
	}
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Unwrap returns nil as SchemaValidationError has no underlying cause.
func (e *SchemaValidationError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *SchemaValidationError) Is(target error) bool {
	return target == ErrSchemaValidation
}

// FormatUndetectableError indicates that a document matched none of the
// known format schemas during auto-detection.
type FormatUndetectableError struct {
	// Path is the file path, if the document came from a file
	Path string
	// Tried lists the format names attempted, in detection order
	Tried []string
}

// Error returns a human-readable error message.
func (e *FormatUndetectableError) Error() string {
	msg := "unable to detect format"
	if e.Path != "" {
		msg += " of " + e.Path
	}
	if len(e.Tried) > 0 {
		msg += fmt.Sprintf(" (tried %v)", e.Tried)
	}
	return msg
}

// Unwrap returns nil as FormatUndetectableError has no underlying cause.
func (e *FormatUndetectableError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *FormatUndetectableError) Is(target error) bool {
	return target == ErrFormatUndetectable
}

// UnsupportedConversionError indicates that no converter is registered for
// the requested source/target format pair.
type UnsupportedConversionError struct {
	// Source is the requested source format name
	Source string
	// Target is the requested target format name
	Target string
}

// Error returns a human-readable error message.
func (e *UnsupportedConversionError) Error() string {
	return fmt.Sprintf("unsupported conversion: %s -> %s", e.Source, e.Target)
}

// Unwrap returns nil as UnsupportedConversionError has no underlying cause.
func (e *UnsupportedConversionError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *UnsupportedConversionError) Is(target error) bool {
	return target == ErrUnsupportedConversion
}

// StructuralError indicates a converter-internal failure, such as a
// required field missing mid-conversion.
type StructuralError struct {
	// Source is the source format name
	Source string
	// Target is the target format name
	Target string
	// Path is the document path where conversion failed (e.g. "log.entries[3].request")
	Path string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *StructuralError) Error() string {
	msg := "structural conversion error"
	if e.Source != "" && e.Target != "" {
		msg += fmt.Sprintf(" (%s -> %s)", e.Source, e.Target)
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *StructuralError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *StructuralError) Is(target error) bool {
	return target == ErrStructural
}
