// Package converrors provides structured error types for the apiconv library.
//
// Import path: github.com/apiconv/apiconv/converrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between different categories of errors and implement
// appropriate recovery strategies.
//
// # Error Types
//
// The package provides six core error types:
//
//   - [FileNotFoundError]: the input file does not exist
//   - [DecodeError]: malformed JSON or YAML content
//   - [SchemaValidationError]: a well-formed document that does not match a format's JSON Schema
//   - [FormatUndetectableError]: no known format schema matched during auto-detection
//   - [UnsupportedConversionError]: no converter registered for a source/target pair
//   - [StructuralError]: a converter-internal failure mid-conversion
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrFileNotFound]: Matches any [FileNotFoundError]
//   - [ErrDecode]: Matches any [DecodeError]
//   - [ErrSchemaValidation]: Matches any [SchemaValidationError]
//   - [ErrFormatUndetectable]: Matches any [FormatUndetectableError]
//   - [ErrUnsupportedConversion]: Matches any [UnsupportedConversionError]
//   - [ErrStructural]: Matches any [StructuralError]
//
// # Usage Examples
//
// Check error category with errors.Is():
//
//	_, err := formats.ValidateFile("capture.har")
//	if errors.Is(err, converrors.ErrDecode) {
//	    // Handle malformed input
//	}
//
// Extract error details with errors.As():
//
//	var valErr *converrors.SchemaValidationError
//	if errors.As(err, &valErr) {
//	    fmt.Printf("document is not valid %s: %s\n", valErr.Format, valErr.Detail)
//	}
package converrors
