// Package commands provides CLI command handlers for apiconv.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/apiconv/apiconv/document"
	"github.com/apiconv/apiconv/formats"
)

// Output format constants for the formats command.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// FormatSpecPath returns a display-friendly path for the document.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// ReadDocument loads a document from a file path, or from stdin when the
// path is StdinFilePath.
func ReadDocument(specPath string) (*document.Node, error) {
	if specPath == StdinFilePath {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return document.Decode(data, "")
	}
	return document.Load(specPath)
}

// ParseFormatFlag parses a format flag value. An empty value maps to
// formats.FormatUnknown, which downstream code treats as "auto".
func ParseFormatFlag(value string) (formats.Format, error) {
	if value == "" {
		return formats.FormatUnknown, nil
	}
	return formats.ParseFormat(value)
}

// ParseEncodingFlag parses an output encoding flag value (json or yaml).
func ParseEncodingFlag(value string) (document.Encoding, error) {
	switch strings.ToLower(value) {
	case "", FormatJSON:
		return document.EncodingJSON, nil
	case FormatYAML, "yml":
		return document.EncodingYAML, nil
	default:
		return document.EncodingJSON, fmt.Errorf("invalid encoding '%s'. Valid encodings: %s, %s", value, FormatJSON, FormatYAML)
	}
}

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured outputs data in the specified format (json or yaml) to stdout.
// Returns an error if marshaling fails.
func OutputStructured(data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	fmt.Println(string(bytes))
	return nil
}

// stringList collects repeatable string flags.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}
