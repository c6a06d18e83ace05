package formats

import (
	"errors"

	"github.com/xeipuuv/gojsonschema"

	"github.com/apiconv/apiconv/converrors"
	"github.com/apiconv/apiconv/document"
)

// Validate checks doc against the JSON Schema for format f. It returns nil
// when the document conforms and a [converrors.SchemaValidationError]
// otherwise; unknown formats also yield a SchemaValidationError.
func Validate(doc *document.Node, f Format) error {
	schema := Schema(f)
	if schema == nil {
		return &converrors.SchemaValidationError{
			Format: f.String(),
			Detail: "unknown format",
		}
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(doc.Interface()))
	if err != nil {
		return &converrors.SchemaValidationError{Format: f.String(), Detail: err.Error()}
	}
	if !result.Valid() {
		return &converrors.SchemaValidationError{
			Format: f.String(),
			Detail: firstIssue(result),
		}
	}
	return nil
}

// firstIssue renders the first schema mismatch; one actionable message beats
// a wall of cascading oneOf failures.
func firstIssue(result *gojsonschema.Result) string {
	errs := result.Errors()
	if len(errs) == 0 {
		return "document does not conform to schema"
	}
	return errs[0].String()
}

// Detect determines the format of doc by validating it against every format
// schema in [Formats] order and returning the first match. When no schema
// matches it returns FormatUnknown and a [converrors.FormatUndetectableError].
func Detect(doc *document.Node) (Format, error) {
	tried := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		if Validate(doc, f) == nil {
			return f, nil
		}
		tried = append(tried, f.String())
	}
	return FormatUnknown, &converrors.FormatUndetectableError{Tried: tried}
}

// ValidateFile loads path and detects its format. The three failure modes
// are distinguishable with errors.Is: [converrors.ErrFileNotFound] for a
// missing file, [converrors.ErrDecode] for malformed content, and
// [converrors.ErrFormatUndetectable] when the document matches no schema.
func ValidateFile(path string) (Format, error) {
	doc, err := document.Load(path)
	if err != nil {
		return FormatUnknown, err
	}

	f, err := Detect(doc)
	if err != nil {
		var undetectable *converrors.FormatUndetectableError
		if errors.As(err, &undetectable) {
			undetectable.Path = path
		}
		return FormatUnknown, err
	}
	return f, nil
}
