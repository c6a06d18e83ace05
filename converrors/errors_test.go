package converrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestFileNotFoundError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("stat failed")
		err := &FileNotFoundError{Path: "/tmp/missing.har", Cause: cause}
		if err.Error() != "file not found: /tmp/missing.har: stat failed" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &FileNotFoundError{}
		if err.Error() != "file not found" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("underlying")
		err := &FileNotFoundError{Cause: cause}
		//nolint:errorlint // testing pointer identity
		if unwrapped := err.Unwrap(); unwrapped != cause {
			t.Error("Unwrap should return cause")
		}
	})

	t.Run("Is matches ErrFileNotFound", func(t *testing.T) {
		err := &FileNotFoundError{Path: "x.json"}
		if !errors.Is(err, ErrFileNotFound) {
			t.Error("FileNotFoundError should match ErrFileNotFound")
		}
	})

	t.Run("Is does not match other sentinels", func(t *testing.T) {
		err := &FileNotFoundError{}
		if errors.Is(err, ErrDecode) {
			t.Error("FileNotFoundError should not match ErrDecode")
		}
		if errors.Is(err, ErrFormatUndetectable) {
			t.Error("FileNotFoundError should not match ErrFormatUndetectable")
		}
	})
}

func TestDecodeError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("unexpected end of JSON input")
		err := &DecodeError{
			Path:     "api.json",
			Encoding: "json",
			Message:  "truncated document",
			Cause:    cause,
		}
		want := "decode error in api.json (json): truncated document: unexpected end of JSON input"
		if err.Error() != want {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &DecodeError{}
		if err.Error() != "decode error" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches ErrDecode", func(t *testing.T) {
		err := &DecodeError{Message: "bad yaml"}
		if !errors.Is(err, ErrDecode) {
			t.Error("DecodeError should match ErrDecode")
		}
	})

	t.Run("As extracts DecodeError", func(t *testing.T) {
		err := fmt.Errorf("loading: %w", &DecodeError{Path: "x.yaml", Encoding: "yaml"})
		var decErr *DecodeError
		if !errors.As(err, &decErr) {
			t.Fatal("errors.As should succeed")
		}
		if decErr.Path != "x.yaml" {
			t.Errorf("unexpected path: %s", decErr.Path)
		}
	})
}

func TestSchemaValidationError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &SchemaValidationError{Format: "har", Detail: "log is required"}
		if err.Error() != "schema validation failed for format har: log is required" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches ErrSchemaValidation only", func(t *testing.T) {
		err := &SchemaValidationError{Format: "postman"}
		if !errors.Is(err, ErrSchemaValidation) {
			t.Error("should match ErrSchemaValidation")
		}
		if errors.Is(err, ErrFormatUndetectable) {
			t.Error("should not match ErrFormatUndetectable")
		}
	})
}

func TestFormatUndetectableError(t *testing.T) {
	t.Run("Error message lists tried formats", func(t *testing.T) {
		err := &FormatUndetectableError{
			Path:  "mystery.json",
			Tried: []string{"har", "openapi3", "swagger", "postman", "hoppscotch"},
		}
		want := "unable to detect format of mystery.json (tried [har openapi3 swagger postman hoppscotch])"
		if err.Error() != want {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches ErrFormatUndetectable", func(t *testing.T) {
		err := &FormatUndetectableError{}
		if !errors.Is(err, ErrFormatUndetectable) {
			t.Error("should match ErrFormatUndetectable")
		}
	})
}

func TestUnsupportedConversionError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &UnsupportedConversionError{Source: "swagger", Target: "har"}
		if err.Error() != "unsupported conversion: swagger -> har" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches ErrUnsupportedConversion", func(t *testing.T) {
		err := &UnsupportedConversionError{Source: "har", Target: "postman"}
		if !errors.Is(err, ErrUnsupportedConversion) {
			t.Error("should match ErrUnsupportedConversion")
		}
		if errors.Is(err, ErrStructural) {
			t.Error("should not match ErrStructural")
		}
	})
}

func TestStructuralError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("missing url")
		err := &StructuralError{
			Source:  "har",
			Target:  "openapi3",
			Path:    "log.entries[0].request",
			Message: "request has no url",
			Cause:   cause,
		}
		want := "structural conversion error (har -> openapi3) at log.entries[0].request: request has no url: missing url"
		if err.Error() != want {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("underlying")
		err := &StructuralError{Cause: cause}
		//nolint:errorlint // testing pointer identity
		if unwrapped := err.Unwrap(); unwrapped != cause {
			t.Error("Unwrap should return cause")
		}
	})

	t.Run("Is matches ErrStructural", func(t *testing.T) {
		err := &StructuralError{Message: "x"}
		if !errors.Is(err, ErrStructural) {
			t.Error("should match ErrStructural")
		}
	})
}

// Error kinds must be pairwise distinguishable: a caller switching on
// errors.Is must never see two sentinels match the same error value.
func TestErrorKindsDoNotOverlap(t *testing.T) {
	sentinels := []error{
		ErrFileNotFound,
		ErrDecode,
		ErrSchemaValidation,
		ErrFormatUndetectable,
		ErrUnsupportedConversion,
		ErrStructural,
	}
	values := []error{
		&FileNotFoundError{Path: "a"},
		&DecodeError{Path: "a"},
		&SchemaValidationError{Format: "har"},
		&FormatUndetectableError{Path: "a"},
		&UnsupportedConversionError{Source: "har", Target: "postman"},
		&StructuralError{Message: "a"},
	}

	for i, val := range values {
		for j, sentinel := range sentinels {
			got := errors.Is(val, sentinel)
			if i == j && !got {
				t.Errorf("%T should match sentinel %v", val, sentinel)
			}
			if i != j && got {
				t.Errorf("%T should not match sentinel %v", val, sentinel)
			}
		}
	}
}
