package converter

import (
	"fmt"

	"github.com/apiconv/apiconv/document"
	"github.com/apiconv/apiconv/formats"
)

// Convert transforms doc from the source format to the target format.
// When source is formats.FormatUnknown the format is auto-detected. Unless
// opts.SkipValidation is set, the input is validated against the source
// format's schema first.
//
// The error distinguishes the failure kinds via converrors sentinels:
// ErrSchemaValidation, ErrFormatUndetectable, ErrUnsupportedConversion,
// and ErrStructural.
func Convert(doc *document.Node, source, target formats.Format, opts Options) (*Result, error) {
	var err error
	if source == formats.FormatUnknown {
		source, err = formats.Detect(doc)
		if err != nil {
			return nil, err
		}
	} else if !opts.SkipValidation {
		if err := formats.Validate(doc, source); err != nil {
			return nil, err
		}
	}

	conv, err := For(source, target)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Source: source,
		Target: target,
		Issues: make([]Issue, 0),
	}

	out, err := conv.Convert(doc, opts, result)
	if err != nil {
		return nil, err
	}

	result.Document = out
	result.updateCounts()
	result.Success = result.CriticalCount == 0
	return result, nil
}

// ConvertFile loads sourcePath, converts it, and writes the result to
// targetPath in the encoding implied by the target extension. Formats are
// resolved in precedence order: the explicit arguments, then schema
// detection of the loaded document, then the file extension with content
// sniffing. Pass formats.FormatUnknown to use resolution.
func ConvertFile(sourcePath, targetPath string, source, target formats.Format, opts Options) (*Result, error) {
	doc, err := document.Load(sourcePath)
	if err != nil {
		return nil, err
	}

	if source == formats.FormatUnknown {
		detected, err := formats.Detect(doc)
		if err == nil {
			source = detected
		} else if f := formats.FromExtension(sourcePath, doc); f != formats.FormatUnknown {
			source = f
		} else {
			return nil, err
		}
	}

	if target == formats.FormatUnknown {
		target = formats.FromExtension(targetPath, nil)
		if target == formats.FormatUnknown {
			return nil, fmt.Errorf("could not determine target format for %q, pass it explicitly", targetPath)
		}
	}

	result, err := Convert(doc, source, target, opts)
	if err != nil {
		return nil, err
	}

	if targetPath != "" {
		if err := result.Document.Save(targetPath); err != nil {
			return nil, fmt.Errorf("writing %s: %w", targetPath, err)
		}
	}
	return result, nil
}

// convertConfig collects the settings supplied through functional options.
type convertConfig struct {
	filePath   string
	outputPath string
	doc        *document.Node
	source     formats.Format
	target     formats.Format
	opts       Options
}

// Option configures a ConvertWithOptions call.
type Option func(*convertConfig) error

// WithFilePath sets the source file path.
func WithFilePath(path string) Option {
	return func(cfg *convertConfig) error {
		cfg.filePath = path
		return nil
	}
}

// WithOutputPath sets the destination file path. The extension selects both
// the target format (unless WithTarget is used) and the output encoding.
func WithOutputPath(path string) Option {
	return func(cfg *convertConfig) error {
		cfg.outputPath = path
		return nil
	}
}

// WithDocument supplies an in-memory document instead of a file path.
func WithDocument(doc *document.Node) Option {
	return func(cfg *convertConfig) error {
		cfg.doc = doc
		return nil
	}
}

// WithSource sets the source format explicitly, bypassing detection.
func WithSource(f formats.Format) Option {
	return func(cfg *convertConfig) error {
		cfg.source = f
		return nil
	}
}

// WithTarget sets the target format explicitly.
func WithTarget(f formats.Format) Option {
	return func(cfg *convertConfig) error {
		cfg.target = f
		return nil
	}
}

// WithTitle sets info.title for generated OpenAPI documents.
func WithTitle(title string) Option {
	return func(cfg *convertConfig) error {
		cfg.opts.Title = title
		return nil
	}
}

// WithVersion sets info.version for generated OpenAPI documents.
func WithVersion(version string) Option {
	return func(cfg *convertConfig) error {
		cfg.opts.Version = version
		return nil
	}
}

// WithDescription sets info.description for generated OpenAPI documents.
func WithDescription(description string) Option {
	return func(cfg *convertConfig) error {
		cfg.opts.Description = description
		return nil
	}
}

// WithServers sets the server URLs for generated OpenAPI documents.
func WithServers(servers ...string) Option {
	return func(cfg *convertConfig) error {
		cfg.opts.Servers = servers
		return nil
	}
}

// WithBasePath prefixes every generated path.
func WithBasePath(basePath string) Option {
	return func(cfg *convertConfig) error {
		cfg.opts.BasePath = basePath
		return nil
	}
}

// WithSkipValidation disables input schema validation.
func WithSkipValidation(skip bool) Option {
	return func(cfg *convertConfig) error {
		cfg.opts.SkipValidation = skip
		return nil
	}
}

// WithGuessPathParams enables numeric path segment parameterization.
func WithGuessPathParams(guess bool) Option {
	return func(cfg *convertConfig) error {
		cfg.opts.GuessPathParams = guess
		return nil
	}
}

// ConvertWithOptions converts using functional options. Either WithFilePath
// or WithDocument must be supplied; WithTarget or WithOutputPath must
// determine the target format.
//
// Example:
//
//	result, err := converter.ConvertWithOptions(
//		converter.WithFilePath("capture.har"),
//		converter.WithOutputPath("api.yaml"),
//		converter.WithServers("https://api.example.com"),
//	)
func ConvertWithOptions(options ...Option) (*Result, error) {
	cfg := &convertConfig{}
	for _, opt := range options {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.doc != nil {
		if cfg.target == formats.FormatUnknown {
			cfg.target = formats.FromExtension(cfg.outputPath, nil)
			if cfg.target == formats.FormatUnknown {
				return nil, fmt.Errorf("no target format: use WithTarget or WithOutputPath")
			}
		}
		result, err := Convert(cfg.doc, cfg.source, cfg.target, cfg.opts)
		if err != nil {
			return nil, err
		}
		if cfg.outputPath != "" {
			if err := result.Document.Save(cfg.outputPath); err != nil {
				return nil, fmt.Errorf("writing %s: %w", cfg.outputPath, err)
			}
		}
		return result, nil
	}

	if cfg.filePath == "" {
		return nil, fmt.Errorf("no input: use WithFilePath or WithDocument")
	}
	return ConvertFile(cfg.filePath, cfg.outputPath, cfg.source, cfg.target, cfg.opts)
}
