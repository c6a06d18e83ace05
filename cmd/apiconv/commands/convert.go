package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/apiconv/apiconv"
	"github.com/apiconv/apiconv/converter"
	"github.com/apiconv/apiconv/formats"
)

// ConvertFlags contains flags for the convert command
type ConvertFlags struct {
	Source          string
	Target          string
	Output          string
	Title           string
	DocVersion      string
	Description     string
	Servers         stringList
	BasePath        string
	SkipValidation  bool
	GuessPathParams bool
	Encoding        string
	Quiet           bool
}

// SetupConvertFlags creates and configures a FlagSet for the convert command.
// Returns the FlagSet and a ConvertFlags struct with bound flag variables.
func SetupConvertFlags() (*flag.FlagSet, *ConvertFlags) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	flags := &ConvertFlags{}

	fs.StringVar(&flags.Source, "s", "", "source format (auto-detected when omitted)")
	fs.StringVar(&flags.Source, "source", "", "source format (auto-detected when omitted)")
	fs.StringVar(&flags.Target, "t", "", "target format (inferred from output extension when omitted)")
	fs.StringVar(&flags.Target, "target", "", "target format (inferred from output extension when omitted)")
	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Title, "title", "", "API title for generated OpenAPI output")
	fs.StringVar(&flags.DocVersion, "doc-version", "", "API version for generated OpenAPI output")
	fs.StringVar(&flags.Description, "description", "", "API description for generated OpenAPI output")
	fs.Var(&flags.Servers, "server", "server URL for generated OpenAPI output (repeatable)")
	fs.StringVar(&flags.BasePath, "base-path", "", "prefix applied to every generated path")
	fs.BoolVar(&flags.SkipValidation, "skip-validation", false, "skip input schema validation")
	fs.BoolVar(&flags.GuessPathParams, "guess-path-params", false, "replace numeric path segments with template parameters")
	fs.StringVar(&flags.Encoding, "encoding", "", "stdout encoding: json (default) or yaml")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the document, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the document, no diagnostic messages")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: apiconv convert [flags] <file|->\n\n")
		Writef(fs.Output(), "Convert an API description document from one format to another.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nSupported Conversions:\n")
		Writef(fs.Output(), "  - har → openapi3\n")
		Writef(fs.Output(), "  - openapi3 → swagger\n")
		Writef(fs.Output(), "  - openapi3 → openapi3 (normalize, apply overrides)\n")
		Writef(fs.Output(), "  - postman → har\n")
		Writef(fs.Output(), "  - postman → openapi3\n")
		Writef(fs.Output(), "  - hoppscotch → openapi3\n")
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  apiconv convert capture.har -o openapi.yaml\n")
		Writef(fs.Output(), "  apiconv convert -s postman -t openapi3 collection.json\n")
		Writef(fs.Output(), "  apiconv convert -t openapi3 --title \"Users API\" --server https://api.example.com capture.har\n")
		Writef(fs.Output(), "  cat capture.har | apiconv convert -q -t openapi3 - > openapi.json\n")
		Writef(fs.Output(), "\nPipelining:\n")
		Writef(fs.Output(), "  - Use '-' as the file path to read from stdin\n")
		Writef(fs.Output(), "  - Use --quiet/-q to suppress diagnostic output for pipelining\n")
		Writef(fs.Output(), "\nNotes:\n")
		Writef(fs.Output(), "  - The source format is auto-detected from the document when -s is omitted\n")
		Writef(fs.Output(), "  - The target format is inferred from the -o extension when -t is omitted\n")
		Writef(fs.Output(), "  - Warnings indicate lossy conversions or best-effort transformations\n")
		Writef(fs.Output(), "  - Info messages provide context about conversion choices\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Conversion successful\n")
		Writef(fs.Output(), "  1    Conversion failed or critical issues found\n")
	}

	return fs, flags
}

// HandleConvert executes the convert command
func HandleConvert(args []string) error {
	fs, flags := SetupConvertFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("convert command requires exactly one file path or '-' for stdin")
	}

	specPath := fs.Arg(0)

	source, err := ParseFormatFlag(flags.Source)
	if err != nil {
		return err
	}
	target, err := ParseFormatFlag(flags.Target)
	if err != nil {
		return err
	}
	if target == formats.FormatUnknown && flags.Output == "" {
		fs.Usage()
		return fmt.Errorf("target format is required (use -t, or -o with a format-specific extension)")
	}

	encoding, err := ParseEncodingFlag(flags.Encoding)
	if err != nil {
		return err
	}

	doc, err := ReadDocument(specPath)
	if err != nil {
		return err
	}

	// Convert with timing
	startTime := time.Now()
	result, err := converter.ConvertWithOptions(
		converter.WithDocument(doc),
		converter.WithSource(source),
		converter.WithTarget(target),
		converter.WithOutputPath(flags.Output),
		converter.WithTitle(flags.Title),
		converter.WithVersion(flags.DocVersion),
		converter.WithDescription(flags.Description),
		converter.WithServers(flags.Servers...),
		converter.WithBasePath(flags.BasePath),
		converter.WithSkipValidation(flags.SkipValidation),
		converter.WithGuessPathParams(flags.GuessPathParams),
	)
	totalTime := time.Since(startTime)
	if err != nil {
		return fmt.Errorf("converting document: %w", err)
	}

	// Print results (to stderr so stdout stays pipeable)
	if !flags.Quiet {
		Writef(os.Stderr, "API Description Converter\n")
		Writef(os.Stderr, "=========================\n\n")
		Writef(os.Stderr, "apiconv version: %s\n", apiconv.Version())
		Writef(os.Stderr, "Document: %s\n", FormatSpecPath(specPath))
		Writef(os.Stderr, "Source Format: %s\n", result.Source)
		Writef(os.Stderr, "Target Format: %s\n", result.Target)
		Writef(os.Stderr, "Total Time: %v\n\n", totalTime)

		if len(result.Issues) > 0 {
			Writef(os.Stderr, "Conversion Issues (%d):\n", len(result.Issues))
			for _, issue := range result.Issues {
				Writef(os.Stderr, "  %s\n", issue.String())
			}
			Writef(os.Stderr, "\n")
		}

		if result.Success {
			Writef(os.Stderr, "✓ Conversion successful")
			if result.InfoCount > 0 || result.WarningCount > 0 {
				Writef(os.Stderr, " (%d info, %d warnings)", result.InfoCount, result.WarningCount)
			}
			Writef(os.Stderr, "\n")
		} else {
			Writef(os.Stderr, "✗ Conversion completed with %d critical issue(s)", result.CriticalCount)
			if result.WarningCount > 0 {
				Writef(os.Stderr, ", %d warning(s)", result.WarningCount)
			}
			Writef(os.Stderr, "\n")
		}
	}

	if flags.Output != "" {
		if !flags.Quiet {
			Writef(os.Stderr, "\nOutput written to: %s\n", flags.Output)
		}
	} else {
		data, err := result.Document.Encode(encoding)
		if err != nil {
			return fmt.Errorf("encoding converted document: %w", err)
		}
		if _, err = os.Stdout.Write(data); err != nil {
			return fmt.Errorf("writing converted document to stdout: %w", err)
		}
	}

	// Exit with error if conversion produced critical issues
	if !result.Success {
		os.Exit(1)
	}

	return nil
}
