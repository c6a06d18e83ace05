package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/apiconv/apiconv"
	"github.com/apiconv/apiconv/formats"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	Format string
	Quiet  bool
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
// Returns the FlagSet and a ValidateFlags struct with bound flag variables.
func SetupValidateFlags() (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &ValidateFlags{}

	fs.StringVar(&flags.Format, "f", "", "format to validate against (auto-detected when omitted)")
	fs.StringVar(&flags.Format, "format", "", "format to validate against (auto-detected when omitted)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: no output, exit code only")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: no output, exit code only")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: apiconv validate [flags] <file|->\n\n")
		Writef(fs.Output(), "Validate an API description document against a format's JSON schema.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  apiconv validate openapi.yaml\n")
		Writef(fs.Output(), "  apiconv validate -f postman collection.json\n")
		Writef(fs.Output(), "  cat capture.har | apiconv validate -f har -\n")
		Writef(fs.Output(), "\nNotes:\n")
		Writef(fs.Output(), "  - Without -f, the document is checked against every known format in\n")
		Writef(fs.Output(), "    priority order and reported valid if any schema matches\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Document is valid\n")
		Writef(fs.Output(), "  1    Document is invalid or could not be read\n")
	}

	return fs, flags
}

// HandleValidate executes the validate command
func HandleValidate(args []string) error {
	fs, flags := SetupValidateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("validate command requires exactly one file path or '-' for stdin")
	}

	specPath := fs.Arg(0)

	format, err := ParseFormatFlag(flags.Format)
	if err != nil {
		return err
	}

	doc, err := ReadDocument(specPath)
	if err != nil {
		return err
	}

	if !flags.Quiet {
		Writef(os.Stderr, "API Description Validator\n")
		Writef(os.Stderr, "=========================\n\n")
		Writef(os.Stderr, "apiconv version: %s\n", apiconv.Version())
		Writef(os.Stderr, "Document: %s\n\n", FormatSpecPath(specPath))
	}

	if format != formats.FormatUnknown {
		if err := formats.Validate(doc, format); err != nil {
			if !flags.Quiet {
				Writef(os.Stderr, "✗ Document is not a valid %s document\n", format)
			}
			return err
		}
		if !flags.Quiet {
			Writef(os.Stderr, "✓ Valid %s document\n", format)
		}
		return nil
	}

	detected, err := formats.Detect(doc)
	if err != nil {
		if !flags.Quiet {
			Writef(os.Stderr, "✗ Document does not match any known format\n")
		}
		return err
	}
	if !flags.Quiet {
		Writef(os.Stderr, "✓ Valid %s document\n", detected)
	}
	return nil
}
