package commands

import (
	"errors"
	"flag"
	"fmt"

	"github.com/apiconv/apiconv/converter"
)

// FormatsFlags contains flags for the formats command
type FormatsFlags struct {
	Output string
}

// formatsReport is the structured output of the formats command.
type formatsReport struct {
	Formats     []string           `json:"formats"     yaml:"formats"`
	Conversions []conversionReport `json:"conversions" yaml:"conversions"`
}

type conversionReport struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// SetupFormatsFlags creates and configures a FlagSet for the formats command.
// Returns the FlagSet and a FormatsFlags struct with bound flag variables.
func SetupFormatsFlags() (*flag.FlagSet, *FormatsFlags) {
	fs := flag.NewFlagSet("formats", flag.ContinueOnError)
	flags := &FormatsFlags{}

	fs.StringVar(&flags.Output, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: apiconv formats [flags]\n\n")
		Writef(fs.Output(), "List the supported document formats and conversion pairs.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  apiconv formats\n")
		Writef(fs.Output(), "  apiconv formats --format json\n")
	}

	return fs, flags
}

// HandleFormats executes the formats command
func HandleFormats(args []string) error {
	fs, flags := SetupFormatsFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("formats command takes no arguments")
	}

	if err := ValidateOutputFormat(flags.Output); err != nil {
		return err
	}

	report := formatsReport{}
	for _, f := range converter.AvailableFormats() {
		report.Formats = append(report.Formats, f.String())
	}
	for _, p := range converter.Pairs() {
		report.Conversions = append(report.Conversions, conversionReport{
			Source: p[0].String(),
			Target: p[1].String(),
		})
	}

	if flags.Output != FormatText {
		return OutputStructured(report, flags.Output)
	}

	fmt.Println("Formats:")
	for _, f := range report.Formats {
		fmt.Printf("  %s\n", f)
	}
	fmt.Println()
	fmt.Println("Conversions:")
	for _, c := range report.Conversions {
		fmt.Printf("  %s → %s\n", c.Source, c.Target)
	}
	return nil
}
