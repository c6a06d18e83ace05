package commands

import (
	"errors"
	"flag"
	"fmt"

	"github.com/apiconv/apiconv/formats"
)

// SetupDetectFlags creates and configures a FlagSet for the detect command.
func SetupDetectFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: apiconv detect <file|->\n\n")
		Writef(fs.Output(), "Identify the format of an API description document.\n\n")
		Writef(fs.Output(), "The format name is printed to stdout, making the command suitable\n")
		Writef(fs.Output(), "for scripting:\n\n")
		Writef(fs.Output(), "  apiconv convert -t openapi3 -s \"$(apiconv detect capture.json)\" capture.json\n\n")
		Writef(fs.Output(), "Examples:\n")
		Writef(fs.Output(), "  apiconv detect capture.har\n")
		Writef(fs.Output(), "  cat collection.json | apiconv detect -\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Format identified\n")
		Writef(fs.Output(), "  1    Document does not match any known format\n")
	}

	return fs
}

// HandleDetect executes the detect command
func HandleDetect(args []string) error {
	fs := SetupDetectFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("detect command requires exactly one file path or '-' for stdin")
	}

	doc, err := ReadDocument(fs.Arg(0))
	if err != nil {
		return err
	}

	format, err := formats.Detect(doc)
	if err != nil {
		return err
	}
	fmt.Println(format)
	return nil
}
