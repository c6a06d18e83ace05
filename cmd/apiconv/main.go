package main

import (
	"fmt"
	"os"

	"github.com/apiconv/apiconv"
	"github.com/apiconv/apiconv/cmd/apiconv/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("apiconv v%s\n", apiconv.Version())
	case "help", "-h", "--help":
		printUsage()
	case "convert":
		if err := commands.HandleConvert(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "validate":
		if err := commands.HandleValidate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "detect":
		if err := commands.HandleDetect(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "formats":
		if err := commands.HandleFormats(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "serve":
		if err := commands.HandleServe(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := commands.HandleMCP(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`apiconv - API Description Format Converter

Usage:
  apiconv <command> [options]

Commands:
  convert     Convert a document between API description formats
  validate    Validate a document against a format's schema
  detect      Identify the format of a document
  formats     List supported formats and conversion pairs
  serve       Run the conversion HTTP API
  mcp         Run the MCP server over stdio
  version     Show version information
  help        Show this help message

Formats:
  har, openapi3, swagger, postman, hoppscotch

Examples:
  apiconv convert capture.har -o openapi.yaml
  apiconv convert -s postman -t openapi3 collection.json
  apiconv validate openapi.yaml
  apiconv detect collection.json
  cat capture.har | apiconv convert -q -t openapi3 - > openapi.json

Run 'apiconv <command> --help' for more information on a command.`)
}
