// Package mcpserver implements an MCP (Model Context Protocol) server that
// exposes the conversion engine as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/apiconv/apiconv"
)

const serverInstructions = `apiconv MCP server: converts API descriptions between HAR, OpenAPI 3, Swagger 2, Postman, and Hoppscotch.

Tools:
- convert: convert a document between formats. Source is auto-detected unless given.
- validate: check a document against its format's JSON Schema.
- detect: report which format a document matches.
- formats: list supported formats and conversion directions.

Documents are passed by file path or inline content (JSON or YAML). Inline content is limited to APICONV_MCP_MAX_INLINE_SIZE bytes (default 4 MiB).`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "apiconv", Version: apiconv.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "convert",
		Description: "Convert an API description between formats (har, openapi3, swagger, postman, hoppscotch). The source format is auto-detected unless source is given. Conversion issues are reported with severity levels. Use output to write to a file instead of returning the document inline.",
	}, handleConvert)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Validate an API description against the JSON Schema of its format. The format is auto-detected unless given. Returns the matched format and the first schema mismatch on failure.",
	}, handleValidate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "detect",
		Description: "Detect which format an API description document matches. Formats are tried in a fixed priority order (har, openapi3, swagger, postman, hoppscotch) and the first schema match wins.",
	}, handleDetect)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "formats",
		Description: "List the supported formats and the available conversion directions.",
	}, handleFormats)
}

// sanitizeError strips absolute filesystem paths from error messages to
// avoid leaking directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
