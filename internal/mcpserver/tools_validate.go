package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/apiconv/apiconv/formats"
)

type validateInput struct {
	Doc    docInput `json:"doc"              jsonschema:"The document to validate"`
	Format string   `json:"format,omitempty" jsonschema:"Format to validate against (auto-detected if omitted)"`
}

type validateOutput struct {
	Valid  bool   `json:"valid"`
	Format string `json:"format,omitempty"`
	Detail string `json:"detail,omitempty"`
}

func handleValidate(_ context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	doc, err := input.Doc.resolve()
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	if input.Format != "" {
		format, err := formats.ParseFormat(input.Format)
		if err != nil {
			return errResult(err), validateOutput{}, nil
		}
		if err := formats.Validate(doc, format); err != nil {
			return nil, validateOutput{Valid: false, Format: format.String(), Detail: sanitizeError(err)}, nil
		}
		return nil, validateOutput{Valid: true, Format: format.String()}, nil
	}

	format, err := formats.Detect(doc)
	if err != nil {
		return nil, validateOutput{Valid: false, Detail: sanitizeError(err)}, nil
	}
	return nil, validateOutput{Valid: true, Format: format.String()}, nil
}

type detectInput struct {
	Doc docInput `json:"doc" jsonschema:"The document to identify"`
}

type detectOutput struct {
	Format string `json:"format"`
}

func handleDetect(_ context.Context, _ *mcp.CallToolRequest, input detectInput) (*mcp.CallToolResult, detectOutput, error) {
	doc, err := input.Doc.resolve()
	if err != nil {
		return errResult(err), detectOutput{}, nil
	}

	format, err := formats.Detect(doc)
	if err != nil {
		return errResult(err), detectOutput{}, nil
	}
	return nil, detectOutput{Format: format.String()}, nil
}
