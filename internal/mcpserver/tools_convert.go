package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/apiconv/apiconv/converter"
	"github.com/apiconv/apiconv/document"
	"github.com/apiconv/apiconv/formats"
)

type convertInput struct {
	Doc            docInput `json:"doc"                       jsonschema:"The document to convert"`
	Source         string   `json:"source,omitempty"          jsonschema:"Source format (auto-detected if omitted)"`
	Target         string   `json:"target"                    jsonschema:"Target format (har\\, openapi3\\, swagger\\, postman\\, hoppscotch)"`
	Output         string   `json:"output,omitempty"          jsonschema:"File path to write the converted document. If omitted the document is returned inline."`
	Encoding       string   `json:"encoding,omitempty"        jsonschema:"Inline document encoding: json (default) or yaml"`
	Title          string   `json:"title,omitempty"           jsonschema:"API title for generated OpenAPI output"`
	Version        string   `json:"version,omitempty"         jsonschema:"API version for generated OpenAPI output"`
	Description    string   `json:"description,omitempty"     jsonschema:"API description for generated OpenAPI output"`
	Servers        []string `json:"servers,omitempty"         jsonschema:"Server URLs for generated OpenAPI output"`
	BasePath       string   `json:"base_path,omitempty"       jsonschema:"Prefix for every generated path"`
	SkipValidation bool     `json:"skip_validation,omitempty" jsonschema:"Skip input schema validation"`
}

type convertIssue struct {
	Severity string `json:"severity"`
	Path     string `json:"path"`
	Message  string `json:"message"`
}

type convertOutput struct {
	SourceFormat string         `json:"source_format"`
	TargetFormat string         `json:"target_format"`
	Success      bool           `json:"success"`
	IssueCount   int            `json:"issue_count"`
	Issues       []convertIssue `json:"issues,omitempty"`
	WrittenTo    string         `json:"written_to,omitempty"`
	Document     string         `json:"document,omitempty"`
}

func handleConvert(_ context.Context, _ *mcp.CallToolRequest, input convertInput) (*mcp.CallToolResult, convertOutput, error) {
	if input.Target == "" {
		return errResult(fmt.Errorf("target format is required")), convertOutput{}, nil
	}
	target, err := formats.ParseFormat(input.Target)
	if err != nil {
		return errResult(err), convertOutput{}, nil
	}

	source := formats.FormatUnknown
	if input.Source != "" {
		if source, err = formats.ParseFormat(input.Source); err != nil {
			return errResult(err), convertOutput{}, nil
		}
	}

	doc, err := input.Doc.resolve()
	if err != nil {
		return errResult(err), convertOutput{}, nil
	}

	opts := converter.Options{
		Title:          input.Title,
		Version:        input.Version,
		Description:    input.Description,
		Servers:        input.Servers,
		BasePath:       input.BasePath,
		SkipValidation: input.SkipValidation,
	}
	result, err := converter.Convert(doc, source, target, opts)
	if err != nil {
		return errResult(err), convertOutput{}, nil
	}

	output := convertOutput{
		SourceFormat: result.Source.String(),
		TargetFormat: result.Target.String(),
		Success:      result.Success,
		IssueCount:   len(result.Issues),
	}
	for _, issue := range result.Issues {
		output.Issues = append(output.Issues, convertIssue{
			Severity: issue.Severity.String(),
			Path:     issue.Path,
			Message:  issue.Message,
		})
	}

	if input.Output != "" {
		if err := result.Document.Save(input.Output); err != nil {
			return errResult(fmt.Errorf("failed to write output file: %w", err)), convertOutput{}, nil
		}
		output.WrittenTo = input.Output
		return nil, output, nil
	}

	enc := document.EncodingJSON
	if input.Encoding == "yaml" {
		enc = document.EncodingYAML
	}
	data, err := result.Document.Encode(enc)
	if err != nil {
		return errResult(err), convertOutput{}, nil
	}
	output.Document = string(data)
	return nil, output, nil
}
