package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/apiconv/apiconv/converter"
)

type formatsInput struct{}

type conversionPair struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

type formatsOutput struct {
	Formats     []string         `json:"formats"`
	Conversions []conversionPair `json:"conversions"`
}

func handleFormats(_ context.Context, _ *mcp.CallToolRequest, _ formatsInput) (*mcp.CallToolResult, formatsOutput, error) {
	var out formatsOutput
	for _, f := range converter.AvailableFormats() {
		out.Formats = append(out.Formats, f.String())
	}
	for _, p := range converter.Pairs() {
		out.Conversions = append(out.Conversions, conversionPair{
			Source: p[0].String(),
			Target: p[1].String(),
		})
	}
	return nil, out, nil
}
