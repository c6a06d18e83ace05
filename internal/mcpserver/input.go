package mcpserver

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/apiconv/apiconv/document"
)

// serverConfig holds the MCP server settings, loaded once at package load
// time from APICONV_MCP_* environment variables.
type serverConfig struct {
	MaxInlineSize int64 `envconfig:"MAX_INLINE_SIZE" default:"4194304"`
}

var cfg = loadConfig()

func loadConfig() *serverConfig {
	var c serverConfig
	// Defaults are always parseable; a process error means a bad env value.
	if err := envconfig.Process("apiconv_mcp", &c); err != nil {
		panic(fmt.Sprintf("mcpserver config: %v", err))
	}
	return &c
}

// docInput represents the two ways a document can be provided to a tool.
// Exactly one of File or Content must be set.
type docInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a document file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline document content (JSON or YAML)"`
}

// resolve loads the document from whichever input was provided.
func (d docInput) resolve() (*document.Node, error) {
	switch {
	case d.File != "" && d.Content != "":
		return nil, fmt.Errorf("exactly one of file or content must be provided (got both)")
	case d.File != "":
		return document.Load(d.File)
	case d.Content != "":
		if int64(len(d.Content)) > cfg.MaxInlineSize {
			return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set APICONV_MCP_MAX_INLINE_SIZE to increase",
				len(d.Content), cfg.MaxInlineSize)
		}
		return document.Decode([]byte(d.Content), "")
	default:
		return nil, fmt.Errorf("exactly one of file or content must be provided (got neither)")
	}
}
