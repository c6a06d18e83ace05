package converter

import (
	"github.com/apiconv/apiconv/document"
	"github.com/apiconv/apiconv/formats"
)

// openAPI3Passthrough handles openapi3 -> openapi3 conversion, which exists
// for encoding changes (YAML to JSON and back) and for rewriting document
// metadata. Title, version, description, and server overrides from the
// options are applied; everything else is copied unchanged, and a deep copy
// keeps the input immutable for the caller.
type openAPI3Passthrough struct{}

func (openAPI3Passthrough) Source() formats.Format { return formats.FormatOpenAPI3 }
func (openAPI3Passthrough) Target() formats.Format { return formats.FormatOpenAPI3 }

func (c *openAPI3Passthrough) Convert(doc *document.Node, opts Options, result *Result) (*document.Node, error) {
	out := doc.Clone()

	if opts.Title != "" || opts.Version != "" || opts.Description != "" {
		info := out.Get("info")
		if info == nil {
			info = document.NewObject()
			out.Set("info", info)
		}
		if opts.Title != "" {
			info.Set("title", document.String(opts.Title))
		}
		if opts.Version != "" {
			info.Set("version", document.String(opts.Version))
		}
		if opts.Description != "" {
			info.Set("description", document.String(opts.Description))
		}
	}

	if len(opts.Servers) > 0 {
		servers := document.NewArray()
		for _, s := range opts.Servers {
			server := document.NewObject()
			server.Set("url", document.String(s))
			servers.Append(server)
		}
		out.Set("servers", servers)
	}

	return out, nil
}
