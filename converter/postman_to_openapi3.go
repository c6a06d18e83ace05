package converter

import (
	"github.com/apiconv/apiconv/converrors"
	"github.com/apiconv/apiconv/document"
	"github.com/apiconv/apiconv/formats"
)

// postmanToOpenAPI3 converts a Postman collection by composing the two
// registered stages: postman -> har, then har -> openapi3. Issues from both
// stages accumulate on the same result.
type postmanToOpenAPI3 struct{}

func (postmanToOpenAPI3) Source() formats.Format { return formats.FormatPostman }
func (postmanToOpenAPI3) Target() formats.Format { return formats.FormatOpenAPI3 }

func (c *postmanToOpenAPI3) Convert(doc *document.Node, opts Options, result *Result) (*document.Node, error) {
	if !doc.Has("info") || !doc.Has("item") {
		return nil, &converrors.StructuralError{
			Source:  c.Source().String(),
			Target:  c.Target().String(),
			Message: "missing required collection keys info and item",
		}
	}

	toHAR := &postmanToHAR{}
	har, err := toHAR.Convert(doc, opts, result)
	if err != nil {
		return nil, err
	}

	toOpenAPI := &harToOpenAPI3{}
	return toOpenAPI.Convert(har, opts, result)
}
