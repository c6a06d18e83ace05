package formats

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/apiconv/apiconv/document"
)

// Format is the name of a supported API description format.
type Format string

const (
	// FormatUnknown means no format, used for errors and failed detection.
	FormatUnknown Format = ""
	// FormatHAR is an HTTP Archive capture.
	FormatHAR Format = "har"
	// FormatOpenAPI3 is an OpenAPI 3.x description.
	FormatOpenAPI3 Format = "openapi3"
	// FormatSwagger is a Swagger 2.0 description.
	FormatSwagger Format = "swagger"
	// FormatPostman is a Postman Collection v2.x export.
	FormatPostman Format = "postman"
	// FormatHoppscotch is a Hoppscotch collection export.
	FormatHoppscotch Format = "hoppscotch"
)

// String returns the format name.
func (f Format) String() string {
	return string(f)
}

// Formats returns all supported formats in detection priority order. The
// order matters: HAR and Postman have required fields no other format has,
// while the simplified OpenAPI 3 and Swagger 2 schemas overlap, so detection
// must try the more specific formats first.
func Formats() []Format {
	return []Format{FormatHAR, FormatOpenAPI3, FormatSwagger, FormatPostman, FormatHoppscotch}
}

// ParseFormat converts a user-supplied format name into a Format. Names are
// matched case-insensitively; common aliases are accepted.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "har":
		return FormatHAR, nil
	case "openapi3", "openapi":
		return FormatOpenAPI3, nil
	case "swagger", "swagger2", "openapi2":
		return FormatSwagger, nil
	case "postman":
		return FormatPostman, nil
	case "hoppscotch":
		return FormatHoppscotch, nil
	default:
		return FormatUnknown, fmt.Errorf("unknown format %q (supported: %s)", name, FormatNames())
	}
}

// FormatNames returns the supported format names joined for display.
func FormatNames() string {
	names := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		names = append(names, f.String())
	}
	return strings.Join(names, ", ")
}

// Extensions returns the file extensions associated with the format, most
// specific first.
func (f Format) Extensions() []string {
	switch f {
	case FormatHAR:
		return []string{".har"}
	case FormatOpenAPI3:
		return []string{".yaml", ".yml", ".json"}
	case FormatSwagger:
		return []string{".json", ".yaml", ".yml"}
	case FormatPostman:
		return []string{".postman_collection.json", ".json"}
	case FormatHoppscotch:
		return []string{".json"}
	default:
		return nil
	}
}

// FromExtension guesses a format from a file path's extension. The
// .json/.yaml/.yml extensions are ambiguous; when doc is non-nil its top
// level keys break the tie between Swagger 2 and OpenAPI 3. Returns
// FormatUnknown when nothing matches.
func FromExtension(path string, doc *document.Node) Format {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".postman_collection.json") {
		return FormatPostman
	}

	switch filepath.Ext(lower) {
	case ".har":
		return FormatHAR
	case ".json", ".yaml", ".yml":
		if f := SniffOpenAPIFamily(doc); f != FormatUnknown {
			return f
		}
		return FormatOpenAPI3
	default:
		return FormatUnknown
	}
}

// SniffOpenAPIFamily inspects a document's top-level keys and reports
// whether it is a Swagger 2 or an OpenAPI 3 description. Returns
// FormatUnknown for nil documents and documents with neither marker.
func SniffOpenAPIFamily(doc *document.Node) Format {
	if doc == nil {
		return FormatUnknown
	}
	if doc.Has("swagger") {
		return FormatSwagger
	}
	if doc.Has("openapi") {
		return FormatOpenAPI3
	}
	return FormatUnknown
}
