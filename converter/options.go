package converter

// Defaults used when the caller does not override the generated info block.
const (
	// DefaultTitle is the info.title used when none is provided.
	DefaultTitle = "API Documentation"
	// DefaultVersion is the info.version used when none is provided.
	DefaultVersion = "1.0.0"
	// DefaultDescription is the info.description used when none is provided.
	DefaultDescription = "API Documentation generated from HAR file"
)

// Options control conversion output. The zero value is valid; converters
// fill in defaults where the target format requires a value.
type Options struct {
	// Title overrides info.title in generated OpenAPI documents
	Title string
	// Version overrides info.version in generated OpenAPI documents
	Version string
	// Description overrides info.description in generated OpenAPI documents
	Description string
	// Servers lists server URLs for generated OpenAPI documents
	Servers []string
	// BasePath is prefixed onto every generated path when set
	BasePath string
	// SkipValidation disables input schema validation before conversion
	SkipValidation bool
	// GuessPathParams turns all-digit path segments into path parameters
	// (e.g. /users/42 -> /users/{userId}). Off by default since it can
	// merge endpoints that are genuinely distinct.
	GuessPathParams bool
}

// title returns the configured title or the default.
func (o Options) title(fallback string) string {
	if o.Title != "" {
		return o.Title
	}
	return fallback
}

// version returns the configured version or the default.
func (o Options) version() string {
	if o.Version != "" {
		return o.Version
	}
	return DefaultVersion
}
