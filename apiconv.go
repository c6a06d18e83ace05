// Package apiconv converts API-description documents between structural
// formats: HAR, OpenAPI 3, Swagger 2 (OpenAPI 2), Postman Collection, and
// Hoppscotch Collection.
//
// The library consists of four primary packages:
//
//   - document: ordered JSON/YAML document tree shared by all converters
//   - formats: format identification and JSON Schema validation
//   - converter: the conversion engine and per-pair converters
//   - converrors: structured error types for programmatic handling
//
// # Quick Start
//
// Convert a HAR capture to an OpenAPI 3 specification:
//
//	result, err := converter.ConvertWithOptions(
//		converter.WithFilePath("capture.har"),
//		converter.WithTarget(formats.FormatOpenAPI3),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	data, _ := result.Document.EncodeJSON()
//	os.Stdout.Write(data)
package apiconv

import "fmt"

var (
	// version is set via ldflags during build by GoReleaser
	// For development builds, this will show "dev"
	version = "dev"
)

// Version returns the compiled version or 'dev' if run from source
func Version() string {
	return version
}

// UserAgent returns the User-Agent string to use
func UserAgent() string {
	return fmt.Sprintf("apiconv/%s", version)
}
