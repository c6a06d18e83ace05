// Package formats defines the API description formats apiconv understands
// and provides JSON Schema based validation and detection.
//
// Import path: github.com/apiconv/apiconv/formats
//
// Five formats are supported: HAR captures, OpenAPI 3, Swagger 2, Postman
// collections, and Hoppscotch collections. Each format carries a structural
// JSON Schema; [Validate] checks a document against one format, and [Detect]
// tries every format in the fixed priority order returned by [Formats] and
// reports the first match.
//
// [FromExtension] maps file extensions to formats, reading the document
// content to split the ambiguous .json/.yaml/.yml extensions between
// Swagger 2 and OpenAPI 3.
package formats
