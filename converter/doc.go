// Package converter provides conversion between API description formats.
//
// The converter supports HAR, OpenAPI 3, Swagger 2, Postman, and Hoppscotch
// documents, performing best-effort conversion with detailed issue tracking.
// Each supported direction is a [Converter] registered for a (source, target)
// format pair; [For] looks converters up and [Pairs] lists what is available.
//
// # Quick Start
//
// Convert a file using functional options:
//
//	result, err := converter.ConvertWithOptions(
//		converter.WithFilePath("capture.har"),
//		converter.WithOutputPath("api.yaml"),
//		converter.WithTitle("Pet Store"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if result.HasWarnings() {
//		fmt.Printf("%d warning(s)\n", result.WarningCount)
//	}
//
// Or convert an in-memory document:
//
//	doc, _ := document.Load("collection.json")
//	result, err := converter.Convert(doc, formats.FormatPostman, formats.FormatOpenAPI3, converter.Options{})
//
// # Conversion Issues
//
// The converter tracks three severity levels: Info (conversion choices),
// Warning (lossy conversions), and Critical (features that cannot be
// converted). Converting OpenAPI 3 to Swagger 2 collapses oneOf/anyOf
// composition to the first variant with a warning; duplicate method+path
// pairs in a HAR capture keep the first occurrence and record an info issue.
//
// # Related Packages
//
// Conversion integrates with the other apiconv packages:
//   - [github.com/apiconv/apiconv/document] - The ordered document tree converters operate on
//   - [github.com/apiconv/apiconv/formats] - Format detection and schema validation
//   - [github.com/apiconv/apiconv/converrors] - Structured errors for programmatic handling
package converter
