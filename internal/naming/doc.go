// Package naming provides shared string helpers for apiconv packages.
//
// This internal package contains the small transformations used when
// generating parameter names and display labels from document content.
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming
