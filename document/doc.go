// Package document provides the generic ordered document tree shared by all
// apiconv converters.
//
// Import path: github.com/apiconv/apiconv/document
//
// A [Node] is a tagged union over the JSON data model: object, array,
// string, number, bool, or null. Object members preserve insertion order,
// which keeps converted documents stable and diffable regardless of whether
// they were decoded from JSON or YAML.
//
// Documents are decoded with [Decode] (content-sniffing JSON vs YAML),
// [DecodeJSON], or [DecodeYAML], loaded from disk with [Load], and encoded
// with [Node.EncodeJSON] or [Node.EncodeYAML]. Converters treat their input
// Node as immutable and build fresh output trees; [Node.Clone] provides a
// deep copy where a subtree must be carried over.
package document
