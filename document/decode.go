package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/apiconv/apiconv/converrors"
)

// Encoding identifies the serialization of a document's bytes.
type Encoding string

const (
	// EncodingUnknown means the encoding could not be determined.
	EncodingUnknown Encoding = ""
	// EncodingJSON is JSON text.
	EncodingJSON Encoding = "json"
	// EncodingYAML is YAML text.
	EncodingYAML Encoding = "yaml"
)

// EncodingFromPath determines the encoding from a file extension.
// The .har extension is JSON by definition.
func EncodingFromPath(path string) Encoding {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".har":
		return EncodingJSON
	case ".yaml", ".yml":
		return EncodingYAML
	default:
		return EncodingUnknown
	}
}

// EncodingFromContent sniffs the encoding from the content bytes.
// JSON documents start with '{' or '['; anything else is treated as YAML.
func EncodingFromContent(data []byte) Encoding {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return EncodingUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return EncodingJSON
	}
	return EncodingYAML
}

// Decode parses data as JSON or YAML, chosen by content sniffing, into an
// ordered node tree. source names the input in error messages and may be "".
func Decode(data []byte, source string) (*Node, error) {
	switch EncodingFromContent(data) {
	case EncodingJSON:
		return DecodeJSON(data, source)
	case EncodingYAML:
		return DecodeYAML(data, source)
	default:
		return nil, &converrors.DecodeError{Path: source, Message: "empty document"}
	}
}

// DecodeJSON parses JSON text into an ordered node tree. Object member order
// follows the input text. Numbers written without a fraction or exponent are
// decoded as integers.
func DecodeJSON(data []byte, source string) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	node, err := decodeJSONValue(dec)
	if err != nil {
		return nil, &converrors.DecodeError{Path: source, Encoding: "json", Cause: err}
	}

	// Reject trailing content after the first value.
	if _, err := dec.Token(); err != io.EOF {
		return nil, &converrors.DecodeError{
			Path:     source,
			Encoding: "json",
			Message:  "trailing content after document",
		}
	}
	return node, nil
}

func decodeJSONValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeJSONToken(dec, tok)
}

func decodeJSONToken(dec *json.Decoder, tok json.Token) (*Node, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is %T, not string", keyTok)
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, val)
			}
			// consume '}'
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			arr := NewArray()
			for dec.More() {
				item, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				arr.Append(item)
			}
			// consume ']'
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	case string:
		return String(t), nil
	case json.Number:
		return jsonNumberNode(t)
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func jsonNumberNode(num json.Number) (*Node, error) {
	s := num.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := num.Int64(); err == nil {
			return Int(i), nil
		}
	}
	f, err := num.Float64()
	if err != nil {
		return nil, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return Float(f), nil
}

// DecodeYAML parses YAML text into an ordered node tree. Mapping key order
// follows the input text. Only the first document of a multi-document stream
// is decoded.
func DecodeYAML(data []byte, source string) (*Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &converrors.DecodeError{Path: source, Encoding: "yaml", Cause: err}
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, &converrors.DecodeError{Path: source, Encoding: "yaml", Message: "empty document"}
	}
	node, err := yamlToNode(root.Content[0])
	if err != nil {
		return nil, &converrors.DecodeError{Path: source, Encoding: "yaml", Cause: err}
	}
	return node, nil
}

func yamlToNode(yn *yaml.Node) (*Node, error) {
	switch yn.Kind {
	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(yn.Content); i += 2 {
			keyNode := yn.Content[i]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: non-scalar mapping key", keyNode.Line)
			}
			val, err := yamlToNode(yn.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(keyNode.Value, val)
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := NewArray()
		for _, child := range yn.Content {
			item, err := yamlToNode(child)
			if err != nil {
				return nil, err
			}
			arr.Append(item)
		}
		return arr, nil
	case yaml.ScalarNode:
		return yamlScalarNode(yn)
	case yaml.AliasNode:
		return yamlToNode(yn.Alias)
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", yn.Line, yn.Kind)
	}
}

func yamlScalarNode(yn *yaml.Node) (*Node, error) {
	switch yn.Tag {
	case "!!str", "!!timestamp", "!!binary":
		return String(yn.Value), nil
	case "!!int":
		var i int64
		if err := yn.Decode(&i); err != nil {
			return nil, fmt.Errorf("line %d: %w", yn.Line, err)
		}
		return Int(i), nil
	case "!!float":
		var f float64
		if err := yn.Decode(&f); err != nil {
			return nil, fmt.Errorf("line %d: %w", yn.Line, err)
		}
		return Float(f), nil
	case "!!bool":
		var b bool
		if err := yn.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: %w", yn.Line, err)
		}
		return Bool(b), nil
	case "!!null":
		return Null(), nil
	default:
		// Custom-tagged scalars keep their literal text.
		return String(yn.Value), nil
	}
}

// Load reads path and decodes it into an ordered node tree. The encoding is
// chosen from the file extension (.json and .har are JSON, .yaml and .yml
// are YAML) with content sniffing as the fallback. Documents whose top level
// is not an object are rejected, since every supported API description
// format is an object at the root.
//
// A missing file yields [converrors.FileNotFoundError]; malformed content
// yields [converrors.DecodeError].
func Load(path string) (*Node, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304 - path is user-provided input
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &converrors.FileNotFoundError{Path: path, Cause: err}
		}
		return nil, &converrors.DecodeError{Path: path, Cause: err}
	}

	var node *Node
	switch EncodingFromPath(path) {
	case EncodingJSON:
		node, err = DecodeJSON(data, path)
	case EncodingYAML:
		node, err = DecodeYAML(data, path)
	default:
		node, err = Decode(data, path)
	}
	if err != nil {
		return nil, err
	}

	if node.Kind() != KindObject {
		return nil, &converrors.DecodeError{
			Path:    path,
			Message: fmt.Sprintf("top-level value is %s, expected object", node.Kind()),
		}
	}
	return node, nil
}
