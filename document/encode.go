package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"go.yaml.in/yaml/v4"
)

// MarshalJSON encodes the node as compact JSON, preserving object member
// order. It implements [json.Marshaler].
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Node) writeJSON(buf *bytes.Buffer) error {
	if n == nil {
		buf.WriteString("null")
		return nil
	}
	switch n.kind {
	case KindObject:
		buf.WriteByte('{')
		for i, m := range n.members {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(m.Key)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := m.Value.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case KindArray:
		buf.WriteByte('[')
		for i, item := range n.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case KindString:
		s, err := json.Marshal(n.str)
		if err != nil {
			return err
		}
		buf.Write(s)
		return nil
	case KindNumber:
		if n.isInt {
			buf.WriteString(strconv.FormatInt(n.intVal, 10))
			return nil
		}
		f, err := json.Marshal(n.floatVal)
		if err != nil {
			return err
		}
		buf.Write(f)
		return nil
	case KindBool:
		buf.WriteString(strconv.FormatBool(n.boolVal))
		return nil
	case KindNull:
		buf.WriteString("null")
		return nil
	default:
		return fmt.Errorf("cannot encode invalid node")
	}
}

// EncodeJSON encodes the node as indented JSON with a trailing newline,
// preserving object member order.
func (n *Node) EncodeJSON() ([]byte, error) {
	compact, err := n.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// MarshalYAML converts the node into a *yaml.Node tree, preserving object
// member order. It implements the yaml marshaler interface.
func (n *Node) MarshalYAML() (any, error) {
	return n.yamlNode()
}

func (n *Node) yamlNode() (*yaml.Node, error) {
	if n == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	}
	switch n.kind {
	case KindObject:
		yn := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range n.members {
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Key}
			val, err := m.Value.yamlNode()
			if err != nil {
				return nil, err
			}
			yn.Content = append(yn.Content, key, val)
		}
		return yn, nil
	case KindArray:
		yn := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range n.items {
			child, err := item.yamlNode()
			if err != nil {
				return nil, err
			}
			yn.Content = append(yn.Content, child)
		}
		return yn, nil
	case KindString:
		yn := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: n.str}
		// Strings that would re-parse as another scalar type need quoting.
		if needsQuoting(n.str) {
			yn.Style = yaml.DoubleQuotedStyle
		}
		return yn, nil
	case KindNumber:
		if n.isInt {
			return &yaml.Node{
				Kind:  yaml.ScalarNode,
				Tag:   "!!int",
				Value: strconv.FormatInt(n.intVal, 10),
			}, nil
		}
		return &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!float",
			Value: strconv.FormatFloat(n.floatVal, 'g', -1, 64),
		}, nil
	case KindBool:
		return &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!bool",
			Value: strconv.FormatBool(n.boolVal),
		}, nil
	case KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	default:
		return nil, fmt.Errorf("cannot encode invalid node")
	}
}

// needsQuoting reports whether a string scalar must be quoted to survive a
// YAML round-trip as a string.
func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	switch s {
	case "null", "Null", "NULL", "~",
		"true", "True", "TRUE", "false", "False", "FALSE",
		"yes", "Yes", "YES", "no", "No", "NO",
		"on", "On", "ON", "off", "Off", "OFF":
		return true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	return false
}

// EncodeYAML encodes the node as YAML with two-space indentation, preserving
// object member order.
func (n *Node) EncodeYAML() ([]byte, error) {
	yn, err := n.yamlNode()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(yn); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode serializes the node in the given encoding. EncodingUnknown
// defaults to JSON.
func (n *Node) Encode(enc Encoding) ([]byte, error) {
	if enc == EncodingYAML {
		return n.EncodeYAML()
	}
	return n.EncodeJSON()
}

// Save writes the node to path, choosing JSON or YAML from the file
// extension (JSON when the extension is unknown).
func (n *Node) Save(path string) error {
	data, err := n.Encode(EncodingFromPath(path))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644) //nolint:gosec // G306 - output documents are not secrets
}
