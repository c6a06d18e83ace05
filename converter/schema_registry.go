package converter

import (
	"fmt"
	"strconv"

	"github.com/apiconv/apiconv/document"
)

// schemaRegistry accumulates inferred schemas for a single conversion run.
// Names are deduplicated with a numeric suffix (Response, Response1, ...)
// and schemas are registered in inference order, children before parents.
type schemaRegistry struct {
	schemas *document.Node
	used    map[string]bool
}

func newSchemaRegistry() *schemaRegistry {
	return &schemaRegistry{
		schemas: document.NewObject(),
		used:    make(map[string]bool),
	}
}

// claim reserves a unique schema name derived from prefix.
func (r *schemaRegistry) claim(prefix string) string {
	name := prefix
	for counter := 1; r.used[name]; counter++ {
		name = prefix + strconv.Itoa(counter)
	}
	r.used[name] = true
	return name
}

// Infer derives a schema from a sample value, registers it under a unique
// name built from prefix, and returns that name. Nested objects and arrays
// become their own named schemas referenced via $ref: an object member key
// extends the parent name as {name}_{key}, an array element as {name}_item.
func (r *schemaRegistry) Infer(prefix string, sample *document.Node) string {
	name := r.claim(prefix)

	var schema *document.Node
	switch sample.Kind() {
	case document.KindObject:
		schema = document.NewObject()
		schema.Set("type", document.String("object"))
		props := document.NewObject()
		schema.Set("properties", props)
		for _, m := range sample.Members() {
			if isContainer(m.Value) {
				refName := r.Infer(fmt.Sprintf("%s_%s", name, m.Key), m.Value)
				props.Set(m.Key, refNode(refName))
			} else {
				props.Set(m.Key, scalarSchema(m.Value))
			}
		}
	case document.KindArray:
		schema = document.NewObject()
		schema.Set("type", document.String("array"))
		if sample.Len() > 0 {
			first := sample.Index(0)
			if isContainer(first) {
				refName := r.Infer(name+"_item", first)
				schema.Set("items", refNode(refName))
			} else {
				schema.Set("items", scalarSchema(first))
			}
		} else {
			// Nothing to sample; assume string elements.
			empty := document.NewObject()
			empty.Set("type", document.String("string"))
			schema.Set("items", empty)
		}
	default:
		schema = scalarSchema(sample)
	}

	r.schemas.Set(name, schema)
	return name
}

func isContainer(n *document.Node) bool {
	return n.Kind() == document.KindObject || n.Kind() == document.KindArray
}

// refNode builds an OpenAPI 3 schema reference.
func refNode(name string) *document.Node {
	ref := document.NewObject()
	ref.Set("$ref", document.String("#/components/schemas/"+name))
	return ref
}

// scalarSchema maps a scalar sample to a schema, carrying the sample as the
// example. Integer samples become "integer", other numbers "number".
func scalarSchema(value *document.Node) *document.Node {
	schema := document.NewObject()
	switch value.Kind() {
	case document.KindNull:
		schema.Set("type", document.String("null"))
	case document.KindBool:
		schema.Set("type", document.String("boolean"))
	case document.KindNumber:
		if value.IsInt() {
			schema.Set("type", document.String("integer"))
			schema.Set("example", document.Int(value.Int64()))
		} else {
			schema.Set("type", document.String("number"))
			schema.Set("example", document.Float(value.Float64()))
		}
	default:
		schema.Set("type", document.String("string"))
		schema.Set("example", document.String(value.Str()))
	}
	return schema
}
