package converter

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/apiconv/apiconv/document"
	"github.com/apiconv/apiconv/formats"
)

// swaggerMethods are the HTTP methods Swagger 2.0 allows on a path item.
var swaggerMethods = []string{"get", "post", "put", "delete", "options", "head", "patch"}

// schemaPassthroughFields are the schema keywords copied through unchanged
// when downgrading a schema. Keywords holding nested schemas (items,
// properties, additionalProperties, allOf) are handled separately so their
// $refs get rewritten.
var schemaPassthroughFields = []string{
	"type", "format", "title", "description", "default",
	"multipleOf", "maximum", "exclusiveMaximum", "minimum", "exclusiveMinimum",
	"maxLength", "minLength", "pattern",
	"maxItems", "minItems", "uniqueItems",
	"maxProperties", "minProperties",
	"required", "enum", "example",
	"nullable", "discriminator", "readOnly", "writeOnly", "deprecated",
}

// openAPI3ToSwagger2 downgrades an OpenAPI 3 description to Swagger 2.0.
// The first server URL becomes host/basePath/schemes, request bodies become
// body parameters, and component schemas move to definitions with their
// $refs rewritten. oneOf/anyOf composition has no Swagger 2 equivalent and
// collapses to the first variant with a warning.
type openAPI3ToSwagger2 struct{}

func (openAPI3ToSwagger2) Source() formats.Format { return formats.FormatOpenAPI3 }
func (openAPI3ToSwagger2) Target() formats.Format { return formats.FormatSwagger }

func (c *openAPI3ToSwagger2) Convert(doc *document.Node, opts Options, result *Result) (*document.Node, error) {
	out := document.NewObject()
	out.Set("swagger", document.String("2.0"))

	if info := doc.Get("info"); info != nil {
		out.Set("info", info.Clone())
	} else {
		info := document.NewObject()
		info.Set("title", document.String("API"))
		info.Set("version", document.String("1.0.0"))
		out.Set("info", info)
	}

	paths := document.NewObject()
	out.Set("paths", paths)
	definitions := document.NewObject()
	out.Set("definitions", definitions)

	c.convertServers(doc, out, result)

	for _, pathMember := range doc.Get("paths").Members() {
		pathItem := document.NewObject()
		paths.Set(pathMember.Key, pathItem)
		for _, method := range swaggerMethods {
			operation := pathMember.Value.Get(method)
			if operation == nil {
				continue
			}
			opPath := fmt.Sprintf("paths.%s.%s", pathMember.Key, method)
			pathItem.Set(method, c.convertOperation(operation, opPath, result))
		}
	}

	for _, m := range doc.Get("components").Get("schemas").Members() {
		definitions.Set(m.Key, c.convertSchema(m.Value, "definitions."+m.Key, result))
	}

	return out, nil
}

// convertServers maps the first servers entry onto host, basePath, and
// schemes. Swagger 2 has a single host, so additional servers are dropped.
func (c *openAPI3ToSwagger2) convertServers(doc, out *document.Node, result *Result) {
	servers := doc.Get("servers")
	if servers.Len() == 0 {
		return
	}
	serverURL := servers.Index(0).Get("url").Str()
	if serverURL == "" {
		return
	}

	u, err := url.Parse(serverURL)
	if err != nil {
		result.addIssueWithContext("servers", "server URL could not be parsed, host and basePath omitted", err.Error())
		return
	}

	out.Set("host", document.String(u.Host))
	basePath := u.Path
	if basePath == "" {
		basePath = "/"
	}
	out.Set("basePath", document.String(basePath))

	scheme := u.Scheme
	if scheme == "" {
		scheme = "https"
	}
	out.Set("schemes", document.NewArray().Append(document.String(scheme)))

	if servers.Len() > 1 {
		result.addIssueWithContext("servers",
			fmt.Sprintf("only the first of %d servers was converted", servers.Len()),
			"Swagger 2 supports a single host/basePath")
	}
}

func (c *openAPI3ToSwagger2) convertOperation(operation *document.Node, opPath string, result *Result) *document.Node {
	out := document.NewObject()
	out.Set("summary", document.String(operation.Get("summary").Str()))
	out.Set("description", document.String(operation.Get("description").Str()))
	out.Set("operationId", document.String(operation.Get("operationId").Str()))
	if tags := operation.Get("tags"); tags.Kind() == document.KindArray {
		out.Set("tags", tags.Clone())
	} else {
		out.Set("tags", document.NewArray())
	}

	params := document.NewArray()
	out.Set("parameters", params)
	responses := document.NewObject()
	out.Set("responses", responses)

	for _, param := range operation.Get("parameters").Items() {
		params.Append(c.convertParameter(param, opPath, result))
	}

	if requestBody := operation.Get("requestBody"); requestBody != nil {
		if bodyParam := c.convertRequestBody(requestBody, opPath, result); bodyParam != nil {
			params.Append(bodyParam)
		}
	}

	for _, respMember := range operation.Get("responses").Members() {
		responses.Set(respMember.Key, c.convertResponse(respMember.Value, opPath+".responses."+respMember.Key, result))
	}

	// Swagger 2 declares media types per operation. produces is the union of
	// content types across responses, consumes comes from the requestBody.
	produces := document.NewArray()
	seen := map[string]bool{}
	for _, respMember := range operation.Get("responses").Members() {
		for _, m := range respMember.Value.Get("content").Members() {
			if !seen[m.Key] {
				seen[m.Key] = true
				produces.Append(document.String(m.Key))
			}
		}
	}
	if produces.Len() > 0 {
		out.Set("produces", produces)
	}

	consumes := document.NewArray()
	for _, m := range operation.Get("requestBody").Get("content").Members() {
		consumes.Append(document.String(m.Key))
	}
	if consumes.Len() > 0 {
		out.Set("consumes", consumes)
	}

	return out
}

// convertParameter flattens the OpenAPI 3 schema wrapper: plain type/format
// move onto the parameter itself, $ref schemas stay a schema with the ref
// rewritten.
func (c *openAPI3ToSwagger2) convertParameter(param *document.Node, opPath string, result *Result) *document.Node {
	out := document.NewObject()
	out.Set("name", document.String(param.Get("name").Str()))
	out.Set("in", document.String(param.Get("in").Str()))
	out.Set("description", document.String(param.Get("description").Str()))
	required, ok := param.Get("required").AsBool()
	out.Set("required", document.Bool(ok && required))

	schema := param.Get("schema")
	if schema == nil {
		return out
	}
	if schema.Has("$ref") {
		out.Set("schema", c.convertSchema(schema, opPath+".parameters", result))
		return out
	}

	paramType := schema.Get("type").Str()
	if paramType == "" {
		paramType = "string"
	}
	out.Set("type", document.String(paramType))
	if format := schema.Get("format"); format != nil {
		out.Set("format", format.Clone())
	}
	return out
}

// convertRequestBody turns an OpenAPI 3 requestBody into a Swagger 2 body
// parameter. Only application/json content maps; other media types are lost.
func (c *openAPI3ToSwagger2) convertRequestBody(requestBody *document.Node, opPath string, result *Result) *document.Node {
	content := requestBody.Get("content")
	jsonContent := content.Get("application/json")
	if jsonContent == nil {
		if content.Len() > 0 {
			result.addIssueWithContext(opPath+".requestBody",
				"request body has no application/json content and was dropped",
				"Swagger 2 body parameters carry a single JSON schema")
		}
		return nil
	}
	schema := jsonContent.Get("schema")
	if schema == nil {
		return nil
	}

	required, ok := requestBody.Get("required").AsBool()
	out := document.NewObject()
	out.Set("name", document.String("body"))
	out.Set("in", document.String("body"))
	out.Set("required", document.Bool(ok && required))
	out.Set("schema", c.convertSchema(schema, opPath+".requestBody", result))
	return out
}

func (c *openAPI3ToSwagger2) convertResponse(response *document.Node, respPath string, result *Result) *document.Node {
	out := document.NewObject()
	out.Set("description", document.String(response.Get("description").Str()))

	schema := response.Get("content").Get("application/json").Get("schema")
	if schema != nil {
		out.Set("schema", c.convertSchema(schema, respPath, result))
	}
	return out
}

// convertSchema recursively downgrades a schema, rewriting local $refs from
// #/components/schemas/ to #/definitions/.
func (c *openAPI3ToSwagger2) convertSchema(schema *document.Node, path string, result *Result) *document.Node {
	if schema == nil || schema.Len() == 0 {
		return document.NewObject()
	}

	if ref := schema.Get("$ref"); ref != nil {
		out := document.NewObject()
		out.Set("$ref", document.String(rewriteRefToSwagger(ref.Str())))
		return out
	}

	out := document.NewObject()
	for _, field := range schemaPassthroughFields {
		if v := schema.Get(field); v != nil {
			out.Set(field, v.Clone())
		}
	}

	if items := schema.Get("items"); items != nil && schema.Get("type").Str() == "array" {
		out.Set("items", c.convertSchema(items, path+".items", result))
	}

	if props := schema.Get("properties"); props != nil && schema.Get("type").Str() == "object" {
		outProps := document.NewObject()
		out.Set("properties", outProps)
		for _, m := range props.Members() {
			outProps.Set(m.Key, c.convertSchema(m.Value, path+"."+m.Key, result))
		}
	}

	// additionalProperties is either a boolean or a nested schema.
	if ap := schema.Get("additionalProperties"); ap != nil {
		if ap.Kind() == document.KindObject {
			out.Set("additionalProperties", c.convertSchema(ap, path+".additionalProperties", result))
		} else {
			out.Set("additionalProperties", ap.Clone())
		}
	}

	if allOf := schema.Get("allOf"); allOf.Kind() == document.KindArray {
		outAllOf := document.NewArray()
		for i, sub := range allOf.Items() {
			outAllOf.Append(c.convertSchema(sub, fmt.Sprintf("%s.allOf[%d]", path, i), result))
		}
		out.Set("allOf", outAllOf)
	} else if variants := firstComposition(schema); variants != nil {
		// Swagger 2 has no oneOf/anyOf; keep the first variant.
		if variants.node.Len() > 0 {
			converted := c.convertSchema(variants.node.Index(0), path, result)
			for _, m := range converted.Members() {
				out.Set(m.Key, m.Value)
			}
			result.addIssueWithContext(path,
				fmt.Sprintf("%s collapsed to its first variant", variants.keyword),
				"Swagger 2 does not support oneOf or anyOf composition")
		}
	}

	return out
}

type composition struct {
	keyword string
	node    *document.Node
}

func firstComposition(schema *document.Node) *composition {
	if oneOf := schema.Get("oneOf"); oneOf.Kind() == document.KindArray {
		return &composition{keyword: "oneOf", node: oneOf}
	}
	if anyOf := schema.Get("anyOf"); anyOf.Kind() == document.KindArray {
		return &composition{keyword: "anyOf", node: anyOf}
	}
	return nil
}

// rewriteRefToSwagger maps a local OpenAPI 3 schema ref onto the Swagger 2
// definitions namespace. Other refs pass through unchanged.
func rewriteRefToSwagger(ref string) string {
	const oas3Prefix = "#/components/schemas/"
	if strings.HasPrefix(ref, oas3Prefix) {
		return "#/definitions/" + ref[len(oas3Prefix):]
	}
	return ref
}
