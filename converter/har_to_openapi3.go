package converter

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/apiconv/apiconv/document"
	"github.com/apiconv/apiconv/formats"
	"github.com/apiconv/apiconv/internal/naming"
)

// specialPathChars are characters that cannot appear literally in an
// OpenAPI path template. Segments containing any of them are turned into
// path parameters.
const specialPathChars = "!@#$%^&*()+={}[]|:\"'<>?,"

// skippedRequestHeaders are transport-level headers that say nothing about
// the API contract and are dropped when extracting header parameters.
var skippedRequestHeaders = map[string]bool{
	"host":            true,
	"user-agent":      true,
	"accept":          true,
	"content-length":  true,
	"connection":      true,
	"cookie":          true,
	"accept-encoding": true,
	"accept-language": true,
}

// harToOpenAPI3 converts HTTP Archive captures into OpenAPI 3 descriptions.
// Request/response bodies with a JSON media type are sampled into named
// component schemas; everything else is documented as a string with the
// captured text as the example.
type harToOpenAPI3 struct{}

func (harToOpenAPI3) Source() formats.Format { return formats.FormatHAR }
func (harToOpenAPI3) Target() formats.Format { return formats.FormatOpenAPI3 }

func (c *harToOpenAPI3) Convert(doc *document.Node, opts Options, result *Result) (*document.Node, error) {
	paths := document.NewObject()
	reg := newSchemaRegistry()
	processed := make(map[string]map[string]bool)

	entries := doc.Get("log").Get("entries")
	for _, entry := range entries.Items() {
		request := entry.Get("request")
		response := entry.Get("response")

		method := strings.ToLower(request.Get("method").Str())
		rawURL := request.Get("url").Str()
		if rawURL == "" {
			continue
		}

		path := c.extractPath(rawURL, opts)
		if opts.BasePath != "" {
			path = joinBasePath(opts.BasePath, path)
		}

		if processed[path] == nil {
			processed[path] = make(map[string]bool)
			paths.Set(path, document.NewObject())
		}
		if processed[path][method] {
			// Keep the first occurrence of each method+path pair.
			result.addIssue(
				fmt.Sprintf("paths.%s.%s", path, method),
				"duplicate entry skipped, first occurrence kept",
				SeverityInfo,
			)
			continue
		}
		processed[path][method] = true

		op := c.buildOperation(path, method, request, response, reg)
		paths.Get(path).Set(method, op)
	}

	components := document.NewObject()
	components.Set("schemas", reg.schemas)
	components.Set("requestBodies", document.NewObject())
	components.Set("responses", document.NewObject())

	info := document.NewObject()
	info.Set("title", document.String(opts.title(DefaultTitle)))
	info.Set("version", document.String(opts.version()))
	if opts.Description != "" {
		info.Set("description", document.String(opts.Description))
	} else {
		info.Set("description", document.String(DefaultDescription))
	}

	out := document.NewObject()
	out.Set("openapi", document.String("3.0.0"))
	out.Set("info", info)
	out.Set("paths", paths)
	out.Set("components", components)
	if len(opts.Servers) > 0 {
		servers := document.NewArray()
		for _, s := range opts.Servers {
			server := document.NewObject()
			server.Set("url", document.String(s))
			servers.Append(server)
		}
		out.Set("servers", servers)
	}
	return out, nil
}

// ConvertString converts a HAR capture held in a string to an OpenAPI 3
// description. This entry point stamps the output `openapi: "3.0.3"`;
// Convert and ConvertFile emit "3.0.0".
func ConvertString(harContent string, opts Options) (*Result, error) {
	doc, err := document.Decode([]byte(harContent), "")
	if err != nil {
		return nil, err
	}
	result, err := Convert(doc, formats.FormatHAR, formats.FormatOpenAPI3, opts)
	if err != nil {
		return nil, err
	}
	result.Document.Set("openapi", document.String("3.0.3"))
	return result, nil
}

// extractPath turns a captured URL into an OpenAPI path template. Segments
// containing special characters become path parameters named after the
// preceding segment; with GuessPathParams enabled, all-digit segments are
// parameterized the same way.
func (c *harToOpenAPI3) extractPath(rawURL string, opts Options) string {
	var path string
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		path = u.Path
	} else {
		// Tolerate unparseable URLs the way browsers exported them.
		path = rawURL
		if idx := strings.Index(path, "//"); idx >= 0 {
			path = path[idx+2:]
		}
		if idx := strings.Index(path, "/"); idx >= 0 {
			path = path[idx:]
		} else {
			path = "/"
		}
		if idx := strings.Index(path, "?"); idx >= 0 {
			path = path[:idx]
		}
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	segments := strings.Split(path, "/")
	hasSpecial := false
	for i, segment := range segments {
		if !strings.ContainsAny(segment, specialPathChars) {
			continue
		}
		hasSpecial = true
		if i > 0 && segments[i-1] != "" {
			segments[i] = "{" + strings.ToLower(naming.Singularize(segments[i-1])) + "Value}"
		} else {
			segments[i] = "{paramValue}"
		}
	}
	if hasSpecial {
		kept := segments[:0]
		for _, s := range segments {
			if s != "" {
				kept = append(kept, s)
			}
		}
		path = "/" + strings.Join(kept, "/")
	}

	if opts.GuessPathParams {
		path = guessPathTemplate(path)
	}
	return path
}

// guessPathTemplate replaces all-digit segments with a parameter named
// after the preceding segment (/users/42 -> /users/{userId}).
func guessPathTemplate(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if segment == "" || !isAllDigits(segment) {
			continue
		}
		if i > 0 && segments[i-1] != "" {
			segments[i] = "{" + naming.Singularize(segments[i-1]) + "Id}"
		} else {
			segments[i] = "{id}"
		}
	}
	return strings.Join(segments, "/")
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func joinBasePath(basePath, path string) string {
	base := "/" + strings.Trim(basePath, "/")
	if base == "/" {
		return path
	}
	return base + path
}

func (c *harToOpenAPI3) buildOperation(path, method string, request, response *document.Node, reg *schemaRegistry) *document.Node {
	op := document.NewObject()
	op.Set("summary", document.String(strings.ToUpper(method)+" "+path))
	op.Set("description", document.String(""))
	op.Set("operationId", document.String(method+"_"+strings.Trim(strings.ReplaceAll(path, "/", "_"), "_")))
	op.Set("responses", c.extractResponses(response, reg))

	if params := c.extractParameters(request); params.Len() > 0 {
		op.Set("parameters", params)
	}
	if body := c.extractRequestBody(request, reg); body != nil {
		op.Set("requestBody", body)
	}
	return op
}

func (c *harToOpenAPI3) extractParameters(request *document.Node) *document.Node {
	params := document.NewArray()

	for _, item := range request.Get("queryString").Items() {
		params.Append(stringParam(item.Get("name").Str(), "query", item.Get("value").Str()))
	}

	for _, item := range request.Get("headers").Items() {
		name := item.Get("name").Str()
		if skippedRequestHeaders[strings.ToLower(name)] {
			continue
		}
		params.Append(stringParam(name, "header", item.Get("value").Str()))
	}
	return params
}

// stringParam builds a required string parameter carrying the captured
// value as the example. A single capture cannot prove optionality, so
// everything observed is marked required.
func stringParam(name, in, example string) *document.Node {
	schema := document.NewObject()
	schema.Set("type", document.String("string"))
	schema.Set("example", document.String(example))

	param := document.NewObject()
	param.Set("name", document.String(name))
	param.Set("in", document.String(in))
	param.Set("required", document.Bool(true))
	param.Set("schema", schema)
	return param
}

func (c *harToOpenAPI3) extractRequestBody(request *document.Node, reg *schemaRegistry) *document.Node {
	postData := request.Get("postData")
	if postData.Len() == 0 {
		return nil
	}

	mimeType := postData.Get("mimeType").Str()
	text := postData.Get("text").Str()

	if strings.Contains(mimeType, "json") {
		sampleText := text
		if sampleText == "" {
			sampleText = "{}"
		}
		if sample, err := document.DecodeJSON([]byte(sampleText), ""); err == nil {
			name := reg.Infer("RequestBody", sample)
			return requestBodyNode(mimeType, refNode(name))
		}
	}

	schema := document.NewObject()
	schema.Set("type", document.String("string"))
	schema.Set("example", document.String(text))
	return requestBodyNode(mimeType, schema)
}

func requestBodyNode(mimeType string, schema *document.Node) *document.Node {
	media := document.NewObject()
	media.Set("schema", schema)

	content := document.NewObject()
	content.Set(mimeType, media)

	body := document.NewObject()
	body.Set("required", document.Bool(true))
	body.Set("content", content)
	return body
}

func (c *harToOpenAPI3) extractResponses(response *document.Node, reg *schemaRegistry) *document.Node {
	status := "200"
	if s := response.Get("status"); s.Kind() == document.KindNumber {
		status = strconv.FormatInt(s.Int64(), 10)
	}

	contentType := ""
	for _, h := range response.Get("headers").Items() {
		if strings.EqualFold(h.Get("name").Str(), "content-type") {
			contentType = h.Get("value").Str()
			break
		}
	}

	description := response.Get("statusText").Str()
	if description == "" {
		description = "Response"
	}

	entry := document.NewObject()
	entry.Set("description", document.String(description))

	responses := document.NewObject()
	responses.Set(status, entry)

	respContent := response.Get("content")
	if respContent.Len() == 0 || contentType == "" {
		return responses
	}

	text := respContent.Get("text").Str()
	var schema *document.Node
	if strings.Contains(contentType, "json") && text != "" {
		if sample, err := document.DecodeJSON([]byte(text), ""); err == nil {
			schema = refNode(reg.Infer("Response", sample))
		}
	}
	if schema == nil {
		schema = document.NewObject()
		schema.Set("type", document.String("string"))
		schema.Set("example", document.String(text))
	}

	media := document.NewObject()
	media.Set("schema", schema)
	content := document.NewObject()
	content.Set(contentType, media)
	entry.Set("content", content)

	return responses
}
