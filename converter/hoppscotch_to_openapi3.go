package converter

import (
	"net/url"
	"strings"

	"github.com/apiconv/apiconv/document"
	"github.com/apiconv/apiconv/formats"
	"github.com/apiconv/apiconv/internal/naming"
)

// hoppscotchToOpenAPI3 converts a Hoppscotch collection export into an
// OpenAPI 3 description. Folder nesting becomes operation tags
// (parent/child), request auth becomes security schemes, and JSON bodies
// are sampled into inline schemas.
type hoppscotchToOpenAPI3 struct{}

func (hoppscotchToOpenAPI3) Source() formats.Format { return formats.FormatHoppscotch }
func (hoppscotchToOpenAPI3) Target() formats.Format { return formats.FormatOpenAPI3 }

func (c *hoppscotchToOpenAPI3) Convert(doc *document.Node, opts Options, result *Result) (*document.Node, error) {
	title := opts.Title
	if title == "" {
		title = doc.Get("name").Str()
	}
	if title == "" {
		title = "API"
	}

	info := document.NewObject()
	info.Set("title", document.String(title))
	info.Set("version", document.String(opts.version()))
	info.Set("description", document.String(opts.Description))

	securitySchemes := document.NewObject()
	components := document.NewObject()
	components.Set("schemas", document.NewObject())
	components.Set("securitySchemes", securitySchemes)

	out := document.NewObject()
	out.Set("openapi", document.String("3.0.0"))
	out.Set("info", info)
	out.Set("paths", document.NewObject())
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

	// Collection-level auth applies to every request that inherits.
	if scheme, name := buildSecurityScheme(doc.Get("auth")); scheme != nil {
		registerSecurityScheme(securitySchemes, name, scheme)
	}

	c.processRequests(doc, out, "")
	for _, folder := range doc.Get("folders").Items() {
		c.processFolder(folder, out, naming.ToTitleCase(folder.Get("name").Str()))
	}

	return out, nil
}

func (c *hoppscotchToOpenAPI3) processFolder(folder, out *document.Node, tag string) {
	c.processRequests(folder, out, tag)
	for _, sub := range folder.Get("folders").Items() {
		subTag := naming.ToTitleCase(sub.Get("name").Str())
		if tag != "" {
			subTag = tag + "/" + subTag
		}
		c.processFolder(sub, out, subTag)
	}
}

func (c *hoppscotchToOpenAPI3) processRequests(container, out *document.Node, tag string) {
	for _, request := range container.Get("requests").Items() {
		c.processRequest(request, out, tag)
	}
}

func (c *hoppscotchToOpenAPI3) processRequest(request, out *document.Node, tag string) {
	method := strings.ToLower(request.Get("method").Str())
	if method == "" {
		method = "get"
	}
	endpoint := request.Get("endpoint").Str()
	if endpoint == "" {
		return
	}

	path, pathParams := extractPathTemplate(endpoint)

	paths := out.Get("paths")
	if !paths.Has(path) {
		paths.Set(path, document.NewObject())
	}

	params := document.NewArray()

	responses := document.NewObject()
	ok := document.NewObject()
	ok.Set("description", document.String("Successful response"))
	responses.Set("200", ok)

	operation := document.NewObject()
	operation.Set("summary", document.String(request.Get("name").Str()))
	operation.Set("parameters", params)
	operation.Set("responses", responses)
	if tag != "" {
		operation.Set("tags", document.NewArray().Append(document.String(tag)))
	}

	for _, name := range pathParams {
		schema := document.NewObject()
		schema.Set("type", document.String("string"))

		param := document.NewObject()
		param.Set("name", document.String(name))
		param.Set("in", document.String("path"))
		param.Set("required", document.Bool(true))
		param.Set("schema", schema)
		params.Append(param)
	}

	appendActiveParams(params, request.Get("params"), "query")
	appendActiveParams(params, request.Get("headers"), "header")

	if body := c.buildRequestBody(request, method); body != nil {
		operation.Set("requestBody", body)
	}

	c.applyRequestAuth(request, operation, out)

	paths.Get(path).Set(method, operation)
}

// extractPathTemplate normalizes the request endpoint into an OpenAPI path.
// Both Hoppscotch segment styles are recognized: ":param" and "{param}".
func extractPathTemplate(endpoint string) (string, []string) {
	if idx := strings.Index(endpoint, "?"); idx >= 0 {
		endpoint = endpoint[:idx]
	}

	path := endpoint
	if u, err := url.Parse(endpoint); err == nil {
		path = u.Path
		if path == "" && u.Host != "" {
			path = "/"
		}
	}

	segments := strings.Split(path, "/")
	var params []string
	for i, segment := range segments {
		switch {
		case strings.HasPrefix(segment, ":"):
			name := segment[1:]
			segments[i] = "{" + name + "}"
			params = append(params, name)
		case strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}"):
			params = append(params, segment[1:len(segment)-1])
		}
	}

	path = strings.Join(segments, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path, params
}

// appendActiveParams converts Hoppscotch key/value entries into parameters,
// skipping inactive entries and entries without a key. The captured value
// becomes the schema default.
func appendActiveParams(params, list *document.Node, in string) {
	for _, item := range list.Items() {
		if item.Kind() != document.KindObject {
			continue
		}
		if item.Get("key").Str() == "" {
			continue
		}
		if active, ok := item.Get("active").AsBool(); ok && !active {
			continue
		}

		required := false
		if r, ok := item.Get("required").AsBool(); ok {
			required = r
		}

		schema := document.NewObject()
		schema.Set("type", document.String("string"))
		schema.Set("default", document.String(item.Get("value").Str()))

		param := document.NewObject()
		param.Set("name", document.String(item.Get("key").Str()))
		param.Set("in", document.String(in))
		param.Set("required", document.Bool(required))
		param.Set("schema", schema)
		params.Append(param)
	}
}

func (c *hoppscotchToOpenAPI3) buildRequestBody(request *document.Node, method string) *document.Node {
	body := request.Get("body")
	if body.Len() == 0 {
		return nil
	}
	if method != "post" && method != "put" && method != "patch" {
		return nil
	}

	contentType := body.Get("contentType").Str()
	content := document.NewObject()

	switch contentType {
	case "application/json":
		raw := body.Get("body").Str()
		if raw == "" {
			break
		}
		media := document.NewObject()
		if sample, err := document.DecodeJSON([]byte(raw), ""); err == nil {
			media.Set("schema", inlineJSONSchema(sample))
		} else {
			schema := document.NewObject()
			schema.Set("type", document.String("string"))
			schema.Set("example", document.String(raw))
			media.Set("schema", schema)
		}
		content.Set("application/json", media)

	case "multipart/form-data", "application/x-www-form-urlencoded":
		props := document.NewObject()
		for _, item := range body.Get("body").Items() {
			if item.Get("key").Str() == "" {
				continue
			}
			if active, ok := item.Get("active").AsBool(); ok && !active {
				continue
			}
			field := document.NewObject()
			field.Set("type", document.String("string"))
			field.Set("example", document.String(item.Get("value").Str()))
			props.Set(item.Get("key").Str(), field)
		}
		if props.Len() > 0 {
			schema := document.NewObject()
			schema.Set("type", document.String("object"))
			schema.Set("properties", props)
			media := document.NewObject()
			media.Set("schema", schema)
			content.Set(contentType, media)
		}

	case "":
		// No content type recorded; nothing to document.

	default:
		schema := document.NewObject()
		schema.Set("type", document.String("string"))
		schema.Set("example", document.String(body.Get("body").Str()))
		media := document.NewObject()
		media.Set("schema", schema)
		content.Set(contentType, media)
	}

	if content.Len() == 0 {
		return nil
	}
	requestBody := document.NewObject()
	requestBody.Set("content", content)
	return requestBody
}

// inlineJSONSchema derives an anonymous schema from a JSON sample. Unlike
// the HAR converter, Hoppscotch bodies stay inline rather than becoming
// named component schemas.
func inlineJSONSchema(sample *document.Node) *document.Node {
	schema := document.NewObject()
	switch sample.Kind() {
	case document.KindNull:
		schema.Set("type", document.String("null"))
	case document.KindBool:
		schema.Set("type", document.String("boolean"))
	case document.KindNumber:
		if sample.IsInt() {
			schema.Set("type", document.String("integer"))
		} else {
			schema.Set("type", document.String("number"))
		}
	case document.KindString:
		schema.Set("type", document.String("string"))
	case document.KindArray:
		schema.Set("type", document.String("array"))
		if sample.Len() > 0 {
			schema.Set("items", inlineJSONSchema(sample.Index(0)))
		} else {
			schema.Set("items", document.NewObject())
		}
	case document.KindObject:
		schema.Set("type", document.String("object"))
		props := document.NewObject()
		for _, m := range sample.Members() {
			props.Set(m.Key, inlineJSONSchema(m.Value))
		}
		schema.Set("properties", props)
	default:
		schema.Set("type", document.String("string"))
	}
	return schema
}

// applyRequestAuth maps request-level auth onto a security requirement,
// registering the scheme under components if it is new.
func (c *hoppscotchToOpenAPI3) applyRequestAuth(request, operation, out *document.Node) {
	auth := request.Get("auth")
	authType := auth.Get("authType").Str()
	if authType == "" || authType == "none" {
		return
	}
	if active, ok := auth.Get("authActive").AsBool(); !ok || !active {
		return
	}
	if authType == "inherit" {
		// Collection-level auth was already registered.
		return
	}

	scheme, name := buildSecurityScheme(auth)
	if scheme == nil {
		return
	}
	securitySchemes := out.Get("components").Get("securitySchemes")
	registerSecurityScheme(securitySchemes, name, scheme)

	requirement := document.NewObject()
	requirement.Set(name, document.NewArray())
	operation.Set("security", document.NewArray().Append(requirement))
}

// registerSecurityScheme adds a scheme unless the name is taken; the first
// registration wins.
func registerSecurityScheme(securitySchemes *document.Node, name string, scheme *document.Node) {
	if !securitySchemes.Has(name) {
		securitySchemes.Set(name, scheme)
	}
}

// buildSecurityScheme translates a Hoppscotch auth block into an OpenAPI
// security scheme and its registry name. Returns nil for absent, none, and
// inherit auth.
func buildSecurityScheme(auth *document.Node) (*document.Node, string) {
	switch auth.Get("authType").Str() {
	case "basic":
		scheme := document.NewObject()
		scheme.Set("type", document.String("http"))
		scheme.Set("scheme", document.String("basic"))
		return scheme, "basicAuth"

	case "bearer":
		scheme := document.NewObject()
		scheme.Set("type", document.String("http"))
		scheme.Set("scheme", document.String("bearer"))
		return scheme, "bearerAuth"

	case "oauth-2":
		scheme := document.NewObject()
		scheme.Set("type", document.String("oauth2"))
		scheme.Set("flows", buildOAuth2Flows(auth.Get("grantTypeInfo")))
		return scheme, "oauth2"

	case "api-key":
		key := auth.Get("key").Str()
		if key == "" {
			key = "api_key"
		}
		in := "header"
		if auth.Get("addTo").Str() == "QUERY_PARAMS" {
			in = "query"
		}
		scheme := document.NewObject()
		scheme.Set("type", document.String("apiKey"))
		scheme.Set("name", document.String(key))
		scheme.Set("in", document.String(in))
		return scheme, key

	default:
		return nil, ""
	}
}

// buildOAuth2Flows maps the Hoppscotch grant type onto the corresponding
// OpenAPI 3 flow object.
func buildOAuth2Flows(grantInfo *document.Node) *document.Node {
	flows := document.NewObject()
	scopes := parseOAuth2Scopes(grantInfo.Get("scopes").Str())

	switch grantInfo.Get("grantType").Str() {
	case "AUTHORIZATION_CODE":
		flow := document.NewObject()
		flow.Set("authorizationUrl", document.String(grantInfo.Get("authUrl").Str()))
		flow.Set("tokenUrl", document.String(grantInfo.Get("tokenUrl").Str()))
		flow.Set("scopes", scopes)
		flows.Set("authorizationCode", flow)
	case "CLIENT_CREDENTIALS":
		flow := document.NewObject()
		flow.Set("tokenUrl", document.String(grantInfo.Get("tokenUrl").Str()))
		flow.Set("scopes", scopes)
		flows.Set("clientCredentials", flow)
	case "PASSWORD":
		flow := document.NewObject()
		flow.Set("tokenUrl", document.String(grantInfo.Get("tokenUrl").Str()))
		flow.Set("scopes", scopes)
		flows.Set("password", flow)
	case "IMPLICIT":
		flow := document.NewObject()
		flow.Set("authorizationUrl", document.String(grantInfo.Get("authUrl").Str()))
		flow.Set("scopes", scopes)
		flows.Set("implicit", flow)
	}
	return flows
}

// parseOAuth2Scopes splits a space-separated scope string into the OpenAPI
// scopes map. Hoppscotch does not record scope descriptions.
func parseOAuth2Scopes(scopes string) *document.Node {
	out := document.NewObject()
	for _, scope := range strings.Fields(scopes) {
		out.Set(scope, document.String(""))
	}
	return out
}
