package converter

import (
	"strings"

	"github.com/apiconv/apiconv/document"
	"github.com/apiconv/apiconv/formats"
)

// postmanToHAR flattens a Postman collection into a synthetic HAR capture.
// Folders are walked recursively; each request item becomes one HAR entry.
// Timing fields and responses that Postman does not record are filled with
// placeholders so the output validates as HAR.
type postmanToHAR struct{}

func (postmanToHAR) Source() formats.Format { return formats.FormatPostman }
func (postmanToHAR) Target() formats.Format { return formats.FormatHAR }

// placeholderStartedTime fills the mandatory HAR timestamp; collections do
// not record when requests were made.
const placeholderStartedTime = "2023-01-01T00:00:00.000Z"

func (c *postmanToHAR) Convert(doc *document.Node, opts Options, result *Result) (*document.Node, error) {
	entries := document.NewArray()
	c.walkItems(doc.Get("item"), entries)

	creator := document.NewObject()
	creator.Set("name", document.String("HAR Converter"))
	creator.Set("version", document.String("1.0.0"))

	log := document.NewObject()
	log.Set("version", document.String("1.2"))
	log.Set("creator", creator)
	log.Set("entries", entries)

	out := document.NewObject()
	out.Set("log", log)
	return out, nil
}

// walkItems recurses through folders and converts request items in
// document order.
func (c *postmanToHAR) walkItems(items *document.Node, entries *document.Node) {
	for _, item := range items.Items() {
		if sub := item.Get("item"); sub.Kind() == document.KindArray {
			c.walkItems(sub, entries)
			continue
		}
		if item.Has("request") {
			if entry := c.convertRequestItem(item); entry != nil {
				entries.Append(entry)
			}
		}
	}
}

func (c *postmanToHAR) convertRequestItem(item *document.Node) *document.Node {
	requestData := item.Get("request")
	if requestData.Len() == 0 {
		return nil
	}

	method := requestData.Get("method").Str()
	if method == "" {
		method = "GET"
	}

	urlNode := requestData.Get("url")
	rawURL, queryParams := c.resolveURL(urlNode)

	request := document.NewObject()
	request.Set("method", document.String(method))
	request.Set("url", document.String(rawURL))
	request.Set("httpVersion", document.String("HTTP/1.1"))
	request.Set("cookies", document.NewArray())
	request.Set("headers", convertKeyValueList(requestData.Get("header")))
	request.Set("queryString", queryParams)
	emptyPost := document.NewObject()
	emptyPost.Set("mimeType", document.String(""))
	emptyPost.Set("text", document.String(""))
	request.Set("postData", emptyPost)
	request.Set("headersSize", document.Int(-1))
	request.Set("bodySize", document.Int(-1))

	if body := requestData.Get("body"); body.Kind() == document.KindObject {
		c.attachRequestBody(request, body)
	}

	response := placeholderResponse()
	if examples := item.Get("response"); examples.Kind() == document.KindArray && examples.Len() > 0 {
		c.applyExampleResponse(response, examples.Index(0))
	}

	timings := document.NewObject()
	timings.Set("send", document.Int(0))
	timings.Set("wait", document.Int(0))
	timings.Set("receive", document.Int(0))

	entry := document.NewObject()
	entry.Set("startedDateTime", document.String(placeholderStartedTime))
	entry.Set("time", document.Int(0))
	entry.Set("request", request)
	entry.Set("response", response)
	entry.Set("cache", document.NewObject())
	entry.Set("timings", timings)
	return entry
}

// resolveURL handles both Postman URL representations: a plain string and
// the structured object with protocol/host/path/query components.
func (c *postmanToHAR) resolveURL(urlNode *document.Node) (string, *document.Node) {
	if s, ok := urlNode.AsString(); ok {
		return s, document.NewArray()
	}
	if urlNode.Kind() != document.KindObject {
		return "", document.NewArray()
	}

	protocol := urlNode.Get("protocol").Str()
	if protocol == "" {
		protocol = "https"
	}

	host := ""
	switch hostNode := urlNode.Get("host"); hostNode.Kind() {
	case document.KindArray:
		parts := make([]string, 0, hostNode.Len())
		for _, p := range hostNode.Items() {
			parts = append(parts, p.Str())
		}
		host = strings.Join(parts, ".")
	case document.KindString:
		host = hostNode.Str()
	}

	path := ""
	switch pathNode := urlNode.Get("path"); pathNode.Kind() {
	case document.KindArray:
		parts := make([]string, 0, pathNode.Len())
		for _, p := range pathNode.Items() {
			parts = append(parts, p.Str())
		}
		path = strings.Join(parts, "/")
	case document.KindString:
		path = strings.TrimLeft(pathNode.Str(), "/")
	}

	rawURL := protocol + "://" + host + "/" + path

	queryParams := convertKeyValueList(urlNode.Get("query"))
	if queryParams.Len() > 0 {
		pairs := make([]string, 0, queryParams.Len())
		for _, p := range queryParams.Items() {
			pairs = append(pairs, p.Get("name").Str()+"="+p.Get("value").Str())
		}
		rawURL += "?" + strings.Join(pairs, "&")
	}
	return rawURL, queryParams
}

// convertKeyValueList maps Postman {key, value} lists to HAR {name, value}
// lists, skipping malformed entries.
func convertKeyValueList(list *document.Node) *document.Node {
	out := document.NewArray()
	for _, item := range list.Items() {
		if !item.Has("key") || !item.Has("value") {
			continue
		}
		kv := document.NewObject()
		kv.Set("name", document.String(item.Get("key").Str()))
		kv.Set("value", document.String(item.Get("value").Str()))
		out.Append(kv)
	}
	return out
}

func (c *postmanToHAR) attachRequestBody(request, body *document.Node) {
	switch body.Get("mode").Str() {
	case "raw":
		mimeType := "text/plain"
		for _, h := range request.Get("headers").Items() {
			if strings.EqualFold(h.Get("name").Str(), "content-type") {
				mimeType = h.Get("value").Str()
				break
			}
		}
		raw := body.Get("raw").Str()
		if looksLikeJSON(raw) {
			mimeType = "application/json"
		}
		postData := document.NewObject()
		postData.Set("mimeType", document.String(mimeType))
		postData.Set("text", document.String(raw))
		request.Set("postData", postData)

	case "urlencoded":
		params := convertKeyValueList(body.Get("urlencoded"))
		pairs := make([]string, 0, params.Len())
		for _, p := range params.Items() {
			pairs = append(pairs, p.Get("name").Str()+"="+p.Get("value").Str())
		}
		postData := document.NewObject()
		postData.Set("mimeType", document.String("application/x-www-form-urlencoded"))
		postData.Set("params", params)
		postData.Set("text", document.String(strings.Join(pairs, "&")))
		request.Set("postData", postData)

	case "formdata":
		postData := document.NewObject()
		postData.Set("mimeType", document.String("multipart/form-data"))
		postData.Set("params", convertKeyValueList(body.Get("formdata")))
		request.Set("postData", postData)
	}
}

func looksLikeJSON(s string) bool {
	trimmed := strings.TrimSpace(s)
	return strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")
}

func placeholderResponse() *document.Node {
	content := document.NewObject()
	content.Set("size", document.Int(0))
	content.Set("mimeType", document.String("application/json"))
	content.Set("text", document.String(""))

	response := document.NewObject()
	response.Set("status", document.Int(200))
	response.Set("statusText", document.String("OK"))
	response.Set("httpVersion", document.String("HTTP/1.1"))
	response.Set("cookies", document.NewArray())
	response.Set("headers", document.NewArray())
	response.Set("content", content)
	response.Set("redirectURL", document.String(""))
	response.Set("headersSize", document.Int(-1))
	response.Set("bodySize", document.Int(-1))
	return response
}

// applyExampleResponse copies a saved Postman example response onto the
// placeholder HAR response.
func (c *postmanToHAR) applyExampleResponse(response, example *document.Node) {
	status := int64(200)
	if code := example.Get("code"); code.Kind() == document.KindNumber {
		status = code.Int64()
	}
	statusText := example.Get("status").Str()
	if statusText == "" {
		statusText = "OK"
	}
	response.Set("status", document.Int(status))
	response.Set("statusText", document.String(statusText))

	headers := convertKeyValueList(example.Get("header"))
	response.Set("headers", headers)

	body := example.Get("body").Str()
	mimeType := "text/plain"
	for _, h := range headers.Items() {
		if strings.EqualFold(h.Get("name").Str(), "content-type") {
			mimeType = h.Get("value").Str()
			break
		}
	}
	if body != "" && looksLikeJSON(body) {
		mimeType = "application/json"
	}

	content := document.NewObject()
	content.Set("size", document.Int(int64(len(body))))
	content.Set("mimeType", document.String(mimeType))
	content.Set("text", document.String(body))
	response.Set("content", content)
}
