package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func convertHoppscotch(t *testing.T, raw string, opts Options) *Result {
	t.Helper()
	conv := &hoppscotchToOpenAPI3{}
	result := &Result{Source: conv.Source(), Target: conv.Target()}
	out, err := conv.Convert(mustDoc(t, raw), opts, result)
	require.NoError(t, err)
	result.Document = out
	result.updateCounts()
	return result
}

func TestHoppscotchToOpenAPI3(t *testing.T) {
	t.Run("document shape", func(t *testing.T) {
		result := convertHoppscotch(t, `{
			"v": 1,
			"name": "Pet Store",
			"folders": [],
			"requests": [
				{"name": "List pets", "method": "GET", "endpoint": "https://api.example.com/pets"}
			]
		}`, Options{})
		doc := result.Document

		assert.Equal(t, "3.0.0", doc.Get("openapi").Str())
		assert.Equal(t, "Pet Store", doc.Get("info").Get("title").Str())
		assert.Equal(t, "1.0.0", doc.Get("info").Get("version").Str())

		op := doc.Get("paths").Get("/pets").Get("get")
		require.NotNil(t, op)
		assert.Equal(t, "List pets", op.Get("summary").Str())
		assert.Equal(t, "Successful response", op.Get("responses").Get("200").Get("description").Str())
		assert.False(t, op.Has("tags"))
	})

	t.Run("title option wins over collection name", func(t *testing.T) {
		result := convertHoppscotch(t,
			`{"v": 1, "name": "Pet Store", "folders": [], "requests": []}`,
			Options{Title: "Custom"})
		assert.Equal(t, "Custom", result.Document.Get("info").Get("title").Str())
	})

	t.Run("colon segments become path parameters", func(t *testing.T) {
		result := convertHoppscotch(t, `{
			"v": 1, "name": "c", "folders": [],
			"requests": [{"name": "Get pet", "method": "GET", "endpoint": "https://api.example.com/pets/:petId"}]
		}`, Options{})

		op := result.Document.Get("paths").Get("/pets/{petId}").Get("get")
		require.NotNil(t, op)

		params := op.Get("parameters")
		require.Equal(t, 1, params.Len())
		param := params.Index(0)
		assert.Equal(t, "petId", param.Get("name").Str())
		assert.Equal(t, "path", param.Get("in").Str())
		required, _ := param.Get("required").AsBool()
		assert.True(t, required)
	})

	t.Run("brace segments recognized", func(t *testing.T) {
		result := convertHoppscotch(t, `{
			"v": 1, "name": "c", "folders": [],
			"requests": [{"name": "Get pet", "method": "GET", "endpoint": "https://api.example.com/pets/{petId}"}]
		}`, Options{})

		op := result.Document.Get("paths").Get("/pets/{petId}").Get("get")
		require.NotNil(t, op)
		assert.Equal(t, "petId", op.Get("parameters").Index(0).Get("name").Str())
	})

	t.Run("empty endpoint skipped", func(t *testing.T) {
		result := convertHoppscotch(t, `{
			"v": 1, "name": "c", "folders": [],
			"requests": [{"name": "Broken", "method": "GET", "endpoint": ""}]
		}`, Options{})
		assert.Equal(t, 0, result.Document.Get("paths").Len())
	})

	t.Run("folder names become tags", func(t *testing.T) {
		result := convertHoppscotch(t, `{
			"v": 1, "name": "c", "requests": [],
			"folders": [
				{
					"name": "Pets",
					"requests": [{"name": "List", "method": "GET", "endpoint": "https://x.test/pets"}],
					"folders": [
						{
							"name": "Admin",
							"folders": [],
							"requests": [{"name": "Purge", "method": "DELETE", "endpoint": "https://x.test/pets/purge"}]
						}
					]
				}
			]
		}`, Options{})

		listTags := result.Document.Get("paths").Get("/pets").Get("get").Get("tags")
		require.Equal(t, 1, listTags.Len())
		assert.Equal(t, "Pets", listTags.Index(0).Str())

		purgeTags := result.Document.Get("paths").Get("/pets/purge").Get("delete").Get("tags")
		require.Equal(t, 1, purgeTags.Len())
		assert.Equal(t, "Pets/Admin", purgeTags.Index(0).Str())
	})

	t.Run("lowercase folder names are title-cased", func(t *testing.T) {
		result := convertHoppscotch(t, `{
			"v": 1, "name": "c", "requests": [],
			"folders": [
				{
					"name": "pets",
					"folders": [],
					"requests": [{"name": "List", "method": "GET", "endpoint": "https://x.test/pets"}]
				}
			]
		}`, Options{})

		tags := result.Document.Get("paths").Get("/pets").Get("get").Get("tags")
		require.Equal(t, 1, tags.Len())
		assert.Equal(t, "Pets", tags.Index(0).Str())
	})

	t.Run("inactive params and headers skipped", func(t *testing.T) {
		result := convertHoppscotch(t, `{
			"v": 1, "name": "c", "folders": [],
			"requests": [
				{
					"name": "Search",
					"method": "GET",
					"endpoint": "https://x.test/search",
					"params": [
						{"key": "q", "value": "dogs", "active": true},
						{"key": "debug", "value": "1", "active": false},
						{"key": "", "value": "ignored"}
					],
					"headers": [{"key": "X-Api-Key", "value": "secret", "active": true}]
				}
			]
		}`, Options{})

		params := result.Document.Get("paths").Get("/search").Get("get").Get("parameters")
		require.Equal(t, 2, params.Len())

		q := params.Index(0)
		assert.Equal(t, "q", q.Get("name").Str())
		assert.Equal(t, "query", q.Get("in").Str())
		assert.Equal(t, "dogs", q.Get("schema").Get("default").Str())

		h := params.Index(1)
		assert.Equal(t, "X-Api-Key", h.Get("name").Str())
		assert.Equal(t, "header", h.Get("in").Str())
	})

	t.Run("json body inline schema", func(t *testing.T) {
		result := convertHoppscotch(t, `{
			"v": 1, "name": "c", "folders": [],
			"requests": [
				{
					"name": "Create pet",
					"method": "POST",
					"endpoint": "https://x.test/pets",
					"body": {"contentType": "application/json", "body": "{\"name\": \"rex\", \"tags\": []}"}
				}
			]
		}`, Options{})

		schema := result.Document.Get("paths").Get("/pets").Get("post").
			Get("requestBody").Get("content").Get("application/json").Get("schema")
		require.NotNil(t, schema)
		assert.Equal(t, "object", schema.Get("type").Str())
		assert.Equal(t, "string", schema.Get("properties").Get("name").Get("type").Str())

		tags := schema.Get("properties").Get("tags")
		assert.Equal(t, "array", tags.Get("type").Str())
		assert.Equal(t, 0, tags.Get("items").Len())
	})

	t.Run("body ignored for get", func(t *testing.T) {
		result := convertHoppscotch(t, `{
			"v": 1, "name": "c", "folders": [],
			"requests": [
				{
					"name": "Odd",
					"method": "GET",
					"endpoint": "https://x.test/odd",
					"body": {"contentType": "application/json", "body": "{}"}
				}
			]
		}`, Options{})
		assert.False(t, result.Document.Get("paths").Get("/odd").Get("get").Has("requestBody"))
	})

	t.Run("form data body", func(t *testing.T) {
		result := convertHoppscotch(t, `{
			"v": 1, "name": "c", "folders": [],
			"requests": [
				{
					"name": "Upload",
					"method": "POST",
					"endpoint": "https://x.test/upload",
					"body": {
						"contentType": "multipart/form-data",
						"body": [
							{"key": "file", "value": "data", "active": true},
							{"key": "debug", "value": "1", "active": false}
						]
					}
				}
			]
		}`, Options{})

		schema := result.Document.Get("paths").Get("/upload").Get("post").
			Get("requestBody").Get("content").Get("multipart/form-data").Get("schema")
		require.NotNil(t, schema)
		assert.Equal(t, "object", schema.Get("type").Str())
		assert.Equal(t, 1, schema.Get("properties").Len())
		assert.Equal(t, "data", schema.Get("properties").Get("file").Get("example").Str())
	})

	t.Run("collection basic auth registered", func(t *testing.T) {
		result := convertHoppscotch(t, `{
			"v": 1, "name": "c", "folders": [], "requests": [],
			"auth": {"authType": "basic", "authActive": true}
		}`, Options{})

		scheme := result.Document.Get("components").Get("securitySchemes").Get("basicAuth")
		require.NotNil(t, scheme)
		assert.Equal(t, "http", scheme.Get("type").Str())
		assert.Equal(t, "basic", scheme.Get("scheme").Str())
	})

	t.Run("request bearer auth adds security requirement", func(t *testing.T) {
		result := convertHoppscotch(t, `{
			"v": 1, "name": "c", "folders": [],
			"requests": [
				{
					"name": "Me",
					"method": "GET",
					"endpoint": "https://x.test/me",
					"auth": {"authType": "bearer", "authActive": true}
				}
			]
		}`, Options{})

		scheme := result.Document.Get("components").Get("securitySchemes").Get("bearerAuth")
		require.NotNil(t, scheme)
		assert.Equal(t, "bearer", scheme.Get("scheme").Str())

		security := result.Document.Get("paths").Get("/me").Get("get").Get("security")
		require.Equal(t, 1, security.Len())
		assert.True(t, security.Index(0).Has("bearerAuth"))
	})

	t.Run("inactive auth ignored", func(t *testing.T) {
		result := convertHoppscotch(t, `{
			"v": 1, "name": "c", "folders": [],
			"requests": [
				{
					"name": "Me",
					"method": "GET",
					"endpoint": "https://x.test/me",
					"auth": {"authType": "bearer", "authActive": false}
				}
			]
		}`, Options{})

		assert.Equal(t, 0, result.Document.Get("components").Get("securitySchemes").Len())
		assert.False(t, result.Document.Get("paths").Get("/me").Get("get").Has("security"))
	})

	t.Run("api key auth", func(t *testing.T) {
		result := convertHoppscotch(t, `{
			"v": 1, "name": "c", "folders": [],
			"requests": [
				{
					"name": "Me",
					"method": "GET",
					"endpoint": "https://x.test/me",
					"auth": {"authType": "api-key", "authActive": true, "key": "X-Token", "addTo": "QUERY_PARAMS"}
				}
			]
		}`, Options{})

		scheme := result.Document.Get("components").Get("securitySchemes").Get("X-Token")
		require.NotNil(t, scheme)
		assert.Equal(t, "apiKey", scheme.Get("type").Str())
		assert.Equal(t, "X-Token", scheme.Get("name").Str())
		assert.Equal(t, "query", scheme.Get("in").Str())
	})

	t.Run("oauth2 authorization code flow", func(t *testing.T) {
		result := convertHoppscotch(t, `{
			"v": 1, "name": "c", "folders": [], "requests": [],
			"auth": {
				"authType": "oauth-2",
				"authActive": true,
				"grantTypeInfo": {
					"grantType": "AUTHORIZATION_CODE",
					"authUrl": "https://auth.example.com/authorize",
					"tokenUrl": "https://auth.example.com/token",
					"scopes": "read write"
				}
			}
		}`, Options{})

		scheme := result.Document.Get("components").Get("securitySchemes").Get("oauth2")
		require.NotNil(t, scheme)
		assert.Equal(t, "oauth2", scheme.Get("type").Str())

		flow := scheme.Get("flows").Get("authorizationCode")
		require.NotNil(t, flow)
		assert.Equal(t, "https://auth.example.com/authorize", flow.Get("authorizationUrl").Str())
		assert.Equal(t, "https://auth.example.com/token", flow.Get("tokenUrl").Str())

		scopes := flow.Get("scopes")
		assert.True(t, scopes.Has("read"))
		assert.True(t, scopes.Has("write"))
	})

	t.Run("first registered scheme wins", func(t *testing.T) {
		result := convertHoppscotch(t, `{
			"v": 1, "name": "c", "folders": [],
			"requests": [
				{
					"name": "A", "method": "GET", "endpoint": "https://x.test/a",
					"auth": {"authType": "api-key", "authActive": true, "key": "token", "addTo": "HEADERS"}
				},
				{
					"name": "B", "method": "GET", "endpoint": "https://x.test/b",
					"auth": {"authType": "api-key", "authActive": true, "key": "token", "addTo": "QUERY_PARAMS"}
				}
			]
		}`, Options{})

		scheme := result.Document.Get("components").Get("securitySchemes").Get("token")
		require.NotNil(t, scheme)
		assert.Equal(t, "header", scheme.Get("in").Str())
		assert.Equal(t, 1, result.Document.Get("components").Get("securitySchemes").Len())
	})

	t.Run("servers from options", func(t *testing.T) {
		result := convertHoppscotch(t,
			`{"v": 1, "name": "c", "folders": [], "requests": []}`,
			Options{Servers: []string{"https://api.example.com"}})

		servers := result.Document.Get("servers")
		require.Equal(t, 1, servers.Len())
		assert.Equal(t, "https://api.example.com", servers.Index(0).Get("url").Str())
	})
}

func TestExtractPathTemplate(t *testing.T) {
	tests := []struct {
		name       string
		endpoint   string
		wantPath   string
		wantParams []string
	}{
		{"plain", "https://x.test/pets", "/pets", nil},
		{"colon param", "https://x.test/pets/:id", "/pets/{id}", []string{"id"}},
		{"brace param", "https://x.test/pets/{id}", "/pets/{id}", []string{"id"}},
		{"query stripped", "https://x.test/pets?limit=10", "/pets", nil},
		{"host only", "https://x.test", "/", nil},
		{"bare path", "/pets/:id", "/pets/{id}", []string{"id"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, params := extractPathTemplate(tt.endpoint)
			assert.Equal(t, tt.wantPath, path)
			assert.Equal(t, tt.wantParams, params)
		})
	}
}
