package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHAR = `{
	"log": {
		"version": "1.2",
		"creator": {"name": "browser", "version": "1.0"},
		"entries": [
			{
				"startedDateTime": "2023-01-01T00:00:00.000Z",
				"time": 3,
				"request": {
					"method": "GET",
					"url": "https://api.example.com/users",
					"headers": [],
					"queryString": []
				},
				"response": {"status": 200, "statusText": "OK", "headers": [], "content": {}}
			}
		]
	}
}`

func testHandler(t *testing.T) http.Handler {
	t.Helper()
	cfg, err := LoadConfig()
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(cfg, logger).Handler()
}

// multipartBody builds a multipart form with a file part and extra fields.
// Repeated values for the same field name are allowed.
func multipartBody(t *testing.T, filename, content string, fields ...[2]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	for _, f := range fields {
		require.NoError(t, mw.WriteField(f[0], f[1]))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestHandleConvert(t *testing.T) {
	handler := testHandler(t)

	t.Run("har to openapi3 json", func(t *testing.T) {
		body, contentType := multipartBody(t, "capture.har", sampleHAR)
		req := httptest.NewRequest(http.MethodPost, "/api/har/to/openapi3", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Equal(t, "0", rec.Header().Get("X-Conversion-Issues"))

		var out map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		assert.Equal(t, "3.0.0", out["openapi"])
	})

	t.Run("auto source detection", func(t *testing.T) {
		body, contentType := multipartBody(t, "capture.har", sampleHAR)
		req := httptest.NewRequest(http.MethodPost, "/api/auto/to/openapi3", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("yaml via accept header", func(t *testing.T) {
		body, contentType := multipartBody(t, "capture.har", sampleHAR)
		req := httptest.NewRequest(http.MethodPost, "/api/har/to/openapi3", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Accept", "application/yaml")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
		assert.True(t, strings.HasPrefix(rec.Body.String(), "openapi:"))
	})

	t.Run("accept query param beats header", func(t *testing.T) {
		body, contentType := multipartBody(t, "capture.har", sampleHAR)
		req := httptest.NewRequest(http.MethodPost, "/api/har/to/openapi3?accept=application/yaml", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Accept", "application/json")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	})

	t.Run("form options applied", func(t *testing.T) {
		body, contentType := multipartBody(t, "capture.har", sampleHAR,
			[2]string{"title", "Users API"},
			[2]string{"version", "2.0.0"},
			[2]string{"servers", "https://api.example.com"},
			[2]string{"servers", "https://staging.example.com"},
			[2]string{"base_path", "/v1"},
		)
		req := httptest.NewRequest(http.MethodPost, "/api/har/to/openapi3", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var out map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		info, ok := out["info"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Users API", info["title"])
		assert.Equal(t, "2.0.0", info["version"])

		servers, ok := out["servers"].([]any)
		require.True(t, ok)
		assert.Len(t, servers, 2)

		paths, ok := out["paths"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, paths, "/v1/users")
	})

	t.Run("unknown target format", func(t *testing.T) {
		body, contentType := multipartBody(t, "capture.har", sampleHAR)
		req := httptest.NewRequest(http.MethodPost, "/api/har/to/raml", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unsupported pair", func(t *testing.T) {
		body, contentType := multipartBody(t, "api.json", `{"swagger": "2.0"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/swagger/to/har", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing file field", func(t *testing.T) {
		body, contentType := multipartBody(t, "", "", [2]string{"title", "x"})
		req := httptest.NewRequest(http.MethodPost, "/api/har/to/openapi3", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var errBody errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errBody))
		assert.Equal(t, "missing file field", errBody.Detail)
	})

	t.Run("malformed upload", func(t *testing.T) {
		body, contentType := multipartBody(t, "capture.har", `{"log": `)
		req := httptest.NewRequest(http.MethodPost, "/api/har/to/openapi3", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("schema validation failure", func(t *testing.T) {
		body, contentType := multipartBody(t, "capture.har", `{"unrelated": true}`)
		req := httptest.NewRequest(http.MethodPost, "/api/har/to/openapi3", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("invalid skip_validation value", func(t *testing.T) {
		body, contentType := multipartBody(t, "capture.har", sampleHAR,
			[2]string{"skip_validation", "maybe"})
		req := httptest.NewRequest(http.MethodPost, "/api/har/to/openapi3", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleFormats(t *testing.T) {
	handler := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/formats", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Formats     []string `json:"formats"`
		Conversions []struct {
			Source string `json:"source"`
			Target string `json:"target"`
		} `json:"conversions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Contains(t, out.Formats, "har")
	assert.Contains(t, out.Formats, "openapi3")
	assert.Len(t, out.Conversions, 6)
}

func TestHandleHealthz(t *testing.T) {
	handler := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, int64(10485760), cfg.MaxUploadBytes)
	assert.Equal(t, slog.LevelInfo, cfg.ParsedLogLevel())

	cfg.LogLevel = "debug"
	assert.Equal(t, slog.LevelDebug, cfg.ParsedLogLevel())
}
