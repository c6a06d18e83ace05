package mcpserver

import (
	"context"
	"os"
	"path/filepath"
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

func TestDocInputResolve(t *testing.T) {
	t.Run("content", func(t *testing.T) {
		doc, err := docInput{Content: sampleHAR}.resolve()
		require.NoError(t, err)
		assert.True(t, doc.Has("log"))
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "capture.har")
		require.NoError(t, os.WriteFile(path, []byte(sampleHAR), 0o644))

		doc, err := docInput{File: path}.resolve()
		require.NoError(t, err)
		assert.True(t, doc.Has("log"))
	})

	t.Run("neither", func(t *testing.T) {
		_, err := docInput{}.resolve()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "got neither")
	})

	t.Run("both", func(t *testing.T) {
		_, err := docInput{File: "x.har", Content: "{}"}.resolve()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "got both")
	})

	t.Run("oversized content", func(t *testing.T) {
		old := cfg.MaxInlineSize
		cfg.MaxInlineSize = 8
		defer func() { cfg.MaxInlineSize = old }()

		_, err := docInput{Content: sampleHAR}.resolve()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds maximum")
	})
}

func TestHandleConvertTool(t *testing.T) {
	ctx := context.Background()

	t.Run("inline json output", func(t *testing.T) {
		res, out, err := handleConvert(ctx, nil, convertInput{
			Doc:    docInput{Content: sampleHAR},
			Target: "openapi3",
			Title:  "Users API",
		})
		require.NoError(t, err)
		require.Nil(t, res)

		assert.Equal(t, "har", out.SourceFormat)
		assert.Equal(t, "openapi3", out.TargetFormat)
		assert.True(t, out.Success)
		assert.Contains(t, out.Document, `"openapi": "3.0.0"`)
		assert.Contains(t, out.Document, `"title": "Users API"`)
	})

	t.Run("yaml encoding", func(t *testing.T) {
		res, out, err := handleConvert(ctx, nil, convertInput{
			Doc:      docInput{Content: sampleHAR},
			Target:   "openapi3",
			Encoding: "yaml",
		})
		require.NoError(t, err)
		require.Nil(t, res)
		assert.True(t, strings.HasPrefix(out.Document, "openapi:"))
	})

	t.Run("file output", func(t *testing.T) {
		outPath := filepath.Join(t.TempDir(), "api.yaml")
		res, out, err := handleConvert(ctx, nil, convertInput{
			Doc:    docInput{Content: sampleHAR},
			Target: "openapi3",
			Output: outPath,
		})
		require.NoError(t, err)
		require.Nil(t, res)

		assert.Equal(t, outPath, out.WrittenTo)
		assert.Empty(t, out.Document)

		data, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), "openapi:")
	})

	t.Run("missing target", func(t *testing.T) {
		res, _, err := handleConvert(ctx, nil, convertInput{Doc: docInput{Content: sampleHAR}})
		require.NoError(t, err)
		require.NotNil(t, res)
		assert.True(t, res.IsError)
	})

	t.Run("unsupported pair", func(t *testing.T) {
		res, _, err := handleConvert(ctx, nil, convertInput{
			Doc:    docInput{Content: sampleHAR},
			Source: "har",
			Target: "swagger",
		})
		require.NoError(t, err)
		require.NotNil(t, res)
		assert.True(t, res.IsError)
	})
}

func TestHandleValidateTool(t *testing.T) {
	ctx := context.Background()

	t.Run("auto-detect", func(t *testing.T) {
		res, out, err := handleValidate(ctx, nil, validateInput{Doc: docInput{Content: sampleHAR}})
		require.NoError(t, err)
		require.Nil(t, res)
		assert.True(t, out.Valid)
		assert.Equal(t, "har", out.Format)
	})

	t.Run("explicit format mismatch", func(t *testing.T) {
		res, out, err := handleValidate(ctx, nil, validateInput{
			Doc:    docInput{Content: sampleHAR},
			Format: "postman",
		})
		require.NoError(t, err)
		require.Nil(t, res)
		assert.False(t, out.Valid)
		assert.NotEmpty(t, out.Detail)
	})

	t.Run("undetectable", func(t *testing.T) {
		res, out, err := handleValidate(ctx, nil, validateInput{
			Doc: docInput{Content: `{"nothing": true}`},
		})
		require.NoError(t, err)
		require.Nil(t, res)
		assert.False(t, out.Valid)
	})
}

func TestHandleDetectTool(t *testing.T) {
	ctx := context.Background()

	t.Run("har", func(t *testing.T) {
		res, out, err := handleDetect(ctx, nil, detectInput{Doc: docInput{Content: sampleHAR}})
		require.NoError(t, err)
		require.Nil(t, res)
		assert.Equal(t, "har", out.Format)
	})

	t.Run("undetectable", func(t *testing.T) {
		res, _, err := handleDetect(ctx, nil, detectInput{Doc: docInput{Content: `{"nothing": true}`}})
		require.NoError(t, err)
		require.NotNil(t, res)
		assert.True(t, res.IsError)
	})
}

func TestHandleFormatsTool(t *testing.T) {
	res, out, err := handleFormats(context.Background(), nil, formatsInput{})
	require.NoError(t, err)
	require.Nil(t, res)

	assert.Contains(t, out.Formats, "har")
	assert.Contains(t, out.Formats, "openapi3")
	assert.Len(t, out.Conversions, 6)
}

func TestSanitizeError(t *testing.T) {
	err := &os.PathError{Op: "open", Path: "/home/user/secret/api.yaml", Err: os.ErrNotExist}
	got := sanitizeError(err)
	assert.NotContains(t, got, "/home/user")
	assert.Contains(t, got, "<path>")

	assert.Equal(t, "", sanitizeError(nil))
}
