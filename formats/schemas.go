package formats

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// The format schemas are deliberately structural rather than exhaustive:
// they check the required top-level shape that distinguishes each format,
// not full conformance to the upstream specifications. Full conformance
// checking is out of scope; these schemas exist so detection and validation
// agree on what counts as "a HAR file" or "a Postman collection".

const harSchemaJSON = `{
  "type": "object",
  "required": ["log"],
  "properties": {
    "log": {
      "type": "object",
      "required": ["version", "entries"],
      "properties": {
        "version": {"type": "string"},
        "creator": {
          "type": "object",
          "properties": {
            "name": {"type": "string"},
            "version": {"type": "string"}
          }
        },
        "entries": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "request": {
                "type": "object",
                "required": ["method", "url"],
                "properties": {
                  "method": {"type": "string"},
                  "url": {"type": "string"},
                  "headers": {
                    "type": "array",
                    "items": {
                      "type": "object",
                      "required": ["name", "value"],
                      "properties": {
                        "name": {"type": "string"},
                        "value": {"type": "string"}
                      }
                    }
                  },
                  "queryString": {
                    "type": "array",
                    "items": {
                      "type": "object",
                      "required": ["name", "value"],
                      "properties": {
                        "name": {"type": "string"},
                        "value": {"type": "string"}
                      }
                    }
                  },
                  "postData": {
                    "type": "object",
                    "properties": {
                      "mimeType": {"type": "string"},
                      "text": {"type": "string"}
                    }
                  }
                }
              },
              "response": {
                "type": "object",
                "required": ["status"],
                "properties": {
                  "status": {"type": "integer"},
                  "statusText": {"type": "string"},
                  "headers": {
                    "type": "array",
                    "items": {
                      "type": "object",
                      "required": ["name", "value"],
                      "properties": {
                        "name": {"type": "string"},
                        "value": {"type": "string"}
                      }
                    }
                  },
                  "content": {
                    "type": "object",
                    "properties": {
                      "mimeType": {"type": "string"},
                      "text": {"type": "string"}
                    }
                  }
                }
              }
            }
          }
        }
      }
    }
  }
}`

const openapi3SchemaJSON = `{
  "type": "object",
  "required": ["openapi", "info", "paths"],
  "properties": {
    "openapi": {"type": "string"},
    "info": {
      "type": "object",
      "required": ["title", "version"],
      "properties": {
        "title": {"type": "string"},
        "version": {"type": "string"},
        "description": {"type": "string"}
      }
    },
    "paths": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "additionalProperties": {
          "type": "object",
          "properties": {
            "summary": {"type": "string"},
            "description": {"type": "string"},
            "operationId": {"type": "string"},
            "parameters": {"type": "array", "items": {"type": "object"}},
            "requestBody": {"type": "object"},
            "responses": {"type": "object"}
          }
        }
      }
    },
    "components": {"type": "object"},
    "servers": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["url"],
        "properties": {
          "url": {"type": "string"},
          "description": {"type": "string"}
        }
      }
    }
  }
}`

const swaggerSchemaJSON = `{
  "type": "object",
  "required": ["swagger", "info", "paths"],
  "properties": {
    "swagger": {"type": "string"},
    "info": {
      "type": "object",
      "required": ["title", "version"],
      "properties": {
        "title": {"type": "string"},
        "version": {"type": "string"},
        "description": {"type": "string"}
      }
    },
    "basePath": {"type": "string"},
    "paths": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "additionalProperties": {
          "type": "object",
          "properties": {
            "summary": {"type": "string"},
            "description": {"type": "string"},
            "operationId": {"type": "string"},
            "parameters": {"type": "array", "items": {"type": "object"}},
            "responses": {"type": "object"}
          }
        }
      }
    },
    "definitions": {"type": "object"},
    "host": {"type": "string"},
    "schemes": {"type": "array", "items": {"type": "string"}}
  }
}`

const postmanSchemaJSON = `{
  "type": "object",
  "required": ["info", "item"],
  "properties": {
    "info": {
      "type": "object",
      "required": ["_postman_id", "name", "schema"],
      "properties": {
        "_postman_id": {"type": "string"},
        "name": {"type": "string"},
        "description": {"type": "string"},
        "schema": {"type": "string"}
      }
    },
    "item": {
      "type": "array",
      "items": {
        "oneOf": [
          {
            "type": "object",
            "required": ["name", "request"],
            "properties": {
              "name": {"type": "string"},
              "request": {
                "type": "object",
                "properties": {
                  "method": {"type": "string"},
                  "url": {
                    "oneOf": [
                      {"type": "string"},
                      {"type": "object"}
                    ]
                  },
                  "header": {"type": "array", "items": {"type": "object"}},
                  "body": {"type": "object"}
                }
              },
              "response": {"type": "array", "items": {"type": "object"}}
            }
          },
          {
            "type": "object",
            "required": ["name", "item"],
            "properties": {
              "name": {"type": "string"},
              "item": {"type": "array"}
            }
          }
        ]
      }
    }
  }
}`

const hoppscotchSchemaJSON = `{
  "type": "object",
  "required": ["v", "name", "folders", "requests"],
  "properties": {
    "v": {"type": ["integer", "string"]},
    "name": {"type": "string"},
    "folders": {"type": "array"},
    "requests": {"type": "array"}
  }
}`

var schemas map[Format]*gojsonschema.Schema

func init() {
	sources := map[Format]string{
		FormatHAR:        harSchemaJSON,
		FormatOpenAPI3:   openapi3SchemaJSON,
		FormatSwagger:    swaggerSchemaJSON,
		FormatPostman:    postmanSchemaJSON,
		FormatHoppscotch: hoppscotchSchemaJSON,
	}
	schemas = make(map[Format]*gojsonschema.Schema, len(sources))
	for f, src := range sources {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
		if err != nil {
			panic(fmt.Sprintf("formats: invalid %s schema: %v", f, err))
		}
		schemas[f] = schema
	}
}

// Schema returns the compiled JSON Schema for a format, or nil for
// FormatUnknown and unrecognized formats.
func Schema(f Format) *gojsonschema.Schema {
	return schemas[f]
}
