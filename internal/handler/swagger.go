package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"

	"github.com/smartlend/smartlend/smartlend-portal/docs"
)

// OpenAPI3Spec is the subset of an OpenAPI 3.0 document the portal publishes
type OpenAPI3Spec struct {
	OpenAPI    string         `json:"openapi"`
	Info       map[string]any `json:"info"`
	Servers    []Server       `json:"servers"`
	Paths      map[string]any `json:"paths"`
	Components map[string]any `json:"components,omitempty"`
}

// Server represents an OpenAPI 3.0 server
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

var openAPIServers = []Server{
	{URL: "http://localhost:8081/api/v1", Description: "Local Development"},
	{URL: "https://portal.smartlend.app/api/v1", Description: "Production"},
}

const (
	swagger2DefPrefix = "#/definitions/"
	openAPI3DefPrefix = "#/components/schemas/"
)

// convertNode rewrites a swagger 2.0 fragment into its OpenAPI 3.0 shape:
// refs move to components/schemas and parameter type fields move under schema.
func convertNode(node any) any {
	switch v := node.(type) {
	case map[string]any:
		if _, hasIn := v["in"]; hasIn {
			if _, hasName := v["name"]; hasName {
				return convertParameter(v)
			}
		}
		out := make(map[string]any, len(v))
		for key, value := range v {
			if ref, ok := value.(string); ok && key == "$ref" {
				out[key] = strings.Replace(ref, swagger2DefPrefix, openAPI3DefPrefix, 1)
				continue
			}
			out[key] = convertNode(value)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = convertNode(item)
		}
		return out
	}
	return node
}

func convertParameter(param map[string]any) map[string]any {
	if param["in"] == "body" {
		return map[string]any{"name": param["name"], "in": "body", "schema": convertNode(param["schema"])}
	}

	out := make(map[string]any)
	for _, field := range []string{"name", "in", "description", "required"} {
		if val, ok := param[field]; ok {
			out[field] = val
		}
	}
	schema := make(map[string]any)
	for _, field := range []string{"type", "format", "enum", "default", "minimum", "maximum", "items"} {
		if val, ok := param[field]; ok {
			schema[field] = convertNode(val)
		}
	}
	if len(schema) > 0 {
		out["schema"] = schema
	}
	return out
}

// liftBodyParameters moves "in: body" parameters of every operation into
// an OpenAPI 3.0 requestBody
func liftBodyParameters(paths map[string]any) {
	for _, item := range paths {
		ops, ok := item.(map[string]any)
		if !ok {
			continue
		}
		for _, rawOp := range ops {
			op, ok := rawOp.(map[string]any)
			if !ok {
				continue
			}
			params, _ := op["parameters"].([]any)
			kept := params[:0]
			for _, p := range params {
				pm, _ := p.(map[string]any)
				if pm != nil && pm["in"] == "body" {
					op["requestBody"] = map[string]any{
						"required": true,
						"content":  map[string]any{"application/json": map[string]any{"schema": pm["schema"]}},
					}
					continue
				}
				kept = append(kept, p)
			}
			if len(kept) == 0 {
				delete(op, "parameters")
			} else {
				op["parameters"] = kept
			}
		}
	}
}

// buildOpenAPI3 converts the registered swagger 2.0 document
func buildOpenAPI3(doc string) (*OpenAPI3Spec, error) {
	var swagger2 map[string]any
	if err := json.Unmarshal([]byte(doc), &swagger2); err != nil {
		return nil, err
	}

	info, _ := swagger2["info"].(map[string]any)
	paths, _ := convertNode(swagger2["paths"]).(map[string]any)
	if paths == nil {
		paths = map[string]any{}
	}
	liftBodyParameters(paths)

	components := make(map[string]any)
	if secDefs, ok := swagger2["securityDefinitions"].(map[string]any); ok {
		components["securitySchemes"] = secDefs
	}
	if definitions, ok := swagger2["definitions"].(map[string]any); ok {
		components["schemas"] = convertNode(definitions)
	}

	return &OpenAPI3Spec{
		OpenAPI:    "3.0.3",
		Info:       info,
		Servers:    openAPIServers,
		Paths:      paths,
		Components: components,
	}, nil
}

// ServeOpenAPI3Spec serves the swagger spec converted to OpenAPI 3.0
func ServeOpenAPI3Spec(c echo.Context) error {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		return NewInternalError(c, "Failed to read swagger doc")
	}

	spec, err := buildOpenAPI3(doc)
	if err != nil {
		return NewInternalError(c, "Failed to parse swagger doc")
	}
	return c.JSON(http.StatusOK, spec)
}
