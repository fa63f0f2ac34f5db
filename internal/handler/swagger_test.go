package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSwagger2 = `{
	"swagger": "2.0",
	"info": {"title": "Portal", "version": "1.0"},
	"paths": {
		"/loans/{loanId}/emis/{emiId}/pay": {
			"post": {
				"parameters": [
					{"type": "integer", "description": "Loan ID", "name": "loanId", "in": "path", "required": true},
					{"description": "Body", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.Payload"}}
				],
				"responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/service.PaymentResult"}}}
			}
		}
	},
	"definitions": {
		"handler.Payload": {"type": "object", "properties": {"items": {"type": "array", "items": {"$ref": "#/definitions/domain.Loan"}}}},
		"service.PaymentResult": {"type": "object"},
		"domain.Loan": {"type": "object"}
	},
	"securityDefinitions": {"BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}}
}`

func TestBuildOpenAPI3(t *testing.T) {
	spec, err := buildOpenAPI3(sampleSwagger2)
	require.NoError(t, err)

	assert.Equal(t, "3.0.3", spec.OpenAPI)
	assert.Equal(t, "Portal", spec.Info["title"])
	assert.Len(t, spec.Servers, 2)

	op := spec.Paths["/loans/{loanId}/emis/{emiId}/pay"].(map[string]any)["post"].(map[string]any)

	params := op["parameters"].([]any)
	require.Len(t, params, 1)
	path := params[0].(map[string]any)
	assert.Equal(t, "loanId", path["name"])
	assert.Equal(t, map[string]any{"type": "integer"}, path["schema"])
	assert.NotContains(t, path, "type")

	body := op["requestBody"].(map[string]any)
	schema := body["content"].(map[string]any)["application/json"].(map[string]any)["schema"].(map[string]any)
	assert.Equal(t, "#/components/schemas/handler.Payload", schema["$ref"])

	resp := op["responses"].(map[string]any)["200"].(map[string]any)["schema"].(map[string]any)
	assert.Equal(t, "#/components/schemas/service.PaymentResult", resp["$ref"])

	schemas := spec.Components["schemas"].(map[string]any)
	items := schemas["handler.Payload"].(map[string]any)["properties"].(map[string]any)["items"].(map[string]any)
	assert.Equal(t, "#/components/schemas/domain.Loan", items["items"].(map[string]any)["$ref"])
	assert.Contains(t, spec.Components["securitySchemes"], "BearerAuth")
}

func TestBuildOpenAPI3_InvalidDocument(t *testing.T) {
	_, err := buildOpenAPI3("not json")
	assert.Error(t, err)
}

func TestServeOpenAPI3Spec(t *testing.T) {
	c, rec := newContext(http.MethodGet, "/openapi.json", nil, nil)

	require.NoError(t, ServeOpenAPI3Spec(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var spec OpenAPI3Spec
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &spec))
	assert.Equal(t, "3.0.3", spec.OpenAPI)
	assert.Contains(t, spec.Paths, "/loans/{loanId}/emis/{emiId}/pay")
}
