package httpapi

import (
    "net/http"

    "gopkg.in/yaml.v3"

    "github.com/tinoosan/merchants/internal/model"
)

// apiDocs holds the OpenAPI document, rendered once at startup.
type apiDocs struct {
    doc  map[string]any
    yaml []byte
}

func newAPIDocs() *apiDocs {
    d := &apiDocs{doc: openAPIDocument()}
    b, err := yaml.Marshal(d.doc)
    if err != nil {
        panic("openapi: " + err.Error())
    }
    d.yaml = b
    return d
}

func (s *Server) openapiJSON(w http.ResponseWriter, r *http.Request) { toJSON(w, http.StatusOK, s.docs.doc) }

func (s *Server) openapiYAML(w http.ResponseWriter, r *http.Request) {
    w.Header().Set("Content-Type", "application/yaml")
    w.WriteHeader(http.StatusOK)
    _, _ = w.Write(s.docs.yaml)
}

const docsHTML = `<!DOCTYPE html>
<html>
<head>
<title>Merchant CRUD Service - docs</title>
<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
<script>SwaggerUIBundle({url: "/openapi.json", dom_id: "#swagger-ui"});</script>
</body>
</html>
`

func (s *Server) docsPage(w http.ResponseWriter, r *http.Request) {
    w.Header().Set("Content-Type", "text/html; charset=utf-8")
    w.WriteHeader(http.StatusOK)
    _, _ = w.Write([]byte(docsHTML))
}

func openAPIDocument() map[string]any {
    ref := func(name string) map[string]any { return map[string]any{"$ref": "#/components/schemas/" + name} }
    jsonBody := func(schema map[string]any) map[string]any {
        return map[string]any{"content": map[string]any{"application/json": map[string]any{"schema": schema}}}
    }
    errResp := func(desc string) map[string]any {
        r := jsonBody(ref("Error"))
        r["description"] = desc
        return r
    }
    ok := func(desc string, schema map[string]any) map[string]any {
        r := jsonBody(schema)
        r["description"] = desc
        return r
    }
    idParam := map[string]any{
        "name": "id", "in": "path", "required": true,
        "schema": map[string]any{"type": "integer", "minimum": model.MinID},
    }

    paths := map[string]any{}
    for _, tree := range []struct{ prefix, tag string }{
        {MemoryPrefix, "memory"},
        {PersistentPrefix, "db"},
    } {
        paths[tree.prefix] = map[string]any{
            "get": map[string]any{
                "tags": []string{tree.tag}, "summary": "List merchants",
                "responses": map[string]any{
                    "200": ok("Merchants in ascending id order", map[string]any{"type": "array", "items": ref("Merchant")}),
                },
            },
            "post": map[string]any{
                "tags": []string{tree.tag}, "summary": "Create merchant",
                "requestBody": jsonBody(ref("MerchantInput")),
                "responses": map[string]any{
                    "201": ok("Created", ref("Merchant")),
                    "422": errResp("Validation error"),
                },
            },
        }
        paths[tree.prefix+"/{id}"] = map[string]any{
            "parameters": []any{idParam},
            "get": map[string]any{
                "tags": []string{tree.tag}, "summary": "Get merchant",
                "responses": map[string]any{
                    "200": ok("Merchant", ref("Merchant")),
                    "404": errResp("Not found"),
                    "422": errResp("Invalid id"),
                },
            },
            "put": map[string]any{
                "tags": []string{tree.tag}, "summary": "Replace merchant",
                "requestBody": jsonBody(ref("MerchantInput")),
                "responses": map[string]any{
                    "200": ok("Updated", ref("Merchant")),
                    "404": errResp("Not found"),
                    "422": errResp("Validation error"),
                },
            },
            "delete": map[string]any{
                "tags": []string{tree.tag}, "summary": "Delete merchant",
                "responses": map[string]any{
                    "204": map[string]any{"description": "Deleted"},
                    "404": errResp("Not found"),
                },
            },
        }
    }

    inputProps := map[string]any{
        "name":        map[string]any{"type": "string", "minLength": model.MinNameLen, "maxLength": model.MaxNameLen},
        "description": map[string]any{"type": "string", "nullable": true, "maxLength": model.MaxDescriptionLen},
    }
    merchantProps := map[string]any{"id": map[string]any{"type": "integer", "minimum": model.MinID}}
    for k, v := range inputProps { merchantProps[k] = v }

    return map[string]any{
        "openapi": "3.0.3",
        "info":    map[string]any{"title": serviceName, "version": "1.0.0"},
        "paths":   paths,
        "components": map[string]any{
            "schemas": map[string]any{
                "MerchantInput": map[string]any{"type": "object", "required": []string{"name"}, "properties": inputProps},
                "Merchant":      map[string]any{"type": "object", "required": []string{"id", "name", "description"}, "properties": merchantProps},
                "Error": map[string]any{
                    "type": "object",
                    "properties": map[string]any{
                        "error": map[string]any{"type": "string"},
                        "code":  map[string]any{"type": "string"},
                    },
                },
            },
        },
    }
}
