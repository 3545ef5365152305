// Package docs is hand-maintained in the shape swag init produces, so
// it can be regenerated later without touching main.go's import.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "url": "http://www.swagger.io/support",
            "email": "support@swagger.io"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "description": "liveness probe",
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Health check",
                "responses": { "200": { "description": "ok" } }
            }
        },
        "/rank-connections": {
            "post": {
                "description": "ranks the requester's first-degree connections against a free-text query",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ranking"],
                "summary": "Rank connections",
                "responses": { "200": { "description": "ranked list" } }
            }
        },
        "/rank-connections/batch": {
            "post": {
                "description": "ranks multiple (me_id, query) pairs through a bounded worker pool",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ranking"],
                "summary": "Batch rank connections",
                "responses": {
                    "200": { "description": "ranked lists" },
                    "503": { "description": "batch queue saturated" }
                }
            }
        },
        "/rank-connections/explain": {
            "post": {
                "description": "returns the parsed query goals, the candidate count and a sample of candidate ids, without scoring",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ranking"],
                "summary": "Explain a ranking",
                "responses": { "200": { "description": "parsed goals and candidate sample" } }
            }
        },
        "/rank-connections/graph": {
            "post": {
                "description": "returns the ego subgraph over me plus the top-k ranked candidates, degrading to first-degree neighbors if embeddings are unavailable",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ranking"],
                "summary": "Ranked connections subgraph",
                "responses": { "200": { "description": "nodes and edges" } }
            }
        },
        "/rank": {
            "post": {
                "description": "ranks across the whole graph instead of first-degree connections only",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ranking"],
                "summary": "Rank globally",
                "responses": { "200": { "description": "ranked list" } }
            }
        },
        "/recompute": {
            "post": {
                "description": "rebuilds the SIMILAR and SIMILAR_JOB layers and their structural metrics",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Recompute graph metrics",
                "responses": { "200": { "description": "ok" } }
            }
        },
        "/clusters": {
            "get": {
                "produces": ["application/json"],
                "tags": ["clusters"],
                "summary": "List clusters",
                "responses": { "200": { "description": "cluster ids" } }
            }
        },
        "/clusters/summary": {
            "get": {
                "produces": ["application/json"],
                "tags": ["clusters"],
                "summary": "Cluster summaries",
                "parameters": [
                    { "name": "top_n", "in": "query", "type": "integer" }
                ],
                "responses": { "200": { "description": "per-cluster summaries" } }
            }
        },
        "/clusters/{cid}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["clusters"],
                "summary": "Cluster members",
                "parameters": [
                    { "name": "cid", "in": "path", "required": true, "type": "string" },
                    { "name": "limit", "in": "query", "type": "integer" }
                ],
                "responses": { "200": { "description": "members" } }
            }
        },
        "/person/{pid}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["people"],
                "summary": "Person detail",
                "parameters": [
                    { "name": "pid", "in": "path", "required": true, "type": "string" }
                ],
                "responses": {
                    "200": { "description": "person" },
                    "404": { "description": "not found" }
                }
            }
        },
        "/intro-path": {
            "get": {
                "produces": ["application/json"],
                "tags": ["people"],
                "summary": "Shortest introduction path",
                "parameters": [
                    { "name": "src", "in": "query", "required": true, "type": "string" },
                    { "name": "dst", "in": "query", "required": true, "type": "string" },
                    { "name": "max_depth", "in": "query", "type": "integer" }
                ],
                "responses": { "200": { "description": "path" } }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"https", "http"},
	Title:            "Personal Network Connector Ranking API",
	Description:      "Ranks first-degree connections by usefulness against a free-text query, combining vector similarity, attribute matching, and graph-structural signals.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
