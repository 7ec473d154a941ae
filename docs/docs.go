// Package docs provides the generated OpenAPI definition served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/players": {
            "get": {
                "produces": ["application/json"],
                "tags": ["players"],
                "summary": "List the roster with cumulative standings",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/players/{playerID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["players"],
                "summary": "Get one player",
                "parameters": [{"type": "integer", "name": "playerID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["players"],
                "summary": "Rename a player",
                "parameters": [{"type": "integer", "name": "playerID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/games": {
            "get": {
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "List every round, past and current",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/games/current": {
            "get": {
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "Get the round currently being played",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/games/current-round": {
            "get": {
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "Get the current round number",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/games/current/results": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "Record the current round's results",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}
            }
        },
        "/games/current/regroup": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "Re-pair the current round's tables under a policy",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}
            }
        },
        "/history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "List completed rounds",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/history/recompute": {
            "post": {
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "Rebuild all totals from the round history",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/history/{roundNumber}/tables/{tableID}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "Edit one historical table's record",
                "parameters": [
                    {"type": "integer", "name": "roundNumber", "in": "path", "required": true},
                    {"type": "integer", "name": "tableID", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/schedules": {
            "get": {
                "produces": ["application/json"],
                "tags": ["schedules"],
                "summary": "List every player's availability",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/schedules/common": {
            "get": {
                "produces": ["application/json"],
                "tags": ["schedules"],
                "summary": "Common availability of a set of players",
                "parameters": [{"type": "string", "name": "players", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/schedules/{playerID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["schedules"],
                "summary": "Get one player's availability",
                "parameters": [{"type": "integer", "name": "playerID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["schedules"],
                "summary": "Replace one player's availability",
                "parameters": [{"type": "integer", "name": "playerID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/schedules/{playerID}/toggle": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["schedules"],
                "summary": "Flip one slot in a player's availability",
                "parameters": [{"type": "integer", "name": "playerID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/admin/reset": {
            "post": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Reset the league to a fresh season",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/export": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Export the complete league state",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/import": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Restore league state from a snapshot",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/admin/backup-schedules": {
            "post": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Upload a timestamped backup of all schedules",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Riichi League API",
	Description:      "Round pairing, standings and scheduling for a riichi mahjong league.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
