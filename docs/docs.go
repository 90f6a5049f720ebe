// Package docs holds the OpenAPI document served at /swagger. Regenerate with
// `swag init -g cmd/server/main.go` after changing handler annotations.
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
        "/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "Account details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "Log in and receive a bearer token",
                "parameters": [
                    {"description": "Credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.AuthResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/organizations": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Organizations"],
                "summary": "Create an organization owned by the caller",
                "parameters": [
                    {"description": "Organization", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CreateOrganizationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.OrganizationResponse"}}
                }
            }
        },
        "/organizations/{id}/members": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Organizations"],
                "summary": "Add a user to an organization",
                "parameters": [
                    {"type": "string", "description": "Organization ID", "name": "id", "in": "path", "required": true},
                    {"description": "Member", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.AddMemberRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.MemberResponse"}},
                    "403": {"description": "Forbidden", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/boards": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Boards"],
                "summary": "Create a board in the active organization",
                "parameters": [
                    {"description": "Board", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CreateBoardRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.BoardResponse"}},
                    "403": {"description": "Forbidden", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/boards/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Replacing content first stores the current content as a version.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Boards"],
                "summary": "Update a board",
                "parameters": [
                    {"type": "string", "description": "Board ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.UpdateBoardRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.BoardResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "403": {"description": "Forbidden", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Boards"],
                "summary": "Delete a board",
                "parameters": [
                    {"type": "string", "description": "Board ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Board is assigned to a display", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/versions/{id}/restore": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "The board's current content is versioned before it is replaced.",
                "produces": ["application/json"],
                "tags": ["Versions"],
                "summary": "Restore a board to a stored version",
                "parameters": [
                    {"type": "string", "description": "Version ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.BoardResponse"}}
                }
            }
        },
        "/displays": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Displays"],
                "summary": "Register a display in the active organization",
                "parameters": [
                    {"description": "Display", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CreateDisplayRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.DisplayResponse"}}
                }
            }
        },
        "/pairings": {
            "post": {
                "description": "Called by an unpaired kiosk. The pairing expires after ten minutes.",
                "produces": ["application/json"],
                "tags": ["Pairings"],
                "summary": "Start a display pairing",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/service.PairingView"}}
                }
            }
        },
        "/pairings/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Pairings"],
                "summary": "Poll a display pairing",
                "parameters": [
                    {"type": "string", "description": "Pairing ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.PairingView"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/pairings/{id}/display": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Pairings"],
                "summary": "Attach a display to a pending pairing",
                "parameters": [
                    {"type": "string", "description": "Pairing ID", "name": "id", "in": "path", "required": true},
                    {"description": "Display", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.SetDisplayRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.PairingView"}},
                    "409": {"description": "Already completed", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "410": {"description": "Expired", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/files/upload-url": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Files"],
                "summary": "Get a one-time upload URL",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.UploadTicket"}}
                }
            }
        },
        "/files": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Files"],
                "summary": "Register an uploaded blob against a board",
                "parameters": [
                    {"description": "Uploaded blob", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.SaveFileRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.FileResponse"}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/storage/upload": {
            "put": {
                "consumes": ["application/octet-stream"],
                "produces": ["application/json"],
                "tags": ["Storage"],
                "summary": "Upload a blob to a signed upload URL",
                "parameters": [
                    {"type": "string", "description": "Upload token", "name": "token", "in": "query", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "403": {"description": "Forbidden", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "413": {"description": "Request Entity Too Large", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "handler.RegisterRequest": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string", "minLength": 2},
                "password": {"type": "string", "minLength": 6}
            }
        },
        "handler.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.UserResponse": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "handler.AuthResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/handler.UserResponse"}
            }
        },
        "handler.CreateOrganizationRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"}
            }
        },
        "handler.OrganizationResponse": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "handler.AddMemberRequest": {
            "type": "object",
            "required": ["email", "role"],
            "properties": {
                "email": {"type": "string"},
                "role": {"type": "string", "enum": ["admin", "member"]}
            }
        },
        "handler.MemberResponse": {
            "type": "object",
            "properties": {
                "joined_at": {"type": "string"},
                "organization_id": {"type": "string"},
                "role": {"type": "string"},
                "user_id": {"type": "string"}
            }
        },
        "handler.CreateBoardRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "description": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "handler.UpdateBoardRequest": {
            "type": "object",
            "properties": {
                "content": {"$ref": "#/definitions/model.BoardContent"},
                "description": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "handler.BoardResponse": {
            "type": "object",
            "properties": {
                "content": {"$ref": "#/definitions/model.BoardContent"},
                "created_at": {"type": "string"},
                "created_by": {"type": "string"},
                "description": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "organization_id": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "handler.CreateDisplayRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "current_board_id": {"type": "string"},
                "location": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "handler.DisplayResponse": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "current_board_id": {"type": "string"},
                "id": {"type": "string"},
                "location": {"type": "string"},
                "name": {"type": "string"},
                "organization_id": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "handler.SetDisplayRequest": {
            "type": "object",
            "required": ["display_id"],
            "properties": {
                "display_id": {"type": "string"}
            }
        },
        "handler.SaveFileRequest": {
            "type": "object",
            "required": ["board_id", "storage_id"],
            "properties": {
                "board_id": {"type": "string"},
                "storage_id": {"type": "string"}
            }
        },
        "handler.FileResponse": {
            "type": "object",
            "properties": {
                "board_id": {"type": "string"},
                "id": {"type": "string"},
                "organization_id": {"type": "string"},
                "storage_id": {"type": "string"},
                "uploaded_at": {"type": "string"},
                "uploaded_by": {"type": "string"}
            }
        },
        "model.BoardContent": {
            "type": "object",
            "properties": {
                "backgroundColor": {"type": "string"},
                "components": {"type": "array", "items": {"$ref": "#/definitions/model.Component"}},
                "gridConfig": {"$ref": "#/definitions/model.GridConfig"}
            }
        },
        "model.GridConfig": {
            "type": "object",
            "properties": {
                "columns": {"type": "integer", "maximum": 24, "minimum": 1},
                "rowGap": {"type": "integer", "maximum": 100, "minimum": 0},
                "rowHeight": {"type": "integer", "maximum": 500, "minimum": 10},
                "rows": {"type": "integer", "maximum": 100, "minimum": 1}
            }
        },
        "model.Component": {
            "type": "object",
            "required": ["id"],
            "properties": {
                "config": {"type": "object", "additionalProperties": true},
                "id": {"type": "string"},
                "position": {"$ref": "#/definitions/model.Position"},
                "type": {"type": "string", "enum": ["header", "text", "image"]}
            }
        },
        "model.Position": {
            "type": "object",
            "properties": {
                "h": {"type": "integer", "minimum": 1},
                "w": {"type": "integer", "minimum": 1},
                "x": {"type": "integer", "minimum": 0},
                "y": {"type": "integer", "minimum": 0}
            }
        },
        "service.PairingView": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "display_id": {"type": "string"},
                "expires_at": {"type": "string"},
                "id": {"type": "string"},
                "status": {"type": "string", "enum": ["pending", "completed", "expired"]}
            }
        },
        "service.UploadTicket": {
            "type": "object",
            "properties": {
                "expires_at": {"type": "string"},
                "storage_id": {"type": "string"},
                "upload_url": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Signage API",
	Description:      "API for managing organizations, signage boards, displays and display pairing.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
