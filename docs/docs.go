// Package docs registers the Swagger spec served under /swagger.
//
// The paths are produced from the controller annotations with
//
//	swag init -g cmd/api/main.go -o docs
//
// which overwrites this file.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
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
        "/session": {
            "post": {
                "description": "Issues a session token for one of the seeded users. There are no passwords; picking a user is enough.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Start a session",
                "parameters": [
                    {
                        "description": "User to act as",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.SessionRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Session started"},
                    "400": {"description": "Invalid request format"},
                    "403": {"description": "Account suspended"},
                    "404": {"description": "User not found"}
                }
            }
        },
        "/posts": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Returns posts filtered by hashtag or search text and an optional date range. A hashtag filter takes precedence over search.",
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Get the newsfeed",
                "parameters": [
                    {"type": "string", "name": "search", "in": "query"},
                    {"type": "string", "name": "hashtag", "in": "query"},
                    {"type": "string", "name": "startDate", "in": "query"},
                    {"type": "string", "name": "endDate", "in": "query"},
                    {"type": "string", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Feed retrieved successfully"},
                    "400": {"description": "Invalid filter"},
                    "401": {"description": "Unauthorized"}
                }
            }
        }
    },
    "definitions": {
        "dto.SessionRequest": {
            "type": "object",
            "required": ["userId"],
            "properties": {
                "userId": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Session token from POST /session",
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
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Campus Buzz API",
	Description:      "API for the Campus Buzz university social platform",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
