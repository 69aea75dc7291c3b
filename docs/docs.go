// Package docs registers the OpenAPI description served under /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o docs
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
        "/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"description": "Login credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.tokenResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        },
        "/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List users",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.User"}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "User registration details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        },
        "/bookings": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "List bookings",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Booking"}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Create booking",
                "parameters": [
                    {"description": "Stay", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createBookingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Booking"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        },
        "/bookings/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Get booking",
                "parameters": [{"type": "integer", "description": "Booking ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Booking"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Update booking",
                "parameters": [
                    {"type": "integer", "description": "Booking ID", "name": "id", "in": "path", "required": true},
                    {"description": "New dates", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.updateBookingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Booking"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["bookings"],
                "summary": "Delete booking",
                "parameters": [{"type": "integer", "description": "Booking ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Booking": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "checkInDate": {"type": "string"},
                "checkOutDate": {"type": "string"},
                "userId": {"type": "integer"},
                "propertyId": {"type": "integer"}
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string", "enum": ["guest", "host", "admin"]}
            }
        },
        "handler.createBookingRequest": {
            "type": "object",
            "required": ["checkInDate", "checkOutDate", "propertyId"],
            "properties": {
                "checkInDate": {"type": "string"},
                "checkOutDate": {"type": "string"},
                "userId": {"type": "integer"},
                "propertyId": {"type": "integer"}
            }
        },
        "handler.updateBookingRequest": {
            "type": "object",
            "required": ["checkInDate", "checkOutDate"],
            "properties": {
                "checkInDate": {"type": "string"},
                "checkOutDate": {"type": "string"}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.registerRequest": {
            "type": "object",
            "required": ["email", "password", "username"],
            "properties": {
                "username": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string", "enum": ["guest", "host", "admin"]}
            }
        },
        "handler.messageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "handler.tokenResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Booking API",
	Description:      "Registration, login and bookings for a rental platform.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
