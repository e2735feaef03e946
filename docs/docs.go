// Package docs holds the swagger description of the StaffRoster API.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "schemes": {{ marshal .Schemes }},
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health Check",
                "description": "Check if server is running",
                "responses": {
                    "200": {
                        "description": "Server is healthy"
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["Health"],
                "summary": "Readiness Check",
                "description": "Fails while the snapshot file is behind the in-memory store",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Snapshot is stale"}
                }
            }
        },
        "/employees": {
            "get": {
                "tags": ["Employees"],
                "summary": "List employees",
                "produces": ["application/json"],
                "responses": {
                    "200": {
                        "description": "All employees",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/entities.Employee"}
                        }
                    }
                }
            },
            "post": {
                "tags": ["Employees"],
                "summary": "Create employee",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "employee",
                        "description": "Employee",
                        "required": true,
                        "schema": {"$ref": "#/definitions/ports.CreateEmployeeRequest"}
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {"$ref": "#/definitions/entities.Employee"}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/ports.ErrorResponse"}
                    },
                    "500": {
                        "description": "Snapshot write failed",
                        "schema": {"$ref": "#/definitions/ports.ErrorResponse"}
                    }
                }
            }
        },
        "/employees/{id}": {
            "get": {
                "tags": ["Employees"],
                "summary": "Get employee",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Employee ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/entities.Employee"}
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {"$ref": "#/definitions/ports.ErrorResponse"}
                    }
                }
            },
            "delete": {
                "tags": ["Employees"],
                "summary": "Delete employee",
                "parameters": [
                    {"type": "string", "description": "Employee ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "500": {
                        "description": "Snapshot write failed",
                        "schema": {"$ref": "#/definitions/ports.ErrorResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "entities.Employee": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "6f1c1e3e-4d5e-4a7b-9c2d-1e2f3a4b5c6d"},
                "name": {"type": "string", "example": "Ann"},
                "age": {"type": "integer", "minimum": 0, "maximum": 255, "example": 30},
                "position": {"type": "string", "example": "Engineer"}
            }
        },
        "ports.CreateEmployeeRequest": {
            "type": "object",
            "required": ["name", "age", "position"],
            "properties": {
                "name": {"type": "string", "maxLength": 100, "example": "Ann"},
                "age": {"type": "integer", "minimum": 0, "maximum": 255, "example": 30},
                "position": {"type": "string", "maxLength": 100, "example": "Engineer"}
            }
        },
        "ports.ErrorResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "id": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "StaffRoster API",
	Description:      "Employee records backed by a JSON snapshot file",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
