// Package docs registers the OpenAPI description served under /swagger.
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
        "/api/expenses": {
            "get": {
                "produces": ["application/json"],
                "tags": ["expenses"],
                "summary": "List expenses",
                "parameters": [
                    {"type": "string", "description": "Case-insensitive search over every field", "name": "q", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.expenseResponse"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["expenses"],
                "summary": "Record a new expense advance",
                "parameters": [
                    {"description": "Expense", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.expenseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.expenseResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/expenses/{id}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["expenses"],
                "summary": "Replace an expense",
                "parameters": [
                    {"type": "string", "description": "Expense id", "name": "id", "in": "path", "required": true},
                    {"description": "Expense", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.expenseRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.expenseResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["expenses"],
                "summary": "Delete an expense",
                "parameters": [
                    {"type": "string", "description": "Expense id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.deleteResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/summaries": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Per-employee totals",
                "parameters": [
                    {"type": "string", "description": "Employee name filter", "name": "q", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.summaryResponse"}}}
                }
            }
        },
        "/api/employees": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Distinct employee names",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}}
                }
            }
        },
        "/api/charts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Chart data",
                "parameters": [
                    {"type": "string", "description": "Employee name or \"all\"", "name": "employee", "in": "query"},
                    {"type": "string", "description": "summary or category", "name": "mode", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.chartResponse"}}
                }
            }
        },
        "/api/charts/image": {
            "get": {
                "produces": ["image/png"],
                "tags": ["reports"],
                "summary": "Chart as PNG",
                "parameters": [
                    {"type": "string", "description": "Employee name or \"all\"", "name": "employee", "in": "query"},
                    {"type": "string", "description": "summary or category", "name": "mode", "in": "query"},
                    {"type": "string", "description": "bar or line", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/dashboard": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Projected ledger screen",
                "parameters": [
                    {"type": "string", "description": "Search query", "name": "q", "in": "query"},
                    {"type": "string", "description": "Chart employee filter", "name": "employee", "in": "query"},
                    {"type": "string", "description": "Chart mode", "name": "mode", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.dashboardResponse"}}
                }
            }
        },
        "/api/reports/expenses.pdf": {
            "get": {
                "produces": ["application/pdf"],
                "tags": ["reports"],
                "summary": "Export detail and summary tables to PDF",
                "parameters": [
                    {"type": "string", "description": "Search query", "name": "q", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "definitions": {
        "handler.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.deleteResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}}
        },
        "handler.expenseRequest": {
            "type": "object",
            "required": ["amountWithdrawn", "category", "employeeName", "justification", "workDate"],
            "properties": {
                "employeeName": {"type": "string"},
                "workDate": {"type": "string", "example": "2024-03-14"},
                "destination": {"type": "string"},
                "category": {"type": "string"},
                "amountWithdrawn": {"type": "number", "minimum": 0},
                "justification": {"type": "number", "minimum": 0}
            }
        },
        "handler.expenseResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "employeeName": {"type": "string"},
                "workDate": {"type": "string"},
                "destination": {"type": "string"},
                "category": {"type": "string"},
                "amountWithdrawn": {"type": "number"},
                "justification": {"type": "number"},
                "balance": {"type": "number"}
            }
        },
        "handler.summaryResponse": {
            "type": "object",
            "properties": {
                "employeeName": {"type": "string"},
                "totalWithdrawn": {"type": "number"},
                "totalJustified": {"type": "number"},
                "totalBalance": {"type": "number"}
            }
        },
        "handler.chartResponse": {
            "type": "object",
            "properties": {
                "labels": {"type": "array", "items": {"type": "string"}},
                "datasets": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "label": {"type": "string"},
                            "data": {"type": "array", "items": {"type": "number"}}
                        }
                    }
                }
            }
        },
        "handler.dashboardResponse": {
            "type": "object",
            "properties": {
                "details": {"type": "array", "items": {"type": "object"}},
                "summaries": {"type": "array", "items": {"type": "object"}},
                "employees": {"type": "array", "items": {"type": "string"}},
                "employeeFilter": {"type": "string"},
                "chartMode": {"type": "string"},
                "chart": {"$ref": "#/definitions/handler.chartResponse"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Expense Ledger API",
	Description:      "Employee expense advances: records, per-employee balances, charts and exports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
