// Package docs registers the Swagger document served under /swagger outside production.
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
        "/clients": {
            "get": {"tags": ["clients"], "summary": "List clients", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["clients"], "summary": "Create a client", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"201": {"description": "Created"}}}
        },
        "/clients/check-name": {
            "post": {"tags": ["clients"], "summary": "Check for a client with the same name", "responses": {"200": {"description": "OK"}}}
        },
        "/clients/{clientID}": {
            "get": {"tags": ["clients"], "summary": "Get a client", "parameters": [{"type": "string", "name": "clientID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["clients"], "summary": "Update a client's profile", "parameters": [{"type": "string", "name": "clientID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["clients"], "summary": "Delete a client", "parameters": [{"type": "string", "name": "clientID", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/clients/{clientID}/ledger": {
            "get": {"tags": ["clients"], "summary": "Get a client's ledger", "parameters": [{"type": "string", "name": "clientID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/clients/{clientID}/transactions": {
            "get": {"tags": ["clients"], "summary": "List a client's transactions", "parameters": [{"type": "string", "name": "clientID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/particulars": {
            "get": {"tags": ["particulars"], "summary": "List catalog entries", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["particulars"], "summary": "Create a catalog entry", "responses": {"201": {"description": "Created"}}}
        },
        "/particulars/{particularID}": {
            "get": {"tags": ["particulars"], "summary": "Get a catalog entry", "parameters": [{"type": "string", "name": "particularID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["particulars"], "summary": "Delete a catalog entry", "parameters": [{"type": "string", "name": "particularID", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/transactions": {
            "post": {"tags": ["transactions"], "summary": "Record a transaction", "responses": {"201": {"description": "Created"}}}
        },
        "/transactions/next-jo-number": {
            "get": {"tags": ["transactions"], "summary": "Preview the next job-order number", "responses": {"200": {"description": "OK"}}}
        },
        "/transactions/{transactionID}": {
            "get": {"tags": ["transactions"], "summary": "Get a transaction", "parameters": [{"type": "string", "name": "transactionID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["transactions"], "summary": "Replace a transaction", "parameters": [{"type": "string", "name": "transactionID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["transactions"], "summary": "Delete a transaction", "parameters": [{"type": "string", "name": "transactionID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
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
	Schemes:          []string{},
	Title:            "Client Ledger API",
	Description:      "Client billing ledger: clients, catalog and job-order transactions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
