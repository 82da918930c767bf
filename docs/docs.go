// Package docs registers the OpenAPI description served at /swagger/*.
// The template is maintained by hand alongside internal/api/router.go;
// TestRouter_RoutesAreDocumented fails when a route has no entry here.
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
        "/jwt": {"post": {"tags": ["auth"], "summary": "Issue an identity token", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/user/admin/{email}": {"get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Check admin role", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}}}},
        "/users": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "List users", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}},
            "post": {"tags": ["users"], "summary": "Register a user", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/users/admin/{id}": {"patch": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Promote a user to admin", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/users/{id}": {"delete": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Delete a user", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/messages/{userEmail}": {"get": {"security": [{"BearerAuth": []}], "tags": ["messages"], "summary": "Conversation history", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}}}},
        "/admin/messages/{userEmail}": {"get": {"security": [{"BearerAuth": []}], "tags": ["messages"], "summary": "Conversation history (admin)", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/ws": {"get": {"tags": ["realtime"], "summary": "Open the realtime channel", "responses": {"101": {"description": "Switching Protocols"}, "401": {"description": "Unauthorized"}}}},
        "/reservation": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["reservations"], "summary": "List reservations", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["reservations"], "summary": "Create a reservation", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}}
        },
        "/reservation/{email}": {"get": {"security": [{"BearerAuth": []}], "tags": ["reservations"], "summary": "List own reservations", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/reservation/{id}": {
            "patch": {"security": [{"BearerAuth": []}], "tags": ["reservations"], "summary": "Update reservation status", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["reservations"], "summary": "Delete a reservation", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}}
        },
        "/menu": {
            "get": {"tags": ["menu"], "summary": "List menu items", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["menu"], "summary": "Add a menu item", "responses": {"201": {"description": "Created"}, "403": {"description": "Forbidden"}}}
        },
        "/menu/{id}": {
            "get": {"tags": ["menu"], "summary": "Get a menu item", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["menu"], "summary": "Replace a menu item", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["menu"], "summary": "Delete a menu item", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/reviews": {
            "get": {"tags": ["reviews"], "summary": "List reviews", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["reviews"], "summary": "Post a review", "responses": {"201": {"description": "Created"}, "401": {"description": "Unauthorized"}}}
        },
        "/reviews/{email}": {"get": {"security": [{"BearerAuth": []}], "tags": ["reviews"], "summary": "List own reviews", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/contact": {"post": {"tags": ["contact"], "summary": "Send a contact message", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}},
        "/carts": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["carts"], "summary": "List cart items", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["carts"], "summary": "Add an item to the cart", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/carts/{id}": {"delete": {"security": [{"BearerAuth": []}], "tags": ["carts"], "summary": "Remove a cart line", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/create-payment-intent": {"post": {"tags": ["payments"], "summary": "Create a payment intent", "responses": {"200": {"description": "OK"}, "502": {"description": "Bad Gateway"}}}},
        "/payments": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["payments"], "summary": "List all payments", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["payments"], "summary": "Record a payment", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/payments/{email}": {"get": {"security": [{"BearerAuth": []}], "tags": ["payments"], "summary": "List own payments", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/admin-stats": {"get": {"security": [{"BearerAuth": []}], "tags": ["stats"], "summary": "Store totals", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/order-stats": {"get": {"security": [{"BearerAuth": []}], "tags": ["stats"], "summary": "Sales per menu category", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/health": {"get": {"tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}},
        "/health/ready": {"get": {"tags": ["health"], "summary": "Readiness probe", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Bistro API",
	Description:      "Restaurant backend with an authenticated realtime notification channel.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
