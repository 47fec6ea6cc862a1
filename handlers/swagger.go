package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the service.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.String(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>accountd — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing the credential endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "accountd", "version": "v0.1.0" },
  "paths": {
    "/register": {
      "post": {
        "summary": "Register a new account",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"pass":{"type":"string"}}}}}},
        "responses": { "200": { "description": "status ok, or status error with Invalid Password / Invalid email / Username in use" } }
      }
    },
    "/login": {
      "post": { "summary": "Login and receive a bearer token", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"pass":{"type":"string"}}}}}}, "responses": { "200": { "description": "status ok with token in data, or status error" } } }
    },
    "/change": {
      "post": { "summary": "Change password using a bearer token", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"token":{"type":"string"},"newpass":{"type":"string"}}}}}}, "responses": { "200": { "description": "status ok, or status error with password not valid / Signature error" } } }
    },
    "/me": {
      "get": { "summary": "Current account (Authorization: Bearer)", "responses": { "200": { "description": "account record" }, "401": { "description": "invalid token" } } }
    },
    "/all": {
      "get": { "summary": "List all accounts", "responses": { "200": { "description": "all records" } } }
    },
    "/users/{id}": {
      "delete": { "summary": "Delete one account", "responses": { "200": { "description": "plain text confirmation" }, "404": { "description": "no such account" } } }
    },
    "/users": {
      "delete": { "summary": "Delete all accounts", "responses": { "200": { "description": "all data erase" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
