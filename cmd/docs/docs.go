// Package docs holds the swagger document served at /swagger when not in production.
// Regenerate with: swag init -g cmd/blog_backend/main.go -o cmd/docs
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
        "/pre-signup": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Request an account activation link",
                "parameters": [
                    {"description": "Registration details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.PreSignupRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MessageResponse"}},
                    "400": {"description": "Email is taken", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "502": {"description": "Email could not be sent", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/signup": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Activate an account",
                "parameters": [
                    {"description": "Activation token", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SignupRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MessageResponse"}},
                    "401": {"description": "Expired link", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/signin": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign in with email and password",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SigninRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/forgot-password": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Request a password reset link",
                "parameters": [
                    {"description": "Account email", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ForgotPasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/reset-password": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Set a new password with a reset link",
                "parameters": [
                    {"description": "Reset token and new password", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ResetPasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MessageResponse"}},
                    "401": {"description": "Expired link", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Link already used", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/google-login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["oauth"],
                "summary": "Sign in with a Google ID token",
                "parameters": [
                    {"description": "Google ID token", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.GoogleLoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionResponse"}},
                    "400": {"description": "Email not verified", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "401": {"description": "Google login failed", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "dto.MessageResponse": {"type": "object", "properties": {"message": {"type": "string"}}},
        "dto.PreSignupRequest": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {"email": {"type": "string"}, "name": {"type": "string"}, "password": {"type": "string", "minLength": 6}}
        },
        "dto.SignupRequest": {"type": "object", "required": ["token"], "properties": {"token": {"type": "string"}}},
        "dto.SigninRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string", "minLength": 6}}
        },
        "dto.ForgotPasswordRequest": {"type": "object", "required": ["email"], "properties": {"email": {"type": "string"}}},
        "dto.ResetPasswordRequest": {
            "type": "object",
            "required": ["newPassword", "resetPasswordLink"],
            "properties": {"newPassword": {"type": "string", "minLength": 6}, "resetPasswordLink": {"type": "string"}}
        },
        "dto.GoogleLoginRequest": {"type": "object", "required": ["tokenId"], "properties": {"tokenId": {"type": "string"}}},
        "dto.SessionResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "user": {"$ref": "#/definitions/domain.PublicUser"}}
        },
        "domain.PublicUser": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "email": {"type": "string"},
                "name": {"type": "string"},
                "role": {"type": "integer"},
                "username": {"type": "string"}
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
	Host:             "localhost:8000",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Blog Backend API",
	Description:      "Accounts, blogs, categories, tags and contact relay for the blog.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
