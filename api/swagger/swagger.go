package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Itinerary Planner API",
        "description": "Plans day-by-day travel itineraries with a backtracking constraint solver",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Itineraries", "description": "Planning, saving and exporting itineraries"},
        {"name": "Catalogs", "description": "Named activity catalogs loaded from YAML"},
        {"name": "Observability", "description": "Health and metrics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Observability"],
                "summary": "Liveness check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["Observability"],
                "summary": "Readiness check against Postgres and Redis when enabled",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "A dependency is down"}
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": ["Observability"],
                "summary": "Prometheus metrics",
                "produces": ["text/plain"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/v1/metrics/summary": {
            "get": {
                "tags": ["Observability"],
                "summary": "Aggregated service metrics",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/itineraries/plan": {
            "post": {
                "tags": ["Itineraries"],
                "summary": "Plan an itinerary",
                "description": "A schedule that cannot be built is reported as status no_solution with HTTP 200.",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PlanItineraryRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/PlanEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/itineraries": {
            "get": {
                "tags": ["Itineraries"],
                "summary": "List itineraries ordered by start date",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Itineraries"],
                "summary": "Save a planned proposal",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveItineraryRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Proposal not found or expired", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/itineraries/{id}": {
            "get": {
                "tags": ["Itineraries"],
                "summary": "Get itinerary with slots grouped by day",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Not the owner", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Itineraries"],
                "summary": "Update itinerary title",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateItineraryRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Not the owner", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Itineraries"],
                "summary": "Delete itinerary",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/api/v1/itineraries/{id}/export": {
            "get": {
                "tags": ["Itineraries"],
                "summary": "Export itinerary as CSV or PDF",
                "produces": ["text/csv", "application/pdf"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}}
                }
            }
        },
        "/api/v1/catalogs": {
            "get": {
                "tags": ["Catalogs"],
                "summary": "List activity catalogs",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/catalogs/reload": {
            "post": {
                "tags": ["Catalogs"],
                "summary": "Reload catalogs from disk (admin)",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Admin only", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Activity": {
            "type": "object",
            "required": ["category"],
            "properties": {
                "name": {"type": "string"},
                "category": {"type": "string", "example": "food"}
            },
            "additionalProperties": true
        },
        "PlanItineraryRequest": {
            "type": "object",
            "required": ["startDate", "endDate"],
            "properties": {
                "startDate": {"type": "string", "format": "date", "example": "2025-06-01"},
                "endDate": {"type": "string", "format": "date", "example": "2025-06-03"},
                "activities": {"type": "array", "items": {"$ref": "#/definitions/Activity"}},
                "catalogId": {"type": "string"},
                "constraints": {
                    "type": "object",
                    "properties": {
                        "max_per_day": {"type": "integer", "minimum": 1, "default": 3},
                        "food_after_slot": {"type": "integer", "minimum": 1, "default": 1}
                    }
                }
            }
        },
        "Day": {
            "type": "object",
            "properties": {
                "index": {"type": "integer"},
                "label": {"type": "string", "example": "Day1"},
                "date": {"type": "string", "format": "date-time"},
                "activities": {"type": "array", "items": {"$ref": "#/definitions/Activity"}}
            }
        },
        "SearchStats": {
            "type": "object",
            "properties": {
                "nodes": {"type": "integer"},
                "backtracks": {"type": "integer"},
                "elapsed": {"type": "integer", "description": "nanoseconds"},
                "truncated": {"type": "boolean"}
            }
        },
        "PlanItineraryResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["scheduled", "no_solution"]},
                "reason": {"type": "string", "enum": ["solved", "exhausted", "node_budget", "deadline"]},
                "proposalId": {"type": "string"},
                "message": {"type": "string"},
                "schedule": {"type": "object", "additionalProperties": {"type": "array", "items": {"$ref": "#/definitions/Activity"}}},
                "days": {"type": "array", "items": {"$ref": "#/definitions/Day"}},
                "constraints": {
                    "type": "object",
                    "properties": {
                        "max_per_day": {"type": "integer"},
                        "food_after_slot": {"type": "integer"}
                    }
                },
                "stats": {"$ref": "#/definitions/SearchStats"},
                "cached": {"type": "boolean"}
            }
        },
        "SaveItineraryRequest": {
            "type": "object",
            "required": ["proposalId", "title"],
            "properties": {
                "proposalId": {"type": "string", "format": "uuid"},
                "title": {"type": "string", "maxLength": 200}
            }
        },
        "UpdateItineraryRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string", "minLength": 1, "maxLength": 200}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        },
        "PlanEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/PlanItineraryResponse"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
