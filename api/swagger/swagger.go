package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Yeko Pointage API",
        "description": "Classroom attendance and participation session engine for school tablets",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Scan", "description": "Identification code resolution"},
        {"name": "Session", "description": "Roll call, participation and submission"},
        {"name": "Device", "description": "Tablet configuration"},
        {"name": "Authentication", "description": "Director login"},
        {"name": "School", "description": "School, classes and grades"},
        {"name": "Archive", "description": "Session history and reports"}
    ],
    "paths": {
        "/scan": {
            "post": {
                "tags": ["Scan"],
                "summary": "Resolve a scanned identification code",
                "parameters": [
                    {"name": "X-Device-ID", "in": "header", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object", "properties": {"payload": {"type": "string"}}}}
                ],
                "responses": {
                    "200": {"description": "Session opened or director redirect", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Malformed code, unknown role or missing teacher id"},
                    "404": {"description": "Teacher not on roster or no scheduled class"},
                    "412": {"description": "Device not configured"}
                }
            }
        },
        "/session": {
            "get": {
                "tags": ["Session"],
                "summary": "Get current session state",
                "parameters": [{"name": "X-Device-ID", "in": "header", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "Session state", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No active session"}
                }
            },
            "delete": {
                "tags": ["Session"],
                "summary": "Abort the session",
                "parameters": [{"name": "X-Device-ID", "in": "header", "type": "string", "required": true}],
                "responses": {
                    "204": {"description": "Session discarded"}
                }
            }
        },
        "/session/attendance/{studentId}": {
            "post": {
                "tags": ["Session"],
                "summary": "Toggle a student's attendance status",
                "parameters": [
                    {"name": "X-Device-ID", "in": "header", "type": "string", "required": true},
                    {"name": "studentId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Updated record"},
                    "404": {"description": "Student not on roster"},
                    "409": {"description": "Operation not allowed in current phase"}
                }
            }
        },
        "/session/attendance/finalize": {
            "post": {
                "tags": ["Session"],
                "summary": "Advance the roll call",
                "parameters": [{"name": "X-Device-ID", "in": "header", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "Updated session state"},
                    "409": {"description": "Roll call already finalized"}
                }
            }
        },
        "/session/participation/{studentId}": {
            "post": {
                "tags": ["Session"],
                "summary": "Toggle a student's participation entry",
                "parameters": [
                    {"name": "X-Device-ID", "in": "header", "type": "string", "required": true},
                    {"name": "studentId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Updated session state"},
                    "400": {"description": "Selection already holds five students"}
                }
            }
        },
        "/session/participation/{studentId}/comment": {
            "put": {
                "tags": ["Session"],
                "summary": "Attach a comment to a participation entry",
                "parameters": [
                    {"name": "X-Device-ID", "in": "header", "type": "string", "required": true},
                    {"name": "studentId", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object", "properties": {"comment": {"type": "string"}}}}
                ],
                "responses": {
                    "200": {"description": "Updated session state"}
                }
            }
        },
        "/session/participation/stats": {
            "get": {
                "tags": ["Session"],
                "summary": "Get the participation summary of the current draft",
                "parameters": [{"name": "X-Device-ID", "in": "header", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "Participation stats"}
                }
            }
        },
        "/session/homework": {
            "put": {
                "tags": ["Session"],
                "summary": "Attach a homework draft to the session",
                "parameters": [
                    {"name": "X-Device-ID", "in": "header", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object", "properties": {"due_date": {"type": "string", "format": "date-time"}, "is_graded": {"type": "boolean"}}}}
                ],
                "responses": {
                    "200": {"description": "Updated session state"},
                    "400": {"description": "Due date not in the future"}
                }
            },
            "delete": {
                "tags": ["Session"],
                "summary": "Remove the homework draft",
                "parameters": [{"name": "X-Device-ID", "in": "header", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "Updated session state"}
                }
            }
        },
        "/session/submit": {
            "post": {
                "tags": ["Session"],
                "summary": "Submit the session",
                "parameters": [{"name": "X-Device-ID", "in": "header", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "Submission result"},
                    "400": {"description": "Participation selection outside allowed range"},
                    "409": {"description": "Submission already in progress"},
                    "502": {"description": "One or more writes failed, session retained"}
                }
            }
        },
        "/device/binding": {
            "get": {
                "tags": ["Device"],
                "summary": "Get the binding of the calling device",
                "parameters": [{"name": "X-Device-ID", "in": "header", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "Device binding"},
                    "412": {"description": "Device not configured"}
                }
            },
            "put": {
                "tags": ["Device"],
                "summary": "Bind the calling device to a class",
                "parameters": [
                    {"name": "X-Device-ID", "in": "header", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object", "properties": {"school_id": {"type": "string"}, "class_id": {"type": "string"}}}}
                ],
                "responses": {
                    "201": {"description": "Binding created"},
                    "403": {"description": "Caller is not a director of the school"}
                }
            }
        },
        "/device/class": {
            "get": {
                "tags": ["Device"],
                "summary": "Get the class details of the bound class",
                "parameters": [{"name": "X-Device-ID", "in": "header", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "Class details"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate a director",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object", "properties": {"email": {"type": "string"}, "password": {"type": "string"}, "school_id": {"type": "string"}}}}
                ],
                "responses": {
                    "200": {"description": "Issued tokens"},
                    "401": {"description": "Invalid credentials"},
                    "403": {"description": "Not a director of the school"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Refresh access token",
                "responses": {
                    "200": {"description": "Issued tokens"},
                    "401": {"description": "Invalid refresh token"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Get current user",
                "responses": {
                    "200": {"description": "User info"},
                    "401": {"description": "Missing or invalid token"}
                }
            }
        },
        "/schools/{schoolId}": {
            "get": {
                "tags": ["School"],
                "summary": "Get a school",
                "parameters": [{"name": "schoolId", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "School"},
                    "404": {"description": "School not found"}
                }
            }
        },
        "/schools/{schoolId}/classes": {
            "get": {
                "tags": ["School"],
                "summary": "List the classes of a school",
                "parameters": [{"name": "schoolId", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "Classes"}
                }
            }
        },
        "/schools/{schoolId}/grades": {
            "get": {
                "tags": ["School"],
                "summary": "List the grades of a school's cycle",
                "parameters": [{"name": "schoolId", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "Grades"}
                }
            }
        },
        "/archives": {
            "get": {
                "tags": ["Archive"],
                "summary": "List session archives",
                "parameters": [
                    {"name": "class_id", "in": "query", "type": "string"},
                    {"name": "teacher_id", "in": "query", "type": "string"},
                    {"name": "from", "in": "query", "type": "string"},
                    {"name": "to", "in": "query", "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Archives"}
                }
            }
        },
        "/archives/export": {
            "get": {
                "tags": ["Archive"],
                "summary": "Export session archives as PDF or CSV",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["pdf", "csv"]}
                ],
                "responses": {
                    "200": {"description": "Report file"}
                }
            }
        },
        "/archives/{archiveId}": {
            "get": {
                "tags": ["Archive"],
                "summary": "Get a session archive",
                "parameters": [{"name": "archiveId", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "Archive"},
                    "404": {"description": "Archive not found"}
                }
            }
        }
    },
    "definitions": {
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
