package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "CodeLab API",
        "description": "Coding-assignment platform: courses, AI-generated questions, code grading and analytics",
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
        {"name": "Authentication", "description": "Google login exchange"},
        {"name": "Courses", "description": "Course creation and enrollment"},
        {"name": "Assignments", "description": "Assignment management"},
        {"name": "Dashboard", "description": "Teacher and student dashboards"},
        {"name": "Questions", "description": "Per-student question lifecycle"},
        {"name": "Code", "description": "Execution, grading, generation and hints"},
        {"name": "Progress", "description": "Attempt session summaries"},
        {"name": "Analytics", "description": "Class and student aggregations"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/auth/google-login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Exchange a Google ID token for an access token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GoogleLoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LoginResponse"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/APIError"}},
                    "401": {"description": "Invalid Google token", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/api/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "List all courses",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/courses/create": {
            "post": {
                "tags": ["Courses"],
                "summary": "Create a course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCourseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/api/courses/join": {
            "post": {
                "tags": ["Courses"],
                "summary": "Enroll the current student in a course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/JoinCourseRequest"}}
                ],
                "responses": {
                    "200": {"description": "Enrolled"},
                    "404": {"description": "Unknown course", "schema": {"$ref": "#/definitions/APIError"}},
                    "409": {"description": "Already enrolled", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/api/assignments/create": {
            "post": {
                "tags": ["Assignments"],
                "summary": "Create an assignment",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAssignmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/APIError"}},
                    "404": {"description": "Unknown course", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/api/assignments/{courseID}": {
            "get": {
                "tags": ["Assignments"],
                "summary": "List assignments for a course",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "courseID", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/teacher-dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Teacher dashboard",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/student-dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Student dashboard",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/get-parent-question": {
            "post": {
                "tags": ["Questions"],
                "summary": "Fetch or generate the student's question set",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK"},
                    "123": {"description": "Generation failed, retry", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/api/get-followup-question": {
            "post": {
                "tags": ["Questions"],
                "summary": "Fetch or generate the follow-up for a question",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Unknown question", "schema": {"$ref": "#/definitions/APIError"}},
                    "123": {"description": "Generation failed, retry", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/api/submit-progress": {
            "post": {
                "tags": ["Progress"],
                "summary": "Record an attempt session summary",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Recorded"},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/run_code": {
            "post": {
                "tags": ["Code"],
                "summary": "Execute code and grade the output",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Execution result with verdict"}
                }
            }
        },
        "/check": {
            "post": {
                "tags": ["Code"],
                "summary": "Grade code against a question",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Verdict"},
                    "123": {"description": "Grading failed, retry", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/master-ques": {
            "post": {
                "tags": ["Code"],
                "summary": "Generate a question set",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Generated set"},
                    "123": {"description": "Generation failed, retry", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/follow-ques": {
            "post": {
                "tags": ["Code"],
                "summary": "Generate a follow-up question",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Follow-up payload"},
                    "123": {"description": "Generation failed, retry", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/hints": {
            "post": {
                "tags": ["Code"],
                "summary": "Generate progressive hints",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Three hints"},
                    "123": {"description": "Generation failed, retry", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/class-analytics": {
            "post": {
                "tags": ["Analytics"],
                "summary": "Aggregate class progress for an assignment",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Aggregation, possibly empty"}
                }
            }
        },
        "/class-analytics/{assignmentID}/export": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Download the class progress report",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "assignmentID", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Report file"}
                }
            }
        },
        "/student-analytics": {
            "post": {
                "tags": ["Analytics"],
                "summary": "Per-question breakdown for one student",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Breakdown, empty maps when unknown"}
                }
            }
        },
        "/student-names": {
            "get": {
                "tags": ["Analytics"],
                "summary": "List every student display name",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "definitions": {
        "GoogleLoginRequest": {
            "type": "object",
            "required": ["id_token", "user_type"],
            "properties": {
                "id_token": {"type": "string"},
                "user_type": {"type": "string", "enum": ["teacher", "student"]}
            }
        },
        "LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "user": {"type": "object"}
            }
        },
        "CreateCourseRequest": {
            "type": "object",
            "required": ["title"],
            "properties": {
                "title": {"type": "string"}
            }
        },
        "JoinCourseRequest": {
            "type": "object",
            "required": ["course_id"],
            "properties": {
                "course_id": {"type": "string"}
            }
        },
        "CreateAssignmentRequest": {
            "type": "object",
            "required": ["title", "courseId", "questions", "dueDate"],
            "properties": {
                "title": {"type": "string"},
                "courseId": {"type": "string"},
                "questions": {"type": "integer"},
                "language": {"type": "string"},
                "objectives": {"type": "string"},
                "dueDate": {"type": "string", "format": "date"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "error": {"type": "string"}
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
