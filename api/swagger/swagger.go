package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {"title": "School Admin API", "description": "Staff authentication, student records, terms, subjects, schedules and grades. Protected routes require the auth-session cookie.", "version": "1.0.0"},
    "basePath": "/api",
    "schemes": ["http", "https"],
    "consumes": ["application/json"],
    "produces": ["application/json"],
    "paths": {
        "/login": {
            "post": {"tags": ["Authentication"], "summary": "Authenticate staff and set the session cookie", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/LoginResponse"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}]}
        },
        "/logout": {
            "post": {"tags": ["Authentication"], "summary": "End the current session", "responses": {"200": {"description": "OK"}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/auth/session": {
            "get": {"tags": ["Authentication"], "summary": "Current session identity", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SessionIdentity"}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/setup": {
            "get": {"tags": ["Setup"], "summary": "First-run status", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/SetupStatus"}}}},
            "post": {"tags": ["Setup"], "summary": "Create the first administrator", "responses": {"201": {"description": "OK"}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "409": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/SetupRequest"}}]}
        },
        "/dashboard": {
            "get": {"tags": ["Dashboard"], "summary": "Dashboard counts", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/DashboardSummary"}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/staff": {
            "get": {"tags": ["Staff"], "summary": "List staff (encrypted)", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/EncryptedPayload"}}}, "parameters": [{"in": "query", "name": "role", "type": "string", "description": ""}, {"in": "query", "name": "isActive", "type": "boolean", "description": ""}, {"in": "query", "name": "search", "type": "string", "description": ""}]},
            "post": {"tags": ["Staff"], "summary": "Create staff from an encrypted payload", "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/StaffSummary"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "409": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/EncryptedPayload"}}]}
        },
        "/staff/add_staff": {
            "post": {"tags": ["Staff"], "summary": "Create staff", "responses": {"201": {"description": "OK"}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "403": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "409": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/CreateStaffRequest"}}]}
        },
        "/profile/update_info": {
            "post": {"tags": ["Profile"], "summary": "Update email or password", "responses": {"200": {"description": "OK"}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "409": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/UpdateInfoRequest"}}]}
        },
        "/update_profile_picture": {
            "get": {"tags": ["Profile"], "summary": "Current profile picture", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ProfilePicture"}}}},
            "post": {"tags": ["Profile"], "summary": "Set profile picture", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ProfilePicture"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/ProfilePictureRequest"}}]}
        },
        "/public_url": {
            "get": {"tags": ["Profile"], "summary": "Resolve a picture id", "responses": {"200": {"description": "OK"}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}, "parameters": [{"in": "query", "name": "id", "type": "string", "description": ""}]}
        },
        "/pic_api": {
            "get": {"tags": ["Media"], "summary": "Resolve an uploaded picture", "responses": {"200": {"description": "OK"}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "503": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}, "parameters": [{"in": "query", "name": "public_id", "type": "string", "description": ""}]},
            "post": {"tags": ["Media"], "summary": "Upload a profile picture", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/MediaUploadResponse"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "413": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "503": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}, "parameters": [{"in": "formData", "name": "file", "type": "file", "required": true}], "consumes": ["multipart/form-data"]}
        },
        "/settings": {
            "get": {"tags": ["Settings"], "summary": "Read settings", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Settings"}}}},
            "post": {"tags": ["Settings"], "summary": "Save settings", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Settings"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/SettingsRequest"}}]},
            "put": {"tags": ["Settings"], "summary": "Save settings", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Settings"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/SettingsRequest"}}]}
        },
        "/academic-terms": {
            "get": {"tags": ["Terms"], "summary": "List academic terms", "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/AcademicTerm"}}}}},
            "post": {"tags": ["Terms"], "summary": "Create academic term", "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/AcademicTerm"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/TermRequest"}}]}
        },
        "/academic-terms/active": {
            "get": {"tags": ["Terms"], "summary": "Get active term", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/AcademicTerm"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}}
        },
        "/academic-terms/{id}": {
            "put": {"tags": ["Terms"], "summary": "Update academic term", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/AcademicTerm"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true, "description": ""}, {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/TermRequest"}}]},
            "delete": {"tags": ["Terms"], "summary": "Delete academic term", "responses": {"204": {"description": "OK"}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "409": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "412": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true, "description": ""}]}
        },
        "/academic-terms/{id}/activate": {
            "post": {"tags": ["Terms"], "summary": "Activate academic term", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/AcademicTerm"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true, "description": ""}]}
        },
        "/courses": {
            "get": {"tags": ["Catalog"], "summary": "List courses", "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Course"}}}}},
            "post": {"tags": ["Catalog"], "summary": "Create course", "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/Course"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "409": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/CourseRequest"}}]}
        },
        "/courses/{id}": {
            "delete": {"tags": ["Catalog"], "summary": "Delete course", "responses": {"204": {"description": "OK"}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "409": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true, "description": ""}]}
        },
        "/year-levels": {
            "get": {"tags": ["Catalog"], "summary": "List year levels", "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/YearLevel"}}}}},
            "post": {"tags": ["Catalog"], "summary": "Create year level", "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/YearLevel"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "409": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/YearLevelRequest"}}]}
        },
        "/sections": {
            "get": {"tags": ["Catalog"], "summary": "List sections", "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Section"}}}}, "parameters": [{"in": "query", "name": "courseId", "type": "string", "description": ""}, {"in": "query", "name": "yearLevelId", "type": "string", "description": ""}, {"in": "query", "name": "academicTermId", "type": "string", "description": ""}]},
            "post": {"tags": ["Catalog"], "summary": "Create section", "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/Section"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/SectionRequest"}}]}
        },
        "/sections/{id}": {
            "delete": {"tags": ["Catalog"], "summary": "Delete section", "responses": {"204": {"description": "OK"}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "409": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true, "description": ""}]}
        },
        "/subjects": {
            "get": {"tags": ["Subjects"], "summary": "List subjects", "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Subject"}}}}, "parameters": [{"in": "query", "name": "yearLevelId", "type": "string", "description": ""}, {"in": "query", "name": "isActive", "type": "boolean", "description": ""}, {"in": "query", "name": "search", "type": "string", "description": ""}]},
            "post": {"tags": ["Subjects"], "summary": "Create subject", "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/Subject"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "409": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/CreateSubjectRequest"}}]}
        },
        "/subjects/{id}": {
            "patch": {"tags": ["Subjects"], "summary": "Update subject", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Subject"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "409": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true, "description": ""}, {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/UpdateSubjectRequest"}}]},
            "delete": {"tags": ["Subjects"], "summary": "Delete subject", "responses": {"204": {"description": "OK"}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "409": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true, "description": ""}]}
        },
        "/schedules": {
            "get": {"tags": ["Schedules"], "summary": "List schedules", "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/ScheduleDetail"}}}}, "parameters": [{"in": "query", "name": "academicTermId", "type": "string", "description": ""}, {"in": "query", "name": "teacherId", "type": "string", "description": ""}, {"in": "query", "name": "sectionId", "type": "string", "description": ""}, {"in": "query", "name": "subjectId", "type": "string", "description": ""}, {"in": "query", "name": "day", "type": "string", "description": ""}]},
            "post": {"tags": ["Schedules"], "summary": "Create schedule", "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/Schedule"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "409": {"description": "Schedule conflict", "schema": {"$ref": "#/definitions/ScheduleConflictError"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/ScheduleRequest"}}]}
        },
        "/schedules/{id}": {
            "put": {"tags": ["Schedules"], "summary": "Replace schedule", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Schedule"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "409": {"description": "Schedule conflict", "schema": {"$ref": "#/definitions/ScheduleConflictError"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true, "description": ""}, {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/ScheduleRequest"}}]},
            "delete": {"tags": ["Schedules"], "summary": "Delete schedule", "responses": {"204": {"description": "OK"}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}, "parameters": [{"in": "path", "name": "id", "type": "string", "required": true, "description": ""}]}
        },
        "/students": {
            "get": {"tags": ["Students"], "summary": "List students", "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Student"}}}, "401": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}, "parameters": [{"in": "query", "name": "search", "type": "string", "description": ""}, {"in": "query", "name": "course", "type": "string", "description": ""}, {"in": "query", "name": "yearLevel", "type": "string", "description": ""}, {"in": "query", "name": "section", "type": "string", "description": ""}, {"in": "query", "name": "page", "type": "integer", "description": ""}, {"in": "query", "name": "pageSize", "type": "integer", "description": ""}, {"in": "query", "name": "sort", "type": "string", "description": ""}, {"in": "query", "name": "order", "type": "string", "description": ""}]},
            "post": {"tags": ["Students"], "summary": "Register student", "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/Student"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "409": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}, "parameters": [{"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/CreateStudentRequest"}}]}
        },
        "/students/{studNo}": {
            "get": {"tags": ["Students"], "summary": "Get student", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Student"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}, "parameters": [{"in": "path", "name": "studNo", "type": "string", "required": true, "description": ""}]},
            "patch": {"tags": ["Students"], "summary": "Update student", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Student"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}, "parameters": [{"in": "path", "name": "studNo", "type": "string", "required": true, "description": ""}, {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/UpdateStudentRequest"}}]},
            "delete": {"tags": ["Students"], "summary": "Delete student", "responses": {"204": {"description": "OK"}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}, "parameters": [{"in": "path", "name": "studNo", "type": "string", "required": true, "description": ""}]}
        },
        "/students/{studNo}/subjects": {
            "get": {"tags": ["Grades"], "summary": "Enrolled subjects of a student", "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/EnrolledSubject"}}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}, "parameters": [{"in": "path", "name": "studNo", "type": "string", "required": true, "description": ""}, {"in": "query", "name": "academicTermId", "type": "string", "description": ""}]},
            "post": {"tags": ["Grades"], "summary": "Enroll a student in a subject", "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/EnrolledSubject"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "409": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}, "parameters": [{"in": "path", "name": "studNo", "type": "string", "required": true, "description": ""}, {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/EnrollRequest"}}]}
        },
        "/students/{studNo}/subjects/{subjectId}": {
            "delete": {"tags": ["Grades"], "summary": "Remove a subject from a student", "responses": {"204": {"description": "OK"}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}, "parameters": [{"in": "path", "name": "studNo", "type": "string", "required": true, "description": ""}, {"in": "path", "name": "subjectId", "type": "string", "required": true, "description": ""}, {"in": "query", "name": "academicTermId", "type": "string", "description": ""}]}
        },
        "/students/{studNo}/grades": {
            "put": {"tags": ["Grades"], "summary": "Record grades for one subject", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/EnrolledSubject"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}, "parameters": [{"in": "path", "name": "studNo", "type": "string", "required": true, "description": ""}, {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/GradeRequest"}}]}
        },
        "/students/{studNo}/report-card": {
            "get": {"tags": ["Reports"], "summary": "Download a report card", "responses": {"200": {"description": "OK", "schema": {"type": "file"}}, "400": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}, "404": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorBody"}}}, "parameters": [{"in": "path", "name": "studNo", "type": "string", "required": true, "description": ""}, {"in": "query", "name": "academicTermId", "type": "string", "description": ""}, {"in": "query", "name": "format", "type": "string", "description": "pdf or csv"}], "produces": ["application/pdf", "text/csv"]}
        },
        "/grade": {
            "get": {"tags": ["Grades"], "summary": "List grade rows", "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/EnrolledSubject"}}}}, "parameters": [{"in": "query", "name": "academicTermId", "type": "string", "description": ""}, {"in": "query", "name": "studNo", "type": "string", "description": ""}, {"in": "query", "name": "subjectId", "type": "string", "description": ""}]}
        }
    },
    "definitions": {
        "ErrorBody": {"type": "object", "properties": {"error": {"type": "string"}, "code": {"type": "string"}}},
        "LoginRequest": {"type": "object", "properties": {"username": {"type": "string"}, "password": {"type": "string"}}, "required": ["username", "password"]},
        "LoginResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "username": {"type": "string"}, "role": {"type": "string"}}},
        "SessionIdentity": {"type": "object", "properties": {"id": {"type": "string"}, "username": {"type": "string"}, "role": {"type": "string"}}},
        "SetupRequest": {"type": "object", "properties": {"username": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}, "firstName": {"type": "string"}, "lastName": {"type": "string"}}, "required": ["username", "email", "password"]},
        "SetupStatus": {"type": "object", "properties": {"needsSetup": {"type": "boolean"}, "staffCount": {"type": "integer"}}},
        "DashboardSummary": {"type": "object", "properties": {"staffName": {"type": "string"}, "role": {"type": "string"}, "studentCount": {"type": "integer"}, "scheduleCount": {"type": "integer"}, "staffCount": {"type": "integer"}, "generatedAt": {"type": "string"}}},
        "EncryptedPayload": {"type": "object", "properties": {"encryptedData": {"type": "string"}}, "required": ["encryptedData"]},
        "CreateStaffRequest": {"type": "object", "properties": {"username": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}, "role": {"type": "string", "enum": ["admin", "registrar", "teacher"]}, "firstName": {"type": "string"}, "lastName": {"type": "string"}, "pictureId": {"type": "string"}, "pictureUrl": {"type": "string"}}, "required": ["username", "email", "password", "role"]},
        "StaffSummary": {"type": "object", "properties": {"id": {"type": "string"}, "username": {"type": "string"}, "email": {"type": "string"}, "role": {"type": "string"}, "firstName": {"type": "string"}, "lastName": {"type": "string"}, "name": {"type": "string"}, "isActive": {"type": "boolean"}, "pictureUrl": {"type": "string"}}},
        "UpdateInfoRequest": {"type": "object", "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "ProfilePictureRequest": {"type": "object", "properties": {"pictureId": {"type": "string"}, "pictureUrl": {"type": "string"}}, "required": ["pictureId"]},
        "ProfilePicture": {"type": "object", "properties": {"pictureId": {"type": "string"}, "pictureUrl": {"type": "string"}}},
        "MediaUploadResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "data": {"type": "object", "properties": {"public_id": {"type": "string"}, "url": {"type": "string"}, "format": {"type": "string"}, "bytes": {"type": "integer"}}}}},
        "Settings": {"type": "object", "properties": {"id": {"type": "string"}, "staffId": {"type": "string"}, "theme": {"type": "string"}, "language": {"type": "string"}, "notifications": {"type": "boolean"}, "createdAt": {"type": "string"}, "updatedAt": {"type": "string"}}},
        "SettingsRequest": {"type": "object", "properties": {"theme": {"type": "string", "enum": ["light", "dark", "system"]}, "language": {"type": "string"}, "notifications": {"type": "boolean"}}},
        "AcademicTerm": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "startDate": {"type": "string"}, "endDate": {"type": "string"}, "isActive": {"type": "boolean"}}},
        "TermRequest": {"type": "object", "properties": {"name": {"type": "string"}, "startDate": {"type": "string"}, "endDate": {"type": "string"}, "isActive": {"type": "boolean"}}, "required": ["name", "startDate", "endDate"]},
        "Course": {"type": "object", "properties": {"id": {"type": "string"}, "code": {"type": "string"}, "name": {"type": "string"}, "totalUnits": {"type": "integer"}, "isActive": {"type": "boolean"}}},
        "CourseRequest": {"type": "object", "properties": {"code": {"type": "string"}, "name": {"type": "string"}, "totalUnits": {"type": "integer"}, "isActive": {"type": "boolean"}}, "required": ["code", "name"]},
        "YearLevel": {"type": "object", "properties": {"id": {"type": "string"}, "level": {"type": "integer"}, "name": {"type": "string"}}},
        "YearLevelRequest": {"type": "object", "properties": {"level": {"type": "integer"}, "name": {"type": "string"}}, "required": ["level", "name"]},
        "Section": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "courseId": {"type": "string"}, "yearLevelId": {"type": "string"}, "academicTermId": {"type": "string"}, "maxStudents": {"type": "integer"}, "isActive": {"type": "boolean"}}},
        "SectionRequest": {"type": "object", "properties": {"name": {"type": "string"}, "courseId": {"type": "string"}, "yearLevelId": {"type": "string"}, "academicTermId": {"type": "string"}, "maxStudents": {"type": "integer"}, "isActive": {"type": "boolean"}}, "required": ["name", "courseId", "yearLevelId", "academicTermId"]},
        "Subject": {"type": "object", "properties": {"id": {"type": "string"}, "code": {"type": "string"}, "name": {"type": "string"}, "units": {"type": "integer"}, "yearLevelId": {"type": "string"}, "isActive": {"type": "boolean"}}},
        "CreateSubjectRequest": {"type": "object", "properties": {"code": {"type": "string"}, "name": {"type": "string"}, "units": {"type": "integer"}, "yearLevelId": {"type": "string"}, "isActive": {"type": "boolean"}}, "required": ["code", "name", "yearLevelId"]},
        "UpdateSubjectRequest": {"type": "object", "properties": {"code": {"type": "string"}, "name": {"type": "string"}, "units": {"type": "integer"}, "yearLevelId": {"type": "string"}, "isActive": {"type": "boolean"}}},
        "Schedule": {"type": "object", "properties": {"id": {"type": "string"}, "subjectId": {"type": "string"}, "teacherId": {"type": "string"}, "academicTermId": {"type": "string"}, "sectionId": {"type": "string"}, "day": {"type": "string"}, "startTime": {"type": "string"}, "endTime": {"type": "string"}, "isActive": {"type": "boolean"}}},
        "ScheduleDetail": {"type": "object", "properties": {"id": {"type": "string"}, "subjectId": {"type": "string"}, "teacherId": {"type": "string"}, "academicTermId": {"type": "string"}, "sectionId": {"type": "string"}, "day": {"type": "string"}, "startTime": {"type": "string"}, "endTime": {"type": "string"}, "isActive": {"type": "boolean"}, "subjectCode": {"type": "string"}, "subjectName": {"type": "string"}, "teacherName": {"type": "string"}, "sectionName": {"type": "string"}}},
        "ScheduleRequest": {"type": "object", "properties": {"subjectId": {"type": "string"}, "teacherId": {"type": "string"}, "academicTermId": {"type": "string"}, "sectionId": {"type": "string"}, "day": {"type": "string"}, "startTime": {"type": "string"}, "endTime": {"type": "string"}, "isActive": {"type": "boolean"}}, "required": ["subjectId", "day", "startTime", "endTime"]},
        "ScheduleConflict": {"type": "object", "properties": {"scheduleId": {"type": "string"}, "dimension": {"type": "string", "enum": ["TEACHER", "SECTION"]}, "day": {"type": "string"}, "startTime": {"type": "string"}, "endTime": {"type": "string"}}},
        "ScheduleConflictError": {"type": "object", "properties": {"error": {"type": "string"}, "code": {"type": "string"}, "conflicts": {"type": "array", "items": {"$ref": "#/definitions/ScheduleConflict"}}}},
        "Student": {"type": "object", "properties": {"studNo": {"type": "string"}, "firstName": {"type": "string"}, "lastName": {"type": "string"}, "course": {"type": "string"}, "createdAt": {"type": "string"}, "updatedAt": {"type": "string"}, "middleName": {"type": "string"}, "gender": {"type": "string"}, "birthDate": {"type": "string"}, "birthPlace": {"type": "string"}, "address": {"type": "string"}, "houseNo": {"type": "string"}, "street": {"type": "string"}, "barangay": {"type": "string"}, "city": {"type": "string"}, "province": {"type": "string"}, "zipCode": {"type": "string"}, "contactNumber": {"type": "string"}, "email": {"type": "string"}, "pictureId": {"type": "string"}, "pictureUrl": {"type": "string"}, "yearLevel": {"type": "string"}, "section": {"type": "string"}, "guardian": {"type": "string"}, "guardianPhone": {"type": "string"}, "mother": {"type": "string"}, "father": {"type": "string"}, "nationality": {"type": "string"}, "religion": {"type": "string"}, "civilStatus": {"type": "string"}, "age": {"type": "integer"}}},
        "CreateStudentRequest": {"type": "object", "properties": {"studNo": {"type": "string"}, "firstName": {"type": "string"}, "lastName": {"type": "string"}, "course": {"type": "string"}, "middleName": {"type": "string"}, "gender": {"type": "string"}, "birthDate": {"type": "string"}, "birthPlace": {"type": "string"}, "address": {"type": "string"}, "houseNo": {"type": "string"}, "street": {"type": "string"}, "barangay": {"type": "string"}, "city": {"type": "string"}, "province": {"type": "string"}, "zipCode": {"type": "string"}, "contactNumber": {"type": "string"}, "email": {"type": "string"}, "pictureId": {"type": "string"}, "pictureUrl": {"type": "string"}, "yearLevel": {"type": "string"}, "section": {"type": "string"}, "guardian": {"type": "string"}, "guardianPhone": {"type": "string"}, "mother": {"type": "string"}, "father": {"type": "string"}, "nationality": {"type": "string"}, "religion": {"type": "string"}, "civilStatus": {"type": "string"}, "age": {"type": "integer"}}, "required": ["studNo", "firstName", "lastName", "course"]},
        "UpdateStudentRequest": {"type": "object", "properties": {"firstName": {"type": "string"}, "lastName": {"type": "string"}, "course": {"type": "string"}, "middleName": {"type": "string"}, "gender": {"type": "string"}, "birthDate": {"type": "string"}, "birthPlace": {"type": "string"}, "address": {"type": "string"}, "houseNo": {"type": "string"}, "street": {"type": "string"}, "barangay": {"type": "string"}, "city": {"type": "string"}, "province": {"type": "string"}, "zipCode": {"type": "string"}, "contactNumber": {"type": "string"}, "email": {"type": "string"}, "pictureId": {"type": "string"}, "pictureUrl": {"type": "string"}, "yearLevel": {"type": "string"}, "section": {"type": "string"}, "guardian": {"type": "string"}, "guardianPhone": {"type": "string"}, "mother": {"type": "string"}, "father": {"type": "string"}, "nationality": {"type": "string"}, "religion": {"type": "string"}, "civilStatus": {"type": "string"}, "age": {"type": "integer"}}},
        "EnrolledSubject": {"type": "object", "properties": {"id": {"type": "string"}, "gradeId": {"type": "string"}, "subjectId": {"type": "string"}, "studNo": {"type": "string"}, "academicTermId": {"type": "string"}, "subjectCode": {"type": "string"}, "subjectName": {"type": "string"}, "units": {"type": "integer"}, "prelim": {"type": "number"}, "midterm": {"type": "number"}, "semifinals": {"type": "number"}, "finals": {"type": "number"}, "combined": {"type": "number"}, "remarks": {"type": "string"}}},
        "EnrollRequest": {"type": "object", "properties": {"subjectId": {"type": "string"}, "academicTermId": {"type": "string"}}, "required": ["subjectId"]},
        "GradeRequest": {"type": "object", "properties": {"subjectId": {"type": "string"}, "academicTermId": {"type": "string"}, "prelim": {"type": "number"}, "midterm": {"type": "number"}, "semifinals": {"type": "number"}, "finals": {"type": "number"}, "combined": {"type": "number"}, "remarks": {"type": "string"}}, "required": ["subjectId"]}
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
