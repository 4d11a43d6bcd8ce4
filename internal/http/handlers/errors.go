// Package handlers defines the HTTP-layer error codes used across all API
// endpoints.
//
// Codes are lowercase snake_case and stable; clients branch on them rather
// than on messages. Every error response carries exactly one of these codes
// inside the ErrorResponse envelope:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "question_not_found",
//	  "message": "question not found"
//	}
package handlers

const (
	// Application error kinds.
	ErrCodeParse             = "parse_error"
	ErrCodeMissingParameters = "missing_parameters"
	ErrCodeQuestionNotFound  = "question_not_found"
	ErrCodeDatabaseQuery     = "database_query_error"
	ErrCodeExternalAPI       = "external_api_error"
	ErrCodeModerationClient  = "moderation_client_error"
	ErrCodeModerationServer  = "moderation_server_error"

	// Transport-level conditions.
	ErrCodeForbidden        = "forbidden"
	ErrCodeUnprocessable    = "unprocessable_entity"
	ErrCodeNotFound         = "not_found"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeInternal         = "internal_error"
)
