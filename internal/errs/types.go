package errs

import (
	"net/http"
)

// Fixed client-facing messages. Clients match on these strings, so they
// must not change between releases.
const (
	MsgMissingAttributes = "The request body is missing at least one of the required attributes"
	MsgInvalidAttributes = "The request body contains at least one invalid attribute value"
	MsgInvalidPagination = "The offset and limit query parameters must be integers with offset >= 0 and 1 <= limit <= 100"
	MsgBusinessNotFound  = "No business with this business_id exists"
	MsgReviewNotFound    = "No review with this review_id exists"
	MsgReviewConflict    = "You have already submitted a review for this business. You can update your previous review, or delete it and submit a new review"
	MsgTooManyRequests   = "Too many requests"
	MsgRouteNotFound     = "Route not found"
)

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
//   - code: optional custom code string (if nil, defaults to "BAD_REQUEST")
//   - errors: optional slice of field errors, logged alongside the request
func NewBadRequestError(message string, code *string, errors []FieldError) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  http.StatusBadRequest,
		Errors:  errors,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
//
// Supports an optional custom code similar to NewBadRequestError.
func NewNotFoundError(message string, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  http.StatusNotFound,
	}
}

// NewConflictError creates a 409 Conflict HTTPError.
func NewConflictError(message string, code *string) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusConflict))
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  http.StatusConflict,
	}
}

// NewTooManyRequestsError creates a 429 Too Many Requests HTTPError.
func NewTooManyRequestsError() *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusTooManyRequests)),
		Message: MsgTooManyRequests,
		Status:  http.StatusTooManyRequests,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is the generic status text, never the real internal error.
// Callers attach a friendlier message with WithMessage and the real error
// with WithCause so it is logged but not leaked.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message: http.StatusText(http.StatusInternalServerError),
		Status:  http.StatusInternalServerError,
	}
}

// NewMissingAttributesError is the 400 returned whenever a required body
// attribute is absent.
func NewMissingAttributesError(fieldErrors []FieldError) *HTTPError {
	code := "MISSING_ATTRIBUTES"
	return NewBadRequestError(MsgMissingAttributes, &code, fieldErrors)
}

// NewBusinessNotFoundError is the 404 for an unknown business id.
func NewBusinessNotFoundError() *HTTPError {
	code := "BUSINESS_NOT_FOUND"
	return NewNotFoundError(MsgBusinessNotFound, &code)
}

// NewReviewNotFoundError is the 404 for an unknown review id.
func NewReviewNotFoundError() *HTTPError {
	code := "REVIEW_NOT_FOUND"
	return NewNotFoundError(MsgReviewNotFound, &code)
}

// NewReviewConflictError is the 409 for a second review of the same
// business by the same user.
func NewReviewConflictError() *HTTPError {
	code := "REVIEW_ALREADY_EXISTS"
	return NewConflictError(MsgReviewConflict, &code)
}
