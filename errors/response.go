package errors

// ErrorResponse is the JSON body of a failed admin API request.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody is the error object inside an ErrorResponse.
type ErrorBody struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ToResponse renders e for an API client. The cause is not exposed.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Error: ErrorBody{Code: e.Code, Message: e.Message, Details: e.Details}}
}

// Respond maps any error to an HTTP status and response body. Errors that
// are not AppErrors are reported as internal.
func Respond(err error) (int, ErrorResponse) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = Internal(err)
	}
	return HTTPStatus(appErr.Code), appErr.ToResponse()
}
