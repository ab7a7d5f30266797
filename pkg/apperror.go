package pkg

// AppError is the uniform error envelope surfaced by HTTP handlers.
//
// Every error response carries a stable machine code, a human-readable
// message, an HTTP status and, where useful, a remediation hint (e.g. which
// credential is missing). Bodies always include success=false so callers can
// parse responses uniformly.

type AppError struct {
	Code       string
	Message    string
	Hint       string
	Err        error
	HTTPStatus int
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NewDomainErrorSimple(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

func NewDomainError(code, message string, err error, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, Err: err, HTTPStatus: httpStatus}
}

func (e *AppError) WithHint(hint string) *AppError {
	e.Hint = hint
	return e
}

// ToHTTPError renders the JSON body for this error.
func (e *AppError) ToHTTPError() map[string]any {
	body := map[string]any{
		"success": false,
		"code":    e.Code,
		"error":   e.Message,
	}
	if e.Hint != "" {
		body["hint"] = e.Hint
	}
	return body
}
