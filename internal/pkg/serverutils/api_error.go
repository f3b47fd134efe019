package serverutils

// ApiError is a caller-facing rejection; anything else escaping a handler is
// treated as an internal error by the middleware.
type ApiError struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
}

func (e *ApiError) Error() string {
	return e.Message
}

func NewApiError(code int, message string) *ApiError {
	return &ApiError{
		Code:    code,
		Message: message,
	}
}
