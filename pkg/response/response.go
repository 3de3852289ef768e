package response

import "backend/pkg/apperror"

// Response is the standard API envelope.
type Response struct {
	Status     string      `json:"status"` // "success" or "error"
	StatusCode int         `json:"status_code"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Success wraps data in a success envelope.
func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Data:       data,
	}
}

// Error wraps an error message in an error envelope.
func Error(statusCode int, err string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Error:      err,
	}
}

// FromError builds an error envelope with the status code derived from the
// error kind, so handlers never pick status codes by hand.
func FromError(err error) (int, Response) {
	code := apperror.HTTPStatus(err)
	return code, Error(code, err.Error())
}
