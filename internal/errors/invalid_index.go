package errors

import "net/http"

var ErrInvalidIndex = &Exception{
	Message:    "index must be a non-negative integer",
	StatusCode: http.StatusBadRequest,
}
