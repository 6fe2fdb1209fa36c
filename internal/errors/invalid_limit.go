package errors

import "net/http"

var ErrInvalidLimit = &Exception{
	Message:    "limit must be a positive integer",
	StatusCode: http.StatusBadRequest,
}
