package errors

import "net/http"

var ErrTimerUnavailable = &Exception{
	Message:    "timer could not be scheduled",
	StatusCode: http.StatusServiceUnavailable,
}
