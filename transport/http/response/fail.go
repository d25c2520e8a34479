package response

import (
	"hotelier/shared/failure"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type errorTracer interface {
	TraceError(err error)
}

// Fail traces err on scope, logs it and writes the error response. Server errors are logged at
// error level, client errors at debug. fields are zerolog key/value pairs.
func Fail(w http.ResponseWriter, scope errorTracer, err error, action string, fields ...any) {
	scope.TraceError(err)

	var event *zerolog.Event
	if failure.GetCode(err) >= http.StatusInternalServerError {
		event = log.Error()
	} else {
		event = log.Debug()
	}

	if len(fields) > 0 {
		event = event.Fields(fields)
	}

	event.Err(err).Msg("failed to " + action)

	WithError(w, err)
}
