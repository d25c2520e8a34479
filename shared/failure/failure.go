package failure

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure carries an HTTP status code alongside the message returned to the client.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

func (e *Failure) Error() string {
	return e.Message
}

// New returns a Failure with an arbitrary status code.
func New(code int, msg string) error {
	return &Failure{Code: code, Message: msg}
}

// BadRequest wraps err as a 400. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, msg)
}

// InvalidParam reports a malformed path or query parameter, e.g. "id must be a positive integer".
func InvalidParam(name, expected string) error {
	return New(http.StatusBadRequest, fmt.Sprintf("%s must be %s", name, expected))
}

func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, msg)
}

// InternalError wraps err as a 500. A nil err stays nil.
func InternalError(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusInternalServerError, err.Error())
}

// NotFound returns a 404 whose message names the missing entity.
func NotFound(entityName string) error {
	return New(http.StatusNotFound, entityName)
}

// Conflict is used for double bookings, duplicate codes and rows still referenced elsewhere.
func Conflict(msg string) error {
	return New(http.StatusConflict, msg)
}

func Forbidden(msg string) error {
	return New(http.StatusForbidden, msg)
}

// GetCode returns the status code of the first Failure in err's chain, 500 otherwise.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// Is reports whether err carries the given status code.
func Is(err error, code int) bool {
	return err != nil && GetCode(err) == code
}
