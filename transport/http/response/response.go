package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"hotelier/shared/constant"
	"hotelier/shared/failure"
	"hotelier/shared/logger"
	"net/http"
)

const internalErrorMessage = "internal server error"

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Message: &message})
}

// WithJSON wraps payload in {"data": ...}.
func WithJSON(writer http.ResponseWriter, code int, payload any) {
	response(writer, code, Data[any]{Data: &payload})
}

// WithError writes {"error": ...} with the failure's status code. Errors that are not a Failure
// are logged and answered with a generic 500 so driver messages never reach the client.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	errMsg := err.Error()

	var fail *failure.Failure
	if code == http.StatusInternalServerError && !errors.As(err, &fail) {
		logger.ErrorWithStack(err)

		errMsg = internalErrorMessage
	}

	response(writer, code, Error{Error: &errMsg})
}

// WithHTML writes a rendered document such as an invoice.
func WithHTML(writer http.ResponseWriter, code int, body string) {
	write(writer, code, constant.ContentTypeHTML, []byte(body))
}

// WithAttachment sends body as a download named filename.
func WithAttachment(writer http.ResponseWriter, contentType, filename string, body []byte) {
	writer.Header().Set(constant.RequestHeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	write(writer, http.StatusOK, contentType, body)
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func response(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	write(writer, code, constant.ContentTypeJSON, body)
}

func write(writer http.ResponseWriter, code int, contentType string, body []byte) {
	writer.Header().Set(constant.RequestHeaderContentType, contentType)
	writer.WriteHeader(code)

	if _, err := writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
