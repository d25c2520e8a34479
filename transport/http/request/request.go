package request

import (
	"fmt"
	"hotelier/shared"
	"hotelier/shared/constant"
	"hotelier/shared/failure"
	"hotelier/shared/timezone"
	"hotelier/shared/validator"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Body decodes the JSON request body into a T and validates it.
func Body[T any](r *http.Request) (T, error) {
	var body T

	if r.Body == nil || r.Body == http.NoBody {
		return body, failure.BadRequestFromString("request body is required")
	}

	if err := validator.Validate(r.Body, &body); err != nil {
		return body, err //nolint:wrapcheck
	}

	return body, nil
}

// ID parses the {id} path parameter as a positive int64.
func ID(r *http.Request) (int64, error) {
	return PathInt64(r, constant.RequestParamID)
}

func PathInt64(r *http.Request, name string) (int64, error) {
	value, err := shared.ConvertStringToInt64(chi.URLParam(r, name))
	if err != nil || value <= 0 {
		return 0, failure.InvalidParam(name, "a positive integer")
	}

	return value, nil
}

// QueryInt64 returns 0 when the parameter is absent.
func QueryInt64(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}

	value, err := shared.ConvertStringToInt64(raw)
	if err != nil {
		return 0, failure.InvalidParam(name, "an integer")
	}

	return value, nil
}

// QueryStamp parses an RFC3339 or minute-precision timestamp, falling back to now when absent.
func QueryStamp(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return timezone.Now(), nil
	}

	value, err := timezone.ParseStamp(raw)
	if err != nil {
		return time.Time{}, failure.BadRequest(fmt.Errorf("%s: %w", name, err))
	}

	return value, nil
}

// QueryDay parses a YYYY-MM-DD parameter, falling back to today when absent.
func QueryDay(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return timezone.Now(), nil
	}

	value, err := timezone.Parse(constant.DayFormat, raw)
	if err != nil {
		return time.Time{}, failure.InvalidParam(name, "formatted as "+constant.DayFormat)
	}

	return value, nil
}

// OptionalDay is QueryDay without the fallback.
func OptionalDay(r *http.Request, name string) (*time.Time, error) {
	if r.URL.Query().Get(name) == "" {
		return nil, nil
	}

	value, err := QueryDay(r, name)
	if err != nil {
		return nil, err
	}

	return &value, nil
}
