// Package constant holds the names shared across layers: columns, error codes,
// formats, tracing scopes and HTTP vocabulary.
package constant

import "time"

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const (
	FieldCreatedAt  = "created_at"
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

// Postgres SQLSTATE codes mapped to 409 responses.
const (
	PqErrorCodeUniqueViolation    = "23505"
	PqErrorCodeFkViolation        = "23503"
	PqErrorCodeExclusionViolation = "23P01"
)

const (
	DateFormat     = time.RFC3339
	DayFormat      = "2006-01-02"
	DateTimeFormat = "2006-01-02T15:04"
)

const (
	OtelHandlerScopeName    = "handler"
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelS3ScopeName         = "s3"
	OtelKafkaScopeName      = "kafka"

	OtelQueryAttributeKey = "query"
)

const (
	Asterix = "*"
	Empty   = ""
)
