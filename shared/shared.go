// Package shared holds helpers used by every domain service: id parsing, paging,
// partial-update field maps, id filters and cache keys.
package shared

import (
	"context"
	"encoding/json"
	"fmt"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	"hotelier/shared/dto"
	"hotelier/shared/timezone"
	"reflect"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// ConvertStringToBool parses an optional boolean query value. Empty or malformed input yields nil.
func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Warn().Err(err).Str("value", value).Msg("ignoring malformed boolean")

		return nil
	}

	return &parsed
}

func ConvertStringToInt64(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid identifier %q: %w", value, err)
	}

	return id, nil
}

// CalculateTotalPage is the number of pages of size limit needed for total rows, never less than one.
func CalculateTotalPage(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}

	return (total + limit - 1) / limit
}

// TransformFields maps the non-zero db-tagged fields of data to a partial update and stamps
// modified_at and modified_by.
func TransformFields(data any, username string) map[string]any {
	value := reflect.ValueOf(data)
	fields := map[string]any{
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: username,
	}

	for i := range value.NumField() {
		column := value.Type().Field(i).Tag.Get("db")
		if column == "" || column == "-" || value.Field(i).IsZero() {
			continue
		}

		fields[column] = value.Field(i).Interface()
	}

	return fields
}

func FilterByID(id any, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{Filters: []any{
		dto.Filter{Field: fieldID, Operator: dto.FilterOperatorEq, Value: id, Table: table},
	}}
}

// BuildCacheKey joins a prefix and its parts with ':'.
func BuildCacheKey(prefix string, parts ...any) string {
	var key strings.Builder

	key.WriteString(prefix)

	for _, part := range parts {
		key.WriteByte(':')
		fmt.Fprint(&key, part)
	}

	return key.String()
}

// BuildCacheKeyWithQuery derives a deterministic key from paging params and the filter tree.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	encoded, err := json.Marshal(args)
	if err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to encode filter arguments for cache key")
	}

	return BuildCacheKey(prefix, params.Page, params.Limit, params.SortBy, params.SortDir, where, string(encoded))
}

// InvalidateCaches removes every key stored under prefix.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

// Actor returns the email of the authenticated operator, or ContextAnonymous for public requests.
func Actor(ctx context.Context) string {
	if email, ok := ctx.Value(constant.ContextKeyUserEmail).(string); ok && email != "" {
		return email
	}

	return constant.ContextAnonymous
}
