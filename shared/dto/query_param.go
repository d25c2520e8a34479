package dto

import (
	"hotelier/shared/constant"
	"net/http"
	"regexp"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// sort_by is spliced into ORDER BY, so only bare or table-qualified column names pass.
var sortColumn = regexp.MustCompile(`^[a-z_]+(\.[a-z_]+)?$`)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest reads page, limit, sort_by and sort_dir from the query string.
// With defaultRequest set, missing page and limit fall back to the list defaults.
// Limit is capped at constant.MaxValueLimit and an unknown sort_by is ignored.
func (q *QueryParams) FromRequest(r *http.Request, defaultRequest bool) {
	queryParams := r.URL.Query()

	if page, err := strconv.Atoi(queryParams.Get(constant.RequestParamPage)); err == nil && page > 0 {
		q.Page = page
	}

	if limit, err := strconv.Atoi(queryParams.Get(constant.RequestParamLimit)); err == nil && limit > 0 {
		q.Limit = min(limit, constant.MaxValueLimit)
	}

	if sortBy := strings.ToLower(queryParams.Get(constant.RequestParamSortBy)); sortColumn.MatchString(sortBy) {
		q.SortBy = sortBy
	}

	switch sortDir := strings.ToUpper(queryParams.Get(constant.RequestParamSortDir)); sortDir {
	case SortDirAsc, SortDirDesc:
		q.SortDir = sortDir
	default:
		if q.SortBy != "" {
			q.SortDir = SortDirAsc
		}
	}

	if defaultRequest {
		if q.Page == 0 {
			q.Page = constant.DefaultValuePage
		}

		if q.Limit == 0 {
			q.Limit = constant.DefaultValueLimit
		}
	}
}
