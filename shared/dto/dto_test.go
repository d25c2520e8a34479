package dto_test

import (
	"hotelier/shared/constant"
	"hotelier/shared/dto"
	"hotelier/shared/model"
	"hotelier/shared/timezone"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	modifiedAt := time.Date(2024, 3, 2, 18, 0, 0, 0, time.UTC)

	metadata := dto.Metadata{}
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "frontdesk@hotel.test",
		ModifiedBy: "manager@hotel.test",
	})

	assert.Equal(t, timezone.Format(createdAt, constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, timezone.Format(modifiedAt, constant.DateFormat), metadata.ModifiedAt)
	assert.Equal(t, "frontdesk@hotel.test", metadata.CreatedBy)
	assert.Equal(t, "manager@hotel.test", metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		query          map[string]string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:     "all parameters",
			query:    map[string]string{"page": "2", "limit": "20", "sort_by": "check_in", "sort_dir": "desc"},
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "check_in", SortDir: dto.SortDirDesc},
		},
		{
			name:           "defaults when empty",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "nothing without defaults",
			expected: dto.QueryParams{},
		},
		{
			name:           "invalid and non-positive numbers fall back",
			query:          map[string]string{"page": "abc", "limit": "-5"},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "limit is capped",
			query:    map[string]string{"limit": "5000"},
			expected: dto.QueryParams{Limit: constant.MaxValueLimit},
		},
		{
			name:     "sort direction defaults to ascending when a column is given",
			query:    map[string]string{"sort_by": "bookings.check_in"},
			expected: dto.QueryParams{SortBy: "bookings.check_in", SortDir: dto.SortDirAsc},
		},
		{
			name:     "sort column with sql is ignored",
			query:    map[string]string{"sort_by": "id; DROP TABLE bookings", "sort_dir": "asc"},
			expected: dto.QueryParams{SortDir: dto.SortDirAsc},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{}
			for key, value := range tt.query {
				values.Set(key, value)
			}

			req := httptest.NewRequest("GET", "/v1/bookings?"+values.Encode(), nil)

			params := dto.QueryParams{}
			params.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "like escapes wildcards",
			filter:    dto.Filter{Field: "full_name", Operator: dto.FilterOperatorLike, Value: "50%_off", Table: "guests"},
			wantWhere: "LOWER(guests.full_name) LIKE LOWER(:full_name)",
			wantArgs:  map[string]any{"full_name": `%50\%\_off%`},
		},
		{
			name:      "empty in matches nothing",
			filter:    dto.Filter{Field: "booking_id", Operator: dto.FilterOperatorIn, Value: []int64{}},
			wantWhere: "FALSE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "in expands slices",
			filter:    dto.Filter{Field: "status", Operator: dto.FilterOperatorIn, Value: []string{"booked", "checked_in"}},
			wantWhere: "status IN (:status_0, :status_1)",
			wantArgs:  map[string]any{"status_0": "booked", "status_1": "checked_in"},
		},
		{
			name:      "in binds a scalar",
			filter:    dto.Filter{Field: "room_id", Operator: dto.FilterOperatorIn, Value: int64(7)},
			wantWhere: "room_id IN (:room_id)",
			wantArgs:  map[string]any{"room_id": int64(7)},
		},
		{
			name:      "arg name overrides field",
			filter:    dto.Filter{ArgName: "window_end", Field: "check_in", Operator: dto.FilterOperatorLessEq, Value: 5, Table: "booked_rooms"},
			wantWhere: "booked_rooms.check_in <= :window_end",
			wantArgs:  map[string]any{"window_end": 5},
		},
		{
			name:      "not equal",
			filter:    dto.Filter{Field: "status", Operator: dto.FilterOperatorNotEq, Value: "cancelled", Table: "booked_halls"},
			wantWhere: "booked_halls.status != :status",
			wantArgs:  map[string]any{"status": "cancelled"},
		},
		{
			name:      "unknown operator renders nothing",
			filter:    dto.Filter{Field: "status", Operator: "between", Value: 1},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "booking_status", Operator: dto.FilterOperatorEq, Value: "confirmed"},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "booking_type", Operator: dto.FilterOperatorEq, Value: "room"},
					dto.Filter{Field: "guest_id", Operator: dto.FilterOperatorEq, Value: int64(3)},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(booking_status = :booking_status AND (booking_type = :booking_type OR guest_id = :guest_id))", where)
	assert.Equal(t, map[string]any{"booking_status": "confirmed", "booking_type": "room", "guest_id": int64(3)}, args)

	empty := dto.FilterGroup{}
	where, _ = empty.GetWhereClause()
	assert.Empty(t, where)

	nested := dto.FilterGroup{Filters: []any{
		dto.FilterGroup{},
		dto.Filter{Field: "room_id", Operator: dto.FilterOperatorEq, Value: int64(2)},
	}}
	where, _ = nested.GetWhereClause()
	assert.Equal(t, "(room_id = :room_id)", where)
}
