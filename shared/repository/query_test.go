package repository

import (
	"hotelier/shared/dto"
	"testing"

	"github.com/stretchr/testify/assert"
)

type audit struct {
	CreatedBy string `db:"created_by"`
}

type stay struct {
	ID        int64  `db:"id"         readonly:"true"`
	BookingID int64  `db:"booking_id"`
	GuestName string `db:"guest_name" table:"guests" column:"full_name"`
	audit
}

func (stay) GetJoinQuery() string {
	return "JOIN guests ON guests.id = stays.guest_id"
}

func TestSchema_Queries(t *testing.T) {
	s := newSchema[stay]("stays", "id")

	assert.Equal(t, []string{"booking_id", "created_by"}, s.writable)
	assert.Equal(t, "stays.id, stays.booking_id, guests.full_name AS guest_name, stays.created_by", s.selectList(nil))
	assert.Equal(t, "stays.booking_id", s.selectList([]string{"booking_id"}))

	assert.Equal(t, "INSERT INTO stays (booking_id, created_by) VALUES (:booking_id, :created_by)", s.insertQuery(false))
	assert.Equal(t, "INSERT INTO stays (booking_id, created_by) VALUES (:booking_id, :created_by) RETURNING id", s.insertQuery(true))

	assert.Equal(t,
		"SELECT stays.booking_id FROM stays JOIN guests ON guests.id = stays.guest_id WHERE (id = :id) FOR UPDATE",
		s.selectQuery("WHERE (id = :id)", []string{"booking_id"}, "FOR UPDATE"))
	assert.Equal(t, "SELECT COUNT(stays.id) FROM stays JOIN guests ON guests.id = stays.guest_id", s.countQuery(""))
	assert.Equal(t, "UPDATE stays SET booking_id = :booking_id, created_by = :created_by WHERE (id = :id)",
		s.updateQuery(map[string]any{"created_by": "a", "booking_id": 1}, "WHERE (id = :id)"))
}

func TestWhereClause(t *testing.T) {
	where, args := whereClause(dto.FilterGroup{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = whereClause(dto.FilterGroup{Filters: []any{
		dto.Filter{Field: "id", Operator: dto.FilterOperatorEq, Value: int64(4), Table: "stays"},
	}})
	assert.Equal(t, "WHERE (stays.id = :id)", where)
	assert.Equal(t, map[string]any{"id": int64(4)}, args)
}

func TestPageClause(t *testing.T) {
	tests := []struct {
		name     string
		params   dto.QueryParams
		want     string
		wantArgs map[string]any
	}{
		{name: "nothing", params: dto.QueryParams{}, want: "", wantArgs: map[string]any{}},
		{
			name:     "sorted page",
			params:   dto.QueryParams{Page: 3, Limit: 10, SortBy: "check_in", SortDir: dto.SortDirDesc},
			want:     "ORDER BY check_in DESC LIMIT :limit OFFSET :offset",
			wantArgs: map[string]any{"limit": 10, "offset": 20},
		},
		{
			name:     "limit only",
			params:   dto.QueryParams{Limit: 5},
			want:     "LIMIT :limit",
			wantArgs: map[string]any{"limit": 5},
		},
		{
			name:     "sort without direction is ignored",
			params:   dto.QueryParams{SortBy: "id"},
			want:     "",
			wantArgs: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := map[string]any{}

			assert.Equal(t, tt.want, pageClause(tt.params, args))
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
