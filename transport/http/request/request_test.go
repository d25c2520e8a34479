package request_test

import (
	"hotelier/shared/failure"
	"hotelier/transport/http/request"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type depositBody struct {
	Method string `json:"payment_method" validate:"required"`
}

func TestBody(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{name: "valid", body: `{"payment_method":"cash"}`},
		{name: "empty body", body: "", wantCode: http.StatusBadRequest},
		{name: "rule violation", body: `{}`, wantCode: http.StatusBadRequest},
		{name: "not json", body: `cash`, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/bookings/1/deposit", strings.NewReader(tt.body))
			if tt.body == "" {
				req.Body = http.NoBody
			}

			got, err := request.Body[depositBody](req)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "cash", got.Method)
		})
	}
}

func TestID(t *testing.T) {
	var (
		id  int64
		err error
	)

	router := chi.NewRouter()
	router.Get("/v1/rooms/{id}", func(_ http.ResponseWriter, r *http.Request) {
		id, err = request.ID(r)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/rooms/12", nil))
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/rooms/-3", nil))
	assert.EqualError(t, err, "id must be a positive integer")
}

func TestQueryParams(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/calendar?guest_id=9&day=2024-05-01&bad_day=05-01", nil)

	guestID, err := request.QueryInt64(req, "guest_id")
	require.NoError(t, err)
	assert.Equal(t, int64(9), guestID)

	missing, err := request.QueryInt64(req, "room_id")
	require.NoError(t, err)
	assert.Zero(t, missing)

	day, err := request.QueryDay(req, "day")
	require.NoError(t, err)
	assert.Equal(t, 2024, day.Year())
	assert.Equal(t, 1, day.Day())

	_, err = request.QueryDay(req, "bad_day")
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	optional, err := request.OptionalDay(req, "to")
	require.NoError(t, err)
	assert.Nil(t, optional)
}
