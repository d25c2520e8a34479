package permissions_test

import (
	"hotelier/permissions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_EmbeddedDocument(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		name      string
		path      string
		method    string
		role      string
		wantSkip  bool
		wantAllow bool
	}{
		{name: "login is public", path: "/v1/auth/login", method: "POST", wantSkip: true, wantAllow: true},
		{name: "seller intake is public", path: "/v1/seller-applications", method: "POST", wantSkip: true, wantAllow: true},
		{name: "operator reads bookings", path: "/v1/bookings/{id}", method: "GET", role: "operator", wantAllow: true},
		{name: "operator cannot export archives", path: "/v1/archives/export", method: "GET", role: "operator"},
		{name: "admin updates settings", path: "/v1/settings", method: "PUT", role: "admin", wantAllow: true},
		{name: "trailing slash is folded", path: "/v1/bookings/", method: "GET", role: "operator", wantAllow: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission, found := data.FindPermissions(tt.path, tt.method)

			require.True(t, found)
			assert.Equal(t, tt.wantSkip, permission.Skip)

			if !tt.wantSkip {
				assert.Equal(t, tt.wantAllow, permission.Allows(tt.role))
			}
		})
	}
}

func TestFindPermissions_Unknown(t *testing.T) {
	data, err := permissions.Parse([]byte(`{"endpoints":[{"path":"/v1/guests","method":"GET","permissions":["admin"]}]}`))
	require.NoError(t, err)

	_, found := data.FindPermissions("/v1/guests", "DELETE")
	assert.False(t, found)

	permission, found := data.FindPermissions("/v1/guests", "get")
	assert.True(t, found)
	assert.False(t, permission.Allows("operator"))
}

func TestParse_Invalid(t *testing.T) {
	_, err := permissions.Parse([]byte(`{"endpoints":`))

	assert.Error(t, err)
}

func TestNormalizePath(t *testing.T) {
	tests := map[string]string{
		"/v1/bookings/":                "/v1/bookings",
		"/v1//bookings":                "/v1/bookings",
		"/v1/*/bookings/{id}":          "/v1/bookings/{id}",
		"/":                            "/",
		"/v1/availability/{kind}/{id}": "/v1/availability/{kind}/{id}",
	}

	for in, want := range tests {
		assert.Equal(t, want, permissions.NormalizePath(in), in)
	}
}
