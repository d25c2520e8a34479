package permissions

import (
	_ "embed"
	"encoding/json"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission lists the roles allowed on one route. Skip marks public routes such as login.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

// Allows reports whether role may call the route. An empty role list admits any signed-in user.
func (p Permission) Allows(role string) bool {
	return len(p.Permissions) == 0 || slices.Contains(p.Permissions, role)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	once  sync.Once
	index map[string]Permission
}

// FindPermissions looks up a route pattern such as "/v1/bookings/{id}". The second result is false
// for routes missing from permissions.json.
func (r *PermissionData) FindPermissions(path, method string) (Permission, bool) {
	r.once.Do(r.buildIndex)

	permission, ok := r.index[key(NormalizePath(path), method)]

	return permission, ok
}

func (r *PermissionData) buildIndex() {
	r.index = make(map[string]Permission, len(r.Endpoints))
	for _, endpoint := range r.Endpoints {
		r.index[key(NormalizePath(endpoint.Path), endpoint.Method)] = endpoint
	}
}

func key(path, method string) string {
	return strings.ToUpper(method) + " " + path
}

// NormalizePath folds subrouter joins so "/v1/bookings/" and "/v1//bookings" match "/v1/bookings".
func NormalizePath(path string) string {
	path = strings.ReplaceAll(path, "/*/", "/")
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}

	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	return path
}

// Parse decodes a permissions document.
func Parse(data []byte) (*PermissionData, error) {
	permissions := &PermissionData{}
	if err := json.Unmarshal(data, permissions); err != nil {
		return nil, err //nolint:wrapcheck
	}

	return permissions, nil
}

// Get loads the embedded permissions.json. A nil result makes RBAC reject every request.
func Get() *PermissionData {
	permissions, err := Parse(permissionsData)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return permissions
}
