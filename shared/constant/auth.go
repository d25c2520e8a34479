package constant

type contextKey string

// Request context keys set by the JWT middleware.
const (
	ContextKeyUserID    contextKey = "user_id"
	ContextKeyUserEmail contextKey = "user_email"
	ContextKeyUserRole  contextKey = "user_role"
	ContextKeyTokenID   contextKey = "token_id"
)

// ContextAnonymous is the actor recorded for unauthenticated writes.
const ContextAnonymous = "anonymous"

const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleOperator   = "operator"
)
