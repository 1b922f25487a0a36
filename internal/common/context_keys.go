// File: internal/common/context_keys.go
package common

const (
	// AuthorizationHeader is the header name for the authorization token.
	AuthorizationHeader = "Authorization"
	// AuthorizationTypeBearer is the prefix for Bearer tokens.
	AuthorizationTypeBearer = "Bearer"
	// UserIDKey is the context key for the authenticated user's local ID.
	UserIDKey = "userID"
	// UserEmailKey is the context key for the authenticated user's email.
	UserEmailKey = "userEmail"
	// FirebaseUIDKey is the context key for the provider-issued UID.
	FirebaseUIDKey = "firebaseUID"
	// WorkspaceIDKey is the context key for the active workspace ID.
	WorkspaceIDKey = "workspaceID"
)
