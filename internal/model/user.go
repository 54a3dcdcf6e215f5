package model

import "time"

// Role is the closed set of authorization roles a user can hold. The value
// is stored in the `users` table and carried in JWT claims.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a row in the `users` table. The password is stored only
// as a bcrypt hash and must never appear in API responses.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email (unique)
	PasswordHash string    // users.password_hash
	Role         Role      // users.role (USER or ADMIN)
	CreatedAt    time.Time // users.created_at
}

// RefreshToken models an entry in the `refresh_tokens` table. The token
// value is a signed JWT returned to the client on login; the row tracks
// its lifetime so expired sessions can be swept on the next login.
type RefreshToken struct {
	ID        uint64    // refresh_tokens.id
	UserID    uint64    // refresh_tokens.user_id
	Token     string    // refresh_tokens.token (unique)
	ExpiresAt time.Time // refresh_tokens.expires_at
	CreatedAt time.Time // refresh_tokens.created_at
}
