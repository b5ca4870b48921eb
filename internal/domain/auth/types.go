package auth

import "time"

// Config drives token verification.
type Config struct {
	Secret string
	Issuer string
}

// RoleAdmin grants access to other users' dashboards.
const RoleAdmin = "admin"

// Claims are extracted from a verified bearer token.
type Claims struct {
	Username  string
	UserID    int64
	Role      string
	ExpiresAt time.Time
}

// IsAdmin reports whether the token carries the admin role.
func (c Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
