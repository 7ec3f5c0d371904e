// Package models defines data shared between the API client, the flow
// controllers, and the view layer.
package models

// Roles known to the identity service.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Credentials is the transient input of a register or login submit. It lives
// only for the duration of the submission.
type Credentials struct {
	Email           string
	Password        string
	ConfirmPassword string
	Role            string
}

// UserRecord is one row of the admin user list. Email is the unique key.
type UserRecord struct {
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
}

// Profile is the authenticated caller's account as reported by the service.
type Profile struct {
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
}
