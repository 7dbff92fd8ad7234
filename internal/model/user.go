package model

import "time"

// User is the credential-store record. PasswordHash is nil for accounts
// provisioned without a password (those can never log in).
type User struct {
	ID            string
	Name          string
	Email         string
	PasswordHash  *string
	IsAdmin       bool
	CanPostEvents bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// UserResponse is the public projection of a user record.
type UserResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	IsAdmin       bool   `json:"isAdmin"`
	CanPostEvents bool   `json:"canPostEvents"`
}

// UpdateUserRequest updates a single profile field. Field must be one of
// name, email or password.
type UpdateUserRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// UpdatePermissionsRequest carries both permission flags. Pointers so that a
// missing or mistyped key is distinguishable from an explicit false.
type UpdatePermissionsRequest struct {
	IsAdmin       *bool `json:"isAdmin"`
	CanPostEvents *bool `json:"canPostEvents"`
}

type UpdatePermissionsResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
}
