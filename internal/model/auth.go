package model

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the envelope returned by every flow that mints a token.
type TokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// AuthUser is the decoded claim set attached to the request context by the
// auth middleware. Handlers trust it as of token issuance; nothing re-checks
// the store per request.
type AuthUser struct {
	ID            string
	Name          string
	Email         string
	CanPostEvents bool
	IsAdmin       bool
}
