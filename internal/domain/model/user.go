// Package model holds the wire contracts exchanged with the storefront
// backend. These are external data shapes, not behavior; the client
// marshals them as-is and never reinterprets server fields.
package model

// Token is the payload returned by the login endpoint.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// RegisterRequest creates a new account. Registration does not
// establish a session; the caller logs in separately.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// UserUpdate is a partial profile update. Nil fields are omitted and
// left unchanged server-side.
type UserUpdate struct {
	Email    *string `json:"email,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
}

// ChangePasswordRequest verifies the old password and sets a new one.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}
