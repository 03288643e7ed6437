package response

import "metromobiles/internal/usecase/queries"

// AuthResponse matches what the storefront client persists in its session
// blob: the bearer token plus the user identity.
type AuthResponse struct {
	Token string                      `json:"token"`
	User  *queries.AuthorizedUserView `json:"user"`
}
