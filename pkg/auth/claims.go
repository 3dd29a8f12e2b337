package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID uuid.UUID
	Scope  string
	JTI    string
}

// AccessTokenClaims represents the typed JWT issued to admin tooling.
type AccessTokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Scope  string    `json:"scope"`
	jwt.RegisteredClaims
}

// CanWrite reports whether the token grants inventory write access.
func (c *AccessTokenClaims) CanWrite() bool {
	return c.Scope == ScopeAdmin
}

// ScopeAdmin grants access to stock mutation endpoints.
const ScopeAdmin = "inventory:admin"
