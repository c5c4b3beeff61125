package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims are the JWT claims issued by the auth service. The core services
// trust UserID as the authenticated caller identity.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	TokenVersion int    `json:"token_version"`
}
