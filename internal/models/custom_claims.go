package models

import "github.com/golang-jwt/jwt/v5"

// CustomClaims are the JWT claims carried by access and refresh tokens.
type CustomClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}
