package model

import "github.com/golang-jwt/jwt/v5"

// AdminClaims are JWT claims for the administrative viewer
type AdminClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for admin login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}
