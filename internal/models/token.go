package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims is the access token payload issued after Google login.
type JWTClaims struct {
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	UserType UserType `json:"user_type"`
	jwt.RegisteredClaims
}

// LoginResponse is the body returned by the Google exchange endpoint.
type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}
