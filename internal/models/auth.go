package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims represents the JWT payload for student session tokens.
type JWTClaims struct {
	StudentID string `json:"student_id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	jwt.RegisteredClaims
}

// SessionToken is the login response for the HTTP front end.
type SessionToken struct {
	AccessToken string          `json:"access_token"`
	ExpiresIn   int64           `json:"expires_in"`
	Student     StudentOverview `json:"student"`
}
