package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserRole represents the roles recognised in access tokens.
type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleTraveler UserRole = "TRAVELER"
)

// Valid reports whether the role is one the API understands.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleTraveler:
		return true
	}
	return false
}

// UserInfo describes the authenticated user in responses.
type UserInfo struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name,omitempty"`
	Role     UserRole `json:"role"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Role     UserRole `json:"role"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name,omitempty"`
	jwt.RegisteredClaims
}
