package model

import "github.com/golang-jwt/jwt/v5"

// InspectorClaims are JWT claims for a field inspector's device session
type InspectorClaims struct {
	InspectorID string `json:"inspectorId"`
	Name        string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for inspector login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token       string `json:"token"`
	InspectorID string `json:"inspectorId"`
}
