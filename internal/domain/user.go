package domain

import "github.com/golang-jwt/jwt/v5"

// Claims carried by the session token issued at login.
type Claims struct {
	OwnerName string `json:"owner_name"`
	StoreName string `json:"store_name"`
	jwt.RegisteredClaims
}
