package models

import "time"

// Role values form a closed enum; anything else is rejected at write time.
const (
	RoleAdmin       = "admin"
	RoleImaging     = "imaging"
	RoleGenomics    = "genomics"
	RoleIntegration = "integration"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"isActive"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserRef is the denormalized sender/author identity embedded in messages
// and notes returned to clients.
type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleImaging, RoleGenomics, RoleIntegration:
		return true
	}
	return false
}
