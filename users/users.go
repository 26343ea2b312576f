package users

import (
	"golang.org/x/crypto/bcrypt"
)

// RoleType represents a principal's role within the task service
type RoleType string

const (
	RoleAdmin RoleType = "admin" // Can manage any task and any user
	RoleUser  RoleType = "user"  // Regular user, limited to owned or assigned tasks
)

// Principal is the authenticated identity a token claims to represent.
// Owned by the external user store; read-only to the credential core.
type Principal struct {
	Email        string   `json:"email,omitempty"`     // Unique identity
	FullName     string   `json:"full_name,omitempty"` // Display name carried in access-token claims
	Role         RoleType `json:"role,omitempty"`      // Role used for coarse authorization
	PasswordHash string   `json:"-"`                   // Hashed password - never serialize
}

// PrincipalLookup is the collaborator contract backed by the persistent
// user store. Returns ErrPrincipalNotFound-compatible errors when absent.
type PrincipalLookup interface {
	FindByEmail(email string) (*Principal, error)
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// IsAdmin returns true if the principal carries the admin role
func (p *Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
