package types

import "time"

// UserRole represents the different user roles in the portal
type UserRole string

const (
	RolePatient UserRole = "patient"
	RoleDoctor  UserRole = "doctor"
)

// User represents a portal user profile
type User struct {
	ID        string    `json:"id" db:"id"`
	Role      UserRole  `json:"role" db:"role"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	Specialty string    `json:"specialty,omitempty" db:"specialty"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// UserUpdates represents updates to a user profile
type UserUpdates struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Specialty *string `json:"specialty,omitempty"`
}

// UserFilters represents filters for user queries
type UserFilters struct {
	Role       UserRole `json:"role,omitempty"`
	ActiveOnly bool     `json:"active_only,omitempty"`
	Limit      int      `json:"limit,omitempty"`
	Offset     int      `json:"offset,omitempty"`
}

// UserClaims represents JWT token claims carried on portal requests
type UserClaims struct {
	UserID string   `json:"user_id"`
	Email  string   `json:"email"`
	Role   UserRole `json:"role"`
}
