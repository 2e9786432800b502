package interfaces

import (
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/types"
)

// UserService defines the interface for user profile management
type UserService interface {
	CreateUser(user *types.User) (*types.User, error)
	GetUser(userID string) (*types.User, error)
	UpdateUser(userID string, updates *types.UserUpdates) error
	DeactivateUser(userID string) error
	GetUsers(filters *types.UserFilters) ([]*types.User, error)

	// Service management
	Start(addr string) error
	Stop() error
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	CreateUser(user *types.User) error
	GetUserByID(id string) (*types.User, error)
	GetUserByEmail(email string) (*types.User, error)
	UpdateUser(id string, updates *types.UserUpdates) error
	DeactivateUser(id string) error
	GetUsers(filters *types.UserFilters) ([]*types.User, error)
}
