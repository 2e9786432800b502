package interfaces

import (
	"time"

	"github.com/Naveenp7/meditrack-ai-sub001/pkg/types"
)

// APIGateway defines the interface for the API Gateway service
type APIGateway interface {
	// Authentication and authorization
	ValidateToken(token string) (*types.UserClaims, error)

	// Rate limiting
	ApplyRateLimit(userID string) error

	// Backend registration
	RegisterService(name, serviceURL string) error
	UnregisterService(name string) error

	// Service management
	Start(addr string) error
	Stop() error
}

// TokenValidator defines the interface for token validation
type TokenValidator interface {
	ValidateJWT(token string) (*types.UserClaims, error)
}

// RateLimiter defines the interface for rate limiting
type RateLimiter interface {
	Allow(userID string) (bool, error)
	Reset(userID string) error
	StartCleanup(interval time.Duration)
}
