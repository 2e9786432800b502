package user

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/config"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/database"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/interfaces"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/logger"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/monitoring"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/types"
)

// Service implements the UserService interface
type Service struct {
	config     *config.Config
	logger     *logger.Logger
	repository interfaces.UserRepository
	db         *database.DB
	server     *http.Server
}

// New creates a new user service
func New(cfg *config.Config, log *logger.Logger) interfaces.UserService {
	db, err := database.NewConnection(&cfg.Database, log)
	if err != nil {
		log.Errorf("Failed to connect to database: %v", err)
		panic(err)
	}

	repository := NewRepository(db, log)

	return &Service{
		config:     cfg,
		logger:     log,
		repository: repository,
		db:         db,
	}
}

// CreateUser creates a new user profile
func (s *Service) CreateUser(user *types.User) (*types.User, error) {
	if err := s.validateUser(user); err != nil {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput, err.Error(), nil)
	}

	if existing, _ := s.repository.GetUserByEmail(user.Email); existing != nil {
		return nil, types.NewConflictError(types.ErrCodeConflict, fmt.Sprintf("email already registered: %s", user.Email))
	}

	user.ID = uuid.New().String()
	user.IsActive = true

	if err := s.repository.CreateUser(user); err != nil {
		s.logger.WithError(err).Error("Failed to create user")
		return nil, types.NewInternalError(types.ErrCodeInternalError, "failed to create user", err)
	}

	s.logger.WithUserID(user.ID).Infof("Created %s profile for %s %s", user.Role, user.FirstName, user.LastName)
	return user, nil
}

// GetUser retrieves a user profile by ID
func (s *Service) GetUser(userID string) (*types.User, error) {
	if userID == "" {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput, "user ID is required", nil)
	}

	user, err := s.repository.GetUserByID(userID)
	if err != nil {
		return nil, types.NewNotFoundError(types.ErrCodeNotFound, fmt.Sprintf("user not found: %s", userID))
	}

	return user, nil
}

// UpdateUser updates a user profile
func (s *Service) UpdateUser(userID string, updates *types.UserUpdates) error {
	if userID == "" {
		return types.NewValidationError(types.ErrCodeInvalidInput, "user ID is required", nil)
	}

	if updates.Email != nil {
		if !isValidEmail(*updates.Email) {
			return types.NewValidationError(types.ErrCodeInvalidInput, fmt.Sprintf("invalid email: %s", *updates.Email), nil)
		}
		if existing, _ := s.repository.GetUserByEmail(*updates.Email); existing != nil && existing.ID != userID {
			return types.NewConflictError(types.ErrCodeConflict, fmt.Sprintf("email already registered: %s", *updates.Email))
		}
	}

	if err := s.repository.UpdateUser(userID, updates); err != nil {
		s.logger.WithError(err).Errorf("Failed to update user %s", userID)
		return types.NewNotFoundError(types.ErrCodeNotFound, fmt.Sprintf("user not found: %s", userID))
	}

	s.logger.WithUserID(userID).Info("User profile updated")
	return nil
}

// DeactivateUser marks a user profile as inactive
func (s *Service) DeactivateUser(userID string) error {
	if userID == "" {
		return types.NewValidationError(types.ErrCodeInvalidInput, "user ID is required", nil)
	}

	if err := s.repository.DeactivateUser(userID); err != nil {
		s.logger.WithError(err).Errorf("Failed to deactivate user %s", userID)
		return types.NewNotFoundError(types.ErrCodeNotFound, fmt.Sprintf("user not found: %s", userID))
	}

	return nil
}

// GetUsers retrieves user profiles based on filters
func (s *Service) GetUsers(filters *types.UserFilters) ([]*types.User, error) {
	if filters == nil {
		filters = &types.UserFilters{}
	}

	if filters.Role != "" && filters.Role != types.RolePatient && filters.Role != types.RoleDoctor {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput, fmt.Sprintf("invalid role: %s", filters.Role), nil)
	}

	users, err := s.repository.GetUsers(filters)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get users")
		return nil, types.NewInternalError(types.ErrCodeInternalError, "failed to get users", err)
	}

	return users, nil
}

// Start starts the user service HTTP server
func (s *Service) Start(addr string) error {
	router := mux.NewRouter()
	collector := monitoring.NewMetricsCollector("user-service")
	mon := monitoring.NewMonitoringMiddleware(collector, nil, s.logger)
	router.Use(mon.HTTPMiddleware)
	router.Handle("/metrics", collector.Handler())
	s.setupRoutes(router)

	s.server = &http.Server{
		Addr:    addr,
		Handler: router,
	}

	s.logger.Infof("Starting User Service on %s", addr)
	return s.server.ListenAndServe()
}

// Stop stops the user service
func (s *Service) Stop() error {
	if s.server != nil {
		s.logger.Info("Stopping User Service")
		return s.server.Close()
	}
	return nil
}

// validateUser validates user profile data
func (s *Service) validateUser(user *types.User) error {
	if user.FirstName == "" || user.LastName == "" {
		return fmt.Errorf("first and last name are required")
	}

	if !isValidEmail(user.Email) {
		return fmt.Errorf("invalid email: %s", user.Email)
	}

	switch user.Role {
	case types.RolePatient:
		if user.Specialty != "" {
			return fmt.Errorf("patients cannot have a specialty")
		}
	case types.RoleDoctor:
		if user.Specialty == "" {
			return fmt.Errorf("doctors must have a specialty")
		}
	default:
		return fmt.Errorf("invalid role: %s", user.Role)
	}

	return nil
}

func isValidEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && strings.Contains(email[at:], ".")
}
