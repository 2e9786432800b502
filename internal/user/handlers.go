package user

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/types"
)

// setupRoutes configures HTTP routes for the user service
func (s *Service) setupRoutes(router *mux.Router) {
	api := router.PathPrefix("/api/v1").Subrouter()

	// User profile routes
	api.HandleFunc("/users", s.createUserHandler).Methods("POST")
	api.HandleFunc("/users", s.getUsersHandler).Methods("GET")
	api.HandleFunc("/users/{id}", s.getUserHandler).Methods("GET")
	api.HandleFunc("/users/{id}", s.updateUserHandler).Methods("PUT")
	api.HandleFunc("/users/{id}", s.deactivateUserHandler).Methods("DELETE")

	// Health check
	api.HandleFunc("/health", s.healthCheckHandler).Methods("GET")

	s.logger.Info("User service routes configured")
}

// createUserHandler handles user profile creation
func (s *Service) createUserHandler(w http.ResponseWriter, r *http.Request) {
	var user types.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	created, err := s.CreateUser(&user)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Failed to create user", err)
		return
	}

	s.writeJSONResponse(w, http.StatusCreated, created)
}

// getUserHandler handles user profile retrieval
func (s *Service) getUserHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["id"]

	user, err := s.GetUser(userID)
	if err != nil {
		s.writeErrorResponse(w, http.StatusNotFound, "User not found", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, user)
}

// updateUserHandler handles user profile updates
func (s *Service) updateUserHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["id"]

	var updates types.UserUpdates
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := s.UpdateUser(userID, &updates); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Failed to update user", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]string{"message": "User updated successfully"})
}

// deactivateUserHandler handles user deactivation
func (s *Service) deactivateUserHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["id"]

	if err := s.DeactivateUser(userID); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Failed to deactivate user", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]string{"message": "User deactivated successfully"})
}

// getUsersHandler handles user queries with filters
func (s *Service) getUsersHandler(w http.ResponseWriter, r *http.Request) {
	filters := &types.UserFilters{
		Role: types.UserRole(r.URL.Query().Get("role")),
	}

	if active := r.URL.Query().Get("active_only"); active != "" {
		filters.ActiveOnly, _ = strconv.ParseBool(active)
	}

	if limit := r.URL.Query().Get("limit"); limit != "" {
		filters.Limit, _ = strconv.Atoi(limit)
	}

	if offset := r.URL.Query().Get("offset"); offset != "" {
		filters.Offset, _ = strconv.Atoi(offset)
	}

	users, err := s.GetUsers(filters)
	if err != nil {
		s.writeErrorResponse(w, http.StatusInternalServerError, "Failed to get users", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, users)
}

// healthCheckHandler handles health check requests
func (s *Service) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "healthy", "service": "user"}

	if s.db != nil {
		if err := s.db.Health(); err != nil {
			status["status"] = "unhealthy"
			status["database"] = err.Error()
			s.writeJSONResponse(w, http.StatusServiceUnavailable, status)
			return
		}
	}

	s.writeJSONResponse(w, http.StatusOK, status)
}

// writeJSONResponse writes a JSON response
func (s *Service) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Errorf("Failed to encode JSON response: %v", err)
	}
}

// writeErrorResponse writes an error response
func (s *Service) writeErrorResponse(w http.ResponseWriter, statusCode int, message string, err error) {
	s.logger.Errorf("%s: %v", message, err)

	response := map[string]interface{}{
		"error":   message,
		"details": err.Error(),
	}

	s.writeJSONResponse(w, statusCode, response)
}
