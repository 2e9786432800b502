package gateway

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/types"
)

// resourceBackends maps the leading path segment under /api/v1/ to the
// backend service that owns it
var resourceBackends = map[string]string{
	"medications":   "medications",
	"care-plans":    "care-plans",
	"goals":         "care-plans",
	"tasks":         "care-plans",
	"notifications": "notifications",
	"preferences":   "notifications",
	"users":         "users",
}

// handleProxy forwards portal API requests to the owning backend.
// Backends serve the same /api/v1 path space, so the path is passed
// through unchanged.
func (s *Service) handleProxy(w http.ResponseWriter, r *http.Request) {
	serviceName := s.resolveBackendName(r.URL.Path)
	if serviceName == "" {
		s.writeErrorResponse(w, http.StatusNotFound, "unknown resource")
		return
	}

	backend, ok := s.lookupBackend(serviceName)
	if !ok {
		s.logger.Errorf("Service %s not registered for path %s", serviceName, r.URL.Path)
		s.writeErrorResponse(w, http.StatusBadGateway, "service unavailable")
		return
	}

	backend.proxy.ServeHTTP(w, r)
}

// resolveBackendName determines the backend that owns a request path.
// Patient-scoped paths (/api/v1/patients/{id}/<resource>) route by the
// nested resource.
func (s *Service) resolveBackendName(path string) string {
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if len(parts) < 3 || parts[0] != "api" || parts[1] != "v1" {
		return ""
	}

	resource := parts[2]
	if resource == "patients" && len(parts) >= 5 {
		resource = parts[4]
	}

	return resourceBackends[resource]
}

// handleHealth handles health check requests
func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "api-gateway",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.startTime).String(),
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleListServices lists all registered services
func (s *Service) handleListServices(w http.ResponseWriter, r *http.Request) {
	s.servicesMux.RLock()
	services := make(map[string]string)
	for name, b := range s.services {
		services[name] = b.url.String()
	}
	s.servicesMux.RUnlock()

	response := map[string]interface{}{
		"services": services,
		"count":    len(services),
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleRegisterService registers a new service
func (s *Service) handleRegisterService(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceName := vars["name"]

	var req struct {
		URL string `json:"url"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.RegisterService(serviceName, req.URL); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "failed to register service: "+err.Error())
		return
	}

	response := map[string]interface{}{
		"message": "service registered successfully",
		"service": serviceName,
		"url":     req.URL,
	}

	s.writeJSONResponse(w, http.StatusCreated, response)
}

// handleUnregisterService unregisters a service
func (s *Service) handleUnregisterService(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceName := vars["name"]

	if err := s.UnregisterService(serviceName); err != nil {
		s.writeErrorResponse(w, http.StatusInternalServerError, "failed to unregister service: "+err.Error())
		return
	}

	response := map[string]interface{}{
		"message": "service unregistered successfully",
		"service": serviceName,
	}

	s.writeJSONResponse(w, http.StatusOK, response)
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
func (s *Service) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	errorResponse := &types.PortalError{
		Type:    getErrorType(statusCode),
		Code:    http.StatusText(statusCode),
		Message: message,
	}

	s.writeJSONResponse(w, statusCode, errorResponse)
}

// getErrorType maps HTTP status codes to error types
func getErrorType(statusCode int) types.ErrorType {
	switch statusCode {
	case http.StatusBadRequest:
		return types.ErrorTypeValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return types.ErrorTypeAuthorization
	case http.StatusNotFound:
		return types.ErrorTypeNotFound
	case http.StatusTooManyRequests:
		return types.ErrorTypeRateLimit
	default:
		return types.ErrorTypeInternal
	}
}
