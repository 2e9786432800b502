package notification

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/types"
)

// setupRoutes configures HTTP routes for the notification service
func (s *Service) setupRoutes(router *mux.Router) {
	api := router.PathPrefix("/api/v1").Subrouter()

	// Notification routes
	api.HandleFunc("/notifications", s.createNotificationHandler).Methods("POST")
	api.HandleFunc("/notifications", s.getNotificationsHandler).Methods("GET")
	api.HandleFunc("/notifications/{id}/read", s.markReadHandler).Methods("PUT")
	api.HandleFunc("/notifications/read-all", s.markAllReadHandler).Methods("PUT")

	// Preference routes
	api.HandleFunc("/preferences", s.getPreferencesHandler).Methods("GET")
	api.HandleFunc("/preferences", s.updatePreferencesHandler).Methods("PUT")

	// Health check
	api.HandleFunc("/health", s.healthCheckHandler).Methods("GET")

	s.logger.Info("Notification service routes configured")
}

// createNotificationHandler handles notification creation
func (s *Service) createNotificationHandler(w http.ResponseWriter, r *http.Request) {
	var n types.Notification
	if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	created, err := s.CreateNotification(&n)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Failed to create notification", err)
		return
	}

	s.writeJSONResponse(w, http.StatusCreated, created)
}

// getNotificationsHandler handles notification queries for the requesting user
func (s *Service) getNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	filters := &types.NotificationFilters{
		Type: types.NotificationType(r.URL.Query().Get("type")),
	}

	if unread := r.URL.Query().Get("unread_only"); unread != "" {
		filters.UnreadOnly, _ = strconv.ParseBool(unread)
	}

	if limit := r.URL.Query().Get("limit"); limit != "" {
		filters.Limit, _ = strconv.Atoi(limit)
	}

	if offset := r.URL.Query().Get("offset"); offset != "" {
		filters.Offset, _ = strconv.Atoi(offset)
	}

	userID := s.getUserIDFromRequest(r)
	notifications, err := s.GetUserNotifications(userID, filters)
	if err != nil {
		s.writeErrorResponse(w, http.StatusInternalServerError, "Failed to get notifications", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, notifications)
}

// markReadHandler marks a single notification as read
func (s *Service) markReadHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	notificationID := vars["id"]

	userID := s.getUserIDFromRequest(r)
	if err := s.MarkRead(notificationID, userID); err != nil {
		s.writeErrorResponse(w, http.StatusNotFound, "Failed to mark notification read", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]string{"message": "Notification marked read"})
}

// markAllReadHandler marks all of the requesting user's notifications as read
func (s *Service) markAllReadHandler(w http.ResponseWriter, r *http.Request) {
	userID := s.getUserIDFromRequest(r)
	if err := s.MarkAllRead(userID); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Failed to mark notifications read", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]string{"message": "All notifications marked read"})
}

// getPreferencesHandler returns the requesting user's notification preferences
func (s *Service) getPreferencesHandler(w http.ResponseWriter, r *http.Request) {
	userID := s.getUserIDFromRequest(r)
	prefs, err := s.GetPreferences(userID)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Failed to get preferences", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, prefs)
}

// updatePreferencesHandler updates the requesting user's notification preferences
func (s *Service) updatePreferencesHandler(w http.ResponseWriter, r *http.Request) {
	var prefs types.NotificationPreferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	prefs.UserID = s.getUserIDFromRequest(r)
	if err := s.UpdatePreferences(&prefs); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Failed to update preferences", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, &prefs)
}

// healthCheckHandler handles health check requests
func (s *Service) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "healthy", "service": "notification"}

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

// getUserIDFromRequest extracts the user ID from request headers
func (s *Service) getUserIDFromRequest(r *http.Request) string {
	return r.Header.Get("X-User-ID")
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
