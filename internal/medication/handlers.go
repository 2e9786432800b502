package medication

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/types"
)

// setupRoutes configures HTTP routes for the medication service
func (s *Service) setupRoutes(router *mux.Router) {
	api := router.PathPrefix("/api/v1").Subrouter()

	// Medication routes
	api.HandleFunc("/medications", s.createMedicationHandler).Methods("POST")
	api.HandleFunc("/medications/{id}", s.getMedicationHandler).Methods("GET")
	api.HandleFunc("/medications/{id}", s.updateMedicationHandler).Methods("PUT")
	api.HandleFunc("/medications/{id}", s.discontinueMedicationHandler).Methods("DELETE")
	api.HandleFunc("/medications", s.getMedicationsHandler).Methods("GET")

	// Reminder schedule
	api.HandleFunc("/medications/{id}/reminders", s.getReminderScheduleHandler).Methods("GET")

	// Patient medications
	api.HandleFunc("/patients/{patientId}/medications", s.getPatientMedicationsHandler).Methods("GET")

	// Health check
	api.HandleFunc("/health", s.healthCheckHandler).Methods("GET")

	s.logger.Info("Medication service routes configured")
}

// createMedicationHandler handles medication creation
func (s *Service) createMedicationHandler(w http.ResponseWriter, r *http.Request) {
	var med types.Medication
	if err := json.NewDecoder(r.Body).Decode(&med); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	userID := s.getUserIDFromRequest(r)
	created, err := s.CreateMedication(&med, userID)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Failed to create medication", err)
		return
	}

	s.writeJSONResponse(w, http.StatusCreated, created)
}

// getMedicationHandler handles medication retrieval
func (s *Service) getMedicationHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	medID := vars["id"]

	userID := s.getUserIDFromRequest(r)
	med, err := s.GetMedication(medID, userID)
	if err != nil {
		s.writeErrorResponse(w, http.StatusNotFound, "Medication not found", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, med)
}

// updateMedicationHandler handles medication updates
func (s *Service) updateMedicationHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	medID := vars["id"]

	var updates types.MedicationUpdates
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	userID := s.getUserIDFromRequest(r)
	if err := s.UpdateMedication(medID, &updates, userID); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Failed to update medication", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]string{"message": "Medication updated successfully"})
}

// discontinueMedicationHandler handles medication discontinuation
func (s *Service) discontinueMedicationHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	medID := vars["id"]

	userID := s.getUserIDFromRequest(r)
	if err := s.DiscontinueMedication(medID, userID); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Failed to discontinue medication", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]string{"message": "Medication discontinued successfully"})
}

// getMedicationsHandler handles medication queries with filters
func (s *Service) getMedicationsHandler(w http.ResponseWriter, r *http.Request) {
	filters := &types.MedicationFilters{
		PatientID:    r.URL.Query().Get("patient_id"),
		PrescriberID: r.URL.Query().Get("prescriber_id"),
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

	userID := s.getUserIDFromRequest(r)
	medications, err := s.GetMedications(userID, filters)
	if err != nil {
		s.writeErrorResponse(w, http.StatusInternalServerError, "Failed to get medications", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, medications)
}

// getReminderScheduleHandler returns the reminder times for a medication
func (s *Service) getReminderScheduleHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	medID := vars["id"]

	userID := s.getUserIDFromRequest(r)
	reminders, err := s.GetReminderSchedule(medID, userID)
	if err != nil {
		s.writeErrorResponse(w, http.StatusNotFound, "Reminder schedule not found", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, reminders)
}

// getPatientMedicationsHandler handles patient medication queries
func (s *Service) getPatientMedicationsHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	patientID := vars["patientId"]

	userID := s.getUserIDFromRequest(r)
	medications, err := s.GetPatientMedications(patientID, userID)
	if err != nil {
		s.writeErrorResponse(w, http.StatusInternalServerError, "Failed to get patient medications", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, medications)
}

// healthCheckHandler handles health check requests
func (s *Service) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "healthy", "service": "medication"}

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
