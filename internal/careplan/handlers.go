package careplan

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/types"
)

// setupRoutes configures HTTP routes for the care plan service
func (s *Service) setupRoutes(router *mux.Router) {
	api := router.PathPrefix("/api/v1").Subrouter()

	// Care plan routes
	api.HandleFunc("/care-plans", s.createCarePlanHandler).Methods("POST")
	api.HandleFunc("/care-plans/{id}", s.getCarePlanHandler).Methods("GET")
	api.HandleFunc("/care-plans/{id}/status", s.updateCarePlanStatusHandler).Methods("PUT")

	// Patient care plans
	api.HandleFunc("/patients/{patientId}/care-plans", s.getPatientCarePlansHandler).Methods("GET")

	// Goal routes
	api.HandleFunc("/care-plans/{id}/goals", s.addGoalHandler).Methods("POST")
	api.HandleFunc("/care-plans/{id}/goals", s.getPlanGoalsHandler).Methods("GET")
	api.HandleFunc("/goals/{id}/status", s.updateGoalStatusHandler).Methods("PUT")

	// Task routes
	api.HandleFunc("/care-plans/{id}/tasks", s.addTaskHandler).Methods("POST")
	api.HandleFunc("/care-plans/{id}/tasks", s.getPlanTasksHandler).Methods("GET")
	api.HandleFunc("/tasks/{id}/complete", s.completeTaskHandler).Methods("PUT")

	// Health check
	api.HandleFunc("/health", s.healthCheckHandler).Methods("GET")

	s.logger.Info("Care plan service routes configured")
}

// createCarePlanHandler handles care plan creation
func (s *Service) createCarePlanHandler(w http.ResponseWriter, r *http.Request) {
	var plan types.CarePlan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	userID := s.getUserIDFromRequest(r)
	created, err := s.CreateCarePlan(&plan, userID)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Failed to create care plan", err)
		return
	}

	s.writeJSONResponse(w, http.StatusCreated, created)
}

// getCarePlanHandler handles care plan retrieval
func (s *Service) getCarePlanHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	planID := vars["id"]

	userID := s.getUserIDFromRequest(r)
	plan, err := s.GetCarePlan(planID, userID)
	if err != nil {
		s.writeErrorResponse(w, http.StatusNotFound, "Care plan not found", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, plan)
}

// updateCarePlanStatusHandler handles care plan status changes
func (s *Service) updateCarePlanStatusHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	planID := vars["id"]

	var body struct {
		Status types.CarePlanStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	userID := s.getUserIDFromRequest(r)
	if err := s.UpdateCarePlanStatus(planID, body.Status, userID); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Failed to update care plan status", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]string{"message": "Care plan status updated successfully"})
}

// getPatientCarePlansHandler handles patient care plan queries
func (s *Service) getPatientCarePlansHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	patientID := vars["patientId"]

	userID := s.getUserIDFromRequest(r)
	plans, err := s.GetPatientCarePlans(patientID, userID)
	if err != nil {
		s.writeErrorResponse(w, http.StatusInternalServerError, "Failed to get care plans", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, plans)
}

// addGoalHandler handles goal creation
func (s *Service) addGoalHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var goal types.Goal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	goal.PlanID = vars["id"]

	userID := s.getUserIDFromRequest(r)
	created, err := s.AddGoal(&goal, userID)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Failed to add goal", err)
		return
	}

	s.writeJSONResponse(w, http.StatusCreated, created)
}

// getPlanGoalsHandler handles goal queries for a plan
func (s *Service) getPlanGoalsHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	planID := vars["id"]

	userID := s.getUserIDFromRequest(r)
	goals, err := s.GetPlanGoals(planID, userID)
	if err != nil {
		s.writeErrorResponse(w, http.StatusInternalServerError, "Failed to get goals", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, goals)
}

// updateGoalStatusHandler handles goal status changes
func (s *Service) updateGoalStatusHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	goalID := vars["id"]

	var body struct {
		Status types.GoalStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	userID := s.getUserIDFromRequest(r)
	if err := s.UpdateGoalStatus(goalID, body.Status, userID); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Failed to update goal status", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]string{"message": "Goal status updated successfully"})
}

// addTaskHandler handles task creation
func (s *Service) addTaskHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var task types.PlanTask
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	task.PlanID = vars["id"]

	userID := s.getUserIDFromRequest(r)
	created, err := s.AddTask(&task, userID)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Failed to add task", err)
		return
	}

	s.writeJSONResponse(w, http.StatusCreated, created)
}

// getPlanTasksHandler handles task queries for a plan
func (s *Service) getPlanTasksHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	planID := vars["id"]

	userID := s.getUserIDFromRequest(r)
	tasks, err := s.GetPlanTasks(planID, userID)
	if err != nil {
		s.writeErrorResponse(w, http.StatusInternalServerError, "Failed to get tasks", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, tasks)
}

// completeTaskHandler handles task completion
func (s *Service) completeTaskHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	taskID := vars["id"]

	userID := s.getUserIDFromRequest(r)
	if err := s.CompleteTask(taskID, userID); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Failed to complete task", err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]string{"message": "Task completed successfully"})
}

// healthCheckHandler handles health check requests
func (s *Service) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "healthy", "service": "careplan"}

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
