package careplan

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/config"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/database"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/interfaces"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/logger"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/monitoring"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/types"
)

// Service implements the CarePlanService interface
type Service struct {
	config     *config.Config
	logger     *logger.Logger
	repository interfaces.CarePlanRepository
	notifier   interfaces.GoalNotifier
	db         *database.DB
	server     *http.Server
}

// New creates a new care plan service
func New(cfg *config.Config, log *logger.Logger) interfaces.CarePlanService {
	db, err := database.NewConnection(&cfg.Database, log)
	if err != nil {
		log.Errorf("Failed to connect to database: %v", err)
		panic(err)
	}

	repository := NewRepository(db, log)
	notifier := NewGoalNotifier(cfg.Services.Notifications, log)

	return &Service{
		config:     cfg,
		logger:     log,
		repository: repository,
		notifier:   notifier,
		db:         db,
	}
}

// CreateCarePlan creates a new care plan
func (s *Service) CreateCarePlan(plan *types.CarePlan, userID string) (*types.CarePlan, error) {
	s.logger.Infof("Creating care plan for patient %s by provider %s", plan.PatientID, plan.ProviderID)

	if err := s.validateCarePlan(plan); err != nil {
		return nil, fmt.Errorf("care plan validation failed: %w", err)
	}

	plan.ID = uuid.New().String()
	plan.Status = types.PlanStatusActive
	plan.Progress = 0
	plan.CreatedAt = time.Now()
	plan.UpdatedAt = time.Now()

	if plan.StartDate.IsZero() {
		plan.StartDate = time.Now()
	}

	if err := s.repository.CreateCarePlan(plan); err != nil {
		return nil, fmt.Errorf("failed to create care plan: %w", err)
	}

	s.logger.Infof("Successfully created care plan %s", plan.ID)
	return plan, nil
}

// GetCarePlan retrieves a care plan by ID
func (s *Service) GetCarePlan(planID, userID string) (*types.CarePlan, error) {
	s.logger.Infof("Getting care plan %s for user %s", planID, userID)

	plan, err := s.repository.GetCarePlanByID(planID)
	if err != nil {
		return nil, fmt.Errorf("failed to get care plan: %w", err)
	}

	return plan, nil
}

// GetPatientCarePlans retrieves care plans for a specific patient
func (s *Service) GetPatientCarePlans(patientID, userID string) ([]*types.CarePlan, error) {
	s.logger.Infof("Getting care plans for patient %s requested by user %s", patientID, userID)

	filters := &types.CarePlanFilters{
		PatientID: patientID,
	}

	plans, err := s.repository.GetCarePlans(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get care plans: %w", err)
	}

	return plans, nil
}

// UpdateCarePlanStatus updates a care plan's status. Completed and
// cancelled are terminal.
func (s *Service) UpdateCarePlanStatus(planID string, status types.CarePlanStatus, userID string) error {
	s.logger.Infof("Updating care plan %s status to %s", planID, status)

	if status != types.PlanStatusActive && status != types.PlanStatusCompleted && status != types.PlanStatusCancelled {
		return types.NewValidationError(types.ErrCodeInvalidInput, fmt.Sprintf("invalid care plan status: %s", status), nil)
	}

	plan, err := s.repository.GetCarePlanByID(planID)
	if err != nil {
		return fmt.Errorf("failed to get care plan: %w", err)
	}

	if plan.Status.IsTerminal() {
		return types.NewConflictError(types.ErrCodeTerminalState,
			fmt.Sprintf("care plan %s is %s and cannot change status", planID, plan.Status))
	}

	if err := s.repository.UpdateCarePlanStatus(planID, status); err != nil {
		return fmt.Errorf("failed to update care plan status: %w", err)
	}

	s.logger.Infof("Successfully updated care plan %s status to %s", planID, status)
	return nil
}

// AddGoal adds a goal to a care plan and recomputes the plan's progress
func (s *Service) AddGoal(goal *types.Goal, userID string) (*types.Goal, error) {
	s.logger.Infof("Adding goal to plan %s", goal.PlanID)

	if goal.PlanID == "" {
		return nil, fmt.Errorf("plan ID is required")
	}
	if goal.Description == "" {
		return nil, fmt.Errorf("goal description is required")
	}

	plan, err := s.repository.GetCarePlanByID(goal.PlanID)
	if err != nil {
		return nil, fmt.Errorf("failed to get care plan: %w", err)
	}

	if plan.Status.IsTerminal() {
		return nil, types.NewConflictError(types.ErrCodeTerminalState,
			fmt.Sprintf("cannot add goals to %s care plan %s", plan.Status, plan.ID))
	}

	goal.ID = uuid.New().String()
	if goal.Status == "" {
		goal.Status = types.GoalStatusNotStarted
	}
	goal.Progress = goalProgressFor(goal.Status, 0)
	goal.CreatedAt = time.Now()
	goal.UpdatedAt = time.Now()

	if err := s.repository.CreateGoal(goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	if err := s.recomputePlanProgress(goal.PlanID); err != nil {
		s.logger.Errorf("Failed to recompute progress for plan %s: %v", goal.PlanID, err)
	}

	s.logger.Infof("Successfully added goal %s to plan %s", goal.ID, goal.PlanID)
	return goal, nil
}

// UpdateGoalStatus updates a goal's status, recomputes the owning plan's
// progress, and notifies the patient when the goal transitions into the
// completed status. The notification fires once per transition.
func (s *Service) UpdateGoalStatus(goalID string, status types.GoalStatus, userID string) error {
	s.logger.Infof("Updating goal %s status to %s", goalID, status)

	if status != types.GoalStatusNotStarted && status != types.GoalStatusInProgress &&
		status != types.GoalStatusCompleted && status != types.GoalStatusCancelled {
		return types.NewValidationError(types.ErrCodeInvalidInput, fmt.Sprintf("invalid goal status: %s", status), nil)
	}

	goal, err := s.repository.GetGoalByID(goalID)
	if err != nil {
		return fmt.Errorf("failed to get goal: %w", err)
	}

	if goal.Status.IsTerminal() {
		return types.NewConflictError(types.ErrCodeTerminalState,
			fmt.Sprintf("goal %s is %s and cannot change status", goalID, goal.Status))
	}

	becameCompleted := status == types.GoalStatusCompleted && goal.Status != types.GoalStatusCompleted

	progress := goalProgressFor(status, goal.Progress)
	if err := s.repository.UpdateGoalStatus(goalID, status, progress); err != nil {
		return fmt.Errorf("failed to update goal status: %w", err)
	}

	if err := s.recomputePlanProgress(goal.PlanID); err != nil {
		s.logger.Errorf("Failed to recompute progress for plan %s: %v", goal.PlanID, err)
	}

	if becameCompleted {
		plan, err := s.repository.GetCarePlanByID(goal.PlanID)
		if err != nil {
			s.logger.Errorf("Failed to load plan %s for completion notification: %v", goal.PlanID, err)
		} else {
			goal.Status = status
			if err := s.notifier.NotifyGoalCompleted(userID, plan, goal); err != nil {
				s.logger.Errorf("Failed to send goal completion notification: %v", err)
				// Delivery is best effort; the status change stands
			}
		}
	}

	s.logger.Infof("Successfully updated goal %s status to %s", goalID, status)
	return nil
}

// GetPlanGoals retrieves the goals of a care plan
func (s *Service) GetPlanGoals(planID, userID string) ([]*types.Goal, error) {
	s.logger.Infof("Getting goals for plan %s", planID)

	goals, err := s.repository.GetGoalsByPlanID(planID)
	if err != nil {
		return nil, fmt.Errorf("failed to get goals: %w", err)
	}

	return goals, nil
}

// AddTask adds a task to a care plan
func (s *Service) AddTask(task *types.PlanTask, userID string) (*types.PlanTask, error) {
	s.logger.Infof("Adding task to plan %s", task.PlanID)

	if task.PlanID == "" {
		return nil, fmt.Errorf("plan ID is required")
	}
	if task.Description == "" {
		return nil, fmt.Errorf("task description is required")
	}

	plan, err := s.repository.GetCarePlanByID(task.PlanID)
	if err != nil {
		return nil, fmt.Errorf("failed to get care plan: %w", err)
	}

	if plan.Status.IsTerminal() {
		return nil, types.NewConflictError(types.ErrCodeTerminalState,
			fmt.Sprintf("cannot add tasks to %s care plan %s", plan.Status, plan.ID))
	}

	task.ID = uuid.New().String()
	task.Completed = false
	task.CreatedAt = time.Now()
	task.UpdatedAt = time.Now()

	if err := s.repository.CreateTask(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Infof("Successfully added task %s to plan %s", task.ID, task.PlanID)
	return task, nil
}

// CompleteTask marks a plan task as completed
func (s *Service) CompleteTask(taskID, userID string) error {
	s.logger.Infof("Completing task %s for user %s", taskID, userID)

	if err := s.repository.CompleteTask(taskID); err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}

	s.logger.Infof("Successfully completed task %s", taskID)
	return nil
}

// GetPlanTasks retrieves the tasks of a care plan
func (s *Service) GetPlanTasks(planID, userID string) ([]*types.PlanTask, error) {
	s.logger.Infof("Getting tasks for plan %s", planID)

	tasks, err := s.repository.GetTasksByPlanID(planID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}

	return tasks, nil
}

// Start starts the care plan service HTTP server
func (s *Service) Start(addr string) error {
	router := mux.NewRouter()
	collector := monitoring.NewMetricsCollector("careplan-service")
	mon := monitoring.NewMonitoringMiddleware(collector, nil, s.logger)
	router.Use(mon.HTTPMiddleware)
	router.Handle("/metrics", collector.Handler())
	s.setupRoutes(router)

	s.server = &http.Server{
		Addr:    addr,
		Handler: router,
	}

	s.logger.Infof("Starting Care Plan Service on %s", addr)
	return s.server.ListenAndServe()
}

// Stop stops the care plan service
func (s *Service) Stop() error {
	if s.server != nil {
		s.logger.Info("Stopping Care Plan Service")
		return s.server.Close()
	}
	return nil
}

// recomputePlanProgress derives the plan's progress from the full goal
// set and persists it. This is the only write path for plan progress.
func (s *Service) recomputePlanProgress(planID string) error {
	goals, err := s.repository.GetGoalsByPlanID(planID)
	if err != nil {
		return fmt.Errorf("failed to get goals for progress recompute: %w", err)
	}

	progress := ComputeProgress(goals)
	if err := s.repository.UpdateCarePlanProgress(planID, progress); err != nil {
		return fmt.Errorf("failed to store plan progress: %w", err)
	}

	s.logger.Infof("Recomputed progress for plan %s: %d%%", planID, progress)
	return nil
}

// goalProgressFor maps a goal status to its stored progress value
func goalProgressFor(status types.GoalStatus, current int) int {
	switch status {
	case types.GoalStatusCompleted:
		return 100
	case types.GoalStatusInProgress:
		return 50
	case types.GoalStatusNotStarted:
		return 0
	default:
		// Cancelled keeps whatever progress was reached
		return current
	}
}

// validateCarePlan validates care plan data
func (s *Service) validateCarePlan(plan *types.CarePlan) error {
	if plan.PatientID == "" {
		return fmt.Errorf("patient ID is required")
	}

	if plan.ProviderID == "" {
		return fmt.Errorf("provider ID is required")
	}

	if plan.Title == "" {
		return fmt.Errorf("title is required")
	}

	if plan.EndDate != nil && !plan.StartDate.IsZero() && plan.EndDate.Before(plan.StartDate) {
		return fmt.Errorf("end date must be after start date")
	}

	return nil
}
