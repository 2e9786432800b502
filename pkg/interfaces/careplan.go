package interfaces

import (
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/types"
)

// CarePlanService defines the interface for care plan management
type CarePlanService interface {
	// Plan management
	CreateCarePlan(plan *types.CarePlan, userID string) (*types.CarePlan, error)
	GetCarePlan(planID, userID string) (*types.CarePlan, error)
	GetPatientCarePlans(patientID, userID string) ([]*types.CarePlan, error)
	UpdateCarePlanStatus(planID string, status types.CarePlanStatus, userID string) error

	// Goal management
	AddGoal(goal *types.Goal, userID string) (*types.Goal, error)
	UpdateGoalStatus(goalID string, status types.GoalStatus, userID string) error
	GetPlanGoals(planID, userID string) ([]*types.Goal, error)

	// Task management
	AddTask(task *types.PlanTask, userID string) (*types.PlanTask, error)
	CompleteTask(taskID, userID string) error
	GetPlanTasks(planID, userID string) ([]*types.PlanTask, error)

	// Service management
	Start(addr string) error
	Stop() error
}

// CarePlanRepository defines the interface for care plan persistence
type CarePlanRepository interface {
	// Plans
	CreateCarePlan(plan *types.CarePlan) error
	GetCarePlanByID(id string) (*types.CarePlan, error)
	GetCarePlans(filters *types.CarePlanFilters) ([]*types.CarePlan, error)
	UpdateCarePlanStatus(id string, status types.CarePlanStatus) error

	// Progress is only ever written through this path, fed by the
	// aggregator; there is no general-purpose plan update
	UpdateCarePlanProgress(id string, progress int) error

	// Goals
	CreateGoal(goal *types.Goal) error
	GetGoalByID(id string) (*types.Goal, error)
	GetGoalsByPlanID(planID string) ([]*types.Goal, error)
	UpdateGoalStatus(id string, status types.GoalStatus, progress int) error

	// Tasks
	CreateTask(task *types.PlanTask) error
	GetTaskByID(id string) (*types.PlanTask, error)
	GetTasksByPlanID(planID string) ([]*types.PlanTask, error)
	CompleteTask(id string) error
}

// GoalNotifier is the collaborator invoked when a goal transitions into
// the completed status
type GoalNotifier interface {
	NotifyGoalCompleted(userID string, plan *types.CarePlan, goal *types.Goal) error
}
