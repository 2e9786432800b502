package types

import "time"

// CarePlanStatus represents care plan status values
type CarePlanStatus string

const (
	PlanStatusActive    CarePlanStatus = "active"
	PlanStatusCompleted CarePlanStatus = "completed"
	PlanStatusCancelled CarePlanStatus = "cancelled"
)

// IsTerminal reports whether the plan status is final
func (s CarePlanStatus) IsTerminal() bool {
	return s == PlanStatusCompleted || s == PlanStatusCancelled
}

// GoalStatus represents goal status values
type GoalStatus string

const (
	GoalStatusNotStarted GoalStatus = "not_started"
	GoalStatusInProgress GoalStatus = "in_progress"
	GoalStatusCompleted  GoalStatus = "completed"
	GoalStatusCancelled  GoalStatus = "cancelled"
)

// IsTerminal reports whether the goal status is final
func (s GoalStatus) IsTerminal() bool {
	return s == GoalStatusCompleted || s == GoalStatusCancelled
}

// CarePlan represents a provider-authored treatment plan for a patient.
// Progress is derived from the plan's goals and is never written directly.
type CarePlan struct {
	ID          string         `json:"id" db:"id"`
	PatientID   string         `json:"patient_id" db:"patient_id"`
	ProviderID  string         `json:"provider_id" db:"provider_id"`
	Title       string         `json:"title" db:"title"`
	Description string         `json:"description" db:"description"`
	Status      CarePlanStatus `json:"status" db:"status"`
	Progress    int            `json:"progress" db:"progress"`
	StartDate   time.Time      `json:"start_date" db:"start_date"`
	EndDate     *time.Time     `json:"end_date,omitempty" db:"end_date"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

// Goal represents a single goal within a care plan. Goals are never
// deleted; cancelled is a terminal status, not removal.
type Goal struct {
	ID          string     `json:"id" db:"id"`
	PlanID      string     `json:"plan_id" db:"plan_id"`
	Description string     `json:"description" db:"description"`
	Status      GoalStatus `json:"status" db:"status"`
	Progress    int        `json:"progress" db:"progress"`
	TargetDate  *time.Time `json:"target_date,omitempty" db:"target_date"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// PlanTask represents an actionable task within a care plan
type PlanTask struct {
	ID          string     `json:"id" db:"id"`
	PlanID      string     `json:"plan_id" db:"plan_id"`
	Description string     `json:"description" db:"description"`
	Completed   bool       `json:"completed" db:"completed"`
	DueDate     *time.Time `json:"due_date,omitempty" db:"due_date"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// CarePlanFilters represents filters for care plan queries
type CarePlanFilters struct {
	PatientID  string         `json:"patient_id,omitempty"`
	ProviderID string         `json:"provider_id,omitempty"`
	Status     CarePlanStatus `json:"status,omitempty"`
	Limit      int            `json:"limit,omitempty"`
	Offset     int            `json:"offset,omitempty"`
}
