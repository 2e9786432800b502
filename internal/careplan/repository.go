package careplan

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Naveenp7/meditrack-ai-sub001/pkg/database"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/interfaces"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/logger"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/types"
)

// Repository implements the CarePlanRepository interface
type Repository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewRepository creates a new care plan repository
func NewRepository(db *database.DB, log *logger.Logger) interfaces.CarePlanRepository {
	return &Repository{
		db:     db,
		logger: log,
	}
}

// CreateCarePlan creates a new care plan
func (r *Repository) CreateCarePlan(plan *types.CarePlan) error {
	query := `
		INSERT INTO care_plans (
			id, patient_id, provider_id, title, description, status,
			progress, start_date, end_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(query,
		plan.ID,
		plan.PatientID,
		plan.ProviderID,
		plan.Title,
		plan.Description,
		plan.Status,
		plan.Progress,
		plan.StartDate,
		plan.EndDate,
	)

	if err != nil {
		r.logger.Errorf("Failed to create care plan: %v", err)
		return fmt.Errorf("failed to create care plan: %w", err)
	}

	r.logger.Infof("Created care plan %s for patient %s", plan.ID, plan.PatientID)
	return nil
}

// GetCarePlanByID retrieves a care plan by ID
func (r *Repository) GetCarePlanByID(id string) (*types.CarePlan, error) {
	query := `
		SELECT id, patient_id, provider_id, title, description, status,
			   progress, start_date, end_date, created_at, updated_at
		FROM care_plans
		WHERE id = $1`

	plan := &types.CarePlan{}
	err := r.db.QueryRow(query, id).Scan(
		&plan.ID,
		&plan.PatientID,
		&plan.ProviderID,
		&plan.Title,
		&plan.Description,
		&plan.Status,
		&plan.Progress,
		&plan.StartDate,
		&plan.EndDate,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("care plan not found: %s", id)
		}
		r.logger.Errorf("Failed to get care plan %s: %v", id, err)
		return nil, fmt.Errorf("failed to get care plan: %w", err)
	}

	return plan, nil
}

// GetCarePlans retrieves care plans based on filters
func (r *Repository) GetCarePlans(filters *types.CarePlanFilters) ([]*types.CarePlan, error) {
	query := `
		SELECT id, patient_id, provider_id, title, description, status,
			   progress, start_date, end_date, created_at, updated_at
		FROM care_plans
		WHERE 1=1`

	args := []interface{}{}
	argIndex := 1

	if filters.PatientID != "" {
		query += fmt.Sprintf(" AND patient_id = $%d", argIndex)
		args = append(args, filters.PatientID)
		argIndex++
	}

	if filters.ProviderID != "" {
		query += fmt.Sprintf(" AND provider_id = $%d", argIndex)
		args = append(args, filters.ProviderID)
		argIndex++
	}

	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, string(filters.Status))
		argIndex++
	}

	query += " ORDER BY created_at DESC"

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filters.Limit)
		argIndex++
	}

	if filters.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, filters.Offset)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.logger.Errorf("Failed to get care plans: %v", err)
		return nil, fmt.Errorf("failed to get care plans: %w", err)
	}
	defer rows.Close()

	var plans []*types.CarePlan
	for rows.Next() {
		plan := &types.CarePlan{}
		err := rows.Scan(
			&plan.ID,
			&plan.PatientID,
			&plan.ProviderID,
			&plan.Title,
			&plan.Description,
			&plan.Status,
			&plan.Progress,
			&plan.StartDate,
			&plan.EndDate,
			&plan.CreatedAt,
			&plan.UpdatedAt,
		)
		if err != nil {
			r.logger.Errorf("Failed to scan care plan: %v", err)
			return nil, fmt.Errorf("failed to scan care plan: %w", err)
		}
		plans = append(plans, plan)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating care plans: %w", err)
	}

	return plans, nil
}

// UpdateCarePlanStatus updates a care plan's status
func (r *Repository) UpdateCarePlanStatus(id string, status types.CarePlanStatus) error {
	query := `UPDATE care_plans SET status = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(query, string(status), time.Now(), id)
	if err != nil {
		r.logger.Errorf("Failed to update care plan %s status: %v", id, err)
		return fmt.Errorf("failed to update care plan status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("care plan not found: %s", id)
	}

	r.logger.Infof("Updated care plan %s status to %s", id, status)
	return nil
}

// UpdateCarePlanProgress writes the aggregated progress for a plan
func (r *Repository) UpdateCarePlanProgress(id string, progress int) error {
	query := `UPDATE care_plans SET progress = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(query, progress, time.Now(), id)
	if err != nil {
		r.logger.Errorf("Failed to update care plan %s progress: %v", id, err)
		return fmt.Errorf("failed to update care plan progress: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("care plan not found: %s", id)
	}

	return nil
}

// CreateGoal creates a new goal
func (r *Repository) CreateGoal(goal *types.Goal) error {
	query := `
		INSERT INTO goals (id, plan_id, description, status, progress, target_date)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		goal.ID,
		goal.PlanID,
		goal.Description,
		string(goal.Status),
		goal.Progress,
		goal.TargetDate,
	)

	if err != nil {
		r.logger.Errorf("Failed to create goal: %v", err)
		return fmt.Errorf("failed to create goal: %w", err)
	}

	r.logger.Infof("Created goal %s for plan %s", goal.ID, goal.PlanID)
	return nil
}

// GetGoalByID retrieves a goal by ID
func (r *Repository) GetGoalByID(id string) (*types.Goal, error) {
	query := `
		SELECT id, plan_id, description, status, progress, target_date, created_at, updated_at
		FROM goals
		WHERE id = $1`

	goal := &types.Goal{}
	err := r.db.QueryRow(query, id).Scan(
		&goal.ID,
		&goal.PlanID,
		&goal.Description,
		&goal.Status,
		&goal.Progress,
		&goal.TargetDate,
		&goal.CreatedAt,
		&goal.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("goal not found: %s", id)
		}
		r.logger.Errorf("Failed to get goal %s: %v", id, err)
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}

	return goal, nil
}

// GetGoalsByPlanID retrieves all goals for a care plan in creation order
func (r *Repository) GetGoalsByPlanID(planID string) ([]*types.Goal, error) {
	query := `
		SELECT id, plan_id, description, status, progress, target_date, created_at, updated_at
		FROM goals
		WHERE plan_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.Query(query, planID)
	if err != nil {
		r.logger.Errorf("Failed to get goals for plan %s: %v", planID, err)
		return nil, fmt.Errorf("failed to get goals: %w", err)
	}
	defer rows.Close()

	var goals []*types.Goal
	for rows.Next() {
		goal := &types.Goal{}
		err := rows.Scan(
			&goal.ID,
			&goal.PlanID,
			&goal.Description,
			&goal.Status,
			&goal.Progress,
			&goal.TargetDate,
			&goal.CreatedAt,
			&goal.UpdatedAt,
		)
		if err != nil {
			r.logger.Errorf("Failed to scan goal: %v", err)
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, goal)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goals: %w", err)
	}

	return goals, nil
}

// UpdateGoalStatus updates a goal's status and progress value
func (r *Repository) UpdateGoalStatus(id string, status types.GoalStatus, progress int) error {
	query := `UPDATE goals SET status = $1, progress = $2, updated_at = $3 WHERE id = $4`

	result, err := r.db.Exec(query, string(status), progress, time.Now(), id)
	if err != nil {
		r.logger.Errorf("Failed to update goal %s: %v", id, err)
		return fmt.Errorf("failed to update goal: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("goal not found: %s", id)
	}

	r.logger.Infof("Updated goal %s status to %s", id, status)
	return nil
}

// CreateTask creates a new plan task
func (r *Repository) CreateTask(task *types.PlanTask) error {
	query := `
		INSERT INTO plan_tasks (id, plan_id, description, completed, due_date)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query,
		task.ID,
		task.PlanID,
		task.Description,
		task.Completed,
		task.DueDate,
	)

	if err != nil {
		r.logger.Errorf("Failed to create task: %v", err)
		return fmt.Errorf("failed to create task: %w", err)
	}

	r.logger.Infof("Created task %s for plan %s", task.ID, task.PlanID)
	return nil
}

// GetTaskByID retrieves a plan task by ID
func (r *Repository) GetTaskByID(id string) (*types.PlanTask, error) {
	query := `
		SELECT id, plan_id, description, completed, due_date, created_at, updated_at
		FROM plan_tasks
		WHERE id = $1`

	task := &types.PlanTask{}
	err := r.db.QueryRow(query, id).Scan(
		&task.ID,
		&task.PlanID,
		&task.Description,
		&task.Completed,
		&task.DueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("task not found: %s", id)
		}
		r.logger.Errorf("Failed to get task %s: %v", id, err)
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

// GetTasksByPlanID retrieves all tasks for a care plan in creation order
func (r *Repository) GetTasksByPlanID(planID string) ([]*types.PlanTask, error) {
	query := `
		SELECT id, plan_id, description, completed, due_date, created_at, updated_at
		FROM plan_tasks
		WHERE plan_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.Query(query, planID)
	if err != nil {
		r.logger.Errorf("Failed to get tasks for plan %s: %v", planID, err)
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*types.PlanTask
	for rows.Next() {
		task := &types.PlanTask{}
		err := rows.Scan(
			&task.ID,
			&task.PlanID,
			&task.Description,
			&task.Completed,
			&task.DueDate,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			r.logger.Errorf("Failed to scan task: %v", err)
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	return tasks, nil
}

// CompleteTask marks a plan task as completed
func (r *Repository) CompleteTask(id string) error {
	query := `UPDATE plan_tasks SET completed = TRUE, updated_at = $1 WHERE id = $2`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		r.logger.Errorf("Failed to complete task %s: %v", id, err)
		return fmt.Errorf("failed to complete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("task not found: %s", id)
	}

	r.logger.Infof("Completed task %s", id)
	return nil
}
