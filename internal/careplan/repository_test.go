package careplan

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/database"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/logger"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := &Repository{
		db:     &database.DB{DB: db},
		logger: logger.New("debug"),
	}

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestRepository_CreateCarePlan(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	plan := &types.CarePlan{
		ID:         uuid.New().String(),
		PatientID:  "patient-123",
		ProviderID: "doctor-456",
		Title:      "Hypertension Management",
		Status:     types.PlanStatusActive,
		StartDate:  time.Now(),
	}

	mock.ExpectExec("INSERT INTO care_plans").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.CreateCarePlan(plan)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetCarePlanByID_NotFound(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM care_plans").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	plan, err := repo.GetCarePlanByID("missing")
	assert.Error(t, err)
	assert.Nil(t, plan)
	assert.Contains(t, err.Error(), "care plan not found")
}

func TestRepository_UpdateCarePlanProgress(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	mock.ExpectExec("UPDATE care_plans SET progress").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateCarePlanProgress("plan-123", 75)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateCarePlanProgress_NotFound(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	mock.ExpectExec("UPDATE care_plans SET progress").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateCarePlanProgress("missing", 75)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "care plan not found")
}

func TestRepository_GetGoalsByPlanID(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "plan_id", "description", "status", "progress", "target_date", "created_at", "updated_at",
	}).
		AddRow("goal-1", "plan-123", "Walk daily", "completed", 100, nil, now, now).
		AddRow("goal-2", "plan-123", "Reduce sodium", "in_progress", 50, nil, now, now)

	mock.ExpectQuery("SELECT (.+) FROM goals").
		WithArgs("plan-123").
		WillReturnRows(rows)

	goals, err := repo.GetGoalsByPlanID("plan-123")
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, types.GoalStatusCompleted, goals[0].Status)
	assert.Equal(t, types.GoalStatusInProgress, goals[1].Status)
}

func TestRepository_UpdateGoalStatus(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	mock.ExpectExec("UPDATE goals SET status").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateGoalStatus("goal-1", types.GoalStatusCompleted, 100)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CompleteTask_NotFound(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	mock.ExpectExec("UPDATE plan_tasks SET completed").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.CompleteTask("missing")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "task not found")
}
