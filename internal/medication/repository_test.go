package medication

import (
	"errors"
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

func TestRepository_CreateMedication(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	med := &types.Medication{
		ID:           uuid.New().String(),
		PatientID:    "patient-123",
		PrescriberID: "doctor-456",
		Name:         "Lisinopril",
		Dosage:       "10mg",
		Frequency:    "once daily",
		StartDate:    time.Now(),
		IsActive:     true,
	}

	mock.ExpectExec("INSERT INTO medications").
		WithArgs(
			med.ID,
			med.PatientID,
			med.PrescriberID,
			med.Name,
			med.Dosage,
			med.Frequency,
			med.Instructions,
			med.StartDate,
			med.EndDate,
			med.IsActive,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.CreateMedication(med)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetMedicationByID(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	medID := "med-123"
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "patient_id", "prescriber_id", "name", "dosage", "frequency",
		"instructions", "start_date", "end_date", "is_active", "created_at", "updated_at",
	}).AddRow(medID, "patient-123", "doctor-456", "Metformin", "500mg",
		"twice daily", "take with food", now, nil, true, now, now)

	mock.ExpectQuery("SELECT (.+) FROM medications").
		WithArgs(medID).
		WillReturnRows(rows)

	med, err := repo.GetMedicationByID(medID)
	require.NoError(t, err)
	assert.Equal(t, "Metformin", med.Name)
	assert.Equal(t, "twice daily", med.Frequency)
	assert.True(t, med.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetMedicationByID_NotFound(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM medications").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	med, err := repo.GetMedicationByID("missing")
	assert.Error(t, err)
	assert.Nil(t, med)
	assert.Contains(t, err.Error(), "medication not found")
}

func TestRepository_UpdateMedication(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	frequency := "every 8 hours"
	updates := &types.MedicationUpdates{Frequency: &frequency}

	mock.ExpectExec("UPDATE medications SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateMedication("med-123", updates)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateMedication_NoUpdates(t *testing.T) {
	repo, _, cleanup := setupTestRepository(t)
	defer cleanup()

	err := repo.UpdateMedication("med-123", &types.MedicationUpdates{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no updates provided")
}

func TestRepository_UpdateMedication_NotFound(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	dosage := "20mg"
	updates := &types.MedicationUpdates{Dosage: &dosage}

	mock.ExpectExec("UPDATE medications SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateMedication("missing", updates)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "medication not found")
}

func TestRepository_ReplaceReminders(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	medID := "med-123"
	reminders := []types.ReminderTime{{Hour: 9}, {Hour: 21}}

	mock.ExpectBegin()

	mock.ExpectExec("DELETE FROM medication_reminders").
		WithArgs(medID).
		WillReturnResult(sqlmock.NewResult(0, 2))

	mock.ExpectExec("INSERT INTO medication_reminders").
		WithArgs(medID, 9, 0, 0).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectExec("INSERT INTO medication_reminders").
		WithArgs(medID, 21, 0, 1).
		WillReturnResult(sqlmock.NewResult(2, 1))

	mock.ExpectCommit()

	err := repo.ReplaceReminders(medID, reminders)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ReplaceReminders_InsertFailureRollsBack(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	medID := "med-123"
	reminders := []types.ReminderTime{{Hour: 9}, {Hour: 21}}

	mock.ExpectBegin()

	mock.ExpectExec("DELETE FROM medication_reminders").
		WithArgs(medID).
		WillReturnResult(sqlmock.NewResult(0, 2))

	mock.ExpectExec("INSERT INTO medication_reminders").
		WithArgs(medID, 9, 0, 0).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectExec("INSERT INTO medication_reminders").
		WithArgs(medID, 21, 0, 1).
		WillReturnError(errors.New("connection reset"))

	mock.ExpectRollback()

	err := repo.ReplaceReminders(medID, reminders)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert reminder")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetReminders(t *testing.T) {
	repo, mock, cleanup := setupTestRepository(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"hour", "minute"}).
		AddRow(8, 0).
		AddRow(13, 0).
		AddRow(19, 0)

	mock.ExpectQuery("SELECT hour, minute FROM medication_reminders").
		WithArgs("med-123").
		WillReturnRows(rows)

	reminders, err := repo.GetReminders("med-123")
	require.NoError(t, err)
	assert.Equal(t, []types.ReminderTime{{Hour: 8}, {Hour: 13}, {Hour: 19}}, reminders)
}
