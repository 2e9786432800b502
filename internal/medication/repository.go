package medication

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Naveenp7/meditrack-ai-sub001/pkg/database"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/interfaces"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/logger"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/types"
)

// Repository implements the MedicationRepository interface
type Repository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewRepository creates a new medication repository
func NewRepository(db *database.DB, log *logger.Logger) interfaces.MedicationRepository {
	return &Repository{
		db:     db,
		logger: log,
	}
}

// CreateMedication creates a new medication
func (r *Repository) CreateMedication(med *types.Medication) error {
	query := `
		INSERT INTO medications (
			id, patient_id, prescriber_id, name, dosage, frequency,
			instructions, start_date, end_date, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(query,
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
	)

	if err != nil {
		r.logger.Errorf("Failed to create medication: %v", err)
		return fmt.Errorf("failed to create medication: %w", err)
	}

	r.logger.Infof("Created medication %s for patient %s", med.ID, med.PatientID)
	return nil
}

// GetMedicationByID retrieves a medication by ID
func (r *Repository) GetMedicationByID(id string) (*types.Medication, error) {
	query := `
		SELECT id, patient_id, prescriber_id, name, dosage, frequency,
			   instructions, start_date, end_date, is_active, created_at, updated_at
		FROM medications
		WHERE id = $1`

	med := &types.Medication{}
	err := r.db.QueryRow(query, id).Scan(
		&med.ID,
		&med.PatientID,
		&med.PrescriberID,
		&med.Name,
		&med.Dosage,
		&med.Frequency,
		&med.Instructions,
		&med.StartDate,
		&med.EndDate,
		&med.IsActive,
		&med.CreatedAt,
		&med.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("medication not found: %s", id)
		}
		r.logger.Errorf("Failed to get medication %s: %v", id, err)
		return nil, fmt.Errorf("failed to get medication: %w", err)
	}

	return med, nil
}

// UpdateMedication updates an existing medication
func (r *Repository) UpdateMedication(id string, updates *types.MedicationUpdates) error {
	setParts := []string{}
	args := []interface{}{}
	argIndex := 1

	if updates.Dosage != nil {
		setParts = append(setParts, fmt.Sprintf("dosage = $%d", argIndex))
		args = append(args, *updates.Dosage)
		argIndex++
	}

	if updates.Frequency != nil {
		setParts = append(setParts, fmt.Sprintf("frequency = $%d", argIndex))
		args = append(args, *updates.Frequency)
		argIndex++
	}

	if updates.Instructions != nil {
		setParts = append(setParts, fmt.Sprintf("instructions = $%d", argIndex))
		args = append(args, *updates.Instructions)
		argIndex++
	}

	if updates.EndDate != nil {
		setParts = append(setParts, fmt.Sprintf("end_date = $%d", argIndex))
		args = append(args, *updates.EndDate)
		argIndex++
	}

	if updates.IsActive != nil {
		setParts = append(setParts, fmt.Sprintf("is_active = $%d", argIndex))
		args = append(args, *updates.IsActive)
		argIndex++
	}

	if len(setParts) == 0 {
		return fmt.Errorf("no updates provided")
	}

	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", argIndex))
	args = append(args, time.Now())
	argIndex++

	query := fmt.Sprintf("UPDATE medications SET %s WHERE id = $%d", strings.Join(setParts, ", "), argIndex)
	args = append(args, id)

	result, err := r.db.Exec(query, args...)
	if err != nil {
		r.logger.Errorf("Failed to update medication %s: %v", id, err)
		return fmt.Errorf("failed to update medication: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("medication not found: %s", id)
	}

	r.logger.Infof("Updated medication %s", id)
	return nil
}

// GetMedications retrieves medications based on filters
func (r *Repository) GetMedications(filters *types.MedicationFilters) ([]*types.Medication, error) {
	query := `
		SELECT id, patient_id, prescriber_id, name, dosage, frequency,
			   instructions, start_date, end_date, is_active, created_at, updated_at
		FROM medications
		WHERE 1=1`

	args := []interface{}{}
	argIndex := 1

	if filters.PatientID != "" {
		query += fmt.Sprintf(" AND patient_id = $%d", argIndex)
		args = append(args, filters.PatientID)
		argIndex++
	}

	if filters.PrescriberID != "" {
		query += fmt.Sprintf(" AND prescriber_id = $%d", argIndex)
		args = append(args, filters.PrescriberID)
		argIndex++
	}

	if filters.ActiveOnly {
		query += " AND is_active = TRUE"
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
		r.logger.Errorf("Failed to get medications: %v", err)
		return nil, fmt.Errorf("failed to get medications: %w", err)
	}
	defer rows.Close()

	var medications []*types.Medication
	for rows.Next() {
		med := &types.Medication{}
		err := rows.Scan(
			&med.ID,
			&med.PatientID,
			&med.PrescriberID,
			&med.Name,
			&med.Dosage,
			&med.Frequency,
			&med.Instructions,
			&med.StartDate,
			&med.EndDate,
			&med.IsActive,
			&med.CreatedAt,
			&med.UpdatedAt,
		)
		if err != nil {
			r.logger.Errorf("Failed to scan medication: %v", err)
			return nil, fmt.Errorf("failed to scan medication: %w", err)
		}
		medications = append(medications, med)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating medications: %w", err)
	}

	return medications, nil
}

// ReplaceReminders replaces the reminder rows for a medication with the
// given set, preserving their order
func (r *Repository) ReplaceReminders(medID string, reminders []types.ReminderTime) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	deleteQuery := `DELETE FROM medication_reminders WHERE medication_id = $1`
	if _, err := tx.Exec(deleteQuery, medID); err != nil {
		r.logger.Errorf("Failed to clear reminders for medication %s: %v", medID, err)
		return fmt.Errorf("failed to clear reminders: %w", err)
	}

	insertQuery := `
		INSERT INTO medication_reminders (medication_id, hour, minute, position)
		VALUES ($1, $2, $3, $4)`

	for i, rt := range reminders {
		if _, err := tx.Exec(insertQuery, medID, rt.Hour, rt.Minute, i); err != nil {
			r.logger.Errorf("Failed to insert reminder for medication %s: %v", medID, err)
			return fmt.Errorf("failed to insert reminder: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reminders: %w", err)
	}

	r.logger.Infof("Stored %d reminders for medication %s", len(reminders), medID)
	return nil
}

// GetReminders retrieves the reminder times for a medication in order
func (r *Repository) GetReminders(medID string) ([]types.ReminderTime, error) {
	query := `
		SELECT hour, minute
		FROM medication_reminders
		WHERE medication_id = $1
		ORDER BY position ASC`

	rows, err := r.db.Query(query, medID)
	if err != nil {
		r.logger.Errorf("Failed to get reminders for medication %s: %v", medID, err)
		return nil, fmt.Errorf("failed to get reminders: %w", err)
	}
	defer rows.Close()

	var reminders []types.ReminderTime
	for rows.Next() {
		var rt types.ReminderTime
		if err := rows.Scan(&rt.Hour, &rt.Minute); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		reminders = append(reminders, rt)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reminders: %w", err)
	}

	return reminders, nil
}
