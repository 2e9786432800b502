package interfaces

import (
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/types"
)

// MedicationService defines the interface for medication management
type MedicationService interface {
	// Medication management
	CreateMedication(med *types.Medication, userID string) (*types.Medication, error)
	GetMedication(medID, userID string) (*types.Medication, error)
	UpdateMedication(medID string, updates *types.MedicationUpdates, userID string) error
	DiscontinueMedication(medID, userID string) error

	// Medication queries
	GetMedications(userID string, filters *types.MedicationFilters) ([]*types.Medication, error)
	GetPatientMedications(patientID, userID string) ([]*types.Medication, error)

	// Reminder schedules
	GetReminderSchedule(medID, userID string) ([]types.ReminderTime, error)

	// Service management
	Start(addr string) error
	Stop() error
}

// MedicationRepository defines the interface for medication persistence
type MedicationRepository interface {
	CreateMedication(med *types.Medication) error
	GetMedicationByID(id string) (*types.Medication, error)
	UpdateMedication(id string, updates *types.MedicationUpdates) error
	GetMedications(filters *types.MedicationFilters) ([]*types.Medication, error)

	// Reminder rows derived from the medication's frequency text
	ReplaceReminders(medID string, reminders []types.ReminderTime) error
	GetReminders(medID string) ([]types.ReminderTime, error)
}
