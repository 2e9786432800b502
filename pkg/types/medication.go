package types

import (
	"fmt"
	"time"
)

// Medication represents a prescribed medication for a patient
type Medication struct {
	ID          string         `json:"id" db:"id"`
	PatientID   string         `json:"patient_id" db:"patient_id"`
	PrescriberID string        `json:"prescriber_id" db:"prescriber_id"`
	Name        string         `json:"name" db:"name"`
	Dosage      string         `json:"dosage" db:"dosage"`
	Frequency   string         `json:"frequency" db:"frequency"`
	Instructions string        `json:"instructions" db:"instructions"`
	StartDate   time.Time      `json:"start_date" db:"start_date"`
	EndDate     *time.Time     `json:"end_date,omitempty" db:"end_date"`
	IsActive    bool           `json:"is_active" db:"is_active"`
	Reminders   []ReminderTime `json:"reminders"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

// ReminderTime is a wall-clock time of day at which a medication
// reminder should fire
type ReminderTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// String formats the reminder time as HH:MM
func (rt ReminderTime) String() string {
	return fmt.Sprintf("%02d:%02d", rt.Hour, rt.Minute)
}

// MedicationUpdates represents updates to a medication
type MedicationUpdates struct {
	Dosage       *string    `json:"dosage,omitempty"`
	Frequency    *string    `json:"frequency,omitempty"`
	Instructions *string    `json:"instructions,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	IsActive     *bool      `json:"is_active,omitempty"`
}

// MedicationFilters represents filters for medication queries
type MedicationFilters struct {
	PatientID    string `json:"patient_id,omitempty"`
	PrescriberID string `json:"prescriber_id,omitempty"`
	ActiveOnly   bool   `json:"active_only,omitempty"`
	Limit        int    `json:"limit,omitempty"`
	Offset       int    `json:"offset,omitempty"`
}
