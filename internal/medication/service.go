package medication

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

// Service implements the MedicationService interface
type Service struct {
	config     *config.Config
	logger     *logger.Logger
	repository interfaces.MedicationRepository
	db         *database.DB
	server     *http.Server
}

// New creates a new medication service
func New(cfg *config.Config, log *logger.Logger) interfaces.MedicationService {
	db, err := database.NewConnection(&cfg.Database, log)
	if err != nil {
		log.Errorf("Failed to connect to database: %v", err)
		panic(err)
	}

	repository := NewRepository(db, log)

	return &Service{
		config:     cfg,
		logger:     log,
		repository: repository,
		db:         db,
	}
}

// CreateMedication creates a new medication and derives its reminder
// schedule from the frequency text
func (s *Service) CreateMedication(med *types.Medication, userID string) (*types.Medication, error) {
	s.logger.Infof("Creating medication %s for patient %s", med.Name, med.PatientID)

	if err := s.validateMedication(med); err != nil {
		return nil, fmt.Errorf("medication validation failed: %w", err)
	}

	med.ID = uuid.New().String()
	med.IsActive = true
	med.CreatedAt = time.Now()
	med.UpdatedAt = time.Now()

	if med.StartDate.IsZero() {
		med.StartDate = time.Now()
	}

	if err := s.repository.CreateMedication(med); err != nil {
		return nil, fmt.Errorf("failed to create medication: %w", err)
	}

	// Derive and persist the reminder schedule
	med.Reminders = ParseFrequency(med.Frequency)
	if err := s.repository.ReplaceReminders(med.ID, med.Reminders); err != nil {
		s.logger.Errorf("Failed to store reminders for medication %s: %v", med.ID, err)
		// The medication itself was created; reminders can be rebuilt
		// from the frequency text on the next update
	}

	s.logger.Infof("Successfully created medication %s with %d reminders", med.ID, len(med.Reminders))
	return med, nil
}

// GetMedication retrieves a medication by ID
func (s *Service) GetMedication(medID, userID string) (*types.Medication, error) {
	s.logger.Infof("Getting medication %s for user %s", medID, userID)

	med, err := s.repository.GetMedicationByID(medID)
	if err != nil {
		return nil, fmt.Errorf("failed to get medication: %w", err)
	}

	reminders, err := s.repository.GetReminders(medID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reminders: %w", err)
	}
	med.Reminders = reminders

	return med, nil
}

// UpdateMedication updates an existing medication, re-deriving the
// reminder schedule when the frequency changes
func (s *Service) UpdateMedication(medID string, updates *types.MedicationUpdates, userID string) error {
	s.logger.Infof("Updating medication %s for user %s", medID, userID)

	existing, err := s.repository.GetMedicationByID(medID)
	if err != nil {
		return fmt.Errorf("failed to get existing medication: %w", err)
	}

	if !existing.IsActive {
		return types.NewConflictError(types.ErrCodeTerminalState, "medication has been discontinued")
	}

	if err := s.repository.UpdateMedication(medID, updates); err != nil {
		return fmt.Errorf("failed to update medication: %w", err)
	}

	if updates.Frequency != nil && *updates.Frequency != existing.Frequency {
		reminders := ParseFrequency(*updates.Frequency)
		if err := s.repository.ReplaceReminders(medID, reminders); err != nil {
			return fmt.Errorf("failed to update reminders: %w", err)
		}
		s.logger.Infof("Rebuilt %d reminders for medication %s", len(reminders), medID)
	}

	s.logger.Infof("Successfully updated medication %s", medID)
	return nil
}

// DiscontinueMedication marks a medication inactive. Discontinuation is
// terminal; the record is kept for the patient's history.
func (s *Service) DiscontinueMedication(medID, userID string) error {
	s.logger.Infof("Discontinuing medication %s for user %s", medID, userID)

	active := false
	updates := &types.MedicationUpdates{IsActive: &active}

	if err := s.repository.UpdateMedication(medID, updates); err != nil {
		return fmt.Errorf("failed to discontinue medication: %w", err)
	}

	if err := s.repository.ReplaceReminders(medID, nil); err != nil {
		s.logger.Errorf("Failed to clear reminders for discontinued medication %s: %v", medID, err)
	}

	s.logger.Infof("Successfully discontinued medication %s", medID)
	return nil
}

// GetMedications retrieves medications based on filters
func (s *Service) GetMedications(userID string, filters *types.MedicationFilters) ([]*types.Medication, error) {
	s.logger.Infof("Getting medications for user %s", userID)

	medications, err := s.repository.GetMedications(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get medications: %w", err)
	}

	return medications, nil
}

// GetPatientMedications retrieves medications for a specific patient
func (s *Service) GetPatientMedications(patientID, userID string) ([]*types.Medication, error) {
	s.logger.Infof("Getting medications for patient %s requested by user %s", patientID, userID)

	filters := &types.MedicationFilters{
		PatientID: patientID,
	}

	return s.GetMedications(userID, filters)
}

// GetReminderSchedule returns the stored reminder times for a medication
func (s *Service) GetReminderSchedule(medID, userID string) ([]types.ReminderTime, error) {
	s.logger.Infof("Getting reminder schedule for medication %s", medID)

	reminders, err := s.repository.GetReminders(medID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reminder schedule: %w", err)
	}

	return reminders, nil
}

// Start starts the medication service HTTP server
func (s *Service) Start(addr string) error {
	router := mux.NewRouter()
	collector := monitoring.NewMetricsCollector("medication-service")
	mon := monitoring.NewMonitoringMiddleware(collector, nil, s.logger)
	router.Use(mon.HTTPMiddleware)
	router.Handle("/metrics", collector.Handler())
	s.setupRoutes(router)

	s.server = &http.Server{
		Addr:    addr,
		Handler: router,
	}

	s.logger.Infof("Starting Medication Service on %s", addr)
	return s.server.ListenAndServe()
}

// Stop stops the medication service
func (s *Service) Stop() error {
	if s.server != nil {
		s.logger.Info("Stopping Medication Service")
		return s.server.Close()
	}
	return nil
}

// validateMedication validates medication data
func (s *Service) validateMedication(med *types.Medication) error {
	if med.PatientID == "" {
		return fmt.Errorf("patient ID is required")
	}

	if med.PrescriberID == "" {
		return fmt.Errorf("prescriber ID is required")
	}

	if med.Name == "" {
		return fmt.Errorf("medication name is required")
	}

	if med.Dosage == "" {
		return fmt.Errorf("dosage is required")
	}

	if med.Frequency == "" {
		return fmt.Errorf("frequency is required")
	}

	if med.EndDate != nil && !med.StartDate.IsZero() && med.EndDate.Before(med.StartDate) {
		return fmt.Errorf("end date must be after start date")
	}

	return nil
}
