package medication

import (
	"testing"
	"time"

	"github.com/Naveenp7/meditrack-ai-sub001/pkg/config"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/logger"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockMedicationRepository is a mock implementation of MedicationRepository
type MockMedicationRepository struct {
	mock.Mock
}

func (m *MockMedicationRepository) CreateMedication(med *types.Medication) error {
	args := m.Called(med)
	return args.Error(0)
}

func (m *MockMedicationRepository) GetMedicationByID(id string) (*types.Medication, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Medication), args.Error(1)
}

func (m *MockMedicationRepository) UpdateMedication(id string, updates *types.MedicationUpdates) error {
	args := m.Called(id, updates)
	return args.Error(0)
}

func (m *MockMedicationRepository) GetMedications(filters *types.MedicationFilters) ([]*types.Medication, error) {
	args := m.Called(filters)
	return args.Get(0).([]*types.Medication), args.Error(1)
}

func (m *MockMedicationRepository) ReplaceReminders(medID string, reminders []types.ReminderTime) error {
	args := m.Called(medID, reminders)
	return args.Error(0)
}

func (m *MockMedicationRepository) GetReminders(medID string) ([]types.ReminderTime, error) {
	args := m.Called(medID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.ReminderTime), args.Error(1)
}

// Test setup helper
func setupTestService() (*Service, *MockMedicationRepository) {
	mockRepo := &MockMedicationRepository{}

	service := &Service{
		config:     &config.Config{},
		logger:     logger.New("debug"),
		repository: mockRepo,
	}

	return service, mockRepo
}

func TestService_CreateMedication(t *testing.T) {
	service, mockRepo := setupTestService()

	med := &types.Medication{
		PatientID:    "patient-123",
		PrescriberID: "doctor-456",
		Name:         "Amoxicillin",
		Dosage:       "250mg",
		Frequency:    "three times daily",
	}

	mockRepo.On("CreateMedication", mock.AnythingOfType("*types.Medication")).Return(nil)
	mockRepo.On("ReplaceReminders", mock.AnythingOfType("string"),
		[]types.ReminderTime{{Hour: 9}, {Hour: 14}, {Hour: 21}}).Return(nil)

	created, err := service.CreateMedication(med, "doctor-456")
	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.IsActive)
	assert.Equal(t, []types.ReminderTime{{Hour: 9}, {Hour: 14}, {Hour: 21}}, created.Reminders)
	mockRepo.AssertExpectations(t)
}

func TestService_CreateMedication_DefaultReminder(t *testing.T) {
	service, mockRepo := setupTestService()

	med := &types.Medication{
		PatientID:    "patient-123",
		PrescriberID: "doctor-456",
		Name:         "Vitamin D",
		Dosage:       "1000 IU",
		Frequency:    "as directed",
	}

	mockRepo.On("CreateMedication", mock.AnythingOfType("*types.Medication")).Return(nil)
	mockRepo.On("ReplaceReminders", mock.AnythingOfType("string"),
		[]types.ReminderTime{{Hour: 9}}).Return(nil)

	created, err := service.CreateMedication(med, "doctor-456")
	assert.NoError(t, err)
	assert.Equal(t, []types.ReminderTime{{Hour: 9}}, created.Reminders)
	mockRepo.AssertExpectations(t)
}

func TestService_CreateMedication_ValidationFails(t *testing.T) {
	service, _ := setupTestService()

	med := &types.Medication{
		PatientID: "patient-123",
		Name:      "Aspirin",
	}

	created, err := service.CreateMedication(med, "doctor-456")
	assert.Error(t, err)
	assert.Nil(t, created)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestService_UpdateMedication_FrequencyChangeRebuildsReminders(t *testing.T) {
	service, mockRepo := setupTestService()

	existing := &types.Medication{
		ID:        "med-123",
		PatientID: "patient-123",
		Frequency: "once daily",
		IsActive:  true,
	}

	newFreq := "every 8 hours"
	updates := &types.MedicationUpdates{Frequency: &newFreq}

	mockRepo.On("GetMedicationByID", "med-123").Return(existing, nil)
	mockRepo.On("UpdateMedication", "med-123", updates).Return(nil)
	mockRepo.On("ReplaceReminders", "med-123",
		[]types.ReminderTime{{Hour: 0}, {Hour: 8}, {Hour: 16}}).Return(nil)

	err := service.UpdateMedication("med-123", updates, "doctor-456")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestService_UpdateMedication_DosageOnlyKeepsReminders(t *testing.T) {
	service, mockRepo := setupTestService()

	existing := &types.Medication{
		ID:        "med-123",
		Frequency: "twice daily",
		IsActive:  true,
	}

	dosage := "20mg"
	updates := &types.MedicationUpdates{Dosage: &dosage}

	mockRepo.On("GetMedicationByID", "med-123").Return(existing, nil)
	mockRepo.On("UpdateMedication", "med-123", updates).Return(nil)

	err := service.UpdateMedication("med-123", updates, "doctor-456")
	assert.NoError(t, err)
	mockRepo.AssertNotCalled(t, "ReplaceReminders", mock.Anything, mock.Anything)
}

func TestService_UpdateMedication_Discontinued(t *testing.T) {
	service, mockRepo := setupTestService()

	existing := &types.Medication{
		ID:       "med-123",
		IsActive: false,
	}

	dosage := "20mg"
	updates := &types.MedicationUpdates{Dosage: &dosage}

	mockRepo.On("GetMedicationByID", "med-123").Return(existing, nil)

	err := service.UpdateMedication("med-123", updates, "doctor-456")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "discontinued")
}

func TestService_DiscontinueMedication(t *testing.T) {
	service, mockRepo := setupTestService()

	mockRepo.On("UpdateMedication", "med-123", mock.MatchedBy(func(u *types.MedicationUpdates) bool {
		return u.IsActive != nil && !*u.IsActive
	})).Return(nil)
	mockRepo.On("ReplaceReminders", "med-123", []types.ReminderTime(nil)).Return(nil)

	err := service.DiscontinueMedication("med-123", "doctor-456")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestService_GetMedication_IncludesReminders(t *testing.T) {
	service, mockRepo := setupTestService()

	existing := &types.Medication{
		ID:        "med-123",
		Frequency: "with meals",
		IsActive:  true,
		CreatedAt: time.Now(),
	}

	mockRepo.On("GetMedicationByID", "med-123").Return(existing, nil)
	mockRepo.On("GetReminders", "med-123").Return(
		[]types.ReminderTime{{Hour: 8}, {Hour: 13}, {Hour: 19}}, nil)

	med, err := service.GetMedication("med-123", "patient-123")
	assert.NoError(t, err)
	assert.Len(t, med.Reminders, 3)
	mockRepo.AssertExpectations(t)
}

func TestService_GetPatientMedications(t *testing.T) {
	service, mockRepo := setupTestService()

	expected := []*types.Medication{
		{ID: "med-1", PatientID: "patient-123"},
		{ID: "med-2", PatientID: "patient-123"},
	}

	mockRepo.On("GetMedications", mock.MatchedBy(func(f *types.MedicationFilters) bool {
		return f.PatientID == "patient-123"
	})).Return(expected, nil)

	medications, err := service.GetPatientMedications("patient-123", "doctor-456")
	assert.NoError(t, err)
	assert.Len(t, medications, 2)
	mockRepo.AssertExpectations(t)
}
