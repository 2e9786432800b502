package notification

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/Naveenp7/meditrack-ai-sub001/pkg/config"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/logger"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockNotificationRepository is a mock implementation of NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) CreateNotification(n *types.Notification) error {
	args := m.Called(n)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetNotifications(filters *types.NotificationFilters) ([]*types.Notification, error) {
	args := m.Called(filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(id, userID string) error {
	args := m.Called(id, userID)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetPreferences(userID string) (*types.NotificationPreferences, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.NotificationPreferences), args.Error(1)
}

func (m *MockNotificationRepository) UpsertPreferences(prefs *types.NotificationPreferences) error {
	args := m.Called(prefs)
	return args.Error(0)
}

// MockChannelSender is a mock implementation of ChannelSender
type MockChannelSender struct {
	mock.Mock
}

func (m *MockChannelSender) SendEmail(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

func (m *MockChannelSender) SendSMS(to, message string) error {
	args := m.Called(to, message)
	return args.Error(0)
}

func (m *MockChannelSender) SendPushNotification(userID, title, message string) error {
	args := m.Called(userID, title, message)
	return args.Error(0)
}

// Test setup helper
func setupTestService() (*Service, *MockNotificationRepository, *MockChannelSender) {
	mockRepo := &MockNotificationRepository{}
	mockSender := &MockChannelSender{}

	service := &Service{
		config:     &config.Config{},
		logger:     logger.New("debug"),
		repository: mockRepo,
		sender:     mockSender,
	}

	return service, mockRepo, mockSender
}

func TestService_CreateNotification_DispatchesEnabledChannels(t *testing.T) {
	service, mockRepo, mockSender := setupTestService()

	prefs := &types.NotificationPreferences{
		UserID:            "patient-123",
		EmailReminders:    true,
		SMSReminders:      false,
		PushNotifications: true,
	}

	mockRepo.On("CreateNotification", mock.AnythingOfType("*types.Notification")).Return(nil)
	mockRepo.On("GetPreferences", "patient-123").Return(prefs, nil)
	mockSender.On("SendEmail", "patient-123", "Refill due", "Metformin refill is due").Return(nil)
	mockSender.On("SendPushNotification", "patient-123", "Refill due", "Metformin refill is due").Return(nil)

	created, err := service.CreateNotification(&types.Notification{
		UserID:  "patient-123",
		Type:    types.NotificationMedicationReminder,
		Title:   "Refill due",
		Message: "Metformin refill is due",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.Read)
	mockSender.AssertCalled(t, "SendEmail", "patient-123", "Refill due", "Metformin refill is due")
	mockSender.AssertCalled(t, "SendPushNotification", "patient-123", "Refill due", "Metformin refill is due")
	mockSender.AssertNotCalled(t, "SendSMS", mock.Anything, mock.Anything)
}

func TestService_CreateNotification_DefaultPreferencesWhenUnset(t *testing.T) {
	service, mockRepo, mockSender := setupTestService()

	mockRepo.On("CreateNotification", mock.AnythingOfType("*types.Notification")).Return(nil)
	mockRepo.On("GetPreferences", "patient-123").Return(nil, sql.ErrNoRows)
	mockSender.On("SendEmail", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mockSender.On("SendPushNotification", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := service.CreateNotification(&types.Notification{
		UserID:  "patient-123",
		Type:    types.NotificationGeneral,
		Title:   "Welcome",
		Message: "Welcome to the portal",
	})

	assert.NoError(t, err)
	// Defaults enable email and push but not SMS
	mockSender.AssertCalled(t, "SendEmail", mock.Anything, mock.Anything, mock.Anything)
	mockSender.AssertCalled(t, "SendPushNotification", mock.Anything, mock.Anything, mock.Anything)
	mockSender.AssertNotCalled(t, "SendSMS", mock.Anything, mock.Anything)
}

func TestService_CreateNotification_ChannelFailureDoesNotFail(t *testing.T) {
	service, mockRepo, mockSender := setupTestService()

	prefs := &types.NotificationPreferences{
		UserID:            "patient-123",
		EmailReminders:    true,
		SMSReminders:      true,
		PushNotifications: true,
	}

	mockRepo.On("CreateNotification", mock.AnythingOfType("*types.Notification")).Return(nil)
	mockRepo.On("GetPreferences", "patient-123").Return(prefs, nil)
	mockSender.On("SendEmail", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp unavailable"))
	mockSender.On("SendSMS", mock.Anything, mock.Anything).Return(errors.New("sms gateway timeout"))
	mockSender.On("SendPushNotification", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("push token expired"))

	created, err := service.CreateNotification(&types.Notification{
		UserID:  "patient-123",
		Type:    types.NotificationGoalCompleted,
		Title:   "Goal completed",
		Message: "Walk 30 minutes daily is complete",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
}

func TestService_CreateNotification_PreferenceLoadFailureSkipsDispatch(t *testing.T) {
	service, mockRepo, mockSender := setupTestService()

	mockRepo.On("CreateNotification", mock.AnythingOfType("*types.Notification")).Return(nil)
	mockRepo.On("GetPreferences", "patient-123").Return(nil, errors.New("connection refused"))

	created, err := service.CreateNotification(&types.Notification{
		UserID:  "patient-123",
		Type:    types.NotificationGeneral,
		Title:   "Welcome",
		Message: "Welcome to the portal",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	mockSender.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything, mock.Anything)
	mockSender.AssertNotCalled(t, "SendSMS", mock.Anything, mock.Anything)
	mockSender.AssertNotCalled(t, "SendPushNotification", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_CreateNotification_InvalidType(t *testing.T) {
	service, _, _ := setupTestService()

	_, err := service.CreateNotification(&types.Notification{
		UserID: "patient-123",
		Type:   types.NotificationType("carrier_pigeon"),
		Title:  "Hello",
	})

	assert.Error(t, err)
}

func TestService_CreateNotification_MissingUser(t *testing.T) {
	service, _, _ := setupTestService()

	_, err := service.CreateNotification(&types.Notification{
		Type:  types.NotificationGeneral,
		Title: "Hello",
	})

	assert.Error(t, err)
}

func TestService_GetUserNotifications_ScopesToUser(t *testing.T) {
	service, mockRepo, _ := setupTestService()

	mockRepo.On("GetNotifications", mock.MatchedBy(func(f *types.NotificationFilters) bool {
		return f.UserID == "patient-123" && f.UnreadOnly
	})).Return([]*types.Notification{{ID: "n1", UserID: "patient-123"}}, nil)

	notifications, err := service.GetUserNotifications("patient-123", &types.NotificationFilters{UnreadOnly: true})

	assert.NoError(t, err)
	assert.Len(t, notifications, 1)
}

func TestService_MarkRead_NotFound(t *testing.T) {
	service, mockRepo, _ := setupTestService()

	mockRepo.On("MarkRead", "missing", "patient-123").Return(errors.New("notification not found: missing"))

	err := service.MarkRead("missing", "patient-123")

	assert.Error(t, err)
}

func TestService_GetPreferences_DefaultsWhenUnset(t *testing.T) {
	service, mockRepo, _ := setupTestService()

	mockRepo.On("GetPreferences", "patient-123").Return(nil, sql.ErrNoRows)

	prefs, err := service.GetPreferences("patient-123")

	assert.NoError(t, err)
	assert.True(t, prefs.EmailReminders)
	assert.False(t, prefs.SMSReminders)
	assert.True(t, prefs.PushNotifications)
}

func TestService_UpdatePreferences(t *testing.T) {
	service, mockRepo, _ := setupTestService()

	prefs := &types.NotificationPreferences{
		UserID:            "patient-123",
		EmailReminders:    false,
		SMSReminders:      true,
		PushNotifications: true,
	}

	mockRepo.On("UpsertPreferences", prefs).Return(nil)

	err := service.UpdatePreferences(prefs)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
