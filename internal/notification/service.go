package notification

import (
	"database/sql"
	"errors"
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

// Service implements the NotificationService interface
type Service struct {
	config     *config.Config
	logger     *logger.Logger
	repository interfaces.NotificationRepository
	sender     interfaces.ChannelSender
	db         *database.DB
	server     *http.Server
}

// New creates a new notification service
func New(cfg *config.Config, log *logger.Logger) interfaces.NotificationService {
	db, err := database.NewConnection(&cfg.Database, log)
	if err != nil {
		log.Errorf("Failed to connect to database: %v", err)
		panic(err)
	}

	repository := NewRepository(db, log)
	sender := NewChannelSender(&cfg.Notification, log)

	return &Service{
		config:     cfg,
		logger:     log,
		repository: repository,
		sender:     sender,
		db:         db,
	}
}

// CreateNotification stores a notification and dispatches it over the
// channels enabled by the recipient's preferences
func (s *Service) CreateNotification(n *types.Notification) (*types.Notification, error) {
	if n.UserID == "" {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput, "user ID is required", nil)
	}
	if n.Title == "" {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput, "title is required", nil)
	}
	if !isValidNotificationType(n.Type) {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput, fmt.Sprintf("invalid notification type: %s", n.Type), nil)
	}

	n.ID = uuid.New().String()
	n.Read = false
	n.CreatedAt = time.Now()

	if err := s.repository.CreateNotification(n); err != nil {
		s.logger.WithError(err).Error("Failed to create notification")
		return nil, types.NewInternalError(types.ErrCodeInternalError, "failed to create notification", err)
	}

	prefs, err := s.GetPreferences(n.UserID)
	if err != nil {
		// Delivery is best effort, the stored notification is the source of truth
		s.logger.WithUserID(n.UserID).WithError(err).Warn("Failed to load preferences, skipping channel dispatch")
		return n, nil
	}

	s.dispatch(n, prefs)

	s.logger.WithUserID(n.UserID).Infof("Created notification %s of type %s", n.ID, n.Type)
	return n, nil
}

// dispatch delivers a stored notification over each enabled channel.
// Channel failures are logged and do not fail the notification.
func (s *Service) dispatch(n *types.Notification, prefs *types.NotificationPreferences) {
	if prefs.EmailReminders {
		if err := s.sender.SendEmail(n.UserID, n.Title, n.Message); err != nil {
			s.logger.WithUserID(n.UserID).WithError(err).Warn("Email delivery failed")
		}
	}

	if prefs.SMSReminders {
		if err := s.sender.SendSMS(n.UserID, n.Message); err != nil {
			s.logger.WithUserID(n.UserID).WithError(err).Warn("SMS delivery failed")
		}
	}

	if prefs.PushNotifications {
		if err := s.sender.SendPushNotification(n.UserID, n.Title, n.Message); err != nil {
			s.logger.WithUserID(n.UserID).WithError(err).Warn("Push delivery failed")
		}
	}
}

// GetUserNotifications retrieves a user's notifications, newest first
func (s *Service) GetUserNotifications(userID string, filters *types.NotificationFilters) ([]*types.Notification, error) {
	if userID == "" {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput, "user ID is required", nil)
	}

	if filters == nil {
		filters = &types.NotificationFilters{}
	}
	filters.UserID = userID

	notifications, err := s.repository.GetNotifications(filters)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get notifications")
		return nil, types.NewInternalError(types.ErrCodeInternalError, "failed to get notifications", err)
	}

	return notifications, nil
}

// MarkRead marks a single notification as read
func (s *Service) MarkRead(notificationID, userID string) error {
	if notificationID == "" || userID == "" {
		return types.NewValidationError(types.ErrCodeInvalidInput, "notification ID and user ID are required", nil)
	}

	if err := s.repository.MarkRead(notificationID, userID); err != nil {
		s.logger.WithError(err).Errorf("Failed to mark notification %s read", notificationID)
		return types.NewNotFoundError(types.ErrCodeNotFound, fmt.Sprintf("notification not found: %s", notificationID))
	}

	return nil
}

// MarkAllRead marks all of a user's notifications as read
func (s *Service) MarkAllRead(userID string) error {
	if userID == "" {
		return types.NewValidationError(types.ErrCodeInvalidInput, "user ID is required", nil)
	}

	if err := s.repository.MarkAllRead(userID); err != nil {
		s.logger.WithError(err).Error("Failed to mark notifications read")
		return types.NewInternalError(types.ErrCodeInternalError, "failed to mark notifications read", err)
	}

	return nil
}

// GetPreferences retrieves a user's notification preferences, falling
// back to defaults when the user has never saved any
func (s *Service) GetPreferences(userID string) (*types.NotificationPreferences, error) {
	if userID == "" {
		return nil, types.NewValidationError(types.ErrCodeInvalidInput, "user ID is required", nil)
	}

	prefs, err := s.repository.GetPreferences(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.DefaultNotificationPreferences(userID), nil
		}
		s.logger.WithError(err).Error("Failed to get preferences")
		return nil, types.NewInternalError(types.ErrCodeInternalError, "failed to get preferences", err)
	}

	return prefs, nil
}

// UpdatePreferences stores a user's notification preferences
func (s *Service) UpdatePreferences(prefs *types.NotificationPreferences) error {
	if prefs == nil || prefs.UserID == "" {
		return types.NewValidationError(types.ErrCodeInvalidInput, "user ID is required", nil)
	}

	if err := s.repository.UpsertPreferences(prefs); err != nil {
		s.logger.WithError(err).Error("Failed to update preferences")
		return types.NewInternalError(types.ErrCodeInternalError, "failed to update preferences", err)
	}

	s.logger.WithUserID(prefs.UserID).Info("Notification preferences updated")
	return nil
}

// Start starts the notification service HTTP server
func (s *Service) Start(addr string) error {
	router := mux.NewRouter()
	collector := monitoring.NewMetricsCollector("notification-service")
	mon := monitoring.NewMonitoringMiddleware(collector, nil, s.logger)
	router.Use(mon.HTTPMiddleware)
	router.Handle("/metrics", collector.Handler())
	s.setupRoutes(router)

	s.server = &http.Server{
		Addr:    addr,
		Handler: router,
	}

	s.logger.Infof("Starting Notification Service on %s", addr)
	return s.server.ListenAndServe()
}

// Stop stops the notification service
func (s *Service) Stop() error {
	if s.server != nil {
		s.logger.Info("Stopping Notification Service")
		return s.server.Close()
	}
	return nil
}

func isValidNotificationType(t types.NotificationType) bool {
	switch t {
	case types.NotificationMedicationReminder,
		types.NotificationGoalCompleted,
		types.NotificationPlanUpdated,
		types.NotificationGeneral:
		return true
	}
	return false
}
