package interfaces

import (
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/types"
)

// NotificationService defines the interface for portal notifications
type NotificationService interface {
	// Notification management
	CreateNotification(n *types.Notification) (*types.Notification, error)
	GetUserNotifications(userID string, filters *types.NotificationFilters) ([]*types.Notification, error)
	MarkRead(notificationID, userID string) error
	MarkAllRead(userID string) error

	// Preferences
	GetPreferences(userID string) (*types.NotificationPreferences, error)
	UpdatePreferences(prefs *types.NotificationPreferences) error

	// Service management
	Start(addr string) error
	Stop() error
}

// NotificationRepository defines the interface for notification persistence
type NotificationRepository interface {
	CreateNotification(n *types.Notification) error
	GetNotifications(filters *types.NotificationFilters) ([]*types.Notification, error)
	MarkRead(id, userID string) error
	MarkAllRead(userID string) error

	GetPreferences(userID string) (*types.NotificationPreferences, error)
	UpsertPreferences(prefs *types.NotificationPreferences) error
}

// ChannelSender delivers a notification over a single channel
// (email, SMS, push)
type ChannelSender interface {
	SendEmail(to, subject, body string) error
	SendSMS(to, message string) error
	SendPushNotification(userID, title, message string) error
}
