package types

import "time"

// NotificationType represents the category of a notification
type NotificationType string

const (
	NotificationMedicationReminder NotificationType = "medication_reminder"
	NotificationGoalCompleted      NotificationType = "goal_completed"
	NotificationPlanUpdated        NotificationType = "plan_updated"
	NotificationGeneral            NotificationType = "general"
)

// Notification represents a message delivered to a portal user
type Notification struct {
	ID          string           `json:"id" db:"id"`
	UserID      string           `json:"user_id" db:"user_id"`
	Type        NotificationType `json:"type" db:"type"`
	Title       string           `json:"title" db:"title"`
	Message     string           `json:"message" db:"message"`
	ResourceID  string           `json:"resource_id,omitempty" db:"resource_id"`
	Read        bool             `json:"read" db:"read"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
}

// NotificationPreferences holds a user's channel preferences
type NotificationPreferences struct {
	UserID             string    `json:"user_id" db:"user_id"`
	EmailReminders     bool      `json:"email_reminders" db:"email_reminders"`
	SMSReminders       bool      `json:"sms_reminders" db:"sms_reminders"`
	PushNotifications  bool      `json:"push_notifications" db:"push_notifications"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultNotificationPreferences returns the preferences applied when a
// user has not saved any
func DefaultNotificationPreferences(userID string) *NotificationPreferences {
	return &NotificationPreferences{
		UserID:            userID,
		EmailReminders:    true,
		SMSReminders:      false,
		PushNotifications: true,
	}
}

// NotificationFilters represents filters for notification queries
type NotificationFilters struct {
	UserID     string           `json:"user_id,omitempty"`
	Type       NotificationType `json:"type,omitempty"`
	UnreadOnly bool             `json:"unread_only,omitempty"`
	Limit      int              `json:"limit,omitempty"`
	Offset     int              `json:"offset,omitempty"`
}
