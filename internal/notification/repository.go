package notification

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Naveenp7/meditrack-ai-sub001/pkg/database"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/interfaces"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/logger"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/types"
)

// Repository implements the NotificationRepository interface
type Repository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewRepository creates a new notification repository
func NewRepository(db *database.DB, log *logger.Logger) interfaces.NotificationRepository {
	return &Repository{
		db:     db,
		logger: log,
	}
}

// CreateNotification creates a new notification
func (r *Repository) CreateNotification(n *types.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, type, title, message, resource_id, read)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	resourceID := sql.NullString{String: n.ResourceID, Valid: n.ResourceID != ""}

	_, err := r.db.Exec(query,
		n.ID,
		n.UserID,
		string(n.Type),
		n.Title,
		n.Message,
		resourceID,
		n.Read,
	)

	if err != nil {
		r.logger.Errorf("Failed to create notification: %v", err)
		return fmt.Errorf("failed to create notification: %w", err)
	}

	r.logger.Infof("Created notification %s for user %s", n.ID, n.UserID)
	return nil
}

// GetNotifications retrieves notifications based on filters, newest first
func (r *Repository) GetNotifications(filters *types.NotificationFilters) ([]*types.Notification, error) {
	query := `
		SELECT id, user_id, type, title, message, COALESCE(resource_id::text, ''), read, created_at
		FROM notifications
		WHERE 1=1`

	args := []interface{}{}
	argIndex := 1

	if filters.UserID != "" {
		query += fmt.Sprintf(" AND user_id = $%d", argIndex)
		args = append(args, filters.UserID)
		argIndex++
	}

	if filters.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", argIndex)
		args = append(args, string(filters.Type))
		argIndex++
	}

	if filters.UnreadOnly {
		query += " AND read = FALSE"
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
		r.logger.Errorf("Failed to get notifications: %v", err)
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*types.Notification
	for rows.Next() {
		n := &types.Notification{}
		err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.Type,
			&n.Title,
			&n.Message,
			&n.ResourceID,
			&n.Read,
			&n.CreatedAt,
		)
		if err != nil {
			r.logger.Errorf("Failed to scan notification: %v", err)
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}

	return notifications, nil
}

// MarkRead marks a single notification as read for its owner
func (r *Repository) MarkRead(id, userID string) error {
	query := `UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(query, id, userID)
	if err != nil {
		r.logger.Errorf("Failed to mark notification %s read: %v", id, err)
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("notification not found: %s", id)
	}

	return nil
}

// MarkAllRead marks all of a user's notifications as read
func (r *Repository) MarkAllRead(userID string) error {
	query := `UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE`

	if _, err := r.db.Exec(query, userID); err != nil {
		r.logger.Errorf("Failed to mark notifications read for user %s: %v", userID, err)
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}

	r.logger.Infof("Marked all notifications read for user %s", userID)
	return nil
}

// GetPreferences retrieves a user's notification preferences
func (r *Repository) GetPreferences(userID string) (*types.NotificationPreferences, error) {
	query := `
		SELECT user_id, email_reminders, sms_reminders, push_notifications, updated_at
		FROM notification_preferences
		WHERE user_id = $1`

	prefs := &types.NotificationPreferences{}
	err := r.db.QueryRow(query, userID).Scan(
		&prefs.UserID,
		&prefs.EmailReminders,
		&prefs.SMSReminders,
		&prefs.PushNotifications,
		&prefs.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		r.logger.Errorf("Failed to get preferences for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}

	return prefs, nil
}

// UpsertPreferences stores a user's notification preferences
func (r *Repository) UpsertPreferences(prefs *types.NotificationPreferences) error {
	query := `
		INSERT INTO notification_preferences (user_id, email_reminders, sms_reminders, push_notifications, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			email_reminders = EXCLUDED.email_reminders,
			sms_reminders = EXCLUDED.sms_reminders,
			push_notifications = EXCLUDED.push_notifications,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.Exec(query,
		prefs.UserID,
		prefs.EmailReminders,
		prefs.SMSReminders,
		prefs.PushNotifications,
		time.Now(),
	)

	if err != nil {
		r.logger.Errorf("Failed to upsert preferences for user %s: %v", prefs.UserID, err)
		return fmt.Errorf("failed to upsert preferences: %w", err)
	}

	r.logger.Infof("Updated notification preferences for user %s", prefs.UserID)
	return nil
}
