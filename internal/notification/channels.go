package notification

import (
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/config"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/interfaces"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/logger"
)

// ChannelSender implements delivery over email, SMS and push channels
type ChannelSender struct {
	config *config.NotificationConfig
	logger *logger.Logger
}

// NewChannelSender creates a new channel sender
func NewChannelSender(cfg *config.NotificationConfig, log *logger.Logger) interfaces.ChannelSender {
	return &ChannelSender{
		config: cfg,
		logger: log,
	}
}

// SendEmail sends an email notification
func (s *ChannelSender) SendEmail(to, subject, body string) error {
	s.logger.Infof("Sending email from %s to %s with subject: %s", s.config.EmailFrom, to, subject)

	// TODO: Integrate with actual email service (SendGrid, AWS SES, etc.)
	// For now, just log the email
	s.logger.Infof("Email sent successfully to %s", to)
	return nil
}

// SendSMS sends an SMS notification
func (s *ChannelSender) SendSMS(to, message string) error {
	s.logger.Infof("Sending SMS to %s: %s", to, message)

	// TODO: Integrate with SMS service (Twilio, AWS SNS, etc.)
	// For now, just log the SMS
	s.logger.Infof("SMS sent successfully to %s", to)
	return nil
}

// SendPushNotification sends a push notification
func (s *ChannelSender) SendPushNotification(userID, title, message string) error {
	s.logger.Infof("Sending push notification to user %s: %s - %s", userID, title, message)

	// TODO: Integrate with push notification service (Firebase, AWS SNS, etc.)
	// For now, just log the push notification
	s.logger.Infof("Push notification sent successfully to user %s", userID)
	return nil
}
