package careplan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Naveenp7/meditrack-ai-sub001/pkg/interfaces"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/logger"
	"github.com/Naveenp7/meditrack-ai-sub001/pkg/types"
)

// GoalNotifier posts goal-completion notifications to the notification
// service. The aggregator's caller invokes it once per transition into
// the completed status; delivery is best effort.
type goalNotifier struct {
	baseURL string
	client  *http.Client
	logger  *logger.Logger
}

// NewGoalNotifier creates a notifier backed by the notification service
func NewGoalNotifier(baseURL string, log *logger.Logger) interfaces.GoalNotifier {
	return &goalNotifier{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  log,
	}
}

// NotifyGoalCompleted sends a goal-completed notification for the
// plan's patient
func (n *goalNotifier) NotifyGoalCompleted(userID string, plan *types.CarePlan, goal *types.Goal) error {
	n.logger.Infof("Sending goal completed notification for goal %s on plan %s", goal.ID, plan.ID)

	notification := &types.Notification{
		UserID:     plan.PatientID,
		Type:       types.NotificationGoalCompleted,
		Title:      "Care Plan Goal Completed",
		Message:    fmt.Sprintf("Goal %q in your care plan %q has been completed.", goal.Description, plan.Title),
		ResourceID: goal.ID,
	}

	body, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, n.baseURL+"/api/v1/notifications", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", userID)

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("notification service returned status %d", resp.StatusCode)
	}

	n.logger.Infof("Goal completed notification sent for goal %s", goal.ID)
	return nil
}
