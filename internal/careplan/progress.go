package careplan

import (
	"math"

	"github.com/Naveenp7/meditrack-ai-sub001/pkg/types"
)

// ComputeProgress derives a care plan's 0-100 progress score from its
// goals. Completed goals count as full credit and in-progress goals as
// half; cancelled and not-started goals count toward the total only.
// A plan with no goals has zero progress.
func ComputeProgress(goals []*types.Goal) int {
	if len(goals) == 0 {
		return 0
	}

	var completed, inProgress int
	for _, goal := range goals {
		switch goal.Status {
		case types.GoalStatusCompleted:
			completed++
		case types.GoalStatusInProgress:
			inProgress++
		}
	}

	credit := float64(completed) + 0.5*float64(inProgress)
	return int(math.Round(credit / float64(len(goals)) * 100))
}
