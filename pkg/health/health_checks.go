package health

import "fmt"

// TaskFailureCheck reports degraded when any task failed or panicked.
// stats returns completed, failed and panicked task counts.
func TaskFailureCheck(stats func() (completed, failed, panicked int64)) CheckFunc {
	return func() Check {
		completed, failed, panicked := stats()
		check := Check{
			Name: "worker_pool",
			Details: map[string]any{
				"completed": completed,
				"failed":    failed,
				"panicked":  panicked,
			},
		}

		switch {
		case failed+panicked == 0:
			check.Status = StatusHealthy
			check.Message = "All tasks succeeded"
		case failed+panicked >= completed:
			check.Status = StatusUnhealthy
			check.Message = "No task succeeded"
		default:
			check.Status = StatusDegraded
			check.Message = fmt.Sprintf("%d of %d tasks failed", failed+panicked, completed)
		}
		return check
	}
}

// StuckNodesCheck reports degraded when nodes were claimed but never finished
func StuckNodesCheck(stuck func() int) CheckFunc {
	return func() Check {
		n := stuck()
		check := Check{
			Name:    "traversal",
			Details: map[string]any{"stuck_nodes": n},
		}
		if n == 0 {
			check.Status = StatusHealthy
			check.Message = "Every claimed node completed"
		} else {
			check.Status = StatusDegraded
			check.Message = fmt.Sprintf("%d nodes left in processing", n)
		}
		return check
	}
}
