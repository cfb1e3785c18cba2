package health

import (
	"testing"
)

func TestRegisterCheck(t *testing.T) {
	c := NewChecker()

	called := false
	c.Register("test", func() Check {
		called = true
		return Check{Status: StatusHealthy}
	})

	resp := c.Check()
	if !called {
		t.Error("registered check was not called")
	}
	check, exists := resp.Checks["test"]
	if !exists {
		t.Fatal("check result not in response")
	}
	if check.Name != "test" {
		t.Errorf("check name = %q, want test", check.Name)
	}
	if resp.Status != StatusHealthy {
		t.Errorf("status = %v, want healthy", resp.Status)
	}
}

func TestWorstStatusWins(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"empty", nil, StatusHealthy},
		{"all healthy", []Status{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"one degraded", []Status{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"unhealthy beats degraded", []Status{StatusDegraded, StatusUnhealthy, StatusHealthy}, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChecker()
			for i, s := range tt.statuses {
				status := s
				c.Register(string(rune('a'+i)), func() Check { return Check{Status: status} })
			}
			if got := c.Check().Status; got != tt.want {
				t.Errorf("Check().Status = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTaskFailureCheck(t *testing.T) {
	tests := []struct {
		name                        string
		completed, failed, panicked int64
		want                        Status
	}{
		{"no failures", 10, 0, 0, StatusHealthy},
		{"some failures", 10, 1, 1, StatusDegraded},
		{"all failed", 3, 2, 1, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := TaskFailureCheck(func() (int64, int64, int64) {
				return tt.completed, tt.failed, tt.panicked
			})()
			if check.Status != tt.want {
				t.Errorf("status = %v, want %v (%s)", check.Status, tt.want, check.Message)
			}
			if check.Details["failed"] != tt.failed {
				t.Errorf("failed detail = %v, want %d", check.Details["failed"], tt.failed)
			}
		})
	}
}

func TestStuckNodesCheck(t *testing.T) {
	if got := StuckNodesCheck(func() int { return 0 })().Status; got != StatusHealthy {
		t.Errorf("0 stuck nodes: status = %v, want healthy", got)
	}
	if got := StuckNodesCheck(func() int { return 2 })().Status; got != StatusDegraded {
		t.Errorf("2 stuck nodes: status = %v, want degraded", got)
	}
}
