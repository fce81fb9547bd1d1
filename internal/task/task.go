package task

import (
	"errors"
	"fmt"

	"osirishq/internal/ledger"
)

// Task is an immutable catalog template. Only Unlocked ever changes, and only
// from false to true.
type Task struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	AgentID     string        `json:"agent_id"`
	Duration    float64       `json:"duration_s"`
	EnergyCost  float64       `json:"energy_cost"`
	Reward      ledger.Bundle `json:"reward"`
	Unlocked    bool          `json:"unlocked"`
}

func (t Task) Validate() error {
	if t.ID == "" {
		return errors.New("task id is required")
	}
	if t.AgentID == "" {
		return fmt.Errorf("task %s: agent is required", t.ID)
	}
	if t.Duration <= 0 {
		return fmt.Errorf("task %s: duration must be positive", t.ID)
	}
	if t.EnergyCost < 0 {
		return fmt.Errorf("task %s: energy cost must not be negative", t.ID)
	}
	if err := t.Reward.Validate(); err != nil {
		return fmt.Errorf("task %s: %w", t.ID, err)
	}
	return nil
}
