package upgrade

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// EffectKind is what a purchased upgrade changes.
type EffectKind string

const (
	EffectClickPower      EffectKind = "click_power"
	EffectMaxEnergy       EffectKind = "max_energy"
	EffectEnergyRegen     EffectKind = "energy_regen"
	EffectAgentEfficiency EffectKind = "agent_efficiency"
	EffectUnlockTask      EffectKind = "unlock_task"
)

// EfficiencyFactor multiplies the named agent's efficiency on purchase.
const EfficiencyFactor = 1.25

type Effect struct {
	Kind    EffectKind `json:"kind" yaml:"kind"`
	Amount  float64    `json:"amount,omitempty" yaml:"amount,omitempty"`
	AgentID string     `json:"agent_id,omitempty" yaml:"agent_id,omitempty"`
	TaskID  string     `json:"task_id,omitempty" yaml:"task_id,omitempty"`
}

func (e Effect) Validate() error {
	switch e.Kind {
	case EffectClickPower, EffectMaxEnergy, EffectEnergyRegen:
		if e.Amount <= 0 {
			return fmt.Errorf("%s effect needs a positive amount", e.Kind)
		}
		// Click power is a whole number of currency per click.
		if e.Kind == EffectClickPower && e.Amount != math.Trunc(e.Amount) {
			return fmt.Errorf("click_power effect needs a whole amount, got %g", e.Amount)
		}
	case EffectAgentEfficiency:
		if e.AgentID == "" {
			return errors.New("agent_efficiency effect needs an agent")
		}
	case EffectUnlockTask:
		if e.TaskID == "" {
			return errors.New("unlock_task effect needs a task")
		}
	default:
		return fmt.Errorf("unknown effect kind %q", e.Kind)
	}
	return nil
}

// Describe renders the effect for activity messages.
func (e Effect) Describe() string {
	switch e.Kind {
	case EffectClickPower:
		return fmt.Sprintf("+%g click power", e.Amount)
	case EffectMaxEnergy:
		return fmt.Sprintf("+%g max energy", e.Amount)
	case EffectEnergyRegen:
		return fmt.Sprintf("+%g energy/s", e.Amount)
	case EffectAgentEfficiency:
		return fmt.Sprintf("%s works %gx faster", e.AgentID, EfficiencyFactor)
	case EffectUnlockTask:
		return fmt.Sprintf("unlocks %s", e.TaskID)
	}
	return string(e.Kind)
}

type Upgrade struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Cost        int        `json:"cost"`
	Effect      Effect     `json:"effect"`
	Requires    string     `json:"requires,omitempty"`
	Purchased   bool       `json:"purchased"`
	PurchasedAt *time.Time `json:"purchased_at,omitempty"`
}

func (u Upgrade) Validate() error {
	if u.ID == "" {
		return errors.New("upgrade id is required")
	}
	if u.Cost < 0 {
		return fmt.Errorf("upgrade %s: cost must not be negative", u.ID)
	}
	if u.Requires == u.ID {
		return fmt.Errorf("upgrade %s: cannot require itself", u.ID)
	}
	if err := u.Effect.Validate(); err != nil {
		return fmt.Errorf("upgrade %s: %w", u.ID, err)
	}
	return nil
}
