package config

import (
	"errors"
	"fmt"

	"osirishq/internal/quest"

	"github.com/dlclark/regexp2"
)

// Validate checks ids and cross references before anything is seeded.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Balance.Ledger().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("balance: %w", err))
	}
	if c.Clock.TaskTickMS <= 0 || c.Clock.RegenTickMS <= 0 {
		errs = append(errs, errors.New("clock: tick periods must be positive"))
	}

	agents := map[string]bool{}
	for _, a := range c.Agents {
		switch {
		case a.ID == "":
			errs = append(errs, errors.New("agent: id is required"))
		case agents[a.ID]:
			errs = append(errs, fmt.Errorf("agent %s: duplicate id", a.ID))
		case a.Efficiency < 0:
			errs = append(errs, fmt.Errorf("agent %s: efficiency must not be negative", a.ID))
		}
		agents[a.ID] = true
	}

	tasks := map[string]bool{}
	for _, t := range c.Tasks {
		switch {
		case t.ID == "":
			errs = append(errs, errors.New("task: id is required"))
		case tasks[t.ID]:
			errs = append(errs, fmt.Errorf("task %s: duplicate id", t.ID))
		case !agents[t.Agent]:
			errs = append(errs, fmt.Errorf("task %s: unknown agent %q", t.ID, t.Agent))
		case t.DurationS <= 0:
			errs = append(errs, fmt.Errorf("task %s: duration_s must be positive", t.ID))
		case t.EnergyCost < 0:
			errs = append(errs, fmt.Errorf("task %s: energy_cost must not be negative", t.ID))
		}
		tasks[t.ID] = true
	}

	quests := map[string]bool{}
	for _, q := range c.Quests {
		switch {
		case q.ID == "":
			errs = append(errs, errors.New("quest: id is required"))
		case quests[q.ID]:
			errs = append(errs, fmt.Errorf("quest %s: duplicate id", q.ID))
		case !quest.Category(q.Category).Valid():
			errs = append(errs, fmt.Errorf("quest %s: unknown category %q", q.ID, q.Category))
		case !quest.Metric(q.Metric).Valid():
			errs = append(errs, fmt.Errorf("quest %s: unknown metric %q", q.ID, q.Metric))
		case q.Target <= 0:
			errs = append(errs, fmt.Errorf("quest %s: target must be positive", q.ID))
		}
		quests[q.ID] = true
	}

	upgrades := map[string]bool{}
	for _, u := range c.Upgrades {
		if upgrades[u.ID] {
			errs = append(errs, fmt.Errorf("upgrade %s: duplicate id", u.ID))
		}
		upgrades[u.ID] = true
	}
	for _, u := range c.Upgrades {
		if err := u.Effect.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("upgrade %s: %w", u.ID, err))
		}
		if u.Requires != "" && !upgrades[u.Requires] {
			errs = append(errs, fmt.Errorf("upgrade %s: unknown prerequisite %q", u.ID, u.Requires))
		}
		if u.Effect.AgentID != "" && !agents[u.Effect.AgentID] {
			errs = append(errs, fmt.Errorf("upgrade %s: unknown agent %q", u.ID, u.Effect.AgentID))
		}
		if u.Effect.TaskID != "" && !tasks[u.Effect.TaskID] {
			errs = append(errs, fmt.Errorf("upgrade %s: unknown task %q", u.ID, u.Effect.TaskID))
		}
	}

	if c.Terminal.Fallback != "" && !agents[c.Terminal.Fallback] {
		errs = append(errs, fmt.Errorf("terminal: unknown fallback agent %q", c.Terminal.Fallback))
	}
	for i, r := range c.Terminal.Routes {
		if !agents[r.Agent] {
			errs = append(errs, fmt.Errorf("terminal route %d: unknown agent %q", i, r.Agent))
		}
		if _, err := regexp2.Compile(r.Pattern, regexp2.IgnoreCase|regexp2.RE2); err != nil {
			errs = append(errs, fmt.Errorf("terminal route %d: %w", i, err))
		}
	}

	return errors.Join(errs...)
}
