package config

import (
	"osirishq/internal/agent"
	"osirishq/internal/game"
	"osirishq/internal/quest"
	"osirishq/internal/task"
	"osirishq/internal/terminal"
	"osirishq/internal/upgrade"
)

// Seed converts the config into the engine's starting state.
func (c *Config) Seed() game.Seed {
	s := game.Seed{Ledger: c.Balance.Ledger()}
	for _, a := range c.Agents {
		s.Agents = append(s.Agents, agent.Agent{
			ID:         a.ID,
			Name:       a.Name,
			Role:       a.Role,
			Emoji:      a.Emoji,
			Color:      a.Color,
			Efficiency: a.Efficiency,
		})
	}
	for _, t := range c.Tasks {
		s.Tasks = append(s.Tasks, task.Task{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			AgentID:     t.Agent,
			Duration:    t.DurationS,
			EnergyCost:  t.EnergyCost,
			Reward:      t.Reward,
			Unlocked:    !t.Locked,
		})
	}
	for _, q := range c.Quests {
		s.Quests = append(s.Quests, quest.Quest{
			ID:          q.ID,
			Title:       q.Title,
			Description: q.Description,
			Category:    quest.Category(q.Category),
			Metric:      quest.Metric(q.Metric),
			Target:      q.Target,
			Reward:      q.Reward,
		})
	}
	for _, u := range c.Upgrades {
		s.Upgrades = append(s.Upgrades, upgrade.Upgrade{
			ID:          u.ID,
			Title:       u.Title,
			Description: u.Description,
			Cost:        u.Cost,
			Requires:    u.Requires,
			Effect:      u.Effect,
		})
	}
	return s
}

// TerminalRouter builds the command-bar router from the terminal section.
func (c *Config) TerminalRouter() (*terminal.Router, error) {
	routes := make([]terminal.Route, 0, len(c.Terminal.Routes))
	for _, r := range c.Terminal.Routes {
		routes = append(routes, terminal.Route{AgentID: r.Agent, Pattern: r.Pattern, Reply: r.Reply})
	}
	return terminal.NewRouter(routes, terminal.Options{
		Fallback: c.Terminal.Fallback,
		Delay:    c.Terminal.Delay(),
	})
}
