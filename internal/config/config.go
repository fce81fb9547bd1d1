package config

import (
	"fmt"
	"os"
	"time"

	"osirishq/internal/ledger"
	"osirishq/internal/upgrade"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Version    string          `yaml:"version" json:"version"`
	Difficulty string          `yaml:"difficulty" json:"difficulty"`
	Server     ServerConfig    `yaml:"server" json:"server"`
	Clock      ClockConfig     `yaml:"clock" json:"clock"`
	Balance    Balance         `yaml:"balance" json:"balance"`
	Agents     []AgentConfig   `yaml:"agents" json:"agents"`
	Tasks      []TaskConfig    `yaml:"tasks" json:"tasks"`
	Quests     []QuestConfig   `yaml:"quests" json:"quests"`
	Upgrades   []UpgradeConfig `yaml:"upgrades" json:"upgrades"`
	Terminal   TerminalConfig  `yaml:"terminal" json:"terminal"`
}

type ServerConfig struct {
	Addr              string `yaml:"addr" json:"addr"`
	ShutdownTimeoutMS int    `yaml:"shutdown_timeout_ms" json:"shutdown_timeout_ms"`
	LogLevel          string `yaml:"log_level" json:"log_level"`
}

func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutMS) * time.Millisecond
}

// ClockConfig sets the driver cadences.
type ClockConfig struct {
	TaskTickMS  int `yaml:"task_tick_ms" json:"task_tick_ms"`
	RegenTickMS int `yaml:"regen_tick_ms" json:"regen_tick_ms"`
}

func (c ClockConfig) TaskTick() time.Duration {
	return time.Duration(c.TaskTickMS) * time.Millisecond
}

func (c ClockConfig) RegenTick() time.Duration {
	return time.Duration(c.RegenTickMS) * time.Millisecond
}

type AgentConfig struct {
	ID         string  `yaml:"id" json:"id"`
	Name       string  `yaml:"name" json:"name"`
	Role       string  `yaml:"role" json:"role"`
	Emoji      string  `yaml:"emoji" json:"emoji"`
	Color      string  `yaml:"color" json:"color"`
	Efficiency float64 `yaml:"efficiency" json:"efficiency"`
}

// TaskConfig describes a catalog task. Tasks start unlocked unless Locked is set.
type TaskConfig struct {
	ID          string        `yaml:"id" json:"id"`
	Title       string        `yaml:"title" json:"title"`
	Description string        `yaml:"description" json:"description"`
	Agent       string        `yaml:"agent" json:"agent"`
	DurationS   float64       `yaml:"duration_s" json:"duration_s"`
	EnergyCost  float64       `yaml:"energy_cost" json:"energy_cost"`
	Reward      ledger.Bundle `yaml:"reward" json:"reward"`
	Locked      bool          `yaml:"locked" json:"locked"`
}

type QuestConfig struct {
	ID          string        `yaml:"id" json:"id"`
	Title       string        `yaml:"title" json:"title"`
	Description string        `yaml:"description" json:"description"`
	Category    string        `yaml:"category" json:"category"`
	Metric      string        `yaml:"metric" json:"metric"`
	Target      int           `yaml:"target" json:"target"`
	Reward      ledger.Bundle `yaml:"reward" json:"reward"`
}

type UpgradeConfig struct {
	ID          string         `yaml:"id" json:"id"`
	Title       string         `yaml:"title" json:"title"`
	Description string         `yaml:"description" json:"description"`
	Cost        int            `yaml:"cost" json:"cost"`
	Requires    string         `yaml:"requires" json:"requires"`
	Effect      upgrade.Effect `yaml:"effect" json:"effect"`
}

// TerminalConfig drives the keyword router behind the command bar.
type TerminalConfig struct {
	DelayMS  int           `yaml:"delay_ms" json:"delay_ms"`
	Fallback string        `yaml:"fallback" json:"fallback"`
	Routes   []RouteConfig `yaml:"routes" json:"routes"`
}

func (t TerminalConfig) Delay() time.Duration {
	return time.Duration(t.DelayMS) * time.Millisecond
}

type RouteConfig struct {
	Agent   string `yaml:"agent" json:"agent"`
	Pattern string `yaml:"pattern" json:"pattern"`
	Reply   string `yaml:"reply" json:"reply"`
}

// ApplyDefaults fills every missing section from Default.
func (c *Config) ApplyDefaults() {
	d := Default()
	if c.Version == "" {
		c.Version = d.Version
	}
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	if c.Server.ShutdownTimeoutMS <= 0 {
		c.Server.ShutdownTimeoutMS = d.Server.ShutdownTimeoutMS
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = d.Server.LogLevel
	}
	if c.Clock.TaskTickMS <= 0 {
		c.Clock.TaskTickMS = d.Clock.TaskTickMS
	}
	if c.Clock.RegenTickMS <= 0 {
		c.Clock.RegenTickMS = d.Clock.RegenTickMS
	}
	c.Balance.fill(BalanceFor(c.Difficulty))
	// the default routes and fallback name agents of the default roster
	defaultRoster := len(c.Agents) == 0
	if defaultRoster {
		c.Agents = d.Agents
	}
	for i := range c.Agents {
		if c.Agents[i].Efficiency == 0 {
			c.Agents[i].Efficiency = 1
		}
	}
	if len(c.Tasks) == 0 {
		c.Tasks = d.Tasks
	}
	if len(c.Quests) == 0 {
		c.Quests = d.Quests
	}
	if len(c.Upgrades) == 0 {
		c.Upgrades = d.Upgrades
	}
	if c.Terminal.DelayMS <= 0 {
		c.Terminal.DelayMS = d.Terminal.DelayMS
	}
	if c.Terminal.Fallback == "" {
		if defaultRoster {
			c.Terminal.Fallback = d.Terminal.Fallback
		} else if len(c.Agents) > 0 {
			c.Terminal.Fallback = c.Agents[0].ID
		}
	}
	if len(c.Terminal.Routes) == 0 && defaultRoster {
		c.Terminal.Routes = d.Terminal.Routes
	}
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse decodes YAML, applies defaults and validates the result.
func Parse(b []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
