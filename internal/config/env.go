package config

import (
	"os"
	"strconv"
)

// FromEnv returns the built-in config with environment overrides applied.
func FromEnv() *Config {
	c := Default()
	c.ApplyEnv()
	return c
}

// ApplyEnv overrides fields from OSIRIS_* environment variables.
func (c *Config) ApplyEnv() {
	if addr := os.Getenv("OSIRIS_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if level := os.Getenv("OSIRIS_LOG_LEVEL"); level != "" {
		c.Server.LogLevel = level
	}
	if val := getEnvInt("OSIRIS_TASK_TICK_MS"); val > 0 {
		c.Clock.TaskTickMS = val
	}
	if val := getEnvInt("OSIRIS_REGEN_TICK_MS"); val > 0 {
		c.Clock.RegenTickMS = val
	}

	// Support preset modes
	if mode := os.Getenv("OSIRIS_DIFFICULTY"); mode != "" {
		switch mode {
		case "casual", "hard", "normal":
			c.Difficulty = mode
			c.Balance = BalanceFor(mode)
		}
	}
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}
