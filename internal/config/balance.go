package config

import "osirishq/internal/ledger"

// Balance holds the starting ledger and tuning knobs.
type Balance struct {
	StartingCurrency int     `yaml:"starting_currency" json:"starting_currency"`
	StartingEnergy   float64 `yaml:"starting_energy" json:"starting_energy"`
	MaxEnergy        float64 `yaml:"max_energy" json:"max_energy"`
	EnergyRegenRate  float64 `yaml:"energy_regen_rate" json:"energy_regen_rate"`
	ClickPower       int     `yaml:"click_power" json:"click_power"`
	StartingLevel    int     `yaml:"starting_level" json:"starting_level"`

	ActivityLogSize int `yaml:"activity_log_size" json:"activity_log_size"`
}

// DefaultBalance returns the default balance configuration
func DefaultBalance() Balance {
	return Balance{
		StartingCurrency: 500,
		StartingEnergy:   100,
		MaxEnergy:        100,
		EnergyRegenRate:  0.5,
		ClickPower:       1,
		StartingLevel:    1,
		ActivityLogSize:  50,
	}
}

// Casual returns easier balance for casual difficulty
func Casual() Balance {
	cfg := DefaultBalance()
	cfg.StartingCurrency = 1000
	cfg.StartingEnergy = 150
	cfg.MaxEnergy = 150
	cfg.EnergyRegenRate = 1
	cfg.ClickPower = 2
	return cfg
}

// Hard returns harder balance for experienced players
func Hard() Balance {
	cfg := DefaultBalance()
	cfg.StartingCurrency = 200
	cfg.StartingEnergy = 60
	cfg.MaxEnergy = 80
	cfg.EnergyRegenRate = 0.25
	return cfg
}

// BalanceFor maps a difficulty name to its preset; unknown names get the default.
func BalanceFor(difficulty string) Balance {
	switch difficulty {
	case "casual":
		return Casual()
	case "hard":
		return Hard()
	}
	return DefaultBalance()
}

func (b *Balance) fill(preset Balance) {
	if b.StartingCurrency == 0 {
		b.StartingCurrency = preset.StartingCurrency
	}
	if b.StartingEnergy == 0 {
		b.StartingEnergy = preset.StartingEnergy
	}
	if b.MaxEnergy == 0 {
		b.MaxEnergy = preset.MaxEnergy
	}
	if b.EnergyRegenRate == 0 {
		b.EnergyRegenRate = preset.EnergyRegenRate
	}
	if b.ClickPower == 0 {
		b.ClickPower = preset.ClickPower
	}
	if b.StartingLevel == 0 {
		b.StartingLevel = preset.StartingLevel
	}
	if b.ActivityLogSize == 0 {
		b.ActivityLogSize = preset.ActivityLogSize
	}
}

// Ledger builds the opening ledger.
func (b Balance) Ledger() ledger.Ledger {
	return ledger.Ledger{
		Currency:        b.StartingCurrency,
		Energy:          b.StartingEnergy,
		MaxEnergy:       b.MaxEnergy,
		EnergyRegenRate: b.EnergyRegenRate,
		Level:           b.StartingLevel,
		ClickPower:      b.ClickPower,
	}
}
