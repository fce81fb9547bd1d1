package ledger

import (
	"errors"
	"fmt"
	"math"
)

// XPPerLevel is the experience needed per level: reaching level n+1 costs n*XPPerLevel.
const XPPerLevel = 100

// Field names a ledger counter that a reward can credit.
type Field string

const (
	Currency Field = "currency"
	XP       Field = "xp"
	Leads    Field = "leads"
	Reviews  Field = "reviews"
	Clients  Field = "clients"
)

// Fields lists every rewardable field in display order.
var Fields = []Field{Currency, XP, Leads, Reviews, Clients}

// Bundle is a reward: each amount is optional and never negative.
type Bundle struct {
	Currency int `json:"currency,omitempty" yaml:"currency,omitempty"`
	XP       int `json:"xp,omitempty" yaml:"xp,omitempty"`
	Leads    int `json:"leads,omitempty" yaml:"leads,omitempty"`
	Reviews  int `json:"reviews,omitempty" yaml:"reviews,omitempty"`
	Clients  int `json:"clients,omitempty" yaml:"clients,omitempty"`
}

// Amount returns the bundle's amount for a field.
func (b Bundle) Amount(f Field) int {
	switch f {
	case Currency:
		return b.Currency
	case XP:
		return b.XP
	case Leads:
		return b.Leads
	case Reviews:
		return b.Reviews
	case Clients:
		return b.Clients
	}
	return 0
}

// Rewarded returns the fields with a non-zero amount.
func (b Bundle) Rewarded() []Field {
	var out []Field
	for _, f := range Fields {
		if b.Amount(f) > 0 {
			out = append(out, f)
		}
	}
	return out
}

func (b Bundle) IsZero() bool {
	return len(b.Rewarded()) == 0
}

func (b Bundle) Validate() error {
	for _, f := range Fields {
		if b.Amount(f) < 0 {
			return fmt.Errorf("reward %s must not be negative", f)
		}
	}
	return nil
}

// Ledger holds the player's scalar counters.
type Ledger struct {
	Currency        int     `json:"currency"`
	Energy          float64 `json:"energy"`
	MaxEnergy       float64 `json:"max_energy"`
	EnergyRegenRate float64 `json:"energy_regen_rate"`
	Experience      int     `json:"experience"`
	Level           int     `json:"level"`
	Leads           int     `json:"leads"`
	Reviews         int     `json:"reviews"`
	Clients         int     `json:"clients"`
	ClickPower      int     `json:"click_power"`
}

// Validate checks a starting ledger before it is handed to an engine.
func (l Ledger) Validate() error {
	switch {
	case l.MaxEnergy <= 0:
		return errors.New("max energy must be positive")
	case l.Energy < 0 || l.Energy > l.MaxEnergy:
		return fmt.Errorf("energy %.2f outside [0, %.2f]", l.Energy, l.MaxEnergy)
	case l.EnergyRegenRate < 0:
		return errors.New("energy regen rate must not be negative")
	case l.Level < 1:
		return errors.New("level must be at least 1")
	case l.ClickPower < 1:
		return errors.New("click power must be at least 1")
	case l.Currency < 0 || l.Experience < 0 || l.Leads < 0 || l.Reviews < 0 || l.Clients < 0:
		return errors.New("counters must not be negative")
	}
	return nil
}

// Credit adds every amount of the bundle to the matching counter.
func (l *Ledger) Credit(b Bundle) {
	l.Currency += b.Currency
	l.Experience += b.XP
	l.Leads += b.Leads
	l.Reviews += b.Reviews
	l.Clients += b.Clients
}

func (l *Ledger) Has(amount int) bool {
	return l.Currency >= amount
}

// Spend debits currency; it reports false and leaves the ledger untouched when funds are short.
func (l *Ledger) Spend(amount int) bool {
	if amount <= 0 {
		return true
	}
	if !l.Has(amount) {
		return false
	}
	l.Currency -= amount
	return true
}

func (l *Ledger) HasEnergy(cost float64) bool {
	return l.Energy >= cost
}

// SpendEnergy debits energy; it reports false and leaves the ledger untouched when energy is short.
func (l *Ledger) SpendEnergy(cost float64) bool {
	if cost <= 0 {
		return true
	}
	if !l.HasEnergy(cost) {
		return false
	}
	l.Energy -= cost
	return true
}

// Regenerate adds regen-rate energy for the elapsed seconds, capped at MaxEnergy.
// It returns the energy actually gained.
func (l *Ledger) Regenerate(seconds float64) float64 {
	if seconds <= 0 || l.EnergyRegenRate <= 0 {
		return 0
	}
	before := l.Energy
	l.Energy = math.Min(l.MaxEnergy, l.Energy+l.EnergyRegenRate*seconds)
	return l.Energy - before
}

// AddMaxEnergy raises the energy cap. Current energy is not refilled.
func (l *Ledger) AddMaxEnergy(amount float64) {
	l.MaxEnergy += amount
}

// NextLevelXP is the experience required to leave the current level.
func (l Ledger) NextLevelXP() int {
	return l.Level * XPPerLevel
}

// LevelUp converts experience into levels until the remainder is below the
// next threshold, and returns how many levels were gained.
func (l *Ledger) LevelUp() int {
	gained := 0
	for l.Experience >= l.NextLevelXP() {
		l.Experience -= l.NextLevelXP()
		l.Level++
		gained++
	}
	return gained
}
