package quest

import (
	"errors"
	"fmt"
	"time"

	"osirishq/internal/ledger"
)

// Category groups quests by how often they come around.
type Category string

const (
	CategoryDaily     Category = "daily"
	CategoryWeekly    Category = "weekly"
	CategoryOneTime   Category = "one_time"
	CategoryMilestone Category = "milestone"
)

// Repeating reports whether an external reset policy may reopen the quest.
func (c Category) Repeating() bool {
	return c == CategoryDaily || c == CategoryWeekly
}

func (c Category) Valid() bool {
	switch c {
	case CategoryDaily, CategoryWeekly, CategoryOneTime, CategoryMilestone:
		return true
	}
	return false
}

// Metric names the counter a quest tracks.
type Metric string

const (
	MetricCurrency       Metric = "currency"
	MetricXP             Metric = "xp"
	MetricLeads          Metric = "leads"
	MetricReviews        Metric = "reviews"
	MetricClients        Metric = "clients"
	MetricTasksCompleted Metric = "tasks_completed"
	MetricClicks         Metric = "clicks"
)

func (m Metric) Valid() bool {
	switch m {
	case MetricCurrency, MetricXP, MetricLeads, MetricReviews, MetricClients,
		MetricTasksCompleted, MetricClicks:
		return true
	}
	return false
}

// MetricFor maps a reward field to the metric that counts it.
func MetricFor(f ledger.Field) Metric {
	return Metric(f)
}

type Quest struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Category    Category      `json:"category"`
	Metric      Metric        `json:"metric"`
	Target      int           `json:"target"`
	Current     int           `json:"current"`
	Reward      ledger.Bundle `json:"reward"`
	Completed   bool          `json:"completed"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
}

func (q Quest) Validate() error {
	if q.ID == "" {
		return errors.New("quest id is required")
	}
	if !q.Category.Valid() {
		return fmt.Errorf("quest %s: unknown category %q", q.ID, q.Category)
	}
	if !q.Metric.Valid() {
		return fmt.Errorf("quest %s: unknown metric %q", q.ID, q.Metric)
	}
	if q.Target <= 0 {
		return fmt.Errorf("quest %s: target must be positive", q.ID)
	}
	if q.Current < 0 {
		return fmt.Errorf("quest %s: current must not be negative", q.ID)
	}
	if err := q.Reward.Validate(); err != nil {
		return fmt.Errorf("quest %s: %w", q.ID, err)
	}
	return nil
}

// Claimable is true once the target is reached and the reward not yet taken.
func (q Quest) Claimable() bool {
	return !q.Completed && q.Current >= q.Target
}

// Add records progress. Claimed quests ignore it.
func (q *Quest) Add(amount int) bool {
	if q.Completed || amount <= 0 {
		return false
	}
	q.Current += amount
	return true
}

func (q *Quest) Complete(at time.Time) {
	q.Completed = true
	q.CompletedAt = &at
}

// Reset reopens a quest with no progress.
func (q *Quest) Reset() {
	q.Current = 0
	q.Completed = false
	q.CompletedAt = nil
}
