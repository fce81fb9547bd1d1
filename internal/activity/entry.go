package activity

import "time"

type EventType string

const (
	EventTaskAssigned     EventType = "task_assigned"
	EventTaskCompleted    EventType = "task_completed"
	EventQuestClaimed     EventType = "quest_claimed"
	EventUpgradePurchased EventType = "upgrade_purchased"
	EventLevelUp          EventType = "level_up"
)

type Entry struct {
	ID      string    `json:"id"`
	Type    EventType `json:"type"`
	Message string    `json:"message"`
	AgentID string    `json:"agent_id,omitempty"`
	TaskID  string    `json:"task_id,omitempty"`
	At      time.Time `json:"at"`
}
