package game

import (
	"time"

	"osirishq/internal/activity"
	"osirishq/internal/agent"
	"osirishq/internal/ledger"
	"osirishq/internal/quest"
	"osirishq/internal/task"
	"osirishq/internal/upgrade"
)

// Snapshot is a deep copy of game state; mutating it never touches the engine.
type Snapshot struct {
	Ledger   LedgerView       `json:"ledger"`
	Agents   []AgentView      `json:"agents"`
	Tasks    []task.Task      `json:"tasks"`
	Quests   []QuestView      `json:"quests"`
	Upgrades []UpgradeView    `json:"upgrades"`
	Activity []activity.Entry `json:"activity"`
	TakenAt  time.Time        `json:"taken_at"`
}

type LedgerView struct {
	ledger.Ledger
	NextLevelXP int `json:"next_level_xp"`
}

type AgentView struct {
	agent.Agent
	Status    agent.Status `json:"status"`
	Progress  float64      `json:"task_progress"`
	TaskTitle string       `json:"task_title,omitempty"`
}

type QuestView struct {
	quest.Quest
	Claimable bool `json:"claimable"`
}

type UpgradeView struct {
	upgrade.Upgrade
	Available  bool `json:"available"`
	Affordable bool `json:"affordable"`
}

func (s Snapshot) Agent(id string) (AgentView, bool) {
	for _, a := range s.Agents {
		if a.ID == id {
			return a, true
		}
	}
	return AgentView{}, false
}

// NextTask picks the first unlocked task the agent owns that current energy covers.
func (s Snapshot) NextTask(agentID string) (task.Task, bool) {
	for _, t := range s.Tasks {
		if t.AgentID == agentID && t.Unlocked && s.Ledger.Energy >= t.EnergyCost {
			return t, true
		}
	}
	return task.Task{}, false
}

// ClaimableQuests lists quests ready to be claimed, in seed order.
func (s Snapshot) ClaimableQuests() []QuestView {
	var out []QuestView
	for _, q := range s.Quests {
		if q.Claimable {
			out = append(out, q)
		}
	}
	return out
}

// NextUpgrade picks the first upgrade that is available and affordable.
func (s Snapshot) NextUpgrade() (UpgradeView, bool) {
	for _, u := range s.Upgrades {
		if u.Available && u.Affordable {
			return u, true
		}
	}
	return UpgradeView{}, false
}
