package activity

type Stats struct {
	Total           int               `json:"total"`
	EventCounts     map[EventType]int `json:"event_counts"`
	TaskCompletions int               `json:"task_completions"`
	LevelUps        int               `json:"level_ups"`
	ByAgent         map[string]int    `json:"completions_by_agent"`
	Capacity        int               `json:"capacity,omitempty"`
}

// CalculateStats aggregates counts over the given entries.
func CalculateStats(entries []Entry) Stats {
	stats := Stats{
		EventCounts: make(map[EventType]int),
		ByAgent:     make(map[string]int),
	}
	for _, e := range entries {
		stats.Total++
		stats.EventCounts[e.Type]++

		switch e.Type {
		case EventTaskCompleted:
			stats.TaskCompletions++
			if e.AgentID != "" {
				stats.ByAgent[e.AgentID]++
			}
		case EventLevelUp:
			stats.LevelUps++
		}
	}
	return stats
}

// Stats aggregates the retained entries and reports how many the log keeps.
func (l *Log) Stats() Stats {
	stats := CalculateStats(l.entries)
	stats.Capacity = l.Capacity()
	return stats
}
