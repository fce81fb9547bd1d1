package config

import (
	"osirishq/internal/ledger"
	"osirishq/internal/upgrade"
)

// Default returns the built-in HQ: six agents, their task catalog, quests
// and the upgrade shop.
func Default() *Config {
	return &Config{
		Version:    "1",
		Difficulty: "normal",
		Server: ServerConfig{
			Addr:              ":42069",
			ShutdownTimeoutMS: 5000,
			LogLevel:          "info",
		},
		Clock: ClockConfig{
			TaskTickMS:  1000,
			RegenTickMS: 100,
		},
		Balance:  DefaultBalance(),
		Agents:   defaultAgents(),
		Tasks:    defaultTasks(),
		Quests:   defaultQuests(),
		Upgrades: defaultUpgrades(),
		Terminal: defaultTerminal(),
	}
}

func defaultAgents() []AgentConfig {
	return []AgentConfig{
		{ID: "osiris", Name: "Osiris", Role: "Chief Orchestrator", Emoji: "𓂀", Color: "#a855f7", Efficiency: 1},
		{ID: "iris", Name: "Iris", Role: "Marketing", Emoji: "🌈", Color: "#ec4899", Efficiency: 1},
		{ID: "apollo", Name: "Apollo", Role: "Sales", Emoji: "☀️", Color: "#f59e0b", Efficiency: 1},
		{ID: "atlas", Name: "Atlas", Role: "Operations", Emoji: "🗺️", Color: "#3b82f6", Efficiency: 1},
		{ID: "horus", Name: "Horus", Role: "Analytics", Emoji: "🦅", Color: "#10b981", Efficiency: 1},
		{ID: "thoth", Name: "Thoth", Role: "Knowledge & Reports", Emoji: "📜", Color: "#6366f1", Efficiency: 1},
	}
}

func defaultTasks() []TaskConfig {
	return []TaskConfig{
		{ID: "strategy_sync", Title: "Strategy sync", Agent: "osiris", DurationS: 20, EnergyCost: 10, Reward: ledger.Bundle{Currency: 25, XP: 20}},
		{ID: "quarterly_plan", Title: "Quarterly plan", Agent: "osiris", DurationS: 60, EnergyCost: 40, Reward: ledger.Bundle{Currency: 300, XP: 80}, Locked: true},

		{ID: "social_post", Title: "Social post", Agent: "iris", DurationS: 10, EnergyCost: 10, Reward: ledger.Bundle{Leads: 2, XP: 5}},
		{ID: "content_campaign", Title: "Content campaign", Agent: "iris", DurationS: 45, EnergyCost: 30, Reward: ledger.Bundle{Leads: 10, XP: 25}},
		{ID: "viral_launch", Title: "Viral launch", Agent: "iris", DurationS: 90, EnergyCost: 50, Reward: ledger.Bundle{Leads: 40, Reviews: 5, XP: 90}, Locked: true},

		{ID: "cold_outreach", Title: "Cold outreach", Agent: "apollo", DurationS: 30, EnergyCost: 20, Reward: ledger.Bundle{Currency: 100, XP: 15}},
		{ID: "discovery_call", Title: "Discovery call", Agent: "apollo", DurationS: 40, EnergyCost: 25, Reward: ledger.Bundle{Currency: 150, Clients: 1, XP: 30}, Locked: true},

		{ID: "client_onboarding", Title: "Client onboarding", Agent: "atlas", DurationS: 35, EnergyCost: 25, Reward: ledger.Bundle{Currency: 120, Reviews: 1, XP: 20}},
		{ID: "fulfillment_run", Title: "Fulfillment run", Agent: "atlas", DurationS: 25, EnergyCost: 15, Reward: ledger.Bundle{Currency: 80, XP: 10}},

		{ID: "review_sweep", Title: "Review sweep", Agent: "horus", DurationS: 20, EnergyCost: 10, Reward: ledger.Bundle{Reviews: 2, XP: 10}},
		{ID: "kpi_audit", Title: "KPI audit", Agent: "horus", DurationS: 50, EnergyCost: 30, Reward: ledger.Bundle{Currency: 120, XP: 60}, Locked: true},

		{ID: "weekly_report", Title: "Weekly report", Agent: "thoth", DurationS: 30, EnergyCost: 15, Reward: ledger.Bundle{Currency: 40, XP: 25}},
		{ID: "knowledge_base", Title: "Knowledge base", Agent: "thoth", DurationS: 60, EnergyCost: 35, Reward: ledger.Bundle{Currency: 60, Reviews: 3, XP: 70}, Locked: true},
	}
}

func defaultQuests() []QuestConfig {
	return []QuestConfig{
		{ID: "daily_clicks", Title: "Warm hands", Description: "Click 25 times today", Category: "daily", Metric: "clicks", Target: 25, Reward: ledger.Bundle{Currency: 50}},
		{ID: "daily_leads", Title: "Fill the funnel", Description: "Generate 10 leads today", Category: "daily", Metric: "leads", Target: 10, Reward: ledger.Bundle{Currency: 100, XP: 20}},
		{ID: "weekly_content", Title: "Content cadence", Description: "Complete 14 tasks this week", Category: "weekly", Metric: "tasks_completed", Target: 14, Reward: ledger.Bundle{XP: 150}},
		{ID: "first_client", Title: "First client", Description: "Sign your first client", Category: "one_time", Metric: "clients", Target: 1, Reward: ledger.Bundle{Currency: 250, XP: 50}},
		{ID: "review_magnet", Title: "Review magnet", Description: "Collect 10 reviews", Category: "one_time", Metric: "reviews", Target: 10, Reward: ledger.Bundle{Currency: 200}},
		{ID: "hundred_leads", Title: "Hundred leads", Description: "Reach 100 leads", Category: "milestone", Metric: "leads", Target: 100, Reward: ledger.Bundle{Currency: 1000, XP: 200}},
		{ID: "ten_clients", Title: "Ten clients", Description: "Sign 10 clients", Category: "milestone", Metric: "clients", Target: 10, Reward: ledger.Bundle{Currency: 2000, XP: 300}},
		{ID: "mrr_100k", Title: "$100k MRR", Description: "Earn 100,000 in revenue", Category: "milestone", Metric: "currency", Target: 100000, Reward: ledger.Bundle{XP: 1000}},
	}
}

func defaultUpgrades() []UpgradeConfig {
	return []UpgradeConfig{
		{ID: "better_mouse", Title: "Better mouse", Cost: 50, Effect: upgrade.Effect{Kind: upgrade.EffectClickPower, Amount: 1}},
		{ID: "mechanical_keyboard", Title: "Mechanical keyboard", Cost: 200, Requires: "better_mouse", Effect: upgrade.Effect{Kind: upgrade.EffectClickPower, Amount: 3}},
		{ID: "espresso_machine", Title: "Espresso machine", Cost: 150, Effect: upgrade.Effect{Kind: upgrade.EffectMaxEnergy, Amount: 50}},
		{ID: "solar_array", Title: "Solar array", Cost: 300, Effect: upgrade.Effect{Kind: upgrade.EffectEnergyRegen, Amount: 0.5}},
		{ID: "nap_pods", Title: "Nap pods", Cost: 600, Requires: "solar_array", Effect: upgrade.Effect{Kind: upgrade.EffectEnergyRegen, Amount: 1}},
		{ID: "apollo_playbook", Title: "Sales playbook", Cost: 400, Effect: upgrade.Effect{Kind: upgrade.EffectAgentEfficiency, AgentID: "apollo"}},
		{ID: "iris_design_suite", Title: "Design suite", Cost: 400, Effect: upgrade.Effect{Kind: upgrade.EffectAgentEfficiency, AgentID: "iris"}},
		{ID: "horus_dashboards", Title: "Live dashboards", Cost: 350, Effect: upgrade.Effect{Kind: upgrade.EffectAgentEfficiency, AgentID: "horus"}},
		{ID: "crm_integration", Title: "CRM integration", Cost: 500, Effect: upgrade.Effect{Kind: upgrade.EffectUnlockTask, TaskID: "discovery_call"}},
		{ID: "content_studio", Title: "Content studio", Cost: 450, Effect: upgrade.Effect{Kind: upgrade.EffectUnlockTask, TaskID: "viral_launch"}},
		{ID: "bi_stack", Title: "BI stack", Cost: 700, Requires: "horus_dashboards", Effect: upgrade.Effect{Kind: upgrade.EffectUnlockTask, TaskID: "kpi_audit"}},
		{ID: "team_wiki", Title: "Team wiki", Cost: 300, Effect: upgrade.Effect{Kind: upgrade.EffectUnlockTask, TaskID: "knowledge_base"}},
		{ID: "boardroom", Title: "Boardroom", Cost: 1200, Effect: upgrade.Effect{Kind: upgrade.EffectUnlockTask, TaskID: "quarterly_plan"}},
	}
}

func defaultTerminal() TerminalConfig {
	return TerminalConfig{
		DelayMS:  1500,
		Fallback: "osiris",
		Routes: []RouteConfig{
			{
				Agent:   "apollo",
				Pattern: `\b(sales?|leads?|calls?|clos(e|ing)|deals?|pipeline|book(ing|ings)?)\b`,
				Reply:   "Pipeline check: 12 calls today with 8 bookings, a 67% conversion rate. Two warm leads from yesterday still need a follow-up.",
			},
			{
				Agent:   "iris",
				Pattern: `\b(market\w*|content|social|posts?|brand\w*|campaigns?)\b`,
				Reply:   "Content is on schedule: 9 of 14 pieces shipped this week. The last carousel pulled twice the usual engagement.",
			},
			{
				Agent:   "atlas",
				Pattern: `\b(ops|operations?|onboard\w*|fulfil+\w*|schedul\w*)\b`,
				Reply:   "Operations are green. Two onboardings are in flight and no fulfillment is late.",
			},
			{
				Agent:   "horus",
				Pattern: `\b(kpis?|metrics?|analytics?|perform\w*|conversions?|mrr)\b`,
				Reply:   "MRR is $1,750 and trending up 15% month over month. Cedar Rapids converts at 67%, WinBros at 67%.",
			},
			{
				Agent:   "thoth",
				Pattern: `\b(reports?|summar(y|ize)|docs?|knowledge|notes?)\b`,
				Reply:   "The weekly report is drafted. Highlights: revenue up, two reviews pending, one client at risk.",
			},
		},
	}
}
