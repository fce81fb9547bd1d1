package game

import (
	"context"
	"testing"
	"time"

	"osirishq/internal/activity"
	"osirishq/internal/agent"
	"osirishq/internal/events"
	"osirishq/internal/ledger"
	"osirishq/internal/quest"
	"osirishq/internal/task"
	"osirishq/internal/upgrade"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testStart = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func testSeed() Seed {
	return Seed{
		Ledger: ledger.Ledger{
			Currency:        500,
			Energy:          100,
			MaxEnergy:       100,
			EnergyRegenRate: 0.5,
			Level:           1,
			ClickPower:      1,
		},
		Agents: []agent.Agent{
			{ID: "apollo", Name: "Apollo", Role: "sales", Efficiency: 1},
			{ID: "iris", Name: "Iris", Role: "marketing", Efficiency: 1},
		},
		Tasks: []task.Task{
			{ID: "cold_outreach", Title: "Cold outreach", AgentID: "apollo", Duration: 30, EnergyCost: 20, Reward: ledger.Bundle{Currency: 100, XP: 15}, Unlocked: true},
			{ID: "discovery_call", Title: "Discovery call", AgentID: "apollo", Duration: 40, EnergyCost: 25, Reward: ledger.Bundle{Clients: 1, XP: 30}},
			{ID: "social_post", Title: "Social post", AgentID: "iris", Duration: 10, EnergyCost: 10, Reward: ledger.Bundle{Leads: 3, XP: 5}, Unlocked: true},
			{ID: "big_launch", Title: "Big launch", AgentID: "iris", Duration: 5, Reward: ledger.Bundle{XP: 350}, Unlocked: true},
		},
		Quests: []quest.Quest{
			{ID: "warm_up", Title: "Warm up", Category: quest.CategoryOneTime, Metric: quest.MetricLeads, Target: 5, Current: 5, Reward: ledger.Bundle{Currency: 50, XP: 10}},
			{ID: "lead_gen", Title: "Lead gen", Category: quest.CategoryDaily, Metric: quest.MetricLeads, Target: 6, Reward: ledger.Bundle{Currency: 25}},
			{ID: "busy_bees", Title: "Busy bees", Category: quest.CategoryMilestone, Metric: quest.MetricTasksCompleted, Target: 2, Reward: ledger.Bundle{XP: 100}},
			{ID: "clicker", Title: "Clicker", Category: quest.CategoryDaily, Metric: quest.MetricClicks, Target: 3, Reward: ledger.Bundle{Currency: 5}},
			{ID: "first_revenue", Title: "First revenue", Category: quest.CategoryOneTime, Metric: quest.MetricCurrency, Target: 100, Reward: ledger.Bundle{XP: 20}},
		},
		Upgrades: []upgrade.Upgrade{
			{ID: "better_mouse", Title: "Better mouse", Cost: 50, Effect: upgrade.Effect{Kind: upgrade.EffectClickPower, Amount: 1}},
			{ID: "gold_mouse", Title: "Gold mouse", Cost: 200, Requires: "better_mouse", Effect: upgrade.Effect{Kind: upgrade.EffectClickPower, Amount: 4}},
			{ID: "coffee", Title: "Coffee machine", Cost: 100, Effect: upgrade.Effect{Kind: upgrade.EffectMaxEnergy, Amount: 50}},
			{ID: "solar", Title: "Solar panels", Cost: 150, Effect: upgrade.Effect{Kind: upgrade.EffectEnergyRegen, Amount: 0.5}},
			{ID: "apollo_playbook", Title: "Sales playbook", Cost: 300, Effect: upgrade.Effect{Kind: upgrade.EffectAgentEfficiency, AgentID: "apollo"}},
			{ID: "crm", Title: "CRM", Cost: 400, Effect: upgrade.Effect{Kind: upgrade.EffectUnlockTask, TaskID: "discovery_call"}},
			{ID: "yacht", Title: "Yacht", Cost: 10000, Effect: upgrade.Effect{Kind: upgrade.EffectClickPower, Amount: 100}},
		},
	}
}

func newTestEngine(t require.TestingT, seed Seed, opts Options) *Engine {
	if opts.Clock == nil {
		opts.Clock = NewFakeClock(testStart)
	}
	e, err := New(seed, opts)
	require.NoError(t, err)
	return e
}

func advanceSeconds(t *testing.T, e *Engine, n int) TickResult {
	t.Helper()
	var total TickResult
	for i := 0; i < n; i++ {
		res, err := e.AdvanceTasks(context.Background(), time.Second)
		require.NoError(t, err)
		total.Completed = append(total.Completed, res.Completed...)
		total.LevelsGained += res.LevelsGained
		total.QuestsReady = append(total.QuestsReady, res.QuestsReady...)
	}
	return total
}

func countEntries(entries []activity.Entry, typ activity.EventType) int {
	n := 0
	for _, e := range entries {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func questByID(t *testing.T, snap Snapshot, id string) QuestView {
	t.Helper()
	for _, q := range snap.Quests {
		if q.ID == id {
			return q
		}
	}
	t.Fatalf("quest %s not in snapshot", id)
	return QuestView{}
}

func TestAssignTask_CompletesAfterDurationAndCreditsReward(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, testSeed(), Options{})

	res, err := e.AssignTask(ctx, "apollo", "cold_outreach")
	require.NoError(t, err)
	assert.Equal(t, 20.0, res.EnergySpent)
	assert.Equal(t, 80.0, res.EnergyLeft)

	done := advanceSeconds(t, e, 29)
	assert.Empty(t, done.Completed)

	done = advanceSeconds(t, e, 1)
	require.Len(t, done.Completed, 1)
	assert.Equal(t, "cold_outreach", done.Completed[0].TaskID)

	snap, err := e.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 80.0, snap.Ledger.Energy, "energy is paid at assignment, not completion")
	assert.Equal(t, 600, snap.Ledger.Currency)
	assert.Equal(t, 15, snap.Ledger.Experience)

	apollo, ok := snap.Agent("apollo")
	require.True(t, ok)
	assert.Empty(t, apollo.CurrentTask)
	assert.Equal(t, 0.0, apollo.Progress)
	assert.Equal(t, agent.StatusIdle, apollo.Status)

	assert.Equal(t, 1, countEntries(snap.Activity, activity.EventTaskCompleted))
	assert.Equal(t, 1, countEntries(snap.Activity, activity.EventTaskAssigned))
}

func TestTick_RegeneratesAlongsideTasks(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, testSeed(), Options{})

	_, err := e.AssignTask(ctx, "apollo", "cold_outreach")
	require.NoError(t, err)

	for i := 0; i < 30; i++ {
		_, err := e.Tick(ctx, time.Second)
		require.NoError(t, err)
	}

	snap, _ := e.Snapshot(ctx)
	assert.InDelta(t, 95.0, snap.Ledger.Energy, 1e-9)
	assert.Equal(t, 600, snap.Ledger.Currency)
}

func TestRegenerateEnergy_CapsAtMax(t *testing.T) {
	ctx := context.Background()
	seed := testSeed()
	seed.Ledger.Energy = 99
	e := newTestEngine(t, seed, Options{})

	gained, err := e.RegenerateEnergy(ctx, 10*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1.0, gained)

	gained, err = e.RegenerateEnergy(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 0.0, gained)

	snap, _ := e.Snapshot(ctx)
	assert.Equal(t, 100.0, snap.Ledger.Energy)
}

func TestAssignTask_Failures(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name    string
		energy  float64
		setup   func(t *testing.T, e *Engine)
		agentID string
		taskID  string
		want    error
	}{
		{name: "unknown agent", energy: 100, agentID: "zeus", taskID: "cold_outreach", want: ErrUnknownAgent},
		{name: "unknown task", energy: 100, agentID: "apollo", taskID: "nap", want: ErrUnknownTask},
		{name: "task of another agent", energy: 100, agentID: "apollo", taskID: "social_post", want: ErrTaskNotOwned},
		{name: "locked task", energy: 100, agentID: "apollo", taskID: "discovery_call", want: ErrTaskLocked},
		{name: "insufficient energy", energy: 15, agentID: "apollo", taskID: "cold_outreach", want: ErrInsufficientEnergy},
		{
			name:   "agent busy",
			energy: 100,
			setup: func(t *testing.T, e *Engine) {
				_, err := e.AssignTask(ctx, "apollo", "cold_outreach")
				require.NoError(t, err)
			},
			agentID: "apollo",
			taskID:  "cold_outreach",
			want:    ErrAgentBusy,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seed := testSeed()
			seed.Ledger.Energy = tc.energy
			e := newTestEngine(t, seed, Options{})
			if tc.setup != nil {
				tc.setup(t, e)
			}
			before, _ := e.Snapshot(ctx)

			_, err := e.AssignTask(ctx, tc.agentID, tc.taskID)
			require.ErrorIs(t, err, tc.want)

			after, _ := e.Snapshot(ctx)
			assert.Equal(t, before.Ledger, after.Ledger)
			assert.Equal(t, before.Agents, after.Agents)
			assert.Equal(t, len(before.Activity), len(after.Activity))
		})
	}
}

func TestAgentEfficiency_SpeedsUpCompletion(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, testSeed(), Options{})

	_, err := e.PurchaseUpgrade(ctx, "apollo_playbook")
	require.NoError(t, err)
	_, err = e.AssignTask(ctx, "apollo", "cold_outreach")
	require.NoError(t, err)

	assert.Empty(t, advanceSeconds(t, e, 23).Completed)

	snap, _ := e.Snapshot(ctx)
	apollo, _ := snap.Agent("apollo")
	assert.InDelta(t, 28.75/30, apollo.Progress, 1e-9)
	assert.Equal(t, "Cold outreach", apollo.TaskTitle)
	assert.Equal(t, 1.25, apollo.Efficiency)

	assert.Len(t, advanceSeconds(t, e, 1).Completed, 1)
}

func TestTaskCompletion_FeedsMatchingQuests(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, testSeed(), Options{})

	_, err := e.AssignTask(ctx, "iris", "social_post")
	require.NoError(t, err)
	advanceSeconds(t, e, 10)

	snap, _ := e.Snapshot(ctx)
	assert.Equal(t, 3, questByID(t, snap, "lead_gen").Current)
	assert.Equal(t, 1, questByID(t, snap, "busy_bees").Current)
	assert.Equal(t, 0, questByID(t, snap, "first_revenue").Current)
	assert.Equal(t, 3, snap.Ledger.Leads)

	_, err = e.AssignTask(ctx, "iris", "social_post")
	require.NoError(t, err)
	advanceSeconds(t, e, 10)

	snap, _ = e.Snapshot(ctx)
	assert.True(t, questByID(t, snap, "lead_gen").Claimable)
	assert.True(t, questByID(t, snap, "busy_bees").Claimable)
}

func TestLevelUp_HandlesMultiLevelJumps(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, testSeed(), Options{})

	_, err := e.AssignTask(ctx, "iris", "big_launch")
	require.NoError(t, err)
	res := advanceSeconds(t, e, 5)
	assert.Equal(t, 2, res.LevelsGained)

	snap, _ := e.Snapshot(ctx)
	assert.Equal(t, 3, snap.Ledger.Level)
	assert.Equal(t, 50, snap.Ledger.Experience)
	assert.Equal(t, 300, snap.Ledger.NextLevelXP)
	assert.Equal(t, 2, countEntries(snap.Activity, activity.EventLevelUp))
}

func TestClaimQuest_OnlyOnce(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, testSeed(), Options{})

	res, err := e.ClaimQuest(ctx, "warm_up")
	require.NoError(t, err)
	assert.Equal(t, ledger.Bundle{Currency: 50, XP: 10}, res.Reward)

	snap, _ := e.Snapshot(ctx)
	assert.Equal(t, 550, snap.Ledger.Currency)
	assert.Equal(t, 10, snap.Ledger.Experience)
	q := questByID(t, snap, "warm_up")
	assert.True(t, q.Completed)
	assert.False(t, q.Claimable)
	require.NotNil(t, q.CompletedAt)
	assert.Equal(t, testStart, *q.CompletedAt)

	_, err = e.ClaimQuest(ctx, "warm_up")
	require.ErrorIs(t, err, ErrAlreadyClaimed)

	after, _ := e.Snapshot(ctx)
	assert.Equal(t, snap.Ledger, after.Ledger)
}

func TestClaimQuest_Failures(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, testSeed(), Options{})

	_, err := e.ClaimQuest(ctx, "lead_gen")
	assert.ErrorIs(t, err, ErrQuestNotComplete)

	_, err = e.ClaimQuest(ctx, "nope")
	assert.ErrorIs(t, err, ErrUnknownQuest)
}

func TestClaimQuest_XPRewardLevelsUp(t *testing.T) {
	ctx := context.Background()
	seed := testSeed()
	seed.Ledger.Experience = 95
	e := newTestEngine(t, seed, Options{})

	res, err := e.ClaimQuest(ctx, "warm_up")
	require.NoError(t, err)
	assert.Equal(t, 1, res.LevelsGained)
	assert.Equal(t, 2, res.Level)
}

func TestPurchaseUpgrade_Twice(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, testSeed(), Options{})

	res, err := e.PurchaseUpgrade(ctx, "better_mouse")
	require.NoError(t, err)
	assert.Equal(t, 450, res.CurrencyLeft)

	_, err = e.PurchaseUpgrade(ctx, "better_mouse")
	require.ErrorIs(t, err, ErrAlreadyPurchased)

	snap, _ := e.Snapshot(ctx)
	assert.Equal(t, 450, snap.Ledger.Currency)
	assert.Equal(t, 2, snap.Ledger.ClickPower)
}

func TestPurchaseUpgrade_CheckOrder(t *testing.T) {
	ctx := context.Background()
	seed := testSeed()
	seed.Ledger.Currency = 60
	e := newTestEngine(t, seed, Options{})

	_, err := e.PurchaseUpgrade(ctx, "gold_mouse")
	assert.ErrorIs(t, err, ErrPrerequisiteNotMet)

	_, err = e.PurchaseUpgrade(ctx, "yacht")
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	_, err = e.PurchaseUpgrade(ctx, "better_mouse")
	require.NoError(t, err)

	_, err = e.PurchaseUpgrade(ctx, "better_mouse")
	assert.ErrorIs(t, err, ErrAlreadyPurchased, "repeat purchase reports already purchased even when broke")

	_, err = e.PurchaseUpgrade(ctx, "gold_mouse")
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	_, err = e.PurchaseUpgrade(ctx, "moon_base")
	assert.ErrorIs(t, err, ErrUnknownUpgrade)

	snap, _ := e.Snapshot(ctx)
	assert.Equal(t, 10, snap.Ledger.Currency)
}

func TestPurchaseUpgrade_Effects(t *testing.T) {
	ctx := context.Background()
	seed := testSeed()
	seed.Ledger.Currency = 5000
	e := newTestEngine(t, seed, Options{})

	for _, id := range []string{"better_mouse", "gold_mouse", "coffee", "solar", "crm"} {
		_, err := e.PurchaseUpgrade(ctx, id)
		require.NoError(t, err, id)
	}

	snap, _ := e.Snapshot(ctx)
	assert.Equal(t, 6, snap.Ledger.ClickPower)
	assert.Equal(t, 150.0, snap.Ledger.MaxEnergy)
	assert.Equal(t, 100.0, snap.Ledger.Energy, "raising the cap does not refill")
	assert.Equal(t, 1.0, snap.Ledger.EnergyRegenRate)
	assert.Equal(t, 5000-50-200-100-150-400, snap.Ledger.Currency)
	assert.Equal(t, 5, countEntries(snap.Activity, activity.EventUpgradePurchased))

	_, err := e.AssignTask(ctx, "apollo", "discovery_call")
	require.NoError(t, err)

	earned, err := e.ManualEarn(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, earned.Amount)
}

func TestPurchaseUpgrade_FailedEffectLeavesStateAlone(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, testSeed(), Options{})

	// The shop alone cannot see agents, so it accepts a dangling target.
	shop := upgrade.NewShop()
	require.NoError(t, shop.Seed([]upgrade.Upgrade{
		{ID: "zeus_coach", Title: "Zeus coach", Cost: 100, Effect: upgrade.Effect{Kind: upgrade.EffectAgentEfficiency, AgentID: "zeus"}},
	}))
	e.upgrades = shop

	_, err := e.PurchaseUpgrade(ctx, "zeus_coach")
	require.ErrorIs(t, err, ErrUnknownAgent)

	snap, _ := e.Snapshot(ctx)
	assert.Equal(t, 500, snap.Ledger.Currency)
	require.Len(t, snap.Upgrades, 1)
	assert.False(t, snap.Upgrades[0].Purchased)
	assert.Empty(t, snap.Activity)
}

func TestManualEarn_ReportsQuestsReady(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, testSeed(), Options{})

	for i := 0; i < 2; i++ {
		res, err := e.ManualEarn(ctx)
		require.NoError(t, err)
		assert.Empty(t, res.QuestsReady)
	}
	res, err := e.ManualEarn(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"clicker"}, res.QuestsReady)

	res, err = e.ManualEarn(ctx)
	require.NoError(t, err)
	assert.Empty(t, res.QuestsReady, "a quest is reported once")
}

func TestAdvanceTasks_ReportsQuestsReady(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, testSeed(), Options{})

	_, err := e.AssignTask(ctx, "iris", "social_post")
	require.NoError(t, err)
	assert.Empty(t, advanceSeconds(t, e, 10).QuestsReady)

	_, err = e.AssignTask(ctx, "iris", "social_post")
	require.NoError(t, err)
	done := advanceSeconds(t, e, 10)
	assert.ElementsMatch(t, []string{"lead_gen", "busy_bees"}, done.QuestsReady)
}

func TestActivitySince_FiltersByTimeAndType(t *testing.T) {
	ctx := context.Background()
	clock := NewFakeClock(testStart)
	e := newTestEngine(t, testSeed(), Options{Clock: clock})

	_, err := e.PurchaseUpgrade(ctx, "better_mouse")
	require.NoError(t, err)
	clock.Advance(time.Minute)
	_, err = e.AssignTask(ctx, "iris", "big_launch")
	require.NoError(t, err)
	_, err = e.ClaimQuest(ctx, "warm_up")
	require.NoError(t, err)

	all, err := e.ActivitySince(ctx, time.Time{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	recent, err := e.ActivitySince(ctx, testStart.Add(time.Minute))
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	claims, err := e.ActivitySince(ctx, time.Time{}, activity.EventQuestClaimed, activity.EventUpgradePurchased)
	require.NoError(t, err)
	require.Len(t, claims, 2)
	assert.Equal(t, activity.EventUpgradePurchased, claims[0].Type)
	assert.Equal(t, activity.EventQuestClaimed, claims[1].Type)

	none, err := e.ActivitySince(ctx, testStart.Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestManualEarn_FeedsClickAndCurrencyQuests(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, testSeed(), Options{})

	for i := 0; i < 3; i++ {
		res, err := e.ManualEarn(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Amount)
	}

	snap, _ := e.Snapshot(ctx)
	assert.Equal(t, 503, snap.Ledger.Currency)
	assert.True(t, questByID(t, snap, "clicker").Claimable)
	assert.Equal(t, 3, questByID(t, snap, "first_revenue").Current)
	assert.Empty(t, snap.Activity, "clicks are not logged")
}

func TestResetQuest(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, testSeed(), Options{})

	for i := 0; i < 3; i++ {
		_, err := e.ManualEarn(ctx)
		require.NoError(t, err)
	}
	_, err := e.ClaimQuest(ctx, "clicker")
	require.NoError(t, err)

	q, err := e.ResetQuest(ctx, "clicker")
	require.NoError(t, err)
	assert.Equal(t, 0, q.Current)
	assert.False(t, q.Completed)

	_, err = e.ResetQuest(ctx, "warm_up")
	assert.ErrorIs(t, err, ErrNotRepeating)

	_, err = e.ResetQuest(ctx, "nope")
	assert.ErrorIs(t, err, ErrUnknownQuest)
}

func TestActivityLog_IsCapped(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, testSeed(), Options{LogCapacity: 3})

	for i := 0; i < 3; i++ {
		_, err := e.AssignTask(ctx, "iris", "big_launch")
		require.NoError(t, err)
		advanceSeconds(t, e, 5)
	}

	entries, err := e.Activity(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	stats, err := e.ActivityStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
}

func TestSnapshot_IsDeepCopy(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, testSeed(), Options{})
	_, err := e.ClaimQuest(ctx, "warm_up")
	require.NoError(t, err)

	snap, _ := e.Snapshot(ctx)
	snap.Ledger.Currency = 0
	snap.Agents[0].Efficiency = 99
	snap.Tasks[1].Unlocked = true
	*snap.Quests[0].CompletedAt = time.Time{}
	snap.Activity[0].Message = "tampered"

	again, _ := e.Snapshot(ctx)
	assert.Equal(t, 550, again.Ledger.Currency)
	assert.Equal(t, 1.0, again.Agents[0].Efficiency)
	assert.False(t, again.Tasks[1].Unlocked)
	assert.Equal(t, testStart, *again.Quests[0].CompletedAt)
	assert.NotEqual(t, "tampered", again.Activity[0].Message)
	assert.Equal(t, testStart, again.TakenAt)
}

func TestSnapshot_Helpers(t *testing.T) {
	ctx := context.Background()
	seed := testSeed()
	seed.Ledger.Energy = 12
	e := newTestEngine(t, seed, Options{})

	snap, _ := e.Snapshot(ctx)
	_, ok := snap.NextTask("apollo")
	assert.False(t, ok, "cold outreach costs more than the energy left")

	next, ok := snap.NextTask("iris")
	require.True(t, ok)
	assert.Equal(t, "social_post", next.ID)

	claimable := snap.ClaimableQuests()
	require.Len(t, claimable, 1)
	assert.Equal(t, "warm_up", claimable[0].ID)

	u, ok := snap.NextUpgrade()
	require.True(t, ok)
	assert.Equal(t, "better_mouse", u.ID)

	gold := snap.Upgrades[1]
	assert.False(t, gold.Available)
	assert.True(t, gold.Affordable)
}

func TestNew_RejectsBrokenSeeds(t *testing.T) {
	cases := map[string]func(s *Seed){
		"bad ledger":             func(s *Seed) { s.Ledger.MaxEnergy = 0 },
		"task owner missing":     func(s *Seed) { s.Tasks[0].AgentID = "zeus" },
		"efficiency target":      func(s *Seed) { s.Upgrades[4].Effect.AgentID = "zeus" },
		"unlock target":          func(s *Seed) { s.Upgrades[5].Effect.TaskID = "nap" },
		"current task unknown":   func(s *Seed) { s.Agents[0].CurrentTask = "nap" },
		"current task not own":   func(s *Seed) { s.Agents[0].CurrentTask = "social_post" },
		"duplicate agent":        func(s *Seed) { s.Agents[1].ID = "apollo" },
		"prerequisite missing":   func(s *Seed) { s.Upgrades[1].Requires = "ghost" },
		"quest with zero target": func(s *Seed) { s.Quests[0].Target = 0 },
		"fractional click power": func(s *Seed) { s.Upgrades[0].Effect.Amount = 0.5 },
		"prerequisite cycle":     func(s *Seed) { s.Upgrades[0].Requires = "gold_mouse" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			seed := testSeed()
			mutate(&seed)
			_, err := New(seed, Options{})
			assert.Error(t, err)
		})
	}
}

func TestEngine_PublishesOnChange(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	pub := NewMockPublisher(ctrl)
	e := newTestEngine(t, testSeed(), Options{Publisher: pub})

	pub.EXPECT().Publish(events.EventStateChanged, map[string]any{"reason": "click"}).Times(1)
	_, err := e.ManualEarn(ctx)
	require.NoError(t, err)

	// failures and idle ticks stay quiet
	_, err = e.AssignTask(ctx, "apollo", "discovery_call")
	require.Error(t, err)
	_, err = e.AdvanceTasks(ctx, time.Second)
	require.NoError(t, err)
	_, err = e.RegenerateEnergy(ctx, time.Second)
	require.NoError(t, err)

	pub.EXPECT().Publish(events.EventStateChanged, gomock.Any()).Times(2)
	_, err = e.AssignTask(ctx, "apollo", "cold_outreach")
	require.NoError(t, err)
	_, err = e.AdvanceTasks(ctx, time.Second)
	require.NoError(t, err)
}

func TestKind(t *testing.T) {
	_, err := newTestEngine(t, testSeed(), Options{}).AssignTask(context.Background(), "apollo", "discovery_call")
	assert.Equal(t, "task_locked", Kind(err))
	assert.False(t, IsNotFound(err))

	_, err = newTestEngine(t, testSeed(), Options{}).ClaimQuest(context.Background(), "nope")
	assert.Equal(t, "unknown_quest", Kind(err))
	assert.True(t, IsNotFound(err))

	assert.Equal(t, "internal", Kind(assert.AnError))
}
