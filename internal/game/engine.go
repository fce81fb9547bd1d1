package game

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"osirishq/internal/activity"
	"osirishq/internal/agent"
	"osirishq/internal/events"
	"osirishq/internal/ledger"
	"osirishq/internal/quest"
	"osirishq/internal/task"
	"osirishq/internal/upgrade"
)

// Publisher receives a notification after every change to game state.
//
//go:generate go run go.uber.org/mock/mockgen -destination=mock_publisher_test.go -package=game . Publisher
type Publisher interface {
	Publish(eventType events.EventType, data map[string]any)
}

// Seed is the starting state handed to New.
type Seed struct {
	Ledger   ledger.Ledger
	Agents   []agent.Agent
	Tasks    []task.Task
	Quests   []quest.Quest
	Upgrades []upgrade.Upgrade
}

type Options struct {
	Clock       Clock
	Publisher   Publisher
	Logger      *slog.Logger
	LogCapacity int
}

// Engine owns all game state. A single mutex serializes every operation,
// tick and snapshot.
type Engine struct {
	mu       sync.Mutex
	ledger   ledger.Ledger
	agents   *agent.Roster
	tasks    *task.Catalog
	quests   *quest.Tracker
	upgrades *upgrade.Shop
	log      *activity.Log

	clock  Clock
	pub    Publisher
	logger *slog.Logger
}

func New(seed Seed, opts Options) (*Engine, error) {
	if err := seed.Ledger.Validate(); err != nil {
		return nil, fmt.Errorf("ledger: %w", err)
	}

	e := &Engine{
		ledger:   seed.Ledger,
		agents:   agent.NewRoster(),
		tasks:    task.NewCatalog(),
		quests:   quest.NewTracker(),
		upgrades: upgrade.NewShop(),
		log:      activity.NewLog(opts.LogCapacity),
		clock:    opts.Clock,
		pub:      opts.Publisher,
		logger:   opts.Logger,
	}
	if e.clock == nil {
		e.clock = RealClock{}
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if err := e.agents.Seed(seed.Agents); err != nil {
		return nil, err
	}
	if err := e.tasks.Seed(seed.Tasks); err != nil {
		return nil, err
	}
	for _, t := range seed.Tasks {
		if _, ok := e.agents.Get(t.AgentID); !ok {
			return nil, fmt.Errorf("task %s: %w: %s", t.ID, ErrUnknownAgent, t.AgentID)
		}
	}
	for _, a := range seed.Agents {
		if !a.Busy() {
			continue
		}
		t, ok := e.tasks.Get(a.CurrentTask)
		if !ok {
			return nil, fmt.Errorf("agent %s: %w: %s", a.ID, ErrUnknownTask, a.CurrentTask)
		}
		if t.AgentID != a.ID {
			return nil, fmt.Errorf("agent %s: %w: %s", a.ID, ErrTaskNotOwned, t.ID)
		}
	}
	if err := e.quests.Seed(seed.Quests); err != nil {
		return nil, err
	}
	if err := e.upgrades.Seed(seed.Upgrades); err != nil {
		return nil, err
	}
	for _, u := range seed.Upgrades {
		switch u.Effect.Kind {
		case upgrade.EffectAgentEfficiency:
			if _, ok := e.agents.Get(u.Effect.AgentID); !ok {
				return nil, fmt.Errorf("upgrade %s: %w: %s", u.ID, ErrUnknownAgent, u.Effect.AgentID)
			}
		case upgrade.EffectUnlockTask:
			if _, ok := e.tasks.Get(u.Effect.TaskID); !ok {
				return nil, fmt.Errorf("upgrade %s: %w: %s", u.ID, ErrUnknownTask, u.Effect.TaskID)
			}
		}
	}
	return e, nil
}

type AssignResult struct {
	AgentID     string  `json:"agent_id"`
	TaskID      string  `json:"task_id"`
	EnergySpent float64 `json:"energy_spent"`
	EnergyLeft  float64 `json:"energy_left"`
}

// AssignTask starts a task on an idle agent and debits its energy cost up front.
// Assignments cannot be cancelled.
func (e *Engine) AssignTask(ctx context.Context, agentID, taskID string) (AssignResult, error) {
	e.mu.Lock()
	res, err := e.assignTask(ctx, agentID, taskID)
	e.mu.Unlock()
	if err != nil {
		return AssignResult{}, err
	}
	e.publish("task_assigned")
	return res, nil
}

func (e *Engine) assignTask(ctx context.Context, agentID, taskID string) (AssignResult, error) {
	a, ok := e.agents.Get(agentID)
	if !ok {
		return AssignResult{}, fmt.Errorf("%w: %s", ErrUnknownAgent, agentID)
	}
	t, ok := e.tasks.Get(taskID)
	if !ok {
		return AssignResult{}, fmt.Errorf("%w: %s", ErrUnknownTask, taskID)
	}
	if t.AgentID != a.ID {
		return AssignResult{}, fmt.Errorf("%w: %s is handled by %s", ErrTaskNotOwned, t.ID, t.AgentID)
	}
	if !t.Unlocked {
		return AssignResult{}, fmt.Errorf("%w: %s", ErrTaskLocked, t.ID)
	}
	if a.Busy() {
		return AssignResult{}, fmt.Errorf("%w: %s is on %s", ErrAgentBusy, a.ID, a.CurrentTask)
	}
	if !e.ledger.SpendEnergy(t.EnergyCost) {
		return AssignResult{}, fmt.Errorf("%w: need %.1f, have %.1f", ErrInsufficientEnergy, t.EnergyCost, e.ledger.Energy)
	}

	a.Start(t.ID)
	e.agents.Update(a)
	e.record(activity.Entry{
		Type:    activity.EventTaskAssigned,
		Message: fmt.Sprintf("%s started %s", a.Name, t.Title),
		AgentID: a.ID,
		TaskID:  t.ID,
	})
	e.logger.DebugContext(ctx, "task assigned", "agent", a.ID, "task", t.ID, "energy", e.ledger.Energy)

	return AssignResult{
		AgentID:     a.ID,
		TaskID:      t.ID,
		EnergySpent: t.EnergyCost,
		EnergyLeft:  e.ledger.Energy,
	}, nil
}

type ClaimResult struct {
	QuestID      string        `json:"quest_id"`
	Reward       ledger.Bundle `json:"reward"`
	LevelsGained int           `json:"levels_gained"`
	Level        int           `json:"level"`
}

// ClaimQuest credits a finished quest's reward exactly once.
func (e *Engine) ClaimQuest(ctx context.Context, questID string) (ClaimResult, error) {
	e.mu.Lock()
	res, err := e.claimQuest(ctx, questID)
	e.mu.Unlock()
	if err != nil {
		return ClaimResult{}, err
	}
	e.publish("quest_claimed")
	return res, nil
}

func (e *Engine) claimQuest(ctx context.Context, questID string) (ClaimResult, error) {
	q, ok := e.quests.Get(questID)
	if !ok {
		return ClaimResult{}, fmt.Errorf("%w: %s", ErrUnknownQuest, questID)
	}
	if q.Completed {
		return ClaimResult{}, fmt.Errorf("%w: %s", ErrAlreadyClaimed, q.ID)
	}
	if q.Current < q.Target {
		return ClaimResult{}, fmt.Errorf("%w: %s at %d/%d", ErrQuestNotComplete, q.ID, q.Current, q.Target)
	}

	e.ledger.Credit(q.Reward)
	q.Complete(e.clock.Now())
	e.quests.Update(q)
	e.record(activity.Entry{
		Type:    activity.EventQuestClaimed,
		Message: fmt.Sprintf("Quest complete: %s", q.Title),
	})
	levels := e.levelUp(ctx)
	e.logger.InfoContext(ctx, "quest claimed", "quest", q.ID, "levels", levels)

	return ClaimResult{
		QuestID:      q.ID,
		Reward:       q.Reward,
		LevelsGained: levels,
		Level:        e.ledger.Level,
	}, nil
}

// ResetQuest reopens a daily or weekly quest. The reset schedule lives outside the engine.
func (e *Engine) ResetQuest(ctx context.Context, questID string) (quest.Quest, error) {
	e.mu.Lock()
	q, ok := e.quests.Get(questID)
	if !ok {
		e.mu.Unlock()
		return quest.Quest{}, fmt.Errorf("%w: %s", ErrUnknownQuest, questID)
	}
	if !q.Category.Repeating() {
		e.mu.Unlock()
		return quest.Quest{}, fmt.Errorf("%w: %s is %s", ErrNotRepeating, q.ID, q.Category)
	}
	q.Reset()
	e.quests.Update(q)
	e.mu.Unlock()

	e.logger.DebugContext(ctx, "quest reset", "quest", q.ID)
	e.publish("quest_reset")
	return q, nil
}

type PurchaseResult struct {
	UpgradeID    string         `json:"upgrade_id"`
	Cost         int            `json:"cost"`
	Effect       upgrade.Effect `json:"effect"`
	CurrencyLeft int            `json:"currency_left"`
}

// PurchaseUpgrade debits the exact cost and applies the effect immediately.
func (e *Engine) PurchaseUpgrade(ctx context.Context, upgradeID string) (PurchaseResult, error) {
	e.mu.Lock()
	res, err := e.purchaseUpgrade(ctx, upgradeID)
	e.mu.Unlock()
	if err != nil {
		return PurchaseResult{}, err
	}
	e.publish("upgrade_purchased")
	return res, nil
}

func (e *Engine) purchaseUpgrade(ctx context.Context, upgradeID string) (PurchaseResult, error) {
	u, ok := e.upgrades.Get(upgradeID)
	if !ok {
		return PurchaseResult{}, fmt.Errorf("%w: %s", ErrUnknownUpgrade, upgradeID)
	}
	if u.Purchased {
		return PurchaseResult{}, fmt.Errorf("%w: %s", ErrAlreadyPurchased, u.ID)
	}
	if !e.upgrades.PrerequisiteMet(u) {
		return PurchaseResult{}, fmt.Errorf("%w: %s needs %s", ErrPrerequisiteNotMet, u.ID, u.Requires)
	}
	if !e.ledger.Has(u.Cost) {
		return PurchaseResult{}, fmt.Errorf("%w: need %d, have %d", ErrInsufficientFunds, u.Cost, e.ledger.Currency)
	}
	// Everything that can fail is checked before the first mutation.
	if err := e.checkEffect(u.Effect); err != nil {
		return PurchaseResult{}, err
	}

	e.ledger.Spend(u.Cost)
	if err := e.upgrades.MarkPurchased(u.ID, e.clock.Now()); err != nil {
		return PurchaseResult{}, err
	}
	e.applyEffect(u.Effect)
	e.record(activity.Entry{
		Type:    activity.EventUpgradePurchased,
		Message: fmt.Sprintf("Purchased %s (%s)", u.Title, u.Effect.Describe()),
		AgentID: u.Effect.AgentID,
		TaskID:  u.Effect.TaskID,
	})
	e.logger.InfoContext(ctx, "upgrade purchased", "upgrade", u.ID, "cost", u.Cost, "effect", string(u.Effect.Kind))

	return PurchaseResult{
		UpgradeID:    u.ID,
		Cost:         u.Cost,
		Effect:       u.Effect,
		CurrencyLeft: e.ledger.Currency,
	}, nil
}

// checkEffect verifies the effect and the agent or task it targets.
func (e *Engine) checkEffect(eff upgrade.Effect) error {
	if err := eff.Validate(); err != nil {
		return err
	}
	switch eff.Kind {
	case upgrade.EffectAgentEfficiency:
		if _, ok := e.agents.Get(eff.AgentID); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownAgent, eff.AgentID)
		}
	case upgrade.EffectUnlockTask:
		if _, ok := e.tasks.Get(eff.TaskID); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownTask, eff.TaskID)
		}
	}
	return nil
}

// applyEffect runs after checkEffect and cannot fail.
func (e *Engine) applyEffect(eff upgrade.Effect) {
	switch eff.Kind {
	case upgrade.EffectClickPower:
		e.ledger.ClickPower += int(eff.Amount)
	case upgrade.EffectMaxEnergy:
		e.ledger.AddMaxEnergy(eff.Amount)
	case upgrade.EffectEnergyRegen:
		e.ledger.EnergyRegenRate += eff.Amount
	case upgrade.EffectAgentEfficiency:
		a, _ := e.agents.Get(eff.AgentID)
		a.Boost(upgrade.EfficiencyFactor)
		e.agents.Update(a)
	case upgrade.EffectUnlockTask:
		_, _ = e.tasks.Unlock(eff.TaskID)
	}
}

type EarnResult struct {
	Amount      int      `json:"amount"`
	Currency    int      `json:"currency"`
	QuestsReady []string `json:"quests_ready,omitempty"`
}

// ManualEarn is the click action. It always succeeds.
func (e *Engine) ManualEarn(ctx context.Context) (EarnResult, error) {
	e.mu.Lock()
	amount := e.ledger.ClickPower
	e.ledger.Currency += amount
	res := EarnResult{Amount: amount, Currency: e.ledger.Currency}
	res.QuestsReady = append(res.QuestsReady, e.recordMetric(ctx, quest.MetricClicks, 1)...)
	res.QuestsReady = append(res.QuestsReady, e.recordMetric(ctx, quest.MetricCurrency, amount)...)
	e.mu.Unlock()

	e.publish("click")
	return res, nil
}

type Completion struct {
	AgentID string        `json:"agent_id"`
	TaskID  string        `json:"task_id"`
	Reward  ledger.Bundle `json:"reward"`
}

type TickResult struct {
	Completed    []Completion `json:"completed,omitempty"`
	LevelsGained int          `json:"levels_gained,omitempty"`
	EnergyGained float64      `json:"energy_gained,omitempty"`
	QuestsReady  []string     `json:"quests_ready,omitempty"`
}

// Tick advances tasks and then regenerates energy by the same delta.
func (e *Engine) Tick(ctx context.Context, delta time.Duration) (TickResult, error) {
	e.mu.Lock()
	res, changed := e.advanceTasks(ctx, delta)
	res.EnergyGained = e.ledger.Regenerate(seconds(delta))
	e.mu.Unlock()

	if changed || res.EnergyGained > 0 {
		e.publish("tick")
	}
	return res, nil
}

// AdvanceTasks moves every active assignment forward by delta and settles
// the ones that finish.
func (e *Engine) AdvanceTasks(ctx context.Context, delta time.Duration) (TickResult, error) {
	e.mu.Lock()
	res, changed := e.advanceTasks(ctx, delta)
	e.mu.Unlock()

	if changed {
		e.publish("tasks_advanced")
	}
	return res, nil
}

func (e *Engine) advanceTasks(ctx context.Context, delta time.Duration) (TickResult, bool) {
	var res TickResult
	sec := seconds(delta)
	if sec == 0 {
		return res, false
	}

	changed := false
	agents := e.agents.List()
	for i := range agents {
		a := &agents[i]
		if !a.Busy() {
			continue
		}
		changed = true
		t, ok := e.tasks.Get(a.CurrentTask)
		if !ok {
			e.logger.ErrorContext(ctx, "agent holds unknown task", "agent", a.ID, "task", a.CurrentTask)
			a.Finish()
			continue
		}

		a.Advance(sec)
		if !a.Done(t.Duration) {
			continue
		}

		e.ledger.Credit(t.Reward)
		for _, f := range t.Reward.Rewarded() {
			res.QuestsReady = append(res.QuestsReady, e.recordMetric(ctx, quest.MetricFor(f), t.Reward.Amount(f))...)
		}
		res.QuestsReady = append(res.QuestsReady, e.recordMetric(ctx, quest.MetricTasksCompleted, 1)...)
		a.Finish()

		e.record(activity.Entry{
			Type:    activity.EventTaskCompleted,
			Message: fmt.Sprintf("%s finished %s", a.Name, t.Title),
			AgentID: a.ID,
			TaskID:  t.ID,
		})
		e.logger.DebugContext(ctx, "task completed", "agent", a.ID, "task", t.ID)
		res.Completed = append(res.Completed, Completion{AgentID: a.ID, TaskID: t.ID, Reward: t.Reward})
	}
	e.agents.UpdateMany(agents)

	res.LevelsGained = e.levelUp(ctx)
	return res, changed
}

// RegenerateEnergy refills energy at the regen rate, capped at max energy.
func (e *Engine) RegenerateEnergy(ctx context.Context, delta time.Duration) (float64, error) {
	e.mu.Lock()
	gained := e.ledger.Regenerate(seconds(delta))
	e.mu.Unlock()

	if gained > 0 {
		e.publish("energy_regenerated")
	}
	return gained, nil
}

// Snapshot returns a deep copy of the current state.
func (e *Engine) Snapshot(ctx context.Context) (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		Ledger:   LedgerView{Ledger: e.ledger, NextLevelXP: e.ledger.NextLevelXP()},
		Tasks:    e.tasks.List(),
		Activity: e.log.List(),
		TakenAt:  e.clock.Now(),
	}
	for _, a := range e.agents.List() {
		v := AgentView{Agent: a, Status: a.Status()}
		if t, ok := e.tasks.Get(a.CurrentTask); ok && a.Busy() {
			v.Progress = a.Progress(t.Duration)
			v.TaskTitle = t.Title
		}
		snap.Agents = append(snap.Agents, v)
	}
	for _, q := range e.quests.List() {
		snap.Quests = append(snap.Quests, QuestView{Quest: q, Claimable: q.Claimable()})
	}
	for _, u := range e.upgrades.List() {
		snap.Upgrades = append(snap.Upgrades, UpgradeView{
			Upgrade:    u,
			Available:  e.upgrades.Available(u),
			Affordable: e.ledger.Has(u.Cost),
		})
	}
	return snap, nil
}

func (e *Engine) Activity(ctx context.Context) ([]activity.Entry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.log.List(), nil
}

// ActivitySince returns retained entries at or after since, optionally
// limited to the given types.
func (e *Engine) ActivitySince(ctx context.Context, since time.Time, types ...activity.EventType) ([]activity.Entry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.log.Since(since, types...), nil
}

func (e *Engine) ActivityStats(ctx context.Context) (activity.Stats, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.log.Stats(), nil
}

func (e *Engine) levelUp(ctx context.Context) int {
	gained := e.ledger.LevelUp()
	for i := gained - 1; i >= 0; i-- {
		level := e.ledger.Level - i
		e.record(activity.Entry{
			Type:    activity.EventLevelUp,
			Message: fmt.Sprintf("Level up! HQ reached level %d", level),
		})
	}
	if gained > 0 {
		e.logger.InfoContext(ctx, "level up", "level", e.ledger.Level, "gained", gained)
	}
	return gained
}

// recordMetric feeds quest progress and returns the quests it made claimable.
func (e *Engine) recordMetric(ctx context.Context, metric quest.Metric, amount int) []string {
	ready := e.quests.Record(metric, amount)
	for _, id := range ready {
		e.logger.InfoContext(ctx, "quest ready", "quest", id, "metric", string(metric))
	}
	return ready
}

func (e *Engine) record(entry activity.Entry) {
	entry.At = e.clock.Now()
	e.log.Append(entry)
}

func (e *Engine) publish(reason string) {
	if e.pub == nil {
		return
	}
	e.pub.Publish(events.EventStateChanged, map[string]any{"reason": reason})
}
