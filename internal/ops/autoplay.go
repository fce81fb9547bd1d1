// Package ops holds operator tooling that runs the engine headless.
package ops

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"osirishq/internal/game"
	"osirishq/internal/ledger"
)

// Epoch is the fake start time for every simulation so runs are repeatable.
var Epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

type AutoplayOptions struct {
	// Duration of simulated time, stepped one second at a time.
	Duration time.Duration
	// ClicksPerSecond is how often the simulated player hustles.
	ClicksPerSecond int
	// NoShopping disables upgrade purchases.
	NoShopping bool
}

type Milestone struct {
	Second int    `json:"second"`
	What   string `json:"what"`
}

type Report struct {
	Seconds        int           `json:"seconds"`
	Ledger         ledger.Ledger `json:"ledger"`
	TasksCompleted int           `json:"tasks_completed"`
	QuestsClaimed  int           `json:"quests_claimed"`
	UpgradesBought []string      `json:"upgrades_bought"`
	Milestones     []Milestone   `json:"milestones"`
	Digest         string        `json:"digest"`
}

// Autoplay runs a greedy player against a fresh engine: each simulated second
// it claims finished quests, buys the first affordable upgrade, keeps every
// agent busy and clicks, then advances the clock.
func Autoplay(ctx context.Context, seed game.Seed, opts AutoplayOptions) (Report, error) {
	if opts.Duration <= 0 {
		return Report{}, fmt.Errorf("duration must be positive")
	}
	clock := game.NewFakeClock(Epoch)
	engine, err := game.New(seed, game.Options{Clock: clock})
	if err != nil {
		return Report{}, err
	}

	var rep Report
	seconds := int(opts.Duration / time.Second)
	for sec := 0; sec < seconds; sec++ {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}
		snap, err := engine.Snapshot(ctx)
		if err != nil {
			return Report{}, err
		}

		for _, q := range snap.ClaimableQuests() {
			res, err := engine.ClaimQuest(ctx, q.ID)
			if err != nil {
				return Report{}, fmt.Errorf("second %d: claim %s: %w", sec, q.ID, err)
			}
			rep.QuestsClaimed++
			rep.Milestones = append(rep.Milestones, Milestone{sec, "claimed " + q.ID})
			if res.LevelsGained > 0 {
				rep.Milestones = append(rep.Milestones, Milestone{sec, fmt.Sprintf("reached level %d", res.Level)})
			}
		}

		if !opts.NoShopping {
			if snap, err = engine.Snapshot(ctx); err != nil {
				return Report{}, err
			}
			if u, ok := snap.NextUpgrade(); ok {
				if _, err := engine.PurchaseUpgrade(ctx, u.ID); err != nil {
					return Report{}, fmt.Errorf("second %d: buy %s: %w", sec, u.ID, err)
				}
				rep.UpgradesBought = append(rep.UpgradesBought, u.ID)
				rep.Milestones = append(rep.Milestones, Milestone{sec, "bought " + u.ID})
			}
		}

		if snap, err = engine.Snapshot(ctx); err != nil {
			return Report{}, err
		}
		energy := snap.Ledger.Energy
		for _, a := range snap.Agents {
			if a.Busy() {
				continue
			}
			t, ok := snap.NextTask(a.ID)
			if !ok || t.EnergyCost > energy {
				continue
			}
			res, err := engine.AssignTask(ctx, a.ID, t.ID)
			if err != nil {
				return Report{}, fmt.Errorf("second %d: assign %s to %s: %w", sec, t.ID, a.ID, err)
			}
			energy = res.EnergyLeft
		}

		for i := 0; i < opts.ClicksPerSecond; i++ {
			if _, err := engine.ManualEarn(ctx); err != nil {
				return Report{}, err
			}
		}

		clock.Advance(time.Second)
		res, err := engine.Tick(ctx, time.Second)
		if err != nil {
			return Report{}, err
		}
		rep.TasksCompleted += len(res.Completed)
		if res.LevelsGained > 0 {
			snap, err := engine.Snapshot(ctx)
			if err != nil {
				return Report{}, err
			}
			rep.Milestones = append(rep.Milestones, Milestone{sec + 1, fmt.Sprintf("reached level %d", snap.Ledger.Level)})
		}
	}

	final, err := engine.Snapshot(ctx)
	if err != nil {
		return Report{}, err
	}
	rep.Seconds = seconds
	rep.Ledger = final.Ledger.Ledger
	rep.Digest, err = Digest(final)
	if err != nil {
		return Report{}, err
	}
	return rep, nil
}

// Digest hashes the parts of a snapshot that must be identical across two
// runs with the same seed. Activity ids are random and left out.
func Digest(snap game.Snapshot) (string, error) {
	b, err := json.Marshal(struct {
		Ledger   game.LedgerView    `json:"ledger"`
		Agents   []game.AgentView   `json:"agents"`
		Quests   []game.QuestView   `json:"quests"`
		Upgrades []game.UpgradeView `json:"upgrades"`
		Tasks    any                `json:"tasks"`
	}{snap.Ledger, snap.Agents, snap.Quests, snap.Upgrades, snap.Tasks})
	if err != nil {
		return "", err
	}
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:]), nil
}
