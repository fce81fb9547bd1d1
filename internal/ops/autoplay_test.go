package ops

import (
	"context"
	"testing"
	"time"

	"osirishq/internal/config"
)

func TestAutoplay_ProgressesTheGame(t *testing.T) {
	rep, err := Autoplay(context.Background(), config.Default().Seed(), AutoplayOptions{
		Duration:        2 * time.Minute,
		ClicksPerSecond: 2,
	})
	if err != nil {
		t.Fatalf("autoplay failed: %v", err)
	}
	if rep.Seconds != 120 {
		t.Fatalf("expected 120 simulated seconds, got %d", rep.Seconds)
	}
	if rep.TasksCompleted == 0 {
		t.Fatalf("expected completed tasks after two minutes")
	}
	if len(rep.UpgradesBought) == 0 || rep.UpgradesBought[0] != "better_mouse" {
		t.Fatalf("expected better_mouse first, got %v", rep.UpgradesBought)
	}
	if rep.Ledger.Experience == 0 && rep.Ledger.Level == 1 {
		t.Fatalf("expected some experience, got %+v", rep.Ledger)
	}
	if rep.Ledger.Energy < 0 || rep.Ledger.Energy > rep.Ledger.MaxEnergy {
		t.Fatalf("energy out of bounds: %+v", rep.Ledger)
	}
	if rep.Digest == "" {
		t.Fatalf("expected digest")
	}
}

func TestAutoplay_IsDeterministic(t *testing.T) {
	opts := AutoplayOptions{Duration: 90 * time.Second, ClicksPerSecond: 1}
	a, err := Autoplay(context.Background(), config.Default().Seed(), opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	b, err := Autoplay(context.Background(), config.Default().Seed(), opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if a.Digest != b.Digest {
		t.Fatalf("digest mismatch: %s != %s", a.Digest, b.Digest)
	}
	if a.Ledger != b.Ledger {
		t.Fatalf("ledger mismatch: %+v != %+v", a.Ledger, b.Ledger)
	}
}

func TestAutoplay_NoShopping(t *testing.T) {
	rep, err := Autoplay(context.Background(), config.Default().Seed(), AutoplayOptions{
		Duration:   30 * time.Second,
		NoShopping: true,
	})
	if err != nil {
		t.Fatalf("autoplay failed: %v", err)
	}
	if len(rep.UpgradesBought) != 0 {
		t.Fatalf("expected no purchases, got %v", rep.UpgradesBought)
	}
	if rep.Ledger.ClickPower != 1 {
		t.Fatalf("expected base click power, got %d", rep.Ledger.ClickPower)
	}
}

func TestAutoplay_RejectsBadInput(t *testing.T) {
	if _, err := Autoplay(context.Background(), config.Default().Seed(), AutoplayOptions{}); err == nil {
		t.Fatalf("expected error for zero duration")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Autoplay(ctx, config.Default().Seed(), AutoplayOptions{Duration: time.Minute}); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}
