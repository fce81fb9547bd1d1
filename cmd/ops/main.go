package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"osirishq/internal/config"
	"osirishq/internal/ops"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "validate":
		if err := cmdValidate(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "validate failed:", err)
			os.Exit(1)
		}
	case "simulate":
		if err := cmdSimulate(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "simulate failed:", err)
			os.Exit(1)
		}
	case "drill":
		if err := cmdDrill(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "drill failed:", err)
			os.Exit(1)
		}
	case "ask":
		if err := cmdAsk(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "ask failed:", err)
			os.Exit(1)
		}
	default:
		printUsage()
		os.Exit(2)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.FromEnv(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

func cmdValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	path := fs.String("config", "osiris_config.yml", "config file to check")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(*path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	fmt.Printf("%s ok: %d agents, %d tasks, %d quests, %d upgrades, %d terminal routes (%s)\n",
		*path, len(cfg.Agents), len(cfg.Tasks), len(cfg.Quests), len(cfg.Upgrades), len(cfg.Terminal.Routes), cfg.Difficulty)
	return nil
}

func cmdSimulate(args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	path := fs.String("config", "", "config file (built-in defaults when empty)")
	duration := fs.Duration("for", 10*time.Minute, "simulated play time")
	clicks := fs.Int("clicks", 1, "clicks per simulated second")
	noShop := fs.Bool("no-shop", false, "never buy upgrades")
	asJSON := fs.Bool("json", false, "print the full report as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(*path)
	if err != nil {
		return err
	}

	rep, err := ops.Autoplay(context.Background(), cfg.Seed(), ops.AutoplayOptions{
		Duration:        *duration,
		ClicksPerSecond: *clicks,
		NoShopping:      *noShop,
	})
	if err != nil {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	l := rep.Ledger
	fmt.Printf("after %s: $%d, level %d (%d xp), %d leads, %d reviews, %d clients\n",
		*duration, l.Currency, l.Level, l.Experience, l.Leads, l.Reviews, l.Clients)
	fmt.Printf("tasks completed: %d, quests claimed: %d\n", rep.TasksCompleted, rep.QuestsClaimed)
	if len(rep.UpgradesBought) > 0 {
		fmt.Println("upgrades:", strings.Join(rep.UpgradesBought, ", "))
	}
	return nil
}

func cmdDrill(args []string) error {
	fs := flag.NewFlagSet("drill", flag.ContinueOnError)
	path := fs.String("config", "", "config file (built-in defaults when empty)")
	duration := fs.Duration("for", 5*time.Minute, "simulated play time per run")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(*path)
	if err != nil {
		return err
	}

	opts := ops.AutoplayOptions{Duration: *duration, ClicksPerSecond: 1}
	first, err := ops.Autoplay(context.Background(), cfg.Seed(), opts)
	if err != nil {
		return err
	}
	second, err := ops.Autoplay(context.Background(), cfg.Seed(), opts)
	if err != nil {
		return err
	}
	if first.Digest != second.Digest {
		return fmt.Errorf("digest mismatch between identical runs: %s vs %s", first.Digest, second.Digest)
	}
	fmt.Println("digest:", first.Digest)
	return nil
}

func cmdAsk(args []string) error {
	fs := flag.NewFlagSet("ask", flag.ContinueOnError)
	path := fs.String("config", "", "config file (built-in defaults when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	query := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if query == "" {
		return fmt.Errorf("a question is required")
	}
	cfg, err := loadConfig(*path)
	if err != nil {
		return err
	}
	router, err := cfg.TerminalRouter()
	if err != nil {
		return err
	}
	agentID, reply := router.Route(query)
	fmt.Printf("%s: %s\n", agentID, reply)
	return nil
}

func printUsage() {
	fmt.Println("usage:")
	fmt.Println("  osiris-ops validate --config osiris_config.yml")
	fmt.Println("  osiris-ops simulate --for 10m --clicks 2 [--no-shop] [--json]")
	fmt.Println("  osiris-ops drill    --for 5m")
	fmt.Println("  osiris-ops ask      how are sales looking?")
}
