package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tilelab/cascade/internal/cascade"
	"github.com/tilelab/cascade/internal/config"
	"github.com/tilelab/cascade/internal/sim"
	"github.com/tilelab/cascade/internal/storage"
)

// simLog keeps progress noise on stderr so report output stays pipeable.
var simLog = log.NewWithOptions(os.Stderr, log.Options{Prefix: "cascade-sim"})

var (
	flagSimGames   int
	flagSimWorkers int
	flagSimMoves   int
	flagSimPolicy  string
	flagSimConfig  string
	flagSimQuiet   bool
	flagSimSave    bool
	flagSimHistory bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless batch simulations",
	Long: `Play many games without a UI and report aggregate statistics.

Policies:
  random - Pick a uniformly random legal move
  greedy - Probe every legal move on a clone and play the best one

Runs are reproducible: the same seed and game count give the same report
regardless of worker count.

Examples:
  cascade sim --games 10000
  cascade sim --games 1000 --policy greedy --max-moves 50
  cascade sim --games 5000 --seed 42 --save
  cascade sim --history`,
	Run: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimGames, "games", 1000, "Number of games to play")
	simCmd.Flags().IntVar(&flagSimWorkers, "workers", 0, "Parallel workers (0 = all CPUs)")
	simCmd.Flags().IntVar(&flagSimMoves, "max-moves", 30, "Move budget per game (0 = play until stuck)")
	simCmd.Flags().StringVar(&flagSimPolicy, "policy", "random", "Move policy: random, greedy")
	simCmd.Flags().StringVar(&flagSimConfig, "config", "", "Path to custom game config YAML")
	simCmd.Flags().BoolVar(&flagSimQuiet, "quiet", false, "Hide the progress bar")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the run in the database")
	simCmd.Flags().BoolVar(&flagSimHistory, "history", false, "Show recent recorded runs and exit")
}

func runSim(cmd *cobra.Command, _ []string) {
	if flagSimHistory {
		showSimHistory()
		return
	}

	var policy sim.Policy
	switch flagSimPolicy {
	case "random":
		policy = sim.RandomPolicy{}
	case "greedy":
		policy = sim.GreedyPolicy{}
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown policy %q (want random or greedy)\n", flagSimPolicy)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := sim.Options{
		Games:        flagSimGames,
		Workers:      flagSimWorkers,
		MaxMoves:     flagSimMoves,
		Seed:         seed,
		Engine:       engineOptions(),
		ShowProgress: !flagSimQuiet,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	simLog.Info("starting batch", "policy", flagSimPolicy, "games", flagSimGames, "seed", seed)
	report, err := sim.Run(ctx, opts, policy)
	if err != nil {
		simLog.Error("run failed", "error", err)
		os.Exit(1)
	}

	fmt.Print(report)

	if flagSimSave {
		saveSimRun(report)
	}
}

// engineOptions builds engine settings from the config file, falling back to
// defaults when no file applies.
func engineOptions() cascade.Options {
	opts := cascade.DefaultOptions()

	cfg, err := config.LoadCascade(flagSimConfig)
	if err != nil {
		simLog.Warn("config load failed, using defaults", "error", err)
		return opts
	}
	if cfg.Board.Width >= 3 && cfg.Board.Height >= 3 {
		opts.Width = cfg.Board.Width
		opts.Height = cfg.Board.Height
	}
	if cfg.Board.Colors >= 3 && cfg.Board.Colors <= cascade.MaxColors {
		opts.Colors = cfg.Board.Colors
	}
	if cfg.Physics.Gravity > 0 {
		opts.Gravity = cfg.Physics.Gravity
	}
	if cfg.Physics.MaxFallSpeed > 0 {
		opts.MaxFallSpeed = cfg.Physics.MaxFallSpeed
	}
	return opts
}

// saveSimRun records the report in the sim_runs table.
func saveSimRun(report *sim.Report) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		simLog.Warn("could not open database", "error", err)
		return
	}
	defer store.Close()

	run := storage.SimRun{
		Policy:     report.Policy,
		Games:      report.Games,
		Seed:       report.Seed,
		MeanScore:  report.Score.Mean,
		StdDev:     report.Score.StdDev,
		MeanMoves:  report.Moves.Mean,
		MeanWaves:  report.Waves.Mean,
		DurationMS: report.Duration.Milliseconds(),
	}
	if _, err := store.SaveSimRun(run); err != nil {
		simLog.Warn("could not save run", "error", err)
		return
	}
	simLog.Info("run saved")
}

// showSimHistory prints recent recorded runs.
func showSimHistory() {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	runs, err := store.RecentSimRuns(20)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}
	if len(runs) == 0 {
		fmt.Println("No recorded runs. Use 'cascade sim --save' to record one.")
		return
	}

	fmt.Printf("  %-8s  %-7s  %-12s  %-10s  %-8s  %s\n",
		"Policy", "Games", "Mean Score", "Std Dev", "Moves", "Date")
	for _, r := range runs {
		fmt.Printf("  %-8s  %-7d  %-12.1f  %-10.1f  %-8.1f  %s\n",
			r.Policy, r.Games, r.MeanScore, r.StdDev, r.MeanMoves,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
