package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Garsondee/planetary-defense/internal/config"
	"github.com/Garsondee/planetary-defense/internal/invaders"
	"github.com/Garsondee/planetary-defense/internal/loop"
)

type reportOptions struct {
	runs       int
	maxTicks   int
	width      int
	height     int
	seedBase   int64
	seedStep   int64
	jitter     float64
	configPath string
}

type runStats struct {
	runIndex int
	seed     int64
	id       uuid.UUID

	outcome     invaders.Outcome
	description string
	score       int
	ticks       int
	finished    bool
	destroyed   int
	total       int
	shots       int
	hits        int
	wallHits    int
	finalSpeed  float64

	firstHitTick  int
	firstWallTick int
}

func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCommand(out io.Writer) *cobra.Command {
	opts := &reportOptions{}
	cmd := &cobra.Command{
		Use:           "headless-report",
		Short:         "Run autopilot defense sessions and summarise them",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd.Context(), out, opts)
		},
	}
	f := cmd.Flags()
	f.IntVar(&opts.runs, "runs", 5, "number of headless runs")
	f.IntVar(&opts.maxTicks, "max-ticks", 20000, "tick cap per run")
	f.IntVar(&opts.width, "width", 1000, "viewport width in pixels")
	f.IntVar(&opts.height, "height", 800, "viewport height in pixels")
	f.Int64Var(&opts.seedBase, "seed-base", 42, "autopilot seed for run 1")
	f.Int64Var(&opts.seedStep, "seed-step", 1, "seed increment between runs")
	f.Float64Var(&opts.jitter, "jitter", 20, "autopilot aiming error in pixels")
	f.StringVar(&opts.configPath, "config", "", "YAML config supplying the rules")
	return cmd
}

func (o *reportOptions) validate() error {
	switch {
	case o.runs <= 0:
		return fmt.Errorf("--runs must be > 0")
	case o.maxTicks <= 0:
		return fmt.Errorf("--max-ticks must be > 0")
	case o.width <= 0 || o.height <= 0:
		return fmt.Errorf("--width and --height must be > 0")
	}
	return nil
}

func runReport(ctx context.Context, out io.Writer, opts *reportOptions) error {
	if err := opts.validate(); err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	rules := invaders.DefaultRules()
	if opts.configPath != "" {
		cfg, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		rules = cfg.Rules.ToEngine()
	}

	fmt.Fprintf(out, "=== Headless Defense Report ===\n")
	fmt.Fprintf(out, "runs=%d max_ticks=%d viewport=%dx%d seed_base=%d seed_step=%d jitter=%.0f\n\n",
		opts.runs, opts.maxTicks, opts.width, opts.height, opts.seedBase, opts.seedStep, opts.jitter)

	all := make([]runStats, 0, opts.runs)
	for i := 0; i < opts.runs; i++ {
		seed := opts.seedBase + int64(i)*opts.seedStep
		rs, err := runSession(ctx, i+1, seed, rules, opts)
		if err != nil {
			return err
		}
		all = append(all, rs)
		printRun(out, rs)
	}
	printAggregate(out, all)
	return nil
}

func runSession(ctx context.Context, runIndex int, seed int64, rules invaders.Rules, opts *reportOptions) (runStats, error) {
	log := invaders.NewEventLog()
	s := invaders.NewSession(float64(opts.width), float64(opts.height), rules, invaders.WithListener(log.Record))
	pilot := invaders.NewAutopilot(seed, opts.jitter)

	n, err := loop.Simulate(ctx, invaders.FrameInterval, opts.maxTicks, func(now time.Duration) bool {
		s.Tick(now, pilot.Input(s))
		return !s.Status().Terminal()
	})
	if err != nil {
		return runStats{}, fmt.Errorf("run %d: %w", runIndex, err)
	}

	r := invaders.DetermineOutcome(s)
	return runStats{
		runIndex:      runIndex,
		seed:          seed,
		id:            s.ID,
		outcome:       r.Outcome,
		description:   r.Description,
		score:         r.Score,
		ticks:         n,
		finished:      s.Status().Terminal(),
		destroyed:     r.Destroyed,
		total:         r.Total,
		shots:         r.Stats.Shots,
		hits:          r.Stats.Hits,
		wallHits:      r.Stats.WallHits,
		finalSpeed:    s.SweepSpeed(),
		firstHitTick:  firstTick(log, invaders.EventHit),
		firstWallTick: firstTick(log, invaders.EventWallHit),
	}, nil
}

func firstTick(log *invaders.EventLog, kind invaders.EventKind) int {
	if es := log.Filter(kind); len(es) > 0 {
		return es[0].Tick
	}
	return -1
}

func (rs runStats) accuracy() float64 {
	if rs.shots == 0 {
		return 0
	}
	return float64(rs.hits) / float64(rs.shots)
}

func printRun(out io.Writer, rs runStats) {
	fmt.Fprintf(out, "--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Fprintf(out, "session=%s outcome=%s reason=%s finished=%t\n", rs.id, rs.outcome, rs.description, rs.finished)
	fmt.Fprintf(out, "score=%d ticks=%d destroyed=%d/%d shots=%d hits=%d accuracy=%.1f%%\n",
		rs.score, rs.ticks, rs.destroyed, rs.total, rs.shots, rs.hits, rs.accuracy()*100)
	fmt.Fprintf(out, "wall_hits=%d final_speed=%.1f first_hit=%d first_wall=%d\n\n",
		rs.wallHits, rs.finalSpeed, rs.firstHitTick, rs.firstWallTick)
}

type aggregate struct {
	runs        int
	outcomes    map[invaders.Outcome]int
	avgScore    float64
	avgTicks    float64
	medianTicks int
	accuracy    float64
	avgWallHits float64
	bestScore   int
	bestRun     int
}

func summarise(all []runStats) aggregate {
	agg := aggregate{runs: len(all), outcomes: map[invaders.Outcome]int{}}
	if len(all) == 0 {
		return agg
	}
	totalScore, totalTicks, totalWalls, shots, hits := 0, 0, 0, 0, 0
	ticks := make([]int, 0, len(all))
	for _, rs := range all {
		agg.outcomes[rs.outcome]++
		totalScore += rs.score
		totalTicks += rs.ticks
		totalWalls += rs.wallHits
		shots += rs.shots
		hits += rs.hits
		ticks = append(ticks, rs.ticks)
		if agg.bestRun == 0 || rs.score > agg.bestScore {
			agg.bestScore = rs.score
			agg.bestRun = rs.runIndex
		}
	}
	agg.avgScore = avg(totalScore, len(all))
	agg.avgTicks = avg(totalTicks, len(all))
	agg.avgWallHits = avg(totalWalls, len(all))
	if shots > 0 {
		agg.accuracy = float64(hits) / float64(shots)
	}
	sort.Ints(ticks)
	agg.medianTicks = ticks[len(ticks)/2]
	return agg
}

func printAggregate(out io.Writer, all []runStats) {
	agg := summarise(all)
	fmt.Fprintln(out, "=== Aggregate ===")
	fmt.Fprintf(out, "runs=%d defended=%d breached=%d unfinished=%d\n",
		agg.runs, agg.outcomes[invaders.OutcomeDefended], agg.outcomes[invaders.OutcomeBreached], agg.outcomes[invaders.OutcomeAborted])
	fmt.Fprintf(out, "avg_score=%.1f best_score=%d (run %d)\n", agg.avgScore, agg.bestScore, agg.bestRun)
	fmt.Fprintf(out, "avg_ticks=%.1f median_ticks=%d avg_wall_hits=%.1f accuracy=%.1f%%\n",
		agg.avgTicks, agg.medianTicks, agg.avgWallHits, agg.accuracy*100)
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}
