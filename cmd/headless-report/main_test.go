package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/Garsondee/planetary-defense/internal/invaders"
)

func TestSummarise_CountsOutcomesAndMedian(t *testing.T) {
	all := []runStats{
		{runIndex: 1, outcome: invaders.OutcomeDefended, score: 400, ticks: 900, shots: 50, hits: 40},
		{runIndex: 2, outcome: invaders.OutcomeBreached, score: 120, ticks: 1500, shots: 30, hits: 12, wallHits: 20},
		{runIndex: 3, outcome: invaders.OutcomeDefended, score: 400, ticks: 1100, shots: 20, hits: 8},
	}
	agg := summarise(all)
	if agg.outcomes[invaders.OutcomeDefended] != 2 || agg.outcomes[invaders.OutcomeBreached] != 1 {
		t.Fatalf("unexpected outcome counts: %v", agg.outcomes)
	}
	if agg.medianTicks != 1100 {
		t.Fatalf("expected median 1100, got %d", agg.medianTicks)
	}
	if agg.bestRun != 1 || agg.bestScore != 400 {
		t.Fatalf("ties keep the first best run, got run %d score %d", agg.bestRun, agg.bestScore)
	}
	if agg.accuracy != 0.6 {
		t.Fatalf("expected pooled accuracy 0.6, got %.3f", agg.accuracy)
	}
}

func TestSummarise_Empty(t *testing.T) {
	agg := summarise(nil)
	if agg.runs != 0 || agg.avgScore != 0 {
		t.Fatalf("empty input should give zero aggregate, got %+v", agg)
	}
}

func TestRunSession_DeterministicPerSeed(t *testing.T) {
	opts := &reportOptions{maxTicks: 20000, width: 1000, height: 800, jitter: 10}
	a, err := runSession(context.Background(), 1, 7, invaders.DefaultRules(), opts)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	b, err := runSession(context.Background(), 1, 7, invaders.DefaultRules(), opts)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if a.score != b.score || a.ticks != b.ticks || a.shots != b.shots {
		t.Fatalf("same seed should replay identically: %+v vs %+v", a, b)
	}
	if a.id == b.id {
		t.Fatal("each run gets its own session id")
	}
	if !a.finished {
		t.Fatalf("session should end within the cap, ran %d ticks", a.ticks)
	}
}

func TestRunSession_TickCap(t *testing.T) {
	opts := &reportOptions{maxTicks: 10, width: 1000, height: 800}
	rs, err := runSession(context.Background(), 1, 1, invaders.DefaultRules(), opts)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if rs.ticks != 10 || rs.finished || rs.outcome != invaders.OutcomeAborted {
		t.Fatalf("capped run should stop unfinished after 10 ticks, got %+v", rs)
	}
}

func TestRunSession_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	opts := &reportOptions{maxTicks: 10, width: 1000, height: 800}
	if _, err := runSession(ctx, 1, 1, invaders.DefaultRules(), opts); err == nil {
		t.Fatal("a cancelled context should fail the run")
	}
}

func TestCommand_PrintsRunsAndAggregate(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCommand(&out)
	cmd.SetArgs([]string{"--runs", "2", "--max-ticks", "200"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	text := out.String()
	for _, want := range []string{"--- Run 1 (seed=42) ---", "--- Run 2 (seed=43) ---", "=== Aggregate ===", "runs=2"} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}
}

func TestCommand_RejectsBadFlags(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCommand(&out)
	cmd.SetArgs([]string{"--runs", "0"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("--runs 0 should be rejected")
	}
}
