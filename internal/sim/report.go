package sim

import (
	"fmt"
	"math"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Metric summarizes one measured quantity across a batch of games.
type Metric struct {
	Mean   float64
	StdDev float64
	CILow  float64 // 95% confidence interval for the mean
	CIHigh float64
	Min    float64
	Max    float64
}

// Report aggregates a finished batch run.
type Report struct {
	Policy   string
	Seed     int64
	Games    int
	Score    Metric
	Moves    Metric
	Waves    Metric
	Ticks    int
	Duration time.Duration
}

func newReport(policy string, seed int64, results []GameResult, used time.Duration) *Report {
	n := len(results)
	scores := make([]float64, n)
	moves := make([]float64, n)
	waves := make([]float64, n)
	ticks := 0
	for i, r := range results {
		scores[i] = float64(r.Score)
		moves[i] = float64(r.Moves)
		waves[i] = float64(r.Waves)
		ticks += r.Ticks
	}
	return &Report{
		Policy:   policy,
		Seed:     seed,
		Games:    n,
		Score:    summarize(scores),
		Moves:    summarize(moves),
		Waves:    summarize(waves),
		Ticks:    ticks,
		Duration: used,
	}
}

func summarize(xs []float64) Metric {
	n := len(xs)
	m := Metric{Min: math.Inf(1), Max: math.Inf(-1)}
	if n == 0 {
		return Metric{}
	}
	for _, x := range xs {
		m.Min = math.Min(m.Min, x)
		m.Max = math.Max(m.Max, x)
	}
	m.Mean = stat.Mean(xs, nil)
	if n > 1 {
		m.StdDev = stat.StdDev(xs, nil)
		z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(0.975)
		half := z * m.StdDev / math.Sqrt(float64(n))
		m.CILow = m.Mean - half
		m.CIHigh = m.Mean + half
	} else {
		m.CILow = m.Mean
		m.CIHigh = m.Mean
	}
	return m
}

// String renders the report as a small human-readable table.
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "policy=%s games=%d seed=%d elapsed=%s\n",
		r.Policy, r.Games, r.Seed, r.Duration.Round(time.Millisecond))
	writeMetric(&b, "score", r.Score)
	writeMetric(&b, "moves", r.Moves)
	writeMetric(&b, "waves", r.Waves)
	fmt.Fprintf(&b, "  %-6s total=%d\n", "ticks", r.Ticks)
	return b.String()
}

func writeMetric(b *strings.Builder, name string, m Metric) {
	fmt.Fprintf(b, "  %-6s mean=%.2f sd=%.2f ci95=[%.2f, %.2f] min=%.0f max=%.0f\n",
		name, m.Mean, m.StdDev, m.CILow, m.CIHigh, m.Min, m.Max)
}
