// Package sim runs headless batches of games and aggregates the results.
// Each game is driven by a Policy picking from the engine's legal moves;
// workers replay deterministically from per-game seeds, so a report is
// reproducible regardless of worker count.
package sim

import (
	"github.com/tilelab/cascade/internal/cascade"
)

// Policy chooses the next move for a game in progress. Pick is called with
// the engine in a stable phase and a non-empty move list; it returns the
// chosen move, or ok=false to resign the game early. The provided source is
// the only randomness a policy may use.
type Policy interface {
	Name() string
	Pick(e *cascade.Engine, moves []cascade.Move, r cascade.Source) (m cascade.Move, ok bool)
}

// RandomPolicy plays a uniformly random legal move.
type RandomPolicy struct{}

func (RandomPolicy) Name() string { return "random" }

func (RandomPolicy) Pick(_ *cascade.Engine, moves []cascade.Move, r cascade.Source) (cascade.Move, bool) {
	return moves[r.Next(len(moves))], true
}

// GreedyPolicy tries every legal move on a clone and plays the one with the
// highest immediate score gain. Ties go to the first candidate, so the
// policy itself is deterministic.
type GreedyPolicy struct{}

func (GreedyPolicy) Name() string { return "greedy" }

func (GreedyPolicy) Pick(e *cascade.Engine, moves []cascade.Move, _ cascade.Source) (cascade.Move, bool) {
	best := moves[0]
	bestGain := -1
	base := e.Score()
	for _, m := range moves {
		probe := e.Clone()
		if !probe.ApplyMove(m) {
			continue
		}
		probe.RunUntilStable()
		if gain := probe.Score() - base; gain > bestGain {
			bestGain = gain
			best = m
		}
	}
	return best, true
}
