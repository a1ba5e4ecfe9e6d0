package sim

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"

	"github.com/tilelab/cascade/internal/cascade"
)

// Options configures a batch run.
type Options struct {
	Games        int             // number of games to play
	Workers      int             // parallel workers; defaults to GOMAXPROCS
	MaxMoves     int             // move budget per game; 0 means play until no legal moves
	Seed         int64           // base seed; per-game seeds derive from it
	Engine       cascade.Options // board and physics settings shared by all games
	ShowProgress bool            // render a progress bar to stderr
}

// GameResult holds the outcome of a single finished game.
type GameResult struct {
	Seed  int64
	Score int
	Moves int
	Waves int
	Ticks int
}

// Run plays opts.Games headless games under the given policy and returns the
// aggregated report. Games are distributed over a worker pool; results land
// in a slice indexed by game number, so aggregation order never depends on
// scheduling.
func Run(ctx context.Context, opts Options, policy Policy) (*Report, error) {
	if policy == nil {
		return nil, fmt.Errorf("sim: policy is required")
	}
	if opts.Games < 1 {
		return nil, fmt.Errorf("sim: games must be positive, got %d", opts.Games)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > opts.Games {
		workers = opts.Games
	}

	results := make([]GameResult, opts.Games)
	jobs := make(chan int)
	errs := make(chan error, workers)

	bar := pb.StartNew(opts.Games)
	if !opts.ShowProgress {
		bar.SetWriter(io.Discard)
	}

	wg := new(sync.WaitGroup)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				res, err := playGame(opts, policy, i)
				if err != nil {
					select {
					case errs <- err:
					default:
					}
					return
				}
				results[i] = res
				bar.Increment()
			}
		}()
	}

	var runErr error
dispatch:
	for i := 0; i < opts.Games; i++ {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
			break dispatch
		case err := <-errs:
			runErr = err
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	used := time.Since(bar.StartTime())
	bar.Finish()

	if runErr == nil {
		select {
		case runErr = <-errs:
		default:
		}
	}
	if runErr != nil {
		return nil, fmt.Errorf("sim: run aborted: %w", runErr)
	}

	report := newReport(policy.Name(), opts.Seed, results, used)
	return report, nil
}

// playGame runs one full game to completion. The engine seed and the policy
// stream both derive from the base seed and the game index alone.
func playGame(opts Options, policy Policy, game int) (GameResult, error) {
	seed := seedFor(opts.Seed, game)

	eng := opts.Engine
	eng.Seed = seed
	eng.Sink = nil

	e, err := cascade.New(eng)
	if err != nil {
		return GameResult{}, err
	}
	policyRNG := cascade.NewStream(seedFor(seed, 1))

	res := GameResult{Seed: seed}
	for opts.MaxMoves == 0 || res.Moves < opts.MaxMoves {
		moves := e.LegalMoves()
		if len(moves) == 0 {
			break
		}
		m, ok := policy.Pick(e, moves, policyRNG)
		if !ok {
			break
		}
		if !e.ApplyMove(m) {
			// A rejected move means the policy picked outside the legal
			// list; stop the game rather than loop forever.
			break
		}
		res.Ticks += e.RunUntilStable()
		res.Moves++
	}
	res.Score = e.Score()
	res.Waves = e.Cascades()
	return res, nil
}

// seedFor derives a per-game seed from the base seed. Weyl step followed by
// a reversible bit mix, so nearby indices land far apart.
func seedFor(base int64, game int) int64 {
	x := uint64(base) + uint64(game)*0x9E3779B97F4A7C15
	x ^= x >> 30
	x *= 0xBF58476D1CE4E5B9
	x ^= x >> 27
	x *= 0x94D049BB133111EB
	x ^= x >> 31
	return int64(x &^ (1 << 63))
}
