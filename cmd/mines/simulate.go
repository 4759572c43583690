package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-cli/internal/mines"
	"github.com/vancomm/minesweeper-cli/internal/solver"
)

var (
	simulateBoard   boardFlags
	simulateGames   int
	simulateWorkers int
	simulateSeed    uint64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Let the auto-player play many games",
	Long: `Play games with the built-in auto-player and report how often it wins.

The auto-player only uses what a human sees on the board and guesses when
nothing can be deduced, so the win rate is a rough measure of how much
luck a board needs.

Examples:
  mines simulate --games 1000
  mines simulate --preset expert --games 500 --workers 8 --seed 7`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateBoard.register(simulateCmd)
	simulateCmd.Flags().IntVar(&simulateGames, "games", 100, "Number of games")
	simulateCmd.Flags().IntVar(&simulateWorkers, "workers", runtime.NumCPU(), "Games played in parallel")
	simulateCmd.Flags().Uint64Var(&simulateSeed, "seed", 0, "Base RNG seed (0 = random)")
}

type simulation struct {
	Games   int
	Wins    int
	Guesses int
	Elapsed time.Duration
}

func (s simulation) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// simulate plays games concurrently. Game i is seeded from (seed, i), so
// a non-zero seed makes the whole run reproducible.
func simulate(ctx context.Context, cfg mines.Config, games, workers int, seed uint64) (simulation, error) {
	if seed == 0 {
		seed = newRand(0).Uint64()
	}
	if workers < 1 {
		workers = 1
	}

	var (
		mu  sync.Mutex
		sim = simulation{Games: games}
	)
	start := time.Now()

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range games {
		if gCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			r := rand.New(rand.NewPCG(seed, uint64(i)))
			game, err := mines.NewGame(cfg, mines.WithRand(r))
			if err != nil {
				return err
			}
			s := solver.New(game, r)
			status, err := s.Play()
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}

			mu.Lock()
			defer mu.Unlock()
			if status.Outcome == mines.Victory {
				sim.Wins++
			}
			sim.Guesses += s.Guesses()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return sim, err
	}
	if err := ctx.Err(); err != nil {
		return sim, err
	}
	sim.Elapsed = time.Since(start)
	return sim, nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	presets, err := loadPresets()
	if err != nil {
		return err
	}
	cfg, err := simulateBoard.resolve(cmd, presets)
	if err != nil {
		return err
	}
	if simulateGames < 1 {
		return fmt.Errorf("--games must be positive, got %d", simulateGames)
	}

	log.WithField("config", cfg.String()).
		WithField("games", simulateGames).
		WithField("workers", simulateWorkers).
		Info("starting simulation")

	sim, err := simulate(cmd.Context(), cfg, simulateGames, simulateWorkers, simulateSeed)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Board:    %s\n", cfg)
	fmt.Fprintf(out, "Games:    %d\n", sim.Games)
	fmt.Fprintf(out, "Wins:     %d (%.1f%%)\n", sim.Wins, 100*sim.WinRate())
	fmt.Fprintf(out, "Guesses:  %.2f per game\n", float64(sim.Guesses)/float64(sim.Games))
	fmt.Fprintf(out, "Elapsed:  %s\n", sim.Elapsed.Round(time.Millisecond))
	return nil
}
