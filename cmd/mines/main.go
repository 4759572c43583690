// mines is a terminal minesweeper with local or Postgres-backed records.
//
// Usage:
//
//	mines play [--preset name | --width W --height H --mines N]
//	mines simulate --games N --workers K
//	mines scores [--preset name] [--player name]
//	mines serve [--addr :8080]
package main

import (
	"context"
	"fmt"
	"hash/maphash"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-cli/internal/config"
	"github.com/vancomm/minesweeper-cli/internal/mines"
	"github.com/vancomm/minesweeper-cli/internal/solver"
)

var log = logrus.New()

var (
	flagLogFile string
	flagConfig  string
	flagDBPath  string
)

var rootCmd = &cobra.Command{
	Use:   "mines",
	Short: "Minesweeper in your terminal",
	Long: `Play minesweeper in the terminal, let the auto-player try its luck
and keep track of the best times.

Records go to a local SQLite file unless DATABASE_URL (or the POSTGRES_*
variables) point at a Postgres database.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this rotating file instead of stderr")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a presets YAML file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the SQLite records file (default ~/.mines/records.db)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

func setupLogging() error {
	level, err := config.LogLevel()
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if flagLogFile != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   flagLogFile,
			MaxSize:    5,
			MaxBackups: 3,
			MaxAge:     28,
			Level:      level,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			return fmt.Errorf("unable to open log file: %w", err)
		}
		log.AddHook(hook)
		log.SetOutput(io.Discard)
	}

	mines.Log = log
	solver.Log = log
	return nil
}

func loadPresets() (*config.Presets, error) {
	return config.LoadPresets(flagConfig)
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(
			new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
		))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
