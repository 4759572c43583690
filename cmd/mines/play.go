package main

import (
	"errors"
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vancomm/minesweeper-cli/internal/console"
	"github.com/vancomm/minesweeper-cli/internal/database"
	"github.com/vancomm/minesweeper-cli/internal/mines"
	"github.com/vancomm/minesweeper-cli/internal/repository"
)

var (
	playBoard   boardFlags
	playSeed    uint64
	playName    string
	playNoColor bool
	playNoSave  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game on the chosen board.

Moves:
  r <row> <col>   - Reveal a cell
  f <row> <col>   - Flag or unflag a cell
  . <row> <col>   - Remove a flag
  q               - Quit

Examples:
  mines play
  mines play --preset expert
  mines play --width 20 --height 10 --mines 30 --seed 42`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playBoard.register(playCmd)
	playCmd.Flags().Uint64Var(&playSeed, "seed", 0, "RNG seed for mine placement (0 = random)")
	playCmd.Flags().StringVar(&playName, "name", "", "Player name for the records (default: current user)")
	playCmd.Flags().BoolVar(&playNoColor, "no-color", false, "Disable colors")
	playCmd.Flags().BoolVar(&playNoSave, "no-save", false, "Do not record the result")
}

func playerName() string {
	if playName != "" {
		return playName
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "anonymous"
}

func runPlay(cmd *cobra.Command, args []string) error {
	presets, err := loadPresets()
	if err != nil {
		return err
	}
	cfg, err := playBoard.resolve(cmd, presets)
	if err != nil {
		return err
	}

	game, err := mines.NewGame(cfg, mines.WithRand(newRand(playSeed)))
	if err != nil {
		return err
	}
	log.WithField("config", cfg.String()).Info("new game")

	color := !playNoColor && term.IsTerminal(int(os.Stdout.Fd()))
	session := console.NewSession(game, console.NewRenderer(color), log)

	status, err := session.Run(cmd.Context(), os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	if !game.State().Over() {
		return nil
	}
	log.WithField("outcome", status.Outcome.String()).Info("game over")

	if playNoSave {
		return nil
	}
	return saveRecord(cmd, game)
}

func saveRecord(cmd *cobra.Command, game *mines.Game) error {
	record, err := repository.NewRecord(game, playerName())
	if err != nil {
		return err
	}

	store, err := database.Open(cmd.Context(), log, flagDBPath)
	if err != nil {
		return fmt.Errorf("unable to open records: %w", err)
	}
	defer store.Close()

	if err := store.Save(cmd.Context(), record); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			log.WithError(err).Warn("record was already saved")
			return nil
		}
		return fmt.Errorf("unable to save record: %w", err)
	}
	if record.Won {
		fmt.Fprintf(cmd.OutOrStdout(), "time: %s\n", formatPlaytime(record.Playtime().Milliseconds()))
	}
	return nil
}
