package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-cli/internal/database"
	"github.com/vancomm/minesweeper-cli/internal/repository"
)

var (
	scoresBoard  boardFlags
	scoresPlayer string
	scoresLimit  int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best times",
	Long: `Display the fastest won games, optionally for one board or player.

Examples:
  mines scores
  mines scores --preset expert
  mines scores --width 20 --height 10 --mines 30 --player alice`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresBoard.register(scoresCmd)
	scoresCmd.Flags().StringVar(&scoresPlayer, "player", "", "Only show this player")
	scoresCmd.Flags().IntVar(&scoresLimit, "limit", 10, "Number of entries")
}

func formatPlaytime(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	return fmt.Sprintf("%d:%02d.%03d", int(d.Minutes()), int(d.Seconds())%60, ms%1000)
}

func runScores(cmd *cobra.Command, args []string) error {
	filter := repository.Filter{Limit: scoresLimit}
	if scoresPlayer != "" {
		filter.Player = &scoresPlayer
	}
	if scoresBoard.explicit(cmd) {
		presets, err := loadPresets()
		if err != nil {
			return err
		}
		cfg, err := scoresBoard.resolve(cmd, presets)
		if err != nil {
			return err
		}
		filter.Config = &cfg
	}

	store, err := database.Open(cmd.Context(), log, flagDBPath)
	if err != nil {
		return fmt.Errorf("unable to open records: %w", err)
	}
	defer store.Close()

	scores, err := store.Highscores(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("unable to fetch scores: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(scores) == 0 {
		fmt.Fprintln(out, "No games won yet.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Rank\tPlayer\tBoard\tTime\tDate")
	fmt.Fprintln(tw, "----\t------\t-----\t----\t----")
	for i, h := range scores {
		fmt.Fprintf(tw, "%d\t%s\t%dx%d(%d)\t%s\t%s\n",
			i+1, h.Player, h.Width, h.Height, h.MineCount,
			formatPlaytime(h.PlaytimeMs), h.EndedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	return tw.Flush()
}
