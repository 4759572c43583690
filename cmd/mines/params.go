package main

import (
	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-cli/internal/config"
	"github.com/vancomm/minesweeper-cli/internal/mines"
)

// boardFlags are shared by commands that pick a board.
type boardFlags struct {
	preset    string
	width     int
	height    int
	mineCount int
}

func (f *boardFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.preset, "preset", "", "Board preset (beginner, intermediate, expert)")
	cmd.Flags().IntVar(&f.width, "width", 0, "Board width, overrides the preset")
	cmd.Flags().IntVar(&f.height, "height", 0, "Board height, overrides the preset")
	cmd.Flags().IntVar(&f.mineCount, "mines", 0, "Number of mines, overrides the preset")
}

// resolve starts from the preset and applies whichever dimensions were set
// explicitly.
func (f *boardFlags) resolve(cmd *cobra.Command, presets *config.Presets) (mines.Config, error) {
	cfg, err := presets.Get(f.preset)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("width") {
		cfg.Width = f.width
	}
	if cmd.Flags().Changed("height") {
		cfg.Height = f.height
	}
	if cmd.Flags().Changed("mines") {
		cfg.MineCount = f.mineCount
	}
	return cfg, cfg.Validate()
}

// explicit reports whether any board flag was given.
func (f *boardFlags) explicit(cmd *cobra.Command) bool {
	for _, name := range []string{"preset", "width", "height", "mines"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}
