package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"meshjam-sim/internal/sim"
)

var (
	replayFile  string
	replaySpeed float64
	replayColor bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a recorded metrics log",
	Long:  "replay re-emits a JSONL metrics log, honoring recorded timestamps scaled by --speed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayFile == "" {
			return fmt.Errorf("--log-file is required")
		}
		var writer sim.MetricsWriter = &sim.StdoutWriter{}
		if replayColor {
			writer = sim.NewColorStdoutWriter()
		}
		return sim.ReplayLogFile(replayFile, writer, replaySpeed)
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayFile, "log-file", "", "Path to a recorded metrics log (JSONL)")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1, "Playback speed factor; <=0 replays without delay")
	replayCmd.Flags().BoolVar(&replayColor, "color", false, "Colorized human-readable output")
}
