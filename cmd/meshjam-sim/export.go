package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"meshjam-sim/internal/metrics"
	"meshjam-sim/internal/sim"
)

var (
	exportIn  string
	exportOut string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Convert a metrics log to CSV",
	Long:  "export reads a JSONL metrics log and writes it as CSV with a fixed column order.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportIn == "" {
			return fmt.Errorf("--log-file is required")
		}
		in, err := os.Open(exportIn)
		if err != nil {
			return err
		}
		defer in.Close()

		var records []metrics.Record
		dec := json.NewDecoder(in)
		for {
			var rec metrics.Record
			if err := dec.Decode(&rec); err != nil {
				if err == io.EOF {
					break
				}
				return fmt.Errorf("decode %s: %w", exportIn, err)
			}
			records = append(records, rec)
		}

		out := os.Stdout
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		return sim.WriteCSV(out, records)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportIn, "log-file", "", "Path to a recorded metrics log (JSONL)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "CSV output path (STDOUT when empty)")
}
