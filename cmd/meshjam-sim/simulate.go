package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"meshjam-sim/internal/admin"
	"meshjam-sim/internal/analysis"
	"meshjam-sim/internal/config"
	"meshjam-sim/internal/logging"
	"meshjam-sim/internal/sim"
)

var (
	simPrintOnly  bool
	simColor      bool
	simTUI        bool
	simConfigPath string
	simSchemaPath string
	simTick       time.Duration
	simLogFile    string
	simAdminAddr  string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the real-time jamming simulator",
	Long:  "simulate starts the sensor network simulation, emitting one metrics record per aggregation window.",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.New()
		ctx, cancel := context.WithCancel(logging.NewContext(context.Background(), logger))
		defer cancel()

		cfg, err := config.Load(simConfigPath, simSchemaPath)
		if err != nil {
			return err
		}

		writer, snapWriter, tui, cleanup, err := newWriters(simPrintOnly, simColor, simTUI, simLogFile)
		if err != nil {
			return err
		}
		defer cleanup()

		tickInterval := simTick
		if envTick := os.Getenv("TICK_INTERVAL"); envTick != "" {
			d, err := time.ParseDuration(envTick)
			if err != nil {
				return err
			}
			tickInterval = d
		}

		simulator := sim.NewSimulator(cfg, writer, snapWriter, tickInterval)

		srv := admin.NewServer(simulator, analysis.NewFromEnv())
		if tui != nil {
			tui.SetAttackFunc(simulator.SetAttack)
			srv.OnAnalysis(tui.SetAnalysis)
		}
		go func() {
			logger.Info("admin UI listening", "addr", simAdminAddr)
			if err := srv.Start(ctx, simAdminAddr); err != nil && err != http.ErrServerClosed {
				logger.Error("admin server failed", "err", err)
				cancel()
			}
		}()

		go simulator.Run(ctx)

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs

		cancel()
		if tui != nil {
			tui.Wait()
		}
		logger.Info("simulation stopped")
		return nil
	},
}

func init() {
	simulateCmd.Flags().BoolVar(&simPrintOnly, "print-only", false, "Print metrics to STDOUT instead of writing to DB")
	simulateCmd.Flags().BoolVar(&simColor, "color", false, "Colorized human-readable STDOUT output")
	simulateCmd.Flags().BoolVar(&simTUI, "tui", false, "Render a terminal dashboard instead of plain output")
	simulateCmd.Flags().StringVar(&simConfigPath, "config", "config/simulation.yaml", "Path to simulation configuration YAML")
	simulateCmd.Flags().StringVar(&simSchemaPath, "schema", "schemas/simulation.cue", "Path to CUE schema file")
	simulateCmd.Flags().DurationVar(&simTick, "tick", 50*time.Millisecond, "Simulation tick interval (e.g. 16ms, 100ms)")
	simulateCmd.Flags().StringVar(&simLogFile, "log-file", "", "Path to export metrics log (JSONL)")
	simulateCmd.Flags().StringVar(&simAdminAddr, "admin-addr", ":8080", "Admin UI listen address")
}
