package main

import (
	"os"

	"meshjam-sim/internal/sim"
)

// newWriters sets up metrics and snapshot writers based on flags and env
// vars. It returns the writers, the TUI writer when one was started, and a
// cleanup function closing any resources.
func newWriters(printOnly, color, tui bool, logFile string) (sim.MetricsWriter, sim.SnapshotWriter, *sim.TUIWriter, func(), error) {
	cleanup := func() {}

	var writer sim.MetricsWriter
	var snapWriter sim.SnapshotWriter
	var tuiWriter *sim.TUIWriter

	switch {
	case tui:
		tuiWriter = sim.NewTUIWriter()
		writer = tuiWriter
		snapWriter = tuiWriter
	case !printOnly && os.Getenv("GREPTIMEDB_ENDPOINT") != "":
		gw, err := sim.NewGreptimeDBWriter(os.Getenv("GREPTIMEDB_ENDPOINT"), "public", os.Getenv("GREPTIMEDB_TABLE"))
		if err != nil {
			return nil, nil, nil, nil, err
		}
		writer = gw
	case color:
		writer = sim.NewColorStdoutWriter()
	default:
		writer = &sim.StdoutWriter{}
	}

	if logFile != "" {
		fw, err := sim.NewFileWriter(logFile, logFile+".snapshots")
		if err != nil {
			return nil, nil, nil, nil, err
		}
		cleanup = func() { fw.Close() }
		sws := []sim.SnapshotWriter{fw}
		if snapWriter != nil {
			sws = append(sws, snapWriter)
		}
		mw := sim.NewMultiWriter([]sim.MetricsWriter{writer, fw}, sws)
		return mw, mw, tuiWriter, cleanup, nil
	}

	return writer, snapWriter, tuiWriter, cleanup, nil
}
