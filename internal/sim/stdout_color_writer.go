// ColorStdoutWriter prints human-friendly, colorized metrics to STDOUT.
package sim

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"meshjam-sim/internal/metrics"
)

const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
	colorBlue   = "\x1b[34m"
	colorCyan   = "\x1b[36m"
	colorGray   = "\x1b[90m"
)

// ColorStdoutWriter prints metrics records using ANSI colors. Colors are
// disabled automatically when STDOUT is not a terminal.
type ColorStdoutWriter struct {
	out   io.Writer
	color bool
}

// NewColorStdoutWriter creates a ColorStdoutWriter writing to os.Stdout.
func NewColorStdoutWriter() *ColorStdoutWriter {
	return &ColorStdoutWriter{
		out:   os.Stdout,
		color: term.IsTerminal(int(os.Stdout.Fd())),
	}
}

func (w *ColorStdoutWriter) paint(c, s string) string {
	if !w.color {
		return s
	}
	return c + s + colorReset
}

// WriteMetrics prints one record as an aligned, colorized line. PDR shifts
// from green through yellow to red as delivery degrades.
func (w *ColorStdoutWriter) WriteMetrics(rec metrics.Record) error {
	pdrColor := colorGreen
	switch {
	case rec.PDR < 0.3:
		pdrColor = colorRed
	case rec.PDR < 0.7:
		pdrColor = colorYellow
	}
	jamColor := colorGray
	if rec.JammingPower > 0 {
		jamColor = colorRed
	}
	_, err := fmt.Fprintf(w.out, "%s %s pdr=%s plr=%.3f tput=%s lat=%sms energy=%.2f linkq=%.3f jam=%s\n",
		w.paint(colorGray, rec.Timestamp.Format(time.RFC3339)),
		w.paint(colorBlue, fmt.Sprintf("attack=%s", rec.Attack)),
		w.paint(pdrColor, fmt.Sprintf("%.3f", rec.PDR)),
		rec.PLR,
		w.paint(colorCyan, fmt.Sprintf("%.2f/s", rec.Throughput)),
		w.paint(colorCyan, fmt.Sprintf("%.2f", rec.LatencyMs)),
		rec.Energy,
		rec.AvgLinkQuality,
		w.paint(jamColor, fmt.Sprintf("%.3f", rec.JammingPower)),
	)
	return err
}
