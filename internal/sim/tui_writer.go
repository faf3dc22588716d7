package sim

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"meshjam-sim/internal/attack"
	"meshjam-sim/internal/metrics"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// metricsMsg carries one emitted metrics record.
type metricsMsg struct{ metrics.Record }

// snapshotMsg carries the per-tick render snapshot.
type snapshotMsg struct{ Snapshot }

// analysisMsg carries the result of an external analysis call.
type analysisMsg struct{ text string }

// setAttackMsg installs the attack-switch callback.
type setAttackMsg struct{ fn func(attack.Kind) }

const maxTableRows = 50

// TUIWriter renders metrics and snapshots using a bubbletea TUI.
type TUIWriter struct {
	program    teaProgram
	done       chan struct{}
	sendSignal atomic.Bool
}

// NewTUIWriter starts a bubbletea program and returns a TUIWriter.
func NewTUIWriter() *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	w.sendSignal.Store(true)
	p := tea.NewProgram(newTUIModel(), tea.WithAltScreen())
	w.program = p
	go func() {
		_, _ = p.Run()
		close(w.done)
		if w.sendSignal.Load() {
			if proc, err := os.FindProcess(os.Getpid()); err == nil {
				_ = proc.Signal(os.Interrupt)
			}
		}
	}()
	return w
}

// WriteMetrics implements MetricsWriter.
func (w *TUIWriter) WriteMetrics(rec metrics.Record) error {
	w.program.Send(metricsMsg{rec})
	return nil
}

// WriteSnapshot implements SnapshotWriter.
func (w *TUIWriter) WriteSnapshot(snap Snapshot) error {
	w.program.Send(snapshotMsg{snap})
	return nil
}

// SetAnalysis pushes analysis text into the side panel.
func (w *TUIWriter) SetAnalysis(text string) {
	w.program.Send(analysisMsg{text})
}

// SetAttackFunc installs the callback invoked by the attack hotkeys.
func (w *TUIWriter) SetAttackFunc(fn func(attack.Kind)) {
	w.program.Send(setAttackMsg{fn})
}

// Wait asks the TUI to exit and blocks until it has, restoring the terminal.
// sendSignal is disabled first so shutdown does not interrupt the process a
// second time.
func (w *TUIWriter) Wait() {
	w.sendSignal.Store(false)
	w.program.Send(tea.QuitMsg{})
	<-w.done
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	jammingStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	idleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	analysisStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type tuiModel struct {
	table    table.Model
	analysis viewport.Model
	rows     []table.Row

	snapshot Snapshot
	setKind  func(attack.Kind)
	width    int
	ready    bool
}

func newTUIModel() tuiModel {
	cols := []table.Column{
		{Title: "time", Width: 8},
		{Title: "attack", Width: 11},
		{Title: "pdr", Width: 6},
		{Title: "plr", Width: 6},
		{Title: "tput", Width: 7},
		{Title: "lat ms", Width: 8},
		{Title: "energy", Width: 9},
		{Title: "linkq", Width: 6},
		{Title: "jam", Width: 6},
	}
	t := table.New(table.WithColumns(cols), table.WithHeight(12))
	return tuiModel{table: t}
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.analysis = viewport.New(msg.Width-2, 6)
		m.ready = true

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "1", "2", "3", "4", "5", "6":
			if m.setKind != nil {
				kinds := attack.Kinds()
				idx := int(msg.String()[0] - '1')
				if idx < len(kinds) {
					m.setKind(kinds[idx])
				}
			}
		}

	case metricsMsg:
		row := table.Row{
			msg.Timestamp.Format("15:04:05"),
			msg.Attack,
			fmt.Sprintf("%.3f", msg.PDR),
			fmt.Sprintf("%.3f", msg.PLR),
			fmt.Sprintf("%.2f", msg.Throughput),
			fmt.Sprintf("%.2f", msg.LatencyMs),
			fmt.Sprintf("%.2f", msg.Energy),
			fmt.Sprintf("%.3f", msg.AvgLinkQuality),
			fmt.Sprintf("%.3f", msg.JammingPower),
		}
		m.rows = append(m.rows, row)
		if len(m.rows) > maxTableRows {
			m.rows = m.rows[len(m.rows)-maxTableRows:]
		}
		m.table.SetRows(m.rows)
		m.table.GotoBottom()

	case snapshotMsg:
		m.snapshot = msg.Snapshot

	case analysisMsg:
		width := m.width - 2
		if width <= 0 {
			width = 78
		}
		m.analysis.SetContent(analysisStyle.Render(wordwrap.String(msg.text, width)))

	case setAttackMsg:
		m.setKind = msg.fn
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m tuiModel) View() string {
	st := m.snapshot.Attack
	jam := idleStyle.Render("idle")
	if st.Active {
		jam = jammingStyle.Render(fmt.Sprintf("JAMMING %.0f%%", st.Power*100))
	}
	live := 0
	for _, p := range m.snapshot.Packets {
		if !p.Delivered && !p.Lost {
			live++
		}
	}
	header := headerStyle.Render(fmt.Sprintf("meshjam-sim  attack=%s  %s  nodes=%d links=%d packets=%d  %s",
		st.Kind, jam, len(m.snapshot.Nodes), len(m.snapshot.Links), live,
		m.snapshot.Timestamp.Format(time.Kitchen)))

	help := helpStyle.Render("1-6 switch attack (none/constant/reactive/random/sweep/intelligent) · q quit")

	view := header + "\n\n" + m.table.View() + "\n"
	if m.ready && m.analysis.TotalLineCount() > 0 {
		view += "\n" + m.analysis.View() + "\n"
	}
	return view + "\n" + help
}
