// Admin HTTP surface: render snapshots, metrics stream, attack switching,
// CSV export, and the async analysis trigger.
package admin

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"sync"

	"meshjam-sim/internal/analysis"
	"meshjam-sim/internal/attack"
	"meshjam-sim/internal/logging"
	"meshjam-sim/internal/sim"
)

//go:embed templates/index.html
var content embed.FS

// Server exposes the simulator over HTTP.
type Server struct {
	Sim      *sim.Simulator
	analyzer *analysis.Client
	tpl      *template.Template

	mu           sync.Mutex
	analysisText string
	analysisBusy bool

	// onAnalysis, when set, receives completed analysis text (e.g. the TUI).
	onAnalysis func(string)
}

// NewServer creates a server around a simulator and an optional analyzer.
func NewServer(simulator *sim.Simulator, analyzer *analysis.Client) *Server {
	tpl := template.Must(template.New("index.html").ParseFS(content, "templates/index.html"))
	return &Server{Sim: simulator, analyzer: analyzer, tpl: tpl}
}

// OnAnalysis registers a callback invoked whenever an analysis call lands.
func (s *Server) OnAnalysis(fn func(string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onAnalysis = fn
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/snapshot", s.handleSnapshot)
	mux.HandleFunc("/metrics", s.handleMetrics)
	mux.HandleFunc("/attack", s.handleAttack)
	mux.HandleFunc("/export.csv", s.handleExport)
	mux.HandleFunc("/analyze", s.handleAnalyze)
	mux.HandleFunc("/analysis", s.handleAnalysis)
	return mux
}

// Start serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.routes()}
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()
	return srv.ListenAndServe()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Attack attack.Kind
		Kinds  []attack.Kind
		Status attack.Status
	}{
		Attack: s.Sim.AttackKind(),
		Kinds:  attack.Kinds(),
		Status: s.Sim.Status(),
	}
	s.tpl.Execute(w, data)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Sim.Snapshot())
}

// handleMetrics serves the full history, or a bounded recent suffix with ?n=.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if nStr := r.URL.Query().Get("n"); nStr != "" {
		n, err := strconv.Atoi(nStr)
		if err != nil || n <= 0 {
			http.Error(w, "invalid n", http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(s.Sim.RecentMetrics(n))
		return
	}
	json.NewEncoder(w).Encode(s.Sim.MetricsHistory())
}

func (s *Server) handleAttack(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}
	kind, err := attack.ParseKind(r.URL.Query().Get("kind"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.Sim.SetAttack(kind)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"attack": kind})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="metrics.csv"`)
	if err := s.Sim.ExportCSV(w); err != nil {
		logging.FromContext(r.Context()).Error("csv export failed", "err", err)
	}
}

// handleAnalyze launches the external analysis call off the tick loop. The
// result is applied whenever it resolves; ticks are never blocked on it.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}
	if s.analyzer == nil {
		http.Error(w, analysis.SentinelUnavailable, http.StatusServiceUnavailable)
		return
	}

	s.mu.Lock()
	if s.analysisBusy {
		s.mu.Unlock()
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]any{"status": "already running"})
		return
	}
	s.analysisBusy = true
	s.mu.Unlock()

	records := s.Sim.RecentMetrics(analysis.MaxSample)
	kind := s.Sim.AttackKind()
	go func() {
		text := s.analyzer.Describe(context.Background(), records, kind)
		s.mu.Lock()
		s.analysisText = text
		s.analysisBusy = false
		cb := s.onAnalysis
		s.mu.Unlock()
		if cb != nil {
			cb(text)
		}
	}()

	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{"status": "started"})
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"running": s.analysisBusy,
		"text":    s.analysisText,
	})
}
