package server

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/claude/workouttracker/internal/metrics"
	"github.com/claude/workouttracker/internal/performance"
	"github.com/claude/workouttracker/internal/tracker"
	"github.com/go-chi/chi/v5"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// Server holds dependencies for HTTP handlers.
type Server struct {
	tracker *tracker.Tracker
	metrics *metrics.Manager
	log     *slog.Logger
	router  chi.Router
	page    *template.Template
}

// New creates a new Server with all routes configured.
func New(tr *tracker.Tracker, m *metrics.Manager, log *slog.Logger) *Server {
	s := &Server{
		tracker: tr,
		metrics: m,
		log:     log,
		router:  chi.NewRouter(),
		page: template.Must(template.New("tracker.gohtml").
			Funcs(template.FuncMap{"chartURL": chartURL}).
			ParseFS(templateFS, "templates/tracker.gohtml")),
	}
	tr.OnRecord(func(_ performance.Key, field performance.Field) {
		m.CounterEntries.WithLabelValues(string(field)).Inc()
	})
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestID)
	s.router.Use(RequestLogging(s.log))
	s.router.Use(RequestMetrics(s.metrics))
	s.router.Use(CORS)

	s.router.Get("/", s.handleIndex)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/workouts", s.handleWorkouts)
		r.Get("/exercises", s.handleExercises)
		r.Get("/sheet", s.handleSheet)
		r.Put("/entries", s.handlePutEntry)
		r.Get("/series", s.handleSeries)
		r.Get("/charts", s.handleChart)
	})
}

// MountMetrics exposes a Prometheus scrape handler at /metrics.
func (s *Server) MountMetrics(h http.Handler) {
	s.router.Handle("/metrics", h)
}

// MountMCP exposes an MCP transport handler at /mcp.
func (s *Server) MountMCP(h http.Handler) {
	s.router.Handle("/mcp", h)
}
