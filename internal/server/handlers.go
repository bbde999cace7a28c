package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/claude/workouttracker/internal/catalog"
	"github.com/claude/workouttracker/internal/chart"
	"github.com/claude/workouttracker/internal/performance"
	"github.com/claude/workouttracker/internal/tracker"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sel, err := s.tracker.Resolve(r.URL.Query().Get("workout"), r.URL.Query().Get("week"))
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	sheet, err := s.tracker.Sheet(sel)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	var buf bytes.Buffer
	if err := s.page.Execute(&buf, sheet); err != nil {
		s.log.Error("rendering page", "error", err)
		http.Error(w, "rendering page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func (s *Server) handleWorkouts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Catalog().Days())
}

func (s *Server) handleExercises(w http.ResponseWriter, r *http.Request) {
	workout := r.URL.Query().Get("workout")
	if workout == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "workout parameter required"})
		return
	}
	exercises, err := s.tracker.Catalog().Exercises(workout)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (s *Server) handleSheet(w http.ResponseWriter, r *http.Request) {
	sel, err := s.tracker.Resolve(r.URL.Query().Get("workout"), r.URL.Query().Get("week"))
	if err != nil {
		writeError(w, err)
		return
	}
	sheet, err := s.tracker.Sheet(sel)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sheet)
}

// entryRequest is the body of PUT /api/v1/entries.
type entryRequest struct {
	performance.Key
	Field string `json:"field"`
	Value string `json:"value"`
}

func (s *Server) handlePutEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	field, err := performance.ParseField(req.Field)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	entry, err := s.tracker.Record(r.Context(), req.Key, field, req.Value)
	if err != nil {
		writeError(w, err)
		return
	}
	series, err := s.tracker.Series(req.Workout, req.Exercise)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"key":    req.Key,
		"entry":  entry,
		"series": series,
	})
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	workout, exercise, ok := requireExercise(w, r)
	if !ok {
		return
	}
	points, err := s.tracker.Series(workout, exercise)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	workout, exercise, ok := requireExercise(w, r)
	if !ok {
		return
	}
	format, err := chart.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	points, err := s.tracker.Series(workout, exercise)
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := chart.Render(&buf, exercise, points, format); err != nil {
		s.log.Error("chart render error", "workout", workout, "exercise", exercise, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	s.metrics.CounterChartRenders.WithLabelValues(string(format)).Inc()
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	buf.WriteTo(w)
}

func requireExercise(w http.ResponseWriter, r *http.Request) (workout, exercise string, ok bool) {
	workout = r.URL.Query().Get("workout")
	exercise = r.URL.Query().Get("exercise")
	if workout == "" || exercise == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "workout and exercise parameters required"})
		return "", "", false
	}
	return workout, exercise, true
}

// chartURL is the chart image address for one exercise of a workout day.
func chartURL(workout, exercise string) string {
	return "/api/v1/charts?" + url.Values{"workout": {workout}, "exercise": {exercise}}.Encode()
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, tracker.ErrInvalidKey):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
