package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"fitlog/internal/core"
)

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	ref := parseRefDate(r)
	report, err := s.getReport(r.Context(), ref)
	if err != nil {
		slog.ErrorContext(r.Context(), "Weekly report error", "error", err, "ref", ref.Format(core.DateLayout))
		http.Error(w, "could not build the report", http.StatusInternalServerError)
		return
	}

	type row struct {
		Label string
		Count int
	}
	data := struct {
		RefDate      string
		WeekLabel    string
		TrainingDays int
		Sentence     string
		Rows         []row
		HasSessions  bool
	}{
		RefDate:      ref.Format(core.DateLayout),
		WeekLabel:    report.Aggregate.Window.Label(),
		TrainingDays: report.Aggregate.TrainingDays,
		Sentence:     report.Sentence,
		HasSessions:  len(report.Aggregate.Categories) > 0,
	}
	for _, c := range report.Aggregate.Categories {
		data.Rows = append(data.Rows, row{Label: c.Label, Count: c.Count})
	}

	if err := s.templates.ExecuteTemplate(w, "report.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Report template execution failed", "error", err, "template", "report.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleChartJSON serves the interactive donut description for the week.
func (s *Server) handleChartJSON(w http.ResponseWriter, r *http.Request) {
	ref := parseRefDate(r)
	report, err := s.getReport(r.Context(), ref)
	if err != nil {
		slog.ErrorContext(r.Context(), "Chart report error", "error", err)
		http.Error(w, "could not build the chart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(report.Chart); err != nil {
		slog.ErrorContext(r.Context(), "Chart encode error", "error", err)
	}
}

// handlePoster composites and serves the week's poster as a PNG download.
func (s *Server) handlePoster(w http.ResponseWriter, r *http.Request) {
	ref := parseRefDate(r)
	png, err := s.reports.Poster(r.Context(), ref)
	if err != nil {
		slog.ErrorContext(r.Context(), "Poster render error", "error", err, "ref", ref.Format(core.DateLayout))
		http.Error(w, "could not render the poster", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="fitness_report_%s.png"`, ref.Format("20060102")))
	_, _ = w.Write(png)
}
