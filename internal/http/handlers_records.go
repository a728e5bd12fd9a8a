package http

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"fitlog/internal/core"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	today := now.Format(core.DateLayout)

	var todayRecord *core.Record
	records, err := s.getRecords(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List records error", "error", err)
	}
	for i := range records {
		if records[i].Date == today {
			todayRecord = &records[i]
			break
		}
	}

	report, err := s.getReport(r.Context(), now)
	if err != nil {
		slog.ErrorContext(r.Context(), "Weekly report error", "error", err)
	}

	data := struct {
		Today        string
		TodayRecord  *core.Record
		TrainingDays int
		WeekLabel    string
		Sentence     string
	}{
		Today:       today,
		TodayRecord: todayRecord,
	}
	if report != nil {
		data.TrainingDays = report.Aggregate.TrainingDays
		data.WeekLabel = report.Aggregate.Window.Label()
		data.Sentence = report.Sentence
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Malformed request</div>`))
		return
	}

	date := sanitizeInput(r.Form.Get("date"))
	if date == "" {
		date = time.Now().Format(core.DateLayout)
	}

	training := splitTraining(r.Form["training"])
	for i, v := range training {
		training[i] = sanitizeInput(v)
	}
	if len(training) == 0 {
		training = []string{core.RestDay}
	}

	rec := core.Record{
		Date:     date,
		Training: training,
		Diet:     sanitizeInput(r.Form.Get("diet")),
		Mood:     sanitizeInput(r.Form.Get("mood")),
	}

	saved, err := s.records.SaveRecord(r.Context(), rec)
	if err != nil {
		if errors.Is(err, core.ErrInvalidDate) || errors.Is(err, core.ErrEmptyDate) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">Invalid date: ` + template.HTMLEscapeString(date) + `</div>`))
			return
		}
		slog.ErrorContext(r.Context(), "Record save error", "error", err, "date", date)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Could not save the record</div>`))
		return
	}

	s.structured.LogRecordSaved(r.Context(), saved.ID, saved.Date, len(saved.Training))
	s.invalidate()
	w.Header().Set("HX-Trigger", `{"record:saved": {"date": "`+saved.Date+`"}}`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Logged ` + template.HTMLEscapeString(saved.Date) + `: ` +
		template.HTMLEscapeString(strings.Join(saved.Training, ", ")) + `</div>`))
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Malformed request</div>`))
		return
	}

	id := sanitizeInput(r.Form.Get("id"))
	if id == "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Missing record id</div>`))
		return
	}

	if err := s.records.DeleteRecord(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Record delete error", "error", err, "id", id)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Could not delete the record</div>`))
		return
	}

	s.invalidate()
	w.Header().Set("HX-Trigger", `{"record:deleted": {"id": "`+template.JSEscapeString(id)+`"}}`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Record removed</div>`))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	records, err := s.getRecords(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List records error", "error", err)
		http.Error(w, "could not load records", http.StatusInternalServerError)
		return
	}

	// Newest first; ties keep store order.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date > records[j].Date
	})

	type row struct {
		ID       string
		Date     string
		Training string
		Diet     string
		Mood     string
	}
	data := struct {
		Rows []row
	}{}
	for _, rec := range records {
		data.Rows = append(data.Rows, row{
			ID:       rec.ID,
			Date:     rec.Date,
			Training: strings.Join(rec.Training, ", "),
			Diet:     rec.Diet,
			Mood:     rec.Mood,
		})
	}

	if err := s.templates.ExecuteTemplate(w, "history.html", data); err != nil {
		slog.ErrorContext(r.Context(), "History template execution failed", "error", err, "template", "history.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
