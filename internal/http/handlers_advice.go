package http

import (
	"html/template"
	"log/slog"
	"net/http"

	"fitlog/internal/advisor"
)

// adviceResponse writes the advisor's text as an HTML fragment.
func adviceResponse(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(`<div class="advice">` + template.HTMLEscapeString(text) + `</div>`))
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Malformed request</div>`))
		return false
	}
	return true
}

// handleAdviceCaption writes a social caption for the reference week.
func (s *Server) handleAdviceCaption(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	ref := parseRefDate(r)
	report, err := s.getReport(r.Context(), ref)
	if err != nil {
		slog.ErrorContext(r.Context(), "Caption report error", "error", err)
		http.Error(w, "could not build the report", http.StatusInternalServerError)
		return
	}

	prompt := advisor.CaptionPrompt(report.Aggregate, report.Records)
	adviceResponse(w, s.advisor.Advise(r.Context(), prompt.System, prompt.User))
}

func (s *Server) handleAdviceMeal(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	goal := sanitizeInput(r.Form.Get("goal"))
	scenario := sanitizeInput(r.Form.Get("scenario"))
	preference := sanitizeInput(r.Form.Get("preference"))

	prompt := advisor.MealPrompt(goal, scenario, preference)
	adviceResponse(w, s.advisor.Advise(r.Context(), prompt.System, prompt.User))
}

func (s *Server) handleAdviceRescue(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	food := sanitizeInput(r.Form.Get("food"))
	feeling := sanitizeInput(r.Form.Get("feeling"))
	if food == "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Tell me what you ate first</div>`))
		return
	}

	prompt := advisor.RescuePrompt(food, feeling)
	adviceResponse(w, s.advisor.Advise(r.Context(), prompt.System, prompt.User))
}
