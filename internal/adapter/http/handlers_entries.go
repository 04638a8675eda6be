package adapthttp

import (
	"errors"
	"net/http"
	"time"
)

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	switch r.Method {
	case http.MethodPost:
		var body struct {
			Category    string  `json:"category"`
			Amount      float64 `json:"amount"`
			Description string  `json:"description"`
			Date        string  `json:"date"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		var date time.Time
		if body.Date != "" {
			parsed, err := time.Parse(time.RFC3339, body.Date)
			if err != nil {
				parsed, err = time.ParseInLocation("2006-01-02", body.Date, time.Local)
			}
			if err != nil {
				writeError(w, http.StatusBadRequest, errors.New("invalid date"))
				return
			}
			date = parsed
		}

		entry, err := s.entries.Create(r.Context(), user.ID, body.Category, body.Amount, body.Description, date)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusCreated, entry)

	case http.MethodGet:
		from, hasFrom, err := timeQuery(r, "from")
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		to, hasTo, err := timeQuery(r, "to")
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		if hasFrom || hasTo {
			if !hasFrom {
				from = time.Time{}
			}
			if !hasTo {
				to = time.Now()
			}
			items, err := s.entries.ListRange(r.Context(), user.ID, from, to)
			if err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"items": items})
			return
		}

		items, err := s.entries.List(r.Context(), user.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	stats, err := s.insights.Stats(r.Context(), userFrom(r.Context()).ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	analytics, err := s.insights.Analytics(r.Context(), userFrom(r.Context()).ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics)
}

func (s *Server) handleDashboardMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	metrics, err := s.insights.Dashboard(r.Context(), userFrom(r.Context()).ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}
