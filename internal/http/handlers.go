package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/michaelfuchaka/Personal-Finance-Tracker/internal/core"
	"github.com/michaelfuchaka/Personal-Finance-Tracker/internal/export"
)

// categories is the fixed picklist offered by the add form and the
// view-page filter. Free-text categories are still accepted on import.
var categories = []string{
	"Salary",
	"Freelance",
	"Food",
	"Transport",
	"Rent",
	"Utilities",
	"Entertainment",
	"Shopping",
	"Health",
	"Other",
}

type indexData struct {
	Categories       []string
	Today            string
	TransactionCount int
}

// handleIndex serves the single-page shell. Section visibility is driven
// client-side by the URL hash.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if resp := RequireMethod(r, http.MethodGet, http.MethodHead); resp != nil {
		resp.Write(w)
		return
	}

	data := indexData{
		Categories:       categories,
		Today:            time.Now().Format(core.DateLayout),
		TransactionCount: s.store.Len(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Failed to render index", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// handleExportCSV streams the full transaction list as a CSV download.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}

	txns := s.store.List()
	if len(txns) == 0 {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("No transactions to export"))
		return
	}

	filename := export.Filename(time.Now())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write([]byte(export.Render(txns)))

	slog.InfoContext(r.Context(), "Exported transactions",
		"count", len(txns), "filename", filename)
}
